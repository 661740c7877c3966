package storage

import "fmt"

// Registry is the fixed table of the four mechanisms, one per Kind.
type Registry struct {
	mechanisms map[Kind]Mechanism
}

// NewRegistry returns a registry holding one mechanism per kind.
// Every mechanism is required.
func NewRegistry(local, session, cookie, memory Mechanism) (*Registry, error) {
	table := map[Kind]Mechanism{
		Local:   local,
		Session: session,
		Cookie:  cookie,
		Memory:  memory,
	}
	for _, k := range kinds {
		if table[k] == nil {
			return nil, fmt.Errorf("registry: mechanism %s is nil", k)
		}
	}
	return &Registry{mechanisms: table}, nil
}

// Mechanism returns the mechanism registered for kind.
func (r *Registry) Mechanism(kind Kind) (Mechanism, error) {
	m, ok := r.mechanisms[kind]
	if !ok {
		return nil, ErrInvalidMechanism.WithDetails("storage type \"" + string(kind) + "\" is not valid")
	}
	return m, nil
}

// Kinds lists the registered kinds in priority order.
func (r *Registry) Kinds() []Kind {
	return Kinds()
}
