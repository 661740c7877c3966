package storage

import "strings"

// Kind identifies one of the four storage mechanisms.
type Kind string

// Storage mechanism kinds. The string values are the names accepted by
// ParseKind and reported in logs and metrics.
const (
	Local   Kind = "localStorage"
	Session Kind = "sessionStorage"
	Cookie  Kind = "cookieStorage"
	Memory  Kind = "memoryStorage"
)

// kinds is the fixed priority order used for default selection.
// Memory is last: it is always available.
var kinds = []Kind{Local, Session, Cookie, Memory}

// Kinds returns every mechanism kind in priority order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a name into a Kind. Besides the canonical names it
// accepts the short forms "local", "session", "cookie" and "memory".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "localstorage", "local":
		return Local, nil
	case "sessionstorage", "session":
		return Session, nil
	case "cookiestorage", "cookie", "cookies":
		return Cookie, nil
	case "memorystorage", "memory":
		return Memory, nil
	}
	return "", ErrInvalidMechanism.WithDetails("storage type \"" + name + "\" is not valid")
}
