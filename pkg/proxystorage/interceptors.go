package proxystorage

import (
	"sync"

	"github.com/yndnr/proxystore/pkg/keycodec"
	"github.com/yndnr/proxystore/pkg/storage"
)

// Command names a facade operation that interceptors can be attached to.
type Command string

const (
	CommandSetItem    Command = "setItem"
	CommandGetItem    Command = "getItem"
	CommandRemoveItem Command = "removeItem"
	CommandClear      Command = "clear"
)

// Valid reports whether c is one of the four commands.
func (c Command) Valid() bool {
	switch c {
	case CommandSetItem, CommandGetItem, CommandRemoveItem, CommandClear:
		return true
	default:
		return false
	}
}

// Interceptor observes or transforms the value flowing through a command.
// Returning nil keeps the current value. Numbers inside cloned objects and
// arrays arrive as json.Number.
//
// setItem interceptors get (key, value, opts) and getItem interceptors
// (key, value). removeItem interceptors get the options as value, a copy
// of type *storage.Options or nil, and clear interceptors ("", nil). The
// results of removeItem and clear interceptors are ignored.
type Interceptor func(key string, value any, extra ...any) any

// Chain holds the interceptors of each command in registration order.
type Chain struct {
	mu  sync.RWMutex
	fns map[Command][]Interceptor
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{fns: make(map[Command][]Interceptor, 4)}
}

// Register appends fn to the interceptors of cmd. Unknown commands and nil
// functions are ignored; the result reports whether fn was added.
func (c *Chain) Register(cmd Command, fn Interceptor) bool {
	if !cmd.Valid() || fn == nil {
		return false
	}

	c.mu.Lock()
	c.fns[cmd] = append(c.fns[cmd], fn)
	c.mu.Unlock()
	return true
}

// Run folds value through the interceptors of cmd, left to right. Object
// and array values are cloned first so interceptors never see the caller's
// value. Without interceptors value is returned as is.
func (c *Chain) Run(cmd Command, key string, value any, extra ...any) any {
	c.mu.RLock()
	fns := c.fns[cmd]
	c.mu.RUnlock()

	if len(fns) == 0 {
		return value
	}
	if o, ok := value.(*storage.Options); ok {
		value = o.Clone()
	} else {
		value = keycodec.Clone(value)
	}
	for _, fn := range fns {
		if v := fn(key, value, extra...); v != nil {
			value = v
		}
	}
	return value
}
