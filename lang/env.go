package lang

import (
	"log/slog"
	"maps"
	"slices"
)

// Env is a single lexical scope frame: a set of name bindings plus a pointer
// to the enclosing scope. Name resolution walks the parent chain outward;
// declaration always writes to the innermost frame, which is how shadowing
// works.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates a scope frame enclosed by parent. A nil parent makes a
// root (global) frame.
func NewEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]Value),
		parent: parent,
	}
}

// Declare binds name to value in this frame, shadowing any binding of the
// same name in enclosing frames. Redeclaring in the same frame overwrites.
func (e *Env) Declare(name string, value Value) {
	e.vars[name] = value
}

// Lookup resolves name against this frame and its ancestors, innermost
// first. An unresolved name is a reference error.
func (e *Env) Lookup(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if value, ok := env.vars[name]; ok {
			return value, nil
		}
	}

	return Value{}, ErrReference.
		With(slog.String("name", name)).
		Wrap(NewError(name + " is not defined"))
}

// Assign rebinds an existing binding, wherever in the chain it was declared.
// Assignment never creates a binding; assigning an undeclared name is a
// reference error.
func (e *Env) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = value

			return nil
		}
	}

	return ErrReference.
		With(slog.String("name", name)).
		Wrap(NewError(name + " is not defined"))
}

// Names returns every name visible from this frame, sorted, with shadowed
// duplicates removed. Used for interactive completion.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})

	for env := e; env != nil; env = env.parent {
		for name := range env.vars {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Get returns the binding for name in this frame or its ancestors, and
// whether it exists. Unlike Lookup it never constructs an error, so it is
// cheap enough for completion previews.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if value, ok := env.vars[name]; ok {
			return value, true
		}
	}

	return Value{}, false
}
