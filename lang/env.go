package lang

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Environment is one scope in a chain of lexical scopes. The zero value is
// not usable; create the global scope with [NewEnvironment] and nested scopes
// with [Environment.Child].
//
// A scope lives as long as anything references it: the block executing in
// it, a child scope, or a [Function] that captured it.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment returns an empty global scope.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

// Child returns a new scope whose parent is e.
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]Value), parent: e}
}

// Parent returns the enclosing scope, or nil for the global scope.
func (e *Environment) Parent() *Environment { return e.parent }

// Define binds name in this scope, shadowing any outer binding.
func (e *Environment) Define(name string, v Value) {
	e.vars[name] = v
}

// Lookup returns the value of the innermost binding of name.
func (e *Environment) Lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Get returns the value of the innermost binding of name or fails with
// [ErrUndefinedVariable].
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}

	return nil, ErrUndefinedVariable.Wrapf("%s", name).
		With(slog.String("name", name))
}

// Assign updates the innermost existing binding of name or fails with
// [ErrAssignToUndefined]. It never creates a binding.
func (e *Environment) Assign(name string, v Value) error {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v

			return nil
		}
	}

	return ErrAssignToUndefined.Wrapf("%s", name).
		With(slog.String("name", name))
}

// Names returns the sorted names visible from this scope.
func (e *Environment) Names() iter.Seq[string] {
	seen := make(map[string]struct{})

	for s := e; s != nil; s = s.parent {
		for name := range s.vars {
			seen[name] = struct{}{}
		}
	}

	return slices.Values(slices.Sorted(maps.Keys(seen)))
}

// Len returns the number of bindings in this scope alone.
func (e *Environment) Len() int { return len(e.vars) }
