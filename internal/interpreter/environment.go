package interpreter

import (
	"maps"
	"slices"
)

// Environment maps variable names to their current values.
type Environment struct {
	vars map[string]Value
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

// Get returns the value bound to name, or Int(0) if name was never assigned.
func (e *Environment) Get(name string) Value {
	if v, ok := e.vars[name]; ok {
		return v
	}
	return Int(0)
}

// Lookup returns the value bound to name and whether it was assigned.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v, replacing any previous value.
func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

// Len returns the number of bound names.
func (e *Environment) Len() int {
	return len(e.vars)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Snapshot returns a copy of the bindings.
func (e *Environment) Snapshot() map[string]Value {
	return maps.Clone(e.vars)
}
