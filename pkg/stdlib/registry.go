// Package stdlib provides the Eva native function registry.
package stdlib

import (
	"io"
	"sort"

	"github.com/thomasrohde/eva/pkg/evaluator"
)

// Fn represents a native function. Execute receives the writer the registry is bound to.
type Fn struct {
	Name    string
	Execute func(w io.Writer, args []evaluator.Value) (evaluator.Value, error)
}

// Registry holds registered native functions.
type Registry struct {
	fns map[string]*Fn
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[string]*Fn),
	}
}

// Register adds a native function to the registry.
func (r *Registry) Register(fn Fn) {
	r.fns[fn.Name] = &fn
}

// Get retrieves a native function by name.
func (r *Registry) Get(name string) *Fn {
	return r.fns[name]
}

// All returns all registered native functions.
func (r *Registry) All() map[string]*Fn {
	return r.fns
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Natives binds every registered function to w, producing the evaluator's native set.
func Natives(r *Registry, w io.Writer) map[string]*evaluator.NativeFunction {
	out := make(map[string]*evaluator.NativeFunction, len(r.fns))
	for name, fn := range r.fns {
		f := fn
		out[name] = &evaluator.NativeFunction{
			Name: f.Name,
			Fn: func(args []evaluator.Value) (evaluator.Value, error) {
				return f.Execute(w, args)
			},
		}
	}
	return out
}
