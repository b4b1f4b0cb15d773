package evaluator

import (
	"fmt"
	"sort"

	"github.com/thomasrohde/eva/pkg/diagnostics"
)

// EnvKind says what an environment is used for. Resolution is the same for every kind.
type EnvKind int

const (
	KindGlobal EnvKind = iota
	KindScope
	KindClass
	KindModule
	KindInstance
)

func (k EnvKind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindScope:
		return "scope"
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindInstance:
		return "instance"
	}
	return fmt.Sprintf("EnvKind(%d)", int(k))
}

// Env is a scope with an optional parent. The parent is fixed at creation.
type Env struct {
	kind   EnvKind
	name   string
	record map[string]Value
	parent *Env
}

func newEnv(kind EnvKind, name string, parent *Env) *Env {
	return &Env{
		kind:   kind,
		name:   name,
		record: make(map[string]Value),
		parent: parent,
	}
}

// Define binds name in this environment's own record, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.record[name] = v
}

// Assign rebinds name in the nearest environment that owns it.
func (e *Env) Assign(name string, v Value) error {
	owner := e.Resolve(name)
	if owner == nil {
		return notDefined(name)
	}
	owner.record[name] = v
	return nil
}

// Lookup reads name from the nearest environment that owns it.
func (e *Env) Lookup(name string) (Value, error) {
	owner := e.Resolve(name)
	if owner == nil {
		return nil, notDefined(name)
	}
	return owner.record[name], nil
}

// Resolve returns the nearest environment in the chain that owns name, or nil.
func (e *Env) Resolve(name string) *Env {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.record[name]; ok {
			return cur
		}
	}
	return nil
}

// Has reports whether name is bound in this environment's own record.
func (e *Env) Has(name string) bool {
	_, ok := e.record[name]
	return ok
}

// Keys returns the names bound in this environment's own record, sorted.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.record))
	for k := range e.record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Env) Parent() *Env  { return e.parent }
func (e *Env) Kind() EnvKind { return e.kind }
func (e *Env) Name() string  { return e.name }

func notDefined(name string) *RuntimeError {
	return &RuntimeError{
		Code:    diagnostics.EVariableNotDefined,
		Message: fmt.Sprintf("variable '%s' is not defined", name),
	}
}
