// Package evaluator implements the Eva value model, environments, and the tree-walking evaluator.
package evaluator

import (
	"fmt"
	"strconv"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
)

// Value is the sealed interface for all Eva runtime values.
type Value interface {
	evaValue() // sealed marker
}

// Number is a 64-bit signed integer.
type Number struct{ Value int64 }

// String is an immutable text value.
type String struct{ Value string }

// Bool is a boolean value.
type Bool struct{ Value bool }

// Null is the absent value.
type Null struct{}

func (Number) evaValue() {}
func (String) evaValue() {}
func (Bool) evaValue()   {}
func (Null) evaValue()   {}

// Function is implemented by every callable value.
type Function interface {
	Value
	functionValue()
}

// NativeFunction is a host function callable from Eva code.
type NativeFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// UserFunction is a named function declared with `def`.
type UserFunction struct {
	Name   string
	Params []string
	Body   *ast.BlockStatement
	Env    *Env
}

// LambdaFunction is an anonymous function. Body is a *ast.BlockStatement or an ast.Expr.
type LambdaFunction struct {
	Params []string
	Body   ast.Node
	Env    *Env
}

func (*NativeFunction) evaValue() {}
func (*UserFunction) evaValue()   {}
func (*LambdaFunction) evaValue() {}

func (*NativeFunction) functionValue() {}
func (*UserFunction) functionValue()   {}
func (*LambdaFunction) functionValue() {}

// EnvValue exposes an environment as a value: objects, classes and modules.
type EnvValue struct {
	Env *Env
}

func (EnvValue) evaValue() {}

// NewNumber, NewString and NewBool are shorthand constructors.
func NewNumber(n int64) Value  { return Number{Value: n} }
func NewString(s string) Value { return String{Value: s} }
func NewBool(b bool) Value     { return Bool{Value: b} }

// ToString renders a value the way `print` shows it.
func ToString(v Value) string {
	switch val := v.(type) {
	case Number:
		return strconv.FormatInt(val.Value, 10)
	case String:
		return val.Value
	case Bool:
		if val.Value {
			return "true"
		}
		return "false"
	case Null:
		return "null"
	case *NativeFunction:
		return fmt.Sprintf("<native %s>", val.Name)
	case *UserFunction:
		return fmt.Sprintf("<function %s>", val.Name)
	case *LambdaFunction:
		return "<lambda>"
	case EnvValue:
		return envString(val.Env)
	}
	return "<unknown>"
}

func envString(e *Env) string {
	if e == nil {
		return "<environment>"
	}
	switch e.Kind() {
	case KindClass:
		return fmt.Sprintf("<class %s>", e.Name())
	case KindModule:
		return fmt.Sprintf("<module %s>", e.Name())
	case KindInstance:
		return fmt.Sprintf("<instance of %s>", e.Name())
	}
	return "<environment>"
}

// TypeName returns a short name for the variant of v, for error messages.
func TypeName(v Value) string {
	switch val := v.(type) {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "boolean"
	case Null:
		return "null"
	case *NativeFunction, *UserFunction, *LambdaFunction:
		return "function"
	case EnvValue:
		if val.Env != nil {
			return val.Env.Kind().String()
		}
		return "environment"
	}
	return "unknown"
}

// Equals compares two scalar values of the same variant. Any other pairing is an
// E_INVALID_OPERAND_TYPES error.
func Equals(a, b Value) (bool, error) {
	switch av := a.(type) {
	case Number:
		if bv, ok := b.(Number); ok {
			return av.Value == bv.Value, nil
		}
	case String:
		if bv, ok := b.(String); ok {
			return av.Value == bv.Value, nil
		}
	case Bool:
		if bv, ok := b.(Bool); ok {
			return av.Value == bv.Value, nil
		}
	case Null:
		if _, ok := b.(Null); ok {
			return true, nil
		}
	}
	return false, &RuntimeError{
		Code:    diagnostics.EInvalidOperandTypes,
		Message: fmt.Sprintf("cannot compare %s with %s", TypeName(a), TypeName(b)),
	}
}

// isTrue applies the strict condition policy: only Bool(true) selects a branch.
func isTrue(v Value) bool {
	b, ok := v.(Bool)
	return ok && b.Value
}
