package evaluator_test

import (
	"errors"
	"math"
	"testing"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/evaluator"
)

func TestToString(t *testing.T) {
	arena := evaluator.NewArena(0)
	global, _ := arena.NewEnv(evaluator.KindGlobal, "global", nil)
	class, _ := arena.NewEnv(evaluator.KindClass, "Point", global)
	mod, _ := arena.NewEnv(evaluator.KindModule, "Math", global)
	inst, _ := arena.NewEnv(evaluator.KindInstance, "Point", class)
	scope, _ := arena.NewEnv(evaluator.KindScope, "", global)

	tests := []struct {
		value evaluator.Value
		want  string
	}{
		{evaluator.NewNumber(42), "42"},
		{evaluator.NewNumber(-7), "-7"},
		{evaluator.NewNumber(math.MinInt64), "-9223372036854775808"},
		{evaluator.NewString("hi there"), "hi there"},
		{evaluator.NewString(""), ""},
		{evaluator.NewBool(true), "true"},
		{evaluator.NewBool(false), "false"},
		{evaluator.Null{}, "null"},
		{&evaluator.NativeFunction{Name: "print"}, "<native print>"},
		{&evaluator.UserFunction{Name: "add"}, "<function add>"},
		{&evaluator.LambdaFunction{}, "<lambda>"},
		{evaluator.EnvValue{Env: class}, "<class Point>"},
		{evaluator.EnvValue{Env: mod}, "<module Math>"},
		{evaluator.EnvValue{Env: inst}, "<instance of Point>"},
		{evaluator.EnvValue{Env: scope}, "<environment>"},
	}
	for _, tt := range tests {
		if got := evaluator.ToString(tt.value); got != tt.want {
			t.Errorf("ToString(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b evaluator.Value
		want bool
	}{
		{"equal numbers", evaluator.NewNumber(3), evaluator.NewNumber(3), true},
		{"different numbers", evaluator.NewNumber(3), evaluator.NewNumber(4), false},
		{"equal strings", evaluator.NewString("a"), evaluator.NewString("a"), true},
		{"different strings", evaluator.NewString("a"), evaluator.NewString("b"), false},
		{"equal bools", evaluator.NewBool(false), evaluator.NewBool(false), true},
		{"different bools", evaluator.NewBool(true), evaluator.NewBool(false), false},
		{"null null", evaluator.Null{}, evaluator.Null{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluator.Equals(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Equals = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEquals_MismatchedVariants(t *testing.T) {
	fn := &evaluator.LambdaFunction{}
	pairs := [][2]evaluator.Value{
		{evaluator.NewNumber(1), evaluator.NewString("1")},
		{evaluator.NewBool(true), evaluator.NewNumber(1)},
		{evaluator.Null{}, evaluator.NewBool(false)},
		{fn, fn},
		{evaluator.EnvValue{}, evaluator.EnvValue{}},
	}
	for _, p := range pairs {
		_, err := evaluator.Equals(p[0], p[1])
		var rtErr *evaluator.RuntimeError
		if !errors.As(err, &rtErr) {
			t.Fatalf("Equals(%T, %T): expected *RuntimeError, got %v", p[0], p[1], err)
		}
		if rtErr.Code != diagnostics.EInvalidOperandTypes {
			t.Errorf("code = %q, want %q", rtErr.Code, diagnostics.EInvalidOperandTypes)
		}
	}
}

func TestTypeName(t *testing.T) {
	arena := evaluator.NewArena(0)
	class, _ := arena.NewEnv(evaluator.KindClass, "A", nil)
	tests := []struct {
		value evaluator.Value
		want  string
	}{
		{evaluator.NewNumber(1), "number"},
		{evaluator.NewString(""), "string"},
		{evaluator.NewBool(true), "boolean"},
		{evaluator.Null{}, "null"},
		{&evaluator.UserFunction{}, "function"},
		{&evaluator.NativeFunction{}, "function"},
		{evaluator.EnvValue{Env: class}, "class"},
	}
	for _, tt := range tests {
		if got := evaluator.TypeName(tt.value); got != tt.want {
			t.Errorf("TypeName(%T) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestValueToJSON(t *testing.T) {
	tests := []struct {
		value evaluator.Value
		want  string
	}{
		{evaluator.NewNumber(42), "42"},
		{evaluator.NewNumber(-3), "-3"},
		{evaluator.NewString("a\"b"), `"a\"b"`},
		{evaluator.NewBool(true), "true"},
		{evaluator.Null{}, "null"},
		{nil, "null"},
		{&evaluator.UserFunction{Name: "f", Body: &ast.BlockStatement{}}, `"<function f>"`},
		{&evaluator.LambdaFunction{}, `"<lambda>"`},
		{evaluator.NewString("<a & b>"), `"<a & b>"`},
	}
	for _, tt := range tests {
		if got := evaluator.ValueToJSONString(tt.value); got != tt.want {
			t.Errorf("ValueToJSONString(%#v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}
