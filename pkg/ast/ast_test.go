package ast_test

import (
	"testing"

	"github.com/thomasrohde/eva/pkg/ast"
)

func TestNodeKinds(t *testing.T) {
	nodes := []ast.Node{
		&ast.NumericLiteral{Value: 42},
		&ast.StringLiteral{Value: "hello"},
		&ast.BooleanLiteral{Value: true},
		&ast.NullLiteral{},
		&ast.Identifier{Name: "x"},
		&ast.MemberExpression{Property: "y"},
		&ast.Super{},
		&ast.Import{Name: "math"},
		&ast.SwitchStatement{},
		&ast.ClassDeclaration{},
		&ast.ModuleDeclaration{},
		&ast.Program{},
	}

	expected := []string{
		"NumericLiteral", "StringLiteral", "BooleanLiteral", "NullLiteral",
		"Identifier", "MemberExpression", "Super", "Import",
		"SwitchStatement", "ClassDeclaration", "ModuleDeclaration", "Program",
	}

	for i, node := range nodes {
		if got := node.Kind(); got != expected[i] {
			t.Errorf("node %d: got Kind() = %q, want %q", i, got, expected[i])
		}
	}
}

func TestLambdaBodyShapes(t *testing.T) {
	block := &ast.LambdaExpression{Body: &ast.BlockStatement{}}
	if _, ok := block.Body.(*ast.BlockStatement); !ok {
		t.Errorf("expected block body, got %T", block.Body)
	}
	expr := &ast.LambdaExpression{Body: &ast.NumericLiteral{Value: 1}}
	if _, ok := expr.Body.(ast.Expr); !ok {
		t.Errorf("expected expression body, got %T", expr.Body)
	}
}
