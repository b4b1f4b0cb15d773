// Package validator implements static checks on Eva programs before evaluation.
package validator

import (
	"fmt"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
)

type validator struct {
	diags []diagnostics.Diagnostic
	lint  bool
}

// Validate performs the checks a program must pass before it runs and
// returns diagnostics in source order.
func Validate(program *ast.Program) []diagnostics.Diagnostic {
	v := &validator{}
	v.validateStatements(program.Body, false)
	return v.diags
}

// Lint runs Validate's checks plus advisories for programs that are legal
// but almost certainly wrong, such as a constructor with no parameters.
// Only `eva check` uses it.
func Lint(program *ast.Program) []diagnostics.Diagnostic {
	v := &validator{lint: true}
	v.validateStatements(program.Body, false)
	return v.diags
}

func (v *validator) addDiag(code, msg string, span ast.Span, hint string) {
	s := span
	v.diags = append(v.diags, diagnostics.MakeDiag(code, msg, &s, hint))
}

func (v *validator) validateStatements(stmts []ast.Stmt, inFn bool) {
	for _, stmt := range stmts {
		v.validateStmt(stmt, inFn)
	}
}

func (v *validator) validateStmt(stmt ast.Stmt, inFn bool) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v.validateExpr(s.Expr, inFn)

	case *ast.VariableStatement:
		for _, d := range s.Declarations {
			if d.Init != nil {
				v.validateExpr(d.Init, inFn)
			}
		}

	case *ast.BlockStatement:
		v.validateStatements(s.Body, inFn)

	case *ast.IfStatement:
		v.validateExpr(s.Test, inFn)
		v.validateStmt(s.Consequent, inFn)
		if s.Alternate != nil {
			v.validateStmt(s.Alternate, inFn)
		}

	case *ast.WhileStatement:
		v.validateExpr(s.Test, inFn)
		v.validateStmt(s.Body, inFn)

	case *ast.DoWhileStatement:
		v.validateStmt(s.Body, inFn)
		v.validateExpr(s.Test, inFn)

	case *ast.ForStatement:
		if s.Init != nil {
			v.validateStmt(s.Init, inFn)
		}
		if s.Test != nil {
			v.validateExpr(s.Test, inFn)
		}
		if s.Update != nil {
			v.validateExpr(s.Update, inFn)
		}
		v.validateStmt(s.Body, inFn)

	case *ast.ReturnStatement:
		if !inFn {
			v.addDiag(diagnostics.EReturnOutsideFunction, "'return' outside of a function", s.Span,
				"return is only allowed inside a def or lambda body")
		}
		if s.Argument != nil {
			v.validateExpr(s.Argument, inFn)
		}

	case *ast.SwitchStatement:
		v.validateExpr(s.Discriminant, inFn)
		seenDefault := false
		for _, c := range s.Cases {
			if c.Test == nil {
				if seenDefault {
					v.addDiag(diagnostics.EDupDefault, "multiple 'default' clauses in switch", c.Span, "")
				}
				seenDefault = true
			} else {
				v.validateExpr(c.Test, inFn)
			}
			v.validateStatements(c.Consequent, inFn)
		}

	case *ast.FunctionDeclaration:
		v.checkParams(s.Name, s.Params, s.Span)
		v.validateStatements(s.Body.Body, true)

	case *ast.ClassDeclaration:
		for _, member := range s.Body.Body {
			fn, ok := member.(*ast.FunctionDeclaration)
			if v.lint && ok && fn.Name == "constructor" && len(fn.Params) == 0 {
				v.addDiag(diagnostics.EConstructorShape,
					fmt.Sprintf("constructor of class '%s' takes no parameters", s.Name), fn.Span,
					"the first parameter receives the new instance, e.g. def constructor(self) { ... }")
			}
		}
		// Class bodies are not function bodies.
		v.validateStatements(s.Body.Body, false)

	case *ast.ModuleDeclaration:
		v.validateStatements(s.Body.Body, false)
	}
}

func (v *validator) checkParams(name string, params []string, span ast.Span) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			v.addDiag(diagnostics.EDupParam, fmt.Sprintf("duplicate parameter '%s' in %s", p, name), span, "")
		}
		seen[p] = true
	}
}

func (v *validator) validateExpr(expr ast.Expr, inFn bool) {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		v.validateExpr(e.Left, inFn)
		v.validateExpr(e.Right, inFn)
	case *ast.LogicalExpression:
		v.validateExpr(e.Left, inFn)
		v.validateExpr(e.Right, inFn)
	case *ast.UnaryExpression:
		v.validateExpr(e.Operand, inFn)
	case *ast.AssignmentExpression:
		v.validateExpr(e.Target, inFn)
		v.validateExpr(e.Value, inFn)
	case *ast.CallExpression:
		v.validateExpr(e.Callee, inFn)
		for _, a := range e.Arguments {
			v.validateExpr(a, inFn)
		}
	case *ast.NewExpression:
		v.validateExpr(e.Callee, inFn)
		for _, a := range e.Arguments {
			v.validateExpr(a, inFn)
		}
	case *ast.MemberExpression:
		v.validateExpr(e.Object, inFn)
		if e.Index != nil {
			v.validateExpr(e.Index, inFn)
		}
	case *ast.LambdaExpression:
		v.checkParams("lambda", e.Params, e.Span)
		switch body := e.Body.(type) {
		case *ast.BlockStatement:
			v.validateStatements(body.Body, true)
		case ast.Expr:
			v.validateExpr(body, true)
		}
	}
}
