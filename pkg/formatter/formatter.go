// Package formatter implements the Eva source code formatter.
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/evaluator"
)

const indent = "  "

// Binding strength of each expression form (higher = tighter).
const (
	precAssign = iota + 1
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

var binaryPrec = map[ast.BinaryOp]int{
	ast.OpEqEq: precEquality, ast.OpNeq: precEquality,
	ast.OpGt: precRelational, ast.OpLt: precRelational, ast.OpGtEq: precRelational, ast.OpLtEq: precRelational,
	ast.OpAdd: precAdditive, ast.OpSub: precAdditive,
	ast.OpMul: precMultiplicative, ast.OpDiv: precMultiplicative,
}

func exprPrec(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.AssignmentExpression, *ast.LambdaExpression:
		return precAssign
	case *ast.LogicalExpression:
		if n.Op == ast.OpOr {
			return precOr
		}
		return precAnd
	case *ast.BinaryExpression:
		return binaryPrec[n.Op]
	case *ast.UnaryExpression:
		return precUnary
	case *ast.NumericLiteral:
		if n.Value < 0 {
			if n.Value == math.MinInt64 {
				return precAdditive
			}
			return precUnary
		}
	case *ast.CallExpression, *ast.MemberExpression:
		return precPostfix
	}
	return precPrimary
}

// Format pretty-prints an Eva AST back to source code.
func Format(program *ast.Program) string {
	var b strings.Builder
	for i, s := range program.Body {
		if i > 0 && (isDeclaration(s) || isDeclaration(program.Body[i-1])) {
			b.WriteString("\n")
		}
		b.WriteString(formatStmt(s, 0))
		b.WriteString("\n")
	}
	return b.String()
}

func isDeclaration(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.FunctionDeclaration, *ast.ClassDeclaration, *ast.ModuleDeclaration:
		return true
	}
	return false
}

// HasComments reports whether source contains // or /* */ comments outside string literals.
func HasComments(source string) bool {
	var open byte
	for i := 0; i < len(source); i++ {
		ch := source[i]
		if open != 0 {
			switch ch {
			case '\\':
				i++
			case open, '\n':
				open = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			open = ch
		case '/':
			if i+1 < len(source) && (source[i+1] == '/' || source[i+1] == '*') {
				return true
			}
		}
	}
	return false
}

// FormatValue renders a scalar value as a literal that evaluates back to an equal value.
func FormatValue(v evaluator.Value) (string, error) {
	switch val := v.(type) {
	case evaluator.Number:
		return formatInt(val.Value), nil
	case evaluator.String:
		return quote(val.Value), nil
	case evaluator.Bool:
		return strconv.FormatBool(val.Value), nil
	case evaluator.Null:
		return "null", nil
	}
	return "", fmt.Errorf("a %s value has no literal form", evaluator.TypeName(v))
}

// formatInt spells MinInt64 as a subtraction because its magnitude is not a valid literal.
func formatInt(n int64) string {
	if n == math.MinInt64 {
		return "-9223372036854775807 - 1"
	}
	return strconv.FormatInt(n, 10)
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// --- statements ---

func formatStmt(s ast.Stmt, depth int) string {
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		return formatExpr(n.Expr, depth) + ";"

	case *ast.VariableStatement:
		return formatVarDecls(n, depth) + ";"

	case *ast.BlockStatement:
		return formatBlock(n.Body, depth)

	case *ast.EmptyStatement:
		return ";"

	case *ast.IfStatement:
		cons := formatStmt(n.Consequent, depth)
		if n.Alternate != nil && danglingIf(n.Consequent) {
			cons = formatBlock([]ast.Stmt{n.Consequent}, depth)
		}
		out := "if (" + formatExpr(n.Test, depth) + ") " + cons
		if n.Alternate != nil {
			out += " else " + formatStmt(n.Alternate, depth)
		}
		return out

	case *ast.WhileStatement:
		return "while (" + formatExpr(n.Test, depth) + ") " + formatStmt(n.Body, depth)

	case *ast.DoWhileStatement:
		return "do " + formatStmt(n.Body, depth) + " while (" + formatExpr(n.Test, depth) + ");"

	case *ast.ForStatement:
		var b strings.Builder
		b.WriteString("for (")
		switch init := n.Init.(type) {
		case *ast.VariableStatement:
			b.WriteString(formatVarDecls(init, depth))
		case *ast.ExpressionStatement:
			b.WriteString(formatExpr(init.Expr, depth))
		}
		b.WriteString(";")
		if n.Test != nil {
			b.WriteString(" " + formatExpr(n.Test, depth))
		}
		b.WriteString(";")
		if n.Update != nil {
			b.WriteString(" " + formatExpr(n.Update, depth))
		}
		b.WriteString(") ")
		b.WriteString(formatStmt(n.Body, depth))
		return b.String()

	case *ast.ReturnStatement:
		if n.Argument == nil {
			return "return;"
		}
		return "return " + formatExpr(n.Argument, depth) + ";"

	case *ast.SwitchStatement:
		return formatSwitch(n, depth)

	case *ast.FunctionDeclaration:
		return "def " + n.Name + "(" + strings.Join(n.Params, ", ") + ") " + formatBlock(n.Body.Body, depth)

	case *ast.ClassDeclaration:
		out := "class " + n.Name
		if n.SuperClass != nil {
			out += " extends " + n.SuperClass.Name
		}
		return out + " " + formatBlock(n.Body.Body, depth)

	case *ast.ModuleDeclaration:
		return "module " + n.Name + " " + formatBlock(n.Body.Body, depth)
	}
	return fmt.Sprintf("/* unknown statement %T */", s)
}

// danglingIf reports whether an `else` printed after s would bind to an inner if.
func danglingIf(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.IfStatement:
		if n.Alternate == nil {
			return true
		}
		return danglingIf(n.Alternate)
	case *ast.WhileStatement:
		return danglingIf(n.Body)
	case *ast.ForStatement:
		return danglingIf(n.Body)
	}
	return false
}

func formatVarDecls(n *ast.VariableStatement, depth int) string {
	parts := make([]string, len(n.Declarations))
	for i, d := range n.Declarations {
		parts[i] = d.Name
		if d.Init != nil {
			parts[i] += " = " + formatExpr(d.Init, depth)
		}
	}
	return "let " + strings.Join(parts, ", ")
}

func formatBlock(stmts []ast.Stmt, depth int) string {
	if len(stmts) == 0 {
		return "{}"
	}
	inner := strings.Repeat(indent, depth+1)
	var b strings.Builder
	b.WriteString("{\n")
	for _, s := range stmts {
		b.WriteString(inner + formatStmt(s, depth+1) + "\n")
	}
	b.WriteString(strings.Repeat(indent, depth) + "}")
	return b.String()
}

func formatSwitch(n *ast.SwitchStatement, depth int) string {
	caseIndent := strings.Repeat(indent, depth+1)
	bodyIndent := strings.Repeat(indent, depth+2)
	var b strings.Builder
	b.WriteString("switch (" + formatExpr(n.Discriminant, depth) + ") {\n")
	for _, c := range n.Cases {
		if c.Test == nil {
			b.WriteString(caseIndent + "default:\n")
		} else {
			b.WriteString(caseIndent + "case " + formatExpr(c.Test, depth) + ":\n")
		}
		for _, s := range c.Consequent {
			b.WriteString(bodyIndent + formatStmt(s, depth+2) + "\n")
		}
	}
	b.WriteString(strings.Repeat(indent, depth) + "}")
	return b.String()
}

// --- expressions ---

// formatOperand wraps e in parentheses when it binds looser than minPrec.
func formatOperand(e ast.Expr, minPrec, depth int) string {
	s := formatExpr(e, depth)
	if exprPrec(e) < minPrec {
		return "(" + s + ")"
	}
	return s
}

func formatExpr(e ast.Expr, depth int) string {
	switch n := e.(type) {
	case *ast.NumericLiteral:
		return formatInt(n.Value)
	case *ast.StringLiteral:
		return quote(n.Value)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *ast.NullLiteral:
		return "null"
	case *ast.Identifier:
		return n.Name

	case *ast.BinaryExpression:
		p := binaryPrec[n.Op]
		return formatOperand(n.Left, p, depth) + " " + string(n.Op) + " " + formatOperand(n.Right, p+1, depth)

	case *ast.LogicalExpression:
		p := exprPrec(n)
		return formatOperand(n.Left, p, depth) + " " + string(n.Op) + " " + formatOperand(n.Right, p+1, depth)

	case *ast.UnaryExpression:
		return string(n.Op) + formatOperand(n.Operand, precUnary, depth)

	case *ast.AssignmentExpression:
		return formatOperand(n.Target, precPostfix, depth) + " = " + formatOperand(n.Value, precAssign, depth)

	case *ast.CallExpression:
		return formatOperand(n.Callee, precPostfix, depth) + "(" + formatArgs(n.Arguments, depth) + ")"

	case *ast.MemberExpression:
		obj := formatOperand(n.Object, precPostfix, depth)
		if n.Computed {
			return obj + "[" + formatExpr(n.Index, depth) + "]"
		}
		return obj + "." + n.Property

	case *ast.NewExpression:
		return "new " + formatExpr(n.Callee, depth) + "(" + formatArgs(n.Arguments, depth) + ")"

	case *ast.Super:
		return "super(" + n.Class.Name + ")"

	case *ast.Import:
		return "import " + n.Name

	case *ast.LambdaExpression:
		head := "lambda (" + strings.Join(n.Params, ", ") + ") "
		switch body := n.Body.(type) {
		case *ast.BlockStatement:
			return head + formatBlock(body.Body, depth)
		case ast.Expr:
			return head + formatOperand(body, precAssign, depth)
		}
	}
	return fmt.Sprintf("/* unknown expression %T */", e)
}

func formatArgs(args []ast.Expr, depth int) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatOperand(a, precAssign, depth)
	}
	return strings.Join(parts, ", ")
}
