// Package ast defines the Eva language AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd  BinaryOp = "+"
	OpSub  BinaryOp = "-"
	OpMul  BinaryOp = "*"
	OpDiv  BinaryOp = "/"
	OpGt   BinaryOp = ">"
	OpLt   BinaryOp = "<"
	OpGtEq BinaryOp = ">="
	OpLtEq BinaryOp = "<="
	OpEqEq BinaryOp = "=="
	OpNeq  BinaryOp = "!="
)

// LogicalOp represents a logical operator.
type LogicalOp string

const (
	OpAnd LogicalOp = "&&"
	OpOr  LogicalOp = "||"
)

// UnaryOp represents a unary operator.
type UnaryOp string

const (
	OpNot  UnaryOp = "!"
	OpNeg  UnaryOp = "-"
	OpPlus UnaryOp = "+"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Stmt is the interface for all statement nodes ---

type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Literal Expressions ---

type NumericLiteral struct {
	Span  Span
	Value int64
}

func (n *NumericLiteral) Kind() string   { return "NumericLiteral" }
func (n *NumericLiteral) NodeSpan() Span { return n.Span }
func (n *NumericLiteral) exprNode()      {}

type StringLiteral struct {
	Span  Span
	Value string
}

func (n *StringLiteral) Kind() string   { return "StringLiteral" }
func (n *StringLiteral) NodeSpan() Span { return n.Span }
func (n *StringLiteral) exprNode()      {}

type BooleanLiteral struct {
	Span  Span
	Value bool
}

func (n *BooleanLiteral) Kind() string   { return "BooleanLiteral" }
func (n *BooleanLiteral) NodeSpan() Span { return n.Span }
func (n *BooleanLiteral) exprNode()      {}

type NullLiteral struct {
	Span Span
}

func (n *NullLiteral) Kind() string   { return "NullLiteral" }
func (n *NullLiteral) NodeSpan() Span { return n.Span }
func (n *NullLiteral) exprNode()      {}

// --- Identifiers ---

type Identifier struct {
	Span Span
	Name string
}

func (n *Identifier) Kind() string   { return "Identifier" }
func (n *Identifier) NodeSpan() Span { return n.Span }
func (n *Identifier) exprNode()      {}

// --- Operators ---

type BinaryExpression struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpression) Kind() string   { return "BinaryExpression" }
func (n *BinaryExpression) NodeSpan() Span { return n.Span }
func (n *BinaryExpression) exprNode()      {}

type LogicalExpression struct {
	Span  Span
	Op    LogicalOp
	Left  Expr
	Right Expr
}

func (n *LogicalExpression) Kind() string   { return "LogicalExpression" }
func (n *LogicalExpression) NodeSpan() Span { return n.Span }
func (n *LogicalExpression) exprNode()      {}

type UnaryExpression struct {
	Span    Span
	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpression) Kind() string   { return "UnaryExpression" }
func (n *UnaryExpression) NodeSpan() Span { return n.Span }
func (n *UnaryExpression) exprNode()      {}

// AssignmentExpression assigns to an Identifier or a MemberExpression target.
type AssignmentExpression struct {
	Span   Span
	Target Expr
	Value  Expr
}

func (n *AssignmentExpression) Kind() string   { return "AssignmentExpression" }
func (n *AssignmentExpression) NodeSpan() Span { return n.Span }
func (n *AssignmentExpression) exprNode()      {}

// --- Calls, members, objects ---

type CallExpression struct {
	Span      Span
	Callee    Expr
	Arguments []Expr
}

func (n *CallExpression) Kind() string   { return "CallExpression" }
func (n *CallExpression) NodeSpan() Span { return n.Span }
func (n *CallExpression) exprNode()      {}

// MemberExpression is `object.property` or, when Computed, `object[expr]`.
type MemberExpression struct {
	Span     Span
	Object   Expr
	Property string
	Index    Expr // only set when Computed
	Computed bool
}

func (n *MemberExpression) Kind() string   { return "MemberExpression" }
func (n *MemberExpression) NodeSpan() Span { return n.Span }
func (n *MemberExpression) exprNode()      {}

type NewExpression struct {
	Span      Span
	Callee    Expr
	Arguments []Expr
}

func (n *NewExpression) Kind() string   { return "NewExpression" }
func (n *NewExpression) NodeSpan() Span { return n.Span }
func (n *NewExpression) exprNode()      {}

// Super resolves to the parent namespace of the named class.
type Super struct {
	Span  Span
	Class *Identifier
}

func (n *Super) Kind() string   { return "Super" }
func (n *Super) NodeSpan() Span { return n.Span }
func (n *Super) exprNode()      {}

// LambdaExpression has either a *BlockStatement body or an Expr body.
type LambdaExpression struct {
	Span   Span
	Params []string
	Body   Node
}

func (n *LambdaExpression) Kind() string   { return "LambdaExpression" }
func (n *LambdaExpression) NodeSpan() Span { return n.Span }
func (n *LambdaExpression) exprNode()      {}

type Import struct {
	Span Span
	Name string
}

func (n *Import) Kind() string   { return "Import" }
func (n *Import) NodeSpan() Span { return n.Span }
func (n *Import) exprNode()      {}

// --- Statements ---

type ExpressionStatement struct {
	Span Span
	Expr Expr
}

func (n *ExpressionStatement) Kind() string   { return "ExpressionStatement" }
func (n *ExpressionStatement) NodeSpan() Span { return n.Span }
func (n *ExpressionStatement) stmtNode()      {}

type VariableDeclarator struct {
	Span Span
	Name string
	Init Expr // nil when absent
}

func (n *VariableDeclarator) Kind() string   { return "VariableDeclarator" }
func (n *VariableDeclarator) NodeSpan() Span { return n.Span }

type VariableStatement struct {
	Span         Span
	Declarations []*VariableDeclarator
}

func (n *VariableStatement) Kind() string   { return "VariableStatement" }
func (n *VariableStatement) NodeSpan() Span { return n.Span }
func (n *VariableStatement) stmtNode()      {}

type BlockStatement struct {
	Span Span
	Body []Stmt
}

func (n *BlockStatement) Kind() string   { return "BlockStatement" }
func (n *BlockStatement) NodeSpan() Span { return n.Span }
func (n *BlockStatement) stmtNode()      {}

type IfStatement struct {
	Span       Span
	Test       Expr
	Consequent Stmt
	Alternate  Stmt // nil when absent
}

func (n *IfStatement) Kind() string   { return "IfStatement" }
func (n *IfStatement) NodeSpan() Span { return n.Span }
func (n *IfStatement) stmtNode()      {}

type WhileStatement struct {
	Span Span
	Test Expr
	Body Stmt
}

func (n *WhileStatement) Kind() string   { return "WhileStatement" }
func (n *WhileStatement) NodeSpan() Span { return n.Span }
func (n *WhileStatement) stmtNode()      {}

type DoWhileStatement struct {
	Span Span
	Body Stmt
	Test Expr
}

func (n *DoWhileStatement) Kind() string   { return "DoWhileStatement" }
func (n *DoWhileStatement) NodeSpan() Span { return n.Span }
func (n *DoWhileStatement) stmtNode()      {}

// ForStatement's Init is a *VariableStatement or *ExpressionStatement; every header
// part is optional.
type ForStatement struct {
	Span   Span
	Init   Stmt
	Test   Expr
	Update Expr
	Body   Stmt
}

func (n *ForStatement) Kind() string   { return "ForStatement" }
func (n *ForStatement) NodeSpan() Span { return n.Span }
func (n *ForStatement) stmtNode()      {}

type EmptyStatement struct {
	Span Span
}

func (n *EmptyStatement) Kind() string   { return "EmptyStatement" }
func (n *EmptyStatement) NodeSpan() Span { return n.Span }
func (n *EmptyStatement) stmtNode()      {}

type FunctionDeclaration struct {
	Span   Span
	Name   string
	Params []string
	Body   *BlockStatement
}

func (n *FunctionDeclaration) Kind() string   { return "FunctionDeclaration" }
func (n *FunctionDeclaration) NodeSpan() Span { return n.Span }
func (n *FunctionDeclaration) stmtNode()      {}

type ReturnStatement struct {
	Span     Span
	Argument Expr // nil when absent
}

func (n *ReturnStatement) Kind() string   { return "ReturnStatement" }
func (n *ReturnStatement) NodeSpan() Span { return n.Span }
func (n *ReturnStatement) stmtNode()      {}

// SwitchCase with a nil Test is the default case.
type SwitchCase struct {
	Span       Span
	Test       Expr
	Consequent []Stmt
}

func (n *SwitchCase) Kind() string   { return "SwitchCase" }
func (n *SwitchCase) NodeSpan() Span { return n.Span }

type SwitchStatement struct {
	Span         Span
	Discriminant Expr
	Cases        []*SwitchCase
}

func (n *SwitchStatement) Kind() string   { return "SwitchStatement" }
func (n *SwitchStatement) NodeSpan() Span { return n.Span }
func (n *SwitchStatement) stmtNode()      {}

type ClassDeclaration struct {
	Span       Span
	Name       string
	SuperClass *Identifier // nil when absent
	Body       *BlockStatement
}

func (n *ClassDeclaration) Kind() string   { return "ClassDeclaration" }
func (n *ClassDeclaration) NodeSpan() Span { return n.Span }
func (n *ClassDeclaration) stmtNode()      {}

type ModuleDeclaration struct {
	Span Span
	Name string
	Body *BlockStatement
}

func (n *ModuleDeclaration) Kind() string   { return "ModuleDeclaration" }
func (n *ModuleDeclaration) NodeSpan() Span { return n.Span }
func (n *ModuleDeclaration) stmtNode()      {}

// --- Program ---

type Program struct {
	Span Span
	Body []Stmt
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }
