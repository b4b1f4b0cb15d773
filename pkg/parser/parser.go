// Package parser implements the Eva language parser.
package parser

import (
	"fmt"
	"strconv"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

// Parse tokenizes source and parses it into an AST.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}

	p := &parser{tokens: tokens, pos: 0}
	prog := p.parseProgram()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return prog, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

// previous returns the most recently consumed token.
func (p *parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) match(typ lexer.TokenType) bool {
	if p.peek() != typ {
		return false
	}
	p.advance()
	return true
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		got := "'" + tok.Value + "'"
		if tok.Type == lexer.TokEOF {
			got = "end of file"
		}
		p.addError(fmt.Sprintf("expected %s, got %s", tokenName(typ), got), &tok.Span)
		return tok, false
	}
	return p.advance(), true
}

// addError records a parse diagnostic. Errors raised at end of input carry E_EOF
// so interactive callers can ask for more lines instead of failing.
func (p *parser) addError(msg string, span *ast.Span) {
	code := diagnostics.EParse
	if p.peek() == lexer.TokEOF {
		code = diagnostics.EEOF
	}
	p.diags = append(p.diags, diagnostics.MakeDiag(code, msg, span, ""))
}

func (p *parser) spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// spanToPrev spans from start to the end of the last consumed token.
func (p *parser) spanToPrev(start ast.Span) ast.Span {
	return p.spanFromTo(start, p.previous().Span)
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokLBrace:
		return "'{'"
	case lexer.TokRBrace:
		return "'}'"
	case lexer.TokLBracket:
		return "'['"
	case lexer.TokRBracket:
		return "']'"
	case lexer.TokLParen:
		return "'('"
	case lexer.TokRParen:
		return "')'"
	case lexer.TokColon:
		return "':'"
	case lexer.TokSemicolon:
		return "';'"
	case lexer.TokComma:
		return "','"
	case lexer.TokEquals:
		return "'='"
	case lexer.TokWhile:
		return "'while'"
	case lexer.TokIdent:
		return "identifier"
	case lexer.TokStringLit:
		return "string"
	case lexer.TokNumberLit:
		return "number"
	case lexer.TokEOF:
		return "end of file"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

// --- Program ---

func (p *parser) parseProgram() *ast.Program {
	startSpan := p.current().Span

	var stmts []ast.Stmt
	for p.peek() != lexer.TokEOF {
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}

	return &ast.Program{
		Span: p.spanFromTo(startSpan, p.current().Span),
		Body: stmts,
	}
}

// --- Statements ---

func (p *parser) parseStmt() ast.Stmt {
	switch p.peek() {
	case lexer.TokLet:
		if s := p.parseLetStmt(); s != nil {
			return s
		}
	case lexer.TokDef:
		if s := p.parseFunctionDecl(); s != nil {
			return s
		}
	case lexer.TokClass:
		if s := p.parseClassDecl(); s != nil {
			return s
		}
	case lexer.TokModule:
		if s := p.parseModuleDecl(); s != nil {
			return s
		}
	case lexer.TokIf:
		if s := p.parseIfStmt(); s != nil {
			return s
		}
	case lexer.TokWhile:
		if s := p.parseWhileStmt(); s != nil {
			return s
		}
	case lexer.TokDo:
		if s := p.parseDoWhileStmt(); s != nil {
			return s
		}
	case lexer.TokFor:
		if s := p.parseForStmt(); s != nil {
			return s
		}
	case lexer.TokSwitch:
		if s := p.parseSwitchStmt(); s != nil {
			return s
		}
	case lexer.TokReturn:
		if s := p.parseReturnStmt(); s != nil {
			return s
		}
	case lexer.TokLBrace:
		if s := p.parseBlock(); s != nil {
			return s
		}
	case lexer.TokSemicolon:
		tok := p.advance()
		return &ast.EmptyStatement{Span: tok.Span}
	default:
		if s := p.parseExprStmt(); s != nil {
			return s
		}
	}
	return nil
}

func (p *parser) parseLetStmt() *ast.VariableStatement {
	decl := p.parseVariableDecls()
	if decl == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}
	decl.Span = p.spanToPrev(decl.Span)
	return decl
}

// parseVariableDecls parses `let a = 1, b` without the terminating ';' so the
// same code serves both statements and for-loop headers.
func (p *parser) parseVariableDecls() *ast.VariableStatement {
	start := p.advance() // consume 'let'
	var decls []*ast.VariableDeclarator
	for {
		nameTok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		d := &ast.VariableDeclarator{Span: nameTok.Span, Name: nameTok.Value}
		if p.match(lexer.TokEquals) {
			init := p.parseAssignment()
			if init == nil {
				return nil
			}
			d.Init = init
			d.Span = p.spanFromTo(nameTok.Span, init.NodeSpan())
		}
		decls = append(decls, d)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	return &ast.VariableStatement{
		Span:         p.spanToPrev(start.Span),
		Declarations: decls,
	}
}

func (p *parser) parseParams() ([]string, bool) {
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil, false
	}
	params := []string{}
	for p.peek() != lexer.TokRParen {
		paramTok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil, false
		}
		params = append(params, paramTok.Value)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil, false
	}
	return params, true
}

func (p *parser) parseFunctionDecl() *ast.FunctionDeclaration {
	start := p.advance() // consume 'def'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.FunctionDeclaration{
		Span:   p.spanFromTo(start.Span, body.Span),
		Name:   nameTok.Value,
		Params: params,
		Body:   body,
	}
}

func (p *parser) parseClassDecl() *ast.ClassDeclaration {
	start := p.advance() // consume 'class'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	var super *ast.Identifier
	if p.match(lexer.TokExtends) {
		superTok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		super = &ast.Identifier{Span: superTok.Span, Name: superTok.Value}
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.ClassDeclaration{
		Span:       p.spanFromTo(start.Span, body.Span),
		Name:       nameTok.Value,
		SuperClass: super,
		Body:       body,
	}
}

func (p *parser) parseModuleDecl() *ast.ModuleDeclaration {
	start := p.advance() // consume 'module'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.ModuleDeclaration{
		Span: p.spanFromTo(start.Span, body.Span),
		Name: nameTok.Value,
		Body: body,
	}
}

// parseCondition parses a parenthesized test expression.
func (p *parser) parseCondition() ast.Expr {
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil
	}
	test := p.parseExpr()
	if test == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}
	return test
}

func (p *parser) parseIfStmt() *ast.IfStatement {
	start := p.advance() // consume 'if'
	test := p.parseCondition()
	if test == nil {
		return nil
	}
	cons := p.parseStmt()
	if cons == nil {
		return nil
	}
	var alt ast.Stmt
	if p.match(lexer.TokElse) {
		alt = p.parseStmt()
		if alt == nil {
			return nil
		}
	}
	return &ast.IfStatement{
		Span:       p.spanToPrev(start.Span),
		Test:       test,
		Consequent: cons,
		Alternate:  alt,
	}
}

func (p *parser) parseWhileStmt() *ast.WhileStatement {
	start := p.advance() // consume 'while'
	test := p.parseCondition()
	if test == nil {
		return nil
	}
	body := p.parseStmt()
	if body == nil {
		return nil
	}
	return &ast.WhileStatement{
		Span: p.spanToPrev(start.Span),
		Test: test,
		Body: body,
	}
}

func (p *parser) parseDoWhileStmt() *ast.DoWhileStatement {
	start := p.advance() // consume 'do'
	body := p.parseStmt()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokWhile); !ok {
		return nil
	}
	test := p.parseCondition()
	if test == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}
	return &ast.DoWhileStatement{
		Span: p.spanToPrev(start.Span),
		Body: body,
		Test: test,
	}
}

func (p *parser) parseForStmt() *ast.ForStatement {
	start := p.advance() // consume 'for'
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil
	}

	var init ast.Stmt
	switch p.peek() {
	case lexer.TokSemicolon:
	case lexer.TokLet:
		decl := p.parseVariableDecls()
		if decl == nil {
			return nil
		}
		init = decl
	default:
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		init = &ast.ExpressionStatement{Span: expr.NodeSpan(), Expr: expr}
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}

	var test ast.Expr
	if p.peek() != lexer.TokSemicolon {
		if test = p.parseExpr(); test == nil {
			return nil
		}
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}

	var update ast.Expr
	if p.peek() != lexer.TokRParen {
		if update = p.parseExpr(); update == nil {
			return nil
		}
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}

	body := p.parseStmt()
	if body == nil {
		return nil
	}
	return &ast.ForStatement{
		Span:   p.spanToPrev(start.Span),
		Init:   init,
		Test:   test,
		Update: update,
		Body:   body,
	}
}

func (p *parser) parseSwitchStmt() *ast.SwitchStatement {
	start := p.advance() // consume 'switch'
	disc := p.parseCondition()
	if disc == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokLBrace); !ok {
		return nil
	}

	var cases []*ast.SwitchCase
	for p.peek() != lexer.TokRBrace {
		caseTok := p.current()
		var test ast.Expr
		switch caseTok.Type {
		case lexer.TokCase:
			p.advance()
			if test = p.parseExpr(); test == nil {
				return nil
			}
		case lexer.TokDefault:
			p.advance()
		default:
			p.addError(fmt.Sprintf("expected 'case' or 'default', got '%s'", caseTok.Value), &caseTok.Span)
			return nil
		}
		if _, ok := p.expect(lexer.TokColon); !ok {
			return nil
		}
		var body []ast.Stmt
		for p.peek() != lexer.TokCase && p.peek() != lexer.TokDefault &&
			p.peek() != lexer.TokRBrace && p.peek() != lexer.TokEOF {
			stmt := p.parseStmt()
			if stmt == nil {
				return nil
			}
			body = append(body, stmt)
		}
		cases = append(cases, &ast.SwitchCase{
			Span:       p.spanToPrev(caseTok.Span),
			Test:       test,
			Consequent: body,
		})
	}
	if _, ok := p.expect(lexer.TokRBrace); !ok {
		return nil
	}
	return &ast.SwitchStatement{
		Span:         p.spanToPrev(start.Span),
		Discriminant: disc,
		Cases:        cases,
	}
}

func (p *parser) parseReturnStmt() *ast.ReturnStatement {
	start := p.advance() // consume 'return'
	var arg ast.Expr
	if p.peek() != lexer.TokSemicolon {
		if arg = p.parseExpr(); arg == nil {
			return nil
		}
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}
	return &ast.ReturnStatement{
		Span:     p.spanToPrev(start.Span),
		Argument: arg,
	}
}

func (p *parser) parseExprStmt() *ast.ExpressionStatement {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}
	return &ast.ExpressionStatement{
		Span: p.spanToPrev(expr.NodeSpan()),
		Expr: expr,
	}
}

// --- Block ---

func (p *parser) parseBlock() *ast.BlockStatement {
	start, ok := p.expect(lexer.TokLBrace)
	if !ok {
		return nil
	}
	stmts := []ast.Stmt{}
	for p.peek() != lexer.TokRBrace && p.peek() != lexer.TokEOF {
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(lexer.TokRBrace); !ok {
		return nil
	}
	return &ast.BlockStatement{
		Span: p.spanToPrev(start.Span),
		Body: stmts,
	}
}

// --- Expressions ---

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expr {
	left := p.parseLogicalOr()
	if left == nil {
		return nil
	}
	if p.peek() != lexer.TokEquals {
		return left
	}
	eq := p.advance()
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	default:
		p.addError("invalid assignment target", &eq.Span)
		return nil
	}
	value := p.parseAssignment() // right-associative
	if value == nil {
		return nil
	}
	return &ast.AssignmentExpression{
		Span:   p.spanFromTo(left.NodeSpan(), value.NodeSpan()),
		Target: left,
		Value:  value,
	}
}

// --- Precedence climbing ---

func (p *parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	if left == nil {
		return nil
	}
	for p.peek() == lexer.TokOrOr {
		p.advance()
		right := p.parseLogicalAnd()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    ast.OpOr,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	if left == nil {
		return nil
	}
	for p.peek() == lexer.TokAndAnd {
		p.advance()
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    ast.OpAnd,
			Left:  left,
			Right: right,
		}
	}
	return left
}

// binaryLevel parses a left-associative chain of the operators in ops over next.
func (p *parser) binaryLevel(next func() ast.Expr, ops map[lexer.TokenType]ast.BinaryOp) ast.Expr {
	left := next()
	if left == nil {
		return nil
	}
	for {
		op, ok := ops[p.peek()]
		if !ok {
			return left
		}
		p.advance()
		right := next()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpression{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

var (
	equalityOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokEqEq:   ast.OpEqEq,
		lexer.TokBangEq: ast.OpNeq,
	}
	relationalOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokLt:   ast.OpLt,
		lexer.TokGt:   ast.OpGt,
		lexer.TokLtEq: ast.OpLtEq,
		lexer.TokGtEq: ast.OpGtEq,
	}
	additiveOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokPlus:  ast.OpAdd,
		lexer.TokMinus: ast.OpSub,
	}
	multiplicativeOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokStar:  ast.OpMul,
		lexer.TokSlash: ast.OpDiv,
	}
)

func (p *parser) parseEquality() ast.Expr {
	return p.binaryLevel(p.parseRelational, equalityOps)
}

func (p *parser) parseRelational() ast.Expr {
	return p.binaryLevel(p.parseAdditive, relationalOps)
}

func (p *parser) parseAdditive() ast.Expr {
	return p.binaryLevel(p.parseMultiplicative, additiveOps)
}

func (p *parser) parseMultiplicative() ast.Expr {
	return p.binaryLevel(p.parseUnary, multiplicativeOps)
}

func (p *parser) parseUnary() ast.Expr {
	var op ast.UnaryOp
	switch p.peek() {
	case lexer.TokBang:
		op = ast.OpNot
	case lexer.TokMinus:
		op = ast.OpNeg
	case lexer.TokPlus:
		op = ast.OpPlus
	default:
		return p.parseCall()
	}
	start := p.advance()
	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpression{
		Span:    p.spanFromTo(start.Span, operand.NodeSpan()),
		Op:      op,
		Operand: operand,
	}
}

func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.peek() {
		case lexer.TokLParen:
			args, ok := p.parseArguments()
			if !ok {
				return nil
			}
			expr = &ast.CallExpression{
				Span:      p.spanToPrev(expr.NodeSpan()),
				Callee:    expr,
				Arguments: args,
			}
		case lexer.TokDot:
			member := p.parseDotMember(expr)
			if member == nil {
				return nil
			}
			expr = member
		case lexer.TokLBracket:
			p.advance()
			index := p.parseExpr()
			if index == nil {
				return nil
			}
			if _, ok := p.expect(lexer.TokRBracket); !ok {
				return nil
			}
			expr = &ast.MemberExpression{
				Span:     p.spanToPrev(expr.NodeSpan()),
				Object:   expr,
				Index:    index,
				Computed: true,
			}
		default:
			return expr
		}
	}
}

func (p *parser) parseDotMember(object ast.Expr) *ast.MemberExpression {
	p.advance() // consume '.'
	next := p.current()
	if next.Type != lexer.TokIdent && !lexer.IsKeyword(next.Type) {
		p.addError(fmt.Sprintf("expected identifier after '.', got '%s'", next.Value), &next.Span)
		return nil
	}
	p.advance()
	return &ast.MemberExpression{
		Span:     p.spanFromTo(object.NodeSpan(), next.Span),
		Object:   object,
		Property: next.Value,
	}
}

func (p *parser) parseArguments() ([]ast.Expr, bool) {
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil, false
	}
	args := []ast.Expr{}
	for p.peek() != lexer.TokRParen {
		arg := p.parseAssignment()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil, false
	}
	return args, true
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.peek() {
	case lexer.TokLParen:
		// Grouped expression
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return expr

	case lexer.TokNumberLit:
		tok := p.advance()
		val, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			p.addError(fmt.Sprintf("number literal %s is out of range", tok.Value), &tok.Span)
			return nil
		}
		return &ast.NumericLiteral{Span: tok.Span, Value: val}

	case lexer.TokStringLit:
		tok := p.advance()
		return &ast.StringLiteral{Span: tok.Span, Value: tok.Value}

	case lexer.TokTrue:
		tok := p.advance()
		return &ast.BooleanLiteral{Span: tok.Span, Value: true}

	case lexer.TokFalse:
		tok := p.advance()
		return &ast.BooleanLiteral{Span: tok.Span, Value: false}

	case lexer.TokNull:
		tok := p.advance()
		return &ast.NullLiteral{Span: tok.Span}

	case lexer.TokIdent:
		tok := p.advance()
		return &ast.Identifier{Span: tok.Span, Name: tok.Value}

	case lexer.TokNew:
		return p.parseNew()

	case lexer.TokSuper:
		return p.parseSuper()

	case lexer.TokImport:
		start := p.advance()
		nameTok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		return &ast.Import{Span: p.spanFromTo(start.Span, nameTok.Span), Name: nameTok.Value}

	case lexer.TokLambda:
		return p.parseLambda()

	default:
		tok := p.current()
		if tok.Type == lexer.TokEOF {
			p.addError("unexpected end of file", &tok.Span)
		} else {
			p.addError(fmt.Sprintf("unexpected token '%s'", tok.Value), &tok.Span)
		}
		return nil
	}
}

func (p *parser) parseNew() ast.Expr {
	start := p.advance() // consume 'new'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	var callee ast.Expr = &ast.Identifier{Span: nameTok.Span, Name: nameTok.Value}
	for p.peek() == lexer.TokDot {
		member := p.parseDotMember(callee)
		if member == nil {
			return nil
		}
		callee = member
	}
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	return &ast.NewExpression{
		Span:      p.spanToPrev(start.Span),
		Callee:    callee,
		Arguments: args,
	}
}

func (p *parser) parseSuper() ast.Expr {
	start := p.advance() // consume 'super'
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil
	}
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}
	return &ast.Super{
		Span:  p.spanToPrev(start.Span),
		Class: &ast.Identifier{Span: nameTok.Span, Name: nameTok.Value},
	}
}

func (p *parser) parseLambda() ast.Expr {
	start := p.advance() // consume 'lambda'
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	var body ast.Node
	if p.peek() == lexer.TokLBrace {
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		body = block
	} else {
		expr := p.parseAssignment()
		if expr == nil {
			return nil
		}
		body = expr
	}
	return &ast.LambdaExpression{
		Span:   p.spanFromTo(start.Span, body.NodeSpan()),
		Params: params,
		Body:   body,
	}
}
