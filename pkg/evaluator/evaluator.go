package evaluator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
)

// DefaultVersion is bound to VERSION when Options.Version is empty.
const DefaultVersion = "0.1.0"

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	TraceRunStart    TraceEventType = "run_start"
	TraceRunEnd      TraceEventType = "run_end"
	TraceCallStart   TraceEventType = "call_start"
	TraceCallEnd     TraceEventType = "call_end"
	TraceImportStart TraceEventType = "import_start"
	TraceImportEnd   TraceEventType = "import_end"
	TraceClassDecl   TraceEventType = "class_decl"
	TraceModuleDecl  TraceEventType = "module_decl"
)

// TraceEvent represents a single trace event emitted during execution.
type TraceEvent struct {
	Timestamp string            `json:"ts"`
	RunID     string            `json:"runId"`
	Event     TraceEventType    `json:"event"`
	Span      *ast.Span         `json:"span,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// ReturnMode selects how a `return` inside a nested block, if, switch or loop
// propagates to the enclosing function body.
type ReturnMode int

const (
	// ReturnEager stops every enclosing construct at the first return.
	ReturnEager ReturnMode = iota
	// ReturnShallow lets statements after a return in the same block run and
	// overwrite it; loops keep iterating. Function bodies still stop at a return.
	ReturnShallow
)

func (m ReturnMode) String() string {
	if m == ReturnShallow {
		return "shallow"
	}
	return "eager"
}

// ParseReturnMode parses "eager" or "shallow". The empty string is eager.
func ParseReturnMode(s string) (ReturnMode, error) {
	switch s {
	case "", "eager":
		return ReturnEager, nil
	case "shallow":
		return ReturnShallow, nil
	}
	return ReturnEager, fmt.Errorf("unknown return mode %q (want eager or shallow)", s)
}

// ModuleLoader resolves `import Name` to a parsed program.
type ModuleLoader interface {
	Load(name string) (*ast.Program, error)
}

// Options configures an Interpreter.
type Options struct {
	Natives         map[string]*NativeFunction
	Loader          ModuleLoader
	Trace           func(event TraceEvent)
	RunID           string
	ReturnMode      ReturnMode
	MaxEnvironments int
	Version         string
}

// Interpreter evaluates Eva programs against one global environment.
type Interpreter struct {
	opts   Options
	arena  *Arena
	global *Env
}

// completion is the outcome of a statement. returning marks a pending `return`.
type completion struct {
	value     Value
	returning bool
}

func normal(v Value) completion { return completion{value: v} }

// New creates an interpreter with a populated global environment.
func New(opts Options) (*Interpreter, error) {
	arena := NewArena(opts.MaxEnvironments)
	global, err := arena.NewEnv(KindGlobal, "global", nil)
	if err != nil {
		return nil, err
	}
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	global.Define("VERSION", String{Value: version})
	for name, fn := range opts.Natives {
		global.Define(name, fn)
	}
	return &Interpreter{opts: opts, arena: arena, global: global}, nil
}

// Global returns the global environment.
func (in *Interpreter) Global() *Env { return in.global }

// Arena returns the arena that owns the interpreter's environments.
func (in *Interpreter) Arena() *Arena { return in.arena }

// Close releases every environment. The interpreter must not be used afterwards.
func (in *Interpreter) Close() { in.arena.Release() }

// Eval runs a program's top-level statements in order and returns the last value.
func (in *Interpreter) Eval(program *ast.Program) (Value, error) {
	span := program.Span
	in.emit(TraceRunStart, &span, nil)

	c, err := in.execStatements(program.Body, in.global)

	in.emit(TraceRunEnd, &span, nil)
	if err != nil {
		return nil, err
	}
	if c.returning {
		panic("evaluator: return outside of a function body")
	}
	return c.value, nil
}

// Execute runs a program in a fresh interpreter and releases it afterwards.
func Execute(program *ast.Program, opts Options) (Value, error) {
	in, err := New(opts)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return in.Eval(program)
}

func (in *Interpreter) emit(event TraceEventType, span *ast.Span, data map[string]string) {
	if in.opts.Trace != nil {
		in.opts.Trace(TraceEvent{
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			RunID:     in.opts.RunID,
			Event:     event,
			Span:      span,
			Data:      data,
		})
	}
}

func (in *Interpreter) newEnv(kind EnvKind, name string, parent *Env, span ast.Span) (*Env, error) {
	env, err := in.arena.NewEnv(kind, name, parent)
	if err != nil {
		return nil, withSpan(err, span)
	}
	return env, nil
}

// withSpan attaches span to a runtime error that has none.
func withSpan(err error, span ast.Span) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) && rerr.Span == nil {
		s := span
		rerr.Span = &s
	}
	return err
}

func runtimeErr(code string, span ast.Span, format string, args ...any) *RuntimeError {
	s := span
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    &s,
	}
}

// --- statements ---

func (in *Interpreter) execStatements(stmts []ast.Stmt, env *Env) (completion, error) {
	result := normal(Null{})
	for _, stmt := range stmts {
		c, err := in.execStmt(stmt, env)
		if err != nil {
			return completion{}, err
		}
		result = c
		if c.returning && in.opts.ReturnMode == ReturnEager {
			return c, nil
		}
	}
	return result, nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt, env *Env) (completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := in.evalExpr(s.Expr, env)
		if err != nil {
			return completion{}, err
		}
		return normal(v), nil

	case *ast.VariableStatement:
		var last Value = Null{}
		for _, d := range s.Declarations {
			var v Value = Null{}
			if d.Init != nil {
				var err error
				v, err = in.evalExpr(d.Init, env)
				if err != nil {
					return completion{}, err
				}
			}
			env.Define(d.Name, v)
			last = v
		}
		return normal(last), nil

	case *ast.BlockStatement:
		child, err := in.newEnv(KindScope, "", env, s.Span)
		if err != nil {
			return completion{}, err
		}
		return in.execStatements(s.Body, child)

	case *ast.IfStatement:
		test, err := in.evalExpr(s.Test, env)
		if err != nil {
			return completion{}, err
		}
		if isTrue(test) {
			return in.execStmt(s.Consequent, env)
		}
		if s.Alternate != nil {
			return in.execStmt(s.Alternate, env)
		}
		return normal(Null{}), nil

	case *ast.WhileStatement:
		return in.execWhile(s, env)

	case *ast.DoWhileStatement:
		return in.execDoWhile(s, env)

	case *ast.ForStatement:
		return in.execFor(s, env)

	case *ast.ReturnStatement:
		var v Value = Null{}
		if s.Argument != nil {
			var err error
			v, err = in.evalExpr(s.Argument, env)
			if err != nil {
				return completion{}, err
			}
		}
		return completion{value: v, returning: true}, nil

	case *ast.SwitchStatement:
		return in.execSwitch(s, env)

	case *ast.FunctionDeclaration:
		fn := &UserFunction{Name: s.Name, Params: s.Params, Body: s.Body, Env: env}
		env.Define(s.Name, fn)
		return normal(fn), nil

	case *ast.ClassDeclaration:
		v, err := in.execClass(s, env)
		if err != nil {
			return completion{}, err
		}
		return normal(v), nil

	case *ast.ModuleDeclaration:
		span := s.Span
		v, err := in.declareModule(s.Name, s.Body.Body, env, span)
		if err != nil {
			return completion{}, err
		}
		in.emit(TraceModuleDecl, &span, map[string]string{"name": s.Name})
		return normal(v), nil

	case *ast.EmptyStatement:
		return normal(Null{}), nil
	}
	panic(fmt.Sprintf("evaluator: unhandled statement %T", stmt))
}

func (in *Interpreter) execWhile(s *ast.WhileStatement, env *Env) (completion, error) {
	result := normal(Null{})
	for {
		test, err := in.evalExpr(s.Test, env)
		if err != nil {
			return completion{}, err
		}
		if !isTrue(test) {
			return result, nil
		}
		c, err := in.execStmt(s.Body, env)
		if err != nil {
			return completion{}, err
		}
		result = c
		if c.returning && in.opts.ReturnMode == ReturnEager {
			return c, nil
		}
	}
}

func (in *Interpreter) execDoWhile(s *ast.DoWhileStatement, env *Env) (completion, error) {
	for {
		c, err := in.execStmt(s.Body, env)
		if err != nil {
			return completion{}, err
		}
		if c.returning && in.opts.ReturnMode == ReturnEager {
			return c, nil
		}
		test, err := in.evalExpr(s.Test, env)
		if err != nil {
			return completion{}, err
		}
		if !isTrue(test) {
			return c, nil
		}
	}
}

func (in *Interpreter) execFor(s *ast.ForStatement, env *Env) (completion, error) {
	loopEnv, err := in.newEnv(KindScope, "", env, s.Span)
	if err != nil {
		return completion{}, err
	}
	if s.Init != nil {
		if _, err := in.execStmt(s.Init, loopEnv); err != nil {
			return completion{}, err
		}
	}
	result := normal(Null{})
	for {
		if s.Test != nil {
			test, err := in.evalExpr(s.Test, loopEnv)
			if err != nil {
				return completion{}, err
			}
			if !isTrue(test) {
				return result, nil
			}
		}
		c, err := in.execStmt(s.Body, loopEnv)
		if err != nil {
			return completion{}, err
		}
		result = c
		if c.returning && in.opts.ReturnMode == ReturnEager {
			return c, nil
		}
		if s.Update != nil {
			if _, err := in.evalExpr(s.Update, loopEnv); err != nil {
				return completion{}, err
			}
		}
	}
}

func (in *Interpreter) execSwitch(s *ast.SwitchStatement, env *Env) (completion, error) {
	disc, err := in.evalExpr(s.Discriminant, env)
	if err != nil {
		return completion{}, err
	}
	defaultIdx := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			if defaultIdx < 0 {
				defaultIdx = i
			}
			continue
		}
		v, err := in.evalExpr(c.Test, env)
		if err != nil {
			return completion{}, err
		}
		eq, err := Equals(disc, v)
		if err != nil {
			return completion{}, withSpan(err, c.Span)
		}
		if eq {
			return in.execStatements(c.Consequent, env)
		}
	}
	if defaultIdx >= 0 {
		return in.execStatements(s.Cases[defaultIdx].Consequent, env)
	}
	return normal(Null{}), nil
}

func (in *Interpreter) execClass(s *ast.ClassDeclaration, env *Env) (Value, error) {
	parent := env
	if s.SuperClass != nil {
		v, err := env.Lookup(s.SuperClass.Name)
		if err != nil {
			return nil, withSpan(err, s.SuperClass.Span)
		}
		super, ok := v.(EnvValue)
		if !ok {
			return nil, runtimeErr(diagnostics.EClassNotAnEnvironment, s.SuperClass.Span,
				"superclass '%s' is a %s, not a class", s.SuperClass.Name, TypeName(v))
		}
		parent = super.Env
	}
	classEnv, err := in.newEnv(KindClass, s.Name, parent, s.Span)
	if err != nil {
		return nil, err
	}
	if _, err := in.execStatements(s.Body.Body, classEnv); err != nil {
		return nil, err
	}
	class := EnvValue{Env: classEnv}
	env.Define(s.Name, class)

	span := s.Span
	in.emit(TraceClassDecl, &span, map[string]string{"name": s.Name})
	return class, nil
}

// declareModule evaluates body in a new module environment under parent and binds
// name in parent.
func (in *Interpreter) declareModule(name string, body []ast.Stmt, parent *Env, span ast.Span) (Value, error) {
	modEnv, err := in.newEnv(KindModule, name, parent, span)
	if err != nil {
		return nil, err
	}
	if _, err := in.execStatements(body, modEnv); err != nil {
		return nil, err
	}
	mod := EnvValue{Env: modEnv}
	parent.Define(name, mod)
	return mod, nil
}

// --- expressions ---

func (in *Interpreter) evalExpr(expr ast.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumericLiteral:
		return Number{Value: e.Value}, nil
	case *ast.StringLiteral:
		return String{Value: e.Value}, nil
	case *ast.BooleanLiteral:
		return Bool{Value: e.Value}, nil
	case *ast.NullLiteral:
		return Null{}, nil

	case *ast.Identifier:
		v, err := env.Lookup(e.Name)
		if err != nil {
			return nil, withSpan(err, e.Span)
		}
		return v, nil

	case *ast.BinaryExpression:
		left, err := in.evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := in.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return evalBinary(e, left, right)

	case *ast.LogicalExpression:
		return in.evalLogical(e, env)

	case *ast.UnaryExpression:
		return in.evalUnary(e, env)

	case *ast.AssignmentExpression:
		return in.evalAssignment(e, env)

	case *ast.CallExpression:
		return in.evalCall(e, env)

	case *ast.MemberExpression:
		return in.evalMember(e, env)

	case *ast.NewExpression:
		return in.evalNew(e, env)

	case *ast.Super:
		return in.evalSuper(e, env)

	case *ast.LambdaExpression:
		return &LambdaFunction{Params: e.Params, Body: e.Body, Env: env}, nil

	case *ast.Import:
		return in.evalImport(e)
	}
	panic(fmt.Sprintf("evaluator: unhandled expression %T", expr))
}

func evalBinary(e *ast.BinaryExpression, left, right Value) (Value, error) {
	if e.Op == ast.OpEqEq || e.Op == ast.OpNeq {
		eq, err := Equals(left, right)
		if err != nil {
			return nil, withSpan(err, e.Span)
		}
		if e.Op == ast.OpNeq {
			eq = !eq
		}
		return Bool{Value: eq}, nil
	}

	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return nil, runtimeErr(diagnostics.EInvalidOperandTypes, e.Span,
			"operator '%s' cannot be applied to %s and %s", e.Op, TypeName(left), TypeName(right))
	}
	a, b := ln.Value, rn.Value

	switch e.Op {
	case ast.OpAdd:
		return Number{Value: a + b}, nil
	case ast.OpSub:
		return Number{Value: a - b}, nil
	case ast.OpMul:
		return Number{Value: a * b}, nil
	case ast.OpDiv:
		if b == 0 {
			return nil, runtimeErr(diagnostics.EDivisionByZero, e.Span, "division by zero")
		}
		return Number{Value: floorDiv(a, b)}, nil
	case ast.OpGt:
		return Bool{Value: a > b}, nil
	case ast.OpLt:
		return Bool{Value: a < b}, nil
	case ast.OpGtEq:
		return Bool{Value: a >= b}, nil
	case ast.OpLtEq:
		return Bool{Value: a <= b}, nil
	}
	panic(fmt.Sprintf("evaluator: unknown binary operator %q", e.Op))
}

// floorDiv divides rounding toward negative infinity. MinInt64 / -1 wraps.
func floorDiv(a, b int64) int64 {
	if a == math.MinInt64 && b == -1 {
		return math.MinInt64
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (in *Interpreter) evalLogical(e *ast.LogicalExpression, env *Env) (Value, error) {
	left, err := in.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}
	lb, lok := left.(Bool)
	rb, rok := right.(Bool)
	if !lok || !rok {
		return nil, runtimeErr(diagnostics.EInvalidOperandTypes, e.Span,
			"operator '%s' cannot be applied to %s and %s", e.Op, TypeName(left), TypeName(right))
	}
	if e.Op == ast.OpAnd {
		return Bool{Value: lb.Value && rb.Value}, nil
	}
	return Bool{Value: lb.Value || rb.Value}, nil
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpression, env *Env) (Value, error) {
	v, err := in.evalExpr(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpNot:
		if b, ok := v.(Bool); ok {
			return Bool{Value: !b.Value}, nil
		}
	case ast.OpNeg:
		if n, ok := v.(Number); ok {
			return Number{Value: -n.Value}, nil
		}
	case ast.OpPlus:
		if n, ok := v.(Number); ok {
			return n, nil
		}
	}
	return nil, runtimeErr(diagnostics.EInvalidOperandTypes, e.Span,
		"operator '%s' cannot be applied to %s", e.Op, TypeName(v))
}

func (in *Interpreter) evalAssignment(e *ast.AssignmentExpression, env *Env) (Value, error) {
	if m, ok := e.Target.(*ast.MemberExpression); ok && m.Computed {
		return nil, runtimeErr(diagnostics.EComputedProperty, m.Span,
			"computed property access is not supported")
	}
	v, err := in.evalExpr(e.Value, env)
	if err != nil {
		return nil, err
	}

	switch target := e.Target.(type) {
	case *ast.Identifier:
		if err := env.Assign(target.Name, v); err != nil {
			return nil, withSpan(err, target.Span)
		}
	case *ast.MemberExpression:
		obj, err := in.evalExpr(target.Object, env)
		if err != nil {
			return nil, err
		}
		ov, ok := obj.(EnvValue)
		if !ok {
			return nil, runtimeErr(diagnostics.EInvalidObject, target.Span,
				"cannot set property '%s' on %s", target.Property, TypeName(obj))
		}
		ov.Env.Define(target.Property, v)
	default:
		panic(fmt.Sprintf("evaluator: invalid assignment target %T", e.Target))
	}
	return v, nil
}

func (in *Interpreter) evalArgs(args []ast.Expr, env *Env) ([]Value, error) {
	out := make([]Value, 0, len(args))
	for _, a := range args {
		v, err := in.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (in *Interpreter) evalCall(e *ast.CallExpression, env *Env) (Value, error) {
	callee, err := in.evalExpr(e.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(Function)
	if !ok {
		return nil, runtimeErr(diagnostics.EVariableNotDefined, e.Span,
			"%s is not a function", TypeName(callee))
	}
	args, err := in.evalArgs(e.Arguments, env)
	if err != nil {
		return nil, err
	}
	return in.call(fn, args, e.Span)
}

func (in *Interpreter) evalMember(e *ast.MemberExpression, env *Env) (Value, error) {
	if e.Computed {
		return nil, runtimeErr(diagnostics.EComputedProperty, e.Span,
			"computed property access is not supported")
	}
	obj, err := in.evalExpr(e.Object, env)
	if err != nil {
		return nil, err
	}
	ov, ok := obj.(EnvValue)
	if !ok {
		return nil, runtimeErr(diagnostics.EInvalidObject, e.Span,
			"cannot read property '%s' of %s", e.Property, TypeName(obj))
	}
	v, err := ov.Env.Lookup(e.Property)
	if err != nil {
		return nil, withSpan(err, e.Span)
	}
	return v, nil
}

func (in *Interpreter) evalNew(e *ast.NewExpression, env *Env) (Value, error) {
	callee, err := in.evalExpr(e.Callee, env)
	if err != nil {
		return nil, err
	}
	class, ok := callee.(EnvValue)
	if !ok {
		return nil, runtimeErr(diagnostics.EClassNotAnEnvironment, e.Span,
			"cannot instantiate %s", TypeName(callee))
	}
	instance, err := in.newEnv(KindInstance, class.Env.Name(), class.Env, e.Span)
	if err != nil {
		return nil, err
	}

	ctorVal, err := class.Env.Lookup("constructor")
	if err != nil {
		return nil, runtimeErr(diagnostics.EConstructorNotFound, e.Span,
			"class '%s' has no constructor", class.Env.Name())
	}
	ctor, ok := ctorVal.(*UserFunction)
	if !ok {
		return nil, runtimeErr(diagnostics.EConstructorNotFound, e.Span,
			"constructor of '%s' is a %s, not a function", class.Env.Name(), TypeName(ctorVal))
	}

	args, err := in.evalArgs(e.Arguments, env)
	if err != nil {
		return nil, err
	}
	self := EnvValue{Env: instance}
	if _, err := in.call(ctor, append([]Value{self}, args...), e.Span); err != nil {
		return nil, err
	}
	return self, nil
}

func (in *Interpreter) evalSuper(e *ast.Super, env *Env) (Value, error) {
	v, err := env.Lookup(e.Class.Name)
	if err != nil {
		return nil, withSpan(err, e.Class.Span)
	}
	class, ok := v.(EnvValue)
	if !ok {
		return nil, runtimeErr(diagnostics.EClassNotAnEnvironment, e.Span,
			"super target '%s' is a %s, not a class", e.Class.Name, TypeName(v))
	}
	parent := class.Env.Parent()
	if parent == nil {
		return nil, runtimeErr(diagnostics.EVariableNotDefined, e.Span,
			"'%s' has no parent environment", e.Class.Name)
	}
	return EnvValue{Env: parent}, nil
}

func (in *Interpreter) evalImport(e *ast.Import) (Value, error) {
	if in.opts.Loader == nil {
		return nil, runtimeErr(diagnostics.EIO, e.Span, "cannot import '%s': no module loader configured", e.Name)
	}
	span := e.Span
	data := map[string]string{"module": e.Name}
	in.emit(TraceImportStart, &span, data)

	prog, err := in.opts.Loader.Load(e.Name)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &RuntimeError{
			Code:    diagnostics.EIO,
			Message: fmt.Sprintf("cannot import '%s': %s", e.Name, err),
			Span:    &span,
			Err:     err,
		}
	}

	mod, err := in.declareModule(e.Name, prog.Body, in.global, span)
	if err != nil {
		return nil, err
	}
	in.emit(TraceImportEnd, &span, data)
	return mod, nil
}

// --- calls ---

func (in *Interpreter) call(fn Function, args []Value, span ast.Span) (Value, error) {
	switch f := fn.(type) {
	case *NativeFunction:
		return in.callNative(f, args, span)
	case *UserFunction:
		return in.callBody(f.Name, f.Params, f.Body, f.Env, args, span)
	case *LambdaFunction:
		return in.callBody("lambda", f.Params, f.Body, f.Env, args, span)
	}
	panic(fmt.Sprintf("evaluator: unhandled function %T", fn))
}

func (in *Interpreter) callNative(f *NativeFunction, args []Value, span ast.Span) (Value, error) {
	data := map[string]string{"fn": f.Name}
	in.emit(TraceCallStart, &span, data)
	defer in.emit(TraceCallEnd, &span, data)
	v, err := f.Fn(args)
	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			return nil, withSpan(err, span)
		}
		return nil, &RuntimeError{
			Code:    diagnostics.EIO,
			Message: fmt.Sprintf("native '%s' failed: %s", f.Name, err),
			Span:    &span,
			Err:     err,
		}
	}
	if v == nil {
		return Null{}, nil
	}
	return v, nil
}

// callBody binds params in a fresh activation environment and runs body, which is
// a *ast.BlockStatement or an expression. Like callNative it pairs every
// call_start with a call_end, including calls that fail.
func (in *Interpreter) callBody(name string, params []string, body ast.Node, closure *Env, args []Value, span ast.Span) (Value, error) {
	data := map[string]string{"fn": name}
	in.emit(TraceCallStart, &span, data)
	defer in.emit(TraceCallEnd, &span, data)

	act, err := in.newEnv(KindScope, name, closure, span)
	if err != nil {
		return nil, err
	}
	for i, p := range params {
		var v Value = Null{}
		if i < len(args) {
			v = args[i]
		}
		act.Define(p, v)
	}

	var result Value = Null{}
	switch b := body.(type) {
	case *ast.BlockStatement:
		for _, stmt := range b.Body {
			c, err := in.execStmt(stmt, act)
			if err != nil {
				return nil, err
			}
			if c.returning {
				result = c.value
				break
			}
		}
	case ast.Expr:
		result, err = in.evalExpr(b, act)
		if err != nil {
			return nil, err
		}
	default:
		panic(fmt.Sprintf("evaluator: unhandled function body %T", body))
	}
	return result, nil
}
