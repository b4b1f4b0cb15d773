// Package runtime provides the top-level Eva runtime orchestrator.
package runtime

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/config"
	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/evaluator"
	"github.com/thomasrohde/eva/pkg/formatter"
	"github.com/thomasrohde/eva/pkg/modules"
	"github.com/thomasrohde/eva/pkg/parser"
	"github.com/thomasrohde/eva/pkg/stdlib"
	"github.com/thomasrohde/eva/pkg/validator"
)

// Result holds the outcome of a program execution.
type Result struct {
	Value evaluator.Value
	// Environments is how many environments the run allocated.
	Environments int
}

// Runtime wires together all Eva components for program execution.
type Runtime struct {
	stdlib     *stdlib.Registry
	stdout     io.Writer
	loader     evaluator.ModuleLoader
	runID      string
	trace      func(event evaluator.TraceEvent)
	returnMode evaluator.ReturnMode
	maxEnvs    int
	version    string
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdlib sets the native registry.
func WithStdlib(r *stdlib.Registry) Option {
	return func(rt *Runtime) {
		rt.stdlib = r
	}
}

// WithStdout sets where print writes.
func WithStdout(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.stdout = w
	}
}

// WithLoader sets the module loader used by import.
func WithLoader(l evaluator.ModuleLoader) Option {
	return func(rt *Runtime) {
		rt.loader = l
	}
}

// WithModuleDir loads imported modules from dir.
func WithModuleDir(dir string) Option {
	return func(rt *Runtime) {
		rt.loader = modules.FileLoader{Dir: dir}
	}
}

// WithRunID sets the run ID for trace events.
func WithRunID(id string) Option {
	return func(rt *Runtime) {
		rt.runID = id
	}
}

// WithTrace sets the trace callback.
func WithTrace(fn func(event evaluator.TraceEvent)) Option {
	return func(rt *Runtime) {
		rt.trace = fn
	}
}

// WithReturnMode sets how nested returns propagate.
func WithReturnMode(m evaluator.ReturnMode) Option {
	return func(rt *Runtime) {
		rt.returnMode = m
	}
}

// WithMaxEnvironments caps environment allocation. Zero means unlimited.
func WithMaxEnvironments(n int) Option {
	return func(rt *Runtime) {
		rt.maxEnvs = n
	}
}

// WithVersion overrides the VERSION global.
func WithVersion(v string) Option {
	return func(rt *Runtime) {
		rt.version = v
	}
}

// WithConfig applies module_dir, return_mode and max_environments from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(rt *Runtime) {
		if cfg == nil {
			return
		}
		rt.loader = modules.FileLoader{Dir: cfg.ModuleDir}
		rt.returnMode = cfg.Mode()
		rt.maxEnvs = cfg.MaxEnvironments
	}
}

// New creates a new Runtime with the given options.
// By default the built-in natives print to os.Stdout and modules load from the working directory.
func New(opts ...Option) *Runtime {
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)

	rt := &Runtime{
		stdlib: reg,
		stdout: os.Stdout,
		loader: modules.FileLoader{Dir: "."},
		runID:  "cli",
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Run parses, validates, and executes an Eva program.
func (rt *Runtime) Run(source, filename string) (*Result, error) {
	program, err := rt.parseAndValidate(source, filename)
	if err != nil {
		return nil, err
	}

	in, err := evaluator.New(rt.execOptions())
	if err != nil {
		return nil, err
	}
	defer in.Close()

	value, err := in.Eval(program)
	return &Result{Value: value, Environments: in.Arena().Len()}, err
}

// Check parses and validates an Eva program without executing it.
func (rt *Runtime) Check(source, filename string) []diagnostics.Diagnostic {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return diags
	}
	return validator.Lint(program)
}

// Format parses and formats an Eva program.
func (rt *Runtime) Format(source, filename string) (string, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	return formatter.Format(program), nil
}

// DumpAST parses source and renders its syntax tree. Spans are omitted unless withSpans is set.
func (rt *Runtime) DumpAST(source, filename string, withSpans bool) (string, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	opts := []repr.Option{repr.Indent("  "), repr.OmitEmpty(true)}
	if !withSpans {
		opts = append(opts, repr.Hide(ast.Span{}))
	}
	return repr.String(program, opts...), nil
}

func (rt *Runtime) parseAndValidate(source, filename string) (*ast.Program, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return nil, &DiagnosticError{Diagnostics: diags}
	}
	if vDiags := validator.Validate(program); len(vDiags) > 0 {
		return nil, &DiagnosticError{Diagnostics: vDiags}
	}
	return program, nil
}

// execOptions constructs evaluator options from the runtime's configuration.
func (rt *Runtime) execOptions() evaluator.Options {
	return evaluator.Options{
		Natives:         stdlib.Natives(rt.stdlib, rt.stdout),
		Loader:          rt.loader,
		Trace:           rt.trace,
		RunID:           rt.runID,
		ReturnMode:      rt.returnMode,
		MaxEnvironments: rt.maxEnvs,
		Version:         rt.version,
	}
}

// Session keeps one interpreter alive across evaluations, for the REPL.
type Session struct {
	rt *Runtime
	in *evaluator.Interpreter
	n  int
}

// NewSession starts a persistent interpreter.
func (rt *Runtime) NewSession() (*Session, error) {
	in, err := evaluator.New(rt.execOptions())
	if err != nil {
		return nil, err
	}
	return &Session{rt: rt, in: in}, nil
}

// Eval parses, validates and evaluates one chunk of input against the session's globals.
func (s *Session) Eval(source string) (evaluator.Value, error) {
	s.n++
	program, err := s.rt.parseAndValidate(source, s.Name())
	if err != nil {
		return nil, err
	}
	return s.in.Eval(program)
}

// Name is the filename given to the most recent input.
func (s *Session) Name() string {
	return fmt.Sprintf("<repl:%d>", s.n)
}

// Globals lists the names bound in the session's global environment.
func (s *Session) Globals() []string {
	return s.in.Global().Keys()
}

// Close releases the session's environments.
func (s *Session) Close() {
	s.in.Close()
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// Incomplete reports whether the input ended before a statement was finished.
func (e *DiagnosticError) Incomplete() bool {
	return diagnostics.IsIncomplete(e.Diagnostics)
}
