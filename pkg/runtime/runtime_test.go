package runtime_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thomasrohde/eva/pkg/config"
	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/evaluator"
	"github.com/thomasrohde/eva/pkg/runtime"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	rt := runtime.New(runtime.WithStdout(&out))
	res, err := rt.Run(`let x = 2; print("x is", x); x * 21;`, "main.eva")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != evaluator.NewNumber(42) {
		t.Errorf("value = %v, want 42", res.Value)
	}
	if out.String() != "x is 2\n" {
		t.Errorf("output = %q", out.String())
	}
	if res.Environments != 1 {
		t.Errorf("Environments = %d, want 1", res.Environments)
	}
}

func TestRun_ParseError(t *testing.T) {
	_, err := runtime.New().Run(`let = 1;`, "bad.eva")
	var diagErr *runtime.DiagnosticError
	if !errors.As(err, &diagErr) {
		t.Fatalf("expected *DiagnosticError, got %T: %v", err, err)
	}
	if diagErr.Diagnostics[0].Code != diagnostics.EParse {
		t.Errorf("code = %s", diagErr.Diagnostics[0].Code)
	}
	if diagErr.Incomplete() {
		t.Error("a parse error in the middle is not incomplete input")
	}
}

func TestRun_ValidationError(t *testing.T) {
	_, err := runtime.New().Run(`return 1;`, "bad.eva")
	var diagErr *runtime.DiagnosticError
	if !errors.As(err, &diagErr) {
		t.Fatalf("expected *DiagnosticError, got %T: %v", err, err)
	}
	if diagErr.Diagnostics[0].Code != diagnostics.EReturnOutsideFunction {
		t.Errorf("code = %s", diagErr.Diagnostics[0].Code)
	}
	if !strings.Contains(diagErr.Error(), "E_RETURN_OUTSIDE_FUNCTION") {
		t.Errorf("Error() = %q", diagErr.Error())
	}
}

func TestRun_ZeroParamConstructor(t *testing.T) {
	src := `class A { def constructor() { 1; } } new A(); 7;`
	for _, mode := range []evaluator.ReturnMode{evaluator.ReturnEager, evaluator.ReturnShallow} {
		res, err := runtime.New(runtime.WithReturnMode(mode)).Run(src, "main.eva")
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if res.Value != evaluator.NewNumber(7) {
			t.Errorf("%s: value = %v, want 7", mode, res.Value)
		}
	}
	// eva check still flags it.
	diags := runtime.New().Check(src, "main.eva")
	if len(diags) != 1 || diags[0].Code != diagnostics.EConstructorShape {
		t.Errorf("Check diagnostics = %v", diags)
	}
}

func TestRun_RuntimeError(t *testing.T) {
	res, err := runtime.New().Run(`let a = 1; a.b;`, "main.eva")
	var rtErr *evaluator.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Code != diagnostics.EInvalidObject {
		t.Fatalf("expected E_INVALID_OBJECT, got %v", err)
	}
	if res == nil {
		t.Fatal("expected a partial result alongside the error")
	}
}

func TestRun_Options(t *testing.T) {
	src := `def g() { if (true) { return 1; 2; } return 3; } g();`
	res, err := runtime.New(runtime.WithReturnMode(evaluator.ReturnShallow)).Run(src, "m.eva")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != evaluator.NewNumber(3) {
		t.Errorf("shallow value = %v, want 3", res.Value)
	}

	_, err = runtime.New(runtime.WithMaxEnvironments(2)).Run(`{ { 1; } }`, "m.eva")
	var rtErr *evaluator.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Code != diagnostics.EAllocation {
		t.Errorf("expected E_ALLOCATION, got %v", err)
	}

	res, err = runtime.New(runtime.WithVersion("2.0.0")).Run(`VERSION;`, "m.eva")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != evaluator.NewString("2.0.0") {
		t.Errorf("VERSION = %v", res.Value)
	}
}

func TestRun_ImportFromModuleDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Greet.eva"), []byte(`def hello(n) { return n + 1; }`), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := runtime.New(runtime.WithModuleDir(dir)).Run(`import Greet; Greet.hello(41);`, "main.eva")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != evaluator.NewNumber(42) {
		t.Errorf("value = %v", res.Value)
	}

	_, err = runtime.New(runtime.WithModuleDir(dir)).Run(`import Missing;`, "main.eva")
	var rtErr *evaluator.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Code != diagnostics.EIO {
		t.Errorf("expected E_IO, got %v", err)
	}
}

func TestRun_WithConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Lib.eva"), []byte(`let v = 7;`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.ModuleDir = dir
	cfg.ReturnMode = "shallow"
	res, err := runtime.New(runtime.WithConfig(cfg)).Run(`(import Lib).v;`, "main.eva")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != evaluator.NewNumber(7) {
		t.Errorf("value = %v", res.Value)
	}
}

func TestRun_Trace(t *testing.T) {
	var events []evaluator.TraceEvent
	rt := runtime.New(
		runtime.WithStdout(&bytes.Buffer{}),
		runtime.WithRunID("abc"),
		runtime.WithTrace(func(e evaluator.TraceEvent) { events = append(events, e) }),
	)
	if _, err := rt.Run(`print(1);`, "main.eva"); err != nil {
		t.Fatal(err)
	}
	if len(events) != 4 || events[0].Event != evaluator.TraceRunStart || events[0].RunID != "abc" {
		t.Errorf("events = %+v", events)
	}
}

func TestCheck(t *testing.T) {
	rt := runtime.New()
	if diags := rt.Check(`let x = 1;`, "ok.eva"); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if diags := rt.Check(`def f(a, a) {}`, "dup.eva"); len(diags) != 1 || diags[0].Code != diagnostics.EDupParam {
		t.Errorf("diagnostics = %v", diags)
	}
	if diags := rt.Check(`let x = `, "eof.eva"); !diagnostics.IsIncomplete(diags) {
		t.Errorf("expected E_EOF, got %v", diags)
	}
}

func TestFormat(t *testing.T) {
	got, err := runtime.New().Format(`let x=1;`, "f.eva")
	if err != nil {
		t.Fatal(err)
	}
	if got != "let x = 1;\n" {
		t.Errorf("Format = %q", got)
	}
	if _, err := runtime.New().Format(`let`, "f.eva"); err == nil {
		t.Error("expected error")
	}
}

func TestDumpAST(t *testing.T) {
	out, err := runtime.New().DumpAST(`let x = 1;`, "a.eva", false)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ast.Program", "ast.VariableStatement", `"x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "StartLine") {
		t.Errorf("spans should be hidden:\n%s", out)
	}

	withSpans, err := runtime.New().DumpAST(`let x = 1;`, "a.eva", true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(withSpans, "StartLine") {
		t.Errorf("spans should be shown:\n%s", withSpans)
	}
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	s, err := runtime.New(runtime.WithStdout(&out)).NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Eval(`let count = 1;`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Eval(`def bump() { count = count + 1; return count; }`); err != nil {
		t.Fatal(err)
	}
	v, err := s.Eval(`bump(); bump();`)
	if err != nil {
		t.Fatal(err)
	}
	if v != evaluator.NewNumber(3) {
		t.Errorf("value = %v, want 3", v)
	}

	_, err = s.Eval(`def f() {`)
	var diagErr *runtime.DiagnosticError
	if !errors.As(err, &diagErr) || !diagErr.Incomplete() {
		t.Errorf("expected incomplete input, got %v", err)
	}

	globals := strings.Join(s.Globals(), ",")
	if !strings.Contains(globals, "bump") || !strings.Contains(globals, "count") {
		t.Errorf("globals = %s", globals)
	}
}
