// Package modules resolves `import Name` to `<dir>/Name.eva` source files.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/evaluator"
	"github.com/thomasrohde/eva/pkg/parser"
	"github.com/thomasrohde/eva/pkg/validator"
)

// Ext is the file extension of Eva source files.
const Ext = ".eva"

// FileLoader loads modules from a directory. It implements evaluator.ModuleLoader.
type FileLoader struct {
	Dir string
}

// LoadError reports a module file that could not be read.
type LoadError struct {
	Module string
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("module '%s': %s", e.Module, e.Err)
	}
	return fmt.Sprintf("module '%s' (%s): %s", e.Module, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Path returns the file a module name maps to.
func (l FileLoader) Path(name string) string {
	return filepath.Join(l.Dir, name+Ext)
}

// Load reads, parses and validates the named module with a fresh parser, so
// imported files obey the same static rules as the entry file.
func (l FileLoader) Load(name string) (*ast.Program, error) {
	if err := checkName(name); err != nil {
		return nil, &LoadError{Module: name, Err: err}
	}
	path := l.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Module: name, Path: path, Err: err}
	}
	prog, diags := parser.Parse(string(data), path)
	if len(diags) > 0 {
		return nil, &evaluator.ParseError{Module: name, Diagnostics: diags}
	}
	if diags := validator.Validate(prog); len(diags) > 0 {
		return nil, &evaluator.ParseError{Module: name, Diagnostics: diags}
	}
	return prog, nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("empty module name")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid module name %q", name)
	}
	return nil
}
