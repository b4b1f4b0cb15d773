package evaluator

import (
	"fmt"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
)

// RuntimeError is an error raised while evaluating a program.
type RuntimeError struct {
	Code    string
	Message string
	Span    *ast.Span
	Err     error
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error to a diagnostic.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(e.Code, e.Message, e.Span, "")
}

// ParseError reports that an imported module failed to lex or parse.
type ParseError struct {
	Module      string
	Diagnostics []diagnostics.Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("module '%s' failed to parse", e.Module)
	}
	return fmt.Sprintf("module '%s': %s", e.Module, e.Diagnostics[0].Message)
}
