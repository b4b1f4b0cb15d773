// Package diagnostics defines Eva diagnostic types for parse/validation/runtime errors.
package diagnostics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thomasrohde/eva/pkg/ast"
)

// Diagnostic code constants.
const (
	// Source errors.
	ELex   = "E_LEX"
	EParse = "E_PARSE"
	EEOF   = "E_EOF"

	// Validation.
	EReturnOutsideFunction = "E_RETURN_OUTSIDE_FUNCTION"
	EDupParam              = "E_DUP_PARAM"
	EDupDefault            = "E_DUP_DEFAULT"
	EConstructorShape      = "E_CONSTRUCTOR_SHAPE"

	// Runtime.
	EVariableNotDefined    = "E_VARIABLE_NOT_DEFINED"
	EInvalidOperandTypes   = "E_INVALID_OPERAND_TYPES"
	EClassNotAnEnvironment = "E_CLASS_NOT_AN_ENVIRONMENT"
	EConstructorNotFound   = "E_CONSTRUCTOR_NOT_FOUND"
	EComputedProperty      = "E_COMPUTED_PROPERTY_ACCESS"
	EInvalidObject         = "E_INVALID_OBJECT"
	EDivisionByZero        = "E_DIVISION_BY_ZERO"
	EAllocation            = "E_ALLOCATION"
	EIO                    = "E_IO"
	EConfig                = "E_CONFIG"
)

// Diagnostic represents a parse, validation, or runtime diagnostic.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Span    *ast.Span `json:"span,omitempty"`
	Hint    string    `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *ast.Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// IsIncomplete reports whether diags only complain about input ending too early.
func IsIncomplete(diags []Diagnostic) bool {
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		if d.Code != EEOF {
			return false
		}
	}
	return true
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		return marshal(d)
	}
	loc := "<unknown>"
	if d.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", d.Span.File, d.Span.StartLine, d.Span.StartCol)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		return marshal(diags)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}

// marshal encodes v without HTML escaping, keeping names like <stdin> readable.
func marshal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return strings.TrimSuffix(buf.String(), "\n")
}
