package stdlib

import (
	"fmt"
	"io"
	"strings"

	"github.com/thomasrohde/eva/pkg/evaluator"
)

// RegisterDefaults adds the built-in natives.
func RegisterDefaults(r *Registry) {
	r.Register(Fn{Name: "print", Execute: stdlibPrint})
}

// stdlibPrint writes its arguments space-separated and newline-terminated.
func stdlibPrint(w io.Writer, args []evaluator.Value) (evaluator.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = evaluator.ToString(a)
	}
	if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return evaluator.Null{}, nil
}
