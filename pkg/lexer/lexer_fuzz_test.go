package lexer

import (
	"testing"
)

// FuzzTokenize feeds random inputs to the lexer to catch panics.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		`let def lambda return if else while do for switch case default`,
		`class extends new super module import true false null`,
		`42 0 007`,
		`"hello" 'single' "with\nescape" 'it\'s'`,
		`+ - * / > < >= <= == != && || ! =`,
		`{ } [ ] ( ) : ; , .`,
		`x foo bar_baz myVar`,
		`// line comment`,
		`/* block */ x /* unterminated`,
		`let x = 42;`,
		`class A extends B { def m(self) { return super(A).m(self); } }`,
		``,
		`   `,
		"\t\n\r",
		`"unterminated`,
		`'''`,
		`@#$^&|`,
		`\x00`,
		`"é" λ`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Tokenize panicked on input %q: %v", input, r)
				}
			}()
			Tokenize(input, "fuzz.eva")
		}()
	})
}
