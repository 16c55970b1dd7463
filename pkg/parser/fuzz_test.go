package parser_test

import (
	"strings"
	"testing"

	"github.com/acarlucci/gocalc/pkg/parser"
	"github.com/acarlucci/gocalc/pkg/types"
)

// FuzzCompile asserts parser totality: any input either compiles to a
// non-nil tree or fails with a coded *types.Error, and never panics.
func FuzzCompile(f *testing.F) {
	seeds := []string{
		"",
		"1",
		"-1",
		"2+3*4",
		"(5+3)*2-4",
		"2**3**2",
		"-2**2",
		"10 % 3",
		"0.5e10",
		".5",
		"2e",
		"1e999",
		"((((((1))))))",
		"2 ^ 3",
		"x + 1",
		"__import__('os')",
		"2..3",
		")(",
		"\t 2 \n+ 3",
		"é",
		strings.Repeat("(", 80),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		expr, err := parser.Compile(input)
		if err != nil {
			if types.CodeOf(err) == "" {
				t.Errorf("Compile(%q) error without code: %v", input, err)
			}
			return
		}
		if expr == nil || expr.AST() == nil {
			t.Fatalf("Compile(%q) returned nil expression without error", input)
		}

		// A successful parse renders to a form that parses back to the
		// same rendering. The render is fully parenthesized, so it can
		// nest deeper than the source; the depth guard is the one
		// legitimate re-parse failure.
		rendered := expr.AST().String()
		again, err := parser.Compile(rendered)
		if err != nil {
			if strings.Contains(err.Error(), "deeply nested") {
				return
			}
			t.Fatalf("re-parse of %q (from %q) failed: %v", rendered, input, err)
		}
		if got := again.AST().String(); got != rendered {
			t.Errorf("re-parse of %q = %q, want unchanged", rendered, got)
		}
	})
}
