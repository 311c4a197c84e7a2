package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/r1tsuu/rsx/lang"
)

func TestWordBounds_IdentifierRunes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "let _tmp", 8, "_tmp", 4, 8},
		{"dollar_sign", "$x = 1", 2, "$x", 0, 2},
		{"trailing_digits", "value2", 6, "value2", 0, 6},
		// Hyphens are minus operators, never identifier characters.
		{"hyphen_splits", "a-b", 3, "b", 2, 3},
		{"after_assign", "x = cou", 7, "cou", 4, 7},
		{"empty_after_semicolon", "let x = 1;", 10, "", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestEvalCandidates_GlobalsAndKeywords(t *testing.T) {
	interp := lang.NewInterp()

	_, err := interp.EvalString(t.Context(),
		"let count = 1; function greet(name) { return name; }")
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}

	candidates := evalCandidates(interp)

	for _, want := range []string{"count", "greet", "let", "function", "return"} {
		if !slices.Contains(candidates, want) {
			t.Errorf("candidates missing %q: %v", want, candidates)
		}
	}
}

func TestFormatPreview(t *testing.T) {
	interp := lang.NewInterp()

	_, err := interp.EvalString(t.Context(),
		`let n = 42; let s = "hi"; function add(a, b) { return a + b; }`)
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}

	globals := interp.Globals()

	if got := formatPreview(globals, "n"); got != "= 42" {
		t.Errorf("preview for n = %q, want %q", got, "= 42")
	}

	if got := formatPreview(globals, "s"); got != `= "hi"` {
		t.Errorf("preview for s = %q, want %q", got, `= "hi"`)
	}

	got := formatPreview(globals, "add")
	if !strings.Contains(got, "function add(a, b)") {
		t.Errorf("preview for add = %q, want function signature", got)
	}

	if got := formatPreview(globals, "missing"); got != "" {
		t.Errorf("preview for missing = %q, want empty", got)
	}
}

func TestFormatPreview_TruncatesLongValues(t *testing.T) {
	interp := lang.NewInterp()

	long := strings.Repeat("x", 100)

	_, err := interp.EvalString(t.Context(), `let s = "`+long+`";`)
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}

	got := formatPreview(interp.Globals(), "s")
	if !strings.HasSuffix(got, "...") {
		t.Errorf("preview %q not truncated", got)
	}

	if len(got) > 48 {
		t.Errorf("preview too long: %d bytes", len(got))
	}
}
