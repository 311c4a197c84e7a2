package lang

import (
	"errors"
	"math"
	"testing"
)

func mustExecute(t *testing.T, source string) Value {
	t.Helper()

	value, err := Execute(t.Context(), source)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	return value
}

func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{name: "precedence", source: "1 + 4 * 78;", want: 313},
		{name: "subtraction", source: "50 - 4;", want: 46},
		{name: "division", source: "10 / 4;", want: 2.5},
		{name: "unary minus", source: "-3 + 5;", want: 2},
		{name: "double negation", source: "--4;", want: 4},
		{name: "grouping", source: "(1 + 4) * 78;", want: 390},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustExecute(t, tt.source)

			if value.Kind != Number || value.Num != tt.want {
				t.Errorf("expected %v, got %s", tt.want, value.Inspect())
			}
		})
	}
}

func TestExecute_StringConcat(t *testing.T) {
	value := mustExecute(t, `'Hello' + " " + "World";`)

	if value.Kind != String || value.Str != "Hello World" {
		t.Errorf("expected 'Hello World', got %s", value.Inspect())
	}
}

func TestExecute_DivisionByZero(t *testing.T) {
	value := mustExecute(t, "1 / 0;")

	if !math.IsInf(value.Num, 1) {
		t.Errorf("expected Infinity, got %s", value.Inspect())
	}

	value = mustExecute(t, "0 / 0;")

	if !math.IsNaN(value.Num) {
		t.Errorf("expected NaN, got %s", value.Inspect())
	}
}

func TestExecute_LastExpressionWins(t *testing.T) {
	value := mustExecute(t, "let x = 1; x + 1; x + 2;")

	if value.Num != 3 {
		t.Errorf("expected 3, got %s", value.Inspect())
	}
}

func TestExecute_NoExpressionStatement(t *testing.T) {
	value := mustExecute(t, "let x = 1;")

	if value.Kind != Undefined {
		t.Errorf("expected undefined, got %s", value.Inspect())
	}
}

func TestExecute_Shadowing(t *testing.T) {
	source := `
		let x = 1;
		{
			let x = 2;
		}
		x;
	`

	value := mustExecute(t, source)

	if value.Num != 1 {
		t.Errorf("expected outer x to remain 1, got %s", value.Inspect())
	}
}

func TestExecute_AssignmentReachesOuterScope(t *testing.T) {
	source := `
		let x = 1;
		{
			x = 2;
		}
		x;
	`

	value := mustExecute(t, source)

	if value.Num != 2 {
		t.Errorf("expected assignment to rebind outer x, got %s",
			value.Inspect())
	}
}

func TestExecute_FunctionCall(t *testing.T) {
	source := `
		function increment(a) {
			return a + 1;
		}
		increment(1);
	`

	value := mustExecute(t, source)

	if value.Num != 2 {
		t.Errorf("expected 2, got %s", value.Inspect())
	}
}

func TestExecute_Closure(t *testing.T) {
	source := `
		let base = 10;
		function addBase(n) {
			return base + n;
		}
		base = 20;
		addBase(5);
	`

	// The closure captures the environment, not a snapshot of values,
	// so it sees the rebound base.
	value := mustExecute(t, source)

	if value.Num != 25 {
		t.Errorf("expected 25, got %s", value.Inspect())
	}
}

func TestExecute_NestedClosures(t *testing.T) {
	source := `
		function outer(a) {
			function inner(b) {
				return a + b;
			}
			return inner(10);
		}
		outer(1);
	`

	value := mustExecute(t, source)

	if value.Num != 11 {
		t.Errorf("expected 11, got %s", value.Inspect())
	}
}

func TestExecute_Recursion(t *testing.T) {
	source := `
		function fib(n) {
			if (n < 2) {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		}
		fib(10);
	`

	value := mustExecute(t, source)

	if value.Num != 55 {
		t.Errorf("expected 55, got %s", value.Inspect())
	}
}

func TestExecute_MissingArgumentsAreUndefined(t *testing.T) {
	source := `
		function kind(a) {
			if (a == 1) {
				return "one";
			}
			return "other";
		}
		kind();
	`

	value := mustExecute(t, source)

	if value.Str != "other" {
		t.Errorf("expected missing argument to bind undefined, got %s",
			value.Inspect())
	}
}

func TestExecute_FallOffEndReturnsUndefined(t *testing.T) {
	source := `
		function noop() {
			1 + 1;
		}
		noop();
	`

	value := mustExecute(t, source)

	if value.Kind != Undefined {
		t.Errorf("expected undefined, got %s", value.Inspect())
	}
}

func TestExecute_ReturnShortCircuits(t *testing.T) {
	source := `
		function pick() {
			if (true) {
				return 1;
			}
			return 2;
		}
		pick();
	`

	value := mustExecute(t, source)

	if value.Num != 1 {
		t.Errorf("expected 1, got %s", value.Inspect())
	}
}

func TestExecute_Conditionals(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{
			name:   "then branch",
			source: "let x = 0; if (1 < 2) { x = 1; } x;",
			want:   1,
		},
		{
			name:   "else branch",
			source: "let x = 0; if (1 > 2) { x = 1; } else { x = 2; } x;",
			want:   2,
		},
		{
			name:   "else if chain",
			source: "let x = 0; if (false) { x = 1; } else if (true) { x = 2; } else { x = 3; } x;",
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustExecute(t, tt.source)

			if value.Num != tt.want {
				t.Errorf("expected %v, got %s", tt.want, value.Inspect())
			}
		})
	}
}

func TestExecute_Truthiness(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "zero is falsy", source: `let x = "f"; if (0) { x = "t"; } x;`, want: "f"},
		{name: "empty string is falsy", source: `let x = "f"; if ("") { x = "t"; } x;`, want: "f"},
		{name: "undefined is falsy", source: `let u; let x = "f"; if (u) { x = "t"; } x;`, want: "f"},
		{name: "nonzero is truthy", source: `let x = "f"; if (42) { x = "t"; } x;`, want: "t"},
		{name: "string is truthy", source: `let x = "f"; if ("no") { x = "t"; } x;`, want: "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustExecute(t, tt.source)

			if value.Kind != String || value.Str != tt.want {
				t.Errorf("expected %q, got %s", tt.want, value.Inspect())
			}
		})
	}
}

func TestExecute_LogicalOperatorsReturnOperands(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Value
	}{
		{name: "and short-circuit", source: `0 && 2;`, want: NumberValue(0)},
		{name: "and passes through", source: `1 && 2;`, want: NumberValue(2)},
		{name: "or short-circuit", source: `1 || 2;`, want: NumberValue(1)},
		{name: "or falls through", source: `0 || 2;`, want: NumberValue(2)},
		{name: "or with strings", source: `"" || "fallback";`, want: StringValue("fallback")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustExecute(t, tt.source)

			if !value.Equal(tt.want) {
				t.Errorf("expected %s, got %s",
					tt.want.Inspect(), value.Inspect())
			}
		})
	}
}

func TestExecute_ShortCircuitSkipsEvaluation(t *testing.T) {
	// The right side references an undeclared name; it must never
	// be evaluated.
	value := mustExecute(t, "0 && missing;")

	if value.Num != 0 {
		t.Errorf("expected 0, got %s", value.Inspect())
	}
}

func TestExecute_Equality(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{name: "numbers equal", source: "1 == 1;", want: true},
		{name: "strict equal", source: "1 === 1;", want: true},
		{name: "mixed kinds never equal", source: `1 == "1";`, want: false},
		{name: "not equal", source: "1 != 2;", want: true},
		{name: "strict not equal mixed", source: `1 !== "1";`, want: true},
		{name: "strings equal", source: `"a" == "a";`, want: true},
		{name: "NaN never equals itself", source: "0/0 == 0/0;", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustExecute(t, tt.source)

			if value.Kind != Boolean || value.Bool != tt.want {
				t.Errorf("expected %v, got %s", tt.want, value.Inspect())
			}
		})
	}
}

func TestExecute_ReferenceErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "read undeclared", source: "someUndefinedVariable;"},
		{name: "assign undeclared", source: "missing = 1;"},
		{name: "assign undeclared in block", source: "{ missing = 1; }"},
		{name: "read before declaration", source: "x; let x = 1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(t.Context(), tt.source)
			if err == nil {
				t.Fatal("expected a reference error")
			}

			if !errors.Is(err, ErrReference) {
				t.Errorf("expected ErrReference, got %v", err)
			}
		})
	}
}

func TestExecute_TypeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "number plus string", source: `1 + "a";`},
		{name: "string minus string", source: `"a" - "b";`},
		{name: "compare string to number", source: `"a" < 1;`},
		{name: "negate string", source: `-"a";`},
		{name: "call a number", source: "let x = 1; x(2);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(t.Context(), tt.source)
			if err == nil {
				t.Fatal("expected a type error")
			}

			if !errors.Is(err, ErrType) {
				t.Errorf("expected ErrType, got %v", err)
			}
		})
	}
}

func TestExecute_ReturnOutsideFunction(t *testing.T) {
	_, err := Execute(t.Context(), "return 1;")
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestExecute_CallDepthLimit(t *testing.T) {
	source := `
		function loop() {
			return loop();
		}
		loop();
	`

	_, err := Execute(t.Context(), source, WithMaxCallDepth(32))
	if err == nil {
		t.Fatal("expected a call depth error")
	}

	if !errors.Is(err, ErrCallDepth) {
		t.Errorf("expected ErrCallDepth, got %v", err)
	}
}

func TestExecute_FreshEnvironmentPerCall(t *testing.T) {
	// A declaration from one call must not leak into the next.
	if _, err := Execute(t.Context(), "let leak = 1;"); err != nil {
		t.Fatalf("execute error: %v", err)
	}

	_, err := Execute(t.Context(), "leak;")
	if !errors.Is(err, ErrReference) {
		t.Errorf("expected ErrReference for leaked binding, got %v", err)
	}
}

func TestExecute_Idempotent(t *testing.T) {
	source := "let x = 1; x = x + 1; x * 10;"

	first := mustExecute(t, source)
	second := mustExecute(t, source)

	if !first.Equal(second) {
		t.Errorf("expected identical results, got %s then %s",
			first.Inspect(), second.Inspect())
	}
}

func TestInterp_PersistentEnvironment(t *testing.T) {
	in := NewInterp()

	if _, err := in.EvalString(t.Context(), "let x = 1;"); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	value, err := in.EvalString(t.Context(), "x + 1;")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if value.Num != 2 {
		t.Errorf("expected persistent binding, got %s", value.Inspect())
	}
}

func TestInterp_GlobalsNames(t *testing.T) {
	in := NewInterp()

	_, err := in.EvalString(t.Context(), "let a = 1; function b() {}")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	names := in.Globals().Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted names [a b], got %v", names)
	}
}

func TestValue_Render(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "integer-valued number", source: "1 + 1;", want: "2"},
		{name: "fractional number", source: "10 / 4;", want: "2.5"},
		{name: "infinity", source: "1 / 0;", want: "Infinity"},
		{name: "negative infinity", source: "-1 / 0;", want: "-Infinity"},
		{name: "nan", source: "0 / 0;", want: "NaN"},
		{name: "string renders raw", source: `"hi";`, want: "hi"},
		{name: "boolean", source: "1 < 2;", want: "true"},
		{name: "undefined", source: "let x;", want: "undefined"},
		{name: "function", source: "function f() {} f;", want: "[Function: f]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustExecute(t, tt.source)

			if got := value.Render(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
