package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestParseString_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []StmtKind
	}{
		{
			name:  "let with initializer",
			input: "let x = 1;",
			want:  []StmtKind{StmtLet},
		},
		{
			name:  "let without initializer",
			input: "let x;",
			want:  []StmtKind{StmtLet},
		},
		{
			name:  "expression statement",
			input: "1 + 2;",
			want:  []StmtKind{StmtExpr},
		},
		{
			name:  "function declaration",
			input: "function f(a, b) { return a; }",
			want:  []StmtKind{StmtFunc},
		},
		{
			name:  "if else chain",
			input: "if (x) { 1; } else if (y) { 2; } else { 3; }",
			want:  []StmtKind{StmtIf},
		},
		{
			name:  "freestanding block",
			input: "{ let x = 1; }",
			want:  []StmtKind{StmtBlock},
		},
		{
			name:  "semicolon optional before EOF",
			input: "1 + 2",
			want:  []StmtKind{StmtExpr},
		},
		{
			name:  "mixed sequence",
			input: "let x = 1; x = 2; x + 3;",
			want:  []StmtKind{StmtLet, StmtExpr, StmtExpr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseString(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if len(prog.Stmts) != len(tt.want) {
				t.Fatalf("expected %d statements, got %d",
					len(tt.want), len(prog.Stmts))
			}

			for i, kind := range tt.want {
				if prog.Stmts[i].Kind != kind {
					t.Errorf("statement %d: expected %v, got %v",
						i, kind, prog.Stmts[i].Kind)
				}
			}
		})
	}
}

func TestParseString_Precedence(t *testing.T) {
	prog, err := ParseString(t.Context(), "1 + 2 * 3;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	expr := prog.Stmts[0].Expr
	if expr.Kind != ExprBinary || expr.Op != OpAdd {
		t.Fatalf("expected '+' at the root, got %v %v", expr.Kind, expr.Op)
	}

	if expr.Right.Kind != ExprBinary || expr.Right.Op != OpMul {
		t.Errorf("expected '*' as right operand, got %v %v",
			expr.Right.Kind, expr.Right.Op)
	}
}

func TestParseString_ParensOverridePrecedence(t *testing.T) {
	prog, err := ParseString(t.Context(), "(1 + 2) * 3;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	expr := prog.Stmts[0].Expr
	if expr.Op != OpMul {
		t.Fatalf("expected '*' at the root, got %v", expr.Op)
	}

	if expr.Left.Op != OpAdd {
		t.Errorf("expected '+' as left operand, got %v", expr.Left.Op)
	}
}

func TestParseString_LeftAssociativity(t *testing.T) {
	prog, err := ParseString(t.Context(), "10 - 3 - 2;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	// (10 - 3) - 2, not 10 - (3 - 2).
	expr := prog.Stmts[0].Expr
	if expr.Op != OpSub || expr.Left.Op != OpSub {
		t.Errorf("expected left-associative '-', got root %v left %v",
			expr.Op, expr.Left.Kind)
	}
}

func TestParseString_AssignmentRightAssociative(t *testing.T) {
	prog, err := ParseString(t.Context(), "a = b = 1;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	expr := prog.Stmts[0].Expr
	if expr.Kind != ExprAssign || expr.Name != "a" {
		t.Fatalf("expected assignment to a, got %v", expr.Kind)
	}

	if expr.Value.Kind != ExprAssign || expr.Value.Name != "b" {
		t.Errorf("expected nested assignment to b, got %v", expr.Value.Kind)
	}
}

func TestParseString_CallChain(t *testing.T) {
	prog, err := ParseString(t.Context(), "f(1)(2, 3);")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	expr := prog.Stmts[0].Expr
	if expr.Kind != ExprCall || len(expr.Args) != 2 {
		t.Fatalf("expected outer call with 2 args, got %v with %d",
			expr.Kind, len(expr.Args))
	}

	if expr.Callee.Kind != ExprCall || len(expr.Callee.Args) != 1 {
		t.Errorf("expected inner call with 1 arg, got %v",
			expr.Callee.Kind)
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing semicolon between statements", input: "1 2"},
		{name: "let without name", input: "let = 1;"},
		{name: "unclosed paren", input: "(1 + 2;"},
		{name: "unclosed block", input: "function f() { return 1;"},
		{name: "if without parens", input: "if x { 1; }"},
		{name: "if without block", input: "if (x) 1;"},
		{name: "assignment to literal", input: "1 = 2;"},
		{name: "assignment to call", input: "f() = 2;"},
		{name: "dangling operator", input: "1 +;"},
		{name: "empty parens expression", input: "();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(t.Context(), tt.input)
			if err == nil {
				t.Fatal("expected a parse error")
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParseString_ErrorSnippet(t *testing.T) {
	_, err := ParseString(t.Context(), "let x = 1;\nlet = 2;")
	if err == nil {
		t.Fatal("expected a parse error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "line 2") {
		t.Errorf("expected error to name line 2, got %q", msg)
	}

	if !strings.Contains(msg, "^") {
		t.Errorf("expected caret marker in error, got %q", msg)
	}
}

func TestParseString_ReturnWithoutValue(t *testing.T) {
	prog, err := ParseString(t.Context(), "function f() { return; }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	body := prog.Stmts[0].Body
	if len(body) != 1 || body[0].Kind != StmtReturn {
		t.Fatalf("expected a single return statement, got %v", body)
	}

	if body[0].Expr != nil {
		t.Error("expected bare return to carry no expression")
	}
}
