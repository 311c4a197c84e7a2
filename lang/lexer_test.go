package lang

import (
	"errors"
	"testing"
)

func TestScan_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "empty input",
			input: "",
			want:  []TokenKind{TokenEOF},
		},
		{
			name:  "let declaration",
			input: "let x = 1;",
			want: []TokenKind{
				TokenLet, TokenIdent, TokenAssign, TokenNumber,
				TokenSemicolon, TokenEOF,
			},
		},
		{
			name:  "function declaration",
			input: "function add(a, b) { return a + b; }",
			want: []TokenKind{
				TokenFunction, TokenIdent, TokenLParen, TokenIdent,
				TokenComma, TokenIdent, TokenRParen, TokenLBrace,
				TokenReturn, TokenIdent, TokenPlus, TokenIdent,
				TokenSemicolon, TokenRBrace, TokenEOF,
			},
		},
		{
			name:  "equality family",
			input: "a == b === c != d !== e",
			want: []TokenKind{
				TokenIdent, TokenEq, TokenIdent, TokenStrictEq,
				TokenIdent, TokenNotEq, TokenIdent, TokenStrictNotEq,
				TokenIdent, TokenEOF,
			},
		},
		{
			name:  "comparison family",
			input: "a < b <= c > d >= e",
			want: []TokenKind{
				TokenIdent, TokenLess, TokenIdent, TokenLessEq,
				TokenIdent, TokenGreater, TokenIdent, TokenGreaterEq,
				TokenIdent, TokenEOF,
			},
		},
		{
			name:  "logical operators",
			input: "a && b || c",
			want: []TokenKind{
				TokenIdent, TokenAndAnd, TokenIdent, TokenOrOr,
				TokenIdent, TokenEOF,
			},
		},
		{
			name:  "booleans and keywords",
			input: "if (true) {} else { false }",
			want: []TokenKind{
				TokenIf, TokenLParen, TokenTrue, TokenRParen,
				TokenLBrace, TokenRBrace, TokenElse, TokenLBrace,
				TokenFalse, TokenRBrace, TokenEOF,
			},
		},
		{
			name:  "line comment is skipped",
			input: "1 // comment\n2",
			want:  []TokenKind{TokenNumber, TokenNumber, TokenEOF},
		},
		{
			name:  "block comment is skipped",
			input: "1 /* multi\nline */ 2",
			want:  []TokenKind{TokenNumber, TokenNumber, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}

			if len(tokens) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %v",
					len(tt.want), len(tokens), tokens)
			}

			for i, kind := range tt.want {
				if tokens[i].Kind != kind {
					t.Errorf("token %d: expected %v, got %v",
						i, kind, tokens[i].Kind)
				}
			}
		})
	}
}

func TestScan_Literals(t *testing.T) {
	tokens, err := Scan(`let msg = 'single' + "double" + 3.14;`)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	strs := make([]string, 0, 2)

	for _, tok := range tokens {
		if tok.Kind == TokenString {
			strs = append(strs, tok.Literal)
		}
	}

	if len(strs) != 2 || strs[0] != "single" || strs[1] != "double" {
		t.Errorf("expected string literals without quotes, got %v", strs)
	}

	last := tokens[len(tokens)-2]
	if last.Kind != TokenSemicolon {
		t.Errorf("expected trailing semicolon, got %v", last.Kind)
	}
}

func TestScan_Positions(t *testing.T) {
	tokens, err := Scan("let x = 1;\nx + 2;")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	// The 'x' on the second line.
	var second *Token

	for i := range tokens {
		if tokens[i].Kind == TokenIdent && tokens[i].Pos.Line == 2 {
			second = &tokens[i]

			break
		}
	}

	if second == nil {
		t.Fatal("expected an identifier on line 2")
	}

	if second.Pos.Column != 1 {
		t.Errorf("expected column 1, got %d", second.Pos.Column)
	}
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated string", input: `"never closed`},
		{name: "multiple decimal points", input: "1.2.3"},
		{name: "bare ampersand", input: "a & b"},
		{name: "bare pipe", input: "a | b"},
		{name: "bare bang", input: "!a"},
		{name: "unknown character", input: "a # b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.input)
			if err == nil {
				t.Fatal("expected a lex error")
			}

			if !errors.Is(err, ErrLex) {
				t.Errorf("expected ErrLex, got %v", err)
			}
		})
	}
}

func TestScan_IdentifierCharset(t *testing.T) {
	tokens, err := Scan("_foo $bar baz9")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []string{"_foo", "$bar", "baz9"}

	for i, lit := range want {
		if tokens[i].Kind != TokenIdent || tokens[i].Literal != lit {
			t.Errorf("token %d: expected identifier %q, got %v %q",
				i, lit, tokens[i].Kind, tokens[i].Literal)
		}
	}
}
