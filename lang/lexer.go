package lang

import (
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// Scan converts source text into a token stream. Scanning is eager: the
// entire input is tokenized before any parsing begins, so a lexical error
// anywhere in the input is reported even if earlier tokens would parse.
//
// The returned slice always ends with a TokenEOF token on success.
func Scan(source string) ([]Token, error) {
	s := &scanner{
		input: []byte(source),
		pos:   0,
		line:  1,
		col:   1,
	}

	return s.scan()
}

// scanner holds the lexer state.
type scanner struct {
	input []byte
	pos   int
	line  int
	col   int
}

func (s *scanner) scan() ([]Token, error) {
	tokens := make([]Token, 0, len(s.input)/4+1)

	for {
		s.skipWhitespaceAndComments()

		if s.eof() {
			break
		}

		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}

	return append(tokens, Token{Kind: TokenEOF, Pos: s.position()}), nil
}

// next scans the single token beginning at the current position.
// Whitespace and comments have already been consumed.
func (s *scanner) next() (Token, error) {
	pos := s.position()
	ch := s.peek()

	switch {
	case isIdentifierStart(ch):
		return s.scanIdentifier(pos), nil

	case isDigit(ch):
		return s.scanNumber(pos)

	case ch == '"' || ch == '\'':
		return s.scanString(pos, ch)
	}

	return s.scanOperator(pos, ch)
}

// scanIdentifier scans an identifier or keyword.
func (s *scanner) scanIdentifier(pos Position) Token {
	start := s.pos

	for !s.eof() && isIdentifierContinue(s.peek()) {
		s.advance()
	}

	literal := string(s.input[start:s.pos])

	if kind, ok := keywords[literal]; ok {
		return Token{Kind: kind, Literal: literal, Pos: pos}
	}

	return Token{Kind: TokenIdent, Literal: literal, Pos: pos}
}

// scanNumber scans a decimal literal with an optional fractional part.
// A second '.' inside one literal is a lexical error.
func (s *scanner) scanNumber(pos Position) (Token, error) {
	start := s.pos
	sawDot := false

	for !s.eof() {
		ch := s.peek()

		if ch == '.' {
			if sawDot {
				return Token{}, ErrLex.WithPosition(s.position()).
					With(slog.String("reason", "number has multiple decimal points"))
			}

			sawDot = true

			s.advance()

			continue
		}

		if !isDigit(ch) {
			break
		}

		s.advance()
	}

	return Token{
		Kind:    TokenNumber,
		Literal: string(s.input[start:s.pos]),
		Pos:     pos,
	}, nil
}

// scanString scans a string literal delimited by the given quote rune.
// There is no escape processing: the literal is the raw text between the
// delimiters. Reaching end of input before the closing quote is an error.
func (s *scanner) scanString(pos Position, quote rune) (Token, error) {
	s.advance() // opening quote

	start := s.pos

	for !s.eof() {
		if s.peek() == quote {
			literal := string(s.input[start:s.pos])
			s.advance() // closing quote

			return Token{Kind: TokenString, Literal: literal, Pos: pos}, nil
		}

		s.advance()
	}

	return Token{}, ErrLex.WithPosition(pos).
		With(slog.String("reason", "unterminated string literal"))
}

// scanOperator scans operators and punctuation, including the two- and
// three-character forms (==, ===, !=, !==, <=, >=, &&, ||).
func (s *scanner) scanOperator(pos Position, ch rune) (Token, error) {
	emit := func(kind TokenKind, literal string) Token {
		for range utf8.RuneCountInString(literal) {
			s.advance()
		}

		return Token{Kind: kind, Literal: literal, Pos: pos}
	}

	switch ch {
	case '+':
		return emit(TokenPlus, "+"), nil
	case '-':
		return emit(TokenMinus, "-"), nil
	case '*':
		return emit(TokenStar, "*"), nil
	case '/':
		return emit(TokenSlash, "/"), nil
	case ';':
		return emit(TokenSemicolon, ";"), nil
	case ',':
		return emit(TokenComma, ","), nil
	case '(':
		return emit(TokenLParen, "("), nil
	case ')':
		return emit(TokenRParen, ")"), nil
	case '{':
		return emit(TokenLBrace, "{"), nil
	case '}':
		return emit(TokenRBrace, "}"), nil

	case '=':
		switch {
		case s.peekN(3) == "===":
			return emit(TokenStrictEq, "==="), nil
		case s.peekN(2) == "==":
			return emit(TokenEq, "=="), nil
		default:
			return emit(TokenAssign, "="), nil
		}

	case '!':
		switch {
		case s.peekN(3) == "!==":
			return emit(TokenStrictNotEq, "!=="), nil
		case s.peekN(2) == "!=":
			return emit(TokenNotEq, "!="), nil
		}
		// Bare '!' is not part of the language.
		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("char", "!"))

	case '<':
		if s.peekN(2) == "<=" {
			return emit(TokenLessEq, "<="), nil
		}

		return emit(TokenLess, "<"), nil

	case '>':
		if s.peekN(2) == ">=" {
			return emit(TokenGreaterEq, ">="), nil
		}

		return emit(TokenGreater, ">"), nil

	case '&':
		if s.peekN(2) == "&&" {
			return emit(TokenAndAnd, "&&"), nil
		}

		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("char", "&"))

	case '|':
		if s.peekN(2) == "||" {
			return emit(TokenOrOr, "||"), nil
		}

		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("char", "|"))
	}

	return Token{}, ErrLex.WithPosition(pos).
		With(slog.String("char", string(ch)))
}

// Helper methods

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

func (s *scanner) peekN(n int) string {
	if s.pos+n > len(s.input) {
		return string(s.input[s.pos:])
	}

	return string(s.input[s.pos : s.pos+n])
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

func (s *scanner) skipWhitespaceAndComments() {
	for {
		for !s.eof() && unicode.IsSpace(s.peek()) {
			s.advance()
		}

		if s.eof() {
			return
		}

		if s.peek() == '/' && s.peekN(2) == "//" {
			s.skipLineComment()

			continue
		}

		if s.peek() == '/' && s.peekN(2) == "/*" {
			s.skipBlockComment()

			continue
		}

		break
	}
}

func (s *scanner) skipLineComment() {
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}

	if !s.eof() {
		s.advance() // skip '\n'
	}
}

func (s *scanner) skipBlockComment() {
	s.advance() // skip '/'
	s.advance() // skip '*'

	for !s.eof() {
		if s.peek() == '*' && s.peekN(2) == "*/" {
			s.advance() // skip '*'
			s.advance() // skip '/'

			return
		}

		s.advance()
	}
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentifierContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
