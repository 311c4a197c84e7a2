package lang

// Position identifies a location in source text.
// Offset is the byte offset from the start of input; Line and Column are
// 1-based and count runes, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// TokenEOF marks the end of input. It is always the final token
	// produced by Scan.
	TokenEOF TokenKind = iota

	// TokenIdent is an identifier: a name binding, parameter, or callee.
	TokenIdent

	// TokenNumber is a decimal numeric literal with an optional fraction.
	TokenNumber

	// TokenString is a string literal delimited by single or double quotes.
	// The token literal holds the contents without the quotes.
	TokenString

	// Keywords.
	TokenLet
	TokenFunction
	TokenReturn
	TokenIf
	TokenElse
	TokenTrue
	TokenFalse

	// Operators.
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenAssign      // =
	TokenEq          // ==
	TokenStrictEq    // ===
	TokenNotEq       // !=
	TokenStrictNotEq // !==
	TokenLess        // <
	TokenLessEq      // <=
	TokenGreater     // >
	TokenGreaterEq   // >=
	TokenAndAnd      // &&
	TokenOrOr        // ||

	// Punctuation.
	TokenSemicolon
	TokenComma
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
)

// String returns a human-readable name for the token kind, suitable for
// parse error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenLet:
		return "'let'"
	case TokenFunction:
		return "'function'"
	case TokenReturn:
		return "'return'"
	case TokenIf:
		return "'if'"
	case TokenElse:
		return "'else'"
	case TokenTrue:
		return "'true'"
	case TokenFalse:
		return "'false'"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenAssign:
		return "'='"
	case TokenEq:
		return "'=='"
	case TokenStrictEq:
		return "'==='"
	case TokenNotEq:
		return "'!='"
	case TokenStrictNotEq:
		return "'!=='"
	case TokenLess:
		return "'<'"
	case TokenLessEq:
		return "'<='"
	case TokenGreater:
		return "'>'"
	case TokenGreaterEq:
		return "'>='"
	case TokenAndAnd:
		return "'&&'"
	case TokenOrOr:
		return "'||'"
	case TokenSemicolon:
		return "';'"
	case TokenComma:
		return "','"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	default:
		return "unknown"
	}
}

// Token is a single lexical token with its source position.
type Token struct {
	Literal string
	Pos     Position
	Kind    TokenKind
}

// keywords maps reserved identifiers to their token kinds.
//
//nolint:gochecknoglobals
var keywords = map[string]TokenKind{
	"let":      TokenLet,
	"function": TokenFunction,
	"return":   TokenReturn,
	"if":       TokenIf,
	"else":     TokenElse,
	"true":     TokenTrue,
	"false":    TokenFalse,
}
