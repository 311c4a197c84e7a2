package lang

import (
	"context"
	"log/slog"
	"strconv"
)

// ParseString parses source text and returns the Program.
// Options can be provided to customize parsing and evaluation behavior.
// The result is cached for efficient repeated parsing of the same content.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	var temp Program

	applyDefaults(&temp)
	applyOptions(&temp, opts...)

	temp.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(source)),
	)

	prog, err := parseStringCached(ctx, source, opts...)
	if err != nil {
		return nil, attachSource(err, source)
	}

	temp.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("statement_count", len(prog.Stmts)),
	)

	return prog, nil
}

// parseSource is the internal uncached lex+parse pipeline.
func parseSource(source string, opts ...Option) (*Program, error) {
	tokens, err := Scan(source)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	applyDefaults(prog)
	applyOptions(prog, opts...)

	return prog, nil
}

// parser holds the parser state: a cursor over the token stream.
type parser struct {
	tokens []Token
	pos    int
}

// parseProgram parses the entire token stream as a statement list.
func (p *parser) parseProgram() (*Program, error) {
	prog := new(Program)
	prog.Stmts = make([]*Stmt, 0)

	for !p.at(TokenEOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		prog.Stmts = append(prog.Stmts, stmt)
	}

	return prog, nil
}

// parseStmt parses a single statement.
func (p *parser) parseStmt() (*Stmt, error) {
	switch p.peek().Kind {
	case TokenLet:
		return p.parseLet()

	case TokenFunction:
		return p.parseFuncDecl()

	case TokenReturn:
		return p.parseReturn()

	case TokenIf:
		return p.parseIf()

	case TokenLBrace:
		return p.parseBlockStmt()

	default:
		return p.parseExprStmt()
	}
}

// parseLet parses: 'let' Identifier ('=' Expr)? Terminator.
func (p *parser) parseLet() (*Stmt, error) {
	pos := p.peek().Pos
	p.next() // 'let'

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	var init *Expr

	if p.at(TokenAssign) {
		p.next()

		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if err := p.terminator(); err != nil {
		return nil, err
	}

	return &Stmt{
		Kind: StmtLet,
		Pos:  pos,
		Name: name.Literal,
		Init: init,
	}, nil
}

// parseFuncDecl parses:
// 'function' Identifier '(' (Identifier (',' Identifier)*)? ')' Block.
func (p *parser) parseFuncDecl() (*Stmt, error) {
	pos := p.peek().Pos
	p.next() // 'function'

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	params := make([]string, 0)

	for !p.at(TokenRParen) {
		param, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}

		params = append(params, param.Literal)

		if !p.at(TokenComma) {
			break
		}

		p.next() // ','
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &Stmt{
		Kind:   StmtFunc,
		Pos:    pos,
		Name:   name.Literal,
		Params: params,
		Body:   body,
	}, nil
}

// parseReturn parses: 'return' Expr? Terminator.
// A return immediately followed by ';', '}', or EOF carries no value.
func (p *parser) parseReturn() (*Stmt, error) {
	pos := p.peek().Pos
	p.next() // 'return'

	var (
		expr *Expr
		err  error
	)

	if !p.at(TokenSemicolon) && !p.at(TokenRBrace) && !p.at(TokenEOF) {
		expr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if err := p.terminator(); err != nil {
		return nil, err
	}

	return &Stmt{Kind: StmtReturn, Pos: pos, Expr: expr}, nil
}

// parseIf parses: 'if' '(' Expr ')' Block ('else' (If | Block))?.
func (p *parser) parseIf() (*Stmt, error) {
	pos := p.peek().Pos
	p.next() // 'if'

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var alt *Stmt

	if p.at(TokenElse) {
		p.next() // 'else'

		if p.at(TokenIf) {
			alt, err = p.parseIf()
		} else {
			alt, err = p.parseBlockStmt()
		}

		if err != nil {
			return nil, err
		}
	}

	return &Stmt{
		Kind: StmtIf,
		Pos:  pos,
		Cond: cond,
		Then: then,
		Else: alt,
	}, nil
}

// parseBlockStmt parses a freestanding block statement.
func (p *parser) parseBlockStmt() (*Stmt, error) {
	pos := p.peek().Pos

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &Stmt{Kind: StmtBlock, Pos: pos, Body: body}, nil
}

// parseBlock parses: '{' Stmt* '}'.
func (p *parser) parseBlock() ([]*Stmt, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	body := make([]*Stmt, 0)

	for !p.at(TokenRBrace) {
		if p.at(TokenEOF) {
			return nil, p.errExpected(TokenRBrace)
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	p.next() // '}'

	return body, nil
}

// parseExprStmt parses: Expr Terminator.
func (p *parser) parseExprStmt() (*Stmt, error) {
	pos := p.peek().Pos

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.terminator(); err != nil {
		return nil, err
	}

	return &Stmt{Kind: StmtExpr, Pos: pos, Expr: expr}, nil
}

// Expression parsing uses precedence climbing. Levels, loosest to tightest:
// assignment, '||', '&&', equality, comparison, additive, multiplicative,
// unary minus, call, primary.

// parseExpr parses an expression at the lowest precedence level.
func (p *parser) parseExpr() (*Expr, error) {
	return p.parseAssign()
}

// parseAssign parses: Identifier '=' Assign | Or.
// Assignment is right-associative, and the target must be a bare identifier.
func (p *parser) parseAssign() (*Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.at(TokenAssign) {
		return left, nil
	}

	eq := p.next() // '='

	if left.Kind != ExprIdent {
		return nil, ErrParse.WithPosition(eq.Pos).
			With(slog.String("reason", "invalid assignment target")).
			With(slog.String("target", left.Kind.String()))
	}

	value, err := p.parseAssign()
	if err != nil {
		return nil, err
	}

	return &Expr{
		Kind:  ExprAssign,
		Pos:   left.Pos,
		Name:  left.Name,
		Value: value,
	}, nil
}

// binaryLevel is a generic left-associative binary parse level:
// next (op next)* where op maps a token kind to an operator.
func (p *parser) binaryLevel(
	next func() (*Expr, error),
	ops map[TokenKind]Op,
) (*Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.peek().Kind]
		if !ok {
			return left, nil
		}

		tok := p.next()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &Expr{
			Kind:  ExprBinary,
			Pos:   tok.Pos,
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseOr() (*Expr, error) {
	return p.binaryLevel(p.parseAnd, map[TokenKind]Op{
		TokenOrOr: OpOr,
	})
}

func (p *parser) parseAnd() (*Expr, error) {
	return p.binaryLevel(p.parseEquality, map[TokenKind]Op{
		TokenAndAnd: OpAnd,
	})
}

func (p *parser) parseEquality() (*Expr, error) {
	return p.binaryLevel(p.parseComparison, map[TokenKind]Op{
		TokenEq:          OpEq,
		TokenStrictEq:    OpStrictEq,
		TokenNotEq:       OpNotEq,
		TokenStrictNotEq: OpStrictNotEq,
	})
}

func (p *parser) parseComparison() (*Expr, error) {
	return p.binaryLevel(p.parseAdditive, map[TokenKind]Op{
		TokenLess:      OpLess,
		TokenLessEq:    OpLessEq,
		TokenGreater:   OpGreater,
		TokenGreaterEq: OpGreaterEq,
	})
}

func (p *parser) parseAdditive() (*Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, map[TokenKind]Op{
		TokenPlus:  OpAdd,
		TokenMinus: OpSub,
	})
}

func (p *parser) parseMultiplicative() (*Expr, error) {
	return p.binaryLevel(p.parseUnary, map[TokenKind]Op{
		TokenStar:  OpMul,
		TokenSlash: OpDiv,
	})
}

// parseUnary parses: '-' Unary | Call.
func (p *parser) parseUnary() (*Expr, error) {
	if !p.at(TokenMinus) {
		return p.parseCall()
	}

	tok := p.next() // '-'

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Expr{
		Kind:    ExprUnary,
		Pos:     tok.Pos,
		Op:      OpNeg,
		Operand: operand,
	}, nil
}

// parseCall parses: Primary ('(' (Expr (',' Expr)*)? ')')*.
// Argument count is not validated at parse time.
func (p *parser) parseCall() (*Expr, error) {
	callee, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.at(TokenLParen) {
		open := p.next() // '('

		args := make([]*Expr, 0)

		for !p.at(TokenRParen) {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.at(TokenComma) {
				break
			}

			p.next() // ','
		}

		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}

		callee = &Expr{
			Kind:   ExprCall,
			Pos:    open.Pos,
			Callee: callee,
			Args:   args,
		}
	}

	return callee, nil
}

// parsePrimary parses literals, identifiers, and parenthesized expressions.
func (p *parser) parsePrimary() (*Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenNumber:
		p.next()

		num, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, ErrParse.WithPosition(tok.Pos).Wrap(err).
				With(slog.String("literal", tok.Literal))
		}

		return &Expr{Kind: ExprNumber, Pos: tok.Pos, Num: num}, nil

	case TokenString:
		p.next()

		return &Expr{Kind: ExprString, Pos: tok.Pos, Str: tok.Literal}, nil

	case TokenTrue, TokenFalse:
		p.next()

		return &Expr{
			Kind: ExprBool,
			Pos:  tok.Pos,
			Bool: tok.Kind == TokenTrue,
		}, nil

	case TokenIdent:
		p.next()

		return &Expr{Kind: ExprIdent, Pos: tok.Pos, Name: tok.Literal}, nil

	case TokenLParen:
		p.next()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}

		return expr, nil

	default:
		return nil, ErrParse.WithPosition(tok.Pos).
			With(slog.String("expected", "expression")).
			With(slog.String("found", tok.Kind.String()))
	}
}

// Helper methods

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// expect consumes and returns the next token if it has the given kind,
// or reports a parse error.
func (p *parser) expect(kind TokenKind) (Token, error) {
	if !p.at(kind) {
		return Token{}, p.errExpected(kind)
	}

	return p.next(), nil
}

// terminator consumes an optional statement terminator. A semicolon always
// terminates; '}' and EOF terminate without being consumed. Anything else
// is a parse error.
func (p *parser) terminator() error {
	if p.at(TokenSemicolon) {
		p.next()

		return nil
	}

	if p.at(TokenRBrace) || p.at(TokenEOF) {
		return nil
	}

	return p.errExpected(TokenSemicolon)
}

func (p *parser) errExpected(kind TokenKind) error {
	tok := p.peek()

	return ErrParse.WithPosition(tok.Pos).
		With(slog.String("expected", kind.String())).
		With(slog.String("found", tok.Kind.String()))
}
