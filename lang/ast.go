package lang

import (
	"github.com/r1tsuu/rsx/log"
)

// Program is the root of the abstract syntax tree: an ordered sequence of
// top-level statements. Programs are immutable once parsed, which is what
// makes the parse cache safe; all mutable evaluation state lives in Env.
type Program struct {
	Stmts  []*Stmt
	opts   optionsKey // configuration options
	logger log.Logger // structured logger (outside optionsKey, doesn't affect cache)
}

// StmtKind identifies the statement variant of a Stmt node.
type StmtKind int

const (
	// StmtLet declares a binding in the current scope.
	StmtLet StmtKind = iota

	// StmtExpr evaluates an expression for its value and side effects.
	StmtExpr

	// StmtBlock introduces a nested scope.
	StmtBlock

	// StmtFunc declares a named function in the current scope.
	StmtFunc

	// StmtReturn unwinds to the nearest enclosing function call.
	StmtReturn

	// StmtIf conditionally executes one of two branches.
	StmtIf
)

// String returns a string representation of the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "ExprStmt"
	case StmtBlock:
		return "Block"
	case StmtFunc:
		return "FuncDecl"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	default:
		return "Unknown"
	}
}

// Stmt represents any statement in the language.
// Fields are populated based on Kind:
//
//	StmtLet:    Name, Init (nil means the binding starts undefined)
//	StmtExpr:   Expr
//	StmtBlock:  Body
//	StmtFunc:   Name, Params, Body
//	StmtReturn: Expr (nil means return undefined)
//	StmtIf:     Cond, Then, Else (nil, or a Stmt of kind StmtBlock/StmtIf)
type Stmt struct {
	Kind   StmtKind
	Pos    Position
	Name   string
	Params []string
	Init   *Expr
	Expr   *Expr
	Cond   *Expr
	Body   []*Stmt
	Then   []*Stmt
	Else   *Stmt
}

// ExprKind identifies the expression variant of an Expr node.
type ExprKind int

const (
	// ExprNumber is a numeric literal.
	ExprNumber ExprKind = iota

	// ExprString is a string literal.
	ExprString

	// ExprBool is a boolean literal.
	ExprBool

	// ExprIdent is an identifier reference.
	ExprIdent

	// ExprUnary is unary minus.
	ExprUnary

	// ExprBinary is a binary operation.
	ExprBinary

	// ExprAssign is assignment to an existing binding.
	ExprAssign

	// ExprCall is a function invocation.
	ExprCall
)

// String returns a string representation of the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprString:
		return "String"
	case ExprBool:
		return "Boolean"
	case ExprIdent:
		return "Identifier"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprAssign:
		return "Assign"
	case ExprCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// Expr represents any expression in the language.
// Fields are populated based on Kind:
//
//	ExprNumber: Num
//	ExprString: Str
//	ExprBool:   Bool
//	ExprIdent:  Name
//	ExprUnary:  Op (OpNeg), Operand
//	ExprBinary: Op, Left, Right
//	ExprAssign: Name, Value
//	ExprCall:   Callee, Args
type Expr struct {
	Kind    ExprKind
	Pos     Position
	Op      Op
	Num     float64
	Str     string
	Bool    bool
	Name    string
	Operand *Expr
	Left    *Expr
	Right   *Expr
	Value   *Expr
	Callee  *Expr
	Args    []*Expr
}

// Op identifies an operator in unary and binary expressions.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpStrictEq
	OpNotEq
	OpStrictNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpAnd
	OpOr
	OpNeg
)

// String returns the operator's source spelling.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpStrictEq:
		return "==="
	case OpNotEq:
		return "!="
	case OpStrictNotEq:
		return "!=="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// DefaultMaxCallDepth is the default maximum function call depth.
// Users may override it per evaluation with WithMaxCallDepth.
const DefaultMaxCallDepth = 1000

// optionsKey holds Program configuration options.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	maxCallDepth int
}

// Option configures parsing or evaluation behavior.
type Option func(*Program)

// WithMaxCallDepth sets the maximum function call depth. Exceeding it
// during evaluation yields a runtime error instead of exhausting the stack.
func WithMaxCallDepth(depth int) Option {
	return func(p *Program) {
		p.opts.maxCallDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Program) {
		p.logger = logger
	}
}

// applyDefaults sets default option values on a Program.
func applyDefaults(p *Program) {
	p.opts.maxCallDepth = DefaultMaxCallDepth
}

// applyOptions applies functional options to a Program.
func applyOptions(p *Program, opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}
