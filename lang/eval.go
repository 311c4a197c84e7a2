package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/r1tsuu/rsx/log"
)

// Execute parses and evaluates source against a fresh global environment
// and returns the program's result: the value of the last top-level
// expression statement, or undefined if there is none.
//
// Every call starts from an empty environment, so repeated calls with the
// same source always produce the same result. Parsing is cached; evaluation
// is not.
func Execute(ctx context.Context, source string, opts ...Option) (Value, error) {
	return NewInterp(opts...).EvalString(ctx, source)
}

// ExecuteReader reads all of r and executes it as with Execute.
// The reader is drained through an asynchronous read-ahead buffer.
func ExecuteReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Value, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	source, err := io.ReadAll(ra)
	if err != nil {
		return Value{}, ErrReadInput.Wrap(err)
	}

	return Execute(ctx, string(source), opts...)
}

// Interp is a persistent interpreter: a global environment that survives
// across evaluations, so that bindings made by one source fragment are
// visible to the next. The interactive shell is built on this; one-shot
// execution uses Execute, which discards the environment afterwards.
//
// An Interp is not safe for concurrent use.
type Interp struct {
	root   *Env
	opts   []Option
	cfg    optionsKey
	logger log.Logger
}

// NewInterp creates an interpreter with an empty global environment.
func NewInterp(opts ...Option) *Interp {
	var temp Program

	applyDefaults(&temp)
	applyOptions(&temp, opts...)

	return &Interp{
		root:   NewEnv(nil),
		opts:   opts,
		cfg:    temp.opts,
		logger: temp.logger,
	}
}

// Globals returns the interpreter's global environment.
func (in *Interp) Globals() *Env {
	return in.root
}

// EvalString parses source (through the parse cache) and evaluates it
// against the interpreter's global environment.
func (in *Interp) EvalString(ctx context.Context, source string) (Value, error) {
	prog, err := ParseString(ctx, source, in.opts...)
	if err != nil {
		return Value{}, err
	}

	value, err := in.EvalProgram(ctx, prog)
	if err != nil {
		return Value{}, attachSource(err, source)
	}

	return value, nil
}

// EvalProgram evaluates a parsed program against the interpreter's global
// environment. Declarations persist in the environment after it returns.
func (in *Interp) EvalProgram(ctx context.Context, prog *Program) (Value, error) {
	st := &evalState{
		logger:   in.logger,
		maxDepth: in.cfg.maxCallDepth,
	}

	st.logger.TraceContext(
		ctx,
		"eval start",
		slog.Int("statement_count", len(prog.Stmts)),
	)

	res, err := st.execStmts(ctx, prog.Stmts, in.root)
	if err != nil {
		return Value{}, err
	}

	st.logger.TraceContext(
		ctx,
		"eval complete",
		slog.String("result", res.value.Inspect()),
	)

	return res.value, nil
}

// evalState carries per-evaluation bookkeeping: the call depth guard and
// the logger. Scope state lives entirely in the Env chain.
type evalState struct {
	logger    log.Logger
	maxDepth  int
	callDepth int
}

// result is the outcome of executing a statement list: the value of its
// last expression statement, plus whether a return statement fired.
// When returned is set, value is the return value and execution unwinds
// to the nearest enclosing function call.
type result struct {
	value    Value
	returned bool
}

// execStmts executes statements in order. The result value is that of the
// last expression statement executed directly in this list; a return from
// any statement short-circuits the remainder.
func (st *evalState) execStmts(
	ctx context.Context,
	stmts []*Stmt,
	env *Env,
) (result, error) {
	var last result

	for _, stmt := range stmts {
		res, err := st.execStmt(ctx, stmt, env)
		if err != nil {
			return result{}, err
		}

		if res.returned {
			return res, nil
		}

		if stmt.Kind == StmtExpr {
			last.value = res.value
		}
	}

	return last, nil
}

func (st *evalState) execStmt(
	ctx context.Context,
	stmt *Stmt,
	env *Env,
) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, WrapError(err)
	}

	switch stmt.Kind {
	case StmtLet:
		value := Value{}

		if stmt.Init != nil {
			var err error

			value, err = st.evalExpr(ctx, stmt.Init, env)
			if err != nil {
				return result{}, err
			}
		}

		env.Declare(stmt.Name, value)

		return result{}, nil

	case StmtFunc:
		env.Declare(stmt.Name, FunctionValue(&Closure{
			Name:   stmt.Name,
			Params: stmt.Params,
			Body:   stmt.Body,
			Env:    env,
		}))

		return result{}, nil

	case StmtExpr:
		value, err := st.evalExpr(ctx, stmt.Expr, env)
		if err != nil {
			return result{}, err
		}

		return result{value: value}, nil

	case StmtBlock:
		res, err := st.execStmts(ctx, stmt.Body, NewEnv(env))
		if err != nil {
			return result{}, err
		}

		if res.returned {
			return res, nil
		}

		// A block is not an expression statement; it contributes no value.
		return result{}, nil

	case StmtReturn:
		if st.callDepth == 0 {
			return result{}, ErrSyntax.WithPosition(stmt.Pos).
				Wrap(NewError("return outside of function"))
		}

		value := Value{}

		if stmt.Expr != nil {
			var err error

			value, err = st.evalExpr(ctx, stmt.Expr, env)
			if err != nil {
				return result{}, err
			}
		}

		return result{value: value, returned: true}, nil

	case StmtIf:
		cond, err := st.evalExpr(ctx, stmt.Cond, env)
		if err != nil {
			return result{}, err
		}

		if cond.Truthy() {
			res, err := st.execStmts(ctx, stmt.Then, NewEnv(env))
			if err != nil {
				return result{}, err
			}

			if res.returned {
				return res, nil
			}

			return result{}, nil
		}

		if stmt.Else != nil {
			res, err := st.execStmt(ctx, stmt.Else, env)
			if err != nil {
				return result{}, err
			}

			if res.returned {
				return res, nil
			}
		}

		return result{}, nil

	default:
		return result{}, ErrSyntax.WithPosition(stmt.Pos).
			With(slog.String("statement", stmt.Kind.String()))
	}
}

func (st *evalState) evalExpr(
	ctx context.Context,
	expr *Expr,
	env *Env,
) (Value, error) {
	switch expr.Kind {
	case ExprNumber:
		return NumberValue(expr.Num), nil

	case ExprString:
		return StringValue(expr.Str), nil

	case ExprBool:
		return BooleanValue(expr.Bool), nil

	case ExprIdent:
		value, err := env.Lookup(expr.Name)
		if err != nil {
			return Value{}, positioned(err, expr.Pos)
		}

		return value, nil

	case ExprUnary:
		return st.evalUnary(ctx, expr, env)

	case ExprBinary:
		return st.evalBinary(ctx, expr, env)

	case ExprAssign:
		value, err := st.evalExpr(ctx, expr.Value, env)
		if err != nil {
			return Value{}, err
		}

		if err := env.Assign(expr.Name, value); err != nil {
			return Value{}, positioned(err, expr.Pos)
		}

		return value, nil

	case ExprCall:
		return st.evalCall(ctx, expr, env)

	default:
		return Value{}, ErrSyntax.WithPosition(expr.Pos).
			With(slog.String("expression", expr.Kind.String()))
	}
}

// evalUnary handles unary minus, the only prefix operator.
func (st *evalState) evalUnary(
	ctx context.Context,
	expr *Expr,
	env *Env,
) (Value, error) {
	operand, err := st.evalExpr(ctx, expr.Operand, env)
	if err != nil {
		return Value{}, err
	}

	if operand.Kind != Number {
		return Value{}, ErrType.WithPosition(expr.Pos).
			With(
				slog.String("op", expr.Op.String()),
				slog.String("operand", operand.Kind.String()),
			).
			Wrap(NewError("unary " + expr.Op.String() +
				" requires a number, got " + operand.Kind.String()))
	}

	return NumberValue(-operand.Num), nil
}

// evalBinary handles all binary operators. The logical operators
// short-circuit and yield one of their operand values unchanged; every
// other operator evaluates both sides first.
func (st *evalState) evalBinary(
	ctx context.Context,
	expr *Expr,
	env *Env,
) (Value, error) {
	left, err := st.evalExpr(ctx, expr.Left, env)
	if err != nil {
		return Value{}, err
	}

	switch expr.Op {
	case OpAnd:
		if !left.Truthy() {
			return left, nil
		}

		return st.evalExpr(ctx, expr.Right, env)

	case OpOr:
		if left.Truthy() {
			return left, nil
		}

		return st.evalExpr(ctx, expr.Right, env)
	}

	right, err := st.evalExpr(ctx, expr.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch expr.Op {
	case OpAdd:
		switch {
		case left.Kind == Number && right.Kind == Number:
			return NumberValue(left.Num + right.Num), nil
		case left.Kind == String && right.Kind == String:
			return StringValue(left.Str + right.Str), nil
		}

		return Value{}, typeMismatch(expr, left, right)

	case OpSub, OpMul, OpDiv:
		if left.Kind != Number || right.Kind != Number {
			return Value{}, typeMismatch(expr, left, right)
		}

		switch expr.Op {
		case OpSub:
			return NumberValue(left.Num - right.Num), nil
		case OpMul:
			return NumberValue(left.Num * right.Num), nil
		default:
			// IEEE 754 division: x/0 is ±Infinity, 0/0 is NaN.
			return NumberValue(left.Num / right.Num), nil
		}

	case OpEq, OpStrictEq:
		return BooleanValue(left.Equal(right)), nil

	case OpNotEq, OpStrictNotEq:
		return BooleanValue(!left.Equal(right)), nil

	case OpLess, OpLessEq, OpGreater, OpGreaterEq:
		if left.Kind != Number || right.Kind != Number {
			return Value{}, typeMismatch(expr, left, right)
		}

		switch expr.Op {
		case OpLess:
			return BooleanValue(left.Num < right.Num), nil
		case OpLessEq:
			return BooleanValue(left.Num <= right.Num), nil
		case OpGreater:
			return BooleanValue(left.Num > right.Num), nil
		default:
			return BooleanValue(left.Num >= right.Num), nil
		}

	default:
		return Value{}, ErrSyntax.WithPosition(expr.Pos).
			With(slog.String("op", expr.Op.String()))
	}
}

// evalCall invokes a function value. The new call frame's parent is the
// environment captured at declaration, never the caller's, so free names
// resolve lexically. Missing arguments bind undefined; extra arguments are
// evaluated and discarded.
func (st *evalState) evalCall(
	ctx context.Context,
	expr *Expr,
	env *Env,
) (Value, error) {
	callee, err := st.evalExpr(ctx, expr.Callee, env)
	if err != nil {
		return Value{}, err
	}

	if callee.Kind != Function {
		return Value{}, ErrType.WithPosition(expr.Pos).
			With(slog.String("callee", callee.Kind.String())).
			Wrap(NewError(callee.Kind.String() + " is not a function"))
	}

	args := make([]Value, len(expr.Args))

	for i, arg := range expr.Args {
		args[i], err = st.evalExpr(ctx, arg, env)
		if err != nil {
			return Value{}, err
		}
	}

	if st.callDepth >= st.maxDepth {
		return Value{}, ErrCallDepth.WithPosition(expr.Pos).
			With(
				slog.String("function", callee.Fn.Name),
				slog.Int("depth", st.callDepth),
			)
	}

	frame := NewEnv(callee.Fn.Env)

	for i, param := range callee.Fn.Params {
		if i < len(args) {
			frame.Declare(param, args[i])
		} else {
			frame.Declare(param, Value{})
		}
	}

	st.callDepth++

	res, err := st.execStmts(ctx, callee.Fn.Body, frame)

	st.callDepth--

	if err != nil {
		return Value{}, err
	}

	if !res.returned {
		// Falling off the end of a function yields undefined, regardless
		// of any expression statements in the body.
		return Value{}, nil
	}

	return res.value, nil
}

// typeMismatch builds the type error for a binary operator applied to
// operand kinds it does not accept.
func typeMismatch(expr *Expr, left, right Value) error {
	return ErrType.WithPosition(expr.Pos).
		With(
			slog.String("op", expr.Op.String()),
			slog.String("left", left.Kind.String()),
			slog.String("right", right.Kind.String()),
		).
		Wrap(NewError("operator " + expr.Op.String() +
			" cannot be applied to " + left.Kind.String() +
			" and " + right.Kind.String()))
}

// positioned attaches pos to err when err is a lang Error that does not
// already carry a position.
func positioned(err error, pos Position) error {
	if e, ok := err.(*Error); ok {
		if _, has := e.Position(); !has {
			return e.WithPosition(pos)
		}
	}

	return err
}
