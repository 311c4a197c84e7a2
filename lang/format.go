package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program's syntax tree as an indented text outline.
// indent is the number of spaces per nesting level; values below 1 use 2.
func (prog *Program) Format(_ context.Context, w io.Writer, indent int) error {
	if indent < 1 {
		indent = 2
	}

	if _, err := fmt.Fprintln(w, "Program"); err != nil {
		return err
	}

	for _, stmt := range prog.Stmts {
		if err := formatStmt(stmt, w, indent, 1); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program's syntax tree as JSON to the writer.
func (prog *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(
			prog.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(prog.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program's syntax tree as YAML to the writer.
func (prog *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(
		ctx,
		prog.ToMap(),
		opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// MarshalJSON implements json.Marshaler for Program.
func (prog *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(prog.ToMap())
}

// ToMap converts the program into plain maps and slices, for structured
// encoders that should not see unexported fields.
func (prog *Program) ToMap() map[string]any {
	return map[string]any{
		"kind":       "Program",
		"statements": stmtsToAny(prog.Stmts),
	}
}

func stmtsToAny(stmts []*Stmt) []any {
	out := make([]any, len(stmts))
	for i, stmt := range stmts {
		out[i] = stmtToMap(stmt)
	}

	return out
}

func stmtToMap(stmt *Stmt) map[string]any {
	m := map[string]any{
		"kind": stmt.Kind.String(),
	}

	switch stmt.Kind {
	case StmtLet:
		m["name"] = stmt.Name
		if stmt.Init != nil {
			m["init"] = exprToMap(stmt.Init)
		}

	case StmtExpr:
		m["expr"] = exprToMap(stmt.Expr)

	case StmtBlock:
		m["body"] = stmtsToAny(stmt.Body)

	case StmtFunc:
		m["name"] = stmt.Name
		m["params"] = stmt.Params
		m["body"] = stmtsToAny(stmt.Body)

	case StmtReturn:
		if stmt.Expr != nil {
			m["expr"] = exprToMap(stmt.Expr)
		}

	case StmtIf:
		m["cond"] = exprToMap(stmt.Cond)
		m["then"] = stmtsToAny(stmt.Then)

		if stmt.Else != nil {
			m["else"] = stmtToMap(stmt.Else)
		}
	}

	return m
}

func exprToMap(expr *Expr) map[string]any {
	m := map[string]any{
		"kind": expr.Kind.String(),
	}

	switch expr.Kind {
	case ExprNumber:
		m["value"] = expr.Num

	case ExprString:
		m["value"] = expr.Str

	case ExprBool:
		m["value"] = expr.Bool

	case ExprIdent:
		m["name"] = expr.Name

	case ExprUnary:
		m["op"] = expr.Op.String()
		m["operand"] = exprToMap(expr.Operand)

	case ExprBinary:
		m["op"] = expr.Op.String()
		m["left"] = exprToMap(expr.Left)
		m["right"] = exprToMap(expr.Right)

	case ExprAssign:
		m["name"] = expr.Name
		m["value"] = exprToMap(expr.Value)

	case ExprCall:
		m["callee"] = exprToMap(expr.Callee)

		args := make([]any, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = exprToMap(arg)
		}

		m["args"] = args
	}

	return m
}

// formatStmt writes one statement node and its children as outline lines.
func formatStmt(stmt *Stmt, w io.Writer, indent, depth int) error {
	pad := strings.Repeat(" ", depth*indent)

	switch stmt.Kind {
	case StmtLet:
		if _, err := fmt.Fprintln(w, pad+"Let "+stmt.Name); err != nil {
			return err
		}

		if stmt.Init != nil {
			return formatExpr(stmt.Init, w, indent, depth+1)
		}

		return nil

	case StmtExpr:
		if _, err := fmt.Fprintln(w, pad+"ExprStmt"); err != nil {
			return err
		}

		return formatExpr(stmt.Expr, w, indent, depth+1)

	case StmtBlock:
		if _, err := fmt.Fprintln(w, pad+"Block"); err != nil {
			return err
		}

		return formatStmts(stmt.Body, w, indent, depth+1)

	case StmtFunc:
		header := pad + "FuncDecl " + stmt.Name +
			"(" + strings.Join(stmt.Params, ", ") + ")"
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		return formatStmts(stmt.Body, w, indent, depth+1)

	case StmtReturn:
		if _, err := fmt.Fprintln(w, pad+"Return"); err != nil {
			return err
		}

		if stmt.Expr != nil {
			return formatExpr(stmt.Expr, w, indent, depth+1)
		}

		return nil

	case StmtIf:
		if _, err := fmt.Fprintln(w, pad+"If"); err != nil {
			return err
		}

		if err := formatExpr(stmt.Cond, w, indent, depth+1); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, pad+"Then"); err != nil {
			return err
		}

		if err := formatStmts(stmt.Then, w, indent, depth+1); err != nil {
			return err
		}

		if stmt.Else != nil {
			if _, err := fmt.Fprintln(w, pad+"Else"); err != nil {
				return err
			}

			return formatStmt(stmt.Else, w, indent, depth+1)
		}

		return nil

	default:
		_, err := fmt.Fprintln(w, pad+"<unknown>")

		return err
	}
}

func formatStmts(stmts []*Stmt, w io.Writer, indent, depth int) error {
	for _, stmt := range stmts {
		if err := formatStmt(stmt, w, indent, depth); err != nil {
			return err
		}
	}

	return nil
}

// formatExpr writes one expression node and its children as outline lines.
func formatExpr(expr *Expr, w io.Writer, indent, depth int) error {
	pad := strings.Repeat(" ", depth*indent)

	switch expr.Kind {
	case ExprNumber:
		_, err := fmt.Fprintln(w,
			pad+"Number "+strconv.FormatFloat(expr.Num, 'f', -1, 64))

		return err

	case ExprString:
		_, err := fmt.Fprintln(w, pad+"String "+strconv.Quote(expr.Str))

		return err

	case ExprBool:
		_, err := fmt.Fprintln(w,
			pad+"Boolean "+strconv.FormatBool(expr.Bool))

		return err

	case ExprIdent:
		_, err := fmt.Fprintln(w, pad+"Identifier "+expr.Name)

		return err

	case ExprUnary:
		if _, err := fmt.Fprintln(w, pad+"Unary "+expr.Op.String()); err != nil {
			return err
		}

		return formatExpr(expr.Operand, w, indent, depth+1)

	case ExprBinary:
		if _, err := fmt.Fprintln(w, pad+"Binary "+expr.Op.String()); err != nil {
			return err
		}

		if err := formatExpr(expr.Left, w, indent, depth+1); err != nil {
			return err
		}

		return formatExpr(expr.Right, w, indent, depth+1)

	case ExprAssign:
		if _, err := fmt.Fprintln(w, pad+"Assign "+expr.Name); err != nil {
			return err
		}

		return formatExpr(expr.Value, w, indent, depth+1)

	case ExprCall:
		if _, err := fmt.Fprintln(w, pad+"Call"); err != nil {
			return err
		}

		if err := formatExpr(expr.Callee, w, indent, depth+1); err != nil {
			return err
		}

		for _, arg := range expr.Args {
			if err := formatExpr(arg, w, indent, depth+1); err != nil {
				return err
			}
		}

		return nil

	default:
		_, err := fmt.Fprintln(w, pad+"<unknown>")

		return err
	}
}
