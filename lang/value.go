package lang

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind int

const (
	// Undefined is the value of unbound or uninitialized names and of
	// functions that return without a value. It is the zero Value.
	Undefined ValueKind = iota

	// Number is a 64-bit IEEE 754 floating-point number. All numeric
	// literals and arithmetic results are Numbers; there is no integer type.
	Number

	// String is an immutable sequence of bytes.
	String

	// Boolean is the result of comparison and equality operators and of
	// the true/false literals.
	Boolean

	// Function is a callable closure over its defining environment.
	Function
)

// String returns a human-readable name for the value kind, suitable for
// type error messages.
func (k ValueKind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a runtime value: the result of evaluating any expression.
// Fields are populated based on Kind:
//
//	Undefined: (none)
//	Number:    Num
//	String:    Str
//	Boolean:   Bool
//	Function:  Fn
//
// Values are immutable; rebinding a name replaces the Value in its Env.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
	Fn   *Closure
}

// Closure is a user-defined function together with the environment that was
// current when its declaration was evaluated. Calls extend that environment,
// not the caller's, which is what gives the language lexical scope.
type Closure struct {
	Name   string
	Params []string
	Body   []*Stmt
	Env    *Env
}

// NumberValue returns a Number value.
func NumberValue(n float64) Value {
	return Value{Kind: Number, Num: n}
}

// StringValue returns a String value.
func StringValue(s string) Value {
	return Value{Kind: String, Str: s}
}

// BooleanValue returns a Boolean value.
func BooleanValue(b bool) Value {
	return Value{Kind: Boolean, Bool: b}
}

// FunctionValue returns a Function value wrapping the given closure.
func FunctionValue(fn *Closure) Value {
	return Value{Kind: Function, Fn: fn}
}

// Render formats the value the way a host would print it.
//
// Numbers render in the shortest decimal form that round-trips, so 2.0
// renders as "2". The IEEE special values render as "Infinity",
// "-Infinity", and "NaN". Strings render raw, without quotes.
func (v Value) Render() string {
	switch v.Kind {
	case Number:
		switch {
		case math.IsInf(v.Num, 1):
			return "Infinity"
		case math.IsInf(v.Num, -1):
			return "-Infinity"
		case math.IsNaN(v.Num):
			return "NaN"
		}

		return strconv.FormatFloat(v.Num, 'f', -1, 64)

	case String:
		return v.Str

	case Boolean:
		return strconv.FormatBool(v.Bool)

	case Function:
		name := v.Fn.Name
		if name == "" {
			name = "anonymous"
		}

		return "[Function: " + name + "]"

	case Undefined:
		return "undefined"

	default:
		return "unknown"
	}
}

// Inspect formats the value for diagnostic display, like Render except that
// strings are quoted so they are distinguishable from other renderings.
func (v Value) Inspect() string {
	if v.Kind == String {
		return strconv.Quote(v.Str)
	}

	return v.Render()
}

// Truthy reports whether the value counts as true in a condition.
// Falsy values: undefined, false, 0, NaN, and the empty string.
// Every function value is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Undefined:
		return false
	case Number:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case String:
		return v.Str != ""
	case Boolean:
		return v.Bool
	case Function:
		return true
	default:
		return false
	}
}

// Equal reports whether two values are equal under strict equality:
// equal kinds and equal contents. Functions compare by identity.
// NaN is not equal to itself, matching IEEE 754.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case Undefined:
		return true
	case Number:
		return v.Num == other.Num
	case String:
		return v.Str == other.Str
	case Boolean:
		return v.Bool == other.Bool
	case Function:
		return v.Fn == other.Fn
	default:
		return false
	}
}

// Signature returns the function's declaration header, for completion
// previews and diagnostics. Non-function values return their kind name.
func (v Value) Signature() string {
	if v.Kind != Function {
		return v.Kind.String()
	}

	return "function " + v.Fn.Name +
		"(" + strings.Join(v.Fn.Params, ", ") + ")"
}
