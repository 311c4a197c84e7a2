package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// ErrReference, ErrType, and ErrSyntax are the runtime error classes:
// every evaluation failure wraps exactly one of them. ErrLex and ErrParse
// cover the two static phases.
var (
	ErrLex       = NewError("invalid character")
	ErrParse     = NewError("parse error")
	ErrReference = NewError("ReferenceError")
	ErrType      = NewError("TypeError")
	ErrSyntax    = NewError("SyntaxError")
	ErrReadInput = NewError("failed to read input")
	ErrCallDepth = NewError("maximum call depth exceeded")
)

// Error represents an error with optional structured logging attributes and
// an optional source position. It implements both error and slog.LogValuer.
//
// When both a position and the offending source text are attached, Error
// renders a snippet of the offending line with a caret marker.
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
	pos    *Position   // Source position, if known
	source string      // Source text for snippet rendering, if known
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	msg := strings.Join(part, ": ")

	if e.pos != nil {
		msg += " at line " + strconv.Itoa(e.pos.Line) +
			", column " + strconv.Itoa(e.pos.Column)

		if snippet := e.snippet(); snippet != "" {
			msg += ":\n" + snippet
		}
	}

	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error was derived
// from. Derived errors (via With, Wrap, WithPosition) share the sentinel's
// message, so comparison is by message rather than pointer identity.
func (e *Error) Is(target error) bool {
	t := &Error{}
	if !errors.As(target, &t) {
		return false
	}

	return e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:    e.msg,
		err:    err,
		attrs:  e.attrs, // Share attrs
		pos:    e.pos,
		source: e.source,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:    e.msg,
		err:    e.err,
		attrs:  newAttrs,
		pos:    e.pos,
		source: e.source,
	}
}

// WithPosition attaches a source position to the error.
// This creates a new Error instance to maintain immutability.
func (e *Error) WithPosition(pos Position) *Error {
	return &Error{
		msg:    e.msg,
		err:    e.err,
		attrs:  e.attrs,
		pos:    &pos,
		source: e.source,
	}
}

// withSource attaches the original source text so Error can render a
// snippet with a caret marker. Entry points call this on any error that
// escapes the lexer or parser.
func (e *Error) withSource(source string) *Error {
	return &Error{
		msg:    e.msg,
		err:    e.err,
		attrs:  e.attrs,
		pos:    e.pos,
		source: source,
	}
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// snippet renders the offending source line with a caret marker:
//
//	  3 | let x = 1 +;
//	                 ^
func (e *Error) snippet() string {
	if e.pos == nil || e.source == "" {
		return ""
	}

	lines := strings.Split(e.source, "\n")
	if e.pos.Line < 1 || e.pos.Line > len(lines) {
		return ""
	}

	line := lines[e.pos.Line-1]

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.pos.Line))
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// Marker pointing to the column.
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	lineNumWidth := len(strconv.Itoa(e.pos.Line))
	padding := strings.Repeat(" ", lineNumWidth+5)

	if e.pos.Column > 0 {
		padding += strings.Repeat(" ", e.pos.Column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}

// attachSource attaches source text for snippet rendering to err if it is
// (or wraps) a lang Error carrying a position. Other errors pass through
// unchanged.
func attachSource(err error, source string) error {
	if err == nil {
		return nil
	}

	ee := &Error{}
	if errors.As(err, &ee) {
		return ee.withSource(source)
	}

	return err
}
