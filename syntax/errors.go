package syntax

import (
	"errors"
	"fmt"
)

// Compile error kinds. A *CompileError wraps one of these, or an error from
// the verify package, so callers can test the kind with errors.Is.
var (
	// ErrUnexpectedToken indicates a quantifier or closing bracket with nothing to apply to
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrReservedSymbol indicates ^ or $ outside a bracket expression
	ErrReservedSymbol = errors.New("reserved symbol not implemented")
	// ErrMissingCloseParen indicates a group that is never closed
	ErrMissingCloseParen = errors.New("missing close parenthesis")
	// ErrExtraCloseParen indicates a ')' without a matching '('
	ErrExtraCloseParen = errors.New("extra closing parenthesis")
	// ErrUnterminatedClass indicates a bracket expression without ']'
	ErrUnterminatedClass = errors.New("unterminated character class")
	// ErrInvalidRangeOrder indicates a range whose end sorts before its start
	ErrInvalidRangeOrder = errors.New("range invalid: order")
	// ErrMisplacedDash indicates a '-' that neither starts, ends nor forms a range
	ErrMisplacedDash = errors.New("dash must be first, last or part of a range")
	// ErrUnknownPosixClass indicates an unknown [:name:] class
	ErrUnknownPosixClass = errors.New("unknown POSIX class")
	// ErrInvalidRepetition indicates malformed or inverted {m,n} bounds
	ErrInvalidRepetition = errors.New("invalid repetition bounds")
	// ErrUnknownEscape indicates a backslash before a character that needs no escaping
	ErrUnknownEscape = errors.New("unknown escape")
	// ErrDanglingEscape indicates a pattern ending in a backslash
	ErrDanglingEscape = errors.New("pattern ends with backslash")
	// ErrUnterminatedField indicates a field reference without '>'
	ErrUnterminatedField = errors.New("field reference missing closing '>'")
	// ErrUnrecognizedField indicates a field reference not present in the schema
	ErrUnrecognizedField = errors.New("unrecognized field")
	// ErrFieldInRestriction indicates a field reference inside a field's own pattern
	ErrFieldInRestriction = errors.New("field references are not allowed in a field pattern")
)

// CompileError reports why a pattern could not be compiled and where
type CompileError struct {
	Pattern string
	Offset  int // in characters
	Err     error
}

// Error implements error
func (e *CompileError) Error() string {
	return fmt.Sprintf("compile `%s`: %v at offset %d", e.Pattern, e.Err, e.Offset)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
