package cursor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when the input does not match a pattern
	ErrNoMatch = errors.New("no match")
	// ErrIncomplete is returned when a pattern matched only a prefix of the input
	ErrIncomplete = errors.New("unexpected trailing input")
	// ErrDepthExceeded is returned when nested pattern invocations exceed the configured limit
	ErrDepthExceeded = errors.New("nesting depth exceeded")
)

// Error is a match failure at a position in the input
type Error struct {
	Line   int
	Column int
	Offset int
	Err    error
}

// Fail creates an Error at the position of c.
// A nil err is reported as ErrNoMatch.
func Fail(c Cursor, err error) *Error {
	if err == nil {
		err = ErrNoMatch
	}

	return &Error{
		Line:   c.Line,
		Column: c.Column,
		Offset: c.Offset,
		Err:    err,
	}
}

// Error implements error
func (e *Error) Error() string {
	return fmt.Sprintf("%v at line %d, column %d", e.Err, e.Line, e.Column)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// At rebuilds a cursor at the position stored in err, when err carries one.
// The returned cursor has no remaining input attached; it is only meaningful
// for reporting.
func At(err error) (Cursor, bool) {
	var perr *Error
	if !errors.As(err, &perr) {
		return Cursor{}, false
	}

	return Cursor{Line: perr.Line, Column: perr.Column, Offset: perr.Offset}, true
}
