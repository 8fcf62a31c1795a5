package leaf

import "errors"

// Leaf parse errors. They are returned wrapped in a *cursor.Error that
// records where the problem was found.
var (
	// ErrUnexpectedEnd indicates the input ended before a value could be read
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrInvalidBool indicates the input does not start with true or false
	ErrInvalidBool = errors.New("expected true or false")
	// ErrExpectedDigit indicates an integer did not start with a digit
	ErrExpectedDigit = errors.New("expected digit")
	// ErrLeadingZero indicates an integer has a leading zero
	ErrLeadingZero = errors.New("leading zero in integer")
	// ErrOverflow indicates an integer does not fit its type
	ErrOverflow = errors.New("integer overflows type")
	// ErrInvalidDecimal indicates a malformed decimal number
	ErrInvalidDecimal = errors.New("invalid decimal")
	// ErrInvalidUUID indicates a malformed UUID
	ErrInvalidUUID = errors.New("invalid UUID")
)
