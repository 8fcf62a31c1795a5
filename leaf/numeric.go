package leaf

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nathaniel-bennett/peggle/cursor"
)

type unsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned integer parsers. Digits only, no sign, and no leading zeros
// other than the literal 0.
var (
	Uint8  = unsigned[uint8](math.MaxUint8)
	Uint16 = unsigned[uint16](math.MaxUint16)
	Uint32 = unsigned[uint32](math.MaxUint32)
	Uint64 = unsigned[uint64](math.MaxUint64)
	Uint   = unsigned[uint](math.MaxUint)
)

// Signed integer parsers. An optional leading '-' followed by digits under
// the same leading-zero rule as the unsigned parsers.
var (
	Int8  = signed[int8](math.MinInt8, math.MaxInt8)
	Int16 = signed[int16](math.MinInt16, math.MaxInt16)
	Int32 = signed[int32](math.MinInt32, math.MaxInt32)
	Int64 = signed[int64](math.MinInt64, math.MaxInt64)
	Int   = signed[int](math.MinInt, math.MaxInt)
)

// Decimal parses -?digits(.digits)? into a decimal.Decimal
var Decimal Parser = Func(parseDecimal)

// UUID parses the canonical 36 character UUID form
var UUID Parser = Func(parseUUID)

func unsigned[T unsignedInt](limit uint64) Parser {
	return Func(func(c cursor.Cursor) (any, cursor.Cursor, error) {
		v, next, err := parseUnsigned(c, limit)
		if err != nil {
			return nil, c, err
		}

		return T(v), next, nil
	})
}

func signed[T signedInt](lo, hi int64) Parser {
	return Func(func(c cursor.Cursor) (any, cursor.Cursor, error) {
		v, next, err := parseSigned(c, lo, hi)
		if err != nil {
			return nil, c, err
		}

		return T(v), next, nil
	})
}

func digitAt(c cursor.Cursor) (int, cursor.Cursor, bool) {
	r, next, ok := c.Next()
	if !ok || r < '0' || r > '9' {
		return 0, c, false
	}

	return int(r - '0'), next, true
}

// leadingDigit reads the first digit of an integer and reports whether
// more digits may follow it.
func leadingDigit(c cursor.Cursor) (int, cursor.Cursor, bool, error) {
	if c.AtEnd() {
		return 0, c, false, cursor.Fail(c, ErrUnexpectedEnd)
	}

	d, next, ok := digitAt(c)
	if !ok {
		return 0, c, false, cursor.Fail(c, ErrExpectedDigit)
	}

	if d == 0 {
		if _, _, more := digitAt(next); more {
			return 0, c, false, cursor.Fail(next, ErrLeadingZero)
		}

		return 0, next, false, nil
	}

	return d, next, true, nil
}

func parseUnsigned(c cursor.Cursor, limit uint64) (uint64, cursor.Cursor, error) {
	first, c, more, err := leadingDigit(c)
	if err != nil || !more {
		return 0, c, err
	}

	value := uint64(first)

	for {
		d, next, ok := digitAt(c)
		if !ok {
			return value, c, nil
		}

		if value > (limit-uint64(d))/10 {
			return 0, c, cursor.Fail(c, ErrOverflow)
		}

		value = value*10 + uint64(d)
		c = next
	}
}

func parseSigned(c cursor.Cursor, lo, hi int64) (int64, cursor.Cursor, error) {
	negative := false
	if r, ok := c.Peek(); ok && r == '-' {
		negative = true
		_, c, _ = c.Next()
	}

	first, c, more, err := leadingDigit(c)
	if err != nil {
		return 0, c, err
	}

	value := int64(first)
	if negative {
		value = -value
	}

	if !more {
		return value, c, nil
	}

	for {
		d, next, ok := digitAt(c)
		if !ok {
			return value, c, nil
		}

		if negative {
			if value < (lo+int64(d))/10 {
				return 0, c, cursor.Fail(c, ErrOverflow)
			}

			value = value*10 - int64(d)
		} else {
			if value > (hi-int64(d))/10 {
				return 0, c, cursor.Fail(c, ErrOverflow)
			}

			value = value*10 + int64(d)
		}

		c = next
	}
}

func parseDecimal(c cursor.Cursor) (any, cursor.Cursor, error) {
	end := c
	if r, ok := end.Peek(); ok && r == '-' {
		_, end, _ = end.Next()
	}

	end, digits := skipDigits(end)
	if digits == 0 {
		return nil, c, cursor.Fail(end, ErrInvalidDecimal)
	}

	if r, ok := end.Peek(); ok && r == '.' {
		_, afterDot, _ := end.Next()
		if fraction, n := skipDigits(afterDot); n > 0 {
			end = fraction
		}
	}

	d, err := decimal.NewFromString(end.Consumed(c))
	if err != nil {
		return nil, c, cursor.Fail(c, ErrInvalidDecimal)
	}

	return d, end, nil
}

func skipDigits(c cursor.Cursor) (cursor.Cursor, int) {
	n := 0

	for {
		_, next, ok := digitAt(c)
		if !ok {
			return c, n
		}

		c = next
		n++
	}
}

func parseUUID(c cursor.Cursor) (any, cursor.Cursor, error) {
	text, ok := c.PeekN(36)
	if !ok {
		return nil, c, cursor.Fail(c, ErrInvalidUUID)
	}

	id, err := uuid.Parse(text)
	if err != nil {
		return nil, c, cursor.Fail(c, ErrInvalidUUID)
	}

	return id, c.Advance(len(text)), nil
}
