package leaf

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nathaniel-bennett/peggle/cursor"
)

func TestBool(t *testing.T) {
	v, next, err := Bool.ParseAt(cursor.New("false!"))
	assert.NoError(t, err)
	assert.Equal(t, any(false), v)
	assert.Equal(t, "!", next.Remaining)

	v, _, err = Bool.ParseAt(cursor.New("true"))
	assert.NoError(t, err)
	assert.Equal(t, any(true), v)

	_, _, err = Bool.ParseAt(cursor.New("yes"))
	assert.True(t, errors.Is(err, ErrInvalidBool))
}

func TestUnsigned(t *testing.T) {
	tests := []struct {
		name      string
		parser    Parser
		input     string
		want      any
		remaining string
		err       error
	}{
		{name: "zero", parser: Uint32, input: "0", want: uint32(0)},
		{name: "zero then text", parser: Uint32, input: "0 fdsa", want: uint32(0), remaining: " fdsa"},
		{name: "digits", parser: Uint16, input: "65ggg", want: uint16(65), remaining: "ggg"},
		{name: "max u8", parser: Uint8, input: "255", want: uint8(255)},
		{name: "overflow u8", parser: Uint8, input: "256", err: ErrOverflow},
		{name: "max u64", parser: Uint64, input: "18446744073709551615", want: uint64(18446744073709551615)},
		{name: "overflow u64", parser: Uint64, input: "18446744073709551616", err: ErrOverflow},
		{name: "leading zero", parser: Uint32, input: "01", err: ErrLeadingZero},
		{name: "sign rejected", parser: Uint32, input: "-1", err: ErrExpectedDigit},
		{name: "empty", parser: Uint32, input: "", err: ErrUnexpectedEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, next, err := tt.parser.ParseAt(cursor.New(tt.input))
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.remaining, next.Remaining)
		})
	}
}

func TestSigned(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser
		input  string
		want   any
		err    error
	}{
		{name: "positive", parser: Int32, input: "42", want: int32(42)},
		{name: "negative", parser: Int32, input: "-42", want: int32(-42)},
		{name: "negative zero", parser: Int8, input: "-0", want: int8(0)},
		{name: "min i8", parser: Int8, input: "-128", want: int8(-128)},
		{name: "max i8", parser: Int8, input: "127", want: int8(127)},
		{name: "under i8", parser: Int8, input: "-129", err: ErrOverflow},
		{name: "over i8", parser: Int8, input: "128", err: ErrOverflow},
		{name: "min i64", parser: Int64, input: "-9223372036854775808", want: int64(-9223372036854775808)},
		{name: "over i64", parser: Int64, input: "9223372036854775808", err: ErrOverflow},
		{name: "dash only", parser: Int, input: "-", err: ErrUnexpectedEnd},
		{name: "leading zero", parser: Int, input: "-05", err: ErrLeadingZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, err := tt.parser.ParseAt(cursor.New(tt.input))
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, _, err := Uint8.ParseAt(cursor.New("2569"))

	var perr *cursor.Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 3, perr.Column)
}

func TestCharAndString(t *testing.T) {
	v, next, err := Char.ParseAt(cursor.New("éx"))
	assert.NoError(t, err)
	assert.Equal(t, any('é'), v)
	assert.Equal(t, "x", next.Remaining)

	_, _, err = Char.ParseAt(cursor.New(""))
	assert.True(t, errors.Is(err, ErrUnexpectedEnd))

	v, next, err = String.ParseAt(cursor.New("rest of it"))
	assert.NoError(t, err)
	assert.Equal(t, any("rest of it"), v)
	assert.True(t, next.AtEnd())
}

func TestDecimal(t *testing.T) {
	v, next, err := Decimal.ParseAt(cursor.New("-12.50 EUR"))
	assert.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.RequireFromString("-12.5")))
	assert.Equal(t, " EUR", next.Remaining)

	v, next, err = Decimal.ParseAt(cursor.New("7."))
	assert.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.NewFromInt(7)))
	assert.Equal(t, ".", next.Remaining)

	_, _, err = Decimal.ParseAt(cursor.New("x"))
	assert.True(t, errors.Is(err, ErrInvalidDecimal))
}

func TestUUID(t *testing.T) {
	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	v, next, err := UUID.ParseAt(cursor.New(id + "/x"))
	assert.NoError(t, err)
	assert.Equal(t, uuid.MustParse(id), v.(uuid.UUID))
	assert.Equal(t, "/x", next.Remaining)

	_, _, err = UUID.ParseAt(cursor.New("6ba7b810"))
	assert.True(t, errors.Is(err, ErrInvalidUUID))
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("u32")
	assert.True(t, ok)

	v, _, err := p.ParseAt(cursor.New("13"))
	assert.NoError(t, err)
	assert.Equal(t, any(uint32(13)), v)

	_, ok = Lookup("u128")
	assert.False(t, ok)
	assert.Equal(t, 15, len(Names()))
	assert.Equal(t, "bool", Names()[0])
}
