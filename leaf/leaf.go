// Package leaf defines how a capture's value is read from the input and
// ships parsers for the common scalar types.
package leaf

import (
	"slices"

	"github.com/nathaniel-bennett/peggle/cursor"
)

// Parser reads one value from the start of the cursor's remaining input.
// It returns the value and the cursor after the consumed text, or an error
// that should carry a position (see cursor.Fail).
type Parser interface {
	ParseAt(c cursor.Cursor) (any, cursor.Cursor, error)
}

// Func adapts a function to the Parser interface
type Func func(c cursor.Cursor) (any, cursor.Cursor, error)

// ParseAt implements Parser
func (f Func) ParseAt(c cursor.Cursor) (any, cursor.Cursor, error) {
	return f(c)
}

var builtins = map[string]Parser{
	"bool":    Bool,
	"u8":      Uint8,
	"u16":     Uint16,
	"u32":     Uint32,
	"u64":     Uint64,
	"uint":    Uint,
	"i8":      Int8,
	"i16":     Int16,
	"i32":     Int32,
	"i64":     Int64,
	"int":     Int,
	"char":    Char,
	"string":  String,
	"decimal": Decimal,
	"uuid":    UUID,
}

// Lookup returns the built-in parser registered under a type name
func Lookup(typeName string) (Parser, bool) {
	p, ok := builtins[typeName]
	return p, ok
}

// Names returns the registered type names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Bool parses the literals true and false
var Bool Parser = Func(parseBool)

// Char parses exactly one character
var Char Parser = Func(parseChar)

// String consumes the entire remaining input
var String Parser = Func(parseString)

func parseBool(c cursor.Cursor) (any, cursor.Cursor, error) {
	if s, ok := c.PeekN(4); ok && s == "true" {
		return true, c.Advance(4), nil
	}

	if s, ok := c.PeekN(5); ok && s == "false" {
		return false, c.Advance(5), nil
	}

	return nil, c, cursor.Fail(c, ErrInvalidBool)
}

func parseChar(c cursor.Cursor) (any, cursor.Cursor, error) {
	r, next, ok := c.Next()
	if !ok {
		return nil, c, cursor.Fail(c, ErrUnexpectedEnd)
	}

	return r, next, nil
}

func parseString(c cursor.Cursor) (any, cursor.Cursor, error) {
	return c.Remaining, c.AdvanceToEnd(), nil
}
