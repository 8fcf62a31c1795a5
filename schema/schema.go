// Package schema describes the record shape a pattern captures into: an
// ordered list of named fields, each with a cardinality and a leaf parser.
package schema

import (
	"fmt"
	"strings"

	"github.com/nathaniel-bennett/peggle/leaf"
)

// Cardinality is how many times a field may be captured
type Cardinality int

const (
	// Single fields are captured exactly once
	Single Cardinality = iota
	// Optional fields are captured at most once
	Optional
	// Many fields are captured any number of times, in order
	Many
)

// String returns the string representation of Cardinality
func (c Cardinality) String() string {
	switch c {
	case Single:
		return "single"
	case Optional:
		return "optional"
	case Many:
		return "many"
	default:
		return "unknown"
	}
}

// ParseCardinality parses single, optional or many. An empty string means single.
func ParseCardinality(s string) (Cardinality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return Single, nil
	case "optional":
		return Optional, nil
	case "many":
		return Many, nil
	default:
		return Single, fmt.Errorf("%w: '%s' must be one of single, optional, many", ErrUnknownCardinality, s)
	}
}

// Field describes one capture target
type Field struct {
	Name        string
	Cardinality Cardinality
	// Pattern optionally restricts the text handed to Leaf
	Pattern string
	Leaf    leaf.Parser
}

// Schema is an ordered, immutable set of fields with unique names
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from fields in declaration order
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}

		if _, exists := s.index[f.Name]; exists {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateField, f.Name)
		}

		if f.Leaf == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrMissingLeaf, f.Name)
		}

		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	return s, nil
}

// MustNew is like New but panics on error
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic("schema: New: " + err.Error())
	}

	return s
}

// Lookup returns the field with the given name
func (s *Schema) Lookup(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}

	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}

	return s.fields[i], true
}

// Fields returns a copy of the fields in declaration order
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}

	out := make([]Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// Names returns the field names in declaration order
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}

	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}

	return names
}

// Len returns the number of fields
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}

	return len(s.fields)
}
