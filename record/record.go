// Package record turns the captures of a successful match into a record
// shaped by the pattern's schema.
package record

import (
	"fmt"

	"github.com/nathaniel-bennett/peggle/engine"
	"github.com/nathaniel-bennett/peggle/schema"
)

// Record holds the captured values of one match.
//
// Single fields always have a value, optional fields may be absent and many
// fields hold a possibly empty []any in match order.
type Record struct {
	schema *schema.Schema
	values map[string]any
}

// Variant is the result of a choice: the name of the alternative that
// matched and its record.
type Variant struct {
	Name   string
	Record *Record
}

// Bind builds a record from captures. Single and optional fields keep the
// last captured value; many fields collect every value.
func Bind(s *schema.Schema, caps []engine.Capture) (*Record, error) {
	r := &Record{
		schema: s,
		values: make(map[string]any, s.Len()),
	}

	for _, f := range s.Fields() {
		if f.Cardinality == schema.Many {
			r.values[f.Name] = []any{}
		}
	}

	for _, c := range caps {
		f, ok := s.Lookup(c.Field)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownCapture, c.Field)
		}

		if f.Cardinality == schema.Many {
			r.values[c.Field] = append(r.values[c.Field].([]any), c.Value)
		} else {
			r.values[c.Field] = c.Value
		}
	}

	for _, f := range s.Fields() {
		if f.Cardinality != schema.Single {
			continue
		}

		if _, ok := r.values[f.Name]; !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrMissingRequired, f.Name)
		}
	}

	return r, nil
}

// Schema returns the schema the record was bound with
func (r *Record) Schema() *schema.Schema {
	return r.schema
}

// Get returns the value of a field. Many fields return their []any.
// The second result is false for absent optional fields and unknown names.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the field has a value
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Value returns the value of a field, or nil when it is absent
func (r *Record) Value(name string) any {
	return r.values[name]
}

// List returns the values of a many field
func (r *Record) List(name string) []any {
	list, _ := r.values[name].([]any)
	return list
}

// Names returns the field names in schema order
func (r *Record) Names() []string {
	return r.schema.Names()
}

// AsMap converts the record into plain maps and slices. Nested records
// become maps, variants become a single-key map from the variant name to its
// record, and absent optional fields become nil.
func (r *Record) AsMap() map[string]any {
	out := make(map[string]any, len(r.values))
	for _, name := range r.schema.Names() {
		out[name] = plain(r.values[name])
	}

	return out
}

// AsMap converts the variant into a single-key map
func (v *Variant) AsMap() map[string]any {
	return map[string]any{v.Name: v.Record.AsMap()}
}

func plain(v any) any {
	switch v := v.(type) {
	case *Record:
		return v.AsMap()
	case *Variant:
		return v.AsMap()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}

		return out
	default:
		return v
	}
}
