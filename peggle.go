// Package peggle compiles pegex patterns into parsers that fill records.
//
// A pattern is compiled against a schema naming the fields it captures:
//
//	s := schema.MustNew(
//		schema.Field{Name: "first", Leaf: leaf.Uint32},
//		schema.Field{Name: "second", Pattern: "asdf", Leaf: leaf.String},
//	)
//	p := peggle.MustCompile("gggg<second> fdsa <first>", s)
//	r, err := p.Parse("ggggasdf fdsa 0")
//
// Compilation checks that every field can be captured exactly as often as
// its cardinality allows, so a successful Parse always yields a complete
// record. Compiled patterns are immutable and safe for concurrent use.
package peggle

import (
	"fmt"
	"maps"

	"github.com/nathaniel-bennett/peggle/cursor"
	"github.com/nathaniel-bennett/peggle/engine"
	"github.com/nathaniel-bennett/peggle/record"
	"github.com/nathaniel-bennett/peggle/schema"
	"github.com/nathaniel-bennett/peggle/syntax"
	"github.com/nathaniel-bennett/peggle/verify"
)

// DefaultMaxDepth is the default limit on nested pattern invocations
const DefaultMaxDepth = 1000

type options struct {
	name     string
	maxDepth int
	where    string
}

// Option configures Compile
type Option func(*options)

// WithName names the pattern. Grammar rules are named after the rule.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMaxDepth limits how deeply patterns used as field types may nest
// while matching. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithWhere adds a CEL expression that must hold for a match to succeed.
// Fields are available by name and through the `record` map.
func WithWhere(expr string) Option {
	return func(o *options) {
		o.where = expr
	}
}

func buildOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Pattern is a compiled pegex bound to a schema
type Pattern struct {
	source   string
	name     string
	schema   *schema.Schema
	tree     *syntax.Expression
	bounds   map[string]verify.Bounds
	program  *engine.Program
	where    *predicate
	maxDepth int
}

// Compile compiles pattern against s. A nil schema allows no field captures.
func Compile(pattern string, s *schema.Schema, opts ...Option) (*Pattern, error) {
	o := buildOptions(opts)

	if s == nil {
		s = schema.MustNew()
	}

	tree, bounds, err := syntax.CompileWithBounds(pattern, s)
	if err != nil {
		return nil, err
	}

	fields := make([]engine.Field, 0, s.Len())

	for _, f := range s.Fields() {
		target := engine.Field{
			Name:        f.Name,
			Cardinality: f.Cardinality,
			Leaf:        f.Leaf,
		}

		if f.Pattern != "" {
			target.Restrict, err = compileRestriction(f.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: field '%s': %w", ErrFieldPattern, f.Name, err)
			}
		}

		fields = append(fields, target)
	}

	p := &Pattern{
		source:   pattern,
		name:     o.name,
		schema:   s,
		tree:     tree,
		bounds:   bounds,
		program:  engine.New(tree, fields),
		maxDepth: o.maxDepth,
	}

	if o.where != "" {
		p.where, err = compilePredicate(o.where, s)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled
func MustCompile(pattern string, s *schema.Schema, opts ...Option) *Pattern {
	p, err := Compile(pattern, s, opts...)
	if err != nil {
		panic("peggle: Compile(`" + pattern + "`): " + err.Error())
	}

	return p
}

// Parse matches the whole input and returns the captured record
func (p *Pattern) Parse(input string) (*record.Record, error) {
	r, end, err := p.parse(cursor.New(input))
	if err != nil {
		return nil, err
	}

	if !end.AtEnd() {
		return nil, cursor.Fail(end, cursor.ErrIncomplete)
	}

	return r, nil
}

// ParseInto parses input and decodes the record into the struct dst points to
func (p *Pattern) ParseInto(input string, dst any) error {
	r, err := p.Parse(input)
	if err != nil {
		return err
	}

	return r.Decode(dst)
}

// Match reports whether the whole input matches
func (p *Pattern) Match(input string) bool {
	_, err := p.Parse(input)
	return err == nil
}

// ParseAt matches a prefix of the cursor's input, returning a *record.Record.
// It lets a pattern serve as the leaf parser of another pattern's field.
func (p *Pattern) ParseAt(c cursor.Cursor) (any, cursor.Cursor, error) {
	if c.Depth() >= p.maxDepth {
		return nil, c, cursor.Fail(c, cursor.ErrDepthExceeded)
	}

	r, end, err := p.parse(c.Descend())
	if err != nil {
		return nil, c, err
	}

	return r, end.AtDepth(c.Depth()), nil
}

func (p *Pattern) parse(c cursor.Cursor) (*record.Record, cursor.Cursor, error) {
	end, caps, err := p.program.Match(c)
	if err != nil {
		return nil, c, err
	}

	r, err := record.Bind(p.schema, caps)
	if err != nil {
		return nil, c, cursor.Fail(c, err)
	}

	if p.where != nil {
		ok, err := p.where.eval(r)
		if err != nil {
			return nil, c, cursor.Fail(c, err)
		}

		if !ok {
			return nil, c, cursor.Fail(c, ErrPredicateFailed)
		}
	}

	return r, end, nil
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.source
}

// Name returns the name given with WithName
func (p *Pattern) Name() string {
	return p.name
}

// Schema returns the schema the pattern captures into
func (p *Pattern) Schema() *schema.Schema {
	return p.schema
}

// Tree returns the compiled expression tree
func (p *Pattern) Tree() *syntax.Expression {
	return p.tree
}

// Bounds returns the verified occurrence bounds of single and optional fields
func (p *Pattern) Bounds() map[string]verify.Bounds {
	return maps.Clone(p.bounds)
}
