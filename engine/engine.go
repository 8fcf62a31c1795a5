// Package engine runs compiled pegex expressions against input text.
//
// Matching is PEG-like: alternatives are tried in order and the first one
// that matches wins, and repetition is greedy and possessive, so a
// quantifier never gives back input it has consumed. Captures are logged in
// match order; the log entries of an alternative or repetition iteration
// that fails are discarded.
package engine

import (
	"errors"

	"github.com/nathaniel-bennett/peggle/cursor"
	"github.com/nathaniel-bennett/peggle/leaf"
	"github.com/nathaniel-bennett/peggle/schema"
	"github.com/nathaniel-bennett/peggle/syntax"
)

// Field is the run-time description of a capture target
type Field struct {
	Name        string
	Cardinality schema.Cardinality
	// Restrict, when set, selects the prefix handed to Leaf
	Restrict *syntax.Expression
	Leaf     leaf.Parser
}

// Capture is one value captured for a field
type Capture struct {
	Field string
	Value any
}

// Program is a compiled expression bound to its capture targets.
// It is immutable and safe for concurrent use.
type Program struct {
	root   *syntax.Expression
	fields map[string]Field
}

// New creates a program matching root and capturing into fields
func New(root *syntax.Expression, fields []Field) *Program {
	p := &Program{
		root:   root,
		fields: make(map[string]Field, len(fields)),
	}

	for _, f := range fields {
		p.fields[f.Name] = f
	}

	return p
}

// Match matches a prefix of the cursor's input. On success it returns the
// cursor after the match and the captures in match order. On failure the
// error is a *cursor.Error at the position where the last attempt failed.
func (p *Program) Match(c cursor.Cursor) (cursor.Cursor, []Capture, error) {
	m := &matcher{fields: p.fields}

	end, ok := m.expression(p.root, c)
	if !ok {
		cause := m.cause

		var perr *cursor.Error
		if errors.As(cause, &perr) {
			cause = perr.Err
		}

		return c, nil, cursor.Fail(end, cause)
	}

	return end, m.captures, nil
}

// MatchText matches expr against a prefix of c without captures. It is used
// for field restrictions, which cannot contain field references.
func MatchText(expr *syntax.Expression, c cursor.Cursor) (cursor.Cursor, bool) {
	m := &matcher{}
	return m.expression(expr, c)
}

type matcher struct {
	fields   map[string]Field
	captures []Capture
	// cause is the error behind the most recent failure, if it carried one
	cause error
}

// Every match function returns the cursor after the match on success, or
// the position of the failure.

func (m *matcher) expression(e *syntax.Expression, c cursor.Cursor) (cursor.Cursor, bool) {
	mark := len(m.captures)
	failure := c

	for i := range e.Alternatives {
		end, ok := m.sequence(&e.Alternatives[i], c)
		if ok {
			return end, true
		}

		m.captures = m.captures[:mark]
		failure = end
	}

	return failure, false
}

func (m *matcher) sequence(s *syntax.Sequence, c cursor.Cursor) (cursor.Cursor, bool) {
	for i := range s.Atoms {
		end, ok := m.repeat(&s.Atoms[i], c)
		if !ok {
			return end, false
		}

		c = end
	}

	return c, true
}

// repeat matches an atom up to Rep.Max times, stopping at the first failure.
// An iteration that consumes nothing ends the loop, since every further
// iteration would match the same way. Its captures are kept only when it is
// the first iteration.
func (m *matcher) repeat(a *syntax.Atom, c cursor.Cursor) (cursor.Cursor, bool) {
	mark := len(m.captures)

	for n := 0; n < a.Rep.Max; n++ {
		iteration := len(m.captures)

		end, ok := m.once(a.Node, c)
		if !ok {
			m.captures = m.captures[:iteration]

			if n >= a.Rep.Min {
				return c, true
			}

			m.captures = m.captures[:mark]

			return end, false
		}

		if end.Len() == c.Len() {
			if n > 0 {
				m.captures = m.captures[:iteration]
			}

			return end, true
		}

		c = end
	}

	return c, true
}

func (m *matcher) once(n syntax.Node, c cursor.Cursor) (cursor.Cursor, bool) {
	switch n := n.(type) {
	case *syntax.Literal:
		return m.char(c, func(r rune) bool { return r == n.Char })
	case *syntax.AnyChar:
		return m.char(c, func(rune) bool { return true })
	case *syntax.Class:
		return m.char(c, n.Matches)
	case *syntax.Escape:
		return m.char(c, n.Class.Matches)
	case *syntax.Group:
		return m.expression(n.Expr, c)
	case *syntax.FieldRef:
		return m.field(n.Name, c)
	default:
		m.cause = ErrUnknownNode
		return c, false
	}
}

func (m *matcher) char(c cursor.Cursor, accept func(rune) bool) (cursor.Cursor, bool) {
	r, next, ok := c.Next()
	if !ok || !accept(r) {
		m.cause = nil
		return c, false
	}

	return next, true
}

func (m *matcher) field(name string, c cursor.Cursor) (cursor.Cursor, bool) {
	f, ok := m.fields[name]
	if !ok {
		m.cause = ErrUnboundField
		return c, false
	}

	input := c
	if f.Restrict != nil {
		end, ok := MatchText(f.Restrict, c)
		if !ok {
			m.cause = nil
			return end, false
		}

		input = c.Limit(len(c.Remaining) - len(end.Remaining))
	}

	value, after, err := f.Leaf.ParseAt(input)
	if err != nil {
		m.cause = err
		if pos, ok := cursor.At(err); ok {
			return pos, false
		}

		return c, false
	}

	if f.Restrict != nil && !after.AtEnd() {
		m.cause = ErrRestrictionNotConsumed
		return after, false
	}

	m.captures = append(m.captures, Capture{Field: name, Value: value})

	if f.Restrict != nil {
		return c.Advance(len(input.Remaining)), true
	}

	return after, true
}
