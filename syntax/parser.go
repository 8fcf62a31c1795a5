// Package syntax compiles pegex patterns into expression trees.
//
// A pegex is a small regex-like language: literals, '.', backslash classes,
// bracket expressions, groups, alternation, the usual quantifiers and
// <name> field captures. Field captures are checked against a schema while
// the pattern is parsed, so an accepted tree is always consistent with the
// cardinality of every field it captures.
package syntax

import (
	"fmt"

	"github.com/nathaniel-bennett/peggle/internal/suggest"
	"github.com/nathaniel-bennett/peggle/schema"
	"github.com/nathaniel-bennett/peggle/verify"
)

// Compile parses pattern and verifies its field captures against s
func Compile(pattern string, s *schema.Schema) (*Expression, error) {
	expr, _, err := CompileWithBounds(pattern, s)
	return expr, err
}

// CompileWithBounds is like Compile and also returns the verified
// occurrence bounds of every single and optional field.
func CompileWithBounds(pattern string, s *schema.Schema) (*Expression, map[string]verify.Bounds, error) {
	p := newParser(pattern, s, verify.New(s))

	expr, err := p.parse()
	if err != nil {
		return nil, nil, err
	}

	bounds, err := p.req.Finish()
	if err != nil {
		return nil, nil, p.errorAt(len(p.src), err)
	}

	return expr, bounds, nil
}

// CompileRestriction parses a field's own pattern. Field captures are not
// allowed in it.
func CompileRestriction(pattern string) (*Expression, error) {
	return newParser(pattern, nil, nil).parse()
}

// parser is a recursive descent parser over the pattern's characters
type parser struct {
	pattern string
	src     []rune
	pos     int
	schema  *schema.Schema
	req     *verify.Requirements
}

func newParser(pattern string, s *schema.Schema, req *verify.Requirements) *parser {
	return &parser{
		pattern: pattern,
		src:     []rune(pattern),
		schema:  s,
		req:     req,
	}
}

func (p *parser) parse() (*Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		// parseExpression only stops early at ')'
		return nil, p.errorAt(p.pos, ErrExtraCloseParen)
	}

	return expr, nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) next() (rune, bool) {
	if p.eof() {
		return 0, false
	}

	r := p.src[p.pos]
	p.pos++

	return r, true
}

func (p *parser) match(r rune) bool {
	if !p.eof() && p.src[p.pos] == r {
		p.pos++
		return true
	}

	return false
}

func (p *parser) errorAt(offset int, err error) error {
	return &CompileError{Pattern: p.pattern, Offset: offset, Err: err}
}

func (p *parser) parseExpression() (*Expression, error) {
	expr := &Expression{}

	for {
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}

		expr.Alternatives = append(expr.Alternatives, seq)

		bar := p.pos
		if !p.match('|') {
			return expr, nil
		}

		if p.req != nil {
			err := p.req.Split()
			if err != nil {
				return nil, p.errorAt(bar, err)
			}
		}
	}
}

func (p *parser) parseSequence() (Sequence, error) {
	var seq Sequence

	for !p.eof() {
		if r := p.peek(); r == '|' || r == ')' {
			break
		}

		atom, err := p.parseAtom()
		if err != nil {
			return Sequence{}, err
		}

		seq.Atoms = append(seq.Atoms, atom)
	}

	return seq, nil
}

func (p *parser) parseAtom() (Atom, error) {
	start := p.pos
	r, _ := p.next()

	switch r {
	case '(':
		return p.parseGroup(start)
	case '<':
		return p.parseField(start)
	}

	var node Node

	switch r {
	case '.':
		node = &AnyChar{}
	case '\\':
		escape, err := p.parseEscape(start)
		if err != nil {
			return Atom{}, err
		}

		node = escape
	case '[':
		class, err := p.parseClass(start)
		if err != nil {
			return Atom{}, err
		}

		node = class
	case '^', '$':
		return Atom{}, p.errorAt(start, fmt.Errorf("%w: '%c' (use \\%c for the literal character)", ErrReservedSymbol, r, r))
	case '*', '+', '?', '{', '}', ']', '>':
		return Atom{}, p.errorAt(start, fmt.Errorf("%w: '%c'", ErrUnexpectedToken, r))
	default:
		node = &Literal{Char: r}
	}

	rep, err := p.parseRepetition()
	if err != nil {
		return Atom{}, err
	}

	return Atom{Node: node, Rep: rep, Offset: start}, nil
}

func (p *parser) parseGroup(start int) (Atom, error) {
	if p.req != nil {
		p.req.Push()
	}

	inner, err := p.parseExpression()
	if err != nil {
		return Atom{}, err
	}

	if !p.match(')') {
		return Atom{}, p.errorAt(start, ErrMissingCloseParen)
	}

	rep, err := p.parseRepetition()
	if err != nil {
		return Atom{}, err
	}

	if p.req != nil {
		err := p.req.Pop(rep.Bounds())
		if err != nil {
			return Atom{}, p.errorAt(start, err)
		}
	}

	return Atom{Node: &Group{Expr: inner}, Rep: rep, Offset: start}, nil
}

func (p *parser) parseField(start int) (Atom, error) {
	if p.req == nil {
		return Atom{}, p.errorAt(start, ErrFieldInRestriction)
	}

	nameStart := p.pos
	for !p.eof() && p.peek() != '>' {
		p.pos++
	}

	if p.eof() {
		return Atom{}, p.errorAt(start, ErrUnterminatedField)
	}

	name := string(p.src[nameStart:p.pos])
	p.pos++ // '>'

	if _, ok := p.schema.Lookup(name); !ok {
		return Atom{}, p.errorAt(start, fmt.Errorf("%w: '%s'%s", ErrUnrecognizedField, name, suggest.Hint(name, p.schema.Names())))
	}

	rep, err := p.parseRepetition()
	if err != nil {
		return Atom{}, err
	}

	err = p.req.Add(name, rep.Bounds())
	if err != nil {
		return Atom{}, p.errorAt(start, err)
	}

	return Atom{Node: &FieldRef{Name: name}, Rep: rep, Offset: start}, nil
}

// escapable characters match themselves after a backslash
const escapable = `\{}[]()^$.|*+?<>&`

func (p *parser) parseEscape(start int) (Node, error) {
	r, ok := p.next()
	if !ok {
		return nil, p.errorAt(start, ErrDanglingEscape)
	}

	if class, ok := escapeClasses[r]; ok {
		return &Escape{Class: class}, nil
	}

	for _, e := range escapable {
		if e == r {
			return &Literal{Char: r}, nil
		}
	}

	return nil, p.errorAt(start, fmt.Errorf("%w: '\\%c'", ErrUnknownEscape, r))
}

func (p *parser) parseRepetition() (Repetition, error) {
	switch p.peek() {
	case '?':
		p.pos++
		return Repetition{Min: 0, Max: 1}, nil
	case '*':
		p.pos++
		return Repetition{Min: 0, Max: Unbounded}, nil
	case '+':
		p.pos++
		return Repetition{Min: 1, Max: Unbounded}, nil
	case '{':
		return p.parseBraces()
	default:
		return Once, nil
	}
}
