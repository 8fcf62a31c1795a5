package syntax

import (
	"fmt"
)

// parseClass parses a bracket expression after its opening '['.
//
// A ']' or '-' right after the opening bracket (or after '^') is literal,
// as is a '-' right before the closing bracket.
func (p *parser) parseClass(start int) (*Class, error) {
	class := &Class{Negated: p.match('^')}

	if r := p.peek(); r == ']' || r == '-' {
		p.pos++

		closed, err := p.parseClassMember(start, class, r)
		if err != nil {
			return nil, err
		}

		if closed {
			return class, nil
		}
	}

	for {
		r, ok := p.next()
		if !ok {
			return nil, p.errorAt(start, ErrUnterminatedClass)
		}

		switch {
		case r == ']':
			return class, nil
		case r == '-' && p.match(']'):
			class.Items = append(class.Items, ClassItem{Lo: '-', Hi: '-'})
			return class, nil
		case r == '-':
			return nil, p.errorAt(p.pos-1, ErrMisplacedDash)
		case r == '[' && p.peek() == ':':
			posix, err := p.parsePosix(start)
			if err != nil {
				return nil, err
			}

			class.Items = append(class.Items, ClassItem{Posix: posix})
		default:
			closed, err := p.parseClassMember(start, class, r)
			if err != nil {
				return nil, err
			}

			if closed {
				return class, nil
			}
		}
	}
}

// parseClassMember adds lo, or the range starting at lo, to the class. It
// reports whether the class was closed by a trailing "-]".
func (p *parser) parseClassMember(start int, class *Class, lo rune) (bool, error) {
	if !p.match('-') {
		class.Items = append(class.Items, ClassItem{Lo: lo, Hi: lo})
		return false, nil
	}

	dash := p.pos - 1

	hi, ok := p.next()
	if !ok {
		return false, p.errorAt(start, ErrUnterminatedClass)
	}

	if hi == ']' {
		class.Items = append(class.Items, ClassItem{Lo: lo, Hi: lo}, ClassItem{Lo: '-', Hi: '-'})
		return true, nil
	}

	if hi < lo {
		return false, p.errorAt(dash, fmt.Errorf("%w: '%c-%c'", ErrInvalidRangeOrder, lo, hi))
	}

	class.Items = append(class.Items, ClassItem{Lo: lo, Hi: hi})

	return false, nil
}

// parsePosix parses [:name:] after its opening '['
func (p *parser) parsePosix(start int) (PosixClass, error) {
	labelStart := p.pos - 1
	p.pos++ // ':'

	nameStart := p.pos
	for !p.eof() && p.peek() != ':' {
		p.pos++
	}

	name := string(p.src[nameStart:p.pos])

	if !p.match(':') || !p.match(']') {
		return PosixNone, p.errorAt(start, ErrUnterminatedClass)
	}

	class, ok := posixNames[name]
	if !ok {
		return PosixNone, p.errorAt(labelStart, fmt.Errorf("%w: '%s'", ErrUnknownPosixClass, name))
	}

	return class, nil
}
