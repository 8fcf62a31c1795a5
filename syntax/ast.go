package syntax

import (
	"github.com/nathaniel-bennett/peggle/verify"
)

// Unbounded is the maximum of *, + and {m,}
const Unbounded = verify.Unbounded

// Repetition is how many times an atom must and may match
type Repetition struct {
	Min int
	Max int
}

// Once is the repetition of an unquantified atom
var Once = Repetition{Min: 1, Max: 1}

// Bounds converts the repetition to verifier bounds
func (r Repetition) Bounds() verify.Bounds {
	return verify.Bounds{Min: r.Min, Max: r.Max}
}

// Expression is an ordered choice between sequences.
// The first alternative that matches wins.
type Expression struct {
	Alternatives []Sequence
}

// Sequence is a list of atoms matched left to right
type Sequence struct {
	Atoms []Atom
}

// Atom is a node together with its repetition
type Atom struct {
	Node   Node
	Rep    Repetition
	Offset int // position in the pattern, in characters
}

// Node is one of *Literal, *AnyChar, *Class, *Escape, *FieldRef or *Group
type Node interface {
	node()
}

// Literal matches one exact character
type Literal struct {
	Char rune
}

// AnyChar matches any single character
type AnyChar struct{}

// Class matches one character against a bracket expression
type Class struct {
	Items   []ClassItem
	Negated bool
}

// Escape matches one character against a backslash class such as \d
type Escape struct {
	Class EscapeClass
}

// FieldRef captures a schema field
type FieldRef struct {
	Name string
}

// Group is a parenthesised sub-expression
type Group struct {
	Expr *Expression
}

func (*Literal) node()  {}
func (*AnyChar) node()  {}
func (*Class) node()    {}
func (*Escape) node()   {}
func (*FieldRef) node() {}
func (*Group) node()    {}

// ClassItem is a character range, a single character (Lo == Hi), or a POSIX
// class when Posix is set.
type ClassItem struct {
	Lo    rune
	Hi    rune
	Posix PosixClass
}

// Matches reports whether r is covered by the item
func (i ClassItem) Matches(r rune) bool {
	if i.Posix != PosixNone {
		return i.Posix.Matches(r)
	}

	return i.Lo <= r && r <= i.Hi
}

// Matches reports whether r is accepted by the class
func (c *Class) Matches(r rune) bool {
	for _, item := range c.Items {
		if item.Matches(r) {
			return !c.Negated
		}
	}

	return c.Negated
}

// EscapeClass is a backslash character class
type EscapeClass int

const (
	EscapeWord     EscapeClass = iota // \w
	EscapeNonWord                     // \W
	EscapeDigit                       // \d
	EscapeNonDigit                    // \D
	EscapeSpace                       // \s
	EscapeNonSpace                    // \S
)

var escapeClasses = map[rune]EscapeClass{
	'w': EscapeWord,
	'W': EscapeNonWord,
	'd': EscapeDigit,
	'D': EscapeNonDigit,
	's': EscapeSpace,
	'S': EscapeNonSpace,
}

// Letter returns the character following the backslash
func (e EscapeClass) Letter() rune {
	for r, class := range escapeClasses {
		if class == e {
			return r
		}
	}

	return '?'
}

// Matches reports whether r belongs to the class
func (e EscapeClass) Matches(r rune) bool {
	switch e {
	case EscapeWord:
		return isWord(r)
	case EscapeNonWord:
		return !isWord(r)
	case EscapeDigit:
		return isDigit(r)
	case EscapeNonDigit:
		return !isDigit(r)
	case EscapeSpace:
		return isSpace(r)
	case EscapeNonSpace:
		return !isSpace(r)
	default:
		return false
	}
}

func isWord(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	default:
		return false
	}
}

// PosixClass is a [:name:] class inside a bracket expression
type PosixClass int

const (
	PosixNone PosixClass = iota
	PosixUpper
	PosixLower
	PosixAlpha
	PosixDigit
	PosixXDigit
	PosixAlnum
	PosixPunct
	PosixBlank
	PosixSpace
	PosixCntrl
	PosixGraph
	PosixPrint
)

var posixNames = map[string]PosixClass{
	"upper":  PosixUpper,
	"lower":  PosixLower,
	"alpha":  PosixAlpha,
	"digit":  PosixDigit,
	"xdigit": PosixXDigit,
	"alnum":  PosixAlnum,
	"punct":  PosixPunct,
	"blank":  PosixBlank,
	"space":  PosixSpace,
	"cntrl":  PosixCntrl,
	"graph":  PosixGraph,
	"print":  PosixPrint,
}

// String returns the class name as written between the colons
func (p PosixClass) String() string {
	for name, class := range posixNames {
		if class == p {
			return name
		}
	}

	return ""
}

// Matches reports whether r belongs to the class. All classes are ASCII only.
func (p PosixClass) Matches(r rune) bool {
	switch p {
	case PosixUpper:
		return 'A' <= r && r <= 'Z'
	case PosixLower:
		return 'a' <= r && r <= 'z'
	case PosixAlpha:
		return PosixUpper.Matches(r) || PosixLower.Matches(r)
	case PosixDigit:
		return isDigit(r)
	case PosixXDigit:
		return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
	case PosixAlnum:
		return PosixAlpha.Matches(r) || isDigit(r)
	case PosixPunct:
		return PosixGraph.Matches(r) && !PosixAlnum.Matches(r)
	case PosixBlank:
		return r == ' ' || r == '\t'
	case PosixSpace:
		return isSpace(r)
	case PosixCntrl:
		return r < 0x20 || r == 0x7f
	case PosixGraph:
		return 0x21 <= r && r <= 0x7e
	case PosixPrint:
		return 0x20 <= r && r <= 0x7e
	default:
		return false
	}
}
