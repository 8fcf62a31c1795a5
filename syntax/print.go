package syntax

import (
	"fmt"
	"io"
	"strings"
)

// String prints the expression back as a canonical pegex
func (e *Expression) String() string {
	var b strings.Builder
	writeExpression(&b, e)

	return b.String()
}

func writeExpression(b *strings.Builder, e *Expression) {
	for i, seq := range e.Alternatives {
		if i > 0 {
			b.WriteByte('|')
		}

		for _, atom := range seq.Atoms {
			writeNode(b, atom.Node)
			b.WriteString(atom.Rep.String())
		}
	}
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Literal:
		if strings.ContainsRune(escapable, n.Char) {
			b.WriteByte('\\')
		}

		b.WriteRune(n.Char)
	case *AnyChar:
		b.WriteByte('.')
	case *Escape:
		b.WriteByte('\\')
		b.WriteRune(n.Class.Letter())
	case *Class:
		b.WriteString(n.String())
	case *FieldRef:
		b.WriteString("<" + n.Name + ">")
	case *Group:
		b.WriteByte('(')
		writeExpression(b, n.Expr)
		b.WriteByte(')')
	}
}

// String prints the class as a bracket expression. Items starting with ']'
// or '-' are moved to the front and a literal '-' to the end, the positions
// where they need no escaping.
func (c *Class) String() string {
	var lead, middle, trail strings.Builder

	for _, item := range c.Items {
		switch {
		case item.Posix != PosixNone:
			middle.WriteString("[:" + item.Posix.String() + ":]")
		case item.Lo == '-' && item.Hi == '-':
			trail.WriteByte('-')
		case item.Lo == ']' || item.Lo == '-':
			writeClassItem(&lead, item)
		default:
			writeClassItem(&middle, item)
		}
	}

	negate := ""
	if c.Negated {
		negate = "^"
	}

	return "[" + negate + lead.String() + middle.String() + trail.String() + "]"
}

func writeClassItem(b *strings.Builder, item ClassItem) {
	b.WriteRune(item.Lo)

	if item.Hi != item.Lo {
		b.WriteByte('-')
		b.WriteRune(item.Hi)
	}
}

// String prints the repetition as a quantifier suffix
func (r Repetition) String() string {
	switch {
	case r == Once:
		return ""
	case r.Min == 0 && r.Max == 1:
		return "?"
	case r.Min == 0 && r.Max == Unbounded:
		return "*"
	case r.Min == 1 && r.Max == Unbounded:
		return "+"
	case r.Max == Unbounded:
		return fmt.Sprintf("{%d,}", r.Min)
	case r.Min == r.Max:
		return fmt.Sprintf("{%d}", r.Min)
	case r.Min == 0:
		return fmt.Sprintf("{,%d}", r.Max)
	default:
		return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
	}
}

// Dump writes an indented outline of the expression tree
func Dump(w io.Writer, e *Expression) error {
	return dumpExpression(w, e, 0)
}

func dumpExpression(w io.Writer, e *Expression, depth int) error {
	indent := strings.Repeat("  ", depth)

	for i, seq := range e.Alternatives {
		if len(e.Alternatives) > 1 {
			if _, err := fmt.Fprintf(w, "%salternative %d\n", indent, i+1); err != nil {
				return err
			}
		}

		for _, atom := range seq.Atoms {
			err := dumpAtom(w, atom, depth+1)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func dumpAtom(w io.Writer, atom Atom, depth int) error {
	indent := strings.Repeat("  ", depth)
	rep := ""

	if atom.Rep != Once {
		rep = " " + atom.Rep.String()
	}

	var label string

	switch n := atom.Node.(type) {
	case *Literal:
		label = fmt.Sprintf("literal %q", n.Char)
	case *AnyChar:
		label = "any"
	case *Escape:
		label = fmt.Sprintf("escape \\%c", n.Class.Letter())
	case *Class:
		label = "class " + n.String()
	case *FieldRef:
		label = "field " + n.Name
	case *Group:
		if _, err := fmt.Fprintf(w, "%sgroup%s\n", indent, rep); err != nil {
			return err
		}

		return dumpExpression(w, n.Expr, depth)
	}

	_, err := fmt.Fprintf(w, "%s%s%s\n", indent, label, rep)

	return err
}
