package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/nathaniel-bennett/peggle"
	"github.com/nathaniel-bennett/peggle/syntax"
)

// ExplainCmd represents the explain command
type ExplainCmd struct {
	Grammar string `short:"g" help:"Grammar file (default: the configured grammar)" type:"path"`
	Rule    string `short:"r" help:"Rule to explain" required:""`
}

// Run prints the compiled pattern, its tree and the verified field bounds
func (cmd *ExplainCmd) Run(ctx *Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	g, err := p.resolveGrammar(ctx, cmd.Grammar)
	if err != nil {
		return err
	}

	rule, err := g.Rule(cmd.Rule)
	if err != nil {
		return err
	}

	return explainRule(os.Stdout, rule)
}

func explainRule(w io.Writer, rule peggle.Rule) error {
	switch r := rule.(type) {
	case *peggle.Pattern:
		return explainPattern(w, r, "")
	case *peggle.Choice:
		fmt.Fprintf(w, "choice %s\n", r.Name())

		for _, alt := range r.Alternatives() {
			fmt.Fprintf(w, "\nvariant %s\n", alt.Name)

			err := explainPattern(w, alt.Pattern, "  ")
			if err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %T", peggle.ErrInvalidRule, rule)
	}
}

func explainPattern(w io.Writer, p *peggle.Pattern, indent string) error {
	fmt.Fprintf(w, "%spattern:   %s\n", indent, p.String())
	fmt.Fprintf(w, "%scanonical: %s\n", indent, p.Tree().String())
	fmt.Fprintf(w, "%stree:\n", indent)

	err := syntax.Dump(&indentWriter{w: w, indent: indent + "  "}, p.Tree())
	if err != nil {
		return err
	}

	bounds := p.Bounds()
	if len(bounds) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%sfields:\n", indent)

	names := make([]string, 0, len(bounds))
	for name := range bounds {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		field, _ := p.Schema().Lookup(name)
		fmt.Fprintf(w, "%s  %s %s %s\n", indent, name, field.Cardinality, bounds[name])
	}

	return nil
}

// indentWriter prefixes every line written through it
type indentWriter struct {
	w       io.Writer
	indent  string
	midLine bool
}

func (iw *indentWriter) Write(data []byte) (int, error) {
	for i, b := range data {
		if !iw.midLine {
			if _, err := io.WriteString(iw.w, iw.indent); err != nil {
				return i, err
			}
		}

		if _, err := iw.w.Write([]byte{b}); err != nil {
			return i, err
		}

		iw.midLine = b != '\n'
	}

	return len(data), nil
}
