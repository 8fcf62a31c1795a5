package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/nathaniel-bennett/peggle"
	"github.com/nathaniel-bennett/peggle/cursor"
	"github.com/nathaniel-bennett/peggle/record"
)

// MatchCmd represents the match command
type MatchCmd struct {
	Grammar string   `short:"g" help:"Grammar file (default: the configured grammar)" type:"path"`
	Rule    string   `short:"r" help:"Rule to parse with" required:""`
	Text    string   `short:"t" help:"Input text; overrides files and stdin"`
	Output  string   `short:"o" help:"Output format (text, json, yaml; default from config)"`
	Files   []string `arg:"" optional:"" help:"Files whose content is parsed; stdin when none" type:"existingfile"`
}

type matchInput struct {
	name string
	text string
}

// Run parses each input and prints its record
func (cmd *MatchCmd) Run(ctx *Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	g, err := p.resolveGrammar(ctx, cmd.Grammar)
	if err != nil {
		return err
	}

	inputs, err := cmd.inputs(os.Stdin)
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = p.config.Output
	}

	failed := 0

	for _, in := range inputs {
		value, err := g.Parse(cmd.Rule, in.text)
		if err != nil {
			failed++

			if !ctx.Quiet {
				color.Red("✗ %s: %s", in.name, describeFailure(in.text, err))
			}

			continue
		}

		ctx.Logger.WithField("input", in.name).Debug("parsed input")

		err = writeValue(os.Stdout, output, value)
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrParseFailed, failed, len(inputs))
	}

	return nil
}

func (cmd *MatchCmd) inputs(stdin io.Reader) ([]matchInput, error) {
	if cmd.Text != "" {
		return []matchInput{{name: "--text", text: cmd.Text}}, nil
	}

	if len(cmd.Files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		if len(data) == 0 {
			return nil, ErrNoInput
		}

		return []matchInput{{name: "stdin", text: strings.TrimSuffix(string(data), "\n")}}, nil
	}

	inputs := make([]matchInput, 0, len(cmd.Files))

	for _, file := range cmd.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}

		inputs = append(inputs, matchInput{name: file, text: strings.TrimSuffix(string(data), "\n")})
	}

	return inputs, nil
}

// describeFailure adds the failure position and the rest of the line to a parse error
func describeFailure(input string, err error) string {
	at, ok := cursor.At(err)
	if !ok || at.Offset > len(input) {
		return err.Error()
	}

	rest, _, _ := strings.Cut(input[at.Offset:], "\n")
	if rest == "" {
		return err.Error() + " (at end of input)"
	}

	return fmt.Sprintf("%v (near %q)", err, rest)
}

func plainValue(value any) any {
	switch v := value.(type) {
	case *record.Record:
		return v.AsMap()
	case *record.Variant:
		return v.AsMap()
	default:
		return v
	}
}

func writeValue(w io.Writer, format string, value any) error {
	plain := plainValue(value)

	switch format {
	case peggle.OutputJSON:
		data, err := json.MarshalIndent(plain, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	case peggle.OutputYAML:
		data, err := yaml.Marshal(plain)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		_, err = fmt.Fprint(w, "---\n"+string(data))

		return err
	case peggle.OutputText, "":
		lines := flatten("", plain, nil)
		sort.Strings(lines)

		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))

		return err
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownOutput, format)
	}
}

// flatten renders nested maps and lists as "path = value" lines
func flatten(prefix string, value any, lines []string) []string {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 && prefix != "" {
			return append(lines, prefix+" = {}")
		}

		for key, item := range v {
			lines = flatten(join(prefix, key), item, lines)
		}

		return lines
	case []any:
		if len(v) == 0 {
			return append(lines, prefix+" = []")
		}

		for i, item := range v {
			lines = flatten(fmt.Sprintf("%s[%d]", prefix, i), item, lines)
		}

		return lines
	case nil:
		return append(lines, prefix+" = <none>")
	case string:
		return append(lines, fmt.Sprintf("%s = %q", prefix, v))
	default:
		return append(lines, fmt.Sprintf("%s = %v", prefix, v))
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
