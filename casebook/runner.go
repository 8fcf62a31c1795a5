package casebook

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-yaml"

	"github.com/nathaniel-bennett/peggle/record"
)

// Result is the outcome of one case
type Result struct {
	Book    string
	Section string
	Case    Case
	// Err is nil when the case behaved as expected
	Err error
}

// OK reports whether the case behaved as expected
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary counts case results
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize counts the results
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}

	for _, r := range results {
		if r.OK() {
			s.Passed++
		} else {
			s.Failed++
		}
	}

	return s
}

// Run executes every case of the book in order
func (b *Book) Run() []Result {
	var results []Result

	for _, section := range b.Sections {
		for _, c := range section.Cases {
			results = append(results, Result{
				Book:    b.Path,
				Section: section.Name,
				Case:    c,
				Err:     b.runCase(section, c),
			})
		}
	}

	return results
}

func (b *Book) parse(section *Section, input string) (any, error) {
	if section.Pattern {
		r, err := section.compiled.Parse(input)
		if err != nil {
			return nil, err
		}

		return r, nil
	}

	return b.Grammar.Parse(section.Name, input)
}

func (b *Book) runCase(section *Section, c Case) error {
	value, err := b.parse(section, c.Input)

	if !c.Pass {
		if err == nil {
			return fmt.Errorf("%w: %q", ErrUnexpectedSuccess, c.Input)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnexpectedFailure, c.Input, err)
	}

	if !c.HasExpect {
		return nil
	}

	return compare(c.Expect, value)
}

// compare checks a parsed value against an expectation by sending the
// value through the same YAML decoding the expectation went through
func compare(expect, value any) error {
	var plain any

	switch v := value.(type) {
	case *record.Record:
		plain = v.AsMap()
	case *record.Variant:
		plain = v.AsMap()
	default:
		plain = v
	}

	encoded, err := yaml.Marshal(plain)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	var actual any

	err = yaml.Unmarshal(encoded, &actual)
	if err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}

	if reflect.DeepEqual(expect, actual) {
		return nil
	}

	want, _ := yaml.Marshal(expect)

	return fmt.Errorf("%w:\nwant:\n%sgot:\n%s", ErrRecordMismatch, want, encoded)
}
