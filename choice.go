package peggle

import (
	"fmt"

	"github.com/nathaniel-bennett/peggle/cursor"
	"github.com/nathaniel-bennett/peggle/record"
)

// Alternative is one named arm of a Choice
type Alternative struct {
	Name    string
	Pattern *Pattern
}

// Choice tries its alternatives in order and yields a *record.Variant for
// the first one that matches.
type Choice struct {
	name         string
	alternatives []Alternative
	maxDepth     int
}

// NewChoice builds a choice from ordered alternatives
func NewChoice(name string, alternatives ...Alternative) (*Choice, error) {
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrEmptyChoice, name)
	}

	seen := make(map[string]bool, len(alternatives))

	for _, alt := range alternatives {
		if alt.Pattern == nil {
			return nil, fmt.Errorf("%w: alternative '%s' of '%s' has no pattern", ErrInvalidRule, alt.Name, name)
		}

		if seen[alt.Name] {
			return nil, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateAlternative, alt.Name, name)
		}

		seen[alt.Name] = true
	}

	c := &Choice{
		name:         name,
		alternatives: append([]Alternative(nil), alternatives...),
		maxDepth:     alternatives[0].Pattern.maxDepth,
	}

	for _, alt := range alternatives[1:] {
		c.maxDepth = min(c.maxDepth, alt.Pattern.maxDepth)
	}

	return c, nil
}

// Name returns the choice's name
func (c *Choice) Name() string {
	return c.name
}

// Alternatives returns the alternatives in the order they are tried
func (c *Choice) Alternatives() []Alternative {
	return append([]Alternative(nil), c.alternatives...)
}

// Parse matches the whole input against the first alternative that
// matches a prefix of it
func (c *Choice) Parse(input string) (*record.Variant, error) {
	v, end, err := c.ParseAt(cursor.New(input))
	if err != nil {
		return nil, err
	}

	if !end.AtEnd() {
		return nil, cursor.Fail(end, cursor.ErrIncomplete)
	}

	return v.(*record.Variant), nil
}

// ParseAt returns a *record.Variant for the first matching alternative.
// When none matches, the error of the last alternative is returned.
func (c *Choice) ParseAt(cur cursor.Cursor) (any, cursor.Cursor, error) {
	if cur.Depth() >= c.maxDepth {
		return nil, cur, cursor.Fail(cur, cursor.ErrDepthExceeded)
	}

	var last error

	for _, alt := range c.alternatives {
		r, end, err := alt.Pattern.parse(cur.Descend())
		if err == nil {
			return &record.Variant{Name: alt.Name, Record: r}, end.AtDepth(cur.Depth()), nil
		}

		last = err
	}

	return nil, cur, last
}
