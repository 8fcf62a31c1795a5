// Package verify checks, while a pattern is being compiled, that every field
// capture can occur as often as the field's cardinality allows and no more.
//
// The checker keeps one scope per open group. Inside a scope, occurrence
// bounds are summed along the current alternative; on '|' the finished
// alternative is compared with the first one of the scope, and when the
// group closes the bounds of all its alternatives are merged, multiplied by
// the group's repetition and added to the enclosing alternative.
package verify

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nathaniel-bennett/peggle/schema"
)

type counter map[string]Bounds

type scope struct {
	baseline counter
	current  counter
	merged   counter
}

func newScope() *scope {
	return &scope{current: counter{}}
}

// Requirements tracks field occurrence bounds for one pattern
type Requirements struct {
	schema *schema.Schema
	stack  []*scope
}

// New creates a checker for patterns capturing into s
func New(s *schema.Schema) *Requirements {
	return &Requirements{
		schema: s,
		stack:  []*scope{newScope()},
	}
}

func (r *Requirements) top() *scope {
	return r.stack[len(r.stack)-1]
}

// Add records that the current alternative captures name b times
func (r *Requirements) Add(name string, b Bounds) error {
	field, ok := r.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownField, name)
	}

	if field.Cardinality == schema.Many {
		return nil
	}

	cur := r.top().current

	total := b
	if prev, seen := cur[name]; seen {
		total = prev.plus(b)
	}

	err := check(field, total)
	if err != nil {
		return err
	}

	cur[name] = total

	return nil
}

func check(field schema.Field, b Bounds) error {
	switch field.Cardinality {
	case schema.Single:
		if b.Min < 1 || b.Max > 1 {
			return fmt.Errorf("%w: '%s' occurs %s", ErrSingleVariable, field.Name, b)
		}
	case schema.Optional:
		if b.Max > 1 {
			return fmt.Errorf("%w: '%s' occurs %s", ErrOptionalMultiple, field.Name, b)
		}
	}

	return nil
}

// Push opens a group scope
func (r *Requirements) Push() {
	r.stack = append(r.stack, newScope())
}

// Split ends the current alternative of the innermost scope
func (r *Requirements) Split() error {
	return r.top().endBranch(r.schema)
}

// Pop closes the innermost group, which repeats rep times
func (r *Requirements) Pop(rep Bounds) error {
	if len(r.stack) < 2 {
		return ErrUnbalancedScope
	}

	s := r.top()

	err := s.endBranch(r.schema)
	if err != nil {
		return err
	}

	r.stack = r.stack[:len(r.stack)-1]

	for _, name := range sortedNames(s.merged) {
		err := r.Add(name, s.merged[name].times(rep))
		if err != nil {
			return err
		}
	}

	return nil
}

// Finish closes the top-level scope and checks that every single field is
// guaranteed to be captured. It returns the verified bounds per field; many
// fields are not tracked and do not appear.
func (r *Requirements) Finish() (map[string]Bounds, error) {
	if len(r.stack) != 1 {
		return nil, ErrUnbalancedScope
	}

	s := r.top()

	err := s.endBranch(r.schema)
	if err != nil {
		return nil, err
	}

	for _, field := range r.schema.Fields() {
		if field.Cardinality != schema.Single {
			continue
		}

		if s.merged[field.Name].Min == 0 {
			return nil, fmt.Errorf("%w: '%s'", ErrRequiredFieldMissing, field.Name)
		}
	}

	return s.merged, nil
}

// endBranch compares the finished alternative with the scope's first one
// and folds it into the merged profile.
func (s *scope) endBranch(sch *schema.Schema) error {
	branch := s.current
	s.current = counter{}

	if s.baseline == nil {
		s.baseline = branch
		s.merged = maps.Clone(branch)

		return nil
	}

	err := compareSingles(sch, s.baseline, branch)
	if err != nil {
		return err
	}

	for name, b := range branch {
		prev, ok := s.merged[name]
		if !ok {
			prev = Bounds{}
		}

		s.merged[name] = prev.widen(b)
	}

	for name, b := range s.merged {
		if _, ok := branch[name]; !ok {
			s.merged[name] = b.widen(Bounds{})
		}
	}

	return nil
}

func compareSingles(sch *schema.Schema, baseline, branch counter) error {
	for _, name := range sortedNames(baseline) {
		if isSingle(sch, name) {
			if _, ok := branch[name]; !ok {
				return fmt.Errorf("%w: '%s'", ErrChoiceMismatch, name)
			}
		}
	}

	for _, name := range sortedNames(branch) {
		if isSingle(sch, name) {
			if _, ok := baseline[name]; !ok {
				return fmt.Errorf("%w: '%s'", ErrChoiceMismatch, name)
			}
		}
	}

	return nil
}

func isSingle(sch *schema.Schema, name string) bool {
	f, ok := sch.Lookup(name)
	return ok && f.Cardinality == schema.Single
}

func sortedNames(c counter) []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
