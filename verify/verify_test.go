package verify

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/nathaniel-bennett/peggle/leaf"
	"github.com/nathaniel-bennett/peggle/schema"
)

func testSchema() *schema.Schema {
	return schema.MustNew(
		schema.Field{Name: "one", Cardinality: schema.Single, Leaf: leaf.Char},
		schema.Field{Name: "two", Cardinality: schema.Single, Leaf: leaf.Char},
		schema.Field{Name: "opt", Cardinality: schema.Optional, Leaf: leaf.Char},
		schema.Field{Name: "many", Cardinality: schema.Many, Leaf: leaf.Char},
	)
}

func TestSequence(t *testing.T) {
	r := New(testSchema())
	assert.NoError(t, r.Add("one", Once))
	assert.NoError(t, r.Add("two", Once))
	assert.NoError(t, r.Add("opt", Bounds{0, 1}))
	assert.NoError(t, r.Add("many", Bounds{3, Unbounded}))
	assert.NoError(t, r.Add("many", Bounds{0, Unbounded}))

	bounds, err := r.Finish()
	assert.NoError(t, err)
	assert.Equal(t, map[string]Bounds{"one": Once, "two": Once, "opt": {0, 1}}, bounds)
}

func TestCardinalityViolations(t *testing.T) {
	tests := []struct {
		name string
		run  func(r *Requirements) error
		err  error
	}{
		{
			name: "single starred",
			run:  func(r *Requirements) error { return r.Add("one", Bounds{0, Unbounded}) },
			err:  ErrSingleVariable,
		},
		{
			name: "single optional",
			run:  func(r *Requirements) error { return r.Add("one", Bounds{0, 1}) },
			err:  ErrSingleVariable,
		},
		{
			name: "single twice in sequence",
			run: func(r *Requirements) error {
				if err := r.Add("one", Once); err != nil {
					return err
				}
				return r.Add("one", Once)
			},
			err: ErrSingleVariable,
		},
		{
			name: "optional twice in sequence",
			run: func(r *Requirements) error {
				if err := r.Add("opt", Bounds{0, 1}); err != nil {
					return err
				}
				return r.Add("opt", Bounds{0, 1})
			},
			err: ErrOptionalMultiple,
		},
		{
			name: "single in repeated group",
			run: func(r *Requirements) error {
				r.Push()
				if err := r.Add("one", Once); err != nil {
					return err
				}
				return r.Pop(Bounds{2, 2})
			},
			err: ErrSingleVariable,
		},
		{
			name: "unknown field",
			run:  func(r *Requirements) error { return r.Add("nope", Once) },
			err:  ErrUnknownField,
		},
		{
			name: "pop without push",
			run:  func(r *Requirements) error { return r.Pop(Once) },
			err:  ErrUnbalancedScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(New(testSchema()))
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestAlternation(t *testing.T) {
	t.Run("same singles", func(t *testing.T) {
		r := New(testSchema())
		assert.NoError(t, r.Add("one", Once))
		assert.NoError(t, r.Add("two", Once))
		assert.NoError(t, r.Split())
		assert.NoError(t, r.Add("two", Once))
		assert.NoError(t, r.Add("one", Once))
		assert.NoError(t, r.Add("opt", Bounds{0, 1}))

		bounds, err := r.Finish()
		assert.NoError(t, err)
		assert.Equal(t, Bounds{0, 1}, bounds["opt"])
	})

	t.Run("mismatched singles", func(t *testing.T) {
		r := New(testSchema())
		assert.NoError(t, r.Add("one", Once))
		assert.NoError(t, r.Split())
		assert.NoError(t, r.Add("two", Once))
		err := r.Split()
		assert.True(t, errors.Is(err, ErrChoiceMismatch))
	})

	t.Run("mismatch found at finish", func(t *testing.T) {
		r := New(testSchema())
		assert.NoError(t, r.Add("one", Once))
		assert.NoError(t, r.Add("two", Once))
		assert.NoError(t, r.Split())
		assert.NoError(t, r.Add("one", Once))
		_, err := r.Finish()
		assert.True(t, errors.Is(err, ErrChoiceMismatch))
	})

	t.Run("optional in one branch of a group", func(t *testing.T) {
		r := New(testSchema())
		assert.NoError(t, r.Add("one", Once))
		assert.NoError(t, r.Add("two", Once))
		r.Push()
		assert.NoError(t, r.Add("opt", Once))
		assert.NoError(t, r.Split())
		assert.NoError(t, r.Pop(Once))
		err := r.Add("opt", Once)
		assert.True(t, errors.Is(err, ErrOptionalMultiple))
	})
}

func TestGroupMultiplies(t *testing.T) {
	r := New(testSchema())
	r.Push()
	assert.NoError(t, r.Add("opt", Once))
	assert.NoError(t, r.Pop(Bounds{0, 1}))
	assert.NoError(t, r.Add("one", Once))
	assert.NoError(t, r.Add("two", Once))

	bounds, err := r.Finish()
	assert.NoError(t, err)
	assert.Equal(t, Bounds{0, 1}, bounds["opt"])
}

func TestRequiredFieldMissing(t *testing.T) {
	r := New(testSchema())
	assert.NoError(t, r.Add("one", Once))

	_, err := r.Finish()
	assert.True(t, errors.Is(err, ErrRequiredFieldMissing))
}

func TestSaturation(t *testing.T) {
	b := Bounds{2, Unbounded}.times(Bounds{Unbounded, Unbounded})
	assert.Equal(t, Bounds{Unbounded, Unbounded}, b)
	assert.Equal(t, Bounds{0, Unbounded}, Bounds{0, Unbounded}.plus(Bounds{0, 5}))
	assert.Equal(t, "{1,}", Bounds{1, Unbounded}.String())
	assert.Equal(t, "{0,3}", Bounds{0, 3}.String())
}
