package peggle

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/nathaniel-bennett/peggle/leaf"
	"github.com/nathaniel-bennett/peggle/schema"
)

func rangeSchema() *schema.Schema {
	return schema.MustNew(
		schema.Field{Name: "lo", Leaf: leaf.Uint32},
		schema.Field{Name: "hi", Leaf: leaf.Uint32},
	)
}

func TestWhere(t *testing.T) {
	p := MustCompile("<lo>-<hi>", rangeSchema(), WithWhere("lo < hi"))

	_, err := p.Parse("1-2")
	assert.NoError(t, err)

	_, err = p.Parse("2-1")
	assert.True(t, errors.Is(err, ErrPredicateFailed))
}

func TestWhereRecordMap(t *testing.T) {
	s := schema.MustNew(
		schema.Field{Name: "0", Cardinality: schema.Many, Pattern: "why", Leaf: leaf.String},
		schema.Field{Name: "tag", Cardinality: schema.Optional, Leaf: leaf.Char},
	)
	p := MustCompile("<0>+<tag>?", s, WithWhere(`size(record["0"]) == 2 && tag == null`))

	assert.True(t, p.Match("whywhy"))
	assert.False(t, p.Match("whywhywhy"))
	assert.False(t, p.Match("whywhy!"))
}

func TestWhereValueConversion(t *testing.T) {
	s := schema.MustNew(
		schema.Field{Name: "amount", Leaf: leaf.Decimal},
		schema.Field{Name: "id", Leaf: leaf.UUID},
		schema.Field{Name: "delta", Leaf: leaf.Int8},
	)
	where := `amount > 1.5 && id.startsWith("123e4567") && delta == -3`
	p := MustCompile("<amount> <id> <delta>", s, WithWhere(where))

	assert.True(t, p.Match("2.25 123e4567-e89b-12d3-a456-426614174000 -3"))
	assert.False(t, p.Match("1.25 123e4567-e89b-12d3-a456-426614174000 -3"))
}

func TestWhereErrors(t *testing.T) {
	_, err := Compile("<lo>-<hi>", rangeSchema(), WithWhere("lo <"))
	assert.True(t, errors.Is(err, ErrInvalidPredicate))

	_, err = Compile("<lo>-<hi>", rangeSchema(), WithWhere("missing > 1"))
	assert.True(t, errors.Is(err, ErrInvalidPredicate))

	p := MustCompile("<lo>-<hi>", rangeSchema(), WithWhere("lo + hi"))
	_, err = p.Parse("1-2")
	assert.True(t, errors.Is(err, ErrPredicateNotBool))
}

func TestWhereSelectsChoice(t *testing.T) {
	small := MustCompile("<lo>-<hi>", rangeSchema(), WithWhere("hi - lo < 10"))
	large := MustCompile("<lo>-<hi>", rangeSchema())

	c, err := NewChoice("span",
		Alternative{Name: "Small", Pattern: small},
		Alternative{Name: "Large", Pattern: large},
	)
	assert.NoError(t, err)

	v, err := c.Parse("1-5")
	assert.NoError(t, err)
	assert.Equal(t, "Small", v.Name)

	v, err = c.Parse("1-50")
	assert.NoError(t, err)
	assert.Equal(t, "Large", v.Name)
}
