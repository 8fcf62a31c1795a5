package engine

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/nathaniel-bennett/peggle/cursor"
	"github.com/nathaniel-bennett/peggle/leaf"
	"github.com/nathaniel-bennett/peggle/schema"
	"github.com/nathaniel-bennett/peggle/syntax"
	"github.com/nathaniel-bennett/peggle/testhelper"
)

func fullMatch(t *testing.T, pattern, input string) bool {
	t.Helper()

	expr, err := syntax.Compile(pattern, schema.MustNew())
	assert.NoError(t, err)

	end, _, err := New(expr, nil).Match(cursor.New(input))

	return err == nil && end.AtEnd()
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		pass    []string
		fail    []string
	}{
		{pattern: "testemptynamed", pass: []string{"testemptynamed"}, fail: []string{"incorrect_input", "testemptynamedd"}},
		{pattern: "", pass: []string{""}, fail: []string{" "}},
		{pattern: "a*", pass: []string{"", "a", "aaaa"}, fail: []string{"b", "ab"}},
		{pattern: "a*b*c", pass: []string{"c", "ac", "bc", "abc", "aaaaaaaaaaabbbbbbbbbbbc"}, fail: []string{"aaaaaaaaaaabbbbbbbb", "cc"}},
		{pattern: "a*b*ab", pass: []string{"bbbbbbbbbab"}, fail: []string{"aaaaaaaaaab"}},
		{pattern: "a+b+c", pass: []string{"abc", "aabbc"}, fail: []string{"bc", "ac", "c"}},
		{pattern: "a+a", fail: []string{"aa", "a", "aaa"}},
		{pattern: "a?b", pass: []string{"b", "ab"}, fail: []string{"aab", "a"}},
		{pattern: "b?b", pass: []string{"bb"}, fail: []string{"b"}},
		{pattern: "a{0,2}b", pass: []string{"b", "ab", "aab"}, fail: []string{"aaab"}},
		{pattern: "a{11,11}b", pass: []string{"aaaaaaaaaaab"}, fail: []string{"aaaaaaaaaab", "aaaaaaaaaaaab"}},
		{pattern: "a{13}b", pass: []string{"aaaaaaaaaaaaab"}, fail: []string{"aaaaaaaaaaaab", "aaaaaaaaaaaaaab"}},
		{pattern: "a{,13}b", pass: []string{"b", "aaaaaaaaaaaaab"}, fail: []string{"aaaaaaaaaaaaaab"}},
		{pattern: "a{13,}b", pass: []string{"aaaaaaaaaaaaab", "aaaaaaaaaaaaaaaaab"}, fail: []string{"aaaaaaaaaaaab"}},
		{pattern: "a|b", pass: []string{"a", "b"}, fail: []string{"", "ab", "c"}},
		{pattern: "a|bc| ", pass: []string{"a", "bc", " "}, fail: []string{"b", "c", "abc"}},
		{pattern: "(ab|a)c", pass: []string{"abc", "ac"}, fail: []string{"abac"}},
		{pattern: "(a|ab)c", pass: []string{"ac"}, fail: []string{"abc"}},
		{pattern: "(ab)+", pass: []string{"ab", "ababab"}, fail: []string{"aba", ""}},
		{pattern: "[abcd]", pass: []string{"a", "d"}, fail: []string{"e", "ab"}},
		{pattern: "[a-z]", pass: []string{"q"}, fail: []string{"Q"}},
		{pattern: "[--a]", pass: []string{"-", ".", "5", "a"}, fail: []string{"b", "#"}},
		{pattern: "[^asdf]", pass: []string{"^", "A", "b"}, fail: []string{"a", "s", ""}},
		{pattern: "[]-asdf]", pass: []string{"]", "a", "^"}, fail: []string{"c", "["}},
		{pattern: "[#--]", pass: []string{"-", "#", "+"}, fail: []string{" ", "a"}},
		{pattern: "[#-]", pass: []string{"-", "#"}, fail: []string{" ", "a", "+"}},
		{pattern: "[^a-z0-9$%^&]", pass: []string{"*", "(", "-"}, fail: []string{"&", "^", "b", "9"}},
		{pattern: ".", pass: []string{"x", "é"}, fail: []string{"", "xy"}},
		{pattern: `\d+\.\d+`, pass: []string{"3.14"}, fail: []string{"3,14", "3."}},
		{pattern: `\w+\s\W`, pass: []string{"ab_c\t!"}, fail: []string{"abc 1x", "a1 !"}},
		{pattern: `\D\S`, pass: []string{"xy"}, fail: []string{"1y", "x "}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			for _, input := range tt.pass {
				assert.True(t, fullMatch(t, tt.pattern, input), "%q should match %q", tt.pattern, input)
			}

			for _, input := range tt.fail {
				assert.False(t, fullMatch(t, tt.pattern, input), "%q should not match %q", tt.pattern, input)
			}
		})
	}
}

func TestZeroWidthRepetition(t *testing.T) {
	assert.True(t, fullMatch(t, "(a?)*b", "aab"))
	assert.True(t, fullMatch(t, "(a*)+", ""))
	assert.True(t, fullMatch(t, "(|a)*", ""))
	assert.True(t, fullMatch(t, "(a?){3}b", "b"))
}

func TestZeroWidthIterationCaptures(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    []Capture
	}{
		{name: testhelper.CaseName(t, "exact count after consuming"), pattern: "(<m>){3}", input: "abc", want: []Capture{{Field: "m", Value: "abc"}}},
		{name: testhelper.CaseName(t, "star after consuming"), pattern: "<m>*", input: "abc", want: []Capture{{Field: "m", Value: "abc"}}},
		{name: testhelper.CaseName(t, "first iteration empty"), pattern: "(<m>){3}", input: "", want: []Capture{{Field: "m", Value: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := program(t, tt.pattern, schema.Field{Name: "m", Cardinality: schema.Many, Leaf: leaf.String})

			end, caps, err := p.Match(cursor.New(tt.input))
			assert.NoError(t, err)
			assert.True(t, end.AtEnd())
			assert.Equal(t, tt.want, caps)
		})
	}
}

func TestFailurePosition(t *testing.T) {
	expr, err := syntax.Compile("ab\ncd|abx", schema.MustNew())
	assert.NoError(t, err)

	_, _, err = New(expr, nil).Match(cursor.New("ab\ncx"))

	var perr *cursor.Error
	assert.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, cursor.ErrNoMatch))
	// the last alternative failed at 'x' expected after "ab"
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 3, perr.Column)
}

func TestMatchPrefix(t *testing.T) {
	expr, err := syntax.Compile("a+", schema.MustNew())
	assert.NoError(t, err)

	end, _, err := New(expr, nil).Match(cursor.New("aab"))
	assert.NoError(t, err)
	assert.Equal(t, "b", end.Remaining)
	assert.Equal(t, 3, end.Column)
}

func program(t *testing.T, pattern string, fields ...schema.Field) *Program {
	t.Helper()

	s := schema.MustNew(fields...)

	expr, err := syntax.Compile(pattern, s)
	assert.NoError(t, err)

	var targets []Field

	for _, f := range s.Fields() {
		target := Field{Name: f.Name, Cardinality: f.Cardinality, Leaf: f.Leaf}
		if f.Pattern != "" {
			target.Restrict, err = syntax.CompileRestriction(f.Pattern)
			assert.NoError(t, err)
		}

		targets = append(targets, target)
	}

	return New(expr, targets)
}

func TestFieldCapture(t *testing.T) {
	p := program(t, "gggg<second> fdsa <first>",
		schema.Field{Name: "first", Leaf: leaf.Uint32},
		schema.Field{Name: "second", Pattern: "asdf", Leaf: leaf.String},
	)

	end, caps, err := p.Match(cursor.New("ggggasdf fdsa 0"))
	assert.NoError(t, err)
	assert.True(t, end.AtEnd())
	assert.Equal(t, []Capture{{Field: "second", Value: "asdf"}, {Field: "first", Value: uint32(0)}}, caps)

	_, _, err = p.Match(cursor.New("hello"))
	assert.Error(t, err)
}

func TestRestrictedPrefix(t *testing.T) {
	p := program(t, "<0>hello<1>",
		schema.Field{Name: "0", Pattern: "why ", Leaf: leaf.String},
		schema.Field{Name: "1", Pattern: ", world", Leaf: leaf.String},
	)

	_, caps, err := p.Match(cursor.New("why hello, world"))
	assert.NoError(t, err)
	assert.Equal(t, []Capture{{Field: "0", Value: "why "}, {Field: "1", Value: ", world"}}, caps)
}

func TestManyCaptures(t *testing.T) {
	p := program(t, "<0>+hello",
		schema.Field{Name: "0", Cardinality: schema.Many, Pattern: "why", Leaf: leaf.String},
	)

	end, caps, err := p.Match(cursor.New("whywhywhyhello"))
	assert.NoError(t, err)
	assert.True(t, end.AtEnd())
	assert.Equal(t, 3, len(caps))

	for _, c := range caps {
		assert.Equal(t, any("why"), c.Value)
	}
}

func TestRestrictionNotConsumed(t *testing.T) {
	p := program(t, "<n>x",
		schema.Field{Name: "n", Pattern: "[0-9a-w]+", Leaf: leaf.Uint8},
	)

	_, _, err := p.Match(cursor.New("12abx"))
	assert.True(t, errors.Is(err, ErrRestrictionNotConsumed))

	_, caps, err := p.Match(cursor.New("12x"))
	assert.NoError(t, err)
	assert.Equal(t, any(uint8(12)), caps[0].Value)
}

func TestLeafErrorPosition(t *testing.T) {
	p := program(t, "n=<n>", schema.Field{Name: "n", Leaf: leaf.Uint8})

	_, _, err := p.Match(cursor.New("n=300"))
	assert.True(t, errors.Is(err, leaf.ErrOverflow))

	var perr *cursor.Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, 5, perr.Column)
}

func TestFailedBranchDropsCaptures(t *testing.T) {
	p := program(t, "(<c>x|<c>y)+",
		schema.Field{Name: "c", Cardinality: schema.Many, Pattern: "[ab]", Leaf: leaf.Char},
	)

	_, caps, err := p.Match(cursor.New("aybxaz"))
	assert.NoError(t, err)
	assert.Equal(t, []Capture{{Field: "c", Value: 'a'}, {Field: "c", Value: 'b'}}, caps)
}

func TestMatchText(t *testing.T) {
	expr, err := syntax.CompileRestriction("(as|df(5g)*)+")
	assert.NoError(t, err)

	end, ok := MatchText(expr, cursor.New("asdf5g5gasx"))
	assert.True(t, ok)
	assert.Equal(t, "x", end.Remaining)
}
