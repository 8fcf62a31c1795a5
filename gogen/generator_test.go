package gogen

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/nathaniel-bennett/peggle"
	"github.com/nathaniel-bennett/peggle/record"
	"github.com/nathaniel-bennett/peggle/testhelper"
)

func loadGrammar(t *testing.T, src string) *peggle.Grammar {
	t.Helper()

	g, err := peggle.ParseGrammar([]byte(testhelper.TrimIndent(t, src)))
	assert.NoError(t, err)

	return g
}

const sampleGrammar = `
	rules:
	  - name: box
	    pattern: "<f1>hello(world<f2>)?"
	    fields:
	      - {name: f1, type: string, pattern: "(why)+"}
	      - {name: f2, type: box, cardinality: optional}
	  - name: http_line
	    pattern: "<0> <amount> <id>(,<tag>)*"
	    fields:
	      - {name: "0", type: u16}
	      - {name: amount, type: decimal}
	      - {name: id, type: uuid, cardinality: optional}
	      - {name: tag, type: char, cardinality: many}
	  - name: value
	    variants:
	      - name: number
	        pattern: "<n>"
	        fields:
	          - {name: n, type: i64}
	      - name: boxed
	        pattern: "#<b>"
	        fields:
	          - {name: b, type: box}
	`

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer

	err := New(loadGrammar(t, sampleGrammar), WithPackageName("model")).Generate(&buf)
	assert.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "model.go", buf.Bytes(), parser.AllErrors)
	assert.NoError(t, err)

	code := testhelper.CollapseSpace(buf.String())

	for _, want := range []string{
		"// Code generated by peggle gen. DO NOT EDIT.",
		"package model",
		`import ( "github.com/google/uuid" "github.com/shopspring/decimal" )`,
		`const BoxPattern = "<f1>hello(world<f2>)?"`,
		"type Box struct { F1 string `peg:\"f1\"` F2 *Box `peg:\"f2\"` }",
		"type HTTPLine struct { F0 uint16 `peg:\"0\"` Amount decimal.Decimal `peg:\"amount\"` ID *uuid.UUID `peg:\"id\"` Tag []rune `peg:\"tag\"` }",
		"type ValueNumber struct { N int64 `peg:\"n\"` }",
		"type ValueBoxed struct { B *Box `peg:\"b\"` }",
		"type Value struct { Number *ValueNumber `peg:\"number\"` Boxed *ValueBoxed `peg:\"boxed\"` }",
	} {
		assert.Contains(t, code, want)
	}
}

func TestGenerateErrors(t *testing.T) {
	err := New(nil).Generate(&bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrNoGrammar))

	err = New(loadGrammar(t, sampleGrammar), WithPackageName("my-model")).Generate(&bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrInvalidPackageName))
}

// Structs shaped like the generated ones decode parsed records.
func TestGeneratedShapeDecodes(t *testing.T) {
	type Box struct {
		F1 string `peg:"f1"`
		F2 *Box   `peg:"f2"`
	}

	type ValueBoxed struct {
		B *Box `peg:"b"`
	}

	type ValueNumber struct {
		N int64 `peg:"n"`
	}

	type Value struct {
		Number *ValueNumber `peg:"number"`
		Boxed  *ValueBoxed  `peg:"boxed"`
	}

	g := loadGrammar(t, sampleGrammar)

	v, err := g.Parse("value", "#whyhelloworldwhywhyhello")
	assert.NoError(t, err)

	var value Value
	assert.NoError(t, v.(*record.Variant).Decode(&value))
	assert.Zero(t, value.Number)
	assert.Equal(t, "why", value.Boxed.B.F1)
	assert.Equal(t, "whywhy", value.Boxed.B.F2.F1)

	v, err = g.Parse("value", "-12")
	assert.NoError(t, err)

	value = Value{}
	assert.NoError(t, v.(*record.Variant).Decode(&value))
	assert.Equal(t, int64(-12), value.Number.N)
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "box", want: "Box"},
		{in: "http_line", want: "HTTPLine"},
		{in: "user-id", want: "UserID"},
		{in: "Greeting", want: "Greeting"},
		{in: "tr1", want: "Tr1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, typeName(tt.in))
		})
	}

	assert.Equal(t, "F0", fieldName("0"))
	assert.Equal(t, "F12", fieldName("12"))
	assert.Equal(t, "Amount", fieldName("amount"))
}
