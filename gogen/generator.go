// Package gogen generates Go struct definitions for the rules of a grammar.
// The generated structs carry `peg` tags and can be filled with
// record.Decode.
package gogen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathaniel-bennett/peggle"
	"github.com/nathaniel-bennett/peggle/schema"
)

// Generator generates Go code from a grammar
type Generator struct {
	PackageName string
	Grammar     *peggle.Grammar
}

// Option is a function that configures Generator
type Option func(*Generator)

// WithPackageName sets the package name for generated code
func WithPackageName(name string) Option {
	return func(g *Generator) {
		g.PackageName = name
	}
}

// New creates a new Generator
func New(grammar *peggle.Grammar, opts ...Option) *Generator {
	g := &Generator{
		PackageName: "grammar",
		Grammar:     grammar,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

type structDef struct {
	Name    string
	Comment string
	Pattern string
	Fields  []fieldDef
}

type fieldDef struct {
	Name string
	Type string
	Tag  string
}

type templateData struct {
	PackageName string
	Imports     []string
	Structs     []structDef
}

var builtinTypes = map[string]string{
	"bool":    "bool",
	"u8":      "uint8",
	"u16":     "uint16",
	"u32":     "uint32",
	"u64":     "uint64",
	"uint":    "uint",
	"i8":      "int8",
	"i16":     "int16",
	"i32":     "int32",
	"i64":     "int64",
	"int":     "int",
	"char":    "rune",
	"string":  "string",
	"decimal": "decimal.Decimal",
	"uuid":    "uuid.UUID",
}

var typeImports = map[string]string{
	"decimal": "github.com/shopspring/decimal",
	"uuid":    "github.com/google/uuid",
}

// Generate generates Go code and writes it to the writer
func (g *Generator) Generate(w io.Writer) error {
	if g.Grammar == nil {
		return ErrNoGrammar
	}

	if !token.IsIdentifier(g.PackageName) {
		return fmt.Errorf("%w: '%s'", ErrInvalidPackageName, g.PackageName)
	}

	data, err := g.buildData()
	if err != nil {
		return err
	}

	tmpl, err := template.New("go").Funcs(template.FuncMap{
		"backtick": func() string { return "`" },
		"quote":    strconv.Quote,
	}).Parse(goTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format generated code: %w", err)
	}

	_, err = w.Write(formatted)

	return err
}

func (g *Generator) buildData() (*templateData, error) {
	def := g.Grammar.Definition()

	ruleTypes := make(map[string]string, len(def.Rules))
	for _, rule := range def.Rules {
		ruleTypes[rule.Name] = typeName(rule.Name)
	}

	imports := map[string]struct{}{}
	data := &templateData{PackageName: g.PackageName}

	for _, rule := range def.Rules {
		name := ruleTypes[rule.Name]

		if !rule.IsChoice() {
			s, err := buildStruct(name, rule, ruleTypes, imports)
			if err != nil {
				return nil, fmt.Errorf("rule '%s': %w", rule.Name, err)
			}

			s.Comment = "is produced by rule " + strconv.Quote(rule.Name) + "."
			data.Structs = append(data.Structs, s)

			continue
		}

		choice := structDef{
			Name:    name,
			Comment: "is produced by rule " + strconv.Quote(rule.Name) + ". Exactly one field is set.",
		}

		for _, variant := range rule.Variants {
			variantName := name + typeName(variant.Name)

			s, err := buildStruct(variantName, variant, ruleTypes, imports)
			if err != nil {
				return nil, fmt.Errorf("rule '%s' variant '%s': %w", rule.Name, variant.Name, err)
			}

			s.Comment = "is variant " + strconv.Quote(variant.Name) + " of " + name + "."
			data.Structs = append(data.Structs, s)

			choice.Fields = append(choice.Fields, fieldDef{
				Name: fieldName(variant.Name),
				Type: "*" + variantName,
				Tag:  variant.Name,
			})
		}

		data.Structs = append(data.Structs, choice)
	}

	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Strings(data.Imports)

	return data, nil
}

func buildStruct(name string, rule peggle.RuleDef, ruleTypes map[string]string, imports map[string]struct{}) (structDef, error) {
	s := structDef{Name: name, Pattern: rule.Pattern}

	for _, field := range rule.Fields {
		card, err := schema.ParseCardinality(field.Cardinality)
		if err != nil {
			return structDef{}, fmt.Errorf("field '%s': %w", field.Name, err)
		}

		goType, ok := builtinTypes[field.Type]
		if ok {
			if imp, needs := typeImports[field.Type]; needs {
				imports[imp] = struct{}{}
			}

			if card == schema.Optional {
				goType = "*" + goType
			}
		} else {
			ruleType, known := ruleTypes[field.Type]
			if !known {
				return structDef{}, fmt.Errorf("%w: '%s'", peggle.ErrUnknownType, field.Type)
			}

			goType = "*" + ruleType
		}

		if card == schema.Many {
			goType = "[]" + goType
		}

		s.Fields = append(s.Fields, fieldDef{
			Name: fieldName(field.Name),
			Type: goType,
			Tag:  field.Name,
		})
	}

	return s, nil
}

// typeName converts a rule or variant name such as "http_header" into an
// exported Go identifier such as "HTTPHeader"
func typeName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	caser := cases.Title(language.English, cases.NoLower)

	var b strings.Builder
	for _, word := range words {
		b.WriteString(capitalizeWord(word, caser))
	}

	result := b.String()
	if result == "" || !token.IsIdentifier(result) || result[0] < 'A' || result[0] > 'Z' {
		return "X" + result
	}

	return result
}

// fieldName converts a field name into an exported Go field name.
// Positional names such as "0" become "F0".
func fieldName(name string) string {
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		return "F" + strings.TrimPrefix(typeName(name), "X")
	}

	return typeName(name)
}

// capitalizeWord capitalizes a word with special handling for common abbreviations
func capitalizeWord(word string, caser cases.Caser) string {
	switch strings.ToLower(word) {
	case "id":
		return "ID"
	case "url":
		return "URL"
	case "http":
		return "HTTP"
	case "api":
		return "API"
	case "json":
		return "JSON"
	case "uuid":
		return "UUID"
	default:
		return caser.String(word)
	}
}

const goTemplate = `// Code generated by peggle gen. DO NOT EDIT.

package {{ .PackageName }}
{{ if .Imports }}
import (
{{- range .Imports }}
	{{ quote . }}
{{- end }}
)
{{ end }}
{{- range .Structs }}
{{- if .Pattern }}
// {{ .Name }}Pattern is the pattern {{ .Name }} is parsed with.
const {{ .Name }}Pattern = {{ quote .Pattern }}
{{ end }}
// {{ .Name }} {{ .Comment }}
type {{ .Name }} struct {
{{- range .Fields }}
	{{ .Name }} {{ .Type }} {{ backtick }}peg:{{ quote .Tag }}{{ backtick }}
{{- end }}
}
{{ end }}`
