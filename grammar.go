package peggle

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/nathaniel-bennett/peggle/cursor"
	"github.com/nathaniel-bennett/peggle/internal/suggest"
	"github.com/nathaniel-bennett/peggle/leaf"
	"github.com/nathaniel-bennett/peggle/schema"
)

// GrammarDef is the YAML form of a grammar: an ordered list of rules
type GrammarDef struct {
	Rules []RuleDef `yaml:"rules"`
}

// RuleDef defines a pattern rule, or a choice rule when Variants is set
type RuleDef struct {
	Name     string     `yaml:"name"`
	Pattern  string     `yaml:"pattern,omitempty"`
	Where    string     `yaml:"where,omitempty"`
	Fields   []FieldDef `yaml:"fields,omitempty"`
	Variants []RuleDef  `yaml:"variants,omitempty"`
}

// FieldDef declares a field. Type is a built-in type name or the name of
// another rule in the grammar.
type FieldDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Cardinality string `yaml:"cardinality,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
}

// IsChoice reports whether the rule is a choice between variants
func (r RuleDef) IsChoice() bool {
	return len(r.Variants) > 0
}

// Rule is a compiled grammar rule: a *Pattern or a *Choice
type Rule interface {
	leaf.Parser
	Name() string
}

// Grammar is a set of named rules whose fields may refer to each other,
// directly or recursively.
type Grammar struct {
	def   GrammarDef
	rules map[string]Rule
}

// ruleRef resolves a rule by name when it is matched, so rules may refer
// to rules defined later or to themselves.
type ruleRef struct {
	grammar *Grammar
	name    string
}

func (r ruleRef) ParseAt(c cursor.Cursor) (any, cursor.Cursor, error) {
	return r.grammar.rules[r.name].ParseAt(c)
}

// LoadGrammar reads and compiles a grammar file
func LoadGrammar(path string, opts ...Option) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar file: %w", err)
	}

	g, err := ParseGrammar(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ParseGrammar compiles a grammar from YAML
func ParseGrammar(data []byte, opts ...Option) (*Grammar, error) {
	var def GrammarDef

	if err := yaml.UnmarshalWithOptions(data, &def, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse grammar: %w", err)
	}

	return NewGrammar(def, opts...)
}

// NewGrammar compiles every rule of def. WithName and WithWhere options are
// ignored; each rule carries its own.
func NewGrammar(def GrammarDef, opts ...Option) (*Grammar, error) {
	g := &Grammar{
		def:   def,
		rules: make(map[string]Rule, len(def.Rules)),
	}

	names := make(map[string]bool, len(def.Rules))

	for _, rule := range def.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("%w: rule without a name", ErrInvalidRule)
		}

		if names[rule.Name] {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateRule, rule.Name)
		}

		names[rule.Name] = true
	}

	o := buildOptions(opts)

	for _, rule := range def.Rules {
		compiled, err := g.compileRule(rule, o.maxDepth)
		if err != nil {
			return nil, fmt.Errorf("rule '%s': %w", rule.Name, err)
		}

		g.rules[rule.Name] = compiled
	}

	return g, nil
}

func (g *Grammar) compileRule(rule RuleDef, maxDepth int) (Rule, error) {
	if !rule.IsChoice() {
		return g.compilePattern(rule, maxDepth)
	}

	if rule.Pattern != "" || len(rule.Fields) > 0 || rule.Where != "" {
		return nil, fmt.Errorf("%w: a choice declares variants only", ErrInvalidRule)
	}

	alternatives := make([]Alternative, 0, len(rule.Variants))

	for _, variant := range rule.Variants {
		if variant.IsChoice() {
			return nil, fmt.Errorf("%w: variant '%s' nests variants", ErrInvalidRule, variant.Name)
		}

		p, err := g.compilePattern(variant, maxDepth)
		if err != nil {
			return nil, fmt.Errorf("variant '%s': %w", variant.Name, err)
		}

		alternatives = append(alternatives, Alternative{Name: variant.Name, Pattern: p})
	}

	return NewChoice(rule.Name, alternatives...)
}

func (g *Grammar) compilePattern(rule RuleDef, maxDepth int) (*Pattern, error) {
	if rule.Name == "" {
		return nil, fmt.Errorf("%w: variant without a name", ErrInvalidRule)
	}

	fields := make([]schema.Field, 0, len(rule.Fields))

	for _, def := range rule.Fields {
		card, err := schema.ParseCardinality(def.Cardinality)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", def.Name, err)
		}

		parser, err := g.resolveType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", def.Name, err)
		}

		fields = append(fields, schema.Field{
			Name:        def.Name,
			Cardinality: card,
			Pattern:     def.Pattern,
			Leaf:        parser,
		})
	}

	s, err := schema.New(fields...)
	if err != nil {
		return nil, err
	}

	return Compile(rule.Pattern, s, WithName(rule.Name), WithWhere(rule.Where), WithMaxDepth(maxDepth))
}

func (g *Grammar) resolveType(typeName string) (leaf.Parser, error) {
	if parser, ok := leaf.Lookup(typeName); ok {
		return parser, nil
	}

	for _, rule := range g.def.Rules {
		if rule.Name == typeName {
			return ruleRef{grammar: g, name: typeName}, nil
		}
	}

	candidates := append(leaf.Names(), g.RuleNames()...)

	return nil, fmt.Errorf("%w: '%s'%s", ErrUnknownType, typeName, suggest.Hint(typeName, candidates))
}

// Rule returns the compiled rule with the given name
func (g *Grammar) Rule(name string) (Rule, error) {
	rule, ok := g.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'%s", ErrUnknownRule, name, suggest.Hint(name, g.RuleNames()))
	}

	return rule, nil
}

// Rules returns the compiled rules in definition order
func (g *Grammar) Rules() []Rule {
	rules := make([]Rule, 0, len(g.def.Rules))
	for _, rule := range g.def.Rules {
		rules = append(rules, g.rules[rule.Name])
	}

	return rules
}

// RuleNames returns rule names in definition order
func (g *Grammar) RuleNames() []string {
	names := make([]string, 0, len(g.def.Rules))
	for _, rule := range g.def.Rules {
		names = append(names, rule.Name)
	}

	return names
}

// Definition returns the definitions the grammar was compiled from
func (g *Grammar) Definition() GrammarDef {
	def := GrammarDef{Rules: slices.Clone(g.def.Rules)}
	return def
}

// Parse matches the whole input against a rule. The result is a
// *record.Record for pattern rules and a *record.Variant for choices.
func (g *Grammar) Parse(ruleName, input string) (any, error) {
	rule, err := g.Rule(ruleName)
	if err != nil {
		return nil, err
	}

	v, end, err := rule.ParseAt(cursor.New(input))
	if err != nil {
		return nil, err
	}

	if !end.AtEnd() {
		return nil, cursor.Fail(end, cursor.ErrIncomplete)
	}

	return v, nil
}
