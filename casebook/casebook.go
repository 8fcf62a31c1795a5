// Package casebook reads Markdown case files that pair a grammar with inputs
// it must accept or reject.
//
// A book looks like this:
//
//	# Numbers
//
//	```yaml grammar
//	rules:
//	  - name: pair
//	    pattern: "<a>,<b>"
//	    fields: [{name: a, type: u8}, {name: b, type: u8}]
//	```
//
//	## pair
//
//	```pass
//	1,2
//	```
//
//	```yaml expect
//	{a: 1, b: 2}
//	```
//
//	```fail
//	1,256
//	```
//
//	## `a*b`
//
//	```pass
//	aab
//	```
//
// Level-two headings name a grammar rule, or hold a field-less pattern in
// inline code. Every line of a pass or fail block is one input and an empty
// block is the empty input. An expect block applies to each input of the pass
// block before it. Instead of an inline grammar a ```` ```yaml config ````
// block may name a grammar file relative to the book.
package casebook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/nathaniel-bennett/peggle"
)

// Book is a parsed case file
type Book struct {
	Title    string
	Path     string
	Grammar  *peggle.Grammar
	Sections []*Section
}

// Section groups the cases of one rule or pattern
type Section struct {
	Name string
	// Pattern is set when the heading is a field-less pattern rather than a rule name
	Pattern bool
	Line    int
	Cases   []Case

	compiled *peggle.Pattern
}

// Case is one input with its expected outcome
type Case struct {
	Input string
	Pass  bool
	Line  int
	// Expect holds the decoded expect block, when one follows the pass block
	Expect    any
	HasExpect bool
}

// bookConfig is the content of a ```yaml config``` block
type bookConfig struct {
	Grammar  string `yaml:"grammar"`
	MaxDepth int    `yaml:"max_depth"`
}

type options struct {
	baseDir string
	cache   *peggle.Cache
	compile []peggle.Option
}

// Option configures Parse
type Option func(*options)

// WithBaseDir sets the directory grammar paths in config blocks are relative to
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithCache shares a pattern cache between books
func WithCache(cache *peggle.Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithCompileOptions passes options to every grammar and pattern the book compiles
func WithCompileOptions(opts ...peggle.Option) Option {
	return func(o *options) {
		o.compile = append(o.compile, opts...)
	}
}

// LoadFile reads and parses a case file
func LoadFile(path string, opts ...Option) (*Book, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)

	book, err := Parse(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	book.Path = path

	return book, nil
}

// Parse parses a case file and compiles its grammar and patterns
func Parse(content []byte, opts ...Option) (*Book, error) {
	o := options{baseDir: "."}
	for _, opt := range opts {
		opt(&o)
	}

	if o.cache == nil {
		o.cache = peggle.NewCache(0)
	}

	doc, err := readDocument(content)
	if err != nil {
		return nil, err
	}

	book := &Book{Title: doc.title}

	if doc.grammar != nil {
		book.Grammar, err = peggle.ParseGrammar(doc.grammar.content, o.compile...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", doc.grammar.line, err)
		}
	}

	if doc.config != nil {
		book.Grammar, err = loadConfiguredGrammar(doc.config, o)
		if err != nil {
			return nil, err
		}
	}

	for _, s := range doc.sections {
		err := book.addSection(s, o)
		if err != nil {
			return nil, err
		}
	}

	return book, nil
}

func loadConfiguredGrammar(b *block, o options) (*peggle.Grammar, error) {
	var config bookConfig

	err := yaml.UnmarshalWithOptions(b.content, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("line %d: failed to parse config block: %w", b.line, err)
	}

	if config.Grammar == "" {
		return nil, fmt.Errorf("line %d: %w", b.line, ErrNoGrammar)
	}

	path := config.Grammar
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.baseDir, path)
	}

	compile := append([]peggle.Option(nil), o.compile...)
	if config.MaxDepth > 0 {
		compile = append(compile, peggle.WithMaxDepth(config.MaxDepth))
	}

	g, err := peggle.LoadGrammar(path, compile...)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", b.line, err)
	}

	return g, nil
}

func (b *Book) addSection(s *rawSection, o options) error {
	section := &Section{
		Name:    s.name,
		Pattern: s.pattern,
		Line:    s.line,
	}

	if section.Pattern {
		p, err := o.cache.Compile(s.name, nil, o.compile...)
		if err != nil {
			return fmt.Errorf("line %d: %w", s.line, err)
		}

		section.compiled = p
	} else {
		if b.Grammar == nil {
			return fmt.Errorf("line %d: %w: '%s'", s.line, ErrNoGrammar, s.name)
		}

		if _, err := b.Grammar.Rule(s.name); err != nil {
			return fmt.Errorf("line %d: %w", s.line, err)
		}
	}

	for _, blk := range s.blocks {
		switch blk.kind {
		case blockPass, blockFail:
			for i, input := range blk.inputs() {
				section.Cases = append(section.Cases, Case{
					Input: input,
					Pass:  blk.kind == blockPass,
					Line:  blk.line + 1 + i,
				})
			}
		case blockExpect:
			err := section.attachExpectation(blk)
			if err != nil {
				return err
			}
		}
	}

	b.Sections = append(b.Sections, section)

	return nil
}

// attachExpectation applies an expect block to the cases of the pass block
// right before it
func (s *Section) attachExpectation(blk *block) error {
	if blk.previous == nil || blk.previous.kind != blockPass {
		return fmt.Errorf("line %d: %w", blk.line, ErrExpectWithoutPass)
	}

	var expect any

	err := yaml.Unmarshal(blk.content, &expect)
	if err != nil {
		return fmt.Errorf("line %d: failed to parse expect block: %w", blk.line, err)
	}

	count := len(blk.previous.inputs())
	for i := len(s.Cases) - count; i < len(s.Cases); i++ {
		s.Cases[i].Expect = expect
		s.Cases[i].HasExpect = true
	}

	return nil
}
