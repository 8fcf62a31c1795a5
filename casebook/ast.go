package casebook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

type blockKind int

const (
	blockOther blockKind = iota
	blockPass
	blockFail
	blockExpect
	blockGrammar
	blockConfig
)

// block is a fenced code block the book gives meaning to
type block struct {
	kind    blockKind
	content []byte
	line    int
	// previous is the case block before this one in the same section
	previous *block
}

// inputs splits a pass or fail block into one input per line
func (b *block) inputs() []string {
	if len(b.content) == 0 {
		return []string{""}
	}

	return strings.Split(strings.TrimSuffix(string(b.content), "\n"), "\n")
}

type rawSection struct {
	name    string
	pattern bool
	line    int
	blocks  []*block
}

type document struct {
	title    string
	grammar  *block
	config   *block
	sections []*rawSection
}

func classify(info string) blockKind {
	words := strings.Fields(info)
	if len(words) == 0 {
		return blockOther
	}

	switch strings.Join(words, " ") {
	case "pass":
		return blockPass
	case "fail":
		return blockFail
	case "expect", "yaml expect":
		return blockExpect
	case "grammar", "yaml grammar":
		return blockGrammar
	case "yaml config":
		return blockConfig
	default:
		return blockOther
	}
}

// readDocument walks the top-level nodes of the Markdown document
func readDocument(content []byte) (*document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(content))

	doc := &document{}

	var (
		current  *rawSection
		previous *block
	)

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 1:
				doc.title = headingText(node, content)
			case 2:
				name, pattern := sectionName(node, content)
				current = &rawSection{
					name:    name,
					pattern: pattern,
					line:    lineOf(content, nodeStart(node)),
				}
				previous = nil
				doc.sections = append(doc.sections, current)
			}
		case *ast.FencedCodeBlock:
			blk := readBlock(node, content)

			switch blk.kind {
			case blockOther:
				continue
			case blockGrammar, blockConfig:
				if doc.grammar != nil || doc.config != nil {
					return nil, fmt.Errorf("line %d: %w", blk.line, ErrDuplicateGrammar)
				}

				if blk.kind == blockGrammar {
					doc.grammar = blk
				} else {
					doc.config = blk
				}

				continue
			}

			if current == nil {
				return nil, fmt.Errorf("line %d: %w", blk.line, ErrBlockOutsideSection)
			}

			blk.previous = previous
			previous = blk
			current.blocks = append(current.blocks, blk)
		}
	}

	return doc, nil
}

func readBlock(node *ast.FencedCodeBlock, content []byte) *block {
	blk := &block{}

	if node.Info != nil {
		segment := node.Info.Segment
		blk.kind = classify(string(segment.Value(content)))
		blk.line = lineOf(content, segment.Start)
	}

	var buf bytes.Buffer

	lines := node.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(content))
	}

	blk.content = buf.Bytes()

	return blk
}

// sectionName returns the heading text, and whether the heading consists of
// a single code span holding a pattern
func sectionName(node *ast.Heading, content []byte) (string, bool) {
	if span, ok := node.FirstChild().(*ast.CodeSpan); ok && span.NextSibling() == nil {
		var b strings.Builder

		for c := span.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(content))
			}
		}

		return b.String(), true
	}

	return headingText(node, content), false
}

// headingText extracts text content from a heading node
func headingText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindText {
			if t, ok := n.(*ast.Text); ok {
				b.Write(t.Segment.Value(content))
			}
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func nodeStart(n ast.Node) int {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start
	}

	return 0
}

// lineOf converts a byte offset into a 1-based line number
func lineOf(content []byte, offset int) int {
	return bytes.Count(content[:min(offset, len(content))], []byte("\n")) + 1
}
