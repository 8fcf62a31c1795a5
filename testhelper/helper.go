// Package testhelper holds small helpers shared by tests.
package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var (
	whiteSpaces = regexp.MustCompile(`(\s+)`)
	leadingTabs = regexp.MustCompile(`^(\t+)`)
)

// replaceTab turns each leading tab into four spaces
func replaceTab(match string) string {
	return strings.Repeat("    ", strings.Count(match, "\t"))
}

// TrimIndent drops the first line of src and removes the indentation of the
// second line from every line. Remaining leading tabs become spaces, so
// Markdown and YAML written inside indented raw strings keep their shape.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")

	var indent string
	if len(lines) > 1 {
		indent = whiteSpaces.FindString(lines[1])
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	return strings.Join(lines[1:], "\n")
}

// CollapseSpace replaces every run of whitespace with a single space, for
// comparing generated code without depending on column alignment
func CollapseSpace(src string) string {
	return strings.TrimSpace(whiteSpaces.ReplaceAllString(src, " "))
}
