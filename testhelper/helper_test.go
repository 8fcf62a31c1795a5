package testhelper

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	src := `
		rules:
		  - name: a
		` + "\t" + `pattern: x`

	assert.Equal(t, "rules:\n  - name: a\n    pattern: x", TrimIndent(t, src))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "type A struct { F1 string }", CollapseSpace("type A struct {\n\tF1   string\n}\n"))
}

func TestCaseName(t *testing.T) {
	assert.Equal(t, "trailing dash (helper_test.go:23)", CaseName(t, "trailing dash"))
}
