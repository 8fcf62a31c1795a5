package peggle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PEGGLE_OUT", "gen")

	path := writeConfig(t, `
grammars:
  - grammars/*.yaml
max_depth: 50
output: json
generate:
  package: model
  output: ${PEGGLE_OUT}/model.go
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"grammars/*.yaml"}, config.Grammars)
	assert.Equal(t, []string{"*.cases.md"}, config.Cases)
	assert.Equal(t, 50, config.MaxDepth)
	assert.Equal(t, OutputJSON, config.Output)
	assert.Equal(t, "model", config.Generate.Package)
	assert.Equal(t, "gen/model.go", config.Generate.Output)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative depth", content: "max_depth: -1\n"},
		{name: "unknown output", content: "output: xml\n"},
		{name: "bad package", content: "generate:\n  package: my-grammar\n"},
		{name: "bad glob", content: "grammars:\n  - \"[\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.True(t, errors.Is(err, ErrConfigValidation), "got %v", err)
		})
	}
}

func TestConfigUnknownKey(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "grammar: x.yaml\n"))
	assert.Error(t, err)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PEGGLE_DIR", "rules")

	assert.Equal(t, "rules/a.yaml", expandEnvVars("${PEGGLE_DIR}/a.yaml"))
	assert.Equal(t, "rules/a.yaml", expandEnvVars("$PEGGLE_DIR/a.yaml"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.peggle.yaml", "b.peggle.yaml", "a.cases.md", "notes.md"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	config := getDefaultConfig()
	config.Grammars = append(config.Grammars, "a.peggle.yaml")

	grammars, err := config.GrammarFiles(dir)
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.peggle.yaml"), filepath.Join(dir, "b.peggle.yaml")}, grammars)

	cases, err := config.CaseFiles(dir)
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.cases.md")}, cases)

	assert.Equal(t, 1, len(config.Options()))
}
