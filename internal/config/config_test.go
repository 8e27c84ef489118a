package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[analysis]
entry = ["step", "init"]
jobs = 2
checks = ["flatten", "calltree"]

[output]
format = "yaml"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"step", "init"}, cfg.Analysis.Entry)
	assert.Equal(t, 2, cfg.Analysis.Jobs)
	assert.True(t, cfg.Enabled(CheckFlatten))
	assert.False(t, cfg.Enabled(CheckBlocked))
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color, "unset keys keep defaults")
	assert.Equal(t, "off", cfg.Trace.Level)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[analysis\n", "failed to parse TOML"},
		{"unknown key", "[analysis]\nentri = [\"main\"]\n", "unknown key analysis.entri"},
		{"empty entry", "[analysis]\nentry = []\n", "[analysis].entry must name at least one function"},
		{"jobs", "[analysis]\njobs = 0\n", "[analysis].jobs must be positive"},
		{"max diagnostics", "[analysis]\nmax_diagnostics = -1\n", "[analysis].max_diagnostics: -1"},
		{"check", "[analysis]\nchecks = [\"speed\"]\n", `unknown check "speed"`},
		{"format", "[output]\nformat = \"json\"\n", `[output].format: "json"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[analysis]\nentry = [\"run\"]\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, cfg.Analysis.Entry)
}

func TestDiscoverWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	require.NoError(t, err)
	// A tessera.toml above the temp dir would change this; temp dirs have none.
	assert.Equal(t, Default().Analysis.Checks, cfg.Analysis.Checks)
	assert.Empty(t, cfg.Path)
	assert.NoError(t, cfg.Validate())
}
