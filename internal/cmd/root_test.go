package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"summer/internal/config"
)

const testConfig = `
collector:
  disk_usage: false
  git_diff: false
`

// setup isolates the command from the user configuration and terminal,
// and returns a directory to summarize.
func setup(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COLUMNS", "80")
	t.Setenv("LS_COLORS", "")
	t.Setenv("SUMMER_CONFIG", "")
	t.Setenv("SUMMER_DEBUG", "")

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0o644))

	return dir
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "summer [PATH]")
	assert.Contains(t, out, "--dump-config")
	assert.Contains(t, out, "--interactive")
}

func TestRootCommandVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestSummarize(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, testConfig)

	out, err := execute(t, "-c", cfg, dir)
	require.NoError(t, err)
	assert.Equal(t, "src    README.md\n", out)
}

func TestConfigFromEnvironment(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, testConfig+`
info:
  left: "[%V{docs}]"
  variables:
    docs:
      - glob: "*.md"
`)
	t.Setenv("SUMMER_CONFIG", cfg)
	t.Setenv("COLUMNS", "20")

	out, err := execute(t, dir)
	require.NoError(t, err)
	assert.Equal(t, "[1]\nsrc    README.md\n", out)
}

func TestColorsAlways(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, testConfig+`
colors:
  styles:
    - matchers: [{type: directory}]
      color: bold
`)

	out, err := execute(t, "-c", cfg, "--color", "always", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[1msrc")

	out, err = execute(t, "-c", cfg, "--color", "never", dir)
	require.NoError(t, err)
	assert.Equal(t, "src    README.md\n", out)
}

func TestLsColorsVariable(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, testConfig+`
colors:
  use_lscolors: MY_COLORS
`)
	t.Setenv("MY_COLORS", "di=01")

	out, err := execute(t, "-c", cfg, "--color", "always", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[1msrc")
}

func TestInvalidColorFlag(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, testConfig)

	_, err := execute(t, "-c", cfg, "--color", "sometimes", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--color")
}

func TestDumpConfig(t *testing.T) {
	setup(t)
	cfg := writeConfig(t, testConfig)

	out, err := execute(t, "-c", cfg, "-D")
	require.NoError(t, err)

	var dumped map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &dumped))
	assert.Contains(t, dumped, "columns")
	assert.Contains(t, dumped, "collector")
}

func TestMissingDirectory(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, testConfig)

	_, err := execute(t, "-c", cfg, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestInvalidConfig(t *testing.T) {
	dir := setup(t)
	cfg := writeConfig(t, "grid:\n  unknown_key: 1\n")

	_, err := execute(t, "-c", cfg, dir)
	require.Error(t, err)

	var loadErr *config.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, cfg, loadErr.Path)
}

func TestTooManyArguments(t *testing.T) {
	setup(t)

	_, err := execute(t, "a", "b")
	assert.Error(t, err)
}
