package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	c, err := Parse("blue bold")
	require.NoError(t, err)
	assert.Equal(t, "blue bold", c.Original)
	assert.Equal(t, lipgloss.Color("4"), c.Style.GetForeground())
	assert.True(t, c.Style.GetBold())

	c, err = Parse("yellow blue")
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("3"), c.Style.GetForeground())
	assert.Equal(t, lipgloss.Color("4"), c.Style.GetBackground())

	c, err = Parse("normal brightred ul")
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("9"), c.Style.GetBackground())
	assert.True(t, c.Style.GetUnderline())

	c, err = Parse("208 #00ff00 dim italic")
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("208"), c.Style.GetForeground())
	assert.Equal(t, lipgloss.Color("#00ff00"), c.Style.GetBackground())
	assert.True(t, c.Style.GetFaint())
	assert.True(t, c.Style.GetItalic())
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"red green blue", "sparkly", "300", "#12345"} {
		_, err := Parse(spec)
		assert.Error(t, err, spec)
	}
}

func TestColorYAML(t *testing.T) {
	var v struct {
		Color Color `yaml:"color"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("color: red bold\n"), &v))
	assert.Equal(t, lipgloss.Color("1"), v.Color.Style.GetForeground())

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "color: red bold\n", string(out))

	err = yaml.Unmarshal([]byte("color: nope\n"), &v)
	assert.ErrorContains(t, err, "line 1")
}

func TestCombine(t *testing.T) {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	next := lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Background(lipgloss.Color("3"))

	got := Combine(base, next)
	assert.Equal(t, lipgloss.Color("4"), got.GetForeground())
	assert.Equal(t, lipgloss.Color("3"), got.GetBackground())
	assert.True(t, got.GetBold())

	// Unset attributes fall back to the base.
	got = Combine(base, lipgloss.NewStyle().Underline(true))
	assert.Equal(t, lipgloss.Color("1"), got.GetForeground())
	assert.True(t, got.GetUnderline())
}

func TestLsColors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.TAR"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run"), nil, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), nil, 0o644))
	require.NoError(t, os.Symlink("missing", filepath.Join(dir, "broken")))

	lc := ParseLsColors("di=01;34:ex=32:*.tar=38;5;208:or=31;40:ln=36:bogus:xx=zz")

	lookup := func(name string) (lipgloss.Style, bool) {
		path := filepath.Join(dir, name)
		info, err := os.Lstat(path)
		require.NoError(t, err)
		return lc.StyleFor(path, info)
	}

	st, ok := lookup("sub")
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("4"), st.GetForeground())
	assert.True(t, st.GetBold())

	st, ok = lookup("a.TAR")
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("208"), st.GetForeground())

	st, ok = lookup("run")
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("2"), st.GetForeground())

	st, ok = lookup("broken")
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("1"), st.GetForeground())
	assert.Equal(t, lipgloss.Color("0"), st.GetBackground())

	_, ok = lookup("plain")
	assert.False(t, ok)
}

func TestParseSGRTrueColor(t *testing.T) {
	st, ok := parseSGR("38;2;255;0;16;1")
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("#ff0010"), st.GetForeground())
	assert.True(t, st.GetBold())

	_, ok = parseSGR("38;5")
	assert.False(t, ok)
}
