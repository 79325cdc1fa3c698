package matcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"summer/internal/gitdiff"
	"summer/internal/mimetype"
)

type fakeInfo struct {
	name    string
	mode    fs.FileMode
	modTime time.Time
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return f.modTime }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() any           { return nil }

func file(name string) Entry {
	return Entry{Name: name, Info: fakeInfo{name: name, mode: 0o644}}
}

func mustGlob(t *testing.T, patterns ...string) Matcher {
	t.Helper()
	m, err := Glob(patterns...)
	require.NoError(t, err)
	return m
}

func mustRegex(t *testing.T, expr string) Matcher {
	t.Helper()
	m, err := Regex(expr)
	require.NoError(t, err)
	return m
}

func TestMatchLists(t *testing.T) {
	e := file("main.go")
	txt := mustGlob(t, "*.txt")

	assert.False(t, Match(e, false, nil))
	assert.False(t, Match(e, false, []Matcher{txt}))
	assert.True(t, Match(e, false, []Matcher{Any()}))
	assert.True(t, Match(e, false, []Matcher{txt, Any()}))
	assert.True(t, Match(e, false, []Matcher{Any(), txt}))
}

func TestMatchAllAndNot(t *testing.T) {
	goFiles := mustGlob(t, "*.go")
	mainFiles := mustRegex(t, "^main")
	txt := mustGlob(t, "*.txt")

	for _, name := range []string{"main.go", "util.go", "main.txt", "x"} {
		e := file(name)
		a := Match(e, false, []Matcher{goFiles})
		b := Match(e, false, []Matcher{mainFiles})

		assert.Equal(t, a && b, Match(e, false, []Matcher{All(goFiles, mainFiles)}), name)
		assert.Equal(t, !a, Match(e, false, []Matcher{Not(goFiles)}), name)
		assert.Equal(t, a, Match(e, false, []Matcher{Not(Not(goFiles))}), name)
	}

	assert.True(t, Match(file("x"), false, []Matcher{All()}))
	assert.False(t, Match(file("a.txt"), false, []Matcher{All(txt, Not(txt))}))
}

func TestMatchHidden(t *testing.T) {
	e := file(".env")

	assert.False(t, Match(e, false, []Matcher{Any()}))
	assert.True(t, Match(e, true, []Matcher{Any()}))
	assert.False(t, Match(e, false, []Matcher{Not(mustGlob(t, "*.go"))}))
}

func TestMatchChanges(t *testing.T) {
	change := &gitdiff.Change{Insertions: 1}

	e := file("README")
	assert.False(t, Match(e, false, []Matcher{ChangedInGit()}))

	e.Change = change
	assert.True(t, Match(e, false, []Matcher{ChangedInGit()}))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	recent := Entry{Name: "a", Info: fakeInfo{modTime: base.Add(-time.Hour)}}
	old := Entry{Name: "b", Info: fakeInfo{modTime: base.Add(-72 * time.Hour)}}
	future := Entry{Name: "c", Info: fakeInfo{modTime: base.Add(time.Hour)}}

	within := []Matcher{ChangedWithin(48 * time.Hour)}
	assert.True(t, Match(recent, false, within))
	assert.False(t, Match(old, false, within))
	assert.False(t, Match(future, false, within))
}

func TestMatchGlobUsesName(t *testing.T) {
	g := mustGlob(t, "*.txt", "[A-C]*")

	assert.True(t, Match(file("notes.txt"), false, []Matcher{g}))
	assert.True(t, Match(file("Build"), false, []Matcher{g}))
	assert.False(t, Match(file("Dockerfile"), false, []Matcher{g}))

	notA := mustGlob(t, "[!a]*")
	assert.True(t, Match(file("b.txt"), false, []Matcher{notA}))
	assert.False(t, Match(file("a.txt"), false, []Matcher{notA}))
	assert.False(t, Match(file("!x"), false, []Matcher{mustGlob(t, "[!!]*")}))

	sources := mustGlob(t, "*.{rs,go}")
	assert.True(t, Match(file("main.rs"), false, []Matcher{sources}))
	assert.True(t, Match(file("main.go"), false, []Matcher{sources}))
	assert.False(t, Match(file("main.py"), false, []Matcher{sources}))

	for _, bad := range []string{"[a-", "[]", "*.{rs,go"} {
		_, err := Glob(bad)
		assert.Error(t, err, bad)
	}
}

func TestMatchRegex(t *testing.T) {
	caps := mustRegex(t, "^[A-Z]")

	assert.True(t, Match(file("README"), false, []Matcher{caps}))
	assert.False(t, Match(file("readme"), false, []Matcher{caps}))
	assert.False(t, Match(file("X\xff"), false, []Matcher{caps}))

	_, err := Regex("(")
	assert.Error(t, err)
}

func TestMatchMime(t *testing.T) {
	text := Mime(mimetype.Text)
	image := Mime(mimetype.Image)

	assert.True(t, Match(file("notes.TXT"), false, []Matcher{text}))
	assert.True(t, Match(file("logo.png"), false, []Matcher{text, image}))
	assert.False(t, Match(file("Makefile"), false, []Matcher{text, image}))
	assert.False(t, Match(file("notes."), false, []Matcher{text}))
	assert.True(t, Match(file("a.png"), false, []Matcher{All(Not(text), image)}))

	assert.Equal(t, "", extension(".bashrc"))
	assert.Equal(t, "gz", extension("a.tar.gz"))
}

func TestMatchFileTypes(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run"), nil, 0o755))

	entry := func(name string) Entry {
		info, err := os.Lstat(filepath.Join(dir, name))
		require.NoError(t, err)
		return Entry{Name: name, Info: info}
	}

	assert.True(t, Match(entry("sub"), false, []Matcher{Type(Directory)}))
	assert.False(t, Match(entry("sub"), false, []Matcher{Type(File)}))
	assert.True(t, Match(entry("plain"), false, []Matcher{Type(File)}))

	if runtime.GOOS != "windows" {
		require.NoError(t, os.Symlink("plain", filepath.Join(dir, "link")))

		assert.True(t, Match(entry("run"), false, []Matcher{Type(Executable)}))
		assert.False(t, Match(entry("plain"), false, []Matcher{Type(Executable)}))
		assert.False(t, Match(entry("sub"), false, []Matcher{Type(Executable)}))
		assert.True(t, Match(entry("link"), false, []Matcher{Type(SymLink)}))
		assert.False(t, Match(entry("link"), false, []Matcher{Type(File)}))
	}

	assert.True(t, Type(Fifo).Type.matches(fs.ModeNamedPipe))
	assert.True(t, Type(Socket).Type.matches(fs.ModeSocket))
	assert.True(t, Type(CharDev).Type.matches(fs.ModeDevice|fs.ModeCharDevice))
	assert.False(t, Type(BlockDev).Type.matches(fs.ModeDevice|fs.ModeCharDevice))
	assert.True(t, Type(BlockDev).Type.matches(fs.ModeDevice))
}

func TestUnmarshal(t *testing.T) {
	input := `
- any
- all: [ { glob: "*.go" }, { not: { regex: "_test" } } ]
- changes: git
- changes: 2 days
- glob: [ "*.md", "*.txt" ]
- mime: text
- type: directory
- type: symlink
`

	var ms []Matcher
	require.NoError(t, yaml.Unmarshal([]byte(input), &ms))
	require.Len(t, ms, 8)

	assert.Equal(t, KindAny, ms[0].Kind)

	require.Equal(t, KindAll, ms[1].Kind)
	require.Len(t, ms[1].All, 2)
	assert.Equal(t, []string{"*.go"}, ms[1].All[0].Globs)
	assert.Equal(t, KindNot, ms[1].All[1].Kind)
	assert.Equal(t, "_test", ms[1].All[1].Not.Regex.String())

	assert.True(t, ms[2].Changes.Git)
	assert.Equal(t, 48*time.Hour, ms[3].Changes.Within.Duration)
	assert.Equal(t, []string{"*.md", "*.txt"}, ms[4].Globs)
	assert.Equal(t, mimetype.Text, ms[5].Mime)
	assert.Equal(t, Directory, ms[6].Type)
	assert.Equal(t, SymLink, ms[7].Type)

	assert.True(t, Match(file("main.go"), false, ms[1:2]))
	assert.False(t, Match(file("main_test.go"), false, ms[1:2]))
}

func TestUnmarshalErrors(t *testing.T) {
	for _, input := range []string{
		`- everything`,
		`- { glob: "*", regex: "x" }`,
		`- regex: "("`,
		`- glob: "[a-"`,
		`- mime: nothing`,
		`- type: door`,
		`- changes: sometimes`,
		`- size: 10`,
		`- [ any ]`,
	} {
		var ms []Matcher
		assert.Error(t, yaml.Unmarshal([]byte(input), &ms), input)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	input := []Matcher{
		Any(),
		All(mustGlob(t, "*.go"), Not(Type(Directory))),
		ChangedInGit(),
		mustGlob(t, "*.md", "*.txt"),
		Mime(mimetype.Image),
		mustRegex(t, "^[A-Z]"),
	}

	out, err := yaml.Marshal(input)
	require.NoError(t, err)

	var decoded []Matcher
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, len(input))

	for i := range input {
		assert.Equal(t, input[i].Kind, decoded[i].Kind)
	}

	assert.Equal(t, Directory, decoded[1].All[1].Not.Type)
	assert.Equal(t, []string{"*.md", "*.txt"}, decoded[3].Globs)
	assert.Equal(t, "^[A-Z]", decoded[5].Regex.String())
}
