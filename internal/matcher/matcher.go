// Package matcher evaluates the predicates used to classify directory
// entries into groups, style rules and info variables.
package matcher

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"summer/internal/gitdiff"
	"summer/internal/humantime"
	"summer/internal/mimetype"
)

// Kind identifies the variant of a Matcher.
type Kind int

const (
	KindAny Kind = iota
	KindAll
	KindChanges
	KindGlob
	KindMime
	KindNot
	KindRegex
	KindType
)

var kindNames = [...]string{
	KindAny:     "any",
	KindAll:     "all",
	KindChanges: "changes",
	KindGlob:    "glob",
	KindMime:    "mime",
	KindNot:     "not",
	KindRegex:   "regex",
	KindType:    "type",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Changes is the condition of a KindChanges matcher: either the entry has
// changes in the Git working tree, or it was modified recently.
type Changes struct {
	Git    bool
	Within humantime.Duration
}

// Matcher is a predicate over a directory entry. Only the fields for its
// Kind are used.
type Matcher struct {
	Kind Kind

	All     []Matcher
	Not     *Matcher
	Changes Changes
	Globs   []string
	Mime    mimetype.Type
	Regex   *regexp.Regexp
	Type    FileType
}

// Any returns a matcher that accepts every entry.
func Any() Matcher {
	return Matcher{Kind: KindAny}
}

// All returns a matcher that accepts entries accepted by every matcher in ms.
func All(ms ...Matcher) Matcher {
	return Matcher{Kind: KindAll, All: ms}
}

// Not returns a matcher that accepts the entries rejected by m.
func Not(m Matcher) Matcher {
	return Matcher{Kind: KindNot, Not: &m}
}

// ChangedInGit returns a matcher for entries with changes in the working
// tree.
func ChangedInGit() Matcher {
	return Matcher{Kind: KindChanges, Changes: Changes{Git: true}}
}

// ChangedWithin returns a matcher for entries modified less than d ago.
func ChangedWithin(d time.Duration) Matcher {
	return Matcher{Kind: KindChanges, Changes: Changes{Within: humantime.Duration{Duration: d}}}
}

// Glob returns a matcher for file names matching any of the patterns.
// Patterns use shell syntax: '*', '?', classes ("[a-z]", "[!a]") and
// alternatives ("*.{rs,go}").
func Glob(patterns ...string) (Matcher, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return Matcher{}, fmt.Errorf("invalid glob %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return Matcher{Kind: KindGlob, Globs: patterns}, nil
}

// Mime returns a matcher for file names whose extension maps to t.
func Mime(t mimetype.Type) Matcher {
	return Matcher{Kind: KindMime, Mime: t}
}

// Regex returns a matcher for file names matching expr.
func Regex(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{Kind: KindRegex, Regex: re}, nil
}

// Type returns a matcher for entries of the given file type.
func Type(t FileType) Matcher {
	return Matcher{Kind: KindType, Type: t}
}

// Entry is the subject of a match.
type Entry struct {
	// Name is the file name, without any directory.
	Name string

	// Info is the metadata of the entry, without following symlinks.
	Info fs.FileInfo

	// Change is nil when the entry has no changes in Git, or when the
	// changes are unknown.
	Change *gitdiff.Change
}

// now is replaced in tests.
var now = time.Now

// Match reports whether e is accepted by any of the matchers in ms.
//
// Unless includeHidden is true, hidden entries are rejected before any
// matcher is evaluated.
func Match(e Entry, includeHidden bool, ms []Matcher) bool {
	ev := evaluation{entry: e, includeHidden: includeHidden}
	return ev.any(ms)
}

// evaluation holds the state of a single call to Match. The MIME type of
// the entry is computed at most once, even with nested matchers.
type evaluation struct {
	entry         Entry
	includeHidden bool

	mimeDone bool
	mime     mimetype.Type
	mimeOK   bool
}

func (ev *evaluation) any(ms []Matcher) bool {
	if !ev.includeHidden && isHidden(ev.entry.Name, ev.entry.Info) {
		return false
	}

	for i := range ms {
		if ev.one(&ms[i]) {
			return true
		}
	}

	return false
}

func (ev *evaluation) one(m *Matcher) bool {
	e := &ev.entry

	switch m.Kind {
	case KindAny:
		return true

	case KindAll:
		for i := range m.All {
			if !ev.any(m.All[i : i+1]) {
				return false
			}
		}
		return true

	case KindNot:
		if m.Not == nil {
			return false
		}
		return !ev.any([]Matcher{*m.Not})

	case KindChanges:
		if m.Changes.Git {
			return e.Change != nil
		}
		if e.Info == nil {
			return false
		}
		age := now().Sub(e.Info.ModTime())
		return age >= 0 && age < m.Changes.Within.Duration

	case KindGlob:
		for _, pattern := range m.Globs {
			if doublestar.MatchUnvalidated(pattern, e.Name) {
				return true
			}
		}
		return false

	case KindMime:
		if !ev.mimeDone {
			ev.mime, ev.mimeOK = mimetype.FromExtension(extension(e.Name))
			ev.mimeDone = true
		}
		return ev.mimeOK && ev.mime == m.Mime

	case KindRegex:
		if m.Regex == nil || !utf8.ValidString(e.Name) {
			return false
		}
		return m.Regex.MatchString(e.Name)

	case KindType:
		return e.Info != nil && m.Type.matches(e.Info.Mode())
	}

	return false
}

// extension returns the text after the last dot of name. Names with no
// dot, or with only a leading dot, have no extension.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}
