// Package scanner reads a directory and classifies its entries into the
// groups defined by the configuration.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"

	"summer/internal/config"
	"summer/internal/gitdiff"
	"summer/internal/logger"
	"summer/internal/matcher"
	"summer/internal/pending"
	"summer/internal/sorter"
	"summer/internal/treereader"
)

// Entry is a child of the scanned directory.
type Entry struct {
	Name string
	Path string
	Info fs.FileInfo

	// Change is nil if the entry has no changes in Git, or if the changes
	// are unknown.
	Change *gitdiff.Change

	// Tree is only set for directories, when the disk usage collector is
	// enabled.
	Tree *treereader.Handle
}

func (e *Entry) FileName() string      { return e.Name }
func (e *Entry) Metadata() fs.FileInfo { return e.Info }
func (e *Entry) HasChanges() bool      { return e.Change != nil }

// TreeStats returns the statistics of the directory tree, waiting for
// them until the collector deadline.
func (e *Entry) TreeStats() (treereader.Stats, bool) {
	if e.Tree == nil {
		return treereader.Stats{}, false
	}
	return e.Tree.Get()
}

func (e *Entry) subject() matcher.Entry {
	return matcher.Entry{Name: e.Name, Info: e.Info, Change: e.Change}
}

// Group is a column from the configuration with the entries it claimed.
type Group struct {
	Column  *config.Column
	Entries []*Entry
}

// Analysis is the result of scanning a directory.
type Analysis struct {
	// Path is the canonical path of the directory.
	Path string

	Groups []Group

	// Variables counts the entries matched by every variable in the info
	// section.
	Variables map[string]int

	// Changes is the sum of all changes in Git, or nil if they are not
	// available.
	Changes *gitdiff.Change

	// DiskUsageFiles is the sum of the sizes of the regular files in the
	// directory, without subdirectories.
	DiskUsageFiles uint64
}

// Analyze reads the directory at path.
//
// Every entry is added to the first group that accepts it, skipping the
// groups that exclude it. Then, the entries of every group are sorted.
//
// Failing to read the directory is the only error. Entries that cannot be
// read are ignored.
func Analyze(path string, cfg *config.Root) (*Analysis, error) {
	deadline := pending.FromTimeout(cfg.Collector.Timeout.Value())

	var diff *pending.Value[gitdiff.Changes]
	if cfg.Collector.GitDiff {
		diff = gitdiff.Start(path, deadline)
	}

	var reader *treereader.Reader
	if cfg.Collector.DiskUsage {
		reader = treereader.New(deadline)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var changes gitdiff.Changes
	if diff != nil {
		if c, ok := diff.Get(); ok {
			changes = c
		} else {
			logger.Debug("git changes not available before the deadline")
		}
	}

	analysis := &Analysis{
		Path:      canonical(path),
		Groups:    make([]Group, len(cfg.Columns)),
		Variables: make(map[string]int),
	}

	for i := range cfg.Columns {
		analysis.Groups[i].Column = &cfg.Columns[i]
	}

	if changes != nil {
		total := changes.Total()
		analysis.Changes = &total
	}

	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			logger.Debug("entry skipped", "name", de.Name(), "error", err)
			continue
		}

		entry := &Entry{
			Name: de.Name(),
			Path: filepath.Join(path, de.Name()),
			Info: info,
		}

		if c, ok := changes[entry.Name]; ok {
			entry.Change = &c
		}

		if info.Mode().IsRegular() {
			analysis.DiskUsageFiles += uint64(info.Size())
		}

		analysis.count(cfg.Info, entry)
		analysis.classify(entry, reader)
	}

	for i := range analysis.Groups {
		g := &analysis.Groups[i]
		sorter.Sort(g.Entries, g.Column.SortSpec(), g.Column.ChangesFirst())
	}

	return analysis, nil
}

func (a *Analysis) count(info *config.Info, e *Entry) {
	if info == nil {
		return
	}

	for name, ms := range info.Variables {
		if matcher.Match(e.subject(), true, ms) {
			a.Variables[name]++
		}
	}
}

func (a *Analysis) classify(e *Entry, reader *treereader.Reader) {
	subject := e.subject()

	for i := range a.Groups {
		g := &a.Groups[i]

		if matcher.Match(subject, true, g.Column.Exclude) {
			continue
		}

		if !matcher.Match(subject, g.Column.IncludeHidden, g.Column.Matchers) {
			continue
		}

		if reader != nil && e.Info.IsDir() {
			e.Tree = reader.Spawn(e.Path)
		}

		g.Entries = append(g.Entries, e)
		return
	}
}

func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}

	return abs
}
