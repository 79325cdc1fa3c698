// Package sorter orders the entries of a group.
package sorter

import (
	"cmp"
	"io/fs"
	"slices"
	"strings"

	"summer/internal/treereader"
)

// Item is an entry to sort.
type Item interface {
	FileName() string
	Metadata() fs.FileInfo
	HasChanges() bool

	// TreeStats returns the statistics of a directory tree, if they are
	// available.
	TreeStats() (treereader.Stats, bool)
}

// Mtime returns the modification time of info in seconds since the Unix
// epoch, or zero for earlier times.
func Mtime(info fs.FileInfo) uint64 {
	return uint64(max(info.ModTime().Unix(), 0))
}

type keyed[T Item] struct {
	item    T
	name    string
	num     uint64
	changed bool
}

// Sort orders items by spec. The sort is stable.
//
// If changesFirst is true, items with changes come before items without
// them, in both directions.
func Sort[T Item](items []T, spec Spec, changesFirst bool) {
	if len(items) < 2 {
		return
	}

	keys := make([]keyed[T], len(items))
	for i, item := range items {
		keys[i] = keyed[T]{
			item:    item,
			name:    item.FileName(),
			num:     numericKey(item, spec.Key),
			changed: item.HasChanges(),
		}
	}

	compareKey := func(a, b *keyed[T]) int {
		switch spec.Key {
		case ByVersion:
			return CompareVersions(a.name, b.name)
		case ByName:
			return strings.Compare(a.name, b.name)
		}

		if c := cmp.Compare(a.num, b.num); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	}

	slices.SortStableFunc(keys, func(a, b keyed[T]) int {
		if changesFirst && a.changed != b.changed {
			if a.changed {
				return -1
			}
			return 1
		}

		c := compareKey(&a, &b)
		if spec.Order == Desc {
			c = -c
		}
		return c
	})

	for i := range keys {
		items[i] = keys[i].item
	}
}

func numericKey(item Item, key Key) uint64 {
	info := item.Metadata()

	switch key {
	case ByModificationTime:
		return Mtime(info)

	case ByDeepModificationTime:
		if info.IsDir() {
			if stats, ok := item.TreeStats(); ok {
				return stats.NewestMtime
			}
		}
		return Mtime(info)

	case BySize:
		if info.IsDir() {
			if stats, ok := item.TreeStats(); ok {
				return stats.TotalSize
			}
		}
		return uint64(max(info.Size(), 0))
	}

	return 0
}
