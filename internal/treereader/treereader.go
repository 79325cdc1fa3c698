// Package treereader computes statistics of directory trees in the
// background:
//
//   - Total size: the sum of the file lengths, like `du --apparent-size`.
//   - Newest modification time of the files in the tree.
//
// Trees are read by a fixed number of workers. Results delivered after the
// deadline are discarded.
//
// On Unix the reader does not descend into directories on other
// filesystems, like `du -x`.
package treereader

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/semaphore"

	"summer/internal/pending"
)

// Stats is the aggregate of a directory tree.
type Stats struct {
	TotalSize   uint64
	NewestMtime uint64 // seconds since the Unix epoch
}

func (s Stats) add(size, mtime uint64) Stats {
	s.TotalSize += size
	s.NewestMtime = max(s.NewestMtime, mtime)
	return s
}

// Handle is the pending result of a tree read.
type Handle = pending.Value[Stats]

// Reader reads directory trees with a shared pool of workers.
type Reader struct {
	deadline pending.Deadline
	workers  *semaphore.Weighted
}

// New returns a Reader whose results must be available before deadline.
func New(deadline pending.Deadline) *Reader {
	return NewWithWorkers(deadline, runtime.NumCPU())
}

// NewWithWorkers is like New with an explicit pool size.
func NewWithWorkers(deadline pending.Deadline, workers int) *Reader {
	if workers < 1 {
		workers = 1
	}

	return &Reader{
		deadline: deadline,
		workers:  semaphore.NewWeighted(int64(workers)),
	}
}

// Spawn starts reading the tree at path and returns immediately.
//
// The result is unavailable if path is on a different filesystem than its
// parent directory, or if it is not ready before the deadline.
func (r *Reader) Spawn(path string) *Handle {
	ch := make(chan Stats, 1)

	go func() {
		defer close(ch)

		if err := r.workers.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer r.workers.Release(1)

		if stats, ok := read(path); ok {
			ch <- stats
		}
	}()

	return pending.NewValue(ch, r.deadline)
}

// read walks the tree at path. Unreadable entries are ignored.
func read(path string) (Stats, bool) {
	rootDev, hasDev := device(path)
	if hasDev {
		if parentDev, ok := device(filepath.Dir(path)); ok && parentDev != rootDev {
			return Stats{}, false
		}
	}

	var stats Stats
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if p != path && hasDev {
				if dev, ok := device(p); !ok || dev != rootDev {
					return filepath.SkipDir
				}
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		stats = stats.add(uint64(max(info.Size(), 0)), uint64(max(info.ModTime().Unix(), 0)))
		return nil
	})

	return stats, true
}
