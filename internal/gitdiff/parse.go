package gitdiff

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// Change holds the inserted and deleted lines for a path.
type Change struct {
	Insertions uint32
	Deletions  uint32
}

// Add returns the sum of c and o.
func (c Change) Add(o Change) Change {
	return Change{Insertions: c.Insertions + o.Insertions, Deletions: c.Deletions + o.Deletions}
}

// Changes maps the top-level entries of a directory to the changes found
// in them.
type Changes map[string]Change

// Total returns the sum of all changes.
func (c Changes) Total() Change {
	var total Change
	for _, ch := range c {
		total = total.Add(ch)
	}
	return total
}

// ErrTruncated is returned by Parse when a record is incomplete.
var ErrTruncated = errors.New("truncated record")

// Parse reads the output of `git diff --numstat -z`.
//
// Every record is "<insertions> TAB <deletions> TAB <path> NUL". Renames
// use "<insertions> TAB <deletions> TAB NUL <old> NUL <new> NUL"; their
// deletions go to the old path and their insertions to the new one. Binary
// files have "-" instead of the numbers, counted as zero.
//
// Paths are reduced to their first component, and records for the same
// component are added up. Any malformed record makes the whole input
// invalid.
func Parse(input []byte) (Changes, error) {
	changes := make(Changes)

	next := func(delim byte) ([]byte, error) {
		i := bytes.IndexByte(input, delim)
		if i < 0 {
			return nil, ErrTruncated
		}
		field := input[:i]
		input = input[i+1:]
		return field, nil
	}

	count := func() (uint32, error) {
		field, err := next('\t')
		if err != nil {
			return 0, err
		}
		if string(field) == "-" {
			return 0, nil
		}
		n, err := strconv.ParseUint(string(field), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid count %q: %w", field, err)
		}
		return uint32(n), nil
	}

	path := func() (string, error) {
		p, err := next(0)
		if err != nil {
			return "", err
		}
		if i := bytes.IndexByte(p, '/'); i >= 0 {
			p = p[:i]
		}
		return string(p), nil
	}

	add := func(name string, c Change) {
		changes[name] = changes[name].Add(c)
	}

	for len(input) > 0 {
		insertions, err := count()
		if err != nil {
			return nil, err
		}

		deletions, err := count()
		if err != nil {
			return nil, err
		}

		if len(input) > 0 && input[0] == 0 {
			input = input[1:]

			from, err := path()
			if err != nil {
				return nil, err
			}

			to, err := path()
			if err != nil {
				return nil, err
			}

			add(from, Change{Deletions: deletions})
			add(to, Change{Insertions: insertions})
			continue
		}

		name, err := path()
		if err != nil {
			return nil, err
		}

		add(name, Change{Insertions: insertions, Deletions: deletions})
	}

	return changes, nil
}
