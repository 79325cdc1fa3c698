//go:build unix

package treereader

import "golang.org/x/sys/unix"

// device returns the identifier of the filesystem containing path.
func device(path string) (uint64, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, false
	}
	return uint64(st.Dev), true
}
