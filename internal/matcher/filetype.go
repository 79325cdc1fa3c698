package matcher

import (
	"fmt"
	"io/fs"
	"runtime"
)

// FileType is the kind of entry accepted by a KindType matcher.
type FileType int

const (
	BlockDev FileType = iota + 1
	CharDev
	Directory
	Executable
	File
	Fifo
	Socket
	SymLink
)

var fileTypeNames = map[FileType]string{
	BlockDev:   "block_dev",
	CharDev:    "char_dev",
	Directory:  "directory",
	Executable: "executable",
	File:       "file",
	Fifo:       "fifo",
	Socket:     "socket",
	SymLink:    "sym_link",
}

var fileTypeAliases = map[string]FileType{
	"blockdev": BlockDev,
	"chardev":  CharDev,
	"symlink":  SymLink,
	"dir":      Directory,
}

func (t FileType) String() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FileType(%d)", int(t))
}

// unixOnly reports whether t can only be detected on Unix systems.
func (t FileType) unixOnly() bool {
	switch t {
	case BlockDev, CharDev, Executable, Fifo, Socket:
		return true
	}
	return false
}

// ParseFileType parses the name of a file type. Types that depend on Unix
// file modes are rejected on Windows.
func ParseFileType(s string) (FileType, error) {
	t, ok := fileTypeAliases[s]
	if !ok {
		for ft, name := range fileTypeNames {
			if name == s {
				t, ok = ft, true
				break
			}
		}
	}

	if !ok {
		return 0, fmt.Errorf("unknown file type %q", s)
	}

	if t.unixOnly() && runtime.GOOS == "windows" {
		return 0, fmt.Errorf("file type %q is not supported on %s", s, runtime.GOOS)
	}

	return t, nil
}

func (t FileType) matches(mode fs.FileMode) bool {
	switch t {
	case BlockDev:
		return mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0
	case CharDev:
		return mode&fs.ModeCharDevice != 0
	case Directory:
		return mode.IsDir()
	case Executable:
		return mode.IsRegular() && mode.Perm()&0o111 != 0
	case File:
		return mode.IsRegular()
	case Fifo:
		return mode&fs.ModeNamedPipe != 0
	case Socket:
		return mode&fs.ModeSocket != 0
	case SymLink:
		return mode&fs.ModeSymlink != 0
	}
	return false
}
