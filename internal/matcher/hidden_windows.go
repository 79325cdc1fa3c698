//go:build windows

package matcher

import (
	"io/fs"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

func isHidden(name string, info fs.FileInfo) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	if info == nil {
		return false
	}

	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return attrs.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
	}

	return false
}
