package style

import (
	"io/fs"

	"github.com/charmbracelet/lipgloss"
)

// Combine overlays next on top of base. Attributes set in next win;
// attributes only set in base are kept.
func Combine(base, next lipgloss.Style) lipgloss.Style {
	return next.Inherit(base)
}

// Lookup provides a style for a file, usually from a color scheme read from
// the environment.
type Lookup interface {
	StyleFor(path string, info fs.FileInfo) (lipgloss.Style, bool)
}
