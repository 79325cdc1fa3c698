// Package display writes a grid.Screen to a terminal.
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"summer/internal/config"
	"summer/internal/grid"
	"summer/internal/style"
)

// DefaultWidth is the terminal width used for the info boxes when the
// real width is unknown.
const DefaultWidth = 80

// Options control how a screen is written.
type Options struct {
	// Width is the terminal width. Zero means unknown: columns are never
	// discarded, and the info boxes are placed as if the width were
	// DefaultWidth.
	Width int

	// Colors enables ANSI escape sequences.
	Colors bool
}

type printer struct {
	w        *bufio.Writer
	renderer *lipgloss.Renderer
	opts     Options
}

// Print writes screen to w.
//
// The info boxes for the left and right sides are written first, then the
// columns, followed by the info column if there is room for it.
func Print(w io.Writer, screen *grid.Screen, opts Options) error {
	p := &printer{
		w:        bufio.NewWriter(w),
		renderer: newRenderer(w, opts.Colors),
		opts:     opts,
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	if header := header(width, screen.InfoLeft, screen.InfoRight); header != nil {
		p.columns(header)
	}

	columns := screen.Columns
	if info := screen.InfoColumn; info != nil {
		used := 0
		for _, c := range columns {
			used += c.Width
		}

		if padding := width - used - info.Width; padding >= 0 {
			columns = append(columns[:len(columns):len(columns)], grid.Padding(padding, 0, lipgloss.Style{}), info)
		}
	}

	p.columns(columns)

	return p.w.Flush()
}

func newRenderer(w io.Writer, colors bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if colors {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// header returns the columns for the left and right info boxes, or nil if
// there is none.
func header(width int, left, right *grid.Column) []*grid.Column {
	if left == nil && right == nil {
		return nil
	}

	padding := -1
	switch {
	case left != nil && right != nil:
		padding = width - left.Width - right.Width
	case right != nil:
		padding = width - right.Width
	}

	var columns []*grid.Column
	if left != nil {
		columns = append(columns, left)
	}

	if padding >= 0 {
		columns = append(columns, grid.Padding(padding, 0, lipgloss.Style{}))
	}

	if right != nil {
		columns = append(columns, right)
	}

	return columns
}

func (p *printer) columns(columns []*grid.Column) {
	// Discard columns beyond the terminal width.
	visible := columns
	if p.opts.Width > 0 {
		used := 0
		for i, c := range columns {
			used += c.Width
			if used > p.opts.Width {
				visible = columns[:i]
				break
			}
		}
	}

	numRows := 0
	for _, c := range visible {
		if c.HasFiles {
			numRows = max(numRows, len(c.Rows))
		}
	}

	for row := 0; row < numRows; row++ {
		for _, c := range visible {
			p.cell(c, row)
		}
		p.w.WriteByte('\n')
	}

	more := 0
	for _, c := range columns[len(visible):] {
		if c.HasFiles {
			more++
		}
	}

	if more > 0 {
		suffix := "s"
		if more == 1 {
			suffix = ""
		}
		fmt.Fprintf(p.w, "\n[%d more column%s]\n", more, suffix)
	}
}

func (p *printer) cell(c *grid.Column, index int) {
	if index >= len(c.Rows) {
		p.padding(c, index, c.Width)
		return
	}

	row := c.Rows[index]

	if c.Align == grid.AlignRight {
		p.padding(c, index, c.Width-row.Width)
	}

	for _, span := range row.Spans {
		p.write(span.Text, style.Combine(c.Style, span.Style))
	}

	if c.Align == grid.AlignLeft {
		p.padding(c, index, c.Width-row.Width)
	}
}

// padding writes spaces. They are styled only inside the height of the
// column.
func (p *printer) padding(c *grid.Column, index, width int) {
	if width <= 0 {
		return
	}

	spaces := strings.Repeat(" ", width)
	if c.Height > index {
		p.write(spaces, c.Style)
	} else {
		p.w.WriteString(spaces)
	}
}

func (p *printer) write(text string, st lipgloss.Style) {
	if !p.opts.Colors {
		p.w.WriteString(text)
		return
	}

	p.w.WriteString(st.Renderer(p.renderer).Render(text))
}

// TerminalWidth returns the width of the terminal: the value of COLUMNS
// if it is a positive number, or the size of f if it is a terminal.
// Returns zero if the width is unknown.
func TerminalWidth(columnsEnv string, f *os.File) int {
	if n, err := strconv.Atoi(strings.TrimSpace(columnsEnv)); err == nil {
		if n > 0 {
			return n
		}
		return 0
	}

	if f != nil {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}

	return 0
}

// UseColors reports whether escape sequences should be written to f.
func UseColors(when config.When, f *os.File) bool {
	switch when {
	case config.WhenAlways:
		return true
	case config.WhenNever:
		return false
	}

	if f == nil {
		return false
	}

	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
