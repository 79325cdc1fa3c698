// Package grid contains the elements to build the output of the program.
//
// A Screen holds any number of columns, plus the info boxes around them.
// Every column has a fixed width and height, and a list of rows made of
// styled spans.
package grid

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Width returns the number of terminal cells used by s.
func Width(s string) int {
	return widths.StringWidth(s)
}

// RuneWidth returns the number of terminal cells used by r.
func RuneWidth(r rune) int {
	return widths.RuneWidth(r)
}

// Screen is the data to write to the terminal.
type Screen struct {
	Columns    []*Column
	InfoLeft   *Column
	InfoRight  *Column
	InfoColumn *Column
}

// Align is the side of a column where rows are placed.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column is a list of rows with the same width.
type Column struct {
	Align Align

	// Width is the width of the widest row.
	Width int

	// Height is the number of rows, or the height of the group the column
	// belongs to.
	Height int

	// HasFiles is true if the column contains entries of the scanned
	// directory, or an info box.
	HasFiles bool

	// Style is applied to the whole column, including the padding, up to
	// its height.
	Style lipgloss.Style

	Rows []Row
}

// NewColumn returns an empty column.
func NewColumn(hasFiles bool) *Column {
	return &Column{HasFiles: hasFiles}
}

// Padding returns a column with only spaces.
func Padding(width, height int, style lipgloss.Style) *Column {
	return &Column{Width: width, Height: height, Style: style}
}

// Push appends a row.
func (c *Column) Push(row Row) {
	c.Width = max(c.Width, row.Width)
	c.Height++
	c.Rows = append(c.Rows, row)
}

// SetHeight changes the height of the column. Rows beyond the new height
// are discarded.
func (c *Column) SetHeight(height int) {
	c.Height = height
	if len(c.Rows) > height {
		c.Rows = c.Rows[:height]
	}
}

// Row is a line in a column.
type Row struct {
	Spans []Span
	Width int
}

// Add appends a span to the row.
func (r *Row) Add(text string, style lipgloss.Style) {
	r.Width += Width(text)
	r.Spans = append(r.Spans, Span{Text: text, Style: style})
}

// Empty reports whether the row has no spans.
func (r *Row) Empty() bool {
	return len(r.Spans) == 0
}

// Span is a piece of text with a style.
type Span struct {
	Text  string
	Style lipgloss.Style
}
