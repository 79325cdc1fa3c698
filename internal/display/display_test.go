package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summer/internal/config"
	"summer/internal/grid"
)

func column(hasFiles bool, align grid.Align, rows ...string) *grid.Column {
	c := grid.NewColumn(hasFiles)
	c.Align = align
	for _, text := range rows {
		var row grid.Row
		if text != "" {
			row.Add(text, lipgloss.NewStyle())
		}
		c.Push(row)
	}
	return c
}

func output(t *testing.T, screen *grid.Screen, opts Options) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, screen, opts))
	return buf.String()
}

func TestPrintColumns(t *testing.T) {
	screen := &grid.Screen{
		Columns: []*grid.Column{
			column(true, grid.AlignLeft, "a", "bbb"),
			grid.Padding(2, 0, lipgloss.NewStyle()),
			column(false, grid.AlignRight, "1", "22"),
		},
	}

	assert.Equal(t, "a     1\nbbb  22\n", output(t, screen, Options{}))
}

func TestPrintRowsFromFileColumns(t *testing.T) {
	screen := &grid.Screen{
		Columns: []*grid.Column{
			column(false, grid.AlignRight, "1", "2", "3"),
			column(true, grid.AlignLeft, "a"),
		},
	}

	assert.Equal(t, "1a\n", output(t, screen, Options{}))
}

func TestPrintDiscardsColumns(t *testing.T) {
	screen := &grid.Screen{
		Columns: []*grid.Column{
			column(true, grid.AlignLeft, "a", "bbb"),
			grid.Padding(2, 0, lipgloss.NewStyle()),
			column(true, grid.AlignLeft, "cc"),
			column(true, grid.AlignLeft, "dd"),
		},
	}

	assert.Equal(t, "a    \nbbb  \n\n[2 more columns]\n", output(t, screen, Options{Width: 6}))

	screen.Columns = screen.Columns[:3]
	assert.Equal(t, "a    \nbbb  \n\n[1 more column]\n", output(t, screen, Options{Width: 6}))

	// Unknown width.
	assert.Equal(t, "a    cc\nbbb    \n", output(t, screen, Options{}))
}

func TestPrintHeader(t *testing.T) {
	screen := &grid.Screen{
		InfoLeft:  column(true, grid.AlignLeft, "L"),
		InfoRight: column(true, grid.AlignLeft, "RR"),
	}

	assert.Equal(t, "L"+strings.Repeat(" ", 7)+"RR\n", output(t, screen, Options{Width: 10}))

	screen.InfoLeft = nil
	assert.Equal(t, strings.Repeat(" ", 8)+"RR\n", output(t, screen, Options{Width: 10}))

	screen.InfoLeft = column(true, grid.AlignLeft, "L")
	screen.InfoRight = nil
	assert.Equal(t, "L\n", output(t, screen, Options{Width: 10}))
}

func TestPrintHeaderDefaultWidth(t *testing.T) {
	screen := &grid.Screen{InfoRight: column(true, grid.AlignLeft, "R")}

	assert.Equal(t, strings.Repeat(" ", DefaultWidth-1)+"R\n", output(t, screen, Options{}))
}

func TestPrintInfoColumn(t *testing.T) {
	screen := &grid.Screen{
		Columns:    []*grid.Column{column(true, grid.AlignLeft, "a")},
		InfoColumn: column(true, grid.AlignLeft, "ii", "j"),
	}

	assert.Equal(t, "a"+strings.Repeat(" ", 7)+"ii\n"+strings.Repeat(" ", 8)+"j \n",
		output(t, screen, Options{Width: 10}))

	// No room for the info column.
	assert.Equal(t, "a\n", output(t, screen, Options{Width: 2}))
}

func TestPrintColors(t *testing.T) {
	names := grid.NewColumn(true)

	var row grid.Row
	row.Add("bold", lipgloss.NewStyle().Bold(true))
	names.Push(row)
	names.Push(grid.Row{})
	names.SetHeight(2)

	pad := grid.Padding(2, 1, lipgloss.NewStyle().Reverse(true))

	screen := &grid.Screen{Columns: []*grid.Column{names, pad}}

	out := output(t, screen, Options{Colors: true})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "\x1b[1m")
	assert.Contains(t, lines[0], "bold")
	assert.Contains(t, lines[0], "\x1b[7m")
	assert.Equal(t, strings.Repeat(" ", 6), lines[1])

	plain := output(t, screen, Options{})
	assert.Equal(t, "bold  \n      \n", plain)
}

func TestTerminalWidth(t *testing.T) {
	assert.Equal(t, 120, TerminalWidth("120", nil))
	assert.Equal(t, 0, TerminalWidth("0", nil))
	assert.Equal(t, 0, TerminalWidth("wide", nil))
	assert.Equal(t, 0, TerminalWidth("", nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 0, TerminalWidth("", f))
	assert.Equal(t, 50, TerminalWidth(" 50 ", f))
}

func TestUseColors(t *testing.T) {
	assert.True(t, UseColors(config.WhenAlways, nil))
	assert.False(t, UseColors(config.WhenNever, nil))
	assert.False(t, UseColors(config.WhenAuto, nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, UseColors(config.WhenAuto, f))
}
