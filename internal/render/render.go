// Package render builds the columns to print from the result of a scan.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"summer/internal/config"
	"summer/internal/grid"
	"summer/internal/matcher"
	"summer/internal/scanner"
	"summer/internal/style"
	"summer/pkg/utils"
)

// Ellipsis is appended to truncated names.
const Ellipsis = "…"

// Env holds the values from the process environment used by the
// renderer.
type Env struct {
	// Home is the home directory, replaced by '~' in %p.
	Home string

	// Colors is the color scheme for file names. It can be nil.
	Colors style.Lookup
}

type renderer struct {
	analysis *scanner.Analysis
	cfg      *config.Root
	env      Env
}

// groupColumns are the columns of a group, before they are added to the
// screen.
type groupColumns struct {
	side       []*grid.Column
	indicators *grid.Column
	names      *grid.Column
	style      lipgloss.Style
}

// Render builds the screen for analysis.
//
// Empty groups are skipped, and the other ones are separated by the
// padding from grid.column_padding.
func Render(analysis *scanner.Analysis, cfg *config.Root, env Env) *grid.Screen {
	r := &renderer{analysis: analysis, cfg: cfg, env: env}

	hasLabels := false
	for _, g := range analysis.Groups {
		if g.Column.Label != "" {
			hasLabels = true
			break
		}
	}

	var groups []groupColumns
	hasIndicators := false

	for i := range analysis.Groups {
		g := &analysis.Groups[i]
		if len(g.Entries) == 0 {
			continue
		}

		gc, indicators := r.group(g, hasLabels)
		hasIndicators = hasIndicators || indicators
		groups = append(groups, gc)
	}

	screen := &grid.Screen{}
	padding := cfg.Grid.Padding()

	for i, gc := range groups {
		if i > 0 {
			screen.Columns = append(screen.Columns, grid.Padding(padding, 0, lipgloss.NewStyle()))
		}

		height := gc.names.Height
		for _, c := range gc.side {
			c.Align = grid.AlignRight
			c.Style = gc.style
			c.SetHeight(height)
			screen.Columns = append(screen.Columns, c, grid.Padding(1, height, gc.style))
		}

		if hasIndicators {
			gc.indicators.Align = grid.AlignRight
			gc.indicators.Style = gc.style
			screen.Columns = append(screen.Columns, gc.indicators)
		}

		gc.names.Style = gc.style
		screen.Columns = append(screen.Columns, gc.names)
	}

	if info := cfg.Info; info != nil {
		screen.InfoLeft = r.infoBox(info.Left)
		screen.InfoRight = r.infoBox(info.Right)
		screen.InfoColumn = r.infoBox(info.Column)
	}

	return screen
}

func (r *renderer) infoBox(c *config.Content) *grid.Column {
	if c == nil {
		return nil
	}
	return r.info(c.Text, colorStyle(c.Color))
}

func colorStyle(c *style.Color) lipgloss.Style {
	if c == nil {
		return lipgloss.NewStyle()
	}
	return c.Style
}

func colorOr(c *style.Color, fallback lipgloss.Style) lipgloss.Style {
	if c == nil {
		return fallback
	}
	return c.Style
}

// group renders the columns of a group. The boolean is true if any entry
// has an indicator.
func (r *renderer) group(g *scanner.Group, hasLabels bool) (groupColumns, bool) {
	colors := &r.cfg.Colors

	entries := g.Entries
	moreEntries := 0
	if maxRows := r.cfg.Grid.MaxRows; maxRows > 0 && maxRows < len(entries) && len(entries) > 2 {
		moreEntries = len(entries) - maxRows + 1
		entries = entries[:maxRows-1]
	}

	treeStats := make([]*uint64, len(entries))
	for i, e := range entries {
		if stats, ok := e.TreeStats(); ok {
			size := stats.TotalSize
			treeStats[i] = &size
		}
	}

	var hasAdded, hasDeleted, hasDiskUsage bool
	for i, e := range entries {
		if e.Change != nil {
			hasAdded = hasAdded || e.Change.Insertions > 0
			hasDeleted = hasDeleted || e.Change.Deletions > 0
		}
		hasDiskUsage = hasDiskUsage || (treeStats[i] != nil && *treeStats[i] > 0)
	}

	newSideColumn := func(enabled bool) *grid.Column {
		if !enabled {
			return nil
		}

		c := grid.NewColumn(false)
		if hasLabels {
			c.Push(grid.Row{})
		}
		return c
	}

	added := newSideColumn(hasAdded)
	deleted := newSideColumn(hasDeleted)
	diskUsage := newSideColumn(hasDiskUsage)

	addedStyle := colorOr(colors.DiffAdded, lipgloss.NewStyle().Foreground(lipgloss.Color("2")))
	deletedStyle := colorOr(colors.DiffDeleted, lipgloss.NewStyle().Foreground(lipgloss.Color("1")))

	names := grid.NewColumn(true)
	indicators := grid.NewColumn(false)
	hasIndicators := false

	if hasLabels {
		indicators.Push(grid.Row{})

		var row grid.Row
		if g.Column.Label != "" {
			row.Add(g.Column.Label, colorStyle(colors.ColumnLabel))
		}
		names.Push(row)
	}

	maxNameWidth := g.Column.MaxNameWidth
	if maxNameWidth == 0 {
		maxNameWidth = r.cfg.Grid.MaxNameWidth
	}

	for i, e := range entries {
		if added != nil {
			var row grid.Row
			if e.Change != nil && e.Change.Insertions > 0 {
				row.Add(fmt.Sprintf("+%d", e.Change.Insertions), addedStyle)
			}
			added.Push(row)
		}

		if deleted != nil {
			var row grid.Row
			if e.Change != nil && e.Change.Deletions > 0 {
				row.Add(fmt.Sprintf("-%d", e.Change.Deletions), deletedStyle)
			}
			deleted.Push(row)
		}

		if diskUsage != nil {
			var row grid.Row
			if treeStats[i] != nil {
				row.Add(utils.FormatSize(*treeStats[i]), colorStyle(colors.DiskUsage))
			}
			diskUsage.Push(row)
		}

		nameStyle, indicator := r.entryStyle(e)
		if !indicator.Empty() {
			hasIndicators = true
		}

		var row grid.Row
		name, truncated := Quote(e.Name, maxNameWidth)
		row.Add(name, nameStyle)
		if truncated {
			row.Add(Ellipsis, colorStyle(colors.NameEllipsis))
		}

		names.Push(row)
		indicators.Push(indicator)
	}

	if moreEntries > 0 {
		var row grid.Row
		row.Add(fmt.Sprintf("+%d entries", moreEntries), colorStyle(colors.MoreEntries))
		names.Push(row)
	}

	gc := groupColumns{
		indicators: indicators,
		names:      names,
		style:      colorStyle(g.Column.Color),
	}

	for _, c := range []*grid.Column{added, deleted, diskUsage} {
		if c != nil {
			gc.side = append(gc.side, c)
		}
	}

	return gc, hasIndicators
}

// entryStyle returns the style for the name of e, and the row for its
// indicators.
//
// The style from the color scheme is the base, and then every matching
// style rule is combined on top of it.
func (r *renderer) entryStyle(e *scanner.Entry) (lipgloss.Style, grid.Row) {
	nameStyle := lipgloss.NewStyle()
	var indicator grid.Row

	if r.env.Colors != nil {
		if st, ok := r.env.Colors.StyleFor(e.Path, e.Info); ok {
			nameStyle = style.Combine(nameStyle, st)
		}
	}

	subject := matcher.Entry{Name: e.Name, Info: e.Info, Change: e.Change}
	for _, rule := range r.cfg.Colors.Styles {
		if !matcher.Match(subject, true, rule.Matchers) {
			continue
		}

		if rule.Color != nil {
			nameStyle = style.Combine(nameStyle, rule.Color.Style)
		}

		if rule.Indicator != nil {
			indicator.Add(rule.Indicator.Text, colorStyle(rule.Indicator.Color))
		}
	}

	return nameStyle, indicator
}
