// Package config defines the configuration file of summer, and how it is
// loaded and written back.
package config

import (
	"fmt"
	"time"

	"summer/internal/humantime"
	"summer/internal/matcher"
	"summer/internal/sorter"
	"summer/internal/style"
)

// Root is the top-level of the configuration file.
type Root struct {
	Colors    Colors    `yaml:"colors,omitempty"`
	Grid      Grid      `yaml:"grid,omitempty"`
	Columns   []Column  `yaml:"columns"`
	Info      *Info     `yaml:"info,omitempty"`
	Collector Collector `yaml:"collector"`
}

// Colors controls how the output is styled.
type Colors struct {
	When        When     `yaml:"when,omitempty"`
	UseLsColors LsColors `yaml:"use_lscolors,omitempty"`

	ColumnLabel  *style.Color `yaml:"column_label,omitempty"`
	NameEllipsis *style.Color `yaml:"name_ellipsis,omitempty"`
	MoreEntries  *style.Color `yaml:"more_entries,omitempty"`
	DiffAdded    *style.Color `yaml:"diff_added,omitempty"`
	DiffDeleted  *style.Color `yaml:"diff_deleted,omitempty"`
	DiskUsage    *style.Color `yaml:"disk_usage,omitempty"`

	Styles     []Style  `yaml:"styles,omitempty"`
	StyleFiles []string `yaml:"style_files,omitempty"`
}

// Style is applied to the names of the entries accepted by its matchers.
type Style struct {
	Matchers  []matcher.Matcher `yaml:"matchers"`
	Color     *style.Color      `yaml:"color,omitempty"`
	Indicator *Content          `yaml:"indicator,omitempty"`
}

// Grid controls the size of the columns.
type Grid struct {
	MaxRows       int  `yaml:"max_rows,omitempty"`
	MaxNameWidth  int  `yaml:"max_name_width,omitempty"`
	ColumnPadding *int `yaml:"column_padding,omitempty"`
}

// DefaultColumnPadding is the space between groups when
// grid.column_padding is not set.
const DefaultColumnPadding = 4

// Padding returns the space between groups.
func (g Grid) Padding() int {
	if g.ColumnPadding == nil {
		return DefaultColumnPadding
	}
	return *g.ColumnPadding
}

// Column defines a group of entries, displayed in one or more columns.
type Column struct {
	IncludeHidden   bool              `yaml:"include_hidden,omitempty"`
	Label           string            `yaml:"label,omitempty"`
	MaxNameWidth    int               `yaml:"max_name_width,omitempty"`
	Matchers        []matcher.Matcher `yaml:"matchers"`
	Exclude         []matcher.Matcher `yaml:"exclude,omitempty"`
	GitChangesFirst *bool             `yaml:"git_changes_first,omitempty"`
	Color           *style.Color      `yaml:"color,omitempty"`
	Sort            *sorter.Spec      `yaml:"sort,omitempty"`
}

// ChangesFirst reports whether entries with changes in Git are sorted
// before the others. It is true unless disabled.
func (c *Column) ChangesFirst() bool {
	return c.GitChangesFirst == nil || *c.GitChangesFirst
}

// SortSpec returns the sort of the column, by name if not set.
func (c *Column) SortSpec() sorter.Spec {
	if c.Sort == nil {
		return sorter.Spec{}
	}
	return *c.Sort
}

// Info defines the boxes around the columns, and the variables they can
// reference.
type Info struct {
	Left      *Content                     `yaml:"left,omitempty"`
	Right     *Content                     `yaml:"right,omitempty"`
	Column    *Content                     `yaml:"column,omitempty"`
	Variables map[string][]matcher.Matcher `yaml:"variables,omitempty"`
}

// Collector controls the background collectors.
type Collector struct {
	DiskUsage bool    `yaml:"disk_usage"`
	GitDiff   bool    `yaml:"git_diff"`
	Timeout   Timeout `yaml:"timeout"`
}

// DefaultTimeout is the collector timeout when none is configured.
const DefaultTimeout = 100 * time.Millisecond

// DefaultCollector returns the collector settings used when the
// configuration does not change them.
func DefaultCollector() Collector {
	return Collector{
		DiskUsage: true,
		GitDiff:   true,
		Timeout:   Timeout{Duration: humantime.Duration{Duration: DefaultTimeout}},
	}
}

// DefaultColumns returns the groups used when the configuration does not
// define any: directories first, then everything else.
func DefaultColumns() []Column {
	return []Column{
		{
			Matchers: []matcher.Matcher{matcher.Type(matcher.Directory)},
		},
		{
			IncludeHidden: true,
			Matchers:      []matcher.Matcher{matcher.Any()},
		},
	}
}

// Default returns the built-in configuration.
func Default() *Root {
	return &Root{
		Columns:   DefaultColumns(),
		Collector: DefaultCollector(),
	}
}

// Validate checks the values that the YAML decoder cannot check.
func (r *Root) Validate() error {
	if r.Grid.MaxRows < 0 {
		return fmt.Errorf("grid.max_rows must be greater than zero")
	}

	if r.Grid.MaxNameWidth < 0 {
		return fmt.Errorf("grid.max_name_width must be greater than zero")
	}

	if r.Grid.ColumnPadding != nil && *r.Grid.ColumnPadding < 0 {
		return fmt.Errorf("grid.column_padding must not be negative")
	}

	for i, c := range r.Columns {
		if c.MaxNameWidth < 0 {
			return fmt.Errorf("columns[%d].max_name_width must be greater than zero", i)
		}
	}

	return nil
}
