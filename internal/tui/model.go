// Package tui shows the summary of a directory in a full-screen viewer.
package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"summer/internal/config"
	"summer/internal/display"
	"summer/internal/grid"
	"summer/internal/logger"
	"summer/internal/render"
	"summer/internal/scanner"
	"summer/pkg/utils"
)

type status int

const (
	statusScanning status = iota
	statusReady
	statusFailed
)

type model struct {
	path      string
	cfg       *config.Root
	env       render.Env
	colors    bool
	sp        spinner.Model
	startedAt time.Time

	st       status
	analysis *scanner.Analysis
	screen   *grid.Screen
	err      error

	// starts holds the index of the first column of every group.
	starts []int
	group  int
	scroll int

	// terminal size
	termW int
	termH int

	showHelp bool
}

func newModel(path string, cfg *config.Root, env render.Env, colors bool) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return model{
		path:      path,
		cfg:       cfg,
		env:       env,
		colors:    colors,
		sp:        sp,
		startedAt: time.Now(),
		st:        statusScanning,
	}
}

// Run analyzes the directory at path, and shows the result until the user
// quits. The error from the analysis, if any, is returned after the
// program exits.
func Run(path string, cfg *config.Root, env render.Env, colors bool) error {
	m := newModel(path, cfg, env, colors)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(model); ok {
		return fm.err
	}
	return nil
}

// messages
type analysisMsg struct {
	analysis *scanner.Analysis
	err      error
}

func analyzeCmd(path string, cfg *config.Root) tea.Cmd {
	return func() tea.Msg {
		a, err := scanner.Analyze(path, cfg)
		return analysisMsg{analysis: a, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, analyzeCmd(m.path, m.cfg))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "left", "h":
			if m.st == statusReady && m.group > 0 {
				m.group--
			}
			return m, nil
		case "right", "l":
			if m.st == statusReady && m.group < len(m.starts)-1 {
				m.group++
			}
			return m, nil
		case "up", "k":
			if m.st == statusReady && m.scroll > 0 {
				m.scroll--
			}
			return m, nil
		case "down", "j":
			if m.st == statusReady && m.scroll < m.maxScroll() {
				m.scroll++
			}
			return m, nil
		case "home", "g":
			m.group, m.scroll = 0, 0
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.scroll = min(m.scroll, m.maxScroll())
		return m, nil

	case spinner.TickMsg:
		if m.st != statusScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd

	case analysisMsg:
		if msg.err != nil {
			logger.Error("analysis failed", "path", m.path, "error", msg.err)
			m.err = msg.err
			m.st = statusFailed
			return m, nil
		}

		m.analysis = msg.analysis
		m.screen = render.Render(msg.analysis, m.cfg, m.env)
		m.starts = groupStarts(m.screen.Columns)
		m.st = statusReady
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	switch m.st {
	case statusScanning:
		elapsed := time.Since(m.startedAt).Round(time.Millisecond)
		return fmt.Sprintf("Scanning %s %s  Elapsed: %s\n", m.path, m.sp.View(), elapsed)

	case statusFailed:
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\nPress q to quit.\n"

	case statusReady:
		lines := m.lines()

		height := m.bodyHeight()
		end := min(len(lines), m.scroll+height)
		start := min(m.scroll, end)

		base := strings.Join(lines[start:end], "\n") + "\n" + m.statusText()
		if m.showHelp {
			base += "\n" + m.helpText()
		}
		return base

	default:
		return ""
	}
}

// lines prints the screen, starting at the selected group.
func (m *model) lines() []string {
	screen := *m.screen
	if len(m.starts) > 0 {
		screen.Columns = m.screen.Columns[m.starts[m.group]:]
	}

	var buf bytes.Buffer
	opts := display.Options{Width: m.termW, Colors: m.colors}
	if err := display.Print(&buf, &screen, opts); err != nil {
		return []string{err.Error()}
	}

	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func (m *model) bodyHeight() int {
	height := m.termH - 1
	if height < 3 {
		height = 3
	}
	return height
}

func (m *model) maxScroll() int {
	if m.screen == nil {
		return 0
	}
	return max(0, len(m.lines())-m.bodyHeight())
}

func (m *model) statusText() string {
	return statusStyle.Render(fmt.Sprintf("Group %d/%d  Files: %s  | Keys: ? help, ←→ groups, ↑↓ scroll, q quit",
		m.group+1, max(1, len(m.starts)), utils.HumanizeBytes(m.analysis.DiskUsageFiles)))
}

func (m *model) helpText() string {
	lines := []string{
		"Help (press ? to close):",
		"  ←/h, →/l  Previous/next group",
		"  ↑/k, ↓/j  Scroll",
		"  g/home    Back to the start",
		"  q/esc     Quit",
	}
	return lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).Render(strings.Join(lines, "\n"))
}

// groupStarts returns the index of the first column of every group.
// Groups are separated by padding columns with no height.
func groupStarts(columns []*grid.Column) []int {
	if len(columns) == 0 {
		return nil
	}

	starts := []int{0}
	for i, c := range columns {
		if i+1 < len(columns) && !c.HasFiles && c.Height == 0 && len(c.Rows) == 0 {
			starts = append(starts, i+1)
		}
	}
	return starts
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)
