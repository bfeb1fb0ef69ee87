package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/flextile/internal/ipc"
	"github.com/1broseidon/flextile/internal/wm"
)

// keyCommands maps watch-view keys to layout commands. They act on the
// daemon's active display, like the global hotkeys do.
var keyCommands = map[string]string{
	"h": "focus left", "left": "focus left",
	"j": "focus down", "down": "focus down",
	"k": "focus up", "up": "focus up",
	"l": "focus right", "right": "focus right",
	"H": "move left", "shift+left": "move left",
	"J": "move down", "shift+down": "move down",
	"K": "move up", "shift+up": "move up",
	"L": "move right", "shift+right": "move right",
	"n": "focus next",
	"p": "focus previous",
	"+": "grow 50", "=": "grow 50",
	"-": "grow -50",
	"0": "reset-size",
	"m": "minimize",
	"b": "mode horizontal",
	"v": "mode vertical",
	"r": "retile",
}

type treeMsg struct {
	data *ipc.TreeData
	err  error
}

type tickMsg time.Time

type execMsg struct {
	command string
	err     error
}

// model is the root bubbletea model for the watch view.
type model struct {
	client   Daemon
	interval time.Duration

	displays  []wm.DisplayState
	selected  int
	connected bool
	debug     bool
	lastErr   string

	// Terminal dimensions
	width  int
	height int
}

func newModel(client Daemon, interval time.Duration) model {
	if interval <= 0 {
		interval = time.Second
	}
	return model{client: client, interval: interval}
}

func (m model) fetch() tea.Cmd {
	client, debug := m.client, m.debug
	return func() tea.Msg {
		data, err := client.GetTree(debug)
		return treeMsg{data: data, err: err}
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) exec(command string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return execMsg{command: command, err: client.Exec(command)}
	}
}

// current returns the selected display, if any.
func (m model) current() *wm.DisplayState {
	if m.selected < 0 || m.selected >= len(m.displays) {
		return nil
	}
	return &m.displays[m.selected]
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())

	case treeMsg:
		if msg.err != nil {
			m.connected = false
			m.displays = nil
			return m, nil
		}
		m.connected = true
		m.displays = msg.data.Displays
		if m.selected >= len(m.displays) {
			m.selected = max(len(m.displays)-1, 0)
		}
		return m, nil

	case execMsg:
		if msg.err != nil {
			m.lastErr = fmt.Sprintf("%s: %v", msg.command, msg.err)
		} else {
			m.lastErr = ""
		}
		return m, m.fetch()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "tab":
			if len(m.displays) > 0 {
				m.selected = (m.selected + 1) % len(m.displays)
			}
			return m, nil

		case "shift+tab":
			if len(m.displays) > 0 {
				m.selected = (m.selected - 1 + len(m.displays)) % len(m.displays)
			}
			return m, nil

		case "d":
			m.debug = !m.debug
			return m, m.fetch()
		}

		if command, ok := keyCommands[key]; ok {
			if !m.connected {
				m.lastErr = "daemon not running"
				return m, nil
			}
			return m, m.exec(command)
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	display := m.current()
	statusBar := renderStatusBar(m.connected, display, m.width)
	displayBar := renderDisplayBar(m.displays, m.selected, m.width)
	helpBar := renderHelpBar(m.width, m.lastErr)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(displayBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case !m.connected:
		content = renderPlaceholder("waiting for the flextile daemon…", m.width, contentHeight)
	case display == nil:
		content = renderPlaceholder("no displays", m.width, contentHeight)
	default:
		content = m.renderDisplay(*display, contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		displayBar,
		content,
		helpBar,
	)
}

func (m model) renderDisplay(d wm.DisplayState, height int) string {
	summary := summarizeDisplay(d)
	for _, w := range d.Windows {
		if w.Focused {
			summary += "  " + focusedTileStyle.Render(fmt.Sprintf("focused: %s", tileLabel(w)))
		}
	}

	canvasHeight := height - 1
	var debugLines []string
	if m.debug && d.Debug != "" {
		debugLines = strings.Split(strings.TrimRight(d.Debug, "\n"), "\n")
		canvasHeight -= len(debugLines)
	}
	if canvasHeight < 3 {
		canvasHeight = 3
	}

	lines := []string{summary}
	lines = append(lines, renderDisplayPreview(d, m.width, canvasHeight)...)
	lines = append(lines, debugLines...)
	return lipgloss.NewStyle().MaxHeight(height).Render(strings.Join(lines, "\n"))
}
