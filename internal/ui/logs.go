package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wpfeed/internal/logtail"
)

// logView shows the tail of the log file the program writes to while the
// terminal is taken over.
type logView struct {
	viewport viewport.Model
	result   logtail.Result
	err      error
	loaded   bool
}

type logTailMsg struct {
	result logtail.Result
	err    error
}

func tailCmd(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := logtail.Tail(path, logtail.DefaultLines)
		return logTailMsg{result: res, err: err}
	}
}

func (v *logView) init(width, height int) {
	v.viewport = viewport.New(width-4, height-4)
	v.viewport.Style = lipgloss.NewStyle()
}

// resize keeps the viewport inside the bordered box: two border lines plus
// the title and footer.
func (v *logView) resize(width, height int) {
	v.viewport.Width = max(width-4, 1)
	v.viewport.Height = max(height-4, 1)
}

func (v *logView) set(msg logTailMsg) {
	v.result = msg.result
	v.err = msg.err
	v.loaded = true
	v.viewport.SetContent(v.content())
	v.viewport.GotoBottom()
}

func (v logView) content() string {
	switch {
	case v.err != nil:
		return "No se pudo leer el registro: " + v.err.Error()
	case v.result.Missing && v.result.Path == "":
		return "Sin archivo de registro. Configura log_file para activarlo."
	case v.result.Missing:
		return "El registro aún no existe: " + v.result.Path
	case len(v.result.Lines) == 0:
		return "El registro está vacío."
	}
	return strings.Join(v.result.Lines, "\n")
}

func (v *logView) handleKey(msg tea.KeyMsg, keys keyMap) {
	switch {
	case key.Matches(msg, keys.Top):
		v.viewport.GotoTop()
	case key.Matches(msg, keys.Bottom):
		v.viewport.GotoBottom()
	case key.Matches(msg, keys.Down):
		v.viewport.ScrollDown(1)
	case key.Matches(msg, keys.Up):
		v.viewport.ScrollUp(1)
	case key.Matches(msg, keys.PageDown):
		v.viewport.HalfPageDown()
	case key.Matches(msg, keys.PageUp):
		v.viewport.HalfPageUp()
	}
}

// renderLogs renders the log view in a bordered box.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := "Registro"
	if m.logView.result.Path != "" {
		title += " · " + m.logView.result.Path
	}
	if m.logView.result.Truncated {
		title += styles.FaintText.Render(" (últimas líneas)")
	}

	body := m.logView.viewport.View()
	if !m.logView.loaded {
		body = m.spinner.View() + " Cargando..."
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(max(m.width-2, 1)).
		Height(max(m.height-3, 1)).
		Render(body)

	footer := m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Logs, m.keys.Quit})
	return styles.Title.Render(title) + "\n" + box + "\n" + footer
}
