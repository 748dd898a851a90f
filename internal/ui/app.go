package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wpfeed/internal/config"
	"github.com/five82/wpfeed/internal/feed"
	"github.com/five82/wpfeed/internal/prefs"
	"github.com/five82/wpfeed/internal/state"
)

// ToastDuration is how long bulk-action confirmations stay on screen.
const ToastDuration = 1500 * time.Millisecond

// chromeLines is the header, action bar, spacer and footer around the list.
const chromeLines = 4

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    feed.Source
	Config    *config.Config
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    feed.Source
	title     string
	logFile   string
	prefs     prefs.Prefs
	prefsPath string
	keys      keyMap

	// UI state
	theme  Theme
	help   help.Model
	width  int
	height int
	ready  bool

	// Feed state, owned by this model for the life of the program
	state      state.State
	selected   int
	cardStarts []int
	viewport   viewport.Model
	spinner    spinner.Model

	// Toast
	toast   string
	toastID int

	// Overlays
	showHelp bool
	showLogs bool
	logView  logView
}

// New creates the model with its fetch cycle already started.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	p := opts.Prefs
	if strings.TrimSpace(p.Theme) == "" {
		p = prefs.Defaults()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	theme := GetTheme(p.Theme)
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:       ctx,
		source:    opts.Source,
		title:     cfg.Title,
		logFile:   cfg.LogFile,
		prefs:     p,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     theme,
		help:      help.New(),
		state:     state.Reduce(state.Initial(), state.FetchStart{}),
		spinner:   sp,
	}
}

// State returns the current feed state.
func (m Model) State() state.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.source))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, m.listHeight())
			m.logView.init(m.width, m.height)
		}
		m.ready = true
		m.help.Width = m.width
		m.viewport.Width = m.width
		m.viewport.Height = m.listHeight()
		m.logView.resize(m.width, m.height)
		m.updateViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionMsg:
		m.dispatch(msg.action)
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case logTailMsg:
		m.logView.set(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.spinner.View() + " Cargando..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// dispatch runs an action through the reducer and keeps the selection and
// viewport consistent with the new post list.
func (m *Model) dispatch(a state.Action) {
	m.state = state.Reduce(m.state, a)
	if m.selected >= len(m.state.Posts) {
		m.selected = len(m.state.Posts) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.updateViewport()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, tailCmd(m.logFile)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.showLogs = false
		return m, nil
	}

	if m.showLogs {
		m.logView.handleKey(msg, m.keys)
		return m, nil
	}

	// The list only accepts input once the fetch has settled successfully.
	if m.state.Phase() != state.PhaseSuccess {
		return m, nil
	}
	return m.handleListKey(msg)
}

// handleListKey processes keyboard input for the post list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.state.Posts)

	switch {
	case key.Matches(msg, m.keys.MarkAllRead):
		m.dispatch(state.MarkAllRead{})
		return m.showToast(toastAllRead)

	case key.Matches(msg, m.keys.MarkAllUnread):
		m.dispatch(state.MarkAllUnread{})
		return m.showToast(toastAllUnread)

	case key.Matches(msg, m.keys.Excerpts):
		m.prefs.ShowExcerpts = !m.prefs.ShowExcerpts
		m.savePrefs()
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfPageUp()
		return m, nil
	}

	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleRead):
		m.dispatch(state.ToggleRead{ID: m.state.Posts[m.selected].ID})
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
		m.updateViewport()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.updateViewport()
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.updateViewport()
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
		m.updateViewport()
	}
	return m, nil
}

// showToast displays text and schedules its dismissal. A newer toast
// replaces an older one; the older expiry is then ignored.
func (m Model) showToast(text string) (tea.Model, tea.Cmd) {
	m.toastID++
	m.toast = text
	id := m.toastID
	return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

func (m Model) listHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

// updateViewport re-renders the cards and scrolls the selection into view.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	var rendered string
	rendered, m.cardStarts = m.renderCards(m.width)
	m.viewport.SetContent(rendered)

	if m.selected >= len(m.cardStarts) {
		return
	}
	top := m.cardStarts[m.selected]
	bottom := m.viewport.TotalLineCount()
	if m.selected+1 < len(m.cardStarts) {
		bottom = m.cardStarts[m.selected+1]
	}
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// renderMain renders the header, action bar, list and footer.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	switch m.state.Phase() {
	case state.PhaseLoading, state.PhaseIdle:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+styles.MutedText.Render("Cargando publicaciones..."))
	case state.PhaseError:
		return styles.DangerText.Render("Error: "+m.state.Error) + "\n\n" +
			styles.FaintText.Render(m.help.ShortHelpView([]key.Binding{m.keys.Logs, m.keys.Quit}))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderActions())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderHeader renders the title with the unread count and any toast.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	left := styles.Header.Render(m.title)
	count := styles.MutedText.Render(fmt.Sprintf(" %d/%d sin leer", m.state.UnreadCount(), len(m.state.Posts)))
	line := left + count
	if m.toast != "" {
		gap := m.width - lipgloss.Width(line) - lipgloss.Width(m.toast) - 2
		if gap < 1 {
			gap = 1
		}
		line += strings.Repeat(" ", gap) + styles.Toast.Render(m.toast)
	}
	return line
}

// Messages

type actionMsg struct{ action state.Action }

type toastExpiredMsg struct{ id int }

// Commands

// fetchCmd runs one fetch cycle off the event loop and hands the terminal
// action back as a message, so the reducer only runs inside Update.
func fetchCmd(ctx context.Context, src feed.Source) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return actionMsg{state.FetchError{Message: "no WordPress source configured"}}
		}
		return actionMsg{feed.Load(ctx, src)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// opts.Context stops the program and is not reported as an error.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
