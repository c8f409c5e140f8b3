// Package app wires the session state machine into a Bubble Tea program.
package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rit-tui/rit/internal/app/screen"
	"github.com/rit-tui/rit/internal/config"
	log "github.com/rit-tui/rit/internal/log"
	"github.com/rit-tui/rit/internal/session"
	"github.com/rit-tui/rit/internal/theme"
	"github.com/rit-tui/rit/internal/watch"
)

var _ session.Buffer = (*screen.MessageEditor)(nil)

// Model is the Bubble Tea model of a rit session.
type Model struct {
	config  *config.AppConfig
	theme   *theme.Theme
	machine *session.Machine
	watcher *watch.Service
	screens *screen.Manager
	help    help.Model
	editor  *screen.MessageEditor

	width    int
	height   int
	offset   int // first visible row of the change list
	quitting bool
}

// NewModel builds the model around bridge. The watcher may be nil, in which
// case the list only refreshes on demand.
func NewModel(cfg *config.AppConfig, bridge session.Bridge, watcher *watch.Service, opts ...session.Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	thm := theme.GetTheme(cfg.Theme)

	m := &Model{
		config:  cfg,
		theme:   thm,
		watcher: watcher,
		screens: screen.NewManager(),
		help:    newHelp(thm),
	}
	opts = append(opts, session.WithBufferFactory(m.newEditor))
	m.machine = session.New(bridge, opts...)
	return m
}

func newHelp(thm *theme.Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(thm.MutedFg)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(thm.Border)
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(thm.MutedFg)
	return h
}

// Start loads the branch and change list. A failure leaves the model in its
// fatal state, which only accepts quit.
func (m *Model) Start() error {
	err := m.machine.Start()
	if err != nil {
		log.Printf("session start failed: %v", err)
	}
	return err
}

// Machine exposes the session state machine.
func (m *Model) Machine() *session.Machine {
	return m.machine
}

// Init starts watching the git directory when auto refresh is enabled.
func (m *Model) Init() tea.Cmd {
	return m.startGitWatcher()
}

// Update routes messages to the overlay, the session or the watcher loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.editor != nil {
			m.editor.SetSize(m.editorSize())
		}
		if hs, ok := m.screens.Current().(*screen.HelpScreen); ok {
			hs.SetSize(m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case gitDirChangedMsg:
		return m.handleGitDirChanged()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screens.IsActive() && msg.String() == "ctrl+c":
		m.screens.Close()
		m.machine.Quit()
	case m.screens.IsActive():
		cmd = m.screens.Update(msg)
	case m.canShowHelp() && key.Matches(msg, m.machine.Keys().Help):
		m.showHelp()
	default:
		cmd = m.machine.HandleKey(msg)
		if path := m.machine.PendingDiscard(); path != "" {
			m.showDiscardConfirm(path)
		}
	}

	if m.machine.ShouldExit() {
		return m, m.quit()
	}
	return m, cmd
}

func (m *Model) canShowHelp() bool {
	return m.machine.Mode() == session.ModeBrowse && m.machine.Fatal() == nil
}

func (m *Model) showHelp() {
	keys := m.machine.Keys()
	sections := []screen.HelpSection{
		{Title: "Changes", Bindings: keys.ShortHelp()},
		{Title: "Commit message", Bindings: keys.ComposeHelp()},
	}
	m.screens.Set(screen.NewHelpScreen(sections, m.width, m.height, m.theme))
}

func (m *Model) showDiscardConfirm(path string) {
	dlg := screen.NewConfirmScreen("Discard worktree changes?", path, m.theme)
	dlg.ConfirmLabel = "[y] Discard"
	dlg.CancelLabel = "[n] Keep"
	dlg.OnConfirm = func() tea.Cmd {
		m.machine.ConfirmDiscard()
		return nil
	}
	dlg.OnCancel = func() tea.Cmd {
		m.machine.CancelDiscard()
		return nil
	}
	m.screens.Set(dlg)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

// Close stops background watchers.
func (m *Model) Close() {
	m.stopGitWatcher()
}

func (m *Model) newEditor() session.Buffer {
	w, h := m.editorSize()
	m.editor = screen.NewMessageEditor(w, h, m.theme)
	return m.editor
}

// editorSize leaves room for the header, the compose title, the error line
// and the help footer.
func (m *Model) editorSize() (int, int) {
	return m.width - 4, m.height - 8
}
