// Package session implements the browse/compose state machine driving rit.
package session

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rit-tui/rit/internal/changes"
	"github.com/rit-tui/rit/internal/git"
	log "github.com/rit-tui/rit/internal/log"
	"github.com/rit-tui/rit/internal/models"
)

// Mode is the interaction mode of a session.
type Mode int

// Session modes.
const (
	ModeBrowse Mode = iota
	ModeComposeCommit
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeComposeCommit:
		return "compose"
	default:
		return "unknown"
	}
}

// NoSelection is the cursor value when the list is empty.
const NoSelection = -1

// Bridge is the set of git operations the machine drives.
type Bridge interface {
	CurrentBranch(ctx context.Context) (string, error)
	StatusReport(ctx context.Context) (string, error)
	Stage(ctx context.Context, path string) error
	Unstage(ctx context.Context, path string) error
	DiscardWorktreeChanges(ctx context.Context, path string) error
	Commit(ctx context.Context, message string) error
}

// Option configures a Machine.
type Option func(*Machine)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Machine) { m.keys = km }
}

// WithBufferFactory sets the constructor used for each new commit message buffer.
func WithBufferFactory(fn func() Buffer) Option {
	return func(m *Machine) {
		if fn != nil {
			m.newBuffer = fn
		}
	}
}

// WithContext sets the context passed to bridge calls.
func WithContext(ctx context.Context) Option {
	return func(m *Machine) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// Machine owns the session state. It is not safe for concurrent use; a
// single caller dispatches every event.
type Machine struct {
	ctx       context.Context
	bridge    Bridge
	keys      KeyMap
	newBuffer func() Buffer

	changes changes.Model
	mode    Mode
	branch  string
	cursor  int
	buffer  Buffer

	lastErr        error
	fatal          error
	pendingDiscard string
	shouldExit     bool
}

// New constructs a machine in browse mode with an empty list. Call Start
// before the first render.
func New(bridge Bridge, opts ...Option) *Machine {
	m := &Machine{
		ctx:       context.Background(),
		bridge:    bridge,
		keys:      DefaultKeyMap(),
		newBuffer: NewTextBuffer,
		cursor:    NoSelection,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start performs the initial branch and status query. On failure the session
// enters the fatal state where only quit is accepted.
func (m *Machine) Start() error {
	if err := m.reload(); err != nil {
		log.Printf("session: startup failed: %v", err)
		m.fatal = err
		return err
	}
	log.Printf("session: started on %q with %d records", m.branch, m.changes.Len())
	return nil
}

// HandleKey dispatches one key event. The returned command comes from the
// message buffer, if any.
func (m *Machine) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if m.shouldExit {
		return nil
	}
	if m.fatal != nil || m.pendingDiscard != "" {
		if key.Matches(msg, m.keys.Quit) {
			m.Quit()
		}
		return nil
	}
	if m.mode == ModeComposeCommit {
		return m.handleComposeKey(msg)
	}
	m.handleBrowseKey(msg)
	return nil
}

func (m *Machine) handleBrowseKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quit()
	case key.Matches(msg, m.keys.Down):
		m.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.MoveUp()
	case key.Matches(msg, m.keys.Select):
		m.ToggleStage()
	case key.Matches(msg, m.keys.Refresh):
		m.Refresh()
	case key.Matches(msg, m.keys.Commit):
		m.EnterCompose()
	case key.Matches(msg, m.keys.Discard):
		m.RequestDiscard()
	}
}

func (m *Machine) handleComposeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.Quit()
	case key.Matches(msg, m.keys.Cancel):
		m.CancelCompose()
	case key.Matches(msg, m.keys.Submit):
		m.SubmitCommit()
	default:
		return m.buffer.Update(msg)
	}
	return nil
}

// Quit requests the session to end. No transition happens afterwards.
func (m *Machine) Quit() {
	m.shouldExit = true
}

// MoveDown advances the cursor, wrapping to the first record.
func (m *Machine) MoveDown() {
	if n := m.changes.Len(); n > 0 {
		m.cursor = (m.cursor + 1) % n
	}
}

// MoveUp moves the cursor back, wrapping to the last record.
func (m *Machine) MoveUp() {
	if n := m.changes.Len(); n > 0 {
		m.cursor = (m.cursor - 1 + n) % n
	}
}

// Refresh re-queries branch and status. On failure the list and cursor are
// left as they were and the error is recorded.
func (m *Machine) Refresh() {
	if m.fatal != nil || m.shouldExit {
		return
	}
	if err := m.reload(); err != nil {
		log.Printf("session: refresh failed: %v", err)
		m.lastErr = err
		return
	}
	m.lastErr = nil
}

// Sync is Refresh for changes the operator did not make, such as a watcher
// event. A success keeps the last error on screen.
func (m *Machine) Sync() {
	if m.fatal != nil || m.shouldExit {
		return
	}
	if err := m.reload(); err != nil {
		log.Printf("session: background refresh failed: %v", err)
		m.lastErr = err
	}
}

// ToggleStage stages the selected record, or unstages it when it is staged.
func (m *Machine) ToggleStage() {
	if m.mode != ModeBrowse {
		return
	}
	record, ok := m.changes.At(m.cursor)
	if !ok {
		return
	}

	var err error
	if models.IsStaged(record) {
		log.Printf("session: unstage %s", record.Path)
		err = m.bridge.Unstage(m.ctx, record.Path)
	} else {
		log.Printf("session: stage %s", record.Path)
		err = m.bridge.Stage(m.ctx, record.Path)
	}
	if err != nil {
		m.lastErr = err
		return
	}
	m.Refresh()
}

// EnterCompose switches to compose mode with an empty buffer. It does nothing
// unless at least one record is staged.
func (m *Machine) EnterCompose() {
	if m.mode != ModeBrowse || !m.changes.AnyStaged() {
		return
	}
	m.mode = ModeComposeCommit
	m.buffer = m.newBuffer()
	m.lastErr = nil
}

// CancelCompose drops the message and returns to browse mode.
func (m *Machine) CancelCompose() {
	if m.mode != ModeComposeCommit {
		return
	}
	m.mode = ModeBrowse
	m.buffer = nil
	m.lastErr = nil
}

// SubmitCommit commits the buffered message. On failure the session stays in
// compose mode with the buffer intact.
func (m *Machine) SubmitCommit() {
	if m.mode != ModeComposeCommit {
		return
	}
	message := m.buffer.Value()
	if strings.TrimSpace(message) == "" {
		m.lastErr = git.ErrEmptyMessage
		return
	}
	if err := m.bridge.Commit(m.ctx, message); err != nil {
		log.Printf("session: commit failed: %v", err)
		m.lastErr = err
		return
	}
	log.Printf("session: committed")
	m.mode = ModeBrowse
	m.buffer = nil
	m.lastErr = nil
	m.Refresh()
}

// RequestDiscard marks the selected record for discarding when it has
// worktree changes. Nothing runs until ConfirmDiscard.
func (m *Machine) RequestDiscard() {
	if m.mode != ModeBrowse {
		return
	}
	record, ok := m.changes.At(m.cursor)
	if !ok || !models.IsDirty(record) {
		return
	}
	m.pendingDiscard = record.Path
}

// ConfirmDiscard reverts the worktree changes of the pending record.
func (m *Machine) ConfirmDiscard() {
	path := m.pendingDiscard
	if path == "" {
		return
	}
	m.pendingDiscard = ""
	log.Printf("session: discard %s", path)
	if err := m.bridge.DiscardWorktreeChanges(m.ctx, path); err != nil {
		m.lastErr = err
		return
	}
	m.Refresh()
}

// CancelDiscard drops the pending discard.
func (m *Machine) CancelDiscard() {
	m.pendingDiscard = ""
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Fatal returns the startup error, or nil.
func (m *Machine) Fatal() error {
	return m.fatal
}

// PendingDiscard returns the path awaiting confirmation, if any.
func (m *Machine) PendingDiscard() string {
	return m.pendingDiscard
}

// ShouldExit reports whether quit was requested.
func (m *Machine) ShouldExit() bool {
	return m.shouldExit
}

// Keys returns the active key bindings.
func (m *Machine) Keys() KeyMap {
	return m.keys
}

// reload replaces branch, list and cursor only when both queries succeed.
func (m *Machine) reload() error {
	branch, err := m.bridge.CurrentBranch(m.ctx)
	if err != nil {
		return err
	}
	raw, err := m.bridge.StatusReport(m.ctx)
	if err != nil {
		return err
	}
	m.branch = branch
	m.changes.Refresh(raw)
	m.clampCursor()
	return nil
}

func (m *Machine) clampCursor() {
	n := m.changes.Len()
	switch {
	case n == 0:
		m.cursor = NoSelection
	case m.cursor == NoSelection:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	}
}
