package session

import "github.com/rit-tui/rit/internal/models"

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Mode           Mode
	Branch         string
	Detached       bool
	Records        []models.ChangeRecord
	Cursor         int
	Message        string
	Buffer         string // buffer view, compose mode only
	LastError      string
	Fatal          string
	PendingDiscard string
	CanCommit      bool
	ShouldExit     bool

	Staged    int
	Dirty     int
	Untracked int
}

// Selected returns the record under the cursor.
func (s Snapshot) Selected() (models.ChangeRecord, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Records) {
		return models.ChangeRecord{}, false
	}
	return s.Records[s.Cursor], true
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Mode:           m.mode,
		Branch:         m.branch,
		Detached:       m.fatal == nil && m.branch == "",
		Records:        m.changes.Records(),
		Cursor:         m.cursor,
		PendingDiscard: m.pendingDiscard,
		CanCommit:      m.changes.AnyStaged(),
		ShouldExit:     m.shouldExit,
	}
	s.Staged, s.Dirty, s.Untracked = m.changes.Counts()
	if m.buffer != nil {
		s.Message = m.buffer.Value()
		s.Buffer = m.buffer.View()
	}
	if m.lastErr != nil {
		s.LastError = m.lastErr.Error()
	}
	if m.fatal != nil {
		s.Fatal = m.fatal.Error()
	}
	return s
}
