// Package changes holds the current list of working tree change records.
package changes

import (
	"github.com/rit-tui/rit/internal/git"
	"github.com/rit-tui/rit/internal/models"
)

// Model owns the ordered change records. The list is only ever replaced as a
// whole; records are never edited in place.
type Model struct {
	records []models.ChangeRecord
}

// Refresh parses raw porcelain status text and makes the result the current
// list. The returned slice is a copy.
func (m *Model) Refresh(raw string) []models.ChangeRecord {
	m.records = git.ParseStatus(raw)
	return m.Records()
}

// Records returns a copy of the current list.
func (m *Model) Records() []models.ChangeRecord {
	out := make([]models.ChangeRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of records.
func (m *Model) Len() int {
	return len(m.records)
}

// At returns the record at index i.
func (m *Model) At(i int) (models.ChangeRecord, bool) {
	if i < 0 || i >= len(m.records) {
		return models.ChangeRecord{}, false
	}
	return m.records[i], true
}

// AnyStaged reports whether at least one record has staged changes.
func (m *Model) AnyStaged() bool {
	for _, r := range m.records {
		if models.IsStaged(r) {
			return true
		}
	}
	return false
}

// Counts returns how many records are staged, dirty and untracked. A record
// with both staged and worktree changes counts in both.
func (m *Model) Counts() (staged, dirty, untracked int) {
	for _, r := range m.records {
		if models.IsUntracked(r) {
			untracked++
			continue
		}
		if models.IsStaged(r) {
			staged++
		}
		if models.IsDirty(r) {
			dirty++
		}
	}
	return staged, dirty, untracked
}
