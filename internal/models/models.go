// Package models defines the data objects shared across rit packages.
package models

// StatusKind classifies one axis of a porcelain status entry.
type StatusKind uint8

// Status kinds reported by git for either the index or the worktree axis.
const (
	Unmodified StatusKind = iota
	Modified
	Added
	Deleted
	Renamed
	Copied
	Unmerged
	Untracked
	Other
)

// String returns a human-readable name for the kind.
func (k StatusKind) String() string {
	switch k {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	case Copied:
		return "copied"
	case Unmerged:
		return "unmerged"
	case Untracked:
		return "untracked"
	default:
		return "other"
	}
}

// ChangeStatus is the state of one axis of a changed file. Glyph keeps the
// character git printed, so an Other status still knows what it was.
type ChangeStatus struct {
	Kind  StatusKind
	Glyph byte
}

// StatusFromGlyph maps a porcelain status character to a ChangeStatus.
// Characters outside the known table become Other with the glyph preserved.
func StatusFromGlyph(c byte) ChangeStatus {
	kind := Other
	switch c {
	case ' ':
		kind = Unmodified
	case 'M':
		kind = Modified
	case 'A':
		kind = Added
	case 'D':
		kind = Deleted
	case 'R':
		kind = Renamed
	case 'C':
		kind = Copied
	case 'U':
		kind = Unmerged
	case '?':
		kind = Untracked
	}
	return ChangeStatus{Kind: kind, Glyph: c}
}

// String renders the status as its porcelain character.
func (s ChangeStatus) String() string {
	if s.Glyph == 0 {
		return " "
	}
	return string(s.Glyph)
}
