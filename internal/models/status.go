package models

// ChangeRecord is one entry of the working tree change report. For renames
// and copies Path is the destination.
type ChangeRecord struct {
	Path     string
	Index    ChangeStatus // last commit vs staging area
	Worktree ChangeStatus // staging area vs file on disk
}

// IsStaged reports whether the record has changes recorded in the index.
func IsStaged(r ChangeRecord) bool {
	return r.Index.Kind != Unmodified && r.Index.Kind != Untracked
}

// IsDirty reports whether the file on disk differs from the index.
func IsDirty(r ChangeRecord) bool {
	return r.Worktree.Kind != Unmodified && r.Worktree.Kind != Untracked
}

// IsUntracked reports whether git does not track the file yet.
func IsUntracked(r ChangeRecord) bool {
	return r.Index.Kind == Untracked && r.Worktree.Kind == Untracked
}

// XY returns the two-character porcelain code of the record.
func (r ChangeRecord) XY() string {
	return r.Index.String() + r.Worktree.String()
}
