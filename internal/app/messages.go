package app

// gitDirChangedMsg reports activity in the repository's git directory.
type gitDirChangedMsg struct{}
