package git

import (
	"strconv"
	"strings"

	"github.com/rit-tui/rit/internal/models"
)

const renameSeparator = " -> "

// ParseStatus turns `git status --porcelain=v1` output into change records,
// preserving input order. Lines shorter than four bytes are skipped. The path
// field is trimmed; for renames and copies only the destination is kept.
func ParseStatus(raw string) []models.ChangeRecord {
	lines := strings.Split(raw, "\n")
	records := make([]models.ChangeRecord, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if len(line) < 4 {
			continue
		}

		path := line[3:]
		if idx := strings.Index(path, renameSeparator); idx >= 0 {
			path = path[idx+len(renameSeparator):]
		}
		path = strings.TrimSpace(path)

		records = append(records, models.ChangeRecord{
			Path:     unquotePath(path),
			Index:    models.StatusFromGlyph(line[0]),
			Worktree: models.StatusFromGlyph(line[1]),
		})
	}
	return records
}

// unquotePath undoes git's C-style quoting of paths with special characters.
// Octal escapes map to raw bytes, the same way git produced them.
func unquotePath(path string) string {
	if len(path) < 2 || path[0] != '"' || path[len(path)-1] != '"' {
		return path
	}
	unquoted, err := strconv.Unquote(path)
	if err != nil {
		return path
	}
	return unquoted
}
