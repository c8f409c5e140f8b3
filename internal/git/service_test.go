package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rit-tui/rit/internal/models"
)

func TestNewServiceDefaults(t *testing.T) {
	s := NewService("  ", "/tmp/repo")
	assert.Equal(t, DefaultExecutable, s.Executable())
	assert.Equal(t, "/tmp/repo", s.Dir())

	s.SetDir("/elsewhere")
	assert.Equal(t, "/elsewhere", s.Dir())
}

func TestAvailableUsesLookupPath(t *testing.T) {
	orig := LookupPath
	t.Cleanup(func() { LookupPath = orig })

	LookupPath = func(string) (string, error) { return "", errors.New("missing") }
	assert.False(t, NewService("", "").Available())

	LookupPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	assert.True(t, NewService("", "").Available())
}

func TestCurrentBranch(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	branch, err := s.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	runGit(t, repo, "checkout", "-q", "--detach")
	branch, err = s.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Empty(t, branch, "detached HEAD has no branch name")
}

func TestNotARepository(t *testing.T) {
	requireGit(t)
	isolateGitEnv(t)

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	s := NewService("", dir)
	_, err := s.StatusReport(context.Background())
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.NotEqual(t, 0, cmdErr.ExitCode)
	assert.Contains(t, strings.ToLower(err.Error()), "not a git repository")
}

func TestExecutableMissing(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "no-such-git"), t.TempDir())
	_, err := s.CurrentBranch(context.Background())
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.Contains(t, err.Error(), "no-such-git")
}

func TestStatusReportParses(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "tracked.txt", "changed\n")
	writeFile(t, repo, "new.txt", "hello\n")
	writeFile(t, repo, "staged.txt", "staged\n")
	runGit(t, repo, "add", "staged.txt")

	raw, err := s.StatusReport(ctx)
	require.NoError(t, err)

	byPath := recordsByPath(ParseStatus(raw))
	require.Len(t, byPath, 3)
	assert.Equal(t, " M", byPath["tracked.txt"].XY())
	assert.Equal(t, "??", byPath["new.txt"].XY())
	assert.Equal(t, "A ", byPath["staged.txt"].XY())
}

func TestStatusReportRename(t *testing.T) {
	repo := initTestRepo(t)
	s := NewService("", repo)

	runGit(t, repo, "mv", "tracked.txt", "moved.txt")

	raw, err := s.StatusReport(context.Background())
	require.NoError(t, err)
	records := ParseStatus(raw)
	require.Len(t, records, 1)
	assert.Equal(t, "moved.txt", records[0].Path)
	assert.Equal(t, models.Renamed, records[0].Index.Kind)
}

func TestStageIsIdempotent(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "tracked.txt", "changed\n")

	require.NoError(t, s.Stage(ctx, "tracked.txt"))
	once := statusOf(t, s, "tracked.txt")
	require.NoError(t, s.Stage(ctx, "tracked.txt"))
	twice := statusOf(t, s, "tracked.txt")

	assert.Equal(t, once, twice)
	assert.True(t, models.IsStaged(twice))
	assert.False(t, models.IsDirty(twice))
}

func TestUnstage(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "tracked.txt", "changed\n")
	writeFile(t, repo, "new.txt", "hello\n")
	require.NoError(t, s.Stage(ctx, "tracked.txt"))
	require.NoError(t, s.Stage(ctx, "new.txt"))

	require.NoError(t, s.Unstage(ctx, "tracked.txt"))
	require.NoError(t, s.Unstage(ctx, "tracked.txt"), "unstaging twice succeeds")
	require.NoError(t, s.Unstage(ctx, "new.txt"))

	assert.Equal(t, " M", statusOf(t, s, "tracked.txt").XY())
	assert.Equal(t, "??", statusOf(t, s, "new.txt").XY())
}

func TestDiscardWorktreeChanges(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "tracked.txt", "changed\n")
	require.NoError(t, s.DiscardWorktreeChanges(ctx, "tracked.txt"))

	data, err := os.ReadFile(filepath.Join(repo, "tracked.txt"))
	require.NoError(t, err)
	assert.Equal(t, "initial\n", string(data))

	raw, err := s.StatusReport(ctx)
	require.NoError(t, err)
	assert.Empty(t, ParseStatus(raw))
}

func TestDiscardKeepsStagedContent(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "tracked.txt", "staged\n")
	require.NoError(t, s.Stage(ctx, "tracked.txt"))
	writeFile(t, repo, "tracked.txt", "unstaged\n")

	require.NoError(t, s.DiscardWorktreeChanges(ctx, "tracked.txt"))
	data, err := os.ReadFile(filepath.Join(repo, "tracked.txt"))
	require.NoError(t, err)
	assert.Equal(t, "staged\n", string(data))
	assert.Equal(t, "M ", statusOf(t, s, "tracked.txt").XY())
}

func TestPathsThatLookLikeOptions(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "--all", "x\n")
	writeFile(t, repo, "other.txt", "y\n")
	require.NoError(t, s.Stage(ctx, "--all"))
	assert.Equal(t, "A ", statusOf(t, s, "--all").XY())
	assert.Equal(t, "??", statusOf(t, s, "other.txt").XY())

	require.NoError(t, s.Unstage(ctx, "--all"))
	assert.Equal(t, "??", statusOf(t, s, "--all").XY())

	writeFile(t, repo, "--staged", "committed\n")
	runGit(t, repo, "add", "--", "--staged")
	runGit(t, repo, "commit", "-q", "-m", "add --staged")
	writeFile(t, repo, "--staged", "changed\n")
	require.NoError(t, s.DiscardWorktreeChanges(ctx, "--staged"))
	data, err := os.ReadFile(filepath.Join(repo, "--staged"))
	require.NoError(t, err)
	assert.Equal(t, "committed\n", string(data))
}

func TestCommitMultilineMessage(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()
	s := NewService("", repo)

	writeFile(t, repo, "tracked.txt", "changed\n")
	require.NoError(t, s.Stage(ctx, "tracked.txt"))

	message := "Subject with 'quotes' and $VARS\n\nBody line one\nBody line two"
	require.NoError(t, s.Commit(ctx, message))

	assert.Equal(t, message, runGit(t, repo, "log", "-1", "--format=%B"))
	raw, err := s.StatusReport(ctx)
	require.NoError(t, err)
	assert.Empty(t, ParseStatus(raw))
}

func TestCommitEmptyMessage(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "never-run"), t.TempDir())
	for _, msg := range []string{"", "   ", "\n\n"} {
		err := s.Commit(context.Background(), msg)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
}

func TestCommitNothingStaged(t *testing.T) {
	repo := initTestRepo(t)
	s := NewService("", repo)

	err := s.Commit(context.Background(), "nothing here")
	require.Error(t, err)
	assert.NotEmpty(t, err.Error())

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 1, cmdErr.ExitCode)
}

func TestEmptyPathRejected(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "never-run"), "")
	ctx := context.Background()
	assert.ErrorIs(t, s.Stage(ctx, ""), ErrEmptyPath)
	assert.ErrorIs(t, s.Unstage(ctx, " "), ErrEmptyPath)
	assert.ErrorIs(t, s.DiscardWorktreeChanges(ctx, ""), ErrEmptyPath)
}

func TestTopLevelAndGitDir(t *testing.T) {
	repo := initTestRepo(t)
	ctx := context.Background()

	sub := filepath.Join(repo, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	s := NewService("", sub)

	top, err := s.TopLevel(ctx)
	require.NoError(t, err)
	assert.Equal(t, evalPath(t, repo), evalPath(t, top))

	gitDir, err := s.GitDir(ctx)
	require.NoError(t, err)
	assert.Equal(t, evalPath(t, filepath.Join(repo, ".git")), evalPath(t, gitDir))
}

func TestInvalidUTF8StdoutFails(t *testing.T) {
	stub := writeStubGit(t, "printf 'ok\\377\\n'\n")
	s := NewService(stub, t.TempDir())

	_, err := s.StatusReport(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestStderrDecodedLossily(t *testing.T) {
	stub := writeStubGit(t, "printf 'fatal: bad \\377 byte\\n' >&2\nexit 128\n")
	s := NewService(stub, t.TempDir())

	err := s.Stage(context.Background(), "file.txt")
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 128, cmdErr.ExitCode)
	assert.Equal(t, "fatal: bad � byte", err.Error())
}

func TestStubReceivesArgvAndStdin(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "capture")
	stub := writeStubGit(t, "echo \"$@\" > '"+capture+".args'\ncat > '"+capture+".stdin'\n")
	s := NewService(stub, dir)
	ctx := context.Background()

	require.NoError(t, s.Commit(ctx, "line one\nline two"))
	args, err := os.ReadFile(capture + ".args")
	require.NoError(t, err)
	assert.Equal(t, "commit -F -\n", string(args))
	stdin, err := os.ReadFile(capture + ".stdin")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(stdin))

	cases := []struct {
		call func() error
		want string
	}{
		{call: func() error { return s.Stage(ctx, "a b.txt") }, want: "add -- a b.txt\n"},
		{call: func() error { return s.Unstage(ctx, "a.txt") }, want: "restore --staged -- a.txt\n"},
		{call: func() error { return s.DiscardWorktreeChanges(ctx, "a.txt") }, want: "restore -- a.txt\n"},
		{call: func() error { _, err := s.StatusReport(ctx); return err }, want: "status --porcelain=v1\n"},
		{call: func() error { _, err := s.CurrentBranch(ctx); return err }, want: "branch --show-current\n"},
	}
	for _, tc := range cases {
		require.NoError(t, tc.call())
		args, err := os.ReadFile(capture + ".args")
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(args))
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// isolateGitEnv keeps user and system git configuration out of the tests.
func isolateGitEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Rit Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "rit@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Rit Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "rit@example.com")
}

// initTestRepo creates a repository on branch main with one committed file.
func initTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	isolateGitEnv(t)

	repo := t.TempDir()
	runGit(t, repo, "init", "-q")
	runGit(t, repo, "symbolic-ref", "HEAD", "refs/heads/main")
	runGit(t, repo, "config", "commit.gpgsign", "false")
	writeFile(t, repo, "tracked.txt", "initial\n")
	runGit(t, repo, "add", "tracked.txt")
	runGit(t, repo, "commit", "-q", "-m", "initial")
	return repo
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func writeStubGit(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	path := filepath.Join(t.TempDir(), "git")
	script := "#!/bin/sh\n" + body
	// #nosec G306 -- test helper needs an executable stub in a temp dir.
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil {
		t.Fatalf("write stub command: %v", err)
	}
	return path
}

func statusOf(t *testing.T, s *Service, path string) models.ChangeRecord {
	t.Helper()
	raw, err := s.StatusReport(context.Background())
	require.NoError(t, err)
	record, ok := recordsByPath(ParseStatus(raw))[path]
	require.True(t, ok, "no status entry for %s in %q", path, raw)
	return record
}

func recordsByPath(records []models.ChangeRecord) map[string]models.ChangeRecord {
	out := make(map[string]models.ChangeRecord, len(records))
	for _, r := range records {
		out[r.Path] = r
	}
	return out
}

func evalPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
