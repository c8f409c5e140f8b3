// Package git runs the git executable on behalf of rit and parses its output.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	log "github.com/rit-tui/rit/internal/log"
)

// DefaultExecutable is the git binary looked up on PATH.
const DefaultExecutable = "git"

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

var (
	// ErrInvalidUTF8 is returned when git succeeds but prints bytes that are not UTF-8.
	ErrInvalidUTF8 = errors.New("output is not valid UTF-8")
	// ErrEmptyMessage is returned by Commit for blank messages.
	ErrEmptyMessage = errors.New("aborting commit due to empty commit message")
	// ErrEmptyPath is returned when a path argument is blank.
	ErrEmptyPath = errors.New("empty path")
)

// CommandError describes a git invocation that could not complete.
type CommandError struct {
	Args     []string
	ExitCode int // -1 when the process never ran
	Stderr   string
	Stdout   string // reported only when stderr is empty
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Stdout != "" {
		return e.Stdout
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s failed (exit %d)", e.command(), e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.command(), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) command() string {
	if len(e.Args) == 0 {
		return "<empty>"
	}
	return strings.Join(e.Args, " ")
}

// Service invokes git for a single working tree. Every call blocks until the
// subprocess exits; nothing is retried.
type Service struct {
	executable string
	dir        string
}

// NewService constructs a Service running executable (git when empty) in dir
// (the process working directory when empty).
func NewService(executable, dir string) *Service {
	executable = strings.TrimSpace(executable)
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Service{executable: executable, dir: dir}
}

// Executable returns the configured git binary.
func (s *Service) Executable() string {
	return s.executable
}

// Dir returns the directory commands run in.
func (s *Service) Dir() string {
	return s.dir
}

// SetDir changes the directory commands run in.
func (s *Service) SetDir(dir string) {
	s.dir = dir
}

// Available reports whether the git executable can be found.
func (s *Service) Available() bool {
	_, err := LookupPath(s.executable)
	return err == nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached.
func (s *Service) CurrentBranch(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "", "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StatusReport returns the raw porcelain v1 status text.
func (s *Service) StatusReport(ctx context.Context) (string, error) {
	return s.run(ctx, "", "status", "--porcelain=v1")
}

// Stage adds path to the index. Staging an already staged path is a no-op.
func (s *Service) Stage(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	_, err := s.run(ctx, "", "add", "--", path)
	return err
}

// Unstage restores the index entry of path from HEAD.
func (s *Service) Unstage(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	_, err := s.run(ctx, "", "restore", "--staged", "--", path)
	return err
}

// DiscardWorktreeChanges reverts path on disk to its index content.
// The change cannot be undone.
func (s *Service) DiscardWorktreeChanges(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	_, err := s.run(ctx, "", "restore", "--", path)
	return err
}

// Commit records the index with message, passed on standard input so it is
// taken literally.
func (s *Service) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	_, err := s.run(ctx, message, "commit", "-F", "-")
	return err
}

// TopLevel returns the absolute path of the working tree root.
func (s *Service) TopLevel(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the absolute path of the repository's git directory.
func (s *Service) GitDir(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "", "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *Service) run(ctx context.Context, stdin string, args ...string) (string, error) {
	argv := append([]string{s.executable}, args...)
	entry := log.WithFields(logrus.Fields{"cmd": strings.Join(argv, " "), "cwd": s.dir})
	entry.Debug("run")
	start := time.Now()

	// #nosec G204 -- arguments are fixed vectors built by this package, never shell interpolated
	cmd := exec.CommandContext(ctx, s.executable, args...)
	if s.dir != "" {
		cmd.Dir = s.dir
	}
	// status must not rewrite the index, or the watcher sees its own refreshes
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdErr := &CommandError{Args: argv, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
			cmdErr.Stderr = lossyText(stderr.Bytes())
			if cmdErr.Stderr == "" {
				cmdErr.Stdout = lossyText(stdout.Bytes())
			}
		}
		entry.WithField("exit", cmdErr.ExitCode).Debugf("error: %v", cmdErr)
		return "", cmdErr
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		entry.Debug("error: stdout is not valid UTF-8")
		return "", fmt.Errorf("%s: %w", strings.Join(argv, " "), ErrInvalidUTF8)
	}
	entry.WithField("elapsed", time.Since(start)).Debug("ok")
	return string(out), nil
}

// lossyText decodes b replacing invalid UTF-8 sequences, trimmed.
func lossyText(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}
