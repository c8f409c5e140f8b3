package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/rit-tui/rit/internal/config"
)

var errBoom = errors.New("boom")

// stubBridge answers from fixed fields and records mutations.
type stubBridge struct {
	branch    string
	status    string
	branchErr error
	stageErr  error

	staged    []string
	unstaged  []string
	discarded []string
	commits   []string
}

func (b *stubBridge) CurrentBranch(context.Context) (string, error) {
	return b.branch, b.branchErr
}

func (b *stubBridge) StatusReport(context.Context) (string, error) {
	return b.status, nil
}

func (b *stubBridge) Stage(_ context.Context, path string) error {
	if b.stageErr != nil {
		return b.stageErr
	}
	b.staged = append(b.staged, path)
	return nil
}

func (b *stubBridge) Unstage(_ context.Context, path string) error {
	b.unstaged = append(b.unstaged, path)
	return nil
}

func (b *stubBridge) DiscardWorktreeChanges(_ context.Context, path string) error {
	b.discarded = append(b.discarded, path)
	return nil
}

func (b *stubBridge) Commit(_ context.Context, message string) error {
	b.commits = append(b.commits, message)
	return nil
}

func testConfig() *config.AppConfig {
	cfg := config.DefaultConfig()
	cfg.Theme = "dracula"
	cfg.ShowIcons = false
	cfg.AutoRefresh = false
	return cfg
}

// newStartedModel returns a started, sized model over b.
func newStartedModel(t *testing.T, b *stubBridge) *Model {
	t.Helper()
	m := NewModel(testConfig(), b, nil)
	require.NoError(t, m.Start())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}
