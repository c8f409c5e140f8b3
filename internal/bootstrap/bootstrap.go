package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rit-tui/rit/internal/app"
	"github.com/rit-tui/rit/internal/buildinfo"
	"github.com/rit-tui/rit/internal/config"
	"github.com/rit-tui/rit/internal/git"
	log "github.com/rit-tui/rit/internal/log"
	"github.com/rit-tui/rit/internal/session"
	"github.com/rit-tui/rit/internal/theme"
	"github.com/rit-tui/rit/internal/watch"
)

// ErrNoTerminal is returned when the TUI is started without a terminal.
var ErrNoTerminal = errors.New("rit needs an interactive terminal; try `rit status`")

var (
	isTerminal = term.IsTerminal
	runProgram = func(ctx context.Context, model *app.Model) error {
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		return err
	}
)

// NewCommand returns the root rit command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "rit",
		Usage:   "Stage, unstage and commit from the terminal",
		Version: buildinfo.Version(),
		Flags:   globalFlags(),

		EnableShellCompletion: true,

		Commands: []*urfavecli.Command{
			statusCommand(),
			versionCommand(),
		},
		Action: runTUI,
	}
}

// Run parses args and executes the matching command.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(ctx context.Context, cmd *urfavecli.Command) error {
	defer func() {
		_ = log.Close()
	}()

	if !isTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	debugLogFlag := cmd.String("debug-log")
	if debugLogFlag != "" {
		openDebugLog(debugLogFlag)
	}

	repo, err := repoPath(cmd.String("repo"))
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: cmd.String("config-file"),
		RepoPath:   repo,
		Overrides:  cmd.StringSlice("config"),
		Theme:      cmd.String("theme"),
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// If debug log wasn't set via flag, check if it's in the config
	if debugLogFlag == "" {
		if cfg.DebugLog != "" {
			openDebugLog(cfg.DebugLog)
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	}
	if cmd.Bool("no-auto-refresh") {
		cfg.AutoRefresh = false
	}

	svc := openRepository(ctx, cfg, repo)

	var watcher *watch.Service
	if cfg.AutoRefresh {
		if gitDir, err := svc.GitDir(ctx); err == nil {
			watcher = watch.New(gitDir)
		} else {
			log.Printf("auto refresh unavailable: %v", err)
		}
	}

	theme.InitColorProfile()

	model := app.NewModel(cfg, svc, watcher, session.WithContext(ctx))
	// a failed start is shown by the TUI itself
	_ = model.Start()

	err = runProgram(ctx, model)
	model.Close()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// openRepository returns a git service rooted at the repository top level so
// status paths and pathspecs agree. Outside a repository the service keeps
// repo as its directory and the session reports the failure.
func openRepository(ctx context.Context, cfg *config.AppConfig, repo string) *git.Service {
	svc := git.NewService(cfg.GitExecutable, repo)
	top, err := svc.TopLevel(ctx)
	if err != nil {
		log.Printf("resolve top level of %s: %v", repo, err)
		return svc
	}
	svc.SetDir(top)
	return svc
}

func repoPath(flag string) (string, error) {
	if flag == "" {
		flag = "."
	}
	expanded, err := config.ExpandPath(flag)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("open repository: %s is not a directory", abs)
	}
	return abs, nil
}

func openDebugLog(path string) {
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}
