package bootstrap

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/rit-tui/rit/internal/buildinfo"
	"github.com/rit-tui/rit/internal/changes"
	"github.com/rit-tui/rit/internal/config"
	log "github.com/rit-tui/rit/internal/log"
	"github.com/rit-tui/rit/internal/models"
)

func statusCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "status",
		Aliases: []string{"st"},
		Usage:   "Print the change list as `XY path` lines",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "staged",
				Aliases: []string{"s"},
				Usage:   "Only records with staged changes",
			},
			&urfavecli.BoolFlag{
				Name:    "dirty",
				Aliases: []string{"d"},
				Usage:   "Only records with unstaged worktree changes",
			},
		},
		Action: handleStatusAction,
	}
}

func versionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, buildinfo.Summary())
			return err
		},
	}
}

// handleStatusAction handles the status subcommand action.
func handleStatusAction(ctx context.Context, cmd *urfavecli.Command) error {
	defer func() {
		_ = log.Close()
	}()
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		openDebugLog(debugLog)
	} else {
		_ = log.SetFile("")
	}

	repo, err := repoPath(cmd.String("repo"))
	if err != nil {
		return err
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:         cmd.String("config-file"),
		RepoPath:           repo,
		Overrides:          cmd.StringSlice("config"),
		SkipThemeDetection: true,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc := openRepository(ctx, cfg, repo)
	raw, err := svc.StatusReport(ctx)
	if err != nil {
		return err
	}

	var list changes.Model
	records := filterRecords(list.Refresh(raw), cmd.Bool("staged"), cmd.Bool("dirty"))
	out := cmd.Root().Writer
	for _, r := range records {
		if _, err := fmt.Fprintf(out, "%s %s\n", r.XY(), r.Path); err != nil {
			return err
		}
	}
	return nil
}

// filterRecords keeps records matching any requested filter, or all records
// when no filter is set.
func filterRecords(records []models.ChangeRecord, staged, dirty bool) []models.ChangeRecord {
	if !staged && !dirty {
		return records
	}
	out := records[:0]
	for _, r := range records {
		if (staged && models.IsStaged(r)) || (dirty && models.IsDirty(r)) {
			out = append(out, r)
		}
	}
	return out
}
