// Package main is the entry point for the rit application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rit-tui/rit/internal/bootstrap"
	"github.com/rit-tui/rit/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := bootstrap.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rit: %v\n", err)
		os.Exit(1)
	}
}
