// madhwagpt - Dvaita Vedanta scriptures and questions in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jeranaias/madhwagpt-tui/internal/cli"
	"github.com/jeranaias/madhwagpt-tui/internal/config"
	"github.com/jeranaias/madhwagpt-tui/internal/logging"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

// configPathEnv overrides the config file location.
const configPathEnv = "MADHWAGPT_CONFIG"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is normal; anything it sets is picked up as MADHWAGPT_*.
	_ = godotenv.Load()

	path := os.Getenv(configPathEnv)
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return cli.ExitConfigError
		}
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return cli.ExitConfigError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, path, logging.New(cfg.Log, os.Stderr))
	app.Ctx = ctx
	if err := cli.Execute(app, os.Args[1:]); err != nil {
		app.Report(err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
