// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the madhwagpt command line.
//
// Commands are declared as a kong grammar; each command is a struct whose
// Run method receives the shared *App. With no command the full-screen
// browser starts.
//
// # Key Types
//
//   - CLI: the kong grammar of every command and flag
//   - App: configuration, logger, context and output streams for a run
//   - JSONResponse: the {success, data, error, timestamp, command} envelope
//   - ValidationError, NotFoundError: user errors mapped to exit codes
//
// # Usage
//
//	app := cli.NewApp(cfg, path, log)
//	if err := cli.Execute(app, os.Args[1:]); err != nil {
//	    app.Report(err)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//	madhwagpt [tui]                         full-screen browser and chat
//	madhwagpt ask [--level L] <question>    one question
//	madhwagpt chat [--level L]              line-mode chat
//	madhwagpt works                         the catalog
//	madhwagpt chapters <work> [--page N]    chapters of a work
//	madhwagpt verses <work> <n> [--search]  verses of a chapter
//	madhwagpt verse <work> <n> <key>        one verse
//	madhwagpt details <url>                 a chapter-detail document
//	madhwagpt themes | levels               display choices
//	madhwagpt config show|path|get|init     configuration
//
// Commands that print data accept --json.
package cli
