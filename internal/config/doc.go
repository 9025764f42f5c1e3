// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for madhwagpt.
//
// There is no global configuration: main loads a *Config once and passes it
// to the packages that need it.
//
// # Key Types
//
//   - Config: root structure with [api], [chat], [ui] and [log] sections
//   - ValidationError / ValidateErrors: every invalid field, reported together
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MADHWAGPT_API_QUERY_URL, MADHWAGPT_UI_THEME, ...)
//   - ~/.madhwagpt/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := api.NewClient(cfg.ClientConfig())
//
// Reload while the TUI runs:
//
//	err := config.Watch(ctx, path, func(c *config.Config) {
//	    program.Send(browser.ConfigReloadedMsg{Config: c})
//	}, nil)
package config
