// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/madhwagpt-tui/internal/config"
)

// ConfigCmd groups the config subcommands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Print the effective configuration as TOML."`
	Path ConfigPathCmd `cmd:"" help:"Print the config file path."`
	Get  ConfigGetCmd  `cmd:"" help:"Print one value, e.g. ui.theme."`
	Init ConfigInitCmd `cmd:"" help:"Write the default configuration file."`
}

// ConfigShowCmd prints the effective configuration.
type ConfigShowCmd struct {
	JSON bool `help:"Output as JSON."`
}

// Run prints defaults, file and environment merged.
func (c *ConfigShowCmd) Run(app *App) error {
	if c.JSON {
		values := make(map[string]interface{})
		for _, key := range config.Keys() {
			v, err := app.Config.Get(key)
			if err != nil {
				return err
			}
			if d, ok := v.(time.Duration); ok {
				v = d.String()
			}
			values[key] = v
		}
		return app.writeJSON(values)
	}
	app.printf("%s", app.Config.String())
	return nil
}

// ConfigPathCmd prints the config file path.
type ConfigPathCmd struct{}

// Run prints the path and whether the file exists.
func (c *ConfigPathCmd) Run(app *App) error {
	app.printf("%s\n", app.ConfigPath)
	if _, err := os.Stat(app.ConfigPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(app.Err, DimStyle.Render("(file does not exist, defaults apply; create it with: madhwagpt config init)"))
	}
	return nil
}

// ConfigGetCmd prints one value.
type ConfigGetCmd struct {
	Key string `arg:"" help:"Dotted key such as api.timeout or chat.level."`
}

// Run looks the key up, suggesting the nearest known key on a miss.
func (c *ConfigGetCmd) Run(app *App) error {
	v, err := app.Config.Get(c.Key)
	if err != nil {
		return NewNotFoundError("config key", c.Key, config.Keys())
	}
	app.printf("%v\n", v)
	return nil
}

// ConfigInitCmd writes the defaults to the config file.
type ConfigInitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file."`
}

// Run refuses to overwrite an existing file unless --force is given.
func (c *ConfigInitCmd) Run(app *App) error {
	path := app.ConfigPath
	if _, err := os.Stat(path); err == nil && !c.Force {
		return NewValidationErrorWithExample("config", path, "file already exists", "madhwagpt config init --force")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	app.printf("%s\n", SuccessStyle.Render("[OK] Wrote "+path))
	return nil
}
