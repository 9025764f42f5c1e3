// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the madhwagpt TUI.

All base colors use Lip Gloss AdaptiveColor for automatic light/dark
terminal detection. Eight chat themes recolor the accent and the message
bubbles; the last of them, "Default (No color theme)", renders everything
uncolored.

# Key Types

  - ChatTheme: named accent and bubble palette
  - Theme: every lipgloss.Style the screens use, rebuilt on theme change
  - SpinnerConfig: frame set convertible to a bubbles spinner

# Usage

	ct, err := styles.ThemeByName(cfg.UI.Theme)
	theme := styles.NewTheme(ct)
	fmt.Println(theme.VerseScript.Render(verse.Text()))

	// Live reload
	theme.SetChatTheme(next)
*/
package styles
