// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces shared by the TUI screens.
//
// # Key Types
//
//   - ErrorDisplay: dismissible error box; FromError picks a title and hints
//     from the api.ErrorType of a failure
//
// # Usage
//
//	if err != nil {
//	    m.errorDisplay = components.FromError(err)
//	    m.errorDisplay.SetSize(m.width, m.height)
//	}
//	...
//	return m.errorDisplay.View(theme)
package components
