// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal rendering pieces of the launcher:
// the colour theme, the candidate menu and its scrollbar, and small
// ANSI-aware text helpers. Built on lipgloss with colours degraded to
// whatever the terminal's termenv profile supports.
//
// The package draws; it does not handle input. The bubbletea model in
// lib/launcherui owns the text box state and calls into [Menu] to move
// the selection and render the candidate list.
package tui
