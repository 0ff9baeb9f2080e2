// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package launcherui is the interactive front end of the launcher: a
// single-line text box with a completion menu under it, driven by
// bubbletea.
//
// Every key press re-enumerates the token under the cursor through a
// [completion.Engine] and rebuilds the menu from the matching entries.
// Tab completes as far as the listing allows; Up and Down walk the menu
// and Tab, Right or Enter take the highlighted entry. Enter with no
// entry highlighted hands the text to a [launch.Parser]: a valid
// command ends the program (read it back with [Model.Command]), an
// invalid one is reported under the text box and editing continues.
// Esc clears the menu selection, or quits when there is none.
//
// [TUILogHandler] routes the binary's slog records into the status line
// while the program owns the terminal.
package launcherui
