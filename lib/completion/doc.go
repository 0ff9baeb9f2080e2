// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package completion implements path and command completion for the
// launcher's text box.
//
// The text box holds a shell-like command line in which spaces inside a
// word are escaped with a backslash. Completion works on the word under
// the cursor (the token). A token starting with "/" or "~" is a path
// token: everything up to its last separator names a directory, and the
// remainder is the search fragment being typed. Any other token is a
// command token, searched for in the configured binaries directory.
//
// The engine keeps no state of its own between keystrokes. Each call
// re-derives the token from the text and cursor and asks the directory
// cache for the listing, which is a cheap lookup after the first visit.
// The "trailing" count carried through [Enumeration], [Engine.Complete]
// and [Result] is the number of characters at the end of the token that
// still act as a filter against that listing. Zero means the token ends
// at a directory boundary and the next keystroke starts a fresh search.
//
// [Engine.AutoComplete] is the Tab key: it extends the token by the
// longest prefix shared by every matching entry, and when exactly one
// entry matches and it is a directory, it appends a separator so the
// next Tab descends into it. [Engine.Select] applies a pick from the
// candidate list built by [Engine.Menu].
package completion
