// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pathresolve turns what the user typed into filesystem paths.
//
// [Resolver.HomeDirectory] finds the home directory once ($HOME, then
// the account database) and keeps it in arena memory.
// [Resolver.Desugar] expands a leading ~ and strips backslash escapes,
// so "~/My\ Files" becomes "/home/user/My Files". Results live in the
// resolver's own arena handle and are never freed before process exit.
//
// [Resolver.FindExecutable] validates a command name against $PATH
// using cached directory listings (any [EntryLister]) and classifies
// failures as [ErrNotFound], [ErrNotRegularFile] or
// [ErrNoExecutePermission], wrapped in an [ExecutableError] that
// carries the name for display.
package pathresolve
