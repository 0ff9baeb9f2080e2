// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the pistachio binary.
// It holds the raw I/O that happens outside the structured logger:
//
//   - Fatal error reporting to stderr, for errors raised before the
//     logger exists or after the terminal UI has released the screen.
//   - Process exit with the status of a launched command, so that
//     running an attached command through the launcher is transparent
//     to the calling shell.
package process
