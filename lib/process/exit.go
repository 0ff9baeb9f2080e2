// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry a process exit status,
// such as a launched command's non-zero exit.
type exitCoder interface {
	ExitCode() int
}

// Fatal reports err and exits. See [Report] for the format and status.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w and returns the exit status for it. Errors
// carrying an exit code are not printed (the command that failed has
// already written its own diagnostics) and return that code; every
// other error prints "error: err" and returns 1.
func Report(w io.Writer, err error) int {
	var coded exitCoder
	if errors.As(err, &coded) && coded.ExitCode() > 0 {
		return coded.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
