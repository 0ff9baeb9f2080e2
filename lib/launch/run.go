// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

// Shell runs command lines.
const Shell = "sh"

// ExitError represents a non-zero exit from an attached command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Run executes command through the shell. A daemonized command is
// started in a new session and released: Run returns once it has
// started and ctx does not affect it. An attached command inherits the
// launcher's standard streams and Run waits for it; cancelling ctx
// kills the shell. A non-zero exit is an *ExitError.
func Run(ctx context.Context, command Command, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if command.Daemonize {
		return runDetached(command, logger)
	}
	return runAttached(ctx, command, logger)
}

func runDetached(command Command, logger *slog.Logger) error {
	cmd := exec.Command(Shell, "-c", command.Line)
	// Stdin/Stdout/Stderr stay nil: the child gets /dev/null and
	// nothing ties it to the launcher's terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %q: %w", command.Line, err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("releasing pid %d: %w", pid, err)
	}
	logger.Info("command started", "line", command.Line, "pid", pid, "detached", true)
	return nil
}

func runAttached(ctx context.Context, command Command, logger *slog.Logger) error {
	cmd := exec.CommandContext(ctx, Shell, "-c", command.Line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// The command stays in the launcher's process group, which is the
	// terminal's foreground group: a separate group would be stopped
	// with SIGTTIN on its first read from the terminal.

	logger.Info("command started", "line", command.Line, "detached", false)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) && exitError.ExitCode() > 0 {
		return &ExitError{Code: exitError.ExitCode()}
	}
	return fmt.Errorf("running %q: %w", command.Line, err)
}
