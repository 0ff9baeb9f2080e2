// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pathresolve

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotFound means no $PATH directory lists the command.
	ErrNotFound = errors.New("command not found")

	// ErrNotRegularFile means the first match is a directory or
	// some other non-regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrNoExecutePermission means the first match is a regular file
	// the current user may not execute.
	ErrNoExecutePermission = errors.New("missing execute permission")
)

// ExecutableError reports why a command name could not be resolved.
// Kind is one of the Err sentinels; errors.Is matches against it.
type ExecutableError struct {
	Name string
	Kind error
}

func (e *ExecutableError) Error() string { return e.Kind.Error() + ": " + e.Name }

func (e *ExecutableError) Unwrap() error { return e.Kind }

// EntryLister returns the entry names of a directory, or nil when the
// directory cannot be read. The directory cache implements it.
type EntryLister interface {
	Names(directory string) []string
}

// FindExecutable checks name against each $PATH directory in order.
// The first directory whose listing contains name decides the outcome:
// the entry must be a regular file the current user can execute.
func (resolver *Resolver) FindExecutable(lister EntryLister, name string) error {
	if name == "" {
		return &ExecutableError{Name: name, Kind: ErrNotFound}
	}

	for _, directory := range strings.Split(os.Getenv("PATH"), ":") {
		if !slices.Contains(lister.Names(directory), name) {
			continue
		}

		file := filepath.Join(directory, name)
		var stat unix.Stat_t
		if err := unix.Stat(file, &stat); err != nil {
			resolver.logger.Debug("listed executable vanished", "path", file, "error", err)
			return &ExecutableError{Name: name, Kind: ErrNotFound}
		}
		if stat.Mode&unix.S_IFMT != unix.S_IFREG {
			return &ExecutableError{Name: name, Kind: ErrNotRegularFile}
		}
		if err := unix.Access(file, unix.X_OK); err != nil {
			return &ExecutableError{Name: name, Kind: ErrNoExecutePermission}
		}
		return nil
	}

	return &ExecutableError{Name: name, Kind: ErrNotFound}
}
