// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dircache

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// FS is the filesystem surface the cache needs.
type FS interface {
	// ReadDirNames returns the entry names of a directory in the
	// order the filesystem yields them.
	ReadDirNames(path string) ([]string, error)

	// Stat returns metadata for path, following symlinks.
	Stat(path string) (Metadata, error)
}

// Metadata is the part of stat(2) the launcher looks at.
type Metadata struct {
	Mode    uint32 // st_mode: file type and permission bits
	Size    int64
	ModTime time.Time
	Inode   uint64
}

// IsDir reports whether the entry is a directory.
func (metadata Metadata) IsDir() bool {
	return metadata.Mode&unix.S_IFMT == unix.S_IFDIR
}

// IsRegular reports whether the entry is a regular file.
func (metadata Metadata) IsRegular() bool {
	return metadata.Mode&unix.S_IFMT == unix.S_IFREG
}

// UnixFS reads the real filesystem.
type UnixFS struct{}

// ReadDirNames implements FS.
func (UnixFS) ReadDirNames(path string) ([]string, error) {
	directory, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer directory.Close()
	return directory.Readdirnames(-1)
}

// Stat implements FS.
func (UnixFS) Stat(path string) (Metadata, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return Metadata{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return Metadata{
		Mode:    uint32(stat.Mode),
		Size:    stat.Size,
		ModTime: time.Unix(stat.Mtim.Unix()),
		Inode:   stat.Ino,
	}, nil
}
