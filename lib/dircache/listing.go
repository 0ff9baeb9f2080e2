// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dircache

import (
	"bytes"
	"fmt"
	"slices"
	"unsafe"
)

// Listing is the cached snapshot of one directory.
type Listing struct {
	key  string
	next *Listing

	// blob holds every name NUL-terminated, packed with no gaps.
	blob    []byte
	offsets []int
	names   []string

	// sorted is a permutation of entry indices: directories first,
	// then byte-wise name order.
	sorted []int
	stats  []Metadata

	truncated bool
}

// index walks the NUL terminators of the blob and records where each
// name starts. Names are zero-copy views of the blob.
func (listing *Listing) index() error {
	blob := listing.blob
	for offset := 0; offset < len(blob); {
		length := bytes.IndexByte(blob[offset:], 0)
		if length < 0 {
			return fmt.Errorf("entry at offset %d is not NUL-terminated", offset)
		}
		listing.offsets = append(listing.offsets, offset)
		listing.names = append(listing.names, unsafe.String(&blob[offset], length))
		offset += length + 1
	}
	return listing.checkPacking()
}

// checkPacking verifies that entry i+1 starts exactly one byte past the
// end of entry i and that the last terminator ends the blob.
func (listing *Listing) checkPacking() error {
	next := 0
	for entry, offset := range listing.offsets {
		if offset != next {
			return fmt.Errorf("entry %d at offset %d, want %d", entry, offset, next)
		}
		next = offset + len(listing.names[entry]) + 1
	}
	if next != len(listing.blob) {
		return fmt.Errorf("entries end at %d, blob is %d bytes", next, len(listing.blob))
	}
	return nil
}

// sort fills the index permutation. Ties are impossible: names within
// one directory are unique.
func (listing *Listing) sort() {
	listing.sorted = make([]int, len(listing.names))
	for entry := range listing.sorted {
		listing.sorted[entry] = entry
	}
	slices.SortFunc(listing.sorted, func(left, right int) int {
		leftDir := listing.stats[left].IsDir()
		rightDir := listing.stats[right].IsDir()
		if leftDir != rightDir {
			if leftDir {
				return -1
			}
			return 1
		}
		return bytes.Compare(listing.blobName(left), listing.blobName(right))
	})
}

func (listing *Listing) blobName(entry int) []byte {
	offset := listing.offsets[entry]
	return listing.blob[offset : offset+len(listing.names[entry])]
}

// View is a read-only handle on a cached Listing. The zero View is
// invalid and describes a directory that could not be opened.
type View struct {
	listing *Listing
}

// Valid reports whether the directory was listed.
func (view View) Valid() bool { return view.listing != nil }

// Listing returns the underlying cache entry. Two views of the same
// directory return the same pointer.
func (view View) Listing() *Listing { return view.listing }

// Path returns the key the listing was cached under.
func (view View) Path() string {
	if view.listing == nil {
		return ""
	}
	return view.listing.key
}

// Len returns the number of entries.
func (view View) Len() int {
	if view.listing == nil {
		return 0
	}
	return len(view.listing.names)
}

// Name returns entry i in directory order.
func (view View) Name(i int) string { return view.listing.names[i] }

// Names returns all entry names in directory order.
func (view View) Names() []string {
	if view.listing == nil {
		return nil
	}
	return view.listing.names
}

// Sorted returns entry indices, directories first, then by name.
func (view View) Sorted() []int {
	if view.listing == nil {
		return nil
	}
	return view.listing.sorted
}

// Stat returns the metadata of entry i. Entries whose stat failed have
// zero metadata.
func (view View) Stat(i int) Metadata { return view.listing.stats[i] }

// IsDir reports whether entry i is a directory.
func (view View) IsDir(i int) bool { return view.listing.stats[i].IsDir() }

// Blob returns the packed, NUL-terminated names.
func (view View) Blob() []byte {
	if view.listing == nil {
		return nil
	}
	return view.listing.blob
}

// Offsets returns where each name starts in the blob.
func (view View) Offsets() []int {
	if view.listing == nil {
		return nil
	}
	return view.listing.offsets
}

// Truncated reports whether entries were dropped because the names did
// not fit in one arena pool.
func (view View) Truncated() bool {
	return view.listing != nil && view.listing.truncated
}
