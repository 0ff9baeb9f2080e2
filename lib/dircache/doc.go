// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dircache lists directories once and serves every later
// request for the same path from memory.
//
// A [Listing] is an immutable snapshot taken the first time a path is
// requested. It is never refreshed or evicted: files created after the
// first request do not appear until the process restarts. A directory
// that cannot be opened is not cached at all, so a later request scans
// again.
//
// Entry names are packed NUL-terminated and back-to-back in a single
// arena allocation (the blob). Entry i+1 starts right after the NUL of
// entry i; the offset table built at construction records those starts
// and [Cache.List] checks the packing before publishing the listing.
// Because the blob must be one contiguous allocation, a directory whose
// names do not fit in one arena pool is truncated at the pool size.
//
// Alongside the names each listing carries a stat table and an index
// permutation that orders directories first, then names byte-wise.
//
// Callers get a [View]. The slices it returns alias cache memory and
// must not be modified.
package dircache
