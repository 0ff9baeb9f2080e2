// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package arena provides a two-level bump allocator: a [Registry] of
// fixed-size memory pools shared by the whole process, and per-subsystem
// [Arena] handles that bump-allocate out of the registry's pools.
//
// Nothing allocated from an arena is ever freed individually. Pools are
// claimed from the registry as handles fill up and are released all at
// once by [Registry.DestroyAll], which the binary defers in main. Handles
// created before DestroyAll are dead afterwards: their allocations fail.
//
// The registry is not safe for concurrent use. The launcher only touches
// it from the input-event loop, which is sequential.
//
// Key exports:
//
//   - [Registry] -- slot table of pools, grown in fixed increments
//   - [Arena] -- bump cursor with an overflow switch
//   - [Span] -- one allocation, a capacity-limited view into a pool
package arena
