// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"unsafe"
)

// DefaultPoolSize is the pool size used when a caller asks for a
// non-positive one.
const DefaultPoolSize = 16 * 1024

// Span is one allocation. Bytes has len == cap == the requested size,
// so appending to it can never spill into a neighbouring allocation.
type Span struct {
	Pool   int
	Offset int
	Bytes  []byte
}

// End returns the offset one past the last byte of the span.
func (span Span) End() int {
	return span.Offset + len(span.Bytes)
}

// Arena is one subsystem's bump cursor into a [Registry].
//
// Invariant: cursor <= poolSize, and while the handle is live pool
// names a slot backed by a buffer.
type Arena struct {
	registry      *Registry
	generation    uint64
	poolSize      int
	pool          int
	cursor        int
	allowOverflow bool
	initialized   bool
}

// Allocate bump-allocates size bytes.
//
// When the current pool lacks room and overflow is disabled, Allocate
// returns false and changes nothing. Otherwise the handle moves on to
// the next free slot. A request larger than the pool size gets a pool
// of its own, and the handle then claims a normal pool past it so that
// later allocations never land in the oversized one.
func (arena *Arena) Allocate(size int) (Span, bool) {
	if !arena.live() || size < 0 {
		return Span{}, false
	}

	if arena.cursor+size <= arena.poolSize {
		return arena.take(size), true
	}

	if !arena.allowOverflow {
		return Span{}, false
	}

	registry := arena.registry
	if size > arena.poolSize {
		slot := registry.claim(arena.pool, size)
		span := Span{Pool: slot, Bytes: registry.pools[slot][:size:size]}

		arena.pool = registry.claim(slot, arena.poolSize)
		arena.cursor = 0
		return span, true
	}

	arena.pool = registry.claim(arena.pool, arena.poolSize)
	arena.cursor = 0
	return arena.take(size), true
}

func (arena *Arena) take(size int) Span {
	pool := arena.registry.pools[arena.pool]
	span := Span{
		Pool:   arena.pool,
		Offset: arena.cursor,
		Bytes:  pool[arena.cursor : arena.cursor+size : arena.cursor+size],
	}
	arena.cursor += size
	return span
}

// AllocateString copies value into the arena and returns a string that
// shares the arena memory. Arena memory is never written again once
// handed out.
func (arena *Arena) AllocateString(value string) (string, bool) {
	span, ok := arena.Allocate(len(value))
	if !ok {
		return "", false
	}
	if len(value) == 0 {
		return "", true
	}
	copy(span.Bytes, value)
	return unsafe.String(&span.Bytes[0], len(span.Bytes)), true
}

// NextPool abandons the rest of the current pool and claims a fresh one,
// whether or not overflow is allowed. The directory cache uses it to
// place a packed listing that no longer fits behind the cursor.
func (arena *Arena) NextPool() {
	if !arena.live() {
		return
	}
	arena.pool = arena.registry.claim(arena.pool, arena.poolSize)
	arena.cursor = 0
}

// DisableOverflow makes Allocate fail instead of moving to a new pool.
func (arena *Arena) DisableOverflow() { arena.allowOverflow = false }

// EnableOverflow restores the default spill-to-next-pool behavior.
func (arena *Arena) EnableOverflow() { arena.allowOverflow = true }

// OverflowAllowed reports whether Allocate may move to a new pool.
func (arena *Arena) OverflowAllowed() bool { return arena.allowOverflow }

// PoolSize returns the nominal size of this handle's pools.
func (arena *Arena) PoolSize() int { return arena.poolSize }

// Pool returns the slot the cursor currently points into.
func (arena *Arena) Pool() int { return arena.pool }

// Cursor returns the offset of the next allocation in the current pool.
func (arena *Arena) Cursor() int { return arena.cursor }

// Remaining returns how many bytes the current pool can still hand out.
func (arena *Arena) Remaining() int { return arena.poolSize - arena.cursor }

// live reports whether the handle was created against the registry's
// current table.
func (arena *Arena) live() bool {
	return arena != nil && arena.initialized &&
		arena.registry.pools != nil && arena.generation == arena.registry.generation
}
