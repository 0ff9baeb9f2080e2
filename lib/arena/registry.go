// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"log/slog"
)

// slotsPerGrowth is how many empty slots the registry adds whenever a
// scan for a free slot runs off the end of the table.
const slotsPerGrowth = 16

// Registry is the process-wide table of pools. The zero value is ready
// to use: the slot table is created on the first [Registry.NewArena].
type Registry struct {
	pools [][]byte

	// highWater is one past the highest slot ever claimed. Teardown
	// and accounting scans stop here instead of walking the whole table.
	highWater int

	// generation is bumped by DestroyAll so that handles created
	// against the old table can tell they are dead.
	generation uint64

	logger *slog.Logger
}

// NewRegistry returns an empty registry that logs pool activity at
// debug level to logger. A nil logger discards.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

func (registry *Registry) log() *slog.Logger {
	if registry.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return registry.logger
}

// NewArena claims a pool of poolSize bytes and returns a handle whose
// cursor sits at the start of it, with overflow allowed. A non-positive
// poolSize selects [DefaultPoolSize].
func (registry *Registry) NewArena(poolSize int) *Arena {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	if registry.pools == nil {
		registry.pools = make([][]byte, slotsPerGrowth)
	}

	arena := &Arena{
		registry:      registry,
		generation:    registry.generation,
		poolSize:      poolSize,
		allowOverflow: true,
		initialized:   true,
	}
	arena.pool = registry.claim(0, poolSize)
	return arena
}

// claim finds the first empty slot at or after from, backs it with a
// fresh buffer of size bytes and returns its index.
func (registry *Registry) claim(from, size int) int {
	slot := registry.nextFreeSlot(from)
	registry.pools[slot] = make([]byte, size)
	registry.log().Debug("arena pool claimed", "slot", slot, "size", size)
	return slot
}

// nextFreeSlot scans forward from from for an empty slot, growing the
// table by slotsPerGrowth when the scan reaches the end.
func (registry *Registry) nextFreeSlot(from int) int {
	slot := from
	for slot < len(registry.pools) && registry.pools[slot] != nil {
		slot++
	}

	if slot >= len(registry.pools) {
		registry.pools = append(registry.pools, make([][]byte, slotsPerGrowth)...)
		registry.log().Debug("arena registry grown", "slots", len(registry.pools))
	}

	if slot >= registry.highWater {
		registry.highWater = slot + 1
	}
	return slot
}

// PoolCount returns the number of slots currently backed by a pool.
func (registry *Registry) PoolCount() int {
	count := 0
	for slot := 0; slot < registry.highWater; slot++ {
		if registry.pools[slot] != nil {
			count++
		}
	}
	return count
}

// HighWater returns one past the highest slot ever claimed.
func (registry *Registry) HighWater() int {
	return registry.highWater
}

// Slots returns the length of the slot table, including empty slots.
func (registry *Registry) Slots() int {
	return len(registry.pools)
}

// DestroyAll releases every pool and empties the table. It is meant to
// run exactly once, at process exit. Arenas created before the call
// refuse further allocations.
func (registry *Registry) DestroyAll() {
	if registry.pools == nil {
		return
	}

	released := 0
	for slot := 0; slot < registry.highWater; slot++ {
		if registry.pools[slot] != nil {
			registry.pools[slot] = nil
			released++
		}
	}

	registry.log().Debug("arena registry destroyed", "pools", released)
	registry.pools = nil
	registry.highWater = 0
	registry.generation++
}
