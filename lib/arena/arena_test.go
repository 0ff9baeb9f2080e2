// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"
)

func TestAllocateWithinPoolIsContiguous(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(256)

	sizes := []int{1, 7, 32, 0, 64, 100, 52}
	var previous Span
	for index, size := range sizes {
		span, ok := arena.Allocate(size)
		if !ok {
			t.Fatalf("allocation %d (size %d) failed", index, size)
		}
		if len(span.Bytes) != size || cap(span.Bytes) != size {
			t.Errorf("allocation %d: len=%d cap=%d, want %d", index, len(span.Bytes), cap(span.Bytes), size)
		}
		if index > 0 {
			if span.Pool != previous.Pool {
				t.Errorf("allocation %d moved to pool %d, want %d", index, span.Pool, previous.Pool)
			}
			if span.Offset != previous.End() {
				t.Errorf("allocation %d at offset %d, want %d (right after previous)", index, span.Offset, previous.End())
			}
		}
		previous = span
	}

	if arena.Cursor() != 256 {
		t.Errorf("cursor = %d, want 256", arena.Cursor())
	}
}

func TestAllocationsDoNotOverlap(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(128)

	first, _ := arena.Allocate(16)
	second, _ := arena.Allocate(16)
	for index := range first.Bytes {
		first.Bytes[index] = 0xAA
	}
	for index := range second.Bytes {
		second.Bytes[index] = 0x55
	}
	for index, value := range first.Bytes {
		if value != 0xAA {
			t.Fatalf("first span byte %d clobbered: %#x", index, value)
		}
	}

	// A capacity-limited span cannot grow into its neighbour.
	grown := append(first.Bytes, 0x01)
	if &grown[0] == &first.Bytes[0] {
		t.Error("append on a span reused arena memory")
	}
	if second.Bytes[0] != 0x55 {
		t.Errorf("append on first span overwrote second span: %#x", second.Bytes[0])
	}
}

func TestAllocateSpillsToNextPool(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(64)

	first, ok := arena.Allocate(40)
	if !ok {
		t.Fatal("first allocation failed")
	}
	second, ok := arena.Allocate(40)
	if !ok {
		t.Fatal("second allocation failed")
	}

	if first.Pool == second.Pool {
		t.Fatalf("both allocations in pool %d, want a spill", first.Pool)
	}
	if second.Offset != 0 {
		t.Errorf("spilled allocation at offset %d, want 0", second.Offset)
	}
	if arena.Cursor() != 40 {
		t.Errorf("cursor = %d, want 40", arena.Cursor())
	}
	if registry.PoolCount() != 2 {
		t.Errorf("pool count = %d, want 2", registry.PoolCount())
	}
}

func TestOversizedAllocationGetsDedicatedPool(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(64)

	big, ok := arena.Allocate(200)
	if !ok {
		t.Fatal("oversized allocation failed")
	}
	if len(big.Bytes) != 200 {
		t.Fatalf("oversized span len = %d, want 200", len(big.Bytes))
	}
	if big.Offset != 0 {
		t.Errorf("oversized span offset = %d, want 0", big.Offset)
	}

	small, ok := arena.Allocate(8)
	if !ok {
		t.Fatal("allocation after oversized failed")
	}
	if small.Pool == big.Pool {
		t.Errorf("normal allocation landed in oversized pool %d", big.Pool)
	}
	if arena.PoolSize() != 64 {
		t.Errorf("pool size changed to %d", arena.PoolSize())
	}

	// The handle's following pool must be a normal-sized one.
	rest, ok := arena.Allocate(56)
	if !ok || rest.Pool != small.Pool {
		t.Errorf("expected the remaining 56 bytes in pool %d, got pool %d ok=%v", small.Pool, rest.Pool, ok)
	}
}

func TestOverflowDisabledFailsWithoutSideEffects(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(64)

	if _, ok := arena.Allocate(50); !ok {
		t.Fatal("setup allocation failed")
	}
	poolBefore := arena.Pool()
	cursorBefore := arena.Cursor()
	poolsBefore := registry.PoolCount()
	slotsBefore := registry.Slots()

	arena.DisableOverflow()
	if _, ok := arena.Allocate(20); ok {
		t.Fatal("allocation succeeded with overflow disabled and no room")
	}

	if arena.Pool() != poolBefore || arena.Cursor() != cursorBefore {
		t.Errorf("handle moved: pool %d->%d cursor %d->%d", poolBefore, arena.Pool(), cursorBefore, arena.Cursor())
	}
	if registry.PoolCount() != poolsBefore || registry.Slots() != slotsBefore {
		t.Errorf("registry mutated: pools %d->%d slots %d->%d",
			poolsBefore, registry.PoolCount(), slotsBefore, registry.Slots())
	}

	// Allocations that still fit are unaffected by the switch.
	if _, ok := arena.Allocate(14); !ok {
		t.Error("fitting allocation failed with overflow disabled")
	}

	arena.EnableOverflow()
	if _, ok := arena.Allocate(20); !ok {
		t.Error("allocation failed after re-enabling overflow")
	}
}

func TestNextPoolIgnoresOverflowSwitch(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(32)
	arena.Allocate(30)
	before := arena.Pool()

	arena.DisableOverflow()
	arena.NextPool()
	if arena.Pool() == before || arena.Cursor() != 0 {
		t.Fatalf("NextPool did not move: pool %d cursor %d", arena.Pool(), arena.Cursor())
	}
	if _, ok := arena.Allocate(32); !ok {
		t.Error("full-pool allocation failed after NextPool")
	}
}

func TestArenasShareRegistry(t *testing.T) {
	registry := NewRegistry(nil)
	first := registry.NewArena(32)
	second := registry.NewArena(32)

	if first.Pool() == second.Pool() {
		t.Fatalf("two arenas share slot %d", first.Pool())
	}

	// Spilling the first arena must skip the slot owned by the second.
	first.Allocate(32)
	span, _ := first.Allocate(1)
	if span.Pool == second.Pool() {
		t.Errorf("first arena spilled into second arena's pool %d", span.Pool)
	}
}

func TestRegistryGrowsInIncrements(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(8)
	for range slotsPerGrowth + 3 {
		arena.Allocate(8)
		arena.Allocate(1)
	}

	if registry.Slots()%slotsPerGrowth != 0 {
		t.Errorf("slot table length %d is not a multiple of %d", registry.Slots(), slotsPerGrowth)
	}
	if registry.Slots() <= slotsPerGrowth {
		t.Errorf("slot table did not grow: %d", registry.Slots())
	}
	if registry.HighWater() != registry.PoolCount() {
		t.Errorf("high water %d, pools %d: slots were skipped", registry.HighWater(), registry.PoolCount())
	}
}

func TestDestroyAll(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(16)
	arena.Allocate(100)
	arena.Allocate(10)

	registry.DestroyAll()
	if registry.PoolCount() != 0 || registry.Slots() != 0 || registry.HighWater() != 0 {
		t.Errorf("registry not empty after DestroyAll: pools=%d slots=%d high=%d",
			registry.PoolCount(), registry.Slots(), registry.HighWater())
	}
	if _, ok := arena.Allocate(1); ok {
		t.Error("allocation from a handle created before DestroyAll succeeded")
	}

	// A second teardown is harmless, and the registry can be reused.
	registry.DestroyAll()
	fresh := registry.NewArena(16)
	if _, ok := fresh.Allocate(4); !ok {
		t.Error("allocation from a fresh handle failed")
	}
}

func TestZeroValueRegistry(t *testing.T) {
	var registry Registry
	arena := registry.NewArena(0)
	if arena.PoolSize() != DefaultPoolSize {
		t.Errorf("pool size = %d, want %d", arena.PoolSize(), DefaultPoolSize)
	}
	if _, ok := arena.Allocate(10); !ok {
		t.Error("allocation from zero-value registry failed")
	}
}

func TestAllocateString(t *testing.T) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(64)

	source := []byte("hello")
	value, ok := arena.AllocateString(string(source))
	if !ok || value != "hello" {
		t.Fatalf("AllocateString = %q, %v", value, ok)
	}
	source[0] = 'j'
	if value != "hello" {
		t.Errorf("arena string aliases caller memory: %q", value)
	}

	empty, ok := arena.AllocateString("")
	if !ok || empty != "" {
		t.Errorf("empty AllocateString = %q, %v", empty, ok)
	}

	arena.DisableOverflow()
	if _, ok := arena.AllocateString(string(make([]byte, 100))); ok {
		t.Error("AllocateString succeeded past the pool with overflow disabled")
	}
}

func BenchmarkAllocate(b *testing.B) {
	registry := NewRegistry(nil)
	arena := registry.NewArena(1 << 20)
	for b.Loop() {
		arena.Allocate(24)
	}
}
