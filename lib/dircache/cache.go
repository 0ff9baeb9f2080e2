// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dircache

import (
	"log/slog"
	"path/filepath"

	"github.com/bureau-foundation/pistachio/lib/arena"
	"github.com/bureau-foundation/pistachio/lib/pathresolve"
)

// DefaultPoolSize is the arena pool size for listings. It is also the
// most name bytes (terminators included) one directory can contribute.
const DefaultPoolSize = 1024 * 1024

// Options configures a Cache.
type Options struct {
	// PoolSize is the size of the cache's arena pools.
	// Zero selects DefaultPoolSize.
	PoolSize int

	// FS is the filesystem to list. Nil selects UnixFS.
	FS FS

	// Logger receives debug and warning records. Nil discards.
	Logger *slog.Logger
}

// Cache is the process-wide directory listing cache. It is not safe for
// concurrent use.
type Cache struct {
	registry *arena.Registry
	resolver *pathresolve.Resolver
	fs       FS
	poolSize int
	logger   *slog.Logger

	// arena is created on the first scan.
	arena *arena.Arena

	head  *Listing
	tail  *Listing
	count int
}

// New returns an empty cache. Listing storage comes from registry; ~ in
// requested paths is expanded by resolver.
func New(registry *arena.Registry, resolver *pathresolve.Resolver, options Options) *Cache {
	cache := &Cache{
		registry: registry,
		resolver: resolver,
		fs:       options.FS,
		poolSize: options.PoolSize,
		logger:   options.Logger,
	}
	if cache.fs == nil {
		cache.fs = UnixFS{}
	}
	if cache.poolSize <= 0 {
		cache.poolSize = DefaultPoolSize
	}
	if cache.logger == nil {
		cache.logger = slog.New(slog.DiscardHandler)
	}
	return cache
}

// List returns the listing for path, scanning the directory on the
// first request only. If the directory cannot be read the returned
// View is invalid and nothing is cached.
func (cache *Cache) List(path string) View {
	if listing := cache.lookup(path); listing != nil {
		return View{listing: listing}
	}

	directory := cache.resolver.ExpandHome(path)
	names, err := cache.fs.ReadDirNames(directory)
	if err != nil {
		cache.logger.Debug("directory unavailable", "path", directory, "error", err)
		return View{}
	}

	if cache.arena == nil {
		cache.arena = cache.registry.NewArena(cache.poolSize)
	}

	listing := &Listing{}
	packed, truncated := cache.pack(names)
	listing.truncated = truncated
	if truncated {
		cache.logger.Warn("directory listing truncated",
			"path", directory,
			"entries", len(names),
			"pool_size", cache.poolSize,
		)
	}

	listing.blob = cache.commit(packed)
	if err := listing.index(); err != nil {
		cache.logger.Error("packed listing corrupt", "path", directory, "error", err)
		return View{}
	}
	listing.stats = cache.statEntries(directory, listing.names)
	listing.sort()

	listing.key = cache.storeKey(path)
	cache.append(listing)

	cache.logger.Debug("directory listed",
		"path", directory,
		"entries", len(listing.names),
		"bytes", len(listing.blob),
	)
	return View{listing: listing}
}

// Names implements pathresolve.EntryLister.
func (cache *Cache) Names(directory string) []string {
	return cache.List(directory).Names()
}

// Len returns the number of cached listings.
func (cache *Cache) Len() int {
	return cache.count
}

func (cache *Cache) lookup(path string) *Listing {
	for listing := cache.head; listing != nil; listing = listing.next {
		if listing.key == path {
			return listing
		}
	}
	return nil
}

func (cache *Cache) append(listing *Listing) {
	if cache.tail == nil {
		cache.head = listing
	} else {
		cache.tail.next = listing
	}
	cache.tail = listing
	cache.count++
}

// pack collects names NUL-terminated into a temporary buffer, skipping
// "." and "..". Collection stops at the first name that would push the
// packed size past one pool.
func (cache *Cache) pack(names []string) ([]byte, bool) {
	size := 0
	for _, name := range names {
		size += len(name) + 1
	}
	packed := make([]byte, 0, min(size, cache.poolSize))

	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		if len(packed)+len(name)+1 > cache.poolSize {
			return packed, true
		}
		packed = append(packed, name...)
		packed = append(packed, 0)
	}
	return packed, false
}

// commit copies the packed names into a single arena allocation.
// Overflow is disabled so the allocator cannot split the block; when
// the current pool lacks room the listing moves to a fresh pool, which
// pack guarantees is large enough.
func (cache *Cache) commit(packed []byte) []byte {
	if len(packed) == 0 {
		return nil
	}

	cache.arena.DisableOverflow()
	defer cache.arena.EnableOverflow()

	span, ok := cache.arena.Allocate(len(packed))
	if !ok {
		cache.logger.Debug("listing relocated to a fresh pool",
			"bytes", len(packed),
			"remaining", cache.arena.Remaining(),
		)
		cache.arena.NextPool()
		span, ok = cache.arena.Allocate(len(packed))
	}
	if !ok {
		// Only reachable after the registry was torn down.
		return packed
	}

	copy(span.Bytes, packed)
	return span.Bytes
}

// statEntries follows symlinks for every entry so that a link to a
// directory sorts and completes like a directory. A failed stat leaves
// the entry's metadata zeroed.
func (cache *Cache) statEntries(directory string, names []string) []Metadata {
	stats := make([]Metadata, len(names))
	for entry, name := range names {
		metadata, err := cache.fs.Stat(filepath.Join(directory, name))
		if err != nil {
			cache.logger.Debug("stat failed", "path", directory, "entry", name, "error", err)
			continue
		}
		stats[entry] = metadata
	}
	return stats
}

// storeKey copies the requested path into the arena so the key lives
// alongside the names.
func (cache *Cache) storeKey(path string) string {
	if key, ok := cache.arena.AllocateString(path); ok {
		return key
	}
	return path
}
