// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pathresolve

import (
	"log/slog"
	"os"
	"os/user"
	"strconv"
	"strings"
	"unsafe"

	"github.com/bureau-foundation/pistachio/lib/arena"
)

// DefaultPoolSize is the arena pool size used for desugared paths.
const DefaultPoolSize = 16 * 1024

// Options configures a Resolver.
type Options struct {
	// PoolSize is the size of the resolver's arena pools.
	// Zero selects DefaultPoolSize.
	PoolSize int

	// Logger receives debug records. Nil discards.
	Logger *slog.Logger
}

// Resolver expands ~ and backslash escapes into arena-backed strings.
type Resolver struct {
	registry *arena.Registry
	arena    *arena.Arena
	poolSize int
	home     string
	logger   *slog.Logger
}

// New returns a resolver allocating from registry. The arena handle is
// created on first use.
func New(registry *arena.Registry, options Options) *Resolver {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	poolSize := options.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &Resolver{
		registry: registry,
		poolSize: poolSize,
		logger:   logger,
	}
}

// allocate hands out size bytes of arena memory, falling back to the
// heap if the arena refuses (which only happens after teardown).
func (resolver *Resolver) allocate(size int) []byte {
	if resolver.arena == nil {
		resolver.arena = resolver.registry.NewArena(resolver.poolSize)
	}
	span, ok := resolver.arena.Allocate(size)
	if !ok {
		return make([]byte, 0, size)
	}
	return span.Bytes[:0]
}

// HomeDirectory returns $HOME, or the home directory recorded in the
// account database for the current uid. The first non-empty answer is
// cached for the life of the process. Returns "" when neither source
// knows.
func (resolver *Resolver) HomeDirectory() string {
	if resolver.home != "" {
		return resolver.home
	}

	home := os.Getenv("HOME")
	source := "env"
	if home == "" {
		if account, err := user.LookupId(strconv.Itoa(os.Getuid())); err == nil {
			home = account.HomeDir
			source = "passwd"
		}
	}
	if home == "" {
		resolver.logger.Debug("home directory unknown")
		return ""
	}

	resolver.home = resolver.store(append(resolver.allocate(len(home)), home...))
	resolver.logger.Debug("home directory resolved", "home", resolver.home, "source", source)
	return resolver.home
}

// Desugar replaces a leading ~ with the home directory and removes
// backslash escapes: a backslash is dropped and the character after it
// is kept literally. The input is not modified.
func (resolver *Resolver) Desugar(path string) string {
	prefix := ""
	rest := path
	if strings.HasPrefix(path, "~") {
		prefix = resolver.HomeDirectory()
		rest = path[1:]
	}

	buffer := resolver.allocate(len(prefix) + len(rest))
	buffer = appendUnescaped(buffer, prefix)
	buffer = appendUnescaped(buffer, rest)
	return resolver.store(buffer)
}

// ExpandHome replaces a leading ~ with the home directory and leaves
// everything else, backslashes included, untouched. The result is an
// ordinary heap string.
func (resolver *Resolver) ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	return resolver.HomeDirectory() + path[1:]
}

// store views buffer as a string without copying. Buffers come from
// the arena (or a private heap slice) and are never written again.
func (resolver *Resolver) store(buffer []byte) string {
	if len(buffer) == 0 {
		return ""
	}
	return unsafe.String(&buffer[0], len(buffer))
}

// RemoveBackslashes returns value with backslash escapes removed, using
// the same rule as Desugar. Allocates on the heap.
func RemoveBackslashes(value string) string {
	if strings.IndexByte(value, '\\') < 0 {
		return value
	}
	return string(appendUnescaped(make([]byte, 0, len(value)), value))
}

func appendUnescaped(buffer []byte, value string) []byte {
	for index := 0; index < len(value); index++ {
		if value[index] == '\\' {
			index++
			if index == len(value) {
				break
			}
		}
		buffer = append(buffer, value[index])
	}
	return buffer
}
