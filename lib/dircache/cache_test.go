// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dircache

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/pistachio/lib/arena"
	"github.com/bureau-foundation/pistachio/lib/pathresolve"
	"github.com/bureau-foundation/pistachio/lib/testutil"
)

// countingFS wraps another FS and counts calls.
type countingFS struct {
	base  FS
	reads int
	stats int
}

func (counter *countingFS) ReadDirNames(path string) ([]string, error) {
	counter.reads++
	return counter.base.ReadDirNames(path)
}

func (counter *countingFS) Stat(path string) (Metadata, error) {
	counter.stats++
	return counter.base.Stat(path)
}

// stubFS serves fixed directory contents in a fixed order.
type stubFS struct {
	directories map[string][]string
	metadata    map[string]Metadata
}

func (stub stubFS) ReadDirNames(path string) ([]string, error) {
	names, ok := stub.directories[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return names, nil
}

func (stub stubFS) Stat(path string) (Metadata, error) {
	metadata, ok := stub.metadata[path]
	if !ok {
		return Metadata{}, errors.New("stat refused")
	}
	return metadata, nil
}

var (
	directoryMode = Metadata{Mode: unix.S_IFDIR | 0o755}
	fileMode      = Metadata{Mode: unix.S_IFREG | 0o644}
)

func newTestCache(t *testing.T, filesystem FS, poolSize int) *Cache {
	t.Helper()
	registry := arena.NewRegistry(nil)
	t.Cleanup(registry.DestroyAll)
	resolver := pathresolve.New(registry, pathresolve.Options{})
	return New(registry, resolver, Options{PoolSize: poolSize, FS: filesystem})
}

func TestListIsCached(t *testing.T) {
	root := testutil.Tree(t, t.TempDir(), map[string]string{
		"bin/":   "",
		"alpha":  "a",
		"beta":   "b",
		"gamma/": "",
	})
	counter := &countingFS{base: UnixFS{}}
	cache := newTestCache(t, counter, 0)

	first := cache.List(root)
	if !first.Valid() || first.Len() != 4 {
		t.Fatalf("first listing: valid=%v len=%d, want 4 entries", first.Valid(), first.Len())
	}
	reads, stats := counter.reads, counter.stats

	second := cache.List(root)
	if second.Listing() != first.Listing() {
		t.Error("second List returned a different listing")
	}
	if counter.reads != reads || counter.stats != stats {
		t.Errorf("cache hit touched the filesystem: reads %d->%d stats %d->%d",
			reads, counter.reads, stats, counter.stats)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d listings, want 1", cache.Len())
	}
}

func TestListKeysArePathsNotPrefixes(t *testing.T) {
	root := testutil.Tree(t, t.TempDir(), map[string]string{
		"usr/bin/tool": "x",
		"usr/lib/":     "",
	})
	cache := newTestCache(t, UnixFS{}, 0)

	parent := cache.List(filepath.Join(root, "usr"))
	if !parent.Valid() || parent.Len() != 2 {
		t.Fatalf("parent listing: valid=%v names=%v", parent.Valid(), parent.Names())
	}
	child := cache.List(filepath.Join(root, "usr", "bin"))
	if child.Listing() == parent.Listing() {
		t.Fatal("cached parent answered for its subdirectory")
	}
	if child.Len() != 1 || child.Name(0) != "tool" {
		t.Errorf("child names = %v, want [tool]", child.Names())
	}
	if cache.Len() != 2 {
		t.Errorf("cache holds %d listings, want 2", cache.Len())
	}
}

func TestListNotCachedWhenUnavailable(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "later")
	counter := &countingFS{base: UnixFS{}}
	cache := newTestCache(t, counter, 0)

	view := cache.List(missing)
	if view.Valid() || view.Len() != 0 || view.Names() != nil {
		t.Fatalf("missing directory gave a valid view: %+v", view)
	}
	if cache.Len() != 0 {
		t.Fatalf("failed open was cached")
	}

	testutil.Tree(t, root, map[string]string{"later/file": "x"})
	view = cache.List(missing)
	if !view.Valid() || view.Len() != 1 || view.Name(0) != "file" {
		t.Errorf("retry after creation: valid=%v names=%v", view.Valid(), view.Names())
	}
	if counter.reads != 2 {
		t.Errorf("reads = %d, want 2 (no negative caching)", counter.reads)
	}
}

func TestListSkipsDotEntries(t *testing.T) {
	stub := stubFS{
		directories: map[string][]string{"/d": {".", "one", "..", "two"}},
		metadata:    map[string]Metadata{"/d/one": fileMode, "/d/two": fileMode},
	}
	view := newTestCache(t, stub, 0).List("/d")
	if got := strings.Join(view.Names(), ","); got != "one,two" {
		t.Errorf("names = %s, want one,two", got)
	}
}

func TestBlobIsContiguous(t *testing.T) {
	stub := stubFS{
		directories: map[string][]string{"/d": {"zeta", "a", "middle-name", "q"}},
		metadata:    map[string]Metadata{},
	}
	view := newTestCache(t, stub, 0).List("/d")
	blob := view.Blob()

	// Walk the blob the way a C caller would: strlen + 1, N times.
	offset := 0
	for entry := 0; entry < view.Len(); entry++ {
		length := bytes.IndexByte(blob[offset:], 0)
		if length < 0 {
			t.Fatalf("entry %d: no terminator after offset %d", entry, offset)
		}
		if name := string(blob[offset : offset+length]); name != view.Name(entry) {
			t.Errorf("entry %d: blob has %q, name table has %q", entry, name, view.Name(entry))
		}
		if view.Offsets()[entry] != offset {
			t.Errorf("entry %d: offset table says %d, walk says %d", entry, view.Offsets()[entry], offset)
		}
		offset += length + 1
	}
	if offset != len(blob) {
		t.Errorf("walk ended at %d, blob is %d bytes", offset, len(blob))
	}
	if got := strings.Join(view.Names(), ","); got != "zeta,a,middle-name,q" {
		t.Errorf("names not in directory order: %s", got)
	}
}

func TestSortedIndexPutsDirectoriesFirst(t *testing.T) {
	stub := stubFS{
		directories: map[string][]string{
			"/d": {"beta", "Zulu", "alpha", "src", "Docs", "apple", "bin"},
		},
		metadata: map[string]Metadata{
			"/d/beta":  fileMode,
			"/d/Zulu":  fileMode,
			"/d/alpha": fileMode,
			"/d/src":   directoryMode,
			"/d/Docs":  directoryMode,
			"/d/apple": fileMode,
			"/d/bin":   directoryMode,
		},
	}
	view := newTestCache(t, stub, 0).List("/d")

	var order []string
	for _, entry := range view.Sorted() {
		order = append(order, view.Name(entry))
	}
	want := "Docs,bin,src,Zulu,alpha,apple,beta"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("sorted order = %s, want %s", got, want)
	}

	seenFile := false
	for _, entry := range view.Sorted() {
		if !view.IsDir(entry) {
			seenFile = true
		} else if seenFile {
			t.Errorf("directory %q sorted after a file", view.Name(entry))
		}
	}
}

func TestStatFailureZeroFills(t *testing.T) {
	stub := stubFS{
		directories: map[string][]string{"/d": {"broken", "dir", "file"}},
		metadata:    map[string]Metadata{"/d/dir": directoryMode, "/d/file": fileMode},
	}
	view := newTestCache(t, stub, 0).List("/d")
	if view.Len() != 3 {
		t.Fatalf("stat failure aborted the listing: %v", view.Names())
	}
	if view.Stat(0) != (Metadata{}) {
		t.Errorf("failed stat not zeroed: %+v", view.Stat(0))
	}
	if !view.IsDir(1) || !view.Stat(2).IsRegular() {
		t.Errorf("neighbouring stats lost: %+v %+v", view.Stat(1), view.Stat(2))
	}
}

func TestListTruncatesAtPoolSize(t *testing.T) {
	stub := stubFS{
		directories: map[string][]string{"/d": {"aaaa", "bbbb", "cccc", "dddd"}},
		metadata:    map[string]Metadata{},
	}
	view := newTestCache(t, stub, 16).List("/d")

	if got := strings.Join(view.Names(), ","); got != "aaaa,bbbb,cccc" {
		t.Errorf("names = %s, want the first three", got)
	}
	if !view.Truncated() {
		t.Error("listing not marked truncated")
	}
	if len(view.Blob()) != 15 {
		t.Errorf("blob is %d bytes, want 15", len(view.Blob()))
	}
}

func TestListRelocatesToFreshPool(t *testing.T) {
	stub := stubFS{
		directories: map[string][]string{
			"/a": {"first", "second", "third"},
			"/b": {"fourth", "fifth", "sixth"},
		},
		metadata: map[string]Metadata{},
	}
	cache := newTestCache(t, stub, 32)

	a := cache.List("/a")
	poolAfterA := cache.arena.Pool()
	b := cache.List("/b")

	if cache.arena.Pool() == poolAfterA {
		t.Fatalf("second listing did not move to a fresh pool")
	}
	if !cache.arena.OverflowAllowed() {
		t.Error("overflow left disabled after listing")
	}
	if got := strings.Join(a.Names(), ","); got != "first,second,third" {
		t.Errorf("first listing damaged: %s", got)
	}
	if got := strings.Join(b.Names(), ","); got != "fourth,fifth,sixth" {
		t.Errorf("second listing = %s", got)
	}
	if b.Truncated() {
		t.Error("relocated listing marked truncated")
	}
}

func TestListExpandsHome(t *testing.T) {
	home := testutil.Tree(t, t.TempDir(), map[string]string{"Documents/": ""})
	t.Setenv("HOME", home)
	cache := newTestCache(t, nil, 0)

	view := cache.List("~")
	if !view.Valid() || view.Len() != 1 || view.Name(0) != "Documents" {
		t.Fatalf("List(~) = valid %v names %v", view.Valid(), view.Names())
	}
	if view.Path() != "~" {
		t.Errorf("key = %q, want the unexpanded path", view.Path())
	}
	if !view.IsDir(0) {
		t.Error("Documents not recognised as a directory")
	}
}

func TestListEmptyDirectory(t *testing.T) {
	cache := newTestCache(t, nil, 0)
	view := cache.List(t.TempDir())
	if !view.Valid() || view.Len() != 0 || len(view.Sorted()) != 0 {
		t.Errorf("empty directory: valid=%v len=%d", view.Valid(), view.Len())
	}
}

func TestListFollowsSymlinks(t *testing.T) {
	root := testutil.Tree(t, t.TempDir(), map[string]string{"real/": ""})
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}
	view := newTestCache(t, nil, 0).List(root)
	for entry := range view.Len() {
		if !view.IsDir(entry) {
			t.Errorf("%s not a directory", view.Name(entry))
		}
	}
}

func TestNamesImplementsEntryLister(t *testing.T) {
	root := testutil.Tree(t, t.TempDir(), map[string]string{"tool": testutil.Executable})
	var lister pathresolve.EntryLister = newTestCache(t, nil, 0)
	if names := lister.Names(root); len(names) != 1 || names[0] != "tool" {
		t.Errorf("Names = %v", names)
	}
	if names := lister.Names(filepath.Join(root, "missing")); names != nil {
		t.Errorf("Names of missing directory = %v", names)
	}
}

func BenchmarkListHit(b *testing.B) {
	registry := arena.NewRegistry(nil)
	defer registry.DestroyAll()
	cache := New(registry, pathresolve.New(registry, pathresolve.Options{}), Options{})
	directory := b.TempDir()
	cache.List(directory)
	for b.Loop() {
		cache.List(directory)
	}
}
