// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package completion

import (
	"log/slog"
	"strings"

	"github.com/bureau-foundation/pistachio/lib/dircache"
	"github.com/bureau-foundation/pistachio/lib/pathresolve"
)

// DefaultBinariesDir is searched for command tokens when Options leaves
// BinariesDir empty.
const DefaultBinariesDir = "/usr/bin"

// Options configures an Engine.
type Options struct {
	// BinariesDir is the directory listed for command tokens.
	BinariesDir string

	// FS answers the directory check after a completion. Nil uses
	// dircache.UnixFS.
	FS dircache.FS

	Logger *slog.Logger
}

// Engine completes tokens against directory listings.
type Engine struct {
	cache       *dircache.Cache
	resolver    *pathresolve.Resolver
	fs          dircache.FS
	binariesDir string
	logger      *slog.Logger
}

// New creates an Engine over cache. The resolver desugars completed
// tokens before they are checked for being directories.
func New(cache *dircache.Cache, resolver *pathresolve.Resolver, options Options) *Engine {
	engine := &Engine{
		cache:       cache,
		resolver:    resolver,
		fs:          options.FS,
		binariesDir: options.BinariesDir,
		logger:      options.Logger,
	}
	if engine.fs == nil {
		engine.fs = dircache.UnixFS{}
	}
	if engine.binariesDir == "" {
		engine.binariesDir = DefaultBinariesDir
	}
	if engine.logger == nil {
		engine.logger = slog.New(slog.DiscardHandler)
	}
	return engine
}

// BinariesDir returns the directory command tokens are completed from.
func (engine *Engine) BinariesDir() string { return engine.binariesDir }

// Enumeration describes the token under the cursor and the listing it
// is completed against.
type Enumeration struct {
	// IsCommand is true for a token that does not start with "/" or
	// "~", and for empty text or text ending in a space, where there is
	// no token to complete.
	IsCommand bool

	// Start and End delimit the token in the text, end exclusive.
	Start, End int

	// Token is text[Start:End].
	Token string

	// Directory is the listed directory, backslash escapes removed and
	// "~" left for the cache to expand.
	Directory string

	// Search is the tail of Token after the directory: the partial
	// name being typed. Its length is Trailing.
	Search   string
	Trailing int

	// View is the listing of Directory. It is invalid when there was
	// no token or the directory could not be read.
	View dircache.View
}

// Enumerate splits the token under cursor into directory and search
// fragment and lists the directory.
func (engine *Engine) Enumerate(text string, cursor int) Enumeration {
	if text == "" || text[len(text)-1] == ' ' {
		return Enumeration{IsCommand: true, Start: len(text), End: len(text)}
	}

	start, end := FindWordBoundaries(text, cursor)
	token := text[start:end]
	enumeration := Enumeration{Start: start, End: end, Token: token}

	if token == "" || (token[0] != '/' && token[0] != '~') {
		enumeration.IsCommand = true
		enumeration.Directory = engine.binariesDir
		enumeration.Search = token
		enumeration.Trailing = len(token)
		enumeration.View = engine.cache.List(engine.binariesDir)
		return enumeration
	}

	// Only "/" separates; a "~" inside a name is literal.
	searchStart := strings.LastIndexByte(token, '/') + 1
	if searchStart == 0 {
		searchStart = 1
	}
	directory := token[:searchStart]
	// "/usr/bi" lists "/usr"; "/us" lists "/" and "~Doc" lists "~".
	if len(directory) > 1 {
		directory = directory[:len(directory)-1]
	}

	enumeration.Directory = pathresolve.RemoveBackslashes(directory)
	enumeration.Search = token[searchStart:]
	enumeration.Trailing = len(enumeration.Search)
	enumeration.View = engine.cache.List(enumeration.Directory)
	return enumeration
}

// Match is the text a completion may extend a token with.
type Match struct {
	// Text is the entry name the completion is taken from, and Len the
	// number of its leading bytes that every candidate shares.
	Text string
	Len  int

	// Candidates counts the entries that matched the search fragment.
	Candidates int
}

// FindCompletableSpan finds the completion for the last trailing
// characters of token in view. With several matching entries the match
// is cut to their longest common prefix. With trailing zero the only
// possible match is the sole entry of a one-entry listing.
func (engine *Engine) FindCompletableSpan(view dircache.View, token string, trailing int) (Match, bool) {
	if trailing <= 0 {
		if view.Len() != 1 {
			return Match{}, false
		}
		name := view.Name(0)
		return Match{Text: name, Len: len(name), Candidates: 1}, true
	}

	overlap := unescapedLen(token[len(token)-min(trailing, len(token)):])
	var match Match
	for _, name := range view.Names() {
		if !EscapeAwareEquals(name, token, trailing) {
			continue
		}
		match.Candidates++
		if match.Candidates == 1 {
			match.Text = name
			match.Len = len(name)
			continue
		}
		shared := min(overlap, match.Len)
		for shared < match.Len && shared < len(name) && name[shared] == match.Text[shared] {
			shared++
		}
		match.Len = shared
	}
	return match, match.Candidates > 0
}

// Complete extends token with the unmatched part of match and returns
// the new token and trailing count.
//
// The last trailing characters of the token are already typed and may
// carry escape backslashes, so the splice point in match.Text is their
// unescaped length. A token of the form "~name" becomes "~/name" and
// spaces in the result are escaped. In folder mode a token naming a
// directory gets a separator appended and trailing drops to zero.
// Otherwise trailing becomes match.Len.
func (engine *Engine) Complete(token string, match Match, trailing int, folderMode bool) (string, int) {
	typed := token[len(token)-min(max(trailing, 0), len(token)):]
	offset := min(unescapedLen(typed), match.Len)

	if strings.HasPrefix(token, "~") && !strings.HasPrefix(token, "~/") {
		token = "~/" + token[1:]
	}
	token = EscapeSpaces(token + match.Text[offset:match.Len])

	if folderMode && engine.isDir(token) {
		if !strings.HasSuffix(token, "/") {
			token += "/"
		}
		return token, 0
	}
	if match.Text != "" {
		trailing = match.Len
	}
	return token, trailing
}

func (engine *Engine) isDir(token string) bool {
	metadata, err := engine.fs.Stat(engine.resolver.Desugar(token))
	return err == nil && metadata.IsDir()
}

// Result is the text box state after a completion.
type Result struct {
	Text     string
	Cursor   int
	Trailing int

	// Changed reports whether Text differs from the input.
	Changed bool
}

// AutoComplete completes the token under cursor as far as the listing
// allows. Folder mode applies when exactly one entry matched.
func (engine *Engine) AutoComplete(text string, cursor int) Result {
	enumeration := engine.Enumerate(text, cursor)
	unchanged := Result{Text: text, Cursor: cursor, Trailing: enumeration.Trailing}
	if !enumeration.View.Valid() {
		return unchanged
	}

	match, ok := engine.FindCompletableSpan(enumeration.View, enumeration.Token, enumeration.Trailing)
	if !ok {
		return unchanged
	}
	token, trailing := engine.Complete(enumeration.Token, match, enumeration.Trailing, match.Candidates == 1)

	engine.logger.Debug("auto-complete",
		"token", enumeration.Token,
		"completed", token,
		"candidates", match.Candidates,
		"trailing", trailing,
	)
	return engine.splice(text, enumeration, token, trailing)
}

// Select completes the token under cursor with a menu entry. The entry
// is treated as the single candidate, so picking a directory descends
// into it.
func (engine *Engine) Select(text string, cursor int, entry string) Result {
	enumeration := engine.Enumerate(text, cursor)
	match := Match{Text: entry, Len: len(entry), Candidates: 1}
	token, trailing := engine.Complete(enumeration.Token, match, enumeration.Trailing, true)
	return engine.splice(text, enumeration, token, trailing)
}

func (engine *Engine) splice(text string, enumeration Enumeration, token string, trailing int) Result {
	completed := text[:enumeration.Start] + token + text[enumeration.End:]
	return Result{
		Text:     completed,
		Cursor:   enumeration.Start + len(token),
		Trailing: trailing,
		Changed:  completed != text,
	}
}
