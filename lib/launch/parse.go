// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/pistachio/lib/completion"
	"github.com/bureau-foundation/pistachio/lib/config"
	"github.com/bureau-foundation/pistachio/lib/dircache"
	"github.com/bureau-foundation/pistachio/lib/pathresolve"
)

var (
	// ErrEmptyCommand is returned for a blank text box.
	ErrEmptyCommand = errors.New("nothing to run")

	// ErrPathNotFound is returned when a path token names nothing.
	ErrPathNotFound = errors.New("file/folder not found")
)

// Command is a parsed command line.
type Command struct {
	// Line is the shell command line, escapes intact.
	Line string

	// Daemonize detaches the command from the launcher.
	Daemonize bool
}

// String returns the line as a shell would background it.
func (command Command) String() string {
	if command.Daemonize {
		return command.Line + " &"
	}
	return command.Line
}

// Options configures a Parser.
type Options struct {
	// FS stats path tokens. Nil uses dircache.UnixFS.
	FS dircache.FS

	Logger *slog.Logger
}

// Parser validates text box contents and builds commands from them.
type Parser struct {
	config   *config.Config
	resolver *pathresolve.Resolver
	lister   pathresolve.EntryLister
	fs       dircache.FS
	logger   *slog.Logger
}

// NewParser creates a Parser. Command names are looked up through
// lister, normally the directory cache.
func NewParser(cfg *config.Config, resolver *pathresolve.Resolver, lister pathresolve.EntryLister, options Options) *Parser {
	parser := &Parser{
		config:   cfg,
		resolver: resolver,
		lister:   lister,
		fs:       options.FS,
		logger:   options.Logger,
	}
	if parser.fs == nil {
		parser.fs = dircache.UnixFS{}
	}
	if parser.logger == nil {
		parser.logger = slog.New(slog.DiscardHandler)
	}
	return parser
}

// Parse builds the command for text. Errors are meant for display in
// the text box: a *pathresolve.ExecutableError for a bad command name,
// or ErrPathNotFound.
//
// Commands daemonize unless their program is configured with
// no_daemon. A trailing "&" typed by the user is dropped and always
// daemonizes.
func (parser *Parser) Parse(text string) (Command, error) {
	line := strings.TrimSpace(text)
	forceDaemon := false
	if trimmed, found := strings.CutSuffix(line, "&"); found && !strings.HasSuffix(trimmed, `\`) {
		line = strings.TrimSpace(trimmed)
		forceDaemon = true
	}
	if line == "" {
		return Command{}, ErrEmptyCommand
	}

	command, err := parser.parse(line)
	if err != nil {
		parser.logger.Debug("command rejected", "text", text, "error", err)
		return Command{}, err
	}
	if forceDaemon {
		command.Daemonize = true
	}
	parser.logger.Debug("command parsed", "line", command.Line, "daemonize", command.Daemonize)
	return command, nil
}

func (parser *Parser) parse(line string) (Command, error) {
	second := completion.FindNextWord(line)
	if second > 0 || (line[0] != '/' && line[0] != '~') {
		name := line
		if second > 0 {
			name = strings.TrimRight(line[:second], " ")
		}
		if err := parser.resolver.FindExecutable(parser.lister, name); err != nil {
			return Command{}, err
		}
		return Command{Line: line, Daemonize: true}, nil
	}

	path := parser.resolver.Desugar(line)
	metadata, err := parser.fs.Stat(path)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %s", ErrPathNotFound, line)
	}

	program := parser.config.DefaultProgram
	if metadata.IsDir() {
		program = parser.config.FolderProgram
	} else if metadata.IsRegular() {
		program = parser.config.ProgramFor(path)
	}
	return Command{
		Line:      program.Command + " " + line,
		Daemonize: !program.NoDaemon,
	}, nil
}
