// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// pistachio is a keyboard-driven application launcher for the terminal.
//
// Type a command name or a path. Tab completes against the configured
// binaries directory (for the first word) or the filesystem (for words
// starting with / or ~), and a menu of matching entries follows the
// cursor. Enter runs the line: commands found on PATH run as typed,
// directories open in the folder program and files in the program
// configured for their extension.
//
// Launched programs are detached from the launcher unless their
// program entry sets no_daemon, in which case pistachio waits and
// exits with the program's status.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/pistachio/lib/arena"
	"github.com/bureau-foundation/pistachio/lib/completion"
	"github.com/bureau-foundation/pistachio/lib/config"
	"github.com/bureau-foundation/pistachio/lib/dircache"
	"github.com/bureau-foundation/pistachio/lib/launch"
	"github.com/bureau-foundation/pistachio/lib/launcherui"
	"github.com/bureau-foundation/pistachio/lib/pathresolve"
	"github.com/bureau-foundation/pistachio/lib/process"
	"github.com/bureau-foundation/pistachio/lib/tui"
	"github.com/bureau-foundation/pistachio/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath string
		logLevel   string
		logFile    string
		printOnly  bool
		showHelp   bool
	)

	flagSet := pflag.NewFlagSet("pistachio", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "configuration file (default: $"+config.EnvironmentVariable+" or ~/.config/pistachio/config.yaml)")
	flagSet.StringVar(&logLevel, "log-level", "", "minimum log level: debug, info, warn or error (overrides log_level)")
	flagSet.StringVar(&logFile, "log-file", "", "write JSON log records to this file while the launcher is open")
	flagSet.BoolVarP(&printOnly, "print", "p", false, "print the chosen command to stdout instead of running it")
	flagSet.BoolVarP(&showHelp, "help", "h", false, "show help")

	// Handle --version before flag parsing to match the other binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println(version.Full())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if showHelp {
		printHelp(flagSet)
		return nil
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	commandLogger := newCommandLogger(level)

	// The launcher owns the terminal until it exits: records go to
	// the status line and, when requested, to a file.
	tuiHandler := launcherui.NewTUILogHandler(max(level, slog.LevelWarn))
	backgroundLogger := slog.New(tuiHandler)
	if logFile != "" {
		fileHandler, closeFile, err := openFileLogHandler(logFile, level)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", logFile, err)
		}
		defer closeFile()
		backgroundLogger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	}

	registry := arena.NewRegistry(backgroundLogger.With("component", "arena"))
	defer registry.DestroyAll()

	resolver := pathresolve.New(registry, pathresolve.Options{
		PoolSize: cfg.Resolver.PoolSize,
		Logger:   backgroundLogger.With("component", "resolver"),
	})
	cache := dircache.New(registry, resolver, dircache.Options{
		PoolSize: cfg.Cache.PoolSize,
		Logger:   backgroundLogger.With("component", "cache"),
	})
	engine := completion.New(cache, resolver, completion.Options{
		BinariesDir: cfg.BinariesDir,
		Logger:      backgroundLogger.With("component", "completion"),
	})
	parser := launch.NewParser(cfg, resolver, cache, launch.Options{
		Logger: backgroundLogger.With("component", "parser"),
	})

	output := termenv.NewOutput(os.Stderr)
	styles := tui.NewStyles(tui.ThemeFromConfig(cfg.Theme), tui.NewRenderer(os.Stderr, output.EnvColorProfile()))
	model := launcherui.New(engine, parser, launcherui.Options{
		MenuSize: cfg.MenuSize,
		Styles:   &styles,
		Logger:   backgroundLogger,
	})
	if flagSet.NArg() == 1 {
		model.SetText(flagSet.Arg(0))
	}

	// The UI draws on stderr so that stdout stays clean for --print.
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	tuiHandler.SetProgram(program)
	final, err := program.Run()
	tuiHandler.SetProgram(nil)
	if err != nil {
		return fmt.Errorf("running launcher: %w", err)
	}

	command, ok := final.(launcherui.Model).Command()
	if !ok {
		commandLogger.Debug("launcher closed without a command")
		return nil
	}
	if printOnly {
		fmt.Println(command.String())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return launch.Run(ctx, command, commandLogger)
}

// loadConfig reads the configuration from path, or from the
// environment and default location when path is empty, and validates
// it.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pistachio: keyboard-driven application launcher.

Type a command or a path; Tab completes, Up/Down walk the menu,
Enter runs, Esc quits. An optional argument pre-fills the text box.

Usage:
  pistachio [flags] [text]

Examples:
  # Open the launcher
  pistachio

  # Start in the home directory
  pistachio '~/'

  # Choose a command and run it from a shell
  eval "$(pistachio --print)"

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
