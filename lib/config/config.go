// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "PISTACHIO_CONFIG"

// Config is the launcher configuration.
type Config struct {
	// BinariesDir is listed to complete command names.
	// Default: /usr/bin
	BinariesDir string `yaml:"binaries_dir" json:"binaries_dir"`

	// FolderProgram opens directories. The directory path is appended
	// to its command.
	// Default: thunar
	FolderProgram Program `yaml:"folder_program" json:"folder_program"`

	// DefaultProgram opens regular files no entry in Programs claims.
	// Default: xed
	DefaultProgram Program `yaml:"default_program" json:"default_program"`

	// Programs map file extensions to the program that opens them. The
	// first program with a matching extension wins.
	Programs []Program `yaml:"programs,omitempty" json:"programs,omitempty"`

	// MenuSize caps the number of candidates shown under the text box.
	// Default: 100
	MenuSize int `yaml:"menu_size" json:"menu_size"`

	// Cache configures the directory listing cache.
	Cache PoolConfig `yaml:"cache" json:"cache"`

	// Resolver configures the path resolver.
	Resolver PoolConfig `yaml:"resolver" json:"resolver"`

	// Theme sets the interface colours.
	Theme ThemeConfig `yaml:"theme" json:"theme"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Program is a command used to open files.
type Program struct {
	// Command is the command line the path is appended to.
	Command string `yaml:"command" json:"command"`

	// Extensions are file name suffixes, usually with the dot: ".pdf".
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`

	// NoDaemon runs the program attached to the launcher instead of in
	// its own session.
	NoDaemon bool `yaml:"no_daemon,omitempty" json:"no_daemon,omitempty"`
}

// Matches reports whether name ends in one of the program's extensions.
func (program Program) Matches(name string) bool {
	return slices.ContainsFunc(program.Extensions, func(extension string) bool {
		return extension != "" && strings.HasSuffix(name, extension)
	})
}

// PoolConfig sizes the arena pools of a component.
type PoolConfig struct {
	// PoolSize is the size in bytes of each arena pool.
	PoolSize int `yaml:"pool_size" json:"pool_size"`
}

// ThemeConfig holds colours as "#rrggbb" or "#rgb".
type ThemeConfig struct {
	Foreground string `yaml:"foreground" json:"foreground"`
	Background string `yaml:"background" json:"background"`
	Caret      string `yaml:"caret" json:"caret"`
	Selected   string `yaml:"selected" json:"selected"`
	Error      string `yaml:"error" json:"error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BinariesDir:    "/usr/bin",
		FolderProgram:  Program{Command: "thunar"},
		DefaultProgram: Program{Command: "xed"},
		MenuSize:       100,
		Cache:          PoolConfig{PoolSize: 1024 * 1024},
		Resolver:       PoolConfig{PoolSize: 16 * 1024},
		Theme: ThemeConfig{
			Foreground: "#f8f8f8",
			Background: "#303030",
			Caret:      "#e0e0e0",
			Selected:   "#608040",
			Error:      "#ff8080",
		},
		LogLevel: "info",
	}
}

// DefaultPath returns ~/.config/pistachio/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating default config: %w", err)
	}
	return filepath.Join(home, ".config", "pistachio", "config.yaml"), nil
}

// Load loads configuration from PISTACHIO_CONFIG, or from the default
// path when the variable is unset. A missing file at the default path
// is created with the defaults; a missing PISTACHIO_CONFIG file is an
// error.
func Load() (*Config, error) {
	if path := os.Getenv(EnvironmentVariable); path != "" {
		return LoadFile(path)
	}

	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		cfg.expandVariables()
		return cfg, nil
	}
	return cfg, err
}

// LoadFile loads configuration from a specific file path. Values the
// file leaves out keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if isJSON(path) {
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to path in the format its extension
// selects, creating parent directories as needed.
func (c *Config) Save(path string) error {
	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
		data = append([]byte("# pistachio launcher configuration\n"), data...)
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths
// and program commands.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.BinariesDir = expandVars(c.BinariesDir, vars)
	c.FolderProgram.Command = expandVars(c.FolderProgram.Command, vars)
	c.DefaultProgram.Command = expandVars(c.DefaultProgram.Command, vars)
	for index := range c.Programs {
		c.Programs[index].Command = expandVars(c.Programs[index].Command, vars)
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var colourPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.BinariesDir == "" {
		errs = append(errs, fmt.Errorf("binaries_dir is required"))
	}

	if c.FolderProgram.Command == "" {
		errs = append(errs, fmt.Errorf("folder_program.command is required"))
	}

	if c.DefaultProgram.Command == "" {
		errs = append(errs, fmt.Errorf("default_program.command is required"))
	}

	for index, program := range c.Programs {
		if program.Command == "" {
			errs = append(errs, fmt.Errorf("programs[%d].command is required", index))
		}
		if len(program.Extensions) == 0 {
			errs = append(errs, fmt.Errorf("programs[%d] (%s) has no extensions", index, program.Command))
		}
		if slices.Contains(program.Extensions, "") {
			errs = append(errs, fmt.Errorf("programs[%d] (%s) has an empty extension", index, program.Command))
		}
	}

	if c.MenuSize <= 0 {
		errs = append(errs, fmt.Errorf("menu_size must be positive, got %d", c.MenuSize))
	}

	if c.Cache.PoolSize <= 0 {
		errs = append(errs, fmt.Errorf("cache.pool_size must be positive, got %d", c.Cache.PoolSize))
	}
	if c.Resolver.PoolSize <= 0 {
		errs = append(errs, fmt.Errorf("resolver.pool_size must be positive, got %d", c.Resolver.PoolSize))
	}

	colours := []struct {
		key   string
		value string
	}{
		{"theme.foreground", c.Theme.Foreground},
		{"theme.background", c.Theme.Background},
		{"theme.caret", c.Theme.Caret},
		{"theme.selected", c.Theme.Selected},
		{"theme.error", c.Theme.Error},
	}
	for _, colour := range colours {
		if !colourPattern.MatchString(colour.value) {
			errs = append(errs, fmt.Errorf("%s must be #rgb or #rrggbb, got %q", colour.key, colour.value))
		}
	}

	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", logLevels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ProgramFor returns the program that opens the regular file name: the
// first entry of Programs with a matching extension, else
// DefaultProgram.
func (c *Config) ProgramFor(name string) Program {
	for _, program := range c.Programs {
		if program.Matches(name) {
			return program
		}
	}
	return c.DefaultProgram
}
