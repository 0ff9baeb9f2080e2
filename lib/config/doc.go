// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the pistachio
// launcher.
//
// Configuration is a single file. Its location is, in order: the
// --config flag (via [LoadFile]), the PISTACHIO_CONFIG environment
// variable, or ~/.config/pistachio/config.yaml (both via [Load]). Only
// the last location is created when missing: [Load] writes the defaults
// there on first run so the user has a file to edit.
//
// Files ending in .json or .jsonc are JSON with comments and trailing
// commas allowed. Anything else is YAML. Both formats use the same keys.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. A leading "~" is
// left alone; the directory cache and path resolver expand it.
//
// Key exports:
//
//   - [Config] -- binaries directory, programs, menu, pool sizes, theme
//   - [Default] -- the built-in configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.ProgramFor] -- the program that opens a given file
//
// This package depends on no other pistachio packages.
package config
