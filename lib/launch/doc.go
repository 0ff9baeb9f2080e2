// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package launch turns the submitted text box contents into a shell
// command and runs it.
//
// [Parser.Parse] distinguishes two forms. A command line (more than one
// word, or a single word not starting with "/" or "~") must name an
// executable on $PATH; [pathresolve.Resolver.FindExecutable] classifies
// why it does not. A lone path is opened: directories with the
// configured folder program, regular files with the first program whose
// extension matches, else the default program.
//
// [Run] hands the line to sh -c. Daemonized commands start in their own
// session and the launcher does not wait for them, so they outlive it.
// Attached commands run in their own process group with the launcher's
// standard streams and are waited on.
package launch
