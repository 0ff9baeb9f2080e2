// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Pistachio packages.
//
// [Tree] builds a directory fixture from a compact description so that
// cache and completion tests can state the filesystem they expect in
// one literal. [RequireReceive] and [RequireClosed] bound waits on
// channels in tests of asynchronous delivery.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Pistachio-internal dependencies.
package testutil
