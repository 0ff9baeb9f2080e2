// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// Fataler is the part of testing.TB the channel helpers need.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive reads one value from ch within timeout, or fails the
// test. Tests of asynchronous delivery use it instead of their own
// select on time.After.
//
//	message := testutil.RequireReceive(t, sent, 5*time.Second, "waiting for log record")
func RequireReceive[T any](t Fataler, ch <-chan T, timeout time.Duration, what string, args ...any) T {
	t.Helper()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while %s", fmt.Sprintf(what, args...))
		}
		return value
	case <-time.After(timeout):
		t.Fatalf("timed out after %v %s", timeout, fmt.Sprintf(what, args...))
	}
	panic("unreachable")
}

// RequireClosed waits up to timeout for ch to be closed, or fails the
// test.
//
//	testutil.RequireClosed(t, done, 5*time.Second, "waiting for Handle to return")
func RequireClosed(t Fataler, ch <-chan struct{}, timeout time.Duration, what string, args ...any) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v %s", timeout, fmt.Sprintf(what, args...))
	}
}
