// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Executable marks a Tree file entry as executable (mode 0755).
const Executable = "#!/bin/sh\n"

// Tree creates entries under root. Keys ending in "/" are directories;
// other keys are files whose value is their content. A value starting
// with [Executable] produces a 0755 file, anything else 0644. Parent
// directories are created as needed. Returns root for chaining.
//
//	root := testutil.Tree(t, t.TempDir(), map[string]string{
//	    "usr/bin/":   "",
//	    "usr/bin/ls": testutil.Executable,
//	})
func Tree(t testing.TB, root string, entries map[string]string) string {
	t.Helper()

	for name, content := range entries {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("creating directory %s: %v", path, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", path, err)
		}
		mode := os.FileMode(0o644)
		if strings.HasPrefix(content, Executable) {
			mode = 0o755
		}
		if err := os.WriteFile(path, []byte(content), mode); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
		// WriteFile honours the umask; force the mode we asked for.
		if err := os.Chmod(path, mode); err != nil {
			t.Fatalf("chmod %s: %v", path, err)
		}
	}
	return root
}
