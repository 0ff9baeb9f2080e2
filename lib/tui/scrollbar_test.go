// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderScrollbar(t *testing.T) {
	styles := plainStyles()

	tests := []struct {
		name                   string
		height, total, visible int
		offset                 int
		want                   string
	}{
		{"fits", 4, 3, 4, 0, ""},
		{"top", 4, 8, 4, 0, "┃┃││"},
		{"bottom", 4, 8, 4, 4, "││┃┃"},
		{"middle", 4, 8, 4, 2, "│┃┃│"},
		{"minimum thumb", 3, 100, 1, 99, "││┃"},
		{"zero height", 0, 8, 4, 0, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rendered := RenderScrollbar(styles, test.height, test.total, test.visible, test.offset)
			got := strings.ReplaceAll(ansi.Strip(rendered), "\n", "")
			if got != test.want {
				t.Errorf("RenderScrollbar = %q, want %q", got, test.want)
			}
		})
	}
}
