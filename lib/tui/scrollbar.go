// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
)

// RenderScrollbar produces a single-column scrollbar of the given height
// for a list of totalItems of which visibleItems are shown starting at
// scrollOffset. Returns "" when the whole list fits.
func RenderScrollbar(styles Styles, height, totalItems, visibleItems, scrollOffset int) string {
	if height <= 0 || totalItems <= visibleItems || totalItems <= 0 {
		return ""
	}

	thumbStart, thumbSize := scrollThumb(height, totalItems, visibleItems, scrollOffset)

	lines := make([]string, height)
	for index := range lines {
		if index >= thumbStart && index < thumbStart+thumbSize {
			lines[index] = styles.Text.Render("┃")
		} else {
			lines[index] = styles.Border.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// scrollThumb returns the thumb's first row and length. The thumb is
// proportional to visible/total with a minimum of one row, positioned
// proportionally to the offset within the scrollable range.
func scrollThumb(height, totalItems, visibleItems, scrollOffset int) (start, size int) {
	size = max(height*visibleItems/totalItems, 1)

	scrollableRange := totalItems - visibleItems
	trackRange := height - size
	if scrollableRange > 0 && trackRange > 0 {
		start = scrollOffset * trackRange / scrollableRange
	}
	start = min(max(start, 0), height-size)
	return start, size
}
