// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// BoldRange makes columns [startX, endX) of a rendered line bold.
//
// lipgloss ends each styled segment with a full SGR reset, which would
// cancel a single bold-on. Bold is therefore re-asserted after every
// escape sequence inside the range.
func BoldRange(line string, startX, endX int) string {
	if startX >= endX || startX >= ansi.StringWidth(line) {
		return line
	}

	var result strings.Builder
	result.Grow(len(line) + 16)

	column := 0
	inBold := false
	var state byte
	for remaining := line; len(remaining) > 0; {
		sequence, width, byteCount, newState := ansi.DecodeSequence(remaining, state, nil)
		state = newState
		remaining = remaining[byteCount:]

		if width == 0 {
			result.WriteString(sequence)
			if inBold {
				result.WriteString("\x1b[1m")
			}
			continue
		}

		if inBold && column >= endX {
			result.WriteString("\x1b[22m")
			inBold = false
		}
		if !inBold && column >= startX && column < endX {
			result.WriteString("\x1b[1m")
			inBold = true
		}
		result.WriteString(sequence)
		column += width
	}
	if inBold {
		result.WriteString("\x1b[22m")
	}
	return result.String()
}

// FitWidth truncates text to width columns with a trailing ellipsis, or
// pads it with spaces to exactly width columns.
func FitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	textWidth := ansi.StringWidth(text)
	if textWidth > width {
		return ansi.Truncate(text, width, "…")
	}
	return text + strings.Repeat(" ", width-textWidth)
}
