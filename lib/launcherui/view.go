// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launcherui

import (
	"log/slog"
	"strings"

	"github.com/bureau-foundation/pistachio/lib/tui"
)

// defaultWidth is used until the first WindowSizeMsg arrives.
const defaultWidth = 80

// View implements tea.Model. The text box is the first line, the menu
// follows when it has entries, and the status line comes last.
func (model Model) View() string {
	width := model.width
	if width <= 0 {
		width = defaultWidth
	}

	var view strings.Builder
	view.WriteString(model.renderTextBox(width))
	if menu := model.menu.Render(model.styles, width, model.highlight); menu != "" {
		view.WriteString("\n")
		view.WriteString(menu)
	}
	view.WriteString("\n")
	view.WriteString(model.renderStatus(width))
	return view.String()
}

// renderTextBox draws the text with a block caret. Text wider than the
// box scrolls horizontally to keep the caret visible.
func (model Model) renderTextBox(width int) string {
	// One column of padding on the left, one for the caret at the end.
	visible := max(width-2, 1)
	start := max(model.cursor-visible+1, 0)
	end := min(start+visible, len(model.text))

	caret := " "
	if model.cursor < len(model.text) {
		caret = model.text[model.cursor : model.cursor+1]
	}
	before := model.text[start:model.cursor]
	after := ""
	if model.cursor+1 < end {
		after = model.text[model.cursor+1 : end]
	}

	line := " " + model.styles.Text.Render(before) +
		model.styles.Caret.Render(caret) +
		model.styles.Text.Render(after)
	return tui.FitWidth(line, width)
}

// renderStatus shows, in order of precedence, the last rejected
// submission, the latest log notice, or the key help.
func (model Model) renderStatus(width int) string {
	switch {
	case model.errorText != "":
		return model.styles.Error.Render(tui.FitWidth(" "+model.errorText, width))
	case model.notice != "":
		style := model.styles.Faint
		if model.noticeLevel >= slog.LevelWarn {
			style = model.styles.Error
		}
		return style.Render(tui.FitWidth(" "+model.notice, width))
	}

	var help []string
	for _, binding := range model.keys.ShortHelp() {
		if !binding.Enabled() {
			continue
		}
		bindingHelp := binding.Help()
		help = append(help, bindingHelp.Key+" "+bindingHelp.Desc)
	}
	return model.styles.Help.Render(tui.FitWidth(" "+strings.Join(help, " · "), width))
}
