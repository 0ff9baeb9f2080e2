// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one completion candidate.
type MenuItem struct {
	Name      string
	Directory bool
}

// Label is the text shown for the item: directories get a trailing
// separator.
func (item MenuItem) Label() string {
	if item.Directory {
		return item.Name + "/"
	}
	return item.Name
}

// Menu is the candidate list under the text box. Selected is -1 when
// no row is highlighted; Top is the first visible row.
type Menu struct {
	Items    []MenuItem
	Selected int
	Top      int

	// Visible is the number of rows Render draws.
	Visible int
}

// NewMenu returns an empty menu showing up to visible rows.
func NewMenu(visible int) Menu {
	return Menu{Selected: -1, Visible: max(visible, 1)}
}

// SetItems replaces the candidates and clears the selection.
func (menu *Menu) SetItems(items []MenuItem) {
	menu.Items = items
	menu.Reset()
}

// Reset clears the selection and scrolls to the top.
func (menu *Menu) Reset() {
	menu.Selected = -1
	menu.Top = 0
}

// HasSelection reports whether a row is highlighted.
func (menu Menu) HasSelection() bool {
	return menu.Selected >= 0 && menu.Selected < len(menu.Items)
}

// SelectedItem returns the highlighted item.
func (menu Menu) SelectedItem() (MenuItem, bool) {
	if !menu.HasSelection() {
		return MenuItem{}, false
	}
	return menu.Items[menu.Selected], true
}

// MoveUp moves the highlight up one row. Moving up from the first row
// clears the selection, returning focus to the text box.
func (menu *Menu) MoveUp() {
	if menu.Selected > -1 {
		menu.Selected--
	}
	if menu.Selected >= 0 && menu.Selected < menu.Top {
		menu.Top = menu.Selected
	}
}

// MoveDown moves the highlight down one row, stopping at the last.
func (menu *Menu) MoveDown() {
	if len(menu.Items) == 0 {
		return
	}
	menu.Selected = min(menu.Selected+1, len(menu.Items)-1)
	if menu.Selected > menu.Top+menu.Visible-1 {
		menu.Top = menu.Selected - (menu.Visible - 1)
	}
}

// Render draws the visible rows at the given width. The first
// highlight columns of every name (the typed part) are bold. A
// scrollbar occupies the last column when not every item fits.
func (menu Menu) Render(styles Styles, width, highlight int) string {
	if len(menu.Items) == 0 || width <= 0 {
		return ""
	}

	end := min(menu.Top+menu.Visible, len(menu.Items))
	rows := end - menu.Top
	scrollbar := RenderScrollbar(styles, rows, len(menu.Items), menu.Visible, menu.Top)
	textWidth := width
	if scrollbar != "" {
		textWidth--
	}

	lines := make([]string, 0, rows)
	for index := menu.Top; index < end; index++ {
		item := menu.Items[index]
		style := styles.Text
		if item.Directory {
			style = styles.Directory
		}
		if index == menu.Selected {
			style = styles.Selected
		}
		// One column of left padding, matching the text box.
		line := style.Render(FitWidth(" "+item.Label(), textWidth))
		if highlight > 0 {
			line = BoldRange(line, 1, 1+highlight)
		}
		lines = append(lines, line)
	}

	list := strings.Join(lines, "\n")
	if scrollbar == "" {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, scrollbar)
}
