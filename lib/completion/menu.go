// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package completion

// DefaultMenuSize caps the candidate menu when Menu is given no limit.
const DefaultMenuSize = 100

// Menu returns up to limit entries of the enumerated listing that match
// its search fragment, directories first and then in byte order. A
// command token with nothing typed yet has no menu.
func (engine *Engine) Menu(enumeration Enumeration, limit int) []string {
	entries := engine.MenuEntries(enumeration, limit)
	if entries == nil {
		return nil
	}
	names := make([]string, len(entries))
	for index, entry := range entries {
		names[index] = enumeration.View.Name(entry)
	}
	return names
}

// MenuEntries is Menu returning listing indices into enumeration.View,
// so callers can consult the entries' metadata.
func (engine *Engine) MenuEntries(enumeration Enumeration, limit int) []int {
	view := enumeration.View
	if !view.Valid() || view.Len() == 0 {
		return nil
	}
	if enumeration.IsCommand && enumeration.Trailing == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultMenuSize
	}

	var entries []int
	for _, entry := range view.Sorted() {
		if len(entries) == limit {
			break
		}
		if EscapeAwareEquals(view.Name(entry), enumeration.Search, enumeration.Trailing) {
			entries = append(entries, entry)
		}
	}
	return entries
}
