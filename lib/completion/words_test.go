// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package completion

import "testing"

func TestFindWordBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		wantStart int
		wantEnd   int
	}{
		{"empty", "", 0, 0, 0},
		{"single word", "firefox", 7, 0, 7},
		{"second word", "ls foo", 6, 3, 6},
		{"cursor in first word", "ls foo", 1, 0, 2},
		{"cursor past trailing space", "ls ", 3, 0, 2},
		{"leading space", " ls", 2, 1, 3},
		{"middle word", "a b c", 2, 2, 3},
		{"escaped space", `open My\ File`, 13, 5, 13},
		{"cursor beyond text", "vim", 40, 0, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			start, end := FindWordBoundaries(test.text, test.cursor)
			if start != test.wantStart || end != test.wantEnd {
				t.Errorf("FindWordBoundaries(%q, %d) = (%d, %d), want (%d, %d)",
					test.text, test.cursor, start, end, test.wantStart, test.wantEnd)
			}
		})
	}
}

func TestFindNextWord(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"ls -la", 3},
		{"firefox", 0},
		{`My\ File x`, 9},
		{"", 0},
	}
	for _, test := range tests {
		if got := FindNextWord(test.text); got != test.want {
			t.Errorf("FindNextWord(%q) = %d, want %d", test.text, got, test.want)
		}
	}
}

func TestEscapeSpaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"My File", `My\ File`},
		{`My\ File`, `My\ File`},
		{"a  b", `a\ \ b`},
		{"/home/me/My Documents/a b", `/home/me/My\ Documents/a\ b`},
	}
	for _, test := range tests {
		if got := EscapeSpaces(test.input); got != test.want {
			t.Errorf("EscapeSpaces(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestEscapeAwareEquals(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		token    string
		trailing int
		want     bool
	}{
		{"escaped space matches real space", "My File", `My\ F`, 5, true},
		{"only the trailing part is compared", "My File", `/home/My\ F`, 5, true},
		{"mismatch after escape", "My Fold", `My\ Fi`, 6, false},
		{"plain prefix", "foo1", "foo", 3, true},
		{"entry shorter than fragment", "fo", "foo", 3, false},
		{"zero trailing matches anything", "anything", "x", 0, true},
		{"case sensitive", "Foo", "foo", 3, false},
		{"backslash in entry is a marker", `a\b`, "ab", 2, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := EscapeAwareEquals(test.entry, test.token, test.trailing); got != test.want {
				t.Errorf("EscapeAwareEquals(%q, %q, %d) = %v, want %v",
					test.entry, test.token, test.trailing, got, test.want)
			}
		})
	}
}
