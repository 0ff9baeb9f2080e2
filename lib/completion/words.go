// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package completion

import "strings"

// FindWordBoundaries returns the span [start, end) of the word under
// cursor. Words are separated by spaces not preceded by a backslash.
// A cursor sitting on or just past trailing spaces selects the word
// before them.
func FindWordBoundaries(text string, cursor int) (start, end int) {
	if len(text) == 0 {
		return 0, 0
	}
	index := min(max(cursor, 0), len(text)-1)

	seenNonSpace := false
	for position := index; ; position-- {
		if position == 0 {
			if text[0] == ' ' {
				start = 1
			}
			break
		}
		if text[position] == ' ' && text[position-1] != '\\' && seenNonSpace {
			start = position + 1
			break
		}
		if !seenNonSpace {
			seenNonSpace = text[position] != ' '
		}
	}

	end = len(text)
	wasBackslash := false
	for position := start; position < len(text); position++ {
		if text[position] == ' ' && !wasBackslash {
			end = position
			break
		}
		wasBackslash = text[position] == '\\'
	}
	return start, end
}

// FindNextWord returns the offset of the second word in text, or 0 when
// text holds a single word.
func FindNextWord(text string) int {
	wasBackslash := false
	for position := 0; position < len(text); position++ {
		if text[position] == ' ' && !wasBackslash {
			return position + 1
		}
		wasBackslash = text[position] == '\\'
	}
	return 0
}

// EscapeSpaces puts a backslash in front of every space that does not
// already have one.
func EscapeSpaces(value string) string {
	if !strings.Contains(value, " ") {
		return value
	}
	var builder strings.Builder
	builder.Grow(len(value) + strings.Count(value, " "))
	wasBackslash := false
	for position := 0; position < len(value); position++ {
		character := value[position]
		if character == ' ' && !wasBackslash {
			builder.WriteByte('\\')
		}
		builder.WriteByte(character)
		wasBackslash = character == '\\'
	}
	return builder.String()
}

// EscapeAwareEquals reports whether name begins with the last trailing
// characters of token. Backslashes in either string are escape markers
// and take no part in the comparison, so a typed "My\ F" matches an
// entry named "My File". A trailing count of zero matches every name.
func EscapeAwareEquals(name, token string, trailing int) bool {
	if trailing <= 0 {
		return true
	}
	search := token[len(token)-min(trailing, len(token)):]

	nameReader := unescaper{text: name}
	searchReader := unescaper{text: search}
	for {
		want, ok := searchReader.next()
		if !ok {
			return true
		}
		got, ok := nameReader.next()
		if !ok || got != want {
			return false
		}
	}
}

// unescapedLen returns the length of value with escape markers removed.
func unescapedLen(value string) int {
	reader := unescaper{text: value}
	length := 0
	for {
		if _, ok := reader.next(); !ok {
			return length
		}
		length++
	}
}

// unescaper yields the characters of text with backslash escapes
// resolved: a backslash is dropped and the character after it is taken
// literally.
type unescaper struct {
	text     string
	position int
}

func (reader *unescaper) next() (byte, bool) {
	if reader.position < len(reader.text) && reader.text[reader.position] == '\\' {
		reader.position++
	}
	if reader.position >= len(reader.text) {
		return 0, false
	}
	character := reader.text[reader.position]
	reader.position++
	return character, true
}
