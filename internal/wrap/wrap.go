// Package wrap breaks one logical item into the display lines a pane shows for it.
package wrap

import (
	"strings"
	"unicode"
)

// Wrap splits text into fragments no wider than maxWidth runes.
//
// A line is cut at the most recent whitespace or punctuation boundary before it would
// overflow. Whitespace at the cut is dropped, punctuation stays on the left fragment. A
// word with no such boundary is force-split at maxWidth-1 runes. Empty input yields a
// single empty fragment.
func Wrap(text string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}
	rest := []rune(strings.TrimSpace(text))
	if len(rest) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, len(rest)/maxWidth+1)
	for len(rest) >= maxWidth {
		cut, skip := lastBreak(rest, maxWidth-1)
		if cut <= 0 {
			// No boundary since the last cut: force-break the word.
			cut, skip = max(1, maxWidth-1), 0
		}
		lines = append(lines, strings.TrimRightFunc(string(rest[:cut]), unicode.IsSpace))
		rest = trimLeft(rest[cut+skip:])
	}
	if len(rest) > 0 || len(lines) == 0 {
		lines = append(lines, string(rest))
	}
	return lines
}

// lastBreak finds the cut point for the boundary closest to edge, scanning back from it.
// It returns the fragment length and how many runes the boundary itself consumes.
func lastBreak(runes []rune, edge int) (int, int) {
	for i := min(edge, len(runes)-1); i >= 0; i-- {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			return i, 1
		case !isWordRune(r):
			return i + 1, 0
		}
	}
	return -1, 0
}

// isWordRune reports whether r continues a word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// trimLeft drops leading whitespace without reallocating.
func trimLeft(runes []rune) []rune {
	for len(runes) > 0 && unicode.IsSpace(runes[0]) {
		runes = runes[1:]
	}
	return runes
}
