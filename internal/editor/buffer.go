package editor

import "slices"

// Buffer is the single-line text being typed in Insert mode with a rune caret.
type Buffer struct {
	text  []rune
	caret int
}

// String returns the buffer text.
func (b *Buffer) String() string { return string(b.text) }

// Len returns the buffer length in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Caret returns the caret offset in runes, within [0, Len()].
func (b *Buffer) Caret() int { return b.caret }

// Set replaces the text and moves the caret to the end.
func (b *Buffer) Set(text string) {
	b.text = []rune(text)
	b.caret = len(b.text)
}

// InsertRune inserts r at the caret and advances it.
func (b *Buffer) InsertRune(r rune) {
	b.text = slices.Insert(b.text, b.caret, r)
	b.caret++
}

// Backspace removes the rune before the caret. It reports false at offset 0.
func (b *Buffer) Backspace() bool {
	if b.caret == 0 || len(b.text) == 0 {
		return false
	}
	b.text = slices.Delete(b.text, b.caret-1, b.caret)
	b.caret--
	return true
}

// Left moves the caret one rune left. It reports false at the start.
func (b *Buffer) Left() bool {
	if b.caret == 0 {
		return false
	}
	b.caret--
	return true
}

// Right moves the caret one rune right. It reports false at the end.
func (b *Buffer) Right() bool {
	if b.caret >= len(b.text) {
		return false
	}
	b.caret++
	return true
}

// Take returns the text and leaves the buffer empty with the caret at 0.
func (b *Buffer) Take() string {
	text := string(b.text)
	b.Reset()
	return text
}

// Reset clears the text and the caret.
func (b *Buffer) Reset() {
	b.text = nil
	b.caret = 0
}
