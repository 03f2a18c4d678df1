// Package linebuf holds the in-progress command line of an interactive
// editor: UTF-8 text plus a cursor counted in characters (runes).
package linebuf

import "unicode/utf8"

// Buffer is a single-line edit buffer. The text is stored encoded and the
// cursor is a rune index, so every edit goes through offsets, a rune index
// to byte offset table that is rebuilt after each mutation.
type Buffer struct {
	text    []byte
	cursor  int
	offsets []int
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{
		text:    make([]byte, 0, 256),
		offsets: make([]int, 0, 256),
	}
}

// String returns the buffer text.
func (b *Buffer) String() string { return string(b.text) }

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return len(b.offsets) }

// Cursor returns the cursor position in runes, in [0, Len()].
func (b *Buffer) Cursor() int { return b.cursor }

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool { return len(b.text) == 0 }

// ByteOffset returns the byte offset of the cursor into the encoded text.
func (b *Buffer) ByteOffset() int {
	if b.cursor == len(b.offsets) {
		return len(b.text)
	}
	return b.offsets[b.cursor]
}

// Insert places r at the cursor and advances the cursor past it.
func (b *Buffer) Insert(r rune) {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	at := b.ByteOffset()
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)

	b.text = append(b.text, enc[:n]...)
	copy(b.text[at+n:], b.text[at:len(b.text)-n])
	copy(b.text[at:], enc[:n])

	b.reindex()
	b.cursor++
}

// Delete removes the rune under the cursor. At the end of the text it does
// nothing.
func (b *Buffer) Delete() {
	if b.cursor < b.Len() {
		b.removeAt(b.cursor)
	}
}

// Backspace removes the rune before the cursor and moves the cursor onto
// its position. At the start of the text it does nothing.
func (b *Buffer) Backspace() {
	if b.cursor > 0 {
		b.cursor--
		b.removeAt(b.cursor)
	}
}

// MoveBy moves the cursor by offset runes, saturating at both ends.
func (b *Buffer) MoveBy(offset int) {
	b.cursor = min(max(b.cursor+offset, 0), b.Len())
}

// Clear empties the buffer and resets the cursor. Capacity is kept for the
// next line.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.offsets = b.offsets[:0]
	b.cursor = 0
}

func (b *Buffer) removeAt(idx int) {
	start := b.offsets[idx]
	end := len(b.text)
	if idx+1 < len(b.offsets) {
		end = b.offsets[idx+1]
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.reindex()
}

func (b *Buffer) reindex() {
	b.offsets = b.offsets[:0]
	for i := 0; i < len(b.text); {
		b.offsets = append(b.offsets, i)
		_, size := utf8.DecodeRune(b.text[i:])
		i += size
	}
}
