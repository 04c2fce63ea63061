package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Text is an append-only-at-end text buffer.
type Text struct {
	data []byte
}

// New creates an empty buffer.
func New() *Text {
	return &Text{}
}

// NewFromString creates a buffer holding s.
func NewFromString(s string) *Text {
	t := New()
	t.AppendString(s)
	return t
}

// Append adds r to the end of the buffer. Invalid runes are stored as
// U+FFFD.
func (t *Text) Append(r rune) {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	t.data = utf8.AppendRune(t.data, r)
}

// AppendString adds s to the end of the buffer.
func (t *Text) AppendString(s string) {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	t.data = append(t.data, s...)
}

// Backspace removes the last rune and returns it. It reports false and
// leaves the buffer untouched when the buffer is empty.
func (t *Text) Backspace() (rune, bool) {
	if len(t.data) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(t.data)
	t.data = t.data[:len(t.data)-size]
	return r, true
}

// String returns the buffer content.
func (t *Text) String() string {
	return string(t.data)
}

// Bytes returns a copy of the buffer content.
func (t *Text) Bytes() []byte {
	out := make([]byte, len(t.data))
	copy(out, t.data)
	return out
}

// Len returns the number of runes in the buffer.
func (t *Text) Len() int {
	return utf8.RuneCount(t.data)
}

// IsEmpty reports whether the buffer holds no text.
func (t *Text) IsEmpty() bool {
	return len(t.data) == 0
}

// Width returns the display width of the whole buffer in terminal columns.
// Newlines and other control characters have no width.
func (t *Text) Width() int {
	return uniseg.StringWidth(string(t.data))
}
