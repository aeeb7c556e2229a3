package parser

import (
	"unicode"
	"unicode/utf8"
)

// cursor is a read position in the source text.
//
// It is a value: advancing returns a new cursor and leaves the receiver
// untouched. Backtracking is therefore just continuing from a cursor the
// caller still holds.
type cursor struct {
	src string
	off int // 0 <= off <= len(src)
}

// atEOF reports whether no characters remain.
func (c cursor) atEOF() bool {
	return c.off >= len(c.src)
}

// peek returns the next character and its width in bytes.
// The width is 0 at end of input.
func (c cursor) peek() (rune, int) {
	if c.atEOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.src[c.off:])
}

// advance returns the cursor n bytes further on.
func (c cursor) advance(n int) cursor {
	c.off = min(c.off+n, len(c.src))
	return c
}

// skipSpace advances over consecutive whitespace and reports whether the
// end of input was reached.
func (c cursor) skipSpace() (cursor, bool) {
	for {
		r, size := c.peek()
		if size == 0 {
			return c, true
		}
		if !unicode.IsSpace(r) {
			return c, false
		}
		c = c.advance(size)
	}
}

// text returns the source between c and end.
func (c cursor) text(end cursor) string {
	return c.src[c.off:end.off]
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// isDigitStart reports whether r may not begin an identifier.
func isDigitStart(r rune) bool {
	return unicode.IsDigit(r)
}
