package token

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position represents a position in source code.
type Position struct {
	// Filename is the name of the source file (optional).
	Filename string
	// Line number (1-indexed).
	Line int
	// Column is the character offset on the line (1-indexed).
	Column int
	// Offset is the byte offset from the start of source (0-indexed).
	Offset int
}

// String returns a string representation of the position.
// Format: "filename:line:column" or "line:column" if filename is empty.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a range in source code from Start to End.
type Span struct {
	Start Position
	End   Position
}

// String returns a string representation of the span.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start.String(), s.End.String())
}

// File maps byte offsets of one source text to line/column positions.
type File struct {
	name  string
	src   string
	lines []int // byte offset of the first character of each line
}

// NewFile indexes the line starts of src.
func NewFile(name, src string) *File {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &File{name: name, src: src, lines: lines}
}

// Name returns the file name given to NewFile.
func (f *File) Name() string { return f.name }

// Position returns the position of the byte at offset.
// Offsets outside the source are clamped to its bounds.
func (f *File) Position(offset int) Position {
	offset = max(0, min(offset, len(f.src)))
	line := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	start := f.lines[line]
	return Position{
		Filename: f.name,
		Line:     line + 1,
		Column:   utf8.RuneCountInString(f.src[start:offset]) + 1,
		Offset:   offset,
	}
}
