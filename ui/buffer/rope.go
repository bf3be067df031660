package buffer

import (
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// RopeBuffer is a Buffer backed by a rope. The viewer never edits it, so the
// rope is built once from a file's contents.
type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node {
	return (*rope.Node)(b)
}

// eachRuneFrom calls fn with the byte offset and value of every rune at or
// after pos, until fn returns true or the buffer ends.
func (b *RopeBuffer) eachRuneFrom(pos int, fn func(pos int, r rune) bool) {
	n := b.node()
	if pos >= n.Len() {
		return
	}
	_, rest := n.SplitAt(pos)
	rest.EachLeaf(func(leaf *rope.Node) bool {
		data := leaf.Value() // Reference; not a copy.
		for i := 0; i < len(data); {
			r, size := utf8.DecodeRune(data[i:])
			if fn(pos, r) {
				return true
			}
			i += size
			pos += size
		}
		return false
	})
}

// lineStart returns the first byte offset of line. The returned offset can be
// equal to the length of the buffer, which means the line is the last, empty
// line of the buffer. If the buffer has fewer lines, a panic is issued.
func (b *RopeBuffer) lineStart(line int) int {
	n := b.node()
	var pos int

	if line > 0 {
		n.IndexAllFunc(0, n.Len(), []byte{'\n'}, func(idx int) bool {
			line--
			pos = idx + 1
			return line <= 0
		})
	}

	if line > 0 {
		panic("lineStart: not enough lines in buffer to reach position")
	}

	return pos
}

// LineColToPos returns the index of the byte at line, col. If line is out of
// range the function panics. If col is greater than the length of the line,
// the offset of the line delimiter is returned instead.
func (b *RopeBuffer) LineColToPos(line, col int) int {
	pos := b.lineStart(line)
	if col <= 0 {
		return pos
	}

	end := b.Len()
	b.eachRuneFrom(pos, func(at int, r rune) bool {
		if col == 0 || r == '\n' || (r == '\r' && b.isLF(at+1)) {
			end = at
			return true
		}
		col--
		return false
	})
	return end
}

func (b *RopeBuffer) isLF(pos int) bool {
	n := b.node()
	return pos < n.Len() && n.Slice(pos, pos+1)[0] == '\n'
}

// Line returns a slice of the data at the given line, including the ending line-
// delimiter. Data returned may or may not be a copy: do not write to it.
func (b *RopeBuffer) Line(line int) []byte {
	start := b.lineStart(line)
	end := b.Len()
	b.eachRuneFrom(start, func(at int, r rune) bool {
		if r == '\n' {
			end = at + 1
			return true
		}
		return false
	})
	return b.node().Slice(start, end)
}

// Bytes returns all of the bytes in the buffer. This function is very likely
// to copy all of the data in the buffer. Use sparingly.
func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

// Returns the number of occurrences of 'sequence' in the buffer, within the range
// of start line and col, to end line and col. End is exclusive.
func (b *RopeBuffer) Count(startLine, startCol, endLine, endCol int, sequence []byte) int {
	startPos := b.LineColToPos(startLine, startCol)
	endPos := b.LineColToPos(endLine, endCol)
	return b.node().Count(startPos, endPos, sequence)
}

// Len returns the number of bytes in the buffer.
func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

// Lines returns the number of lines in the buffer. If the buffer is empty,
// 1 is returned, because there is always at least one line.
func (b *RopeBuffer) Lines() int {
	n := b.node()
	return n.Count(0, n.Len(), []byte{'\n'}) + 1
}

// RunesInLine returns the number of runes in the given line. That is, the
// number of Utf-8 codepoints in the line, not bytes. Excludes line delimiters.
func (b *RopeBuffer) RunesInLine(line int) int {
	var count int
	b.eachRuneFrom(b.lineStart(line), func(at int, r rune) bool {
		if r == '\n' || (r == '\r' && b.isLF(at+1)) {
			return true
		}
		count++
		return false
	})
	return count
}

// ClampLineCol is a utility function to clamp any provided line and col to
// only possible values within the buffer, pointing to runes. It first clamps
// the line, then clamps the column. The column is clamped between zero and
// the line delimiter.
func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if lines := b.Lines() - 1; line > lines {
		line = lines
	}

	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

// PosToLineCol converts a byte offset of the buffer's bytes into a line and
// column. Position will be clamped.
func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	var line, col int
	if pos <= 0 {
		return line, col
	}

	b.eachRuneFrom(0, func(at int, r rune) bool {
		if at >= pos {
			return true
		}
		if r == '\n' {
			line, col = line+1, 0
		} else {
			col++
		}
		return false
	})

	return line, col
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}
