package buffer

import (
	"io"
)

// A Buffer is a read-only view of a text document stored in any data
// structure, like a rope. All API function parameters are line and column
// indexes, starting at zero; columns count runes, not bytes.
//
// Any bounds out of range are panics! If you are unsure your position may be
// out of bounds, use ClampLineCol() or compare with Lines() or RunesInLine().
type Buffer interface {
	// Line returns a slice of the data at the given line, including the ending line-
	// delimiter. Data returned may or may not be a copy: do not write to it.
	Line(line int) []byte

	// Bytes returns all of the bytes in the buffer. This function is very likely
	// to copy all of the data in the buffer.
	Bytes() []byte

	// Returns the number of occurrences of 'sequence' in the buffer, within the range
	// of start line and col, to end line and col. [start, end) (exclusive end).
	Count(startLine, startCol, endLine, endCol int, sequence []byte) int

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. If the buffer is empty,
	// 1 is returned, because there is always at least one line.
	Lines() int

	// RunesInLine returns the number of runes in the given line, excluding the
	// line delimiter (LF or CRLF).
	RunesInLine(line int) int

	// ClampLineCol clamps the line to the buffer's lines, then the column
	// between zero and the line's length in runes.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the byte offset of the rune at line, col. If col is
	// past the end of the line, the offset of the line delimiter is returned.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset into a line and column. The position
	// is clamped to the buffer.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
