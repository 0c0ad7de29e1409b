package linewrap

import (
	"io"
	"unicode/utf8"
)

// Writer writes chunks and delimiters to out. The first error is kept and
// returned by every later call.
type Writer struct {
	delim []byte
	out   io.Writer
	err   error
}

func NewWriter(delim []byte, out io.Writer) *Writer {
	writer := Writer{
		delim: delim,
		out:   out,
	}

	return &writer
}

// Chunk writes p followed by the delimiter.
func (writer *Writer) Chunk(p []byte) error {
	writer.write(p)
	writer.write(writer.delim)

	return writer.err
}

// Last writes p without a delimiter. It always calls out.Write, even for an
// empty p.
func (writer *Writer) Last(p []byte) error {
	writer.write(p)

	return writer.err
}

func (writer *Writer) write(p []byte) {
	if writer.err != nil {
		return
	}

	n, err := writer.out.Write(p)
	if err != nil {
		writer.err = err
		return
	}
	if n != len(p) {
		writer.err = io.ErrShortWrite
	}
}

// Boundary returns the length of the next chunk of p for a line length of
// size. It is only called while len(p) > size. A result of len(p) or more
// makes the rest of p the last chunk.
type Boundary func(p []byte, size int) int

// Fixed cuts every chunk at exactly size bytes.
func Fixed(p []byte, size int) int {
	return size
}

// RuneSafe cuts at most size bytes without ending inside a UTF-8 sequence.
// A rune longer than size makes up a chunk on its own.
func RuneSafe(p []byte, size int) int {
	n := size
	for n > 0 && !utf8.RuneStart(p[n]) {
		n--
	}
	if n > 0 {
		return n
	}

	_, width := utf8.DecodeRune(p)

	return width
}
