package linewrap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"jjavery/linewrap/internal/linewrap"
)

// MIMELineLength is the line length used for base64 bodies in MIME messages.
const MIMELineLength = 76

// ErrLineLength is returned when the line length is zero or negative.
var ErrLineLength = errors.New("linewrap: line length must be positive")

// InvalidUTF8Error is returned by the string wrappers when the wrapped output
// is not valid UTF-8, typically because a chunk boundary fell inside a
// multi-byte character.
type InvalidUTF8Error struct {
	// Offset of the first invalid byte in Bytes.
	Offset int
	Bytes  []byte
}

func (err *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("linewrap: invalid UTF-8 at offset %d", err.Offset)
}

// Wrap writes input to out in chunks of lineLength bytes, writing lineEnding
// after every chunk but the last. The last chunk is written exactly once,
// even when it is empty. The first error returned by out is returned
// unchanged; a short write without an error is reported as io.ErrShortWrite.
func Wrap(input []byte, lineLength int, lineEnding []byte, out io.Writer) error {
	return wrap(input, lineLength, lineEnding, out, linewrap.Fixed)
}

// WrapString wraps input like Wrap and returns the result as a string. Splits
// land on byte counts, so a result that is not valid UTF-8 is reported as an
// *InvalidUTF8Error.
func WrapString(input string, lineLength int, lineEnding string) (string, error) {
	out, err := wrapBuffer(input, lineLength, lineEnding, linewrap.Fixed)
	if err != nil {
		return "", err
	}

	return validate(out)
}

// WrapStringRunes is like WrapString but never ends a chunk inside a
// multi-byte character. Chunks hold at most lineLength bytes unless a single
// character is longer than that, in which case it gets a chunk of its own.
// Invalid UTF-8 in input is reported before anything is wrapped.
func WrapStringRunes(input string, lineLength int, lineEnding string) (string, error) {
	if _, err := validate([]byte(input)); err != nil {
		return "", err
	}

	out, err := wrapBuffer(input, lineLength, lineEnding, linewrap.RuneSafe)
	if err != nil {
		return "", err
	}

	return validate(out)
}

func wrap(input []byte, lineLength int, lineEnding []byte, out io.Writer,
	boundary linewrap.Boundary) error {

	if lineLength <= 0 {
		return ErrLineLength
	}

	writer := linewrap.NewWriter(lineEnding, out)

	for len(input) > lineLength {
		n := boundary(input, lineLength)
		if n >= len(input) {
			break
		}

		err := writer.Chunk(input[:n])
		if err != nil {
			return err
		}

		input = input[n:]
	}

	return writer.Last(input)
}

func wrapBuffer(input string, lineLength int, lineEnding string,
	boundary linewrap.Boundary) ([]byte, error) {

	var buf bytes.Buffer
	buf.Grow(len(input))

	// writes to a bytes.Buffer can't fail
	err := wrap([]byte(input), lineLength, []byte(lineEnding), &buf, boundary)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func validate(p []byte) (string, error) {
	if utf8.Valid(p) {
		return string(p), nil
	}

	offset := 0
	for offset < len(p) {
		r, size := utf8.DecodeRune(p[offset:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		offset += size
	}

	return "", &InvalidUTF8Error{
		Offset: offset,
		Bytes:  p,
	}
}
