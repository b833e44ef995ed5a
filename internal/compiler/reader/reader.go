// Package reader exposes a source file one character at a time with 1-based
// line/column tracking.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// EOF is returned by Current once the input is exhausted.
const EOF rune = -1

type Reader struct {
	src    *bufio.Reader
	closer io.Closer
	ch     rune // current char
	err    error

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

// New wraps r and reads the first character.
func New(r io.Reader) *Reader {
	rd := &Reader{src: bufio.NewReader(r), line: 1, column: 0}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	rd.ReadChar()
	return rd
}

// NewString is a convenience for in-memory sources.
func NewString(s string) *Reader {
	return New(strings.NewReader(s))
}

// Open opens path for reading. The caller must Close the reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %q: %w", path, err)
	}
	return New(f), nil
}

// ReadChar advances to the next character and returns it. A newline moves the
// position to column 0 of the next line so that the following character lands
// on column 1.
func (r *Reader) ReadChar() rune {
	if r.ch == EOF {
		return r.ch
	}

	b, err := r.src.ReadByte()
	r.column++
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = err
		}
		r.ch = EOF
		return r.ch
	}

	r.ch = rune(b)
	if r.ch == '\n' {
		r.line++
		r.column = 0
	}
	return r.ch
}

// Current returns the character under the cursor, or EOF.
func (r *Reader) Current() rune {
	return r.ch
}

// Peek returns the character after the current one without consuming it.
func (r *Reader) Peek() rune {
	if r.ch == EOF {
		return EOF
	}
	b, err := r.src.Peek(1)
	if err != nil || len(b) == 0 {
		return EOF
	}
	return rune(b[0])
}

// Position returns the line and column of the current character.
func (r *Reader) Position() (line, column int) {
	return r.line, r.column
}

// Err reports a read failure other than io.EOF.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
