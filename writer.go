package capfmt

import (
	"fmt"
	"unicode/utf8"
)

// Writer appends text to a fixed-capacity byte buffer. It never grows the
// buffer: a write that does not fit fails with [ErrOverflow] and leaves the
// writer unchanged.
//
// Writer implements [io.Writer], [io.StringWriter] and [io.ByteWriter].
type Writer struct {
	buf []byte
	n   int
}

// NewWriter returns a Writer over buf. Its capacity is len(buf); existing
// contents are overwritten.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return w.n }

// Cap returns the buffer capacity.
func (w *Writer) Cap() int { return len(w.buf) }

// Available returns the number of bytes that can still be written.
func (w *Writer) Available() int { return len(w.buf) - w.n }

// Bytes returns the written bytes. The slice aliases the buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.n:w.n] }

// Finish returns the written text.
func (w *Writer) Finish() string { return string(w.buf[:w.n]) }

// Reset discards everything written so far.
func (w *Writer) Reset() { w.n = 0 }

func (w *Writer) reserve(n int) error {
	if n > w.Available() {
		return fmt.Errorf("%w: need %d bytes, %d of %d available", ErrOverflow, n, w.Available(), len(w.buf))
	}
	return nil
}

// Write appends p in full or not at all.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.reserve(len(p)); err != nil {
		return 0, err
	}
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}

// WriteString appends s in full or not at all.
func (w *Writer) WriteString(s string) (int, error) {
	if err := w.reserve(len(s)); err != nil {
		return 0, err
	}
	w.n += copy(w.buf[w.n:], s)
	return len(s), nil
}

// WriteByte appends c.
func (w *Writer) WriteByte(c byte) error {
	if err := w.reserve(1); err != nil {
		return err
	}
	w.buf[w.n] = c
	w.n++
	return nil
}

// WriteRune appends the UTF-8 encoding of r. Invalid runes are written as
// U+FFFD.
func (w *Writer) WriteRune(r rune) (int, error) {
	size := utf8.RuneLen(r)
	if size < 0 {
		r, size = utf8.RuneError, utf8.RuneLen(utf8.RuneError)
	}
	if err := w.reserve(size); err != nil {
		return 0, err
	}
	utf8.EncodeRune(w.buf[w.n:], r)
	w.n += size
	return size, nil
}

// writeRepeat appends count copies of r.
func (w *Writer) writeRepeat(r rune, count int) error {
	for range count {
		if _, err := w.WriteRune(r); err != nil {
			return err
		}
	}
	return nil
}
