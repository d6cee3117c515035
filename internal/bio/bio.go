// Package bio provides little-endian cursor access over in-memory byte
// buffers for the PEC/PES codec. The reader reports short reads as
// ErrShortBuffer rather than returning partial data; the writer is an
// append-only buffer that never fails.
package bio

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortBuffer is returned when a read would run past the end of the
// buffer. The cursor is left unchanged.
var ErrShortBuffer = errors.New("bio: read past end of buffer")

// Reader is a cursor over a byte slice. All multi-byte reads are
// little-endian, matching the PEC/PES wire format.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf. The Reader
// aliases buf and never copies it.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// Seek moves the cursor to the absolute offset off.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.buf) {
		return ErrShortBuffer
	}
	r.off = off
	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.off+n > len(r.buf) {
		return ErrShortBuffer
	}
	r.off += n
	return nil
}

// Bytes returns the next n bytes without copying and advances the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// U8 reads one byte.
func (r *Reader) U8() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrShortBuffer
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U24 reads a little-endian 24-bit unsigned integer.
func (r *Reader) U24() (uint32, error) {
	b, err := r.Bytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Writer is an append-only little-endian buffer. Writes cannot fail; the
// completed buffer is retrieved with Bytes.
type Writer struct {
	buf []byte
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the written buffer. The slice aliases the Writer's storage.
func (w *Writer) Bytes() []byte { return w.buf }

// U8 appends one byte.
func (w *Writer) U8(v byte) { w.buf = append(w.buf, v) }

// U16 appends a little-endian uint16.
func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// U24 appends a little-endian 24-bit unsigned integer.
func (w *Writer) U24(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16))
}

// U32 appends a little-endian uint32.
func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// F32 appends a little-endian IEEE 754 float32.
func (w *Writer) F32(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// Write appends raw bytes.
func (w *Writer) Write(b []byte) { w.buf = append(w.buf, b...) }

// String appends the raw bytes of s.
func (w *Writer) String(s string) { w.buf = append(w.buf, s...) }

// Fill appends n copies of b.
func (w *Writer) Fill(n int, b byte) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, b)
	}
}
