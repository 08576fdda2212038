package wire

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/valyala/bytebufferpool"
)

// Writer appends wire encoded values to a pooled buffer. A Writer must be
// released once its bytes have been copied out.
type Writer struct {
	buf *bytebufferpool.ByteBuffer
}

func NewWriter() *Writer {
	return &Writer{buf: bytebufferpool.Get()}
}

// Marshal encodes a complete message: the fingerprint followed by whatever
// `encode` writes. There is no length prefix for the whole message.
func Marshal(fingerprint uint64, encode func(w *Writer) error) ([]byte, error) {
	w := NewWriter()
	defer w.Release()

	w.WriteFingerprint(fingerprint)

	if err := encode(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Release returns the underlying buffer to the pool.
func (w *Writer) Release() {
	if w.buf != nil {
		bytebufferpool.Put(w.buf)
		w.buf = nil
	}
}

// Bytes returns a copy of the bytes written so far.
func (w *Writer) Bytes() []byte {
	return slices.Clone(w.buf.B)
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

// extend grows the buffer by n bytes and returns the new tail for the caller
// to fill.
func (w *Writer) extend(n int) []byte {
	l := len(w.buf.B)
	w.buf.B = slices.Grow(w.buf.B, n)[:l+n]
	return w.buf.B[l:]
}

func (w *Writer) WriteFingerprint(fp uint64) {
	binary.BigEndian.PutUint64(w.extend(8), fp)
}

func (w *Writer) WriteInt8(v int8) {
	_ = w.buf.WriteByte(byte(v))
}

func (w *Writer) WriteUint8(v uint8) {
	_ = w.buf.WriteByte(v)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		_ = w.buf.WriteByte(1)
	} else {
		_ = w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteInt16(v int16) {
	binary.BigEndian.PutUint16(w.extend(2), uint16(v))
}

func (w *Writer) WriteInt32(v int32) {
	binary.BigEndian.PutUint32(w.extend(4), uint32(v))
}

func (w *Writer) WriteInt64(v int64) {
	binary.BigEndian.PutUint64(w.extend(8), uint64(v))
}

func (w *Writer) WriteFloat32(v float32) {
	binary.BigEndian.PutUint32(w.extend(4), math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	binary.BigEndian.PutUint64(w.extend(8), math.Float64bits(v))
}

// WriteString writes the length (including the terminator), the raw bytes
// and a terminating zero byte.
func (w *Writer) WriteString(v string) {
	binary.BigEndian.PutUint32(w.extend(4), uint32(len(v)+1))
	_, _ = w.buf.WriteString(v)
	_ = w.buf.WriteByte(0)
}

// The bulk writers below convert a whole contiguous array to big-endian in a
// single pass and append it with one buffer write. The caller's slice is not
// modified.

func (w *Writer) WriteInt8s(v []int8) {
	b := w.extend(len(v))
	for i, x := range v {
		b[i] = byte(x)
	}
}

func (w *Writer) WriteUint8s(v []uint8) {
	_, _ = w.buf.Write(v)
}

func (w *Writer) WriteBools(v []bool) {
	b := w.extend(len(v))
	for i, x := range v {
		if x {
			b[i] = 1
		} else {
			b[i] = 0
		}
	}
}

func (w *Writer) WriteInt16s(v []int16) {
	b := w.extend(len(v) * 2)
	for i, x := range v {
		binary.BigEndian.PutUint16(b[i*2:], uint16(x))
	}
}

func (w *Writer) WriteInt32s(v []int32) {
	b := w.extend(len(v) * 4)
	for i, x := range v {
		binary.BigEndian.PutUint32(b[i*4:], uint32(x))
	}
}

func (w *Writer) WriteInt64s(v []int64) {
	b := w.extend(len(v) * 8)
	for i, x := range v {
		binary.BigEndian.PutUint64(b[i*8:], uint64(x))
	}
}

func (w *Writer) WriteFloat32s(v []float32) {
	b := w.extend(len(v) * 4)
	for i, x := range v {
		binary.BigEndian.PutUint32(b[i*4:], math.Float32bits(x))
	}
}

func (w *Writer) WriteFloat64s(v []float64) {
	b := w.extend(len(v) * 8)
	for i, x := range v {
		binary.BigEndian.PutUint64(b[i*8:], math.Float64bits(x))
	}
}
