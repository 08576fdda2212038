package wire

import (
	"encoding/binary"
	"math"
)

// Reader consumes wire encoded values from a byte slice.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Unmarshal checks the fingerprint at the head of `data` and hands the rest
// of the message to `decode`. Nothing after the fingerprint is read when the
// fingerprints differ.
func Unmarshal(data []byte, fingerprint uint64, decode func(r *Reader) error) error {
	r := NewReader(data)

	if err := r.ExpectFingerprint(fingerprint); err != nil {
		return err
	}

	return decode(r)
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// next consumes `count` elements of `size` bytes each.
func (r *Reader) next(count int, size int) ([]byte, error) {
	remaining := r.Remaining()

	if count < 0 || (size > 0 && count > remaining/size) {
		return nil, &BufferUnderrunError{Offset: r.off, Need: count * size, Remaining: remaining}
	}

	n := count * size
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// CheckCount verifies that `count` elements of at least `width` bytes each
// can still be read. Decoders call it before allocating an array whose
// length came off the wire.
func (r *Reader) CheckCount(count int, width int) error {
	if width < 1 {
		width = 1
	}

	remaining := r.Remaining()
	if count < 0 || count > remaining/width {
		need := math.MaxInt
		if count >= 0 && count <= math.MaxInt/width {
			need = count * width
		}

		return &BufferUnderrunError{Offset: r.off, Need: need, Remaining: remaining}
	}

	return nil
}

func (r *Reader) ReadFingerprint() (uint64, error) {
	b, err := r.next(1, 8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// ExpectFingerprint reads the message fingerprint and fails with a
// *DecodeMismatchError if it differs from `expected`.
func (r *Reader) ExpectFingerprint(expected uint64) error {
	got, err := r.ReadFingerprint()
	if err != nil {
		return err
	}

	if got != expected {
		return &DecodeMismatchError{Expected: expected, Got: got}
	}

	return nil
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.next(1, 1)
	if err != nil {
		return 0, err
	}

	return int8(b[0]), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.next(1, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.next(1, 1)
	if err != nil {
		return false, err
	}

	return b[0] != 0, nil
}

func (r *Reader) ReadInt16() (int16, error) {
	b, err := r.next(1, 2)
	if err != nil {
		return 0, err
	}

	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.next(1, 4)
	if err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.next(1, 8)
	if err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.next(1, 4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.next(1, 8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadString reads a length prefixed string. The length counts the
// terminating zero byte, which is dropped from the result.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}

	b, err := r.next(int(uint32(n)), 1)
	if err != nil {
		return "", err
	}

	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}

	return string(b), nil
}

// The bulk readers consume `n` elements in one read and convert the whole
// block from big-endian afterwards.

func (r *Reader) ReadInt8s(n int) ([]int8, error) {
	b, err := r.next(n, 1)
	if err != nil {
		return nil, err
	}

	v := make([]int8, n)
	for i := range v {
		v[i] = int8(b[i])
	}

	return v, nil
}

func (r *Reader) ReadUint8s(n int) ([]uint8, error) {
	b, err := r.next(n, 1)
	if err != nil {
		return nil, err
	}

	v := make([]uint8, n)
	copy(v, b)

	return v, nil
}

func (r *Reader) ReadBools(n int) ([]bool, error) {
	b, err := r.next(n, 1)
	if err != nil {
		return nil, err
	}

	v := make([]bool, n)
	for i := range v {
		v[i] = b[i] != 0
	}

	return v, nil
}

func (r *Reader) ReadInt16s(n int) ([]int16, error) {
	b, err := r.next(n, 2)
	if err != nil {
		return nil, err
	}

	v := make([]int16, n)
	for i := range v {
		v[i] = int16(binary.BigEndian.Uint16(b[i*2:]))
	}

	return v, nil
}

func (r *Reader) ReadInt32s(n int) ([]int32, error) {
	b, err := r.next(n, 4)
	if err != nil {
		return nil, err
	}

	v := make([]int32, n)
	for i := range v {
		v[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
	}

	return v, nil
}

func (r *Reader) ReadInt64s(n int) ([]int64, error) {
	b, err := r.next(n, 8)
	if err != nil {
		return nil, err
	}

	v := make([]int64, n)
	for i := range v {
		v[i] = int64(binary.BigEndian.Uint64(b[i*8:]))
	}

	return v, nil
}

func (r *Reader) ReadFloat32s(n int) ([]float32, error) {
	b, err := r.next(n, 4)
	if err != nil {
		return nil, err
	}

	v := make([]float32, n)
	for i := range v {
		v[i] = math.Float32frombits(binary.BigEndian.Uint32(b[i*4:]))
	}

	return v, nil
}

func (r *Reader) ReadFloat64s(n int) ([]float64, error) {
	b, err := r.next(n, 8)
	if err != nil {
		return nil, err
	}

	v := make([]float64, n)
	for i := range v {
		v[i] = math.Float64frombits(binary.BigEndian.Uint64(b[i*8:]))
	}

	return v, nil
}
