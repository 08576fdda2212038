package wire

import "fmt"

// DecodeMismatchError is returned when the fingerprint at the head of a
// message does not match the fingerprint of the type it is decoded into.
type DecodeMismatchError struct {
	Expected uint64
	Got      uint64
}

func (e *DecodeMismatchError) Error() string {
	return fmt.Sprintf("fingerprint mismatch: expected 0x%016x, got 0x%016x", e.Expected, e.Got)
}

// BufferUnderrunError is returned when a read needs more bytes than remain
// in the buffer.
type BufferUnderrunError struct {
	Offset    int
	Need      int
	Remaining int
}

func (e *BufferUnderrunError) Error() string {
	return fmt.Sprintf("buffer underrun at offset %d: need %d bytes, %d remaining", e.Offset, e.Need, e.Remaining)
}

// ExtentError is returned when an array does not hold the number of elements
// its dimension requires, or when a variable dimension has a negative value.
type ExtentError struct {
	Want int
	Have int
}

func (e *ExtentError) Error() string {
	if e.Want < 0 {
		return fmt.Sprintf("negative array extent %d", e.Want)
	}

	return fmt.Sprintf("array has %d elements, dimension requires %d", e.Have, e.Want)
}

type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8
}

// Extent converts the value of a variable dimension's sibling member into an
// array length.
func Extent[T Integer](v T) (int, error) {
	if v < 0 {
		return 0, &ExtentError{Want: int(v)}
	}

	return int(v), nil
}

// CheckLen verifies that an array of length `have` can be encoded with
// extent `want`. Extra elements are not an error; they are not written.
func CheckLen(have int, want int) error {
	if want < 0 || have < want {
		return &ExtentError{Want: want, Have: have}
	}

	return nil
}
