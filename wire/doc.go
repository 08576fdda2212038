// Package wire implements the binary message format shared by generated
// message types and the plan interpreter.
//
// A message is an 8-byte big-endian fingerprint followed by its members in
// declaration order. Multi-byte numbers are big-endian, booleans are a single
// 0/1 byte and strings are a 4-byte length (including the terminator), the raw
// bytes and a trailing zero byte:
//
//	w := wire.NewWriter()
//	defer w.Release()
//	w.WriteFingerprint(fp)
//	w.WriteString("hello") // 00 00 00 06 'h' 'e' 'l' 'l' 'o' 00
//
// Readers never return partially consumed values: a read that needs more
// bytes than remain fails with a *BufferUnderrunError.
package wire
