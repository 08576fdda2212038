package hash

import "github.com/koskimas/msggen/internal/model"

const shapeSeed = 0x12345678

// Shape hashes the shape of a single struct: member names, primitive type
// names, dimension counts, modes and sizes, in declaration order. Referenced
// structs are not followed and the struct's own name is not included.
//
// The arithmetic is signed with an arithmetic right shift, and every input
// byte is treated as a signed char, so that fingerprints match other
// implementations of the same wire format.
func Shape(s *model.Struct) uint64 {
	var v int64 = shapeSeed

	for i := range s.Members {
		m := &s.Members[i]

		v = updateString(v, m.Name)
		if m.Type.IsPrimitive() {
			v = updateString(v, m.Type.Primitive.String())
		}

		v = update(v, byte(len(m.Dimensions)))
		for _, d := range m.Dimensions {
			v = update(v, byte(d.Mode))
			v = updateString(v, d.Text())
		}
	}

	return uint64(v)
}

func update(v int64, c byte) int64 {
	return ((v << 8) ^ (v >> 55)) + int64(int8(c))
}

func updateString(v int64, s string) int64 {
	v = update(v, byte(len(s)))

	for i := 0; i < len(s); i++ {
		v = update(v, s[i])
	}

	return v
}
