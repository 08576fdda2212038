package model

import "fmt"

// PrimitiveType is the closed set of primitive member types. The zero value
// is not a primitive; composite references use it.
type PrimitiveType int

const (
	NotPrimitive PrimitiveType = iota
	Int8
	Int16
	Int32
	Int64
	Byte
	Float32
	Float64
	String
	Boolean
)

var Primitives = []PrimitiveType{Int8, Int16, Int32, Int64, Byte, Float32, Float64, String, Boolean}

// ParsePrimitive maps a schema type name like `int32_t` to a primitive type.
func ParsePrimitive(name string) (PrimitiveType, bool) {
	for _, p := range Primitives {
		if p.String() == name {
			return p, true
		}
	}

	return NotPrimitive, false
}

// String returns the schema spelling of the type. These names take part in
// the structural hash and must never change.
func (p PrimitiveType) String() string {
	switch p {
	case Int8:
		return "int8_t"
	case Int16:
		return "int16_t"
	case Int32:
		return "int32_t"
	case Int64:
		return "int64_t"
	case Byte:
		return "byte"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case NotPrimitive:
		return ""
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// Size is the fixed wire width in bytes. Strings are length prefixed and
// have no fixed width, so their size is 0.
func (p PrimitiveType) Size() int {
	switch p {
	case Int8, Byte, Boolean:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case String, NotPrimitive:
		return 0
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// Swapped tells whether values need byte order conversion on the wire.
func (p PrimitiveType) Swapped() bool {
	switch p {
	case Int16, Int32, Int64, Float32, Float64:
		return true
	case Int8, Byte, Boolean, String, NotPrimitive:
		return false
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// IsInteger tells whether the type can bound a variable dimension.
func (p PrimitiveType) IsInteger() bool {
	switch p {
	case Int8, Int16, Int32, Int64, Byte:
		return true
	case Float32, Float64, String, Boolean, NotPrimitive:
		return false
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// Bulk tells whether arrays of the type are transferred as one contiguous
// block instead of element by element.
func (p PrimitiveType) Bulk() bool {
	return p != NotPrimitive && p != String
}

// LegalConst tells whether a constant may be declared with the type.
func (p PrimitiveType) LegalConst() bool {
	switch p {
	case Int8, Int16, Int32, Int64, Byte, Float32, Float64, Boolean:
		return true
	case String, NotPrimitive:
		return false
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// ZeroLiteral is the language neutral zero value of the type.
func (p PrimitiveType) ZeroLiteral() string {
	switch p {
	case Int8, Int16, Int32, Int64, Byte:
		return "0"
	case Float32, Float64:
		return "0.0"
	case String:
		return `""`
	case Boolean:
		return "false"
	case NotPrimitive:
		return ""
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}
