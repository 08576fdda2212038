package plan

import "github.com/koskimas/msggen/internal/model"

// Value describes how to construct the default value of a member.
type Value interface {
	value()
	writeString(s *stringBuilder)
}

// ZeroValue is the zero literal of a primitive type.
type ZeroValue struct {
	Type model.PrimitiveType
}

// StructValue is a default constructed instance of a struct.
type StructValue struct {
	Type model.TypeRef
}

// EmptyArray is a zero length array for a variable dimension. Dims counts
// the dimensions of the array including this one.
type EmptyArray struct {
	Type model.TypeRef
	Dims int
}

// FilledArray is an array of a constant dimension with every element set
// to Elem.
type FilledArray struct {
	Type model.TypeRef
	Dims int
	Size int
	Elem Value
}

func (ZeroValue) value()   {}
func (StructValue) value() {}
func (EmptyArray) value()  {}
func (FilledArray) value() {}

type MemberInit struct {
	Member string
	Value  Value
}

// ConstInit is a constant with its literal already parsed. For fixed point
// constants Bits holds the raw bit pattern that Value was reinterpreted from.
type ConstInit struct {
	Name       string
	Type       model.PrimitiveType
	Literal    string
	FixedPoint bool
	Bits       uint64
	Value      any
	Comment    string
}

// Init returns the default value of every member of `s`.
func Init(s *model.Struct) []MemberInit {
	inits := make([]MemberInit, 0, len(s.Members))

	for i := range s.Members {
		m := &s.Members[i]

		inits = append(inits, MemberInit{
			Member: m.Name,
			Value:  InitValue(m.Type, m.Dimensions),
		})
	}

	return inits
}

// InitValue returns the default value of a `t` typed value with the given
// remaining dimensions.
func InitValue(t model.TypeRef, dims []model.Dimension) Value {
	if len(dims) == 0 {
		if t.IsPrimitive() {
			return ZeroValue{Type: t.Primitive}
		}

		return StructValue{Type: t}
	}

	d := dims[0]
	if d.Mode == model.DimVariable {
		return EmptyArray{Type: t, Dims: len(dims)}
	}

	return FilledArray{
		Type: t,
		Dims: len(dims),
		Size: d.Size,
		Elem: InitValue(t, dims[1:]),
	}
}

// Constants parses the constants of `s`.
func Constants(s *model.Struct) ([]ConstInit, error) {
	consts := make([]ConstInit, 0, len(s.Constants))

	for i := range s.Constants {
		c := &s.Constants[i]

		v, err := c.Value()
		if err != nil {
			return nil, err
		}

		ci := ConstInit{
			Name:       c.Name,
			Type:       c.Type,
			Literal:    c.Literal,
			FixedPoint: c.FixedPoint,
			Value:      v,
			Comment:    c.Comment,
		}

		if c.FixedPoint {
			if ci.Bits, err = c.Bits(); err != nil {
				return nil, err
			}
		}

		consts = append(consts, ci)
	}

	return consts, nil
}
