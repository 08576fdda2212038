package plan

import "github.com/koskimas/msggen/internal/model"

// Access addresses `Member[i0][i1]...[iN]` where N is Depth-1. A Depth of 0
// addresses the member itself.
type Access struct {
	Member string
	Depth  int
}

// Index returns the access one level deeper, indexed by the loop variable
// of the current depth.
func (a Access) Index() Access {
	return Access{Member: a.Member, Depth: a.Depth + 1}
}

// Op is a node of an encode or decode plan.
type Op interface {
	op()
	writeString(s *stringBuilder)
}

// ScalarOp writes or reads a single value. Composite values delegate to
// the referenced struct's own per-instance codec.
type ScalarOp struct {
	Access Access
	Type   model.TypeRef
}

// BulkOp transfers a whole contiguous array of fixed width primitives in a
// single buffer operation. When decoding it also allocates the array.
type BulkOp struct {
	Access Access
	Type   model.PrimitiveType
	Extent model.Dimension
}

// LoopOp runs Body once for every index of the array at Access. The index
// variable is named after the access depth.
type LoopOp struct {
	Access Access
	Bound  model.Dimension
	Body   []Op
}

// AllocOp creates the array at Access with Extent elements. Each element is
// itself an array of Remaining more dimensions, or a single value of Type if
// Remaining is 0. Only decode plans contain AllocOps.
type AllocOp struct {
	Access    Access
	Type      model.TypeRef
	Extent    model.Dimension
	Remaining int
}

// Width is the least number of bytes one element of the allocated array
// occupies on the wire. Nested arrays and composites count as one byte.
func (op AllocOp) Width() int {
	if op.Remaining > 0 || !op.Type.IsPrimitive() {
		return 1
	}

	if op.Type.Primitive == model.String {
		return 4
	}

	return op.Type.Primitive.Size()
}

// Checked tells whether the extent comes off the wire and must be checked
// against the bytes left before allocating.
func (op AllocOp) Checked() bool {
	return op.Extent.Mode == model.DimVariable
}

func (ScalarOp) op() {}
func (BulkOp) op()   {}
func (LoopOp) op()   {}
func (AllocOp) op()  {}

// Encode returns the plan for writing the members of `s` in declaration
// order.
func Encode(s *model.Struct) []Op {
	ops := make([]Op, 0, len(s.Members))

	for i := range s.Members {
		m := &s.Members[i]
		ops = append(ops, encodeMember(m)...)
	}

	return ops
}

func encodeMember(m *model.Member) []Op {
	n := len(m.Dimensions)
	if n == 0 {
		return []Op{ScalarOp{Access: Access{Member: m.Name}, Type: m.Type}}
	}

	last := Access{Member: m.Name, Depth: n - 1}
	var body []Op

	if m.Type.Primitive.Bulk() {
		body = []Op{BulkOp{Access: last, Type: m.Type.Primitive, Extent: m.Dimensions[n-1]}}
	} else {
		body = []Op{LoopOp{
			Access: last,
			Bound:  m.Dimensions[n-1],
			Body:   []Op{ScalarOp{Access: last.Index(), Type: m.Type}},
		}}
	}

	for d := n - 2; d >= 0; d-- {
		body = []Op{LoopOp{
			Access: Access{Member: m.Name, Depth: d},
			Bound:  m.Dimensions[d],
			Body:   body,
		}}
	}

	return body
}

// Decode returns the plan for reading the members of `s`. It mirrors Encode
// and allocates every array before filling it, outer dimensions first.
func Decode(s *model.Struct) []Op {
	ops := make([]Op, 0, len(s.Members))

	for i := range s.Members {
		m := &s.Members[i]

		if len(m.Dimensions) == 0 {
			ops = append(ops, ScalarOp{Access: Access{Member: m.Name}, Type: m.Type})
		} else {
			ops = append(ops, decodeArray(m, 0)...)
		}
	}

	return ops
}

func decodeArray(m *model.Member, depth int) []Op {
	n := len(m.Dimensions)
	access := Access{Member: m.Name, Depth: depth}
	dim := m.Dimensions[depth]

	if depth == n-1 && m.Type.Primitive.Bulk() {
		return []Op{BulkOp{Access: access, Type: m.Type.Primitive, Extent: dim}}
	}

	var body []Op
	if depth == n-1 {
		body = []Op{ScalarOp{Access: access.Index(), Type: m.Type}}
	} else {
		body = decodeArray(m, depth+1)
	}

	return []Op{
		AllocOp{Access: access, Type: m.Type, Extent: dim, Remaining: n - depth - 1},
		LoopOp{Access: access, Bound: dim, Body: body},
	}
}
