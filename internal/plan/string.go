package plan

import (
	"fmt"
	"strings"
)

func (p *Plan) String() string {
	var s stringBuilder

	s.Linef("struct %s fingerprint 0x%016x", p.Struct.FullName(), p.Fingerprint)
	writeOps(&s, "encode", p.Encode)
	writeOps(&s, "decode", p.Decode)

	s.Block("init", "", func() {
		for _, i := range p.Init {
			s.WriteString(i.Member)
			s.WriteString(" = ")
			i.Value.writeString(&s)
			s.WriteNewLine()
		}
	})

	if len(p.Constants) > 0 {
		s.Block("constants", "", func() {
			for _, c := range p.Constants {
				s.WriteString(fmt.Sprintf("%s %s = %s", c.Name, c.Type, c.Literal))
				if c.FixedPoint {
					s.WriteString(" (fixed point)")
				}
				s.WriteNewLine()
			}
		})
	}

	return s.String()
}

// OpsString renders a list of ops, one per line.
func OpsString(ops []Op) string {
	var s stringBuilder
	for _, op := range ops {
		op.writeString(&s)
	}
	return s.String()
}

func writeOps(s *stringBuilder, title string, ops []Op) {
	s.Block(title, "", func() {
		for _, op := range ops {
			op.writeString(s)
		}
	})
}

func (a Access) String() string {
	var b strings.Builder
	b.WriteString(a.Member)

	for i := 0; i < a.Depth; i += 1 {
		fmt.Fprintf(&b, "[i%d]", i)
	}

	return b.String()
}

func (o ScalarOp) writeString(s *stringBuilder) {
	s.Linef("scalar %s %s", o.Access, o.Type.FullName())
}

func (o BulkOp) writeString(s *stringBuilder) {
	s.Linef("bulk %s %s[%s]", o.Access, o.Type, o.Extent.Text())
}

func (o LoopOp) writeString(s *stringBuilder) {
	header := fmt.Sprintf("for i%d < %s in %s {", o.Access.Depth, o.Bound.Text(), o.Access)

	s.Block(header, "}", func() {
		for _, op := range o.Body {
			op.writeString(s)
		}
	})
}

func (o AllocOp) writeString(s *stringBuilder) {
	s.Linef("alloc %s %s[%s]%s", o.Access, o.Type.FullName(), o.Extent.Text(), strings.Repeat("[]", o.Remaining))
}

func (v ZeroValue) writeString(s *stringBuilder) {
	s.WriteString(v.Type.ZeroLiteral())
}

func (v StructValue) writeString(s *stringBuilder) {
	s.WriteString(v.Type.FullName() + "{}")
}

func (v EmptyArray) writeString(s *stringBuilder) {
	s.WriteString(fmt.Sprintf("%s%s{}", v.Type.FullName(), strings.Repeat("[]", v.Dims)))
}

func (v FilledArray) writeString(s *stringBuilder) {
	s.WriteString(fmt.Sprintf("[%d]{", v.Size))
	v.Elem.writeString(s)
	s.WriteString("}")
}
