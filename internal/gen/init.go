package gen

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dave/jennifer/jen"
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
)

func genConstants(f *jen.File, p *plan.Plan) {
	if len(p.Constants) == 0 {
		return
	}

	t := p.Struct.Ref()

	for _, c := range p.Constants {
		if c.Comment != "" {
			genComment(f.Group, c.Comment)
		}

		if bits, ok := floatBits(c); ok {
			// Not every float can be written as a literal, so these are
			// rebuilt from their bit pattern.
			f.Var().Id(constName(t, c.Name)).Op("=").Add(fromBits(c.Type, bits))
		} else {
			f.Const().Id(constName(t, c.Name)).Add(primitiveType(c.Type)).Op("=").Id(constLiteral(c.Value))
		}
	}

	f.Line()
}

// floatBits returns the bit pattern of float constants that are fixed point
// or have no literal.
func floatBits(c plan.ConstInit) (uint64, bool) {
	switch v := c.Value.(type) {
	case float32:
		if c.FixedPoint {
			return c.Bits, true
		}

		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return uint64(math.Float32bits(v)), true
		}
	case float64:
		if c.FixedPoint {
			return c.Bits, true
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Float64bits(v), true
		}
	}

	return 0, false
}

func fromBits(t model.PrimitiveType, bits uint64) jen.Code {
	if t == model.Float32 {
		return jen.Qual("math", "Float32frombits").Call(jen.Id(fmt.Sprintf("0x%08x", uint32(bits))))
	}

	return jen.Qual("math", "Float64frombits").Call(jen.Id(fmt.Sprintf("0x%016x", bits)))
}

func constLiteral(v any) string {
	switch v := v.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	return fmt.Sprint(v)
}

func genNewFunc(g *Generator, f *jen.File, p *plan.Plan) {
	name := typeName(p.Struct.Ref())

	f.Commentf("%s%s returns a `%s` with every member set to its default value.", idFuncNewPrefix, name, name)
	f.Func().Id(idFuncNewPrefix + name).Params().Id(name).Block(
		jen.Return(jen.Id(name).Values(jen.DictFunc(func(d jen.Dict) {
			for _, i := range p.Init {
				d[jen.Id(fieldName(i.Member))] = g.initValue(i.Value)
			}
		}))),
	)
	f.Line()
}

func (g *Generator) initValue(v plan.Value) jen.Code {
	switch v := v.(type) {
	case plan.ZeroValue:
		return zeroValue(v.Type)
	case plan.StructValue:
		return jen.Qual(g.ImportPath(v.Type.Package), idFuncNewPrefix+typeName(v.Type)).Call()
	case plan.EmptyArray:
		return g.goType(v.Type, v.Dims).Values()
	case plan.FilledArray:
		if _, ok := v.Elem.(plan.ZeroValue); ok {
			return jen.Make(g.goType(v.Type, v.Dims), jen.Lit(v.Size))
		}

		return g.goType(v.Type, v.Dims).ValuesFunc(func(vg *jen.Group) {
			for i := 0; i < v.Size; i++ {
				vg.Add(g.initValue(v.Elem))
			}
		})
	}

	panic(fmt.Sprintf("unknown init value %T", v))
}

func zeroValue(p model.PrimitiveType) jen.Code {
	switch p {
	case model.Int8, model.Int16, model.Int32, model.Int64, model.Byte, model.Float32, model.Float64:
		return jen.Lit(0)
	case model.String:
		return jen.Lit("")
	case model.Boolean:
		return jen.False()
	case model.NotPrimitive:
		return jen.Nil()
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}
