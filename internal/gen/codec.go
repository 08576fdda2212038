package gen

import (
	"github.com/dave/jennifer/jen"
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
)

// body renders the ops of one encode or decode function. Extents of
// variable dimensions are converted once, right before the first member
// that needs them.
type body struct {
	g        *Generator
	declared map[string]bool
}

func newBody(g *Generator) *body {
	return &body{
		g:        g,
		declared: make(map[string]bool),
	}
}

func genEncodeFuncs(g *Generator, f *jen.File, p *plan.Plan) {
	name := typeName(p.Struct.Ref())

	f.Commentf("%s writes the members of `%s` without the fingerprint.", idFuncEncodeOne, idRecv)
	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(name),
	).Id(idFuncEncodeOne).Params(
		jen.Id(idWriter).Op("*").Qual(wirePackage, "Writer"),
	).Error().BlockFunc(func(fg *jen.Group) {
		b := newBody(g)

		for _, op := range p.Encode {
			b.genExtents(fg, op)
			b.genEncodeOp(fg, op)
		}

		fg.Return(jen.Nil())
	})
	f.Line()

	f.Commentf("%s returns `%s` as a complete message.", idFuncEncode, idRecv)
	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(name),
	).Id(idFuncEncode).Params().Params(
		jen.Index().Byte(),
		jen.Error(),
	).Block(
		jen.Return(jen.Qual(wirePackage, "Marshal").Call(
			jen.Id(fingerprintName(p.Struct.Ref())),
			jen.Id(idRecv).Dot(idFuncEncodeOne),
		)),
	)
	f.Line()
}

func genDecodeFuncs(g *Generator, f *jen.File, p *plan.Plan) {
	name := typeName(p.Struct.Ref())

	f.Commentf("%s reads the members of `%s` written by %s.", idFuncDecodeOne, idRecv, idFuncEncodeOne)
	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(name),
	).Id(idFuncDecodeOne).Params(
		jen.Id(idReader).Op("*").Qual(wirePackage, "Reader"),
	).Error().BlockFunc(func(fg *jen.Group) {
		if len(p.Decode) > 0 {
			fg.Var().Err().Error()
			fg.Line()
		}

		b := newBody(g)

		for _, op := range p.Decode {
			b.genExtents(fg, op)
			b.genDecodeOp(fg, op)
		}

		fg.Return(jen.Nil())
	})
	f.Line()

	f.Commentf("%s reads a complete message into `%s`. On error `%s` is left untouched.", idFuncDecode, idRecv, idRecv)
	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(name),
	).Id(idFuncDecode).Params(
		jen.Id(idData).Index().Byte(),
	).Error().Block(
		jen.Var().Id(idOut).Id(name),
		jen.If(
			jen.Err().Op(":=").Qual(wirePackage, "Unmarshal").Call(
				jen.Id(idData),
				jen.Id(fingerprintName(p.Struct.Ref())),
				jen.Id(idOut).Dot(idFuncDecodeOne),
			),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Return(jen.Err()),
		),
		jen.Line(),
		jen.Op("*").Id(idRecv).Op("=").Id(idOut),
		jen.Return(jen.Nil()),
	)
}

func (b *body) genEncodeOp(g *jen.Group, op plan.Op) {
	switch op := op.(type) {
	case plan.ScalarOp:
		if op.Type.IsPrimitive() {
			g.Id(idWriter).Dot("Write" + wireSuffix(op.Type.Primitive)).Call(access(op.Access))
		} else {
			genCheck(g, access(op.Access).Dot(idFuncEncodeOne).Call(jen.Id(idWriter)))
		}
	case plan.BulkOp:
		genCheckLen(g, op.Access, op.Extent)
		g.Id(idWriter).Dot("Write" + wireSuffix(op.Type) + "s").Call(
			access(op.Access).Index(jen.Empty(), extent(op.Extent)),
		)
	case plan.LoopOp:
		genCheckLen(g, op.Access, op.Bound)
		genLoop(g, op, b.genEncodeOp)
	}
}

func (b *body) genDecodeOp(g *jen.Group, op plan.Op) {
	switch op := op.(type) {
	case plan.ScalarOp:
		if op.Type.IsPrimitive() {
			genAssign(g, access(op.Access), jen.Id(idReader).Dot("Read"+wireSuffix(op.Type.Primitive)).Call())
		} else {
			genCheckAssigned(g, access(op.Access).Dot(idFuncDecodeOne).Call(jen.Id(idReader)))
		}
	case plan.BulkOp:
		genAssign(g, access(op.Access), jen.Id(idReader).Dot("Read"+wireSuffix(op.Type)+"s").Call(extent(op.Extent)))
	case plan.AllocOp:
		if op.Checked() {
			genCheck(g, jen.Id(idReader).Dot("CheckCount").Call(extent(op.Extent), jen.Lit(op.Width())))
		}
		g.Add(access(op.Access)).Op("=").Make(b.g.goType(op.Type, op.Remaining+1), extent(op.Extent))
	case plan.LoopOp:
		genLoop(g, op, b.genDecodeOp)
	}
}

func genLoop(g *jen.Group, op plan.LoopOp, genOp func(*jen.Group, plan.Op)) {
	i := loopVar(op.Access.Depth)

	g.For(
		jen.Id(i).Op(":=").Lit(0),
		jen.Id(i).Op("<").Add(extent(op.Bound)),
		jen.Id(i).Op("++"),
	).BlockFunc(func(lg *jen.Group) {
		for _, o := range op.Body {
			genOp(lg, o)
		}
	})
}

// genExtents declares the extent variables `op` needs that haven't been
// declared yet.
func (b *body) genExtents(g *jen.Group, op plan.Op) {
	for _, member := range variableDims(op, nil) {
		if b.declared[member] {
			continue
		}

		b.declared[member] = true

		g.List(jen.Id(extentVar(member)), jen.Err()).Op(":=").Qual(wirePackage, "Extent").Call(
			jen.Id(idRecv).Dot(fieldName(member)),
		)
		genHandleError(g)
	}
}

func variableDims(op plan.Op, out []string) []string {
	add := func(d model.Dimension) {
		if d.Mode == model.DimVariable {
			out = append(out, d.Member)
		}
	}

	switch op := op.(type) {
	case plan.BulkOp:
		add(op.Extent)
	case plan.AllocOp:
		add(op.Extent)
	case plan.LoopOp:
		add(op.Bound)
		for _, o := range op.Body {
			out = variableDims(o, out)
		}
	}

	return out
}

func access(a plan.Access) *jen.Statement {
	s := jen.Id(idRecv).Dot(fieldName(a.Member))
	for d := 0; d < a.Depth; d++ {
		s = s.Index(jen.Id(loopVar(d)))
	}

	return s
}

func extent(d model.Dimension) jen.Code {
	if d.Mode == model.DimVariable {
		return jen.Id(extentVar(d.Member))
	}

	return jen.Lit(d.Size)
}

func genCheckLen(g *jen.Group, a plan.Access, d model.Dimension) {
	genCheck(g, jen.Qual(wirePackage, "CheckLen").Call(jen.Len(access(a)), extent(d)))
}

func genCheck(g *jen.Group, call jen.Code) {
	g.If(
		jen.Err().Op(":=").Add(call),
		jen.Err().Op("!=").Nil(),
	).Block(
		jen.Return(jen.Err()),
	)
}

func genCheckAssigned(g *jen.Group, call jen.Code) {
	g.If(
		jen.Err().Op("=").Add(call),
		jen.Err().Op("!=").Nil(),
	).Block(
		jen.Return(jen.Err()),
	)
}

func genAssign(g *jen.Group, target jen.Code, call jen.Code) {
	g.If(
		jen.List(target, jen.Err()).Op("=").Add(call),
		jen.Err().Op("!=").Nil(),
	).Block(
		jen.Return(jen.Err()),
	)
}

func genHandleError(g *jen.Group) {
	g.If(jen.Err().Op("!=").Nil()).Block(
		jen.Return(jen.Err()),
	)
}
