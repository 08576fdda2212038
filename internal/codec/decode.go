package codec

import (
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
	"github.com/koskimas/msggen/wire"
)

func (c *Codec) decodeOne(rd *wire.Reader, p *plan.Plan) (Record, error) {
	f := &frame{record: make(Record, len(p.Struct.Members))}

	if err := c.decodeOps(rd, f, p.Decode); err != nil {
		return nil, err
	}

	return f.record, nil
}

func (c *Codec) decodeOps(rd *wire.Reader, f *frame, ops []plan.Op) error {
	for _, op := range ops {
		if err := c.decodeOp(rd, f, op); err != nil {
			return err
		}
	}

	return nil
}

func (c *Codec) decodeOp(rd *wire.Reader, f *frame, op plan.Op) error {
	switch op := op.(type) {
	case plan.ScalarOp:
		v, err := c.decodeScalar(rd, op.Type)
		if err != nil {
			return err
		}

		return f.set(op.Access, v)
	case plan.BulkOp:
		n, err := f.extent(op.Extent)
		if err != nil {
			return err
		}

		v, err := decodeBulk(rd, op.Type, n)
		if err != nil {
			return err
		}

		return f.set(op.Access, v)
	case plan.AllocOp:
		n, err := f.extent(op.Extent)
		if err != nil {
			return err
		}

		if op.Checked() {
			if err := rd.CheckCount(n, op.Width()); err != nil {
				return err
			}
		}

		return f.set(op.Access, makeArray(op.Type, n, op.Remaining))
	case plan.LoopOp:
		n, err := f.extent(op.Bound)
		if err != nil {
			return err
		}

		return f.loop(n, func() error {
			return c.decodeOps(rd, f, op.Body)
		})
	}

	return nil
}

func (c *Codec) decodeScalar(rd *wire.Reader, t model.TypeRef) (any, error) {
	switch t.Primitive {
	case model.Int8:
		return rd.ReadInt8()
	case model.Int16:
		return rd.ReadInt16()
	case model.Int32:
		return rd.ReadInt32()
	case model.Int64:
		return rd.ReadInt64()
	case model.Byte:
		return rd.ReadUint8()
	case model.Float32:
		return rd.ReadFloat32()
	case model.Float64:
		return rd.ReadFloat64()
	case model.String:
		return rd.ReadString()
	case model.Boolean:
		return rd.ReadBool()
	}

	p, err := c.Plan(t.FullName())
	if err != nil {
		return nil, err
	}

	return c.decodeOne(rd, p)
}

func decodeBulk(rd *wire.Reader, t model.PrimitiveType, n int) (any, error) {
	switch t {
	case model.Int8:
		return rd.ReadInt8s(n)
	case model.Int16:
		return rd.ReadInt16s(n)
	case model.Int32:
		return rd.ReadInt32s(n)
	case model.Int64:
		return rd.ReadInt64s(n)
	case model.Byte:
		return rd.ReadUint8s(n)
	case model.Float32:
		return rd.ReadFloat32s(n)
	case model.Float64:
		return rd.ReadFloat64s(n)
	case model.Boolean:
		return rd.ReadBools(n)
	}

	return nil, &ValueError{Path: t.String(), Expected: "a fixed width primitive", Got: nil}
}
