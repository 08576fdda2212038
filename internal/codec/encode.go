package codec

import (
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
	"github.com/koskimas/msggen/wire"
)

func (c *Codec) encodeOne(w *wire.Writer, p *plan.Plan, r Record) error {
	f := &frame{record: r}
	return c.encodeOps(w, f, p.Encode)
}

func (c *Codec) encodeOps(w *wire.Writer, f *frame, ops []plan.Op) error {
	for _, op := range ops {
		if err := c.encodeOp(w, f, op); err != nil {
			return err
		}
	}

	return nil
}

func (c *Codec) encodeOp(w *wire.Writer, f *frame, op plan.Op) error {
	switch op := op.(type) {
	case plan.ScalarOp:
		v, err := f.get(op.Access)
		if err != nil {
			return err
		}

		return c.encodeScalar(w, op, v)
	case plan.BulkOp:
		v, err := f.get(op.Access)
		if err != nil {
			return err
		}

		n, err := f.extent(op.Extent)
		if err != nil {
			return err
		}

		return encodeBulk(w, op, v, n)
	case plan.LoopOp:
		v, err := f.get(op.Access)
		if err != nil {
			return err
		}

		n, err := f.extent(op.Bound)
		if err != nil {
			return err
		}

		have, ok := length(v)
		if !ok {
			return &ValueError{Path: op.Access.String(), Expected: "an array", Got: v}
		}

		if err := wire.CheckLen(have, n); err != nil {
			return err
		}

		return f.loop(n, func() error {
			return c.encodeOps(w, f, op.Body)
		})
	}

	return nil
}

func (c *Codec) encodeScalar(w *wire.Writer, op plan.ScalarOp, v any) error {
	mismatch := func() error {
		return &ValueError{Path: op.Access.String(), Expected: op.Type.FullName(), Got: v}
	}

	var ok bool

	switch op.Type.Primitive {
	case model.Int8:
		var x int8
		if x, ok = v.(int8); ok {
			w.WriteInt8(x)
		}
	case model.Int16:
		var x int16
		if x, ok = v.(int16); ok {
			w.WriteInt16(x)
		}
	case model.Int32:
		var x int32
		if x, ok = v.(int32); ok {
			w.WriteInt32(x)
		}
	case model.Int64:
		var x int64
		if x, ok = v.(int64); ok {
			w.WriteInt64(x)
		}
	case model.Byte:
		var x uint8
		if x, ok = v.(uint8); ok {
			w.WriteUint8(x)
		}
	case model.Float32:
		var x float32
		if x, ok = v.(float32); ok {
			w.WriteFloat32(x)
		}
	case model.Float64:
		var x float64
		if x, ok = v.(float64); ok {
			w.WriteFloat64(x)
		}
	case model.String:
		var x string
		if x, ok = v.(string); ok {
			w.WriteString(x)
		}
	case model.Boolean:
		var x bool
		if x, ok = v.(bool); ok {
			w.WriteBool(x)
		}
	case model.NotPrimitive:
		var x Record
		if x, ok = v.(Record); !ok {
			return mismatch()
		}

		p, err := c.Plan(op.Type.FullName())
		if err != nil {
			return err
		}

		return c.encodeOne(w, p, x)
	}

	if !ok {
		return mismatch()
	}

	return nil
}

func encodeBulk(w *wire.Writer, op plan.BulkOp, v any, n int) error {
	have, ok := length(v)
	if !ok {
		return &ValueError{Path: op.Access.String(), Expected: "an array", Got: v}
	}

	if err := wire.CheckLen(have, n); err != nil {
		return err
	}

	switch op.Type {
	case model.Int8:
		if x, ok := v.([]int8); ok {
			w.WriteInt8s(x[:n])
			return nil
		}
	case model.Int16:
		if x, ok := v.([]int16); ok {
			w.WriteInt16s(x[:n])
			return nil
		}
	case model.Int32:
		if x, ok := v.([]int32); ok {
			w.WriteInt32s(x[:n])
			return nil
		}
	case model.Int64:
		if x, ok := v.([]int64); ok {
			w.WriteInt64s(x[:n])
			return nil
		}
	case model.Byte:
		if x, ok := v.([]uint8); ok {
			w.WriteUint8s(x[:n])
			return nil
		}
	case model.Float32:
		if x, ok := v.([]float32); ok {
			w.WriteFloat32s(x[:n])
			return nil
		}
	case model.Float64:
		if x, ok := v.([]float64); ok {
			w.WriteFloat64s(x[:n])
			return nil
		}
	case model.Boolean:
		if x, ok := v.([]bool); ok {
			w.WriteBools(x[:n])
			return nil
		}
	}

	return &ValueError{Path: op.Access.String(), Expected: "[]" + op.Type.String(), Got: v}
}
