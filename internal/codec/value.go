package codec

import (
	"fmt"
	"reflect"

	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
	"github.com/koskimas/msggen/wire"
)

// frame is the state of one struct instance being encoded or decoded: the
// record and the current loop indexes.
type frame struct {
	record Record
	index  []int
}

func (f *frame) get(a plan.Access) (any, error) {
	v, ok := f.record[a.Member]
	if !ok {
		return nil, fmt.Errorf(`member "%s" is missing`, a.Member)
	}

	for d := 0; d < a.Depth; d++ {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, &ValueError{Path: a.String(), Expected: "an array", Got: v}
		}

		i := f.index[d]
		if i >= rv.Len() {
			return nil, &wire.ExtentError{Want: i + 1, Have: rv.Len()}
		}

		v = rv.Index(i).Interface()
	}

	return v, nil
}

func (f *frame) set(a plan.Access, v any) error {
	if a.Depth == 0 {
		f.record[a.Member] = v
		return nil
	}

	parent, err := f.get(plan.Access{Member: a.Member, Depth: a.Depth - 1})
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(parent)
	if rv.Kind() != reflect.Slice {
		return &ValueError{Path: a.String(), Expected: "an array", Got: parent}
	}

	rv.Index(f.index[a.Depth-1]).Set(reflect.ValueOf(v))
	return nil
}

// extent evaluates a dimension bound against the record.
func (f *frame) extent(d model.Dimension) (int, error) {
	if d.Mode == model.DimConstant {
		return d.Size, nil
	}

	switch v := f.record[d.Member].(type) {
	case int8:
		return wire.Extent(v)
	case int16:
		return wire.Extent(v)
	case int32:
		return wire.Extent(v)
	case int64:
		return wire.Extent(v)
	case uint8:
		return wire.Extent(v)
	default:
		return 0, &ValueError{Path: d.Member, Expected: "an integer", Got: v}
	}
}

func (f *frame) loop(n int, body func() error) error {
	f.index = append(f.index, 0)
	defer func() { f.index = f.index[:len(f.index)-1] }()

	for i := 0; i < n; i++ {
		f.index[len(f.index)-1] = i
		if err := body(); err != nil {
			return err
		}
	}

	return nil
}

func length(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return 0, false
	}

	return rv.Len(), true
}

// makeArray creates an array of `n` zero elements. Arrays with remaining
// dimensions hold []any, innermost arrays are typed slices.
func makeArray(t model.TypeRef, n int, remaining int) any {
	if remaining > 0 {
		return make([]any, n)
	}

	switch t.Primitive {
	case model.Int8:
		return make([]int8, n)
	case model.Int16:
		return make([]int16, n)
	case model.Int32:
		return make([]int32, n)
	case model.Int64:
		return make([]int64, n)
	case model.Byte:
		return make([]uint8, n)
	case model.Float32:
		return make([]float32, n)
	case model.Float64:
		return make([]float64, n)
	case model.String:
		return make([]string, n)
	case model.Boolean:
		return make([]bool, n)
	case model.NotPrimitive:
		return make([]Record, n)
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(t.Primitive)))
}

func zero(p model.PrimitiveType) any {
	switch p {
	case model.Int8:
		return int8(0)
	case model.Int16:
		return int16(0)
	case model.Int32:
		return int32(0)
	case model.Int64:
		return int64(0)
	case model.Byte:
		return uint8(0)
	case model.Float32:
		return float32(0)
	case model.Float64:
		return float64(0)
	case model.String:
		return ""
	case model.Boolean:
		return false
	case model.NotPrimitive:
		return nil
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// New returns a record holding the default value of every member of the
// struct with the given full name.
func (c *Codec) New(name string) (Record, error) {
	p, err := c.Plan(name)
	if err != nil {
		return nil, err
	}

	r := make(Record, len(p.Init))
	for _, i := range p.Init {
		v, err := c.value(i.Value)
		if err != nil {
			return nil, err
		}

		r[i.Member] = v
	}

	return r, nil
}

func (c *Codec) value(v plan.Value) (any, error) {
	switch v := v.(type) {
	case plan.ZeroValue:
		return zero(v.Type), nil
	case plan.StructValue:
		return c.New(v.Type.FullName())
	case plan.EmptyArray:
		return makeArray(v.Type, 0, v.Dims-1), nil
	case plan.FilledArray:
		arr := makeArray(v.Type, v.Size, v.Dims-1)
		rv := reflect.ValueOf(arr)

		for i := 0; i < v.Size; i++ {
			elem, err := c.value(v.Elem)
			if err != nil {
				return nil, err
			}

			rv.Index(i).Set(reflect.ValueOf(elem))
		}

		return arr, nil
	}

	return nil, fmt.Errorf("unknown initializer %T", v)
}
