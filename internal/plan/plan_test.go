package plan

import (
	"math"
	"testing"

	"github.com/koskimas/msggen/internal/model"
	assert "github.com/stretchr/testify/require"
)

func scan() *model.Struct {
	return &model.Struct{
		Package: "sensors",
		Name:    "scan_t",
		Members: []model.Member{
			{Name: "utime", Type: model.PrimitiveRef(model.Int64)},
			{Name: "n", Type: model.PrimitiveRef(model.Int32)},
			{Name: "ranges", Type: model.PrimitiveRef(model.Float32), Dimensions: []model.Dimension{model.ConstDim(3)}},
			{Name: "grid", Type: model.PrimitiveRef(model.Int16), Dimensions: []model.Dimension{model.VarDim("n"), model.ConstDim(2)}},
			{Name: "names", Type: model.PrimitiveRef(model.String), Dimensions: []model.Dimension{model.VarDim("n")}},
			{Name: "points", Type: model.StructRef("geo", "point_t"), Dimensions: []model.Dimension{model.ConstDim(2), model.VarDim("n")}},
		},
		Constants: []model.Constant{
			{Name: "MAX", Type: model.Int32, Literal: "10"},
			{Name: "PI", Type: model.Float64, Literal: "0x400921fb54442d18", FixedPoint: true},
		},
	}
}

func TestEncodePlan(t *testing.T) {
	expected := "" +
		"scalar utime int64_t\n" +
		"scalar n int32_t\n" +
		"bulk ranges float[3]\n" +
		"for i0 < n in grid {\n" +
		"  bulk grid[i0] int16_t[2]\n" +
		"}\n" +
		"for i0 < n in names {\n" +
		"  scalar names[i0] string\n" +
		"}\n" +
		"for i0 < 2 in points {\n" +
		"  for i1 < n in points[i0] {\n" +
		"    scalar points[i0][i1] geo.point_t\n" +
		"  }\n" +
		"}\n"

	assert.Equal(t, expected, OpsString(Encode(scan())))
}

func TestDecodePlan(t *testing.T) {
	expected := "" +
		"scalar utime int64_t\n" +
		"scalar n int32_t\n" +
		"bulk ranges float[3]\n" +
		"alloc grid int16_t[n][]\n" +
		"for i0 < n in grid {\n" +
		"  bulk grid[i0] int16_t[2]\n" +
		"}\n" +
		"alloc names string[n]\n" +
		"for i0 < n in names {\n" +
		"  scalar names[i0] string\n" +
		"}\n" +
		"alloc points geo.point_t[2][]\n" +
		"for i0 < 2 in points {\n" +
		"  alloc points[i0] geo.point_t[n]\n" +
		"  for i1 < n in points[i0] {\n" +
		"    scalar points[i0][i1] geo.point_t\n" +
		"  }\n" +
		"}\n"

	assert.Equal(t, expected, OpsString(Decode(scan())))
}

func TestAllocWidths(t *testing.T) {
	var allocs []AllocOp
	for _, op := range Decode(scan()) {
		if a, ok := op.(AllocOp); ok {
			allocs = append(allocs, a)
		}
	}

	widths := map[string]int{}
	checked := map[string]bool{}
	for _, a := range allocs {
		widths[a.Access.Member] = a.Width()
		checked[a.Access.Member] = a.Checked()
	}

	assert.Equal(t, map[string]int{"grid": 1, "names": 4, "points": 1}, widths)
	assert.Equal(t, map[string]bool{"grid": true, "names": true, "points": false}, checked)

	assert.Equal(t, 8, AllocOp{Type: model.PrimitiveRef(model.Float64)}.Width())
}

func TestEncodePlanNodes(t *testing.T) {
	ops := Encode(scan())

	assert.Len(t, ops, 6)
	assert.Equal(t, ScalarOp{Access: Access{Member: "utime"}, Type: model.PrimitiveRef(model.Int64)}, ops[0])
	assert.Equal(t, BulkOp{Access: Access{Member: "ranges"}, Type: model.Float32, Extent: model.ConstDim(3)}, ops[2])

	loop, ok := ops[3].(LoopOp)
	assert.True(t, ok)
	assert.Equal(t, model.VarDim("n"), loop.Bound)
	assert.Equal(t, []Op{BulkOp{Access: Access{Member: "grid", Depth: 1}, Type: model.Int16, Extent: model.ConstDim(2)}}, loop.Body)
}

func TestInit(t *testing.T) {
	inits := Init(scan())

	assert.Equal(t, []MemberInit{
		{Member: "utime", Value: ZeroValue{Type: model.Int64}},
		{Member: "n", Value: ZeroValue{Type: model.Int32}},
		{Member: "ranges", Value: FilledArray{Type: model.PrimitiveRef(model.Float32), Dims: 1, Size: 3, Elem: ZeroValue{Type: model.Float32}}},
		{Member: "grid", Value: EmptyArray{Type: model.PrimitiveRef(model.Int16), Dims: 2}},
		{Member: "names", Value: EmptyArray{Type: model.PrimitiveRef(model.String), Dims: 1}},
		{Member: "points", Value: FilledArray{
			Type: model.StructRef("geo", "point_t"),
			Dims: 2,
			Size: 2,
			Elem: EmptyArray{Type: model.StructRef("geo", "point_t"), Dims: 1},
		}},
	}, inits)
}

func TestConstants(t *testing.T) {
	consts, err := Constants(scan())
	assert.NoError(t, err)

	assert.Len(t, consts, 2)
	assert.Equal(t, int32(10), consts[0].Value)
	assert.False(t, consts[0].FixedPoint)
	assert.Equal(t, math.Pi, consts[1].Value)
	assert.Equal(t, uint64(0x400921fb54442d18), consts[1].Bits)
}

func TestBuild(t *testing.T) {
	s := scan()

	_, err := Build(s)
	assert.EqualError(t, err, `fingerprint of "sensors.scan_t" has not been computed`)

	s.SetFingerprint(0xABCD)
	p, err := Build(s)
	assert.NoError(t, err)

	assert.Equal(t, uint64(0xABCD), p.Fingerprint)
	assert.Equal(t, []model.TypeRef{model.StructRef("geo", "point_t")}, p.Dependencies)

	expected := "" +
		"struct sensors.scan_t fingerprint 0x000000000000abcd\n" +
		"encode\n"
	assert.Contains(t, p.String(), expected)
	assert.Contains(t, p.String(), "init\n  utime = 0\n  n = 0\n  ranges = [3]{0.0}\n  grid = int16_t[][]{}\n")
	assert.Contains(t, p.String(), "  points = [2]{geo.point_t[]{}}\n")
	assert.Contains(t, p.String(), "constants\n  MAX int32_t = 10\n  PI double = 0x400921fb54442d18 (fixed point)\n")
}

func TestBuildInvalidConstant(t *testing.T) {
	s := scan()
	s.SetFingerprint(1)
	s.Constants = append(s.Constants, model.Constant{Name: "BAD", Type: model.Int8, Literal: "x"})

	_, err := Build(s)
	assert.Error(t, err)
}
