package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/koskimas/msggen/internal/hash"
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
	assert "github.com/stretchr/testify/require"
)

const importPath = "example.com/app/msgs"

func catalog() *model.Catalog {
	point := &model.Struct{
		Package: "geo",
		Name:    "point_t",
		Comment: "A point in space.",
		Members: []model.Member{
			{Name: "x", Type: model.PrimitiveRef(model.Int32)},
			{Name: "y", Type: model.PrimitiveRef(model.Float64), Dimensions: []model.Dimension{model.ConstDim(3)}},
		},
	}

	path := &model.Struct{
		Package: "geo",
		Name:    "path_t",
		Members: []model.Member{
			{Name: "num_points", Type: model.PrimitiveRef(model.Int32), Comment: "Number of points."},
			{Name: "points", Type: model.StructRef("geo", "point_t"), Dimensions: []model.Dimension{model.VarDim("num_points")}},
			{Name: "grid", Type: model.PrimitiveRef(model.Int8), Dimensions: []model.Dimension{model.ConstDim(2), model.VarDim("num_points")}},
			{Name: "names", Type: model.PrimitiveRef(model.String), Dimensions: []model.Dimension{model.ConstDim(2)}},
			{Name: "origin", Type: model.StructRef("geo", "point_t")},
		},
		Constants: []model.Constant{
			{Name: "MAX_POINTS", Type: model.Int16, Literal: "100"},
			{Name: "ONE", Type: model.Float64, Literal: "0x3ff0000000000000", FixedPoint: true},
		},
	}

	route := &model.Struct{
		Package: "nav",
		Name:    "route_t",
		Members: []model.Member{
			{Name: "path", Type: model.StructRef("geo", "path_t")},
			{Name: "fingerprint", Type: model.PrimitiveRef(model.Int64)},
		},
	}

	empty := &model.Struct{Name: "empty_t"}

	return model.NewCatalog(point, path, route, empty)
}

func buildPlan(t *testing.T, cat *model.Catalog, name string) *plan.Plan {
	assert.NoError(t, hash.New(cat).All())

	p, err := plan.Build(cat.Lookup(name))
	assert.NoError(t, err)
	return p
}

func render(t *testing.T, name string) (string, *ast.File) {
	cat := catalog()
	src, err := New("/tmp/out", importPath).Render(buildPlan(t, cat, name))
	assert.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), name+".go", src, parser.ParseComments)
	assert.NoError(t, err)

	return string(src), f
}

func funcNames(f *ast.File) []string {
	var names []string
	for _, d := range f.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			names = append(names, fd.Name.Name)
		}
	}
	return names
}

func TestRenderPoint(t *testing.T) {
	src, f := render(t, "geo.point_t")

	assert.Equal(t, "geo", f.Name.Name)
	assert.ElementsMatch(t, []string{"Fingerprint", "NewPoint", "EncodeOne", "Encode", "DecodeOne", "Decode"}, funcNames(f))

	assert.Contains(t, src, "// Code generated by msggen. DO NOT EDIT.")
	assert.Contains(t, src, "// A point in space.\ntype Point struct {")
	assert.Contains(t, src, "const PointFingerprint uint64 = 0x745511e47b328d12")
	assert.Contains(t, src, "w.WriteInt32(m.X)")
	assert.Contains(t, src, "w.WriteFloat64s(m.Y[:3])")
	assert.Contains(t, src, "if m.Y, err = r.ReadFloat64s(3); err != nil {")
	assert.Contains(t, src, "Y: make([]float64, 3)")
	assert.Contains(t, src, "wire.Marshal(PointFingerprint, m.EncodeOne)")
	assert.Contains(t, src, "wire.Unmarshal(data, PointFingerprint, out.DecodeOne)")
	assert.Contains(t, src, `"github.com/koskimas/msggen/wire"`)
}

func TestRenderPath(t *testing.T) {
	src, _ := render(t, "geo.path_t")

	assert.Contains(t, src, "// Number of points.")
	assert.Contains(t, src, "Points    []Point")
	assert.Contains(t, src, "Grid      [][]int8")
	assert.Contains(t, src, "const PathMaxPoints int16 = 100")
	assert.Contains(t, src, "var PathOne = math.Float64frombits(0x3ff0000000000000)")

	assert.Contains(t, src, "nNumPoints, err := wire.Extent(m.NumPoints)")
	assert.Contains(t, src, "if err := wire.CheckLen(len(m.Points), nNumPoints); err != nil {")
	assert.Contains(t, src, "if err := m.Points[i0].EncodeOne(w); err != nil {")
	assert.Contains(t, src, "for i0 := 0; i0 < 2; i0++ {")
	assert.Contains(t, src, "w.WriteInt8s(m.Grid[i0][:nNumPoints])")
	assert.Contains(t, src, "w.WriteString(m.Names[i0])")
	assert.Contains(t, src, "if err := m.Origin.EncodeOne(w); err != nil {")

	assert.Contains(t, src, "if err := r.CheckCount(nNumPoints, 1); err != nil {\n\t\treturn err\n\t}\n\tm.Points = make([]Point, nNumPoints)")
	assert.NotContains(t, src, "r.CheckCount(2,")
	assert.Contains(t, src, "if err = m.Points[i0].DecodeOne(r); err != nil {")
	assert.Contains(t, src, "m.Grid = make([][]int8, 2)")
	assert.Contains(t, src, "if m.Grid[i0], err = r.ReadInt8s(nNumPoints); err != nil {")
	assert.Contains(t, src, "if m.Names[i0], err = r.ReadString(); err != nil {")

	assert.Contains(t, src, "Origin:    NewPoint()")
	assert.Contains(t, src, "Points:    []Point{}")
	assert.Contains(t, src, "Names:     make([]string, 2)")
}

func TestRenderCrossPackage(t *testing.T) {
	src, f := render(t, "nav.route_t")

	assert.Equal(t, "nav", f.Name.Name)
	assert.Contains(t, src, `geo "example.com/app/msgs/geo"`)
	assert.Contains(t, src, "Path         geo.Path")
	assert.Contains(t, src, "Fingerprint_ int64")
	assert.Contains(t, src, "Path:         geo.NewPath()")
}

func TestRenderEmpty(t *testing.T) {
	src, f := render(t, "empty_t")

	assert.Equal(t, "msgs", f.Name.Name)
	assert.Contains(t, src, "type Empty struct{}")
	assert.NotContains(t, src, "var err error")
}

func TestPaths(t *testing.T) {
	g := New("/out", importPath+"/")

	assert.Equal(t, importPath, g.ImportPath(""))
	assert.Equal(t, importPath+"/a/b", g.ImportPath("a.b"))
	assert.Equal(t, "b", g.PackageName("a.b"))
	assert.Equal(t, "msgs", g.PackageName(""))
	assert.Equal(t, filepath.Join("/out", "a", "b", "c_t.go"), g.FilePath(&model.Struct{Package: "a.b", Name: "c_t"}))
}

func TestCheckNames(t *testing.T) {
	g := New("/out", importPath)

	assert.NoError(t, g.CheckNames(catalog()))

	cat := model.NewCatalog(&model.Struct{Name: "pose_t"}, &model.Struct{Name: "pose"})
	assert.ErrorContains(t, g.CheckNames(cat), `the type of struct "pose_t" and the type of struct "pose" both map to the Go identifier "example.com/app/msgs.Pose"`)

	cat = model.NewCatalog(&model.Struct{
		Package:   "robot",
		Name:      "status_t",
		Constants: []model.Constant{{Name: "FINGERPRINT", Type: model.Int64, Literal: "1"}},
	})
	assert.ErrorContains(t, g.CheckNames(cat), `the fingerprint of struct "robot.status_t" and constant "FINGERPRINT" of struct "robot.status_t" both map to the Go identifier "example.com/app/msgs/robot.StatusFingerprint"`)

	cat = model.NewCatalog(&model.Struct{Name: "point_t"}, &model.Struct{Name: "new_point_t"})
	assert.ErrorContains(t, g.CheckNames(cat), `the constructor of struct "point_t" and the type of struct "new_point_t"`)

	cat = model.NewCatalog(&model.Struct{Name: "pose_t"}, &model.Struct{
		Name:      "limits_t",
		Constants: []model.Constant{{Name: "POSE", Type: model.Int8, Literal: "1"}},
	})
	assert.NoError(t, g.CheckNames(cat), "LimitsPose does not collide")

	cat = model.NewCatalog(&model.Struct{
		Name: "path_t",
		Members: []model.Member{
			{Name: "num_points", Type: model.PrimitiveRef(model.Int32)},
			{Name: "NumPoints", Type: model.PrimitiveRef(model.Int32)},
		},
	})
	assert.ErrorContains(t, g.CheckNames(cat), `members "num_points" and "NumPoints" of struct "path_t" both map to the Go field "NumPoints"`)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	cat := catalog()

	filePath, err := New(dir, importPath).Write(buildPlan(t, cat, "geo.point_t"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "geo", "point_t.go"), filePath)

	data, err := os.ReadFile(filePath)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "package geo")
}
