package ref

import (
	"testing"

	"github.com/koskimas/msggen/internal/model"
	assert "github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cat := model.NewCatalog(
		&model.Struct{Package: "geo", Name: "point_t"},
		&model.Struct{Name: "header_t"},
	)

	r, err := Resolve(cat, "geo", "int16_t")
	assert.NoError(t, err)
	assert.Equal(t, model.Int16, r.Primitive)

	r, err = Resolve(cat, "geo", "point_t")
	assert.NoError(t, err)
	assert.Equal(t, "geo.point_t", r.FullName())

	r, err = Resolve(cat, "nav", "geo.point_t")
	assert.NoError(t, err)
	assert.Equal(t, "geo.point_t", r.FullName())

	r, err = Resolve(cat, "geo", "header_t")
	assert.NoError(t, err)
	assert.Equal(t, "header_t", r.FullName())

	_, err = Resolve(cat, "nav", "point_t")
	assert.EqualError(t, err, `could not resolve type "point_t" in package "nav"`)

	_, err = Resolve(cat, "", "geo.missing_t")
	assert.Error(t, err)
}

func TestToGo(t *testing.T) {
	assert.Equal(t, "NumPoints", ToGo("num_points"))
	assert.Equal(t, "Utime", ToGo("utime"))
	assert.Equal(t, "MaxCount", ToGo("MAX_COUNT"))
	assert.Equal(t, "X3d", ToGo("3d"))
	assert.Equal(t, "Point", TypeToGo("point_t"))
	assert.Equal(t, "Pose", TypeToGo("pose"))
	assert.Equal(t, "sensors", PackageToGo("robot.sensors"))
}
