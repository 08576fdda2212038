package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/koskimas/msggen/internal/model"
	assert "github.com/stretchr/testify/require"
)

const testConfig = `
version: 1
schemas:
  - path: schemas/*.zcm
output:
  dir: out
  package:
    path: example.com/robot/out
`

func writeProject(t *testing.T, files map[string]string) string {
	dir := t.TempDir()

	for name, content := range files {
		p := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(p), 0700))
		assert.NoError(t, os.WriteFile(p, []byte(content), 0600))
	}

	return dir
}

func TestRun(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"msggen.yaml": testConfig,
		"schemas/geo.zcm": `
package geo;

struct point_t {
    int32_t x;
    double  y[3];
}
`,
		"schemas/nav.zcm": `
package robot.nav;

struct route_t {
    int16_t      num_stops;
    geo.point_t  stops[num_stops];
}
`,
	})

	var plans bytes.Buffer
	assert.NoError(t, Run(Settings{WorkingDir: dir, PlanOutput: &plans}))

	for _, f := range []string{"out/geo/point_t.go", "out/robot/nav/route_t.go"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	route, err := os.ReadFile(filepath.Join(dir, "out/robot/nav/route_t.go"))
	assert.NoError(t, err)
	assert.Contains(t, string(route), "package nav")
	assert.Contains(t, string(route), `"example.com/robot/out/geo"`)

	assert.Contains(t, plans.String(), "struct geo.point_t fingerprint 0x745511e47b328d12")
	assert.Contains(t, plans.String(), "struct robot.nav.route_t fingerprint")
}

func TestRunInvalidSchema(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"msggen.yaml": testConfig,
		"schemas/bad.zcm": `
struct bad_t {
    int32_t values[count];
    int32_t count;
}
`,
	})

	err := Run(Settings{WorkingDir: dir})
	assert.ErrorContains(t, err, "invalid schema")

	var shapeErr *model.ShapeError
	assert.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "bad_t.values", shapeErr.Path)

	_, err = os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunNoMatchingSchemas(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"msggen.yaml": testConfig,
	})

	assert.ErrorContains(t, Run(Settings{WorkingDir: dir}), `no schema files match "schemas/*.zcm"`)
}

func TestRunMissingConfig(t *testing.T) {
	assert.ErrorContains(t, Run(Settings{WorkingDir: t.TempDir()}), "failed to read config file")
}

func TestRunSyntaxError(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"msggen.yaml":     testConfig,
		"schemas/bad.zcm": "struct bad_t { int32_t x }",
	})

	assert.ErrorContains(t, Run(Settings{WorkingDir: dir}), `failed to parse schema file`)
}
