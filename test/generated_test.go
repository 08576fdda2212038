package test

import (
	"errors"
	"go/scanner"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/koskimas/msggen/internal/cmd"
	"github.com/koskimas/msggen/internal/codec"
	"github.com/koskimas/msggen/test/fixtures/robot/out/geo"
	"github.com/koskimas/msggen/test/fixtures/robot/out/robot"
	"github.com/koskimas/msggen/wire"
	assert "github.com/stretchr/testify/require"
)

// sourceTokens returns the tokens of a Go file without comments or layout.
func sourceTokens(t *testing.T, path string) []string {
	src, err := os.ReadFile(path)
	assert.NoError(t, err, path)

	fset := token.NewFileSet()
	var s scanner.Scanner
	s.Init(fset.AddFile(path, fset.Base(), len(src)), src, nil, 0)

	var out []string
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			return out
		}

		if tok == token.SEMICOLON {
			lit = ";"
		}

		out = append(out, tok.String()+" "+lit)
	}
}

func TestGeneratedFixtureIsUpToDate(t *testing.T) {
	dir := copyFixture(t, "fixtures/robot")

	err := cmd.Run(cmd.Settings{
		WorkingDir: dir,
	})
	assert.NoError(t, err)

	checkedIn := getWd(t, "fixtures/robot")
	for name, file := range generatedFiles {
		assert.Equal(t,
			sourceTokens(t, filepath.Join(checkedIn, file)),
			sourceTokens(t, filepath.Join(dir, file)),
			"%s is stale, run go generate ./test", name,
		)
	}
}

func status() (robot.Status, codec.Record) {
	s := robot.NewStatus()
	s.Utime = 1700000000000000
	s.Mode = robot.StatusModeDriving
	s.Enabled = true
	s.Name = "rover"
	s.Pose.Position.X = -4
	s.Pose.Position.Y = []float64{1, 2.5, -3}
	s.Pose.Orientation = []float32{0, 0, 0.7071, 0.7071}
	s.NumJoints = 3
	s.Joints = [][]float64{{0.1, 0.2, 0.3}, {-0.1, -0.2, -0.3}}
	s.JointNames = []string{"shoulder", "elbow", "wrist"}
	s.Raw = []byte{1, 2, 3, 4, 5, 6, 7, 8}

	r := codec.Record{
		"utime":   int64(1700000000000000),
		"mode":    int8(1),
		"enabled": true,
		"name":    "rover",
		"pose": codec.Record{
			"position":    codec.Record{"x": int32(-4), "y": []float64{1, 2.5, -3}},
			"orientation": []float32{0, 0, 0.7071, 0.7071},
		},
		"num_joints":  int16(3),
		"joints":      []any{[]float64{0.1, 0.2, 0.3}, []float64{-0.1, -0.2, -0.3}},
		"joint_names": []string{"shoulder", "elbow", "wrist"},
		"raw":         []uint8{1, 2, 3, 4, 5, 6, 7, 8},
	}

	return s, r
}

func TestGeneratedStatusRoundTrip(t *testing.T) {
	c := fixtureCodec(t, getWd(t, "fixtures/robot"))
	in, rec := status()

	data, err := in.Encode()
	assert.NoError(t, err)

	expected, err := c.Encode("robot.status_t", rec)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	var out robot.Status
	assert.NoError(t, out.Decode(data))
	assert.Equal(t, in, out)

	decoded, err := c.Decode("robot.status_t", data)
	assert.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestGeneratedDefaults(t *testing.T) {
	c := fixtureCodec(t, getWd(t, "fixtures/robot"))

	data, err := (&robot.Status{}).Encode()
	var extentErr *wire.ExtentError
	assert.True(t, errors.As(err, &extentErr), "zero value arrays are too short")
	assert.Nil(t, data)

	s := robot.NewStatus()
	data, err = s.Encode()
	assert.NoError(t, err)

	rec, err := c.New("robot.status_t")
	assert.NoError(t, err)

	expected, err := c.Encode("robot.status_t", rec)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	assert.Equal(t, 3.141592653589793, geo.PosePi)
	pose := geo.NewPose()
	assert.Equal(t, geo.PoseFingerprint, pose.Fingerprint())
}

func TestGeneratedFrameRoundTrip(t *testing.T) {
	c := fixtureCodec(t, getWd(t, "fixtures/robot"))

	leaf := func(name string) robot.Frame {
		f := robot.NewFrame()
		f.Name = name
		return f
	}

	in := robot.Frame{
		Name:        "base",
		NumChildren: 2,
		Children:    []robot.Frame{leaf("arm"), leaf("camera")},
	}

	data, err := in.Encode()
	assert.NoError(t, err)

	rec, err := c.Decode("robot.frame_t", data)
	assert.NoError(t, err)
	assert.Equal(t, "camera", rec["children"].([]codec.Record)[1]["name"])

	expected, err := c.Encode("robot.frame_t", rec)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	var out robot.Frame
	assert.NoError(t, out.Decode(data))
	assert.Equal(t, in, out)
}

func TestGeneratedDecodeRejectsMalformed(t *testing.T) {
	w := wire.NewWriter()
	w.WriteFingerprint(robot.FrameFingerprint)
	w.WriteString("base")
	w.WriteInt32(1 << 30)
	data := append([]byte(nil), w.Bytes()...)
	w.Release()

	out := robot.NewFrame()
	err := out.Decode(data)

	var underrun *wire.BufferUnderrunError
	assert.True(t, errors.As(err, &underrun))
	assert.Equal(t, robot.NewFrame(), out, "failed decodes leave the target untouched")

	s, _ := status()
	full, err := s.Encode()
	assert.NoError(t, err)

	for cut := 0; cut < len(full); cut++ {
		var st robot.Status
		err := st.Decode(full[:cut])
		assert.True(t, errors.As(err, &underrun), "cut at %d", cut)
	}

	var p geo.Point
	err = p.Decode(full)
	var mismatch *wire.DecodeMismatchError
	assert.True(t, errors.As(err, &mismatch))
}
