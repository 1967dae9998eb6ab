package mesh3d

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clockface/engine/colors"
	"github.com/hubastard/clockface/engine/core"
	"github.com/hubastard/clockface/engine/geometry"
	"github.com/hubastard/clockface/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newDevice(t *testing.T) *gfxtest.Recorder {
	t.Helper()
	dev := &gfxtest.Recorder{}
	require.NoError(t, dev.Init())
	dev.Reset()
	return dev
}

func disc(t *testing.T, split int) geometry.Mesh {
	t.Helper()
	m, err := geometry.FanDisc(split, 1.2, colors.PaleCyan)
	require.NoError(t, err)
	return m
}

func TestUploadCreatesBuffersInAttributeOrder(t *testing.T) {
	dev := newDevice(t)
	d, err := Upload(dev, "dial", disc(t, 8))
	require.NoError(t, err)

	require.Len(t, d.VertexBuffers, 3)
	assert.Equal(t, 9*3, d.VertexBuffers[0].Len())
	assert.Equal(t, 9*3, d.VertexBuffers[1].Len())
	assert.Equal(t, 9*4, d.VertexBuffers[2].Len())
	assert.Equal(t, core.IndexBuffer, d.IndexBuffer.Kind())
	assert.Equal(t, 24, d.IndexCount)
	assert.Equal(t, []string{"CreateVertexBuffer", "CreateVertexBuffer", "CreateVertexBuffer", "CreateIndexBuffer"}, dev.Ops())
	assert.Equal(t, 4, dev.LiveBuffers())

	d.Release(dev)
	assert.Equal(t, 0, dev.LiveBuffers())
	assert.Zero(t, d.IndexCount)
}

func TestUploadFailsWithoutContext(t *testing.T) {
	_, err := Upload(&gfxtest.Recorder{}, "dial", disc(t, 8))
	assert.ErrorIs(t, err, core.ErrNoContext)

	_, err = Upload(nil, "dial", disc(t, 8))
	assert.ErrorIs(t, err, core.ErrNoContext)
}

func TestUploadFailsOnEmptyMesh(t *testing.T) {
	dev := newDevice(t)
	_, err := Upload(dev, "empty", geometry.Mesh{})
	assert.ErrorIs(t, err, core.ErrEmptyBuffer)
	assert.Equal(t, 0, dev.LiveBuffers())
}

func TestUploadRejectsOutOfRangeIndex(t *testing.T) {
	dev := newDevice(t)
	m := disc(t, 4)
	m.Index[2] = uint16(m.VertexCount())

	_, err := Upload(dev, "dial", m)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Empty(t, dev.Calls, "nothing is uploaded for invalid geometry")
}

func TestUploadReleasesPartialWorkOnFailure(t *testing.T) {
	dev := newDevice(t)
	dev.FailAfterBuffers = 2

	_, err := Upload(dev, "dial", disc(t, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")
	assert.Equal(t, 0, dev.LiveBuffers())
}

func TestDrawBindsLayoutThenDraws(t *testing.T) {
	dev := newDevice(t)
	pipe, err := dev.CreatePipeline(core.PipelineDesc{Name: "main", Attributes: []string{"position", "normal", "color"}})
	require.NoError(t, err)
	d, err := Upload(dev, "dial", disc(t, 4))
	require.NoError(t, err)
	layout := ResolveLayout(pipe, StandardAttributes)
	dev.Reset()

	Draw(dev, layout, d)

	vb := func(i int) int { return d.VertexBuffers[i].(*gfxtest.Buffer).ID }
	want := []gfxtest.Call{
		{Op: "BindVertexBuffer", Args: []any{int32(0), int32(3), vb(0)}},
		{Op: "BindVertexBuffer", Args: []any{int32(1), int32(3), vb(1)}},
		{Op: "BindVertexBuffer", Args: []any{int32(2), int32(4), vb(2)}},
		{Op: "BindIndexBuffer", Args: []any{d.IndexBuffer.(*gfxtest.Buffer).ID}},
		{Op: "DrawIndexed", Args: []any{12}},
	}
	assert.Equal(t, want, dev.Calls)
	assert.Empty(t, dev.Filter("SetUniformMat4", "SetUniformVec3"), "draw does no uniform work")
}

func TestDrawSkipsUnusedAttributes(t *testing.T) {
	dev := newDevice(t)
	pipe, err := dev.CreatePipeline(core.PipelineDesc{Name: "flat", Attributes: []string{"position", "color"}})
	require.NoError(t, err)
	d, err := Upload(dev, "dial", disc(t, 4))
	require.NoError(t, err)
	layout := ResolveLayout(pipe, StandardAttributes)
	assert.Equal(t, int32(-1), layout[1].Location)
	dev.Reset()

	Draw(dev, layout, d)
	assert.Len(t, dev.Filter("BindVertexBuffer"), 2)
}

func TestComposeIsOrderSensitive(t *testing.T) {
	angle := float32(0.7)
	offset := mgl32.Vec3{0, 0.4, 0}

	rotThenMove := Identity().Rotate(angle, AxisNegZ).Translate(offset).Matrix()
	moveThenRot := Identity().Translate(offset).Rotate(angle, AxisNegZ).Matrix()
	assert.False(t, matNear(rotThenMove, moveThenRot, 1e-4))

	// Compose applies rotations first, translation last.
	ts := Compose([]Rotation{{Angle: angle, Axis: AxisNegZ}}, offset, mgl32.Ident4())
	assert.True(t, matNear(ts.Model, rotThenMove, 1e-6))
}

func TestComposeRotationOrder(t *testing.T) {
	// Spin about Z applied before standing the shaft up about X.
	steps := []Rotation{{Angle: 0.5, Axis: AxisZ}, {Angle: mgl32.DegToRad(90), Axis: AxisX}}
	got := Compose(steps, mgl32.Vec3{}, mgl32.Ident4()).Model
	want := mgl32.HomogRotate3DZ(0.5).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90)))
	assert.True(t, matNear(got, want, 1e-6))

	swapped := mgl32.HomogRotate3DX(mgl32.DegToRad(90)).Mul4(mgl32.HomogRotate3DZ(0.5))
	assert.False(t, matNear(got, swapped, 1e-4))
}

func TestComposeMVP(t *testing.T) {
	vp := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 20).Mul4(mgl32.Translate3D(0, 0, -5))
	ts := Compose(nil, mgl32.Vec3{0, 0, -0.1}, vp)
	assert.True(t, matNear(ts.MVP, vp.Mul4(mgl32.Translate3D(0, 0, -0.1)), 1e-6))
}

// reference inverse-transpose computed in float64 with gonum
func referenceNormalMatrix(m mgl32.Mat4) mgl32.Mat4 {
	data := make([]float64, 16)
	for i := range m {
		data[i] = float64(m[i])
	}
	// mgl32 is column-major: reading the raw slice row-major gives the transpose.
	mt := mat.NewDense(4, 4, data)
	var inv mat.Dense
	if err := inv.Inverse(mt.T()); err != nil {
		panic(err)
	}
	var out mgl32.Mat4
	// out (column-major) = inv^T, i.e. out[col*4+row] = inv[col][row]
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[col*4+row] = float32(inv.At(col, row))
		}
	}
	return out
}

func TestNormalMatrixMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	axes := []mgl32.Vec3{AxisX, AxisZ, AxisNegZ, {0, 1, 0}, {1, 1, 1}}
	for i := 0; i < 12; i++ {
		var steps []Rotation
		for k := 0; k < 1+rng.Intn(3); k++ {
			steps = append(steps, Rotation{
				Angle: float32(rng.Float64()*4*3.14159 - 2*3.14159),
				Axis:  axes[rng.Intn(len(axes))],
			})
		}
		offset := mgl32.Vec3{float32(rng.NormFloat64()), float32(rng.NormFloat64()), float32(rng.NormFloat64())}

		ts := Compose(steps, offset, mgl32.Ident4())
		want := referenceNormalMatrix(ts.Model)
		assert.True(t, matNear(ts.Normal, want, 1e-5), "case %d:\n got %v\nwant %v", i, ts.Normal, want)
	}
}

func TestSingularModelPropagates(t *testing.T) {
	var zero mgl32.Mat4
	ts := ComposeModel(zero, mgl32.Ident4())
	assert.Equal(t, mgl32.Mat4{}, ts.Normal)
}

func TestApplyPushesAllUniforms(t *testing.T) {
	dev := newDevice(t)
	pipe, err := dev.CreatePipeline(core.PipelineDesc{Name: "main"})
	require.NoError(t, err)
	dev.Reset()

	ts := Compose(nil, mgl32.Vec3{1, 2, 3}, mgl32.Ident4())
	ts.Apply(dev, pipe, mgl32.Vec3{1, 1, 1})

	calls := dev.Calls
	require.Len(t, calls, 3)
	assert.Equal(t, []any{UniformNormal, [16]float32(ts.Normal)}, calls[0].Args)
	assert.Equal(t, []any{UniformMVP, [16]float32(ts.MVP)}, calls[1].Args)
	assert.Equal(t, []any{UniformLightDirection, [3]float32{1, 1, 1}}, calls[2].Args)
}

func matNear(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}
