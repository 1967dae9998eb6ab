package mesh3d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clockface/engine/core"
)

// Uniform names pushed by TransformSet.Apply.
const (
	UniformMVP            = "mvpMatrix"
	UniformNormal         = "normalMatrix"
	UniformLightDirection = "lightDirection"
)

// Rotation is one step of a model transform: Angle radians about Axis.
type Rotation struct {
	Angle float32
	Axis  mgl32.Vec3
}

var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
	// AxisNegZ turns positive angles clockwise when looking down -Z, like a clock hand.
	AxisNegZ = mgl32.Vec3{0, 0, -1}
)

// Chain builds a model matrix by post-multiplication, so each step happens in the
// local frame left by the previous one.
type Chain struct{ m mgl32.Mat4 }

func Identity() Chain { return Chain{m: mgl32.Ident4()} }

func (c Chain) Rotate(angle float32, axis mgl32.Vec3) Chain {
	if angle == 0 {
		return c
	}
	c.m = c.m.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
	return c
}

func (c Chain) Translate(v mgl32.Vec3) Chain {
	c.m = c.m.Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
	return c
}

func (c Chain) Matrix() mgl32.Mat4 { return c.m }

// TransformSet holds the matrices a draw needs.
type TransformSet struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat4
	MVP    mgl32.Mat4
}

// Compose applies steps in order starting from identity, then the translation.
func Compose(steps []Rotation, translation mgl32.Vec3, viewProjection mgl32.Mat4) TransformSet {
	c := Identity()
	for _, s := range steps {
		c = c.Rotate(s.Angle, s.Axis)
	}
	return ComposeModel(c.Translate(translation).Matrix(), viewProjection)
}

// ComposeModel derives the normal and MVP matrices for an existing model matrix.
// The normal matrix is the transposed inverse of the whole model matrix; a singular
// model yields whatever mgl32's Inv returns (the zero matrix).
func ComposeModel(model, viewProjection mgl32.Mat4) TransformSet {
	return TransformSet{
		Model:  model,
		Normal: model.Inv().Transpose(),
		MVP:    viewProjection.Mul4(model),
	}
}

// Apply pushes the matrices and the light direction to p, which must be in use.
func (ts TransformSet) Apply(dev core.Renderer, p core.Pipeline, light mgl32.Vec3) {
	dev.SetUniformMat4(p, UniformNormal, ts.Normal)
	dev.SetUniformMat4(p, UniformMVP, ts.MVP)
	dev.SetUniformVec3(p, UniformLightDirection, light)
}
