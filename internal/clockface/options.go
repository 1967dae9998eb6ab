package clockface

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clockface/engine/colors"
	"github.com/hubastard/clockface/engine/core"
	"github.com/hubastard/clockface/engine/gfx/mesh3d"
)

// Options describes the clock's geometry, palette and projection.
type Options struct {
	Title      string
	ClearColor colors.Color

	DialSegments int
	DialRadius   float32
	DialColor    colors.Color
	// DialDepth pushes the dial back so the shaft and hand do not z-fight with it.
	DialDepth float32

	ShaftSegments     int
	ShaftTopRadius    float32
	ShaftBottomRadius float32
	ShaftHeight       float32
	ShaftColor        colors.Color

	HandSegments     int
	HandTopRadius    float32
	HandBottomRadius float32
	HandLength       float32
	// HandPivot is how far from its base end the hand turns.
	HandPivot float32
	HandColor colors.Color

	Light mgl32.Vec3
	FovY  float32 // radians
	Near  float32
	Far   float32

	// CameraMoveSpeed is handed to the orbit controller when the camera is an orbit camera.
	CameraMoveSpeed float32

	// Shaders, when set, is polled once per frame for edited shader sources.
	Shaders ShaderSource
}

func DefaultOptions() Options {
	return Options{
		Title:      "clockface",
		ClearColor: colors.LightGray,

		DialSegments: 64,
		DialRadius:   1.2,
		DialColor:    colors.PaleCyan,
		DialDepth:    -0.1,

		ShaftSegments:     8,
		ShaftTopRadius:    0.08,
		ShaftBottomRadius: 0.15,
		ShaftHeight:       0.4,
		ShaftColor:        colors.White,

		HandSegments:     4,
		HandTopRadius:    0.02,
		HandBottomRadius: 0.03,
		HandLength:       1.2,
		HandPivot:        0.2,
		HandColor:        colors.Blue,

		Light: mgl32.Vec3{1, 1, 1},
		FovY:  mgl32.DegToRad(45),
		Near:  0.1,
		Far:   20,

		CameraMoveSpeed: 2,
	}
}

// RenderState holds the live toggles. It is written by input handling and read once per frame.
type RenderState struct {
	Culling   bool
	DepthTest bool
	Spin      bool
}

// Phase is the driver's lifecycle position.
type Phase int

const (
	Uninitialized Phase = iota
	Ready
	Rendering
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Camera supplies the view matrix once per frame.
type Camera interface {
	Update() mgl32.Mat4
}

// ShaderSource reports shader edits and rebuilds the pipeline description on demand.
type ShaderSource interface {
	Changed() bool
	Desc() (core.PipelineDesc, error)
}

// PipelineDesc names the attributes and uniforms the clock shaders expose.
func PipelineDesc(vs, fs string) core.PipelineDesc {
	attrs := make([]string, len(mesh3d.StandardAttributes))
	for i, a := range mesh3d.StandardAttributes {
		attrs[i] = a.Name
	}
	return core.PipelineDesc{
		Name:           "clockface",
		VertexSource:   vs,
		FragmentSource: fs,
		Attributes:     attrs,
		Uniforms:       []string{mesh3d.UniformMVP, mesh3d.UniformNormal, mesh3d.UniformLightDirection},
	}
}
