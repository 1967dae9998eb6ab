package core

import "errors"

var (
	// ErrNoContext is returned when a device call is made before Init succeeded.
	ErrNoContext = errors.New("gfx: rendering context not initialized")
	// ErrEmptyBuffer is returned when an upload carries no data.
	ErrEmptyBuffer = errors.New("gfx: empty buffer")
)

// Renderer abstracts the graphics device. All calls happen on the thread that owns the context.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	SetCullFace(enabled bool)
	SetDepthTest(enabled bool)

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	DestroyPipeline(p Pipeline)
	UsePipeline(p Pipeline)
	SetUniformMat4(p Pipeline, name string, m [16]float32)
	SetUniformVec3(p Pipeline, name string, v [3]float32)

	CreateVertexBuffer(data []float32) (Buffer, error)
	CreateIndexBuffer(data []uint16) (Buffer, error)
	DestroyBuffer(b Buffer)
	BindVertexBuffer(location int32, size int32, b Buffer)
	BindIndexBuffer(b Buffer)
	// DrawIndexed draws count 16-bit indices from the bound index buffer as a triangle list.
	DrawIndexed(count int)

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
	Shutdown()
}

type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	switch k {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	default:
		return "unknown"
	}
}

// Buffer is a device buffer handle.
type Buffer interface {
	Kind() BufferKind
	// Len is the number of elements (floats or indices) uploaded.
	Len() int
}

// PipelineDesc describes a shader program and the names it exposes.
type PipelineDesc struct {
	Name           string
	VertexSource   string
	FragmentSource string
	Attributes     []string
	Uniforms       []string
}

// Pipeline is a linked shader program with resolved attribute locations.
type Pipeline interface {
	Name() string
	// AttribLocation returns -1 for names the program does not use.
	AttribLocation(name string) int32
}
