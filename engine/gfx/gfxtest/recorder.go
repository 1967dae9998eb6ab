// Package gfxtest provides a core.Renderer that records calls instead of touching a GPU.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/hubastard/clockface/engine/core"
)

// Call is one recorded device call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Op, c.Args) }

// Buffer is the handle type Recorder hands out.
type Buffer struct {
	ID   int
	kind core.BufferKind
	n    int
}

func (b *Buffer) Kind() core.BufferKind { return b.kind }
func (b *Buffer) Len() int              { return b.n }

// Pipeline is the handle type Recorder hands out. Attributes get locations in declaration order.
type Pipeline struct {
	ID    int
	name  string
	attrs map[string]int32
}

func (p *Pipeline) Name() string { return p.name }
func (p *Pipeline) AttribLocation(name string) int32 {
	if loc, ok := p.attrs[name]; ok {
		return loc
	}
	return -1
}

// Recorder implements core.Renderer. The zero value is uninitialized and refuses
// resource creation until Init is called.
type Recorder struct {
	Calls []Call

	// FailPipeline makes CreatePipeline return this error.
	FailPipeline error
	// FailAfterBuffers makes buffer creation fail once this many buffers exist (0 = never).
	FailAfterBuffers int

	ready  bool
	nextID int
	live   map[int]*Buffer
}

func (r *Recorder) record(op string, args ...any) { r.Calls = append(r.Calls, Call{Op: op, Args: args}) }

func (r *Recorder) Init() error {
	r.ready = true
	r.live = map[int]*Buffer{}
	r.record("Init")
	return nil
}

func (r *Recorder) Resize(w, h int)           { r.record("Resize", w, h) }
func (r *Recorder) Clear(cr, g, b, a float32) { r.record("Clear", cr, g, b, a) }
func (r *Recorder) SetCullFace(on bool)       { r.record("SetCullFace", on) }
func (r *Recorder) SetDepthTest(on bool)      { r.record("SetDepthTest", on) }

func (r *Recorder) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if !r.ready {
		return nil, core.ErrNoContext
	}
	if r.FailPipeline != nil {
		return nil, r.FailPipeline
	}
	r.nextID++
	p := &Pipeline{ID: r.nextID, name: desc.Name, attrs: map[string]int32{}}
	for i, a := range desc.Attributes {
		p.attrs[a] = int32(i)
	}
	r.record("CreatePipeline", desc.Name)
	return p, nil
}

func (r *Recorder) DestroyPipeline(p core.Pipeline) { r.record("DestroyPipeline", p.Name()) }

func (r *Recorder) UsePipeline(p core.Pipeline) {
	r.record("UsePipeline", p.Name())
}

func (r *Recorder) SetUniformMat4(p core.Pipeline, name string, m [16]float32) {
	r.record("SetUniformMat4", name, m)
}

func (r *Recorder) SetUniformVec3(p core.Pipeline, name string, v [3]float32) {
	r.record("SetUniformVec3", name, v)
}

func (r *Recorder) newBuffer(kind core.BufferKind, n int) (*Buffer, error) {
	if !r.ready {
		return nil, core.ErrNoContext
	}
	if n == 0 {
		return nil, core.ErrEmptyBuffer
	}
	if r.FailAfterBuffers > 0 && len(r.live) >= r.FailAfterBuffers {
		return nil, fmt.Errorf("gfxtest: out of buffer memory")
	}
	r.nextID++
	b := &Buffer{ID: r.nextID, kind: kind, n: n}
	r.live[b.ID] = b
	return b, nil
}

func (r *Recorder) CreateVertexBuffer(data []float32) (core.Buffer, error) {
	b, err := r.newBuffer(core.VertexBuffer, len(data))
	if err != nil {
		return nil, err
	}
	r.record("CreateVertexBuffer", b.ID, len(data))
	return b, nil
}

func (r *Recorder) CreateIndexBuffer(data []uint16) (core.Buffer, error) {
	b, err := r.newBuffer(core.IndexBuffer, len(data))
	if err != nil {
		return nil, err
	}
	r.record("CreateIndexBuffer", b.ID, len(data))
	return b, nil
}

func (r *Recorder) DestroyBuffer(b core.Buffer) {
	rb := b.(*Buffer)
	delete(r.live, rb.ID)
	r.record("DestroyBuffer", rb.ID)
}

func (r *Recorder) BindVertexBuffer(location, size int32, b core.Buffer) {
	r.record("BindVertexBuffer", location, size, b.(*Buffer).ID)
}

func (r *Recorder) BindIndexBuffer(b core.Buffer) { r.record("BindIndexBuffer", b.(*Buffer).ID) }
func (r *Recorder) DrawIndexed(count int)         { r.record("DrawIndexed", count) }

func (r *Recorder) GPUVendor() string   { return "gfxtest" }
func (r *Recorder) GPURenderer() string { return "recorder" }
func (r *Recorder) GPUVersion() string  { return "0" }

func (r *Recorder) Shutdown() {
	r.ready = false
	r.record("Shutdown")
}

// LiveBuffers is the number of buffers created and not yet destroyed.
func (r *Recorder) LiveBuffers() int { return len(r.live) }

// Reset forgets recorded calls but keeps device state.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Ops returns just the operation names, in order.
func (r *Recorder) Ops() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// Filter returns the calls whose Op is one of ops.
func (r *Recorder) Filter(ops ...string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if slices.Contains(ops, c.Op) {
			out = append(out, c)
		}
	}
	return out
}

// Without returns the calls whose Op is not one of ops.
func (r *Recorder) Without(ops ...string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if !slices.Contains(ops, c.Op) {
			out = append(out, c)
		}
	}
	return out
}

var _ core.Renderer = (*Recorder)(nil)
