package glbackend

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/clockface/engine/core"
)

type buffer struct {
	id   uint32
	kind core.BufferKind
	n    int
}

func (b *buffer) Kind() core.BufferKind { return b.kind }
func (b *buffer) Len() int              { return b.n }

type pipeline struct {
	name     string
	program  uint32
	attribs  map[string]int32
	uniforms map[string]int32
}

func (p *pipeline) Name() string { return p.name }

func (p *pipeline) AttribLocation(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

// uniform returns the cached location, querying GL for names not declared up front.
func (p *pipeline) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// RendererGL implements core.Renderer on an OpenGL 3.3 core context.
type RendererGL struct {
	win   core.Window
	vao   uint32
	ready bool
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	if gl.GetString(gl.VERSION) == nil {
		return core.ErrNoContext
	}
	// Core profile needs a bound VAO for any attribute setup; one is shared by every draw.
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.DepthFunc(gl.LEQUAL)
	r.ready = true
	log.Printf("GPU: %s / %s", r.GPUVendor(), r.GPURenderer())
	return nil
}

func (r *RendererGL) Shutdown() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.ready = false
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) SetCullFace(enabled bool)  { toggle(gl.CULL_FACE, enabled) }
func (r *RendererGL) SetDepthTest(enabled bool) { toggle(gl.DEPTH_TEST, enabled) }

func toggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (r *RendererGL) GPUVendor() string   { return glString(gl.VENDOR) }
func (r *RendererGL) GPURenderer() string { return glString(gl.RENDERER) }
func (r *RendererGL) GPUVersion() string  { return glString(gl.VERSION) }

func glString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

// --- Buffers ---

func (r *RendererGL) CreateVertexBuffer(data []float32) (core.Buffer, error) {
	if !r.ready {
		return nil, core.ErrNoContext
	}
	if len(data) == 0 {
		return nil, core.ErrEmptyBuffer
	}
	b := &buffer{kind: core.VertexBuffer, n: len(data)}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b, nil
}

func (r *RendererGL) CreateIndexBuffer(data []uint16) (core.Buffer, error) {
	if !r.ready {
		return nil, core.ErrNoContext
	}
	if len(data) == 0 {
		return nil, core.ErrEmptyBuffer
	}
	b := &buffer{kind: core.IndexBuffer, n: len(data)}
	gl.GenBuffers(1, &b.id)
	// element bindings are VAO state; the shared VAO is rebound on every draw anyway
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
	return b, nil
}

func (r *RendererGL) DestroyBuffer(b core.Buffer) {
	gb := b.(*buffer)
	if gb.id != 0 {
		gl.DeleteBuffers(1, &gb.id)
		gb.id = 0
	}
}

func (r *RendererGL) BindVertexBuffer(location, size int32, b core.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.(*buffer).id)
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointerWithOffset(uint32(location), size, gl.FLOAT, false, 0, 0)
}

func (r *RendererGL) BindIndexBuffer(b core.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.(*buffer).id)
}

func (r *RendererGL) DrawIndexed(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, 0)
}

// --- Pipelines ---

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if !r.ready {
		return nil, core.ErrNoContext
	}
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
	}
	p := &pipeline{
		name:     desc.Name,
		program:  prog,
		attribs:  make(map[string]int32, len(desc.Attributes)),
		uniforms: make(map[string]int32, len(desc.Uniforms)),
	}
	for _, a := range desc.Attributes {
		loc := gl.GetAttribLocation(prog, gl.Str(a+"\x00"))
		if loc < 0 {
			log.Printf("pipeline %q: attribute %q is not active", desc.Name, a)
		}
		p.attribs[a] = loc
	}
	for _, u := range desc.Uniforms {
		loc := gl.GetUniformLocation(prog, gl.Str(u+"\x00"))
		if loc < 0 {
			log.Printf("pipeline %q: uniform %q is not active", desc.Name, u)
		}
		p.uniforms[u] = loc
	}
	return p, nil
}

func (r *RendererGL) DestroyPipeline(p core.Pipeline) {
	gp := p.(*pipeline)
	if gp.program != 0 {
		gl.DeleteProgram(gp.program)
		gp.program = 0
	}
}

func (r *RendererGL) UsePipeline(p core.Pipeline) {
	gl.UseProgram(p.(*pipeline).program)
}

func (r *RendererGL) SetUniformMat4(p core.Pipeline, name string, m [16]float32) {
	gl.UniformMatrix4fv(p.(*pipeline).uniform(name), 1, false, &m[0])
}

func (r *RendererGL) SetUniformVec3(p core.Pipeline, name string, v [3]float32) {
	gl.Uniform3fv(p.(*pipeline).uniform(name), 1, &v[0])
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

var _ core.Renderer = (*RendererGL)(nil)
