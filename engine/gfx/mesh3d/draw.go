package mesh3d

import (
	"fmt"

	"github.com/hubastard/clockface/engine/core"
)

// VertexAttrib names a shader input and its component count.
type VertexAttrib struct {
	Name     string
	Location int32
	Size     int
}

// Layout is the ordered list of attribute slots a Drawable's vertex buffers bind to.
type Layout []VertexAttrib

// StandardAttributes is the fixed attribute order: position, normal, color.
var StandardAttributes = Layout{
	{Name: "position", Location: -1, Size: 3},
	{Name: "normal", Location: -1, Size: 3},
	{Name: "color", Location: -1, Size: 4},
}

// ResolveLayout looks up attribute locations in p. Attributes the program optimized out
// keep location -1 and are skipped by Draw.
func ResolveLayout(p core.Pipeline, attrs Layout) Layout {
	out := make(Layout, len(attrs))
	for i, a := range attrs {
		a.Location = p.AttribLocation(a.Name)
		out[i] = a
	}
	return out
}

// Draw binds d's buffers to layout and issues one indexed triangle-list draw.
// Uniforms must already be set for this draw.
func Draw(dev core.Renderer, layout Layout, d *Drawable) {
	if len(d.VertexBuffers) != len(layout) {
		panic(fmt.Sprintf("mesh3d: drawable %q has %d vertex buffers, layout has %d", d.Name, len(d.VertexBuffers), len(layout)))
	}
	for i, a := range layout {
		if a.Location < 0 {
			continue
		}
		dev.BindVertexBuffer(a.Location, int32(a.Size), d.VertexBuffers[i])
	}
	dev.BindIndexBuffer(d.IndexBuffer)
	dev.DrawIndexed(d.IndexCount)
}
