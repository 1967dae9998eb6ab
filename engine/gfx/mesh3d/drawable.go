// Package mesh3d turns geometry into device buffers, composes per-object transforms
// and issues indexed draws against a core.Renderer.
package mesh3d

import (
	"errors"
	"fmt"

	"github.com/hubastard/clockface/engine/core"
	"github.com/hubastard/clockface/engine/geometry"
)

var ErrIndexOutOfRange = errors.New("mesh3d: index out of range")

// Drawable is a static mesh uploaded to the device. Vertex buffers follow the order of
// StandardAttributes.
type Drawable struct {
	Name          string
	VertexBuffers []core.Buffer
	IndexBuffer   core.Buffer
	IndexCount    int
}

// Upload copies position, normal and color arrays plus the index list to the device.
// Nothing is retained on the CPU side. On error, buffers created so far are released.
func Upload(dev core.Renderer, name string, m geometry.Mesh) (*Drawable, error) {
	if dev == nil {
		return nil, fmt.Errorf("upload %s: %w", name, core.ErrNoContext)
	}
	n := m.VertexCount()
	for i, ix := range m.Index {
		if int(ix) >= n {
			return nil, fmt.Errorf("upload %s: %w: index %d at %d, %d vertices", name, ErrIndexOutOfRange, ix, i, n)
		}
	}

	d := &Drawable{Name: name}
	arrays := [][]float32{m.Position, m.Normal, m.Color}
	for i, data := range arrays {
		attr := StandardAttributes[i]
		if len(data) != n*attr.Size {
			d.Release(dev)
			return nil, fmt.Errorf("upload %s %s: %d floats for %d vertices", name, attr.Name, len(data), n)
		}
		b, err := dev.CreateVertexBuffer(data)
		if err != nil {
			d.Release(dev)
			return nil, fmt.Errorf("upload %s %s: %w", name, attr.Name, err)
		}
		d.VertexBuffers = append(d.VertexBuffers, b)
	}

	ib, err := dev.CreateIndexBuffer(m.Index)
	if err != nil {
		d.Release(dev)
		return nil, fmt.Errorf("upload %s index: %w", name, err)
	}
	d.IndexBuffer = ib
	d.IndexCount = len(m.Index)
	return d, nil
}

// Release frees the device buffers. The drawable must not be drawn afterwards.
func (d *Drawable) Release(dev core.Renderer) {
	for _, b := range d.VertexBuffers {
		dev.DestroyBuffer(b)
	}
	d.VertexBuffers = nil
	if d.IndexBuffer != nil {
		dev.DestroyBuffer(d.IndexBuffer)
		d.IndexBuffer = nil
	}
	d.IndexCount = 0
}
