package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hubastard/clockface/engine/colors"
)

// rimNormalSkew tilts rim normals outward so the dial shades like a shallow dome.
const rimNormalSkew = 1.8

// FanDisc builds a flat disc in the XY plane facing +Z: one center vertex and split
// rim vertices, joined by split triangles that share the center.
//
// Rim normals are (cos/1.8, sin/1.8, 1) and are left unnormalized on purpose.
func FanDisc(split int, radius float32, color colors.Color) (Mesh, error) {
	if split < 3 {
		return Mesh{}, fmt.Errorf("%w: got %d", ErrTooFewSegments, split)
	}
	if !(radius > 0) {
		return Mesh{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if err := checkVertexCount(split + 1); err != nil {
		return Mesh{}, err
	}

	n := split + 1
	m := Mesh{
		Position: make([]float32, 0, n*3),
		Normal:   make([]float32, 0, n*3),
		Color:    make([]float32, 0, n*4),
		TexCoord: make([]float32, 0, n*2),
		Index:    make([]uint16, 0, split*3),
	}

	m.Position = append(m.Position, 0, 0, 0)
	m.Normal = append(m.Normal, 0, 0, 1)
	m.Color = append(m.Color, color[:]...)
	m.TexCoord = append(m.TexCoord, 0.5, 0.5)

	step := math32.Pi * 2 / float32(split)
	for i := 0; i < split; i++ {
		rx, ry := math32.Cos(step*float32(i)), math32.Sin(step*float32(i))
		m.Position = append(m.Position, rx*radius, ry*radius, 0)
		m.Normal = append(m.Normal, rx/rimNormalSkew, ry/rimNormalSkew, 1)
		m.Color = append(m.Color, color[:]...)
		m.TexCoord = append(m.TexCoord, (rx+1)*0.5, 1-(ry+1)*0.5)

		// Rim vertex i is index i+1; the last triangle closes back onto rim vertex 0 (index 1).
		next := uint16(i + 2)
		if i == split-1 {
			next = 1
		}
		m.Index = append(m.Index, 0, uint16(i+1), next)
	}
	return m, nil
}
