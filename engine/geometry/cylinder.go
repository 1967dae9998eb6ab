package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hubastard/clockface/engine/colors"
)

// Cylinder builds a capped cylinder (a frustum when the radii differ) centered on the
// origin along +Y. Caps and sides use separate vertices so each gets its own normal.
func Cylinder(split int, topRadius, bottomRadius, height float32, color colors.Color) (Mesh, error) {
	if split < 3 {
		return Mesh{}, fmt.Errorf("%w: got %d", ErrTooFewSegments, split)
	}
	if !(topRadius > 0) || !(bottomRadius > 0) {
		return Mesh{}, fmt.Errorf("%w: top %v, bottom %v", ErrInvalidRadius, topRadius, bottomRadius)
	}
	if !(height > 0) {
		return Mesh{}, fmt.Errorf("%w: got %v", ErrInvalidHeight, height)
	}
	// two cap centers + 4 vertices per ring position, ring closed with a duplicate seam
	n := 2 + (split+1)*4
	if err := checkVertexCount(n); err != nil {
		return Mesh{}, err
	}

	h := height / 2
	m := Mesh{
		Position: make([]float32, 0, n*3),
		Normal:   make([]float32, 0, n*3),
		Color:    make([]float32, 0, n*4),
		TexCoord: make([]float32, 0, n*2),
		Index:    make([]uint16, 0, split*12),
	}

	m.Position = append(m.Position, 0, h, 0, 0, -h, 0)
	m.Normal = append(m.Normal, 0, 1, 0, 0, -1, 0)
	m.Color = append(m.Color, color[:]...)
	m.Color = append(m.Color, color[:]...)
	m.TexCoord = append(m.TexCoord, 0.5, 0.5, 0.5, 0.5)

	step := math32.Pi * 2 / float32(split)
	j := uint16(2)
	for i := 0; i <= split; i++ {
		rx, rz := math32.Cos(step*float32(i)), math32.Sin(step*float32(i))
		u := 1 - float32(i)/float32(split)
		capU, capV := (rx+1)*0.5, 1-(rz+1)*0.5

		// j: top cap rim, j+1: top side, j+2: bottom cap rim, j+3: bottom side
		m.Position = append(m.Position,
			rx*topRadius, h, rz*topRadius,
			rx*topRadius, h, rz*topRadius,
			rx*bottomRadius, -h, rz*bottomRadius,
			rx*bottomRadius, -h, rz*bottomRadius,
		)
		m.Normal = append(m.Normal,
			0, 1, 0,
			rx, 0, rz,
			0, -1, 0,
			rx, 0, rz,
		)
		for k := 0; k < 4; k++ {
			m.Color = append(m.Color, color[:]...)
		}
		m.TexCoord = append(m.TexCoord,
			capU, capV,
			u, 0,
			capU, capV,
			u, 1,
		)

		if i < split {
			m.Index = append(m.Index,
				0, j+4, j,
				1, j+2, j+6,
				j+1, j+5, j+3,
				j+5, j+7, j+3,
			)
		}
		j += 4
	}
	return m, nil
}
