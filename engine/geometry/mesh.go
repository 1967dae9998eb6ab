// Package geometry builds static triangle meshes as separate attribute arrays.
//
// Every builder returns positions (3 floats), normals (3), colors (4), texture
// coordinates (2) per vertex and a counter-clockwise triangle list of 16-bit indices.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrTooFewSegments  = errors.New("geometry: split count must be at least 3")
	ErrInvalidRadius   = errors.New("geometry: radius must be positive")
	ErrInvalidHeight   = errors.New("geometry: height must be positive")
	ErrTooManyVertices = errors.New("geometry: vertex count exceeds 16-bit index range")
)

// Mesh holds per-vertex attribute arrays and a triangle index list.
type Mesh struct {
	Position []float32
	Normal   []float32
	Color    []float32
	TexCoord []float32
	Index    []uint16
}

func (m Mesh) VertexCount() int   { return len(m.Position) / 3 }
func (m Mesh) TriangleCount() int { return len(m.Index) / 3 }

// Validate checks attribute lengths agree and every index addresses a vertex.
func (m Mesh) Validate() error {
	n := m.VertexCount()
	switch {
	case len(m.Position)%3 != 0:
		return fmt.Errorf("geometry: position length %d not a multiple of 3", len(m.Position))
	case len(m.Normal) != n*3:
		return fmt.Errorf("geometry: %d normals for %d vertices", len(m.Normal)/3, n)
	case len(m.Color) != n*4:
		return fmt.Errorf("geometry: %d colors for %d vertices", len(m.Color)/4, n)
	case len(m.TexCoord) != 0 && len(m.TexCoord) != n*2:
		return fmt.Errorf("geometry: %d texcoords for %d vertices", len(m.TexCoord)/2, n)
	case len(m.Index)%3 != 0:
		return fmt.Errorf("geometry: index length %d not a multiple of 3", len(m.Index))
	}
	for i, ix := range m.Index {
		if int(ix) >= n {
			return fmt.Errorf("geometry: index %d at %d out of range (%d vertices)", ix, i, n)
		}
	}
	return nil
}

func checkVertexCount(n int) error {
	if n > math.MaxUint16+1 {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, n)
	}
	return nil
}
