package colors

import "fmt"

type Color [4]float32

var (
	White     = Color{1, 1, 1, 1}
	Red       = Color{1, 0, 0, 1}
	Blue      = Color{0, 0, 1, 1}
	Black     = Color{0, 0, 0, 1}
	LightGray = Color{0.7, 0.7, 0.7, 1}
	PaleCyan  = Color{0.8, 1, 1, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Parse accepts 3 or 4 components in [0,1]; alpha defaults to 1.
func Parse(v []float32) (Color, error) {
	if len(v) != 3 && len(v) != 4 {
		return Color{}, fmt.Errorf("colors: want 3 or 4 components, got %d", len(v))
	}
	c := Color{0, 0, 0, 1}
	for i, f := range v {
		if f < 0 || f > 1 {
			return Color{}, fmt.Errorf("colors: component %d out of range: %v", i, f)
		}
		c[i] = f
	}
	return c, nil
}
