package scene

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/clockface/engine/core"
)

// OrbitController3D: left-drag orbits, wheel zooms.
type OrbitController3D struct {
	// MoveSpeed is the orbit angle, in half turns, for a drag across the whole viewport.
	MoveSpeed float32
	ZoomSpeed float32
	Camera    *OrbitCamera3D

	dragging     bool
	lastX, lastY float64
	w, h         float32
}

func NewOrbitController3D(cam *OrbitCamera3D, moveSpeed float32) *OrbitController3D {
	return &OrbitController3D{
		MoveSpeed: moveSpeed,
		ZoomSpeed: 0.25,
		Camera:    cam,
		w:         1,
		h:         1,
	}
}

func (cc *OrbitController3D) SetViewportPixels(w, h int) {
	if w > 0 && h > 0 {
		cc.w, cc.h = float32(w), float32(h)
	}
}

// HandleEvent reports whether ev was consumed by the camera.
func (cc *OrbitController3D) HandleEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		cc.SetViewportPixels(v.W, v.H)
	case core.EventMouseButton:
		if v.Button != core.MouseLeft {
			return false
		}
		cc.dragging = v.Down
		return true
	case core.EventMouseMove:
		if !cc.dragging {
			cc.lastX, cc.lastY = v.X, v.Y
			return false
		}
		dx := float32(v.X-cc.lastX) / cc.w
		dy := float32(v.Y-cc.lastY) / cc.h
		cc.lastX, cc.lastY = v.X, v.Y
		// dragging right swings the eye left around the target; dragging down tips it up
		cc.Camera.Orbit(-dx*cc.MoveSpeed*math32.Pi, dy*cc.MoveSpeed*math32.Pi)
		return true
	case core.EventScroll:
		cc.Camera.Zoom(-float32(v.Yoff) * cc.ZoomSpeed)
		return true
	}
	return false
}
