package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// maxPitch keeps the eye off the poles where the up vector degenerates.
const maxPitch = math32.Pi/2 - 0.01

// OrbitCamera3D looks at Target from Distance along a yaw/pitch direction.
// Yaw 0, pitch 0 puts the eye on +Z.
type OrbitCamera3D struct {
	Target      mgl32.Vec3
	Distance    float32
	MinDistance float32
	MaxDistance float32
	Yaw, Pitch  float32 // radians
	view        mgl32.Mat4
	dirty       bool
}

func NewOrbitCamera3D(distance, minDistance, maxDistance float32) *OrbitCamera3D {
	c := &OrbitCamera3D{
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}
	c.SetDistance(distance)
	c.Recalculate()
	return c
}

func (c *OrbitCamera3D) SetDistance(d float32) {
	if d < c.MinDistance {
		d = c.MinDistance
	}
	if d > c.MaxDistance {
		d = c.MaxDistance
	}
	c.Distance = d
	c.dirty = true
}

func (c *OrbitCamera3D) Zoom(delta float32) { c.SetDistance(c.Distance + delta) }

func (c *OrbitCamera3D) Orbit(dYaw, dPitch float32) {
	c.Yaw = math32.Mod(c.Yaw+dYaw, 2*math32.Pi)
	c.Pitch += dPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	c.dirty = true
}

// Eye returns the camera position in world space.
func (c *OrbitCamera3D) Eye() mgl32.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return c.Target.Add(mgl32.Vec3{cp * sy, sp, cp * cy}.Mul(c.Distance))
}

// Update applies pending changes and returns the view matrix. Called once per frame.
func (c *OrbitCamera3D) Update() mgl32.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.view
}

func (c *OrbitCamera3D) Recalculate() {
	c.view = mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
	c.dirty = false
}
