// Package clockface draws a 3D analog clock: a dial, a shaft and a second hand that
// follows the wall clock, seen through an externally owned camera.
package clockface

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clockface/engine/core"
	"github.com/hubastard/clockface/engine/geometry"
	"github.com/hubastard/clockface/engine/gfx/mesh3d"
	"github.com/hubastard/clockface/engine/profiler"
	"github.com/hubastard/clockface/engine/scene"
)

var (
	ErrNotReady   = errors.New("clockface: driver not initialized")
	ErrNotStarted = errors.New("clockface: render loop not started")
)

// Frame is what one pass through the stages sees. Now and Elapsed are sampled once.
type Frame struct {
	Now            time.Time
	Elapsed        time.Duration
	ViewProjection mgl32.Mat4
}

type stage struct {
	name string
	run  func(f *Frame)
}

// Driver owns the clock's drawables and pipeline and renders one frame per RenderFrame.
type Driver struct {
	State *RenderState

	dev    core.Renderer
	pipe   core.Pipeline
	layout mesh3d.Layout
	cam    Camera
	ctrl   *scene.OrbitController3D
	opts   Options

	dial, shaft, hand *mesh3d.Drawable

	phase  Phase
	start  time.Time
	width  int
	height int
	stages []stage
}

// New builds the three meshes and uploads them. On success the driver owns pipe.
// On error everything uploaded so far is released and rendering must not start.
func New(dev core.Renderer, pipe core.Pipeline, cam Camera, state *RenderState, opts Options) (*Driver, error) {
	if dev == nil {
		return nil, core.ErrNoContext
	}
	if pipe == nil || cam == nil {
		return nil, fmt.Errorf("clockface: pipeline and camera are required")
	}
	if state == nil {
		state = &RenderState{}
	}
	d := &Driver{
		State:  state,
		dev:    dev,
		pipe:   pipe,
		layout: mesh3d.ResolveLayout(pipe, mesh3d.StandardAttributes),
		cam:    cam,
		opts:   opts,
		width:  1,
		height: 1,
	}
	if oc, ok := cam.(*scene.OrbitCamera3D); ok {
		d.ctrl = scene.NewOrbitController3D(oc, opts.CameraMoveSpeed)
	}
	d.stages = []stage{
		{"reload", d.reload},
		{"clear", d.clear},
		{"state", d.applyState},
		{"camera", d.camera},
		{"draw", d.draw},
	}

	var err error
	if d.dial, err = d.build("dial", func() (geometry.Mesh, error) {
		return geometry.FanDisc(opts.DialSegments, opts.DialRadius, opts.DialColor)
	}); err != nil {
		return nil, err
	}
	if d.shaft, err = d.build("shaft", func() (geometry.Mesh, error) {
		return geometry.Cylinder(opts.ShaftSegments, opts.ShaftTopRadius, opts.ShaftBottomRadius, opts.ShaftHeight, opts.ShaftColor)
	}); err != nil {
		d.releaseMeshes()
		return nil, err
	}
	if d.hand, err = d.build("hand", func() (geometry.Mesh, error) {
		return geometry.Cylinder(opts.HandSegments, opts.HandTopRadius, opts.HandBottomRadius, opts.HandLength, opts.HandColor)
	}); err != nil {
		d.releaseMeshes()
		return nil, err
	}
	d.phase = Ready
	return d, nil
}

func (d *Driver) build(name string, gen func() (geometry.Mesh, error)) (*mesh3d.Drawable, error) {
	m, err := gen()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return mesh3d.Upload(d.dev, name, m)
}

func (d *Driver) Phase() Phase { return d.phase }

// SetViewport records the framebuffer size used for the viewport and the aspect ratio.
func (d *Driver) SetViewport(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	d.width, d.height = w, h
	if d.ctrl != nil {
		d.ctrl.SetViewportPixels(w, h)
	}
}

// Start marks the beginning of the render loop. Elapsed time is measured from now.
func (d *Driver) Start(now time.Time) error {
	if d.phase == Uninitialized {
		return ErrNotReady
	}
	d.start = now
	d.phase = Rendering
	return nil
}

// RenderFrame runs reload, clear, state, camera and draw, in that order.
func (d *Driver) RenderFrame(now time.Time) error {
	switch d.phase {
	case Uninitialized:
		return ErrNotReady
	case Ready:
		return ErrNotStarted
	}
	f := &Frame{Now: now, Elapsed: now.Sub(d.start)}
	for _, s := range d.stages {
		end := profiler.Start("frame." + s.name)
		s.run(f)
		end()
	}
	return nil
}

func (d *Driver) reload(*Frame) {
	src := d.opts.Shaders
	if src == nil || !src.Changed() {
		return
	}
	desc, err := src.Desc()
	if err != nil {
		log.Printf("shader reload: %v", err)
		return
	}
	p, err := d.dev.CreatePipeline(desc)
	if err != nil {
		log.Printf("shader reload: %v (keeping previous program)", err)
		return
	}
	d.dev.DestroyPipeline(d.pipe)
	d.pipe = p
	d.layout = mesh3d.ResolveLayout(p, mesh3d.StandardAttributes)
	log.Printf("shader reload: %s rebuilt", desc.Name)
}

func (d *Driver) clear(*Frame) {
	c := d.opts.ClearColor
	d.dev.Resize(d.width, d.height)
	d.dev.Clear(c[0], c[1], c[2], c[3])
}

func (d *Driver) applyState(*Frame) {
	d.dev.SetCullFace(d.State.Culling)
	d.dev.SetDepthTest(d.State.DepthTest)
}

func (d *Driver) camera(f *Frame) {
	aspect := float32(d.width) / float32(d.height)
	proj := mgl32.Perspective(d.opts.FovY, aspect, d.opts.Near, d.opts.Far)
	f.ViewProjection = proj.Mul4(d.cam.Update())
}

func (d *Driver) draw(f *Frame) {
	d.dev.UsePipeline(d.pipe)
	ts := d.transforms(*f)
	for i, obj := range []*mesh3d.Drawable{d.dial, d.shaft, d.hand} {
		ts[i].Apply(d.dev, d.pipe, d.opts.Light)
		mesh3d.Draw(d.dev, d.layout, obj)
	}
}

// transforms returns the dial, shaft and hand transform sets for f.
func (d *Driver) transforms(f Frame) [3]mesh3d.TransformSet {
	vp := f.ViewProjection
	spin := func() []mesh3d.Rotation {
		if !d.State.Spin {
			return nil
		}
		return []mesh3d.Rotation{{Angle: float32(f.Elapsed.Seconds()), Axis: mesh3d.AxisZ}}
	}

	shaft := append(spin(), mesh3d.Rotation{Angle: math32.Pi / 2, Axis: mesh3d.AxisX})
	hand := append(spin(), mesh3d.Rotation{Angle: HandAngle(f.Now), Axis: mesh3d.AxisNegZ})

	return [3]mesh3d.TransformSet{
		mesh3d.Compose(nil, mgl32.Vec3{0, 0, d.opts.DialDepth}, vp),
		mesh3d.Compose(shaft, mgl32.Vec3{}, vp),
		mesh3d.Compose(hand, mgl32.Vec3{0, d.opts.HandLength/2 - d.opts.HandPivot, 0}, vp),
	}
}

// HandAngle maps the seconds field of wall to the second hand's clockwise angle in radians.
func HandAngle(wall time.Time) float32 {
	return 2 * math32.Pi * float32(wall.Second()) / 60
}

// Release frees the drawables and the pipeline. The driver returns to Uninitialized.
func (d *Driver) Release() {
	d.releaseMeshes()
	if d.pipe != nil {
		d.dev.DestroyPipeline(d.pipe)
		d.pipe = nil
	}
	d.phase = Uninitialized
}

func (d *Driver) releaseMeshes() {
	for _, m := range []*mesh3d.Drawable{d.dial, d.shaft, d.hand} {
		if m != nil {
			m.Release(d.dev)
		}
	}
	d.dial, d.shaft, d.hand = nil, nil, nil
}
