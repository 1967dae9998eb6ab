package clockface

import (
	"fmt"
	"log"

	"github.com/hubastard/clockface/engine/core"
)

func (d *Driver) OnAttach(e *core.Engine) {
	d.SetViewport(e.Window.FramebufferSize())
	if err := d.Start(e.Now()); err != nil {
		panic(err)
	}
	d.updateTitle(e)
}

func (d *Driver) OnDetach(e *core.Engine) { d.Release() }

func (d *Driver) OnUpdate(e *core.Engine, dt float64) {}

// OnRender draws one frame. Errors here mean the driver was misused, so they halt the loop.
func (d *Driver) OnRender(e *core.Engine, alpha float64) {
	if err := d.RenderFrame(e.Now()); err != nil {
		panic(err)
	}
}

func (d *Driver) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		d.SetViewport(v.W, v.H)
		return false
	case core.EventKey:
		if !v.Down || !d.toggle(v.Key) {
			break
		}
		d.updateTitle(e)
		return true
	}
	if d.ctrl != nil {
		return d.ctrl.HandleEvent(e, ev)
	}
	return false
}

// toggle flips the render state bound to k and reports whether k was bound.
func (d *Driver) toggle(k core.Key) bool {
	var name string
	var flag *bool
	switch k {
	case core.KeyC:
		name, flag = "culling", &d.State.Culling
	case core.KeyD:
		name, flag = "depth test", &d.State.DepthTest
	case core.KeyR:
		name, flag = "spin", &d.State.Spin
	default:
		return false
	}
	*flag = !*flag
	log.Printf("%s %s", name, onOff(*flag))
	return true
}

// Status summarizes the toggles for the window title.
func (d *Driver) Status() string {
	return fmt.Sprintf("culling %s [C]  depth %s [D]  spin %s [R]",
		onOff(d.State.Culling), onOff(d.State.DepthTest), onOff(d.State.Spin))
}

func (d *Driver) updateTitle(e *core.Engine) {
	e.Window.SetTitle(d.opts.Title + " | " + d.Status())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var _ core.Layer = (*Driver)(nil)
