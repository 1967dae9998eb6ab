package gfxtest

import "github.com/hubastard/clockface/engine/core"

// Window is a headless core.Window. Events are delivered with Emit.
type Window struct {
	W, H   int
	Title  string
	Swaps  int
	Closed bool

	cb func(core.Event)
}

func NewWindow(w, h int) *Window { return &Window{W: w, H: h} }

func (w *Window) PollEvents()                          {}
func (w *Window) SwapBuffers()                         { w.Swaps++ }
func (w *Window) ShouldClose() bool                    { return w.Closed }
func (w *Window) RequestClose()                        { w.Closed = true }
func (w *Window) FramebufferSize() (int, int)          { return w.W, w.H }
func (w *Window) SetTitle(t string)                    { w.Title = t }
func (w *Window) SetEventCallback(cb func(core.Event)) { w.cb = cb }

// Emit delivers ev through the registered callback, as the platform layer would.
func (w *Window) Emit(ev core.Event) {
	if r, ok := ev.(core.EventResize); ok {
		w.W, w.H = r.W, r.H
	}
	if w.cb != nil {
		w.cb(ev)
	}
}

var _ core.Window = (*Window)(nil)
