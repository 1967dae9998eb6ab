package core

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Engine exposes core services to the App.
type Engine struct {
	Window    Window
	Renderer  Renderer
	Input     *Input
	Layers    LayerStack
	Scheduler Scheduler

	app   App
	tick  time.Duration
	start time.Time
	prev  time.Time
	accum time.Duration
	frame FrameFunc
}

// NewEngine wires an engine over an already created window and renderer.
func NewEngine(win Window, rend Renderer, sched Scheduler, cfg Config) *Engine {
	tick := cfg.FixedStep
	if tick <= 0 {
		tick = time.Second / 60
	}
	e := &Engine{
		Window:    win,
		Renderer:  rend,
		Input:     NewInput(),
		Scheduler: sched,
		tick:      tick,
	}
	e.frame = e.runFrame
	return e
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Now is the timestamp of the frame being run, or the start time before the first frame.
func (e *Engine) Now() time.Time { return e.prev }

// Start calls app.OnStart and requests the first frame.
func (e *Engine) Start(app App, now time.Time) error {
	e.app = app
	e.start, e.prev = now, now
	if err := app.OnStart(e); err != nil {
		return fmt.Errorf("app start: %w", err)
	}
	e.Layers.ForEach(func(l Layer) { l.OnAttach(e) })
	e.Scheduler.RequestFrame(e.frame)
	return nil
}

// Stop detaches layers and calls app.OnShutdown.
func (e *Engine) Stop() {
	e.Layers.ForEachReverse(func(l Layer) bool {
		l.OnDetach(e)
		return false
	})
	if e.app != nil {
		e.app.OnShutdown(e)
	}
}

// Dispatch routes a window event: input state first, then layers top-down, then the app.
func (e *Engine) Dispatch(ev Event) {
	e.Input.Handle(ev)
	if _, ok := ev.(EventCloseRequested); ok {
		e.Window.RequestClose()
	}
	handled := false
	e.Layers.ForEachReverse(func(l Layer) bool {
		handled = l.OnEvent(e, ev)
		return handled
	})
	if !handled && e.app != nil {
		e.app.OnEvent(e, ev)
	}
}

func (e *Engine) runFrame(now time.Time) {
	// Next frame is requested before any work so one is always in flight.
	e.Scheduler.RequestFrame(e.frame)

	frame := now.Sub(e.prev)
	e.prev = now
	e.accum += frame

	// Fixed-timestep updates with interpolation
	const maxStep = 10 // prevent spiral of death
	steps := 0
	dt := float64(e.tick) / float64(time.Second)
	for e.accum >= e.tick && steps < maxStep {
		e.Layers.ForEach(func(l Layer) { l.OnUpdate(e, dt) })
		e.app.OnUpdate(e, dt)
		e.accum -= e.tick
		steps++
	}
	if steps == maxStep {
		e.accum = 0
	}
	alpha := float64(e.accum) / float64(e.tick)

	e.Layers.ForEach(func(l Layer) { l.OnRender(e, alpha) })
	e.app.OnRender(e, alpha)
}

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	if d, ok := win.(interface{ Destroy() }); ok {
		defer d.Destroy()
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	sched := NewDisplayScheduler(win)
	eng := NewEngine(win, rend, sched, cfg)
	win.SetEventCallback(func(ev Event) {
		if r, ok := ev.(EventResize); ok && (r.W < 1 || r.H < 1) {
			return
		}
		eng.Dispatch(ev)
	})

	if err := eng.Start(app, time.Now()); err != nil {
		return err
	}
	sched.Run()

	eng.Stop()
	log.Println("Engine exit")
	return nil
}
