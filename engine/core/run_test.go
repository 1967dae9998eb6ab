package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	closed  bool
	polls   int
	swaps   int
	maxRuns int
	onEv    func(Event)
}

func (w *fakeWindow) PollEvents() {
	w.polls++
	if w.polls >= w.maxRuns {
		w.closed = true
	}
}
func (w *fakeWindow) SwapBuffers()                    { w.swaps++ }
func (w *fakeWindow) ShouldClose() bool               { return w.closed }
func (w *fakeWindow) RequestClose()                   { w.closed = true }
func (w *fakeWindow) FramebufferSize() (int, int)     { return 800, 600 }
func (w *fakeWindow) SetTitle(string)                 {}
func (w *fakeWindow) SetEventCallback(cb func(Event)) { w.onEv = cb }

type recordingApp struct {
	startErr error
	log      []string
	updates  int
	renders  int
	events   []Event
}

func (a *recordingApp) OnStart(e *Engine) error {
	a.log = append(a.log, "start")
	return a.startErr
}
func (a *recordingApp) OnUpdate(e *Engine, dt float64)    { a.updates++ }
func (a *recordingApp) OnRender(e *Engine, alpha float64) { a.renders++; a.log = append(a.log, "render") }
func (a *recordingApp) OnEvent(e *Engine, ev Event)       { a.events = append(a.events, ev) }
func (a *recordingApp) OnShutdown(e *Engine)              { a.log = append(a.log, "shutdown") }

type recordingLayer struct {
	name    string
	log     *[]string
	consume bool
}

func (l *recordingLayer) OnAttach(e *Engine)             { *l.log = append(*l.log, l.name+".attach") }
func (l *recordingLayer) OnDetach(e *Engine)             { *l.log = append(*l.log, l.name+".detach") }
func (l *recordingLayer) OnUpdate(e *Engine, dt float64) {}
func (l *recordingLayer) OnRender(e *Engine, alpha float64) {
	*l.log = append(*l.log, l.name+".render")
}
func (l *recordingLayer) OnEvent(e *Engine, ev Event) bool {
	*l.log = append(*l.log, l.name+".event")
	return l.consume
}

func TestEngineFrameRequestsNextFrameFirst(t *testing.T) {
	sched := &ManualScheduler{}
	app := &recordingApp{}
	eng := NewEngine(&fakeWindow{}, nil, sched, Config{})

	t0 := time.Unix(1000, 0)
	require.NoError(t, eng.Start(app, t0))
	require.True(t, sched.Pending())

	for i := 1; i <= 5; i++ {
		require.True(t, sched.Step(t0.Add(time.Duration(i)*time.Second/60)))
		assert.True(t, sched.Pending(), "frame %d must reschedule itself", i)
	}
	assert.Equal(t, 5, sched.Frames())
	assert.Equal(t, 5, app.renders)
	assert.Equal(t, 5, app.updates)
}

func TestEngineStartFailureSchedulesNothing(t *testing.T) {
	sched := &ManualScheduler{}
	app := &recordingApp{startErr: errors.New("no shader")}
	eng := NewEngine(&fakeWindow{}, nil, sched, Config{})

	err := eng.Start(app, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, app.startErr)
	assert.False(t, sched.Pending())
}

func TestEngineLayersRenderBottomUpAndEventsTopDown(t *testing.T) {
	sched := &ManualScheduler{}
	app := &recordingApp{}
	eng := NewEngine(&fakeWindow{}, nil, sched, Config{})

	var log []string
	eng.Layers.Push(&recordingLayer{name: "bottom", log: &log})
	eng.Layers.Push(&recordingLayer{name: "top", log: &log, consume: true})

	t0 := time.Unix(0, 0)
	require.NoError(t, eng.Start(app, t0))
	sched.Step(t0)
	eng.Dispatch(EventKey{Key: KeyC, Down: true})

	assert.Equal(t, []string{
		"bottom.attach", "top.attach",
		"bottom.render", "top.render",
		"top.event",
	}, log)
	assert.Empty(t, app.events, "consumed events do not reach the app")
	assert.True(t, eng.Input.IsKeyDown(KeyC))
}

func TestEngineCloseRequestedClosesWindow(t *testing.T) {
	win := &fakeWindow{}
	eng := NewEngine(win, nil, &ManualScheduler{}, Config{})
	eng.Dispatch(EventCloseRequested{})
	assert.True(t, win.ShouldClose())
}

func TestDisplaySchedulerRunsOneFramePerSwap(t *testing.T) {
	win := &fakeWindow{maxRuns: 4}
	sched := NewDisplayScheduler(win)
	fixed := time.Unix(42, 0)
	sched.Now = func() time.Time { return fixed }

	var seen []time.Time
	var frame FrameFunc
	frame = func(now time.Time) {
		sched.RequestFrame(frame)
		seen = append(seen, now)
	}
	sched.RequestFrame(frame)
	sched.Run()

	assert.Len(t, seen, 4)
	assert.Equal(t, 4, win.swaps)
	for _, s := range seen {
		assert.Equal(t, fixed, s)
	}
}

func TestManualSchedulerRejectsReentrantStep(t *testing.T) {
	sched := &ManualScheduler{}
	sched.RequestFrame(func(now time.Time) {
		sched.RequestFrame(func(time.Time) {})
		assert.Panics(t, func() { sched.Step(now) })
	})
	assert.True(t, sched.Step(time.Now()))
	assert.True(t, sched.Step(time.Now()), "frame requested inside a frame runs on the next step")
	assert.False(t, sched.Pending())
}
