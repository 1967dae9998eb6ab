package core

import "time"

// FrameFunc renders one frame. now is sampled once when the frame starts.
type FrameFunc func(now time.Time)

// Scheduler hands out display frames. At most one request is pending; a newer request
// replaces the older one, and a FrameFunc is never invoked while another one is running.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// DisplayScheduler runs the pending frame once per loop iteration and presents it.
// With VSync enabled on the window, SwapBuffers paces the loop to the display.
type DisplayScheduler struct {
	win     Window
	pending FrameFunc
	Now     func() time.Time
}

func NewDisplayScheduler(win Window) *DisplayScheduler {
	return &DisplayScheduler{win: win, Now: time.Now}
}

func (s *DisplayScheduler) RequestFrame(fn FrameFunc) { s.pending = fn }

// Run loops until the window is asked to close.
func (s *DisplayScheduler) Run() {
	for !s.win.ShouldClose() {
		// Poll OS events (platform will emit via callbacks)
		s.win.PollEvents()

		fn := s.pending
		s.pending = nil
		if fn == nil {
			continue
		}
		fn(s.Now())

		// Present
		s.win.SwapBuffers()
	}
}

// ManualScheduler holds the requested frame until Step is called. Used to drive frames
// deterministically without a display.
type ManualScheduler struct {
	pending FrameFunc
	running bool
	frames  int
}

func (s *ManualScheduler) RequestFrame(fn FrameFunc) { s.pending = fn }

// Pending reports whether a frame has been requested and not yet run.
func (s *ManualScheduler) Pending() bool { return s.pending != nil }

// Frames returns how many frames Step has run.
func (s *ManualScheduler) Frames() int { return s.frames }

// Step runs the pending frame with the given time. It returns false if nothing was pending.
func (s *ManualScheduler) Step(now time.Time) bool {
	if s.running {
		panic("core: ManualScheduler.Step called from inside a frame")
	}
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	s.running = true
	defer func() { s.running = false }()
	fn(now)
	s.frames++
	return true
}
