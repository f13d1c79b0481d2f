package marquee

import (
	"log/slog"
)

// Scheduler requests that fn run on the next frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a Scheduler driven by the game loop: callbacks requested
// before Flush run in that Flush; callbacks requested while flushing run
// on the next one.
type FrameQueue struct {
	pending []func()
	running []func()
}

// RequestFrame implements Scheduler.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Pending returns the number of outstanding requests.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush runs every callback requested before the call.
func (q *FrameQueue) Flush() {
	q.running, q.pending = q.pending, q.running[:0]
	for i, fn := range q.running {
		q.running[i] = nil
		fn()
	}
	q.running = q.running[:0]
}

// LoopState is the RenderLoop state.
type LoopState uint8

const (
	LoopPlaying LoopState = iota
	LoopStopped
)

// String implements fmt.Stringer.
func (s LoopState) String() string {
	if s == LoopStopped {
		return "stopped"
	}
	return "playing"
}

// RenderLoop drives a per-frame update and draw through a Scheduler. It
// starts Playing with its first frame already requested.
//
// Each tick runs update, requests the next frame, then runs draw. An update
// error ends the chain: no further frame is requested until Play is called
// after Stop. A draw error is logged and the chain continues.
type RenderLoop struct {
	sched  Scheduler
	update func() error
	draw   func() error

	state     LoopState
	scheduled bool
	frames    uint64
	err       error
}

// NewRenderLoop creates a playing loop and requests its first frame.
func NewRenderLoop(sched Scheduler, update, draw func() error) *RenderLoop {
	l := &RenderLoop{sched: sched, update: update, draw: draw}
	l.schedule()
	return l
}

// State returns the current state.
func (l *RenderLoop) State() LoopState { return l.state }

// Playing reports whether the loop is in the Playing state.
func (l *RenderLoop) Playing() bool { return l.state == LoopPlaying }

// Frames returns the number of completed ticks.
func (l *RenderLoop) Frames() uint64 { return l.frames }

// Err returns the update error that ended the chain, if any.
func (l *RenderLoop) Err() error { return l.err }

// Stop moves to Stopped. The outstanding frame, if any, runs and returns
// without requesting another.
func (l *RenderLoop) Stop() {
	if l.state == LoopStopped {
		return
	}
	l.state = LoopStopped
	Logger().Info("marquee: render loop stopped", slog.Uint64("frames", l.frames))
}

// Play moves from Stopped to Playing and requests a frame unless one is
// already outstanding. No-op while Playing.
func (l *RenderLoop) Play() {
	if l.state == LoopPlaying {
		return
	}
	l.state = LoopPlaying
	l.err = nil
	l.schedule()
	Logger().Info("marquee: render loop playing", slog.Uint64("frames", l.frames))
}

func (l *RenderLoop) schedule() {
	if l.scheduled {
		return
	}
	l.scheduled = true
	l.sched.RequestFrame(l.tick)
}

func (l *RenderLoop) tick() {
	l.scheduled = false
	if l.state != LoopPlaying {
		return
	}
	if err := l.update(); err != nil {
		l.err = err
		Logger().Error("marquee: frame update failed, render loop halted", slog.Any("error", err))
		return
	}
	l.schedule()
	if err := l.draw(); err != nil {
		Logger().Warn("marquee: frame draw failed", slog.Any("error", err))
	}
	l.frames++
}
