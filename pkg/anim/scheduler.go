package anim

import "time"

// FrameFunc is called once with the frame timestamp.
type FrameFunc func(now time.Time)

// CancelFunc withdraws a scheduled frame. Calling it after the frame ran,
// or more than once, is a no-op.
type CancelFunc func()

// Scheduler hands out one-shot frame callbacks, the equivalent of a display
// refresh callback. A driver that wants another frame schedules again from
// inside its callback.
type Scheduler interface {
	Schedule(fn FrameFunc) CancelFunc
}

// Loop is a cooperative frame queue. Frames scheduled while a step is
// running are deferred to the next step, so each step does work
// proportional to the number of active animations.
//
// Loop is not safe for concurrent use; the host calls Schedule and Step
// from its single update goroutine.
type Loop struct {
	queue []*frame
	steps int
	last  time.Time
}

type frame struct {
	fn   FrameFunc
	done bool
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(fn FrameFunc) CancelFunc {
	f := &frame{fn: fn}
	l.queue = append(l.queue, f)
	return func() { f.done = true }
}

// Step runs every frame that was pending when Step was called and returns
// how many ran. Frames cancelled earlier in the same step are skipped.
func (l *Loop) Step(now time.Time) int {
	batch := l.queue
	l.queue = nil
	l.steps++
	l.last = now

	ran := 0
	for _, f := range batch {
		if f.done {
			continue
		}
		f.done = true
		f.fn(now)
		ran++
	}
	return ran
}

// Pending returns the number of frames waiting for the next step.
func (l *Loop) Pending() int {
	n := 0
	for _, f := range l.queue {
		if !f.done {
			n++
		}
	}
	return n
}

// Idle reports whether no frame is waiting.
func (l *Loop) Idle() bool { return l.Pending() == 0 }

// Steps returns how many times Step has been called.
func (l *Loop) Steps() int { return l.steps }

// Drain steps the loop at a fixed interval, starting one interval after
// start, until it is idle or maxSteps steps have run. It returns the time of
// the last step. Headless playback and tests use it instead of a real clock.
func (l *Loop) Drain(start time.Time, interval time.Duration, maxSteps int) time.Time {
	now := start
	for i := 0; i < maxSteps && !l.Idle(); i++ {
		now = now.Add(interval)
		l.Step(now)
	}
	return now
}
