package anim

import "time"

// Tween interpolates linearly in normalized time shaped by Easing.
type Tween struct {
	Duration  time.Duration
	Delay     time.Duration
	Easing    EasingFunc // nil means Linear
	Scheduler Scheduler
}

// Drive implements Driver. The final sample is exactly to, delivered on the
// first frame at or after Delay+Duration.
func (tw Tween) Drive(from, to Values, update UpdateFunc, done func()) StopFunc {
	ease := tw.Easing
	if ease == nil {
		ease = Linear
	}
	r := &run{sched: tw.Scheduler}

	var start time.Time
	started := false
	var tick FrameFunc
	tick = func(now time.Time) {
		if r.stopped {
			return
		}
		if !started {
			started = true
			start = now
		}
		elapsed := now.Sub(start) - tw.Delay
		if elapsed < 0 {
			r.next(tick)
			return
		}
		t := 1.0
		if tw.Duration > 0 {
			t = float64(elapsed) / float64(tw.Duration)
		}
		if t >= 1 {
			r.finish(update, to, done)
			return
		}
		if !r.emit(update, Lerp(from, to, ease(t))) {
			return
		}
		r.next(tick)
	}

	r.next(tick)
	return r.stop
}
