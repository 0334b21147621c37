package anim

// UpdateFunc receives one interpolated sample. Returning false abandons the
// animation: the driver stops scheduling frames and never reports done.
type UpdateFunc func(v Values) bool

// StopFunc abandons a running animation. It is idempotent.
type StopFunc func()

// Driver moves values from one state to another over a sequence of frames.
type Driver interface {
	// Drive starts the animation and returns immediately. update is called
	// from scheduled frames only, never synchronously from Drive. done is
	// called once after the final sample if the animation settles; it may be
	// nil.
	Drive(from, to Values, update UpdateFunc, done func()) StopFunc
}

// run holds the bookkeeping shared by both drivers.
type run struct {
	sched   Scheduler
	cancel  CancelFunc
	stopped bool
}

func (r *run) next(fn FrameFunc) {
	if r.stopped {
		return
	}
	r.cancel = r.sched.Schedule(fn)
}

func (r *run) stop() {
	if r.stopped {
		return
	}
	r.stopped = true
	if r.cancel != nil {
		r.cancel()
	}
}

// emit delivers v and reports whether the animation is still alive.
func (r *run) emit(update UpdateFunc, v Values) bool {
	if update != nil && !update(v) {
		r.stop()
		return false
	}
	return !r.stopped
}

// finish delivers the exact target and reports completion.
func (r *run) finish(update UpdateFunc, to Values, done func()) {
	if !r.emit(update, to) {
		return
	}
	r.stop()
	if done != nil {
		done()
	}
}
