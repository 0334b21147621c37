package flip

import (
	"slices"

	"github.com/matzehuels/flipkit/pkg/observability"
)

// State is the lifecycle state of an id in a Registry.
type State int

const (
	// Idle: no animation known for the id.
	Idle State = iota
	// Running: a driver is live.
	Running
	// Settled: the last animation for the id completed naturally.
	Settled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Settled:
		return "settled"
	}
	return "idle"
}

// Registry owns the in-flight animations of one container, at most one per
// flip id. It is not safe for concurrent use; it is only touched from the
// host's frame loop.
type Registry struct {
	entries map[FlipID]*Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[FlipID]*Handle)}
}

// Handle is one animation registered for a flip id.
type Handle struct {
	id         FlipID
	reg        *Registry
	state      State
	stops      []func()
	onComplete func()
	frames     int
}

// Start registers a new running handle for id. Any live handle for id is
// stopped first, so its driver can no longer apply frames. The caller binds
// the driver's stop function with Bind once it has started the driver.
func (r *Registry) Start(id FlipID, onComplete func()) *Handle {
	if old := r.entries[id]; old != nil {
		old.Stop()
	}
	h := &Handle{id: id, reg: r, state: Running, onComplete: onComplete}
	r.entries[id] = h
	return h
}

// Get returns the current handle for id, or nil.
func (r *Registry) Get(id FlipID) *Handle {
	return r.entries[id]
}

// State returns the state of id.
func (r *Registry) State(id FlipID) State {
	if h := r.entries[id]; h != nil {
		return h.state
	}
	return Idle
}

// Stop abandons the animation for id, if any.
func (r *Registry) Stop(id FlipID) {
	if h := r.entries[id]; h != nil {
		h.Stop()
	}
}

// StopAll abandons every running animation and forgets settled ones.
func (r *Registry) StopAll() {
	for _, id := range r.IDs() {
		r.entries[id].Stop()
	}
	clear(r.entries)
}

// Len returns the number of running animations.
func (r *Registry) Len() int {
	n := 0
	for _, h := range r.entries {
		if h.state == Running {
			n++
		}
	}
	return n
}

// IDs returns the ids with a handle, sorted.
func (r *Registry) IDs() []FlipID {
	ids := make([]FlipID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ID returns the flip id the handle animates.
func (h *Handle) ID() FlipID { return h.id }

// State returns the handle's own state: Running until it settles or is
// stopped (Idle).
func (h *Handle) State() State { return h.state }

// Bind attaches a function that halts work owned by the animation, such as
// a driver. Bound functions run in reverse order when the handle stops. If
// the handle is no longer running, stop runs immediately.
func (h *Handle) Bind(stop func()) {
	if stop == nil {
		return
	}
	if h.state != Running {
		stop()
		return
	}
	h.stops = append(h.stops, stop)
}

// halt runs and forgets the bound functions.
func (h *Handle) halt() {
	stops := h.stops
	h.stops = nil
	for i := len(stops) - 1; i >= 0; i-- {
		stops[i]()
	}
}

// Stop abandons the animation: the driver is halted, the completion
// callback is dropped and the handle leaves the registry. Stop is
// idempotent.
func (h *Handle) Stop() {
	if h.state != Running {
		return
	}
	h.state = Idle
	h.onComplete = nil
	if h.reg.entries[h.id] == h {
		delete(h.reg.entries, h.id)
	}
	h.halt()
	observability.Animation().OnAnimationAbandon(string(h.id))
}

// frame counts one applied sample.
func (h *Handle) frame() { h.frames++ }

// complete marks natural settlement and runs the completion callback.
func (h *Handle) complete() {
	if h.state != Running {
		return
	}
	h.state = Settled
	observability.Animation().OnAnimationComplete(string(h.id), h.frames)
	if cb := h.onComplete; cb != nil {
		h.onComplete = nil
		cb()
	}
}
