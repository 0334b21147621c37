// Package observability provides hooks for animation lifecycle events.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about transitions and the animations they
// start.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are invoked from the host's frame loop, so implementations must be
// cheap and must not block.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    stats := &observability.Stats{}
//	    observability.SetAnimationHooks(stats)
//	    // ... run transitions
//	    fmt.Println(stats.Snapshot())
//	}
//
// The engine calls hooks to emit events:
//
//	observability.Animation().OnAnimationStart(id, "spring")
package observability

import (
	"sync"
	"sync/atomic"
)

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from the flip engine.
type AnimationHooks interface {
	// OnTransition is called once per transition after classification.
	OnTransition(transitionID string, flipped, appearing, exiting int)

	// OnAnimationStart is called when a driver starts for a flip id.
	OnAnimationStart(flipID, driver string)

	// OnAnimationComplete is called when an animation settles naturally.
	OnAnimationComplete(flipID string, frames int)

	// OnAnimationAbandon is called when a running animation is stopped
	// before it settled.
	OnAnimationAbandon(flipID string)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnTransition(string, int, int, int) {}
func (NoopAnimationHooks) OnAnimationStart(string, string)    {}
func (NoopAnimationHooks) OnAnimationComplete(string, int)    {}
func (NoopAnimationHooks) OnAnimationAbandon(string)          {}

// =============================================================================
// Counting Implementation
// =============================================================================

// Stats counts animation events. The zero value is ready to use and safe for
// concurrent use.
type Stats struct {
	transitions atomic.Int64
	started     atomic.Int64
	completed   atomic.Int64
	abandoned   atomic.Int64
	frames      atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Transitions int64
	Started     int64
	Completed   int64
	Abandoned   int64
	Frames      int64
}

func (s *Stats) OnTransition(string, int, int, int) { s.transitions.Add(1) }
func (s *Stats) OnAnimationStart(string, string)    { s.started.Add(1) }
func (s *Stats) OnAnimationAbandon(string)          { s.abandoned.Add(1) }

func (s *Stats) OnAnimationComplete(_ string, frames int) {
	s.completed.Add(1)
	s.frames.Add(int64(frames))
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Transitions: s.transitions.Load(),
		Started:     s.started.Load(),
		Completed:   s.completed.Load(),
		Abandoned:   s.abandoned.Load(),
		Frames:      s.frames.Load(),
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	animationHooks AnimationHooks = NoopAnimationHooks{}
	hooksMu        sync.RWMutex
)

// SetAnimationHooks registers custom animation hooks.
// This should be called once at application startup before any transition runs.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	animationHooks = NoopAnimationHooks{}
}
