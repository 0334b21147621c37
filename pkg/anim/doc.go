// Package anim provides the interpolation drivers that move an element from
// a "from" state to a "to" state one frame at a time.
//
// # Scheduling
//
// Drivers never sleep and never start goroutines. They ask a [Scheduler] for
// the next frame callback and do a bounded amount of work in it. [Loop] is
// the scheduler used everywhere in flipkit: the host calls [Loop.Step] once
// per display refresh (a bubbletea tick in the terminal demo, a synthetic
// clock in headless playback and tests).
//
// # Drivers
//
// Two interchangeable drivers implement [Driver]:
//
//   - [Spring]: a damped harmonic oscillator per animated scalar, integrated
//     with github.com/charmbracelet/harmonica at a fixed step.
//   - [Tween]: normalized time from 0 to 1 over a fixed duration, shaped by
//     an [EasingFunc].
//
// Both deliver [Values] through an [UpdateFunc] and call done exactly once
// on natural settlement. A driver stopped through its [StopFunc] (or by its
// UpdateFunc returning false) never calls done.
package anim
