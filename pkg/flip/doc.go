// Package flip orchestrates FLIP (First, Last, Invert, Play) layout
// transitions.
//
// The host renders its element tree twice: once in the old layout and once
// in the new one. Before it mutates the tree it calls
// [Engine.CaptureBeforeUpdate] to record where every tracked element was
// ("first"). After the new layout has settled it calls
// [Engine.RunTransition], which measures the new positions ("last"),
// computes the transform that makes each element look like it did before
// ("invert") and hands that transform to an interpolation driver that
// relaxes it back to the identity ("play").
//
// # Tracked elements
//
// Elements take part when they carry a [FlipID]. Ids are matched across the
// two passes:
//
//   - present in both snapshots: flipped (animated from old to new geometry)
//   - present only after the update with an OnAppear callback: appearing
//   - present only before the update with an OnExit callback: exiting; the
//     element is re-inserted, anchored at its old position, until its exit
//     animation removes it
//
// Ids without a relevant callback are ignored.
//
// # Inverse children
//
// An element that declares an inverse parent id receives the reciprocal of
// that ancestor's transform on every frame, so it keeps its size and
// position while the ancestor stretches.
//
// # Failure model
//
// Nothing in this package returns an error or panics across its API:
// detached elements and removal races short-circuit silently. Duplicate ids
// within one root are a contract violation and produce unspecified results.
//
// # Host surface
//
// The engine only talks to the tree through [Root], [Element] and
// [Container]; package surface provides an in-memory implementation.
package flip
