// Package pkg holds the flipkit libraries.
//
// # Overview
//
// Flipkit animates layout changes with the FLIP technique (First, Last,
// Invert, Play). Before an update the engine measures every tracked
// element; after the update it measures again, applies the inverse of the
// difference as a transform and animates that transform back to identity.
//
// The packages fall into three groups:
//
//  1. [flip] - the engine: snapshots, diffing, deltas, the animation
//     registry and appear/exit handling
//  2. [anim], [matrix], [geom] - drivers (spring and tween), easing,
//     affine transforms and rectangles
//  3. [surface], [scene], [render] - a retained element tree the engine
//     runs against, scene files that describe frames of it, and renderers
//     for the terminal, PNG frames and Graphviz diagrams
//
// # Data Flow
//
//	scene file (TOML, YAML, JSON)
//	         ↓
//	    [scene] package (frames of nodes)
//	         ↓
//	    [surface] package (document, layout, screen rects)
//	         ↓
//	    [flip] package (capture → update → transition)
//	         ↓
//	    [anim] package (drivers stepping on a scheduler)
//	         ↓
//	    [render] packages (terminal, PNG, DOT/SVG)
//
// # Quick Start
//
//	s, _ := scene.Load("cards.toml")
//	doc, _ := s.Document(0)
//	opts, _ := s.FlipOptions()
//
//	loop := anim.NewLoop()
//	f := flip.NewFlipper(flip.New(loop), doc, opts)
//
//	f.Capture()
//	_ = s.Apply(doc, 1)
//	f.Flip()
//	loop.Drain(time.Now(), time.Second/60, 600)
//
// Hooks for metrics live in [observability]; errors carry codes from
// [errors].
package pkg
