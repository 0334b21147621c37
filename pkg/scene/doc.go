// Package scene loads declarative animation scenes.
//
// A scene is a viewport, container options and a list of frames. Each frame
// is a complete layout: a tree of boxes with optional flip ids and flip
// configuration. Playing a scene means building the first frame as a
// [surface.Document] and then, for every following frame, capturing,
// applying the frame with [Scene.Apply] and running the transition.
//
// # Formats
//
// Scenes are read from TOML, YAML or JSON. The format is taken from the
// file extension by [Load] and given explicitly to [Decode]:
//
//	name = "shuffle"
//	[viewport]
//	width = 320
//	height = 240
//
//	[options]
//	duration = 300          # milliseconds
//	easing = "easeOutCubic" # omit for spring physics
//
//	[[frames]]
//	layout = "column"
//	[[frames.nodes]]
//	id = "a"
//	h = 40
//	color = "#ff5f87"
//
// # Node Fields
//
// Geometry: x, y, w, h (x and y are ignored inside row and column parents),
// layout ("absolute", "row", "column"), gap, transform (CSS transform
// syntax) and opacity.
//
// Flip configuration: id, inverse, translate, scale, animate_opacity (all
// default to true), spring (preset name or stiffness/damping/mass), ease,
// duration, delay, origin, component, component_filter. appear and exit set
// to "fade" register fade callbacks.
//
// Presentation: label and color.
package scene
