// Package surface is an in-memory rendering surface for the flip engine.
//
// A [Document] holds a tree of [Node] values laid out in viewport
// coordinates. Nodes implement [flip.Element] and [flip.Container], the
// document implements [flip.Root], so the engine can measure, style and
// re-insert nodes exactly as it would on a browser DOM:
//
//   - bounding rects include inline transforms, transform origins and every
//     ancestor transform
//   - children of a [Row] or [Column] node are stacked in order, children of
//     an [Absolute] node sit at their own offsets
//   - anchored nodes (re-inserted exiting elements) are taken out of the
//     stacking flow
//
// Hosts change the layout with [Document.Update], which reconciles a new
// tree against the current one by flip id so that node identity, and with
// it any running animation, survives the update.
//
// [Document.Paint] flattens the tree into screen-space quads for the
// renderers in pkg/render.
package surface
