// Package tree renders the node tree of a surface document as a Graphviz
// diagram.
//
// # Overview
//
// The diagram shows one box per node and an arrow from each parent to its
// children. Inverse relations are drawn as dashed arrows from the animated
// ancestor to the compensating child. Nodes re-inserted for an exit
// animation are greyed out.
//
// # Usage
//
//	dot := tree.ToDOT(doc, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(dot)
//
// With Detailed set, labels include the layout rect, the current transform
// and opacity, which makes the diagram useful for inspecting a transition
// frozen in debug mode.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG go through [render.ToPDF] and [render.ToPNG].
//
// [render.ToPDF]: github.com/matzehuels/flipkit/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/flipkit/pkg/render.ToPNG
package tree
