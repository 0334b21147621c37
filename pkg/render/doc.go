// Package render turns surface documents into pictures.
//
// # Overview
//
// The renderers in the subpackages all consume the painted quads of a
// [surface.Document], so they show exactly what the flip engine measures,
// transforms and opacities included:
//
//   - [term]: a character-cell raster styled with lipgloss, used by the
//     interactive demo and by "flipkit play" on a terminal
//   - [frames]: PNG images drawn with gg, one per animation frame
//   - [tree]: the node tree as a Graphviz diagram (DOT or SVG)
//
// This package holds what they share: the fill palette and SVG conversion
// through rsvg-convert.
//
//	dot := tree.ToDOT(doc, tree.Options{})
//	svg, err := tree.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [surface.Document]: github.com/matzehuels/flipkit/pkg/surface.Document
// [term]: github.com/matzehuels/flipkit/pkg/render/term
// [frames]: github.com/matzehuels/flipkit/pkg/render/frames
// [tree]: github.com/matzehuels/flipkit/pkg/render/tree
package render
