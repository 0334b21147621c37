package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/render"
	"github.com/matzehuels/flipkit/pkg/surface"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes geometry and style in node labels.
	// When false, only the flip id or label is shown.
	Detailed bool
}

// ToDOT converts the node tree of doc to Graphviz DOT.
func ToDOT(doc *surface.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make(map[*surface.Node]string)
	var edges, inverse []string
	i := 0
	var visit func(n *surface.Node, parent string)
	visit = func(n *surface.Node, parent string) {
		id := "n" + strconv.Itoa(i)
		ids[n] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n, i, opts.Detailed), ", "))
		i++
		if parent != "" {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", parent, id))
		}
		for _, c := range n.Children() {
			visit(c, id)
		}
	}
	for _, n := range doc.Root().Children() {
		visit(n, "")
	}

	doc.Walk(func(n *surface.Node) {
		inv := n.InverseFlipID()
		if inv == "" {
			return
		}
		if anc := doc.Node(inv); anc != nil {
			inverse = append(inverse, fmt.Sprintf("  %s -> %s [style=dashed, color=grey40, constraint=false];\n", ids[anc], ids[n]))
		}
	})

	if len(edges)+len(inverse) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		buf.WriteString(e)
	}
	for _, e := range inverse {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *surface.Node, detailed bool) string {
	name := string(n.FlipID())
	if name == "" {
		name = n.Label()
	}
	if name == "" {
		name = "·"
	}
	if !detailed {
		return name
	}

	r := n.BoundingRect()
	parts := []string{
		fmt.Sprintf("rect: %.4g,%.4g %.4gx%.4g", r.Left, r.Top, r.Width, r.Height),
	}
	if m := n.Transform(); !m.IsIdentity() {
		parts = append(parts, m.String(), "origin: "+n.TransformOrigin())
	}
	if o := n.Opacity(); o != 1 {
		parts = append(parts, fmt.Sprintf("opacity: %.3g", o))
	}
	if cid := n.Config().ComponentID; cid != "" {
		parts = append(parts, "component: "+cid)
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *surface.Node, index int, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch {
	case n.Anchored():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.FlipID() != "":
		fill := render.Fill(n.Props().Color, index)
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill.Hex()), "fontcolor=white")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
