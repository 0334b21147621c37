package surface

import (
	"strconv"

	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
)

var (
	_ flip.Root      = (*Document)(nil)
	_ flip.Element   = (*Node)(nil)
	_ flip.Container = (*Node)(nil)
)

// Document is the root of a node tree and the visible viewport.
type Document struct {
	viewport geom.Rect
	root     *Node
	dirty    bool
}

// NewDocument creates a document whose root box covers viewport and holds
// children.
func NewDocument(viewport geom.Rect, layout Layout, children ...*Node) *Document {
	d := &Document{viewport: viewport, dirty: true}
	d.root = &Node{doc: d, positioned: true}
	d.root.assign(Props{Rect: viewport, Layout: layout})
	d.root.Append(children...)
	return d
}

// Root returns the root node.
func (d *Document) Root() *Node { return d.root }

func (d *Document) layout() {
	if !d.dirty {
		return
	}
	d.dirty = false
	d.root.local = d.viewport
	d.root.arrange()
}

// Update replaces the root's children with next. Nodes in next are matched
// against the current tree by flip id, or by position for untracked nodes;
// matched nodes keep their identity and inline styles and take next's
// properties. Unmatched current nodes are detached.
func (d *Document) Update(layout Layout, next ...*Node) {
	current := make(map[string]*Node)
	for i, c := range d.root.children {
		index(c, "", i, current)
	}

	d.root.props.Layout = layout
	for _, c := range d.root.children {
		c.parent = nil
	}
	d.root.children = nil
	d.root.Append(d.reconcile(next, "", current)...)
	d.dirty = true
}

func key(n *Node, parent string, i int) string {
	if n.props.ID != "" {
		return "#" + string(n.props.ID)
	}
	return parent + "/" + strconv.Itoa(i)
}

func index(n *Node, parent string, i int, out map[string]*Node) {
	k := key(n, parent, i)
	out[k] = n
	for j, c := range n.children {
		index(c, k, j, out)
	}
}

func (d *Document) reconcile(next []*Node, parent string, current map[string]*Node) []*Node {
	out := make([]*Node, 0, len(next))
	for i, n := range next {
		k := key(n, parent, i)
		kids := n.children
		n.children = nil
		for _, c := range kids {
			c.parent = nil
		}
		if prev, ok := current[k]; ok {
			delete(current, k)
			prev.assign(n.props)
			for _, c := range prev.children {
				c.parent = nil
			}
			prev.children = nil
			n = prev
		}
		n.parent = nil
		n.Append(d.reconcile(kids, k, current)...)
		out = append(out, n)
	}
	return out
}

// =============================================================================
// flip.Root
// =============================================================================

// Tracked returns nodes with a flip id in document order.
func (d *Document) Tracked() []flip.Element {
	var out []flip.Element
	d.Walk(func(n *Node) {
		if n.props.ID != "" {
			out = append(out, n)
		}
	})
	return out
}

// Inverted returns nodes with an inverse flip id in document order.
func (d *Document) Inverted() []flip.Element {
	var out []flip.Element
	d.Walk(func(n *Node) {
		if n.props.Inverse != "" {
			out = append(out, n)
		}
	})
	return out
}

// Find returns the first attached node with id, or nil.
func (d *Document) Find(id flip.FlipID) flip.Element {
	if n := d.Node(id); n != nil {
		return n
	}
	return nil
}

// Node is Find with a concrete result.
func (d *Document) Node(id flip.FlipID) *Node {
	var found *Node
	d.Walk(func(n *Node) {
		if found == nil && n.props.ID == id {
			found = n
		}
	})
	return found
}

// Contains reports whether el is attached below the root.
func (d *Document) Contains(el flip.Element) bool {
	n, ok := el.(*Node)
	if !ok || n == nil {
		return false
	}
	for p := n; p != nil; p = p.parent {
		if p == d.root {
			return true
		}
	}
	return false
}

func (d *Document) Viewport() geom.Rect { return d.viewport }

// Walk visits every node below the root in document order.
func (d *Document) Walk(fn func(*Node)) {
	for _, c := range d.root.children {
		c.walk(fn)
	}
}

// =============================================================================
// painting
// =============================================================================

// Quad is a node flattened into viewport coordinates.
type Quad struct {
	Node    *Node
	Depth   int
	Matrix  matrix.Affine // box to viewport
	Width   float64
	Height  float64
	Opacity float64 // including ancestors
	Bounds  geom.Rect
}

// Corners returns the transformed corners of the box, clockwise from the
// top-left.
func (q Quad) Corners() [4]geom.Point {
	var pts [4]geom.Point
	for i, c := range (geom.Rect{Width: q.Width, Height: q.Height}).Corners() {
		pts[i].X, pts[i].Y = q.Matrix.Apply(c.X, c.Y)
	}
	return pts
}

// Paint returns every node as a quad in painting order: parents before
// children, siblings in document order.
func (d *Document) Paint() []Quad {
	d.layout()
	var out []Quad
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		q := Quad{
			Node:    n,
			Depth:   depth,
			Matrix:  n.screen(),
			Width:   n.local.Width,
			Height:  n.local.Height,
			Opacity: n.effectiveOpacity(),
		}
		pts := q.Corners()
		q.Bounds = geom.Bounds(pts[:]...)
		out = append(out, q)
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for _, c := range d.root.children {
		visit(c, 0)
	}
	return out
}
