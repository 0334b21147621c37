package surface

import (
	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
)

// Layout selects how a node places its children.
type Layout int

const (
	// Absolute places each child at its own offset.
	Absolute Layout = iota
	// Column stacks children top to bottom.
	Column
	// Row stacks children left to right.
	Row
)

// Props are the declared properties of a node.
type Props struct {
	ID      flip.FlipID
	Inverse flip.FlipID
	Config  flip.Config

	// Rect is the offset and size inside the parent. Offsets are ignored
	// inside Row and Column parents; a zero cross-axis size stretches.
	Rect   geom.Rect
	Layout Layout
	Gap    float64

	// Transform is the base transform. The zero value means identity.
	Transform matrix.Affine
	// Opacity is the base opacity. Nil means 1.
	Opacity *float64

	Label string
	Color string
}

// Node is one box of a Document.
type Node struct {
	doc      *Document
	parent   *Node
	children []*Node

	props Props
	base  matrix.Affine
	alpha float64

	// inline overrides set by the engine
	transform  *matrix.Affine
	opacity    *float64
	origin     string
	positioned bool

	anchored bool
	anchor   geom.Rect

	// layout result, relative to the parent's box
	local geom.Rect
}

// NewNode creates a detached node with children.
func NewNode(p Props, children ...*Node) *Node {
	n := &Node{}
	n.assign(p)
	n.Append(children...)
	return n
}

func (n *Node) assign(p Props) {
	n.props = p
	n.base = p.Transform
	if n.base == (matrix.Affine{}) {
		n.base = matrix.Identity()
	}
	n.alpha = 1
	if p.Opacity != nil {
		n.alpha = *p.Opacity
	}
	n.anchored = false
}

// Append adds children at the end and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.detach()
		c.parent = n
		c.setDoc(n.doc)
		n.children = append(n.children, c)
	}
	n.invalidate()
	return n
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	p.invalidate()
}

func (n *Node) setDoc(d *Document) {
	n.doc = d
	for _, c := range n.children {
		c.setDoc(d)
	}
}

func (n *Node) invalidate() {
	if n.doc != nil {
		n.doc.dirty = true
	}
}

// Props returns the declared properties.
func (n *Node) Props() Props { return n.props }

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node { return n.children }

// Label returns the display label.
func (n *Node) Label() string { return n.props.Label }

// Anchored reports whether the node was re-inserted at a fixed position.
func (n *Node) Anchored() bool { return n.anchored }

// TransformOrigin returns the origin used for the node's transform.
func (n *Node) TransformOrigin() string {
	if n.origin == "" {
		return DefaultOrigin
	}
	return n.origin
}

// Positioned reports whether the node is a positioning context.
func (n *Node) Positioned() bool { return n.positioned }

// =============================================================================
// flip.Element
// =============================================================================

func (n *Node) FlipID() flip.FlipID        { return n.props.ID }
func (n *Node) InverseFlipID() flip.FlipID { return n.props.Inverse }
func (n *Node) Config() flip.Config        { return n.props.Config }

// BoundingRect returns the axis-aligned bounds of the rendered box.
func (n *Node) BoundingRect() geom.Rect {
	if n.doc != nil {
		n.doc.layout()
	}
	m := n.screen()
	var pts [4]geom.Point
	for i, c := range (geom.Rect{Width: n.local.Width, Height: n.local.Height}).Corners() {
		pts[i].X, pts[i].Y = m.Apply(c.X, c.Y)
	}
	return geom.Bounds(pts[:]...)
}

func (n *Node) Opacity() float64 {
	if n.opacity != nil {
		return *n.opacity
	}
	return n.alpha
}

func (n *Node) Transform() matrix.Affine {
	if n.transform != nil {
		return *n.transform
	}
	return n.base
}

func (n *Node) SetTransform(m matrix.Affine) { n.transform = &m }
func (n *Node) SetOpacity(o float64)         { n.opacity = &o }
func (n *Node) SetTransformOrigin(o string)  { n.origin = o }

func (n *Node) ClearStyle() {
	n.transform = nil
	n.opacity = nil
}

// Anchor takes n out of its parent's stacking flow and pins it at rect.
func (n *Node) Anchor(rect geom.Rect) {
	n.anchored = true
	n.anchor = rect
	n.invalidate()
}

func (n *Node) Parent() flip.Container {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// InvertedChildren returns descendants whose inverse id is id.
func (n *Node) InvertedChildren(id flip.FlipID) []flip.Element {
	var out []flip.Element
	for _, c := range n.children {
		c.walk(func(d *Node) {
			if d.props.Inverse == id {
				out = append(out, d)
			}
		})
	}
	return out
}

// =============================================================================
// flip.Container
// =============================================================================

func (n *Node) EnsurePositioned() { n.positioned = true }

// AppendChild re-parents el under n. el must be a *Node.
func (n *Node) AppendChild(el flip.Element) error {
	c, ok := el.(*Node)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "cannot append %T to a surface node", el)
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return errors.New(errors.ErrCodeInvalidInput, "cannot append node %q to its own subtree", c.props.ID)
		}
	}
	n.Append(c)
	return nil
}

// RemoveChild detaches el if it is a child of n.
func (n *Node) RemoveChild(el flip.Element) error {
	c, ok := el.(*Node)
	if !ok || c.parent != n {
		return errors.New(errors.ErrCodeNotFound, "node is not a child")
	}
	c.detach()
	return nil
}

// =============================================================================
// geometry
// =============================================================================

// localMatrix returns the matrix from n's box to its parent's box.
func (n *Node) localMatrix() matrix.Affine {
	ox, oy, err := ResolveOrigin(n.TransformOrigin(), n.local.Width, n.local.Height)
	if err != nil {
		ox, oy = n.local.Width/2, n.local.Height/2
	}
	return matrix.Compose(
		matrix.Translate(n.local.Left, n.local.Top),
		matrix.Translate(ox, oy),
		n.Transform(),
		matrix.Translate(-ox, -oy),
	)
}

// screen returns the matrix from n's box to viewport coordinates.
func (n *Node) screen() matrix.Affine {
	m := n.localMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.localMatrix().Multiply(m)
	}
	return m
}

// effectiveOpacity multiplies the opacity of n and its ancestors.
func (n *Node) effectiveOpacity() float64 {
	o := 1.0
	for p := n; p != nil; p = p.parent {
		o *= p.Opacity()
	}
	return o
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// arrange lays out the children of n inside n.local.
func (n *Node) arrange() {
	var cursor float64
	for _, c := range n.children {
		r := c.props.Rect
		switch {
		case c.anchored:
			r = c.anchor
		case n.props.Layout == Column:
			r.Left, r.Top = 0, cursor
			if r.Width == 0 {
				r.Width = n.local.Width
			}
			cursor += r.Height + n.props.Gap
		case n.props.Layout == Row:
			r.Left, r.Top = cursor, 0
			if r.Height == 0 {
				r.Height = n.local.Height
			}
			cursor += r.Width + n.props.Gap
		}
		c.local = r
		c.arrange()
	}
}
