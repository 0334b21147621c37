package flip

import (
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
)

// FlipID identifies a tracked element across two render passes.
type FlipID string

// Element is a node of the host's rendering surface as seen by the engine.
type Element interface {
	// FlipID returns the element's tracking id, or "" if it is not tracked.
	FlipID() FlipID

	// InverseFlipID returns the id of the ancestor whose transform this
	// element compensates, or "".
	InverseFlipID() FlipID

	// Config returns the element's declared participation flags.
	Config() Config

	// BoundingRect returns the rendered rectangle in viewport coordinates,
	// including any transform currently applied to the element or its
	// ancestors.
	BoundingRect() geom.Rect

	// Opacity returns the computed opacity.
	Opacity() float64

	// Transform returns the computed transform: the inline override if one
	// is set, otherwise the element's base transform.
	Transform() matrix.Affine

	SetTransform(m matrix.Affine)
	SetOpacity(o float64)
	SetTransformOrigin(origin string)

	// ClearStyle drops inline transform and opacity overrides.
	ClearStyle()

	// Anchor positions the element absolutely inside its parent at rect,
	// given relative to the parent's top-left corner.
	Anchor(rect geom.Rect)

	// Parent returns the containing node, or nil when detached.
	Parent() Container

	// InvertedChildren returns the descendants declaring id as their
	// inverse parent, in document order.
	InvertedChildren(id FlipID) []Element
}

// Container is a node that can hold re-inserted exiting elements.
type Container interface {
	BoundingRect() geom.Rect

	// EnsurePositioned makes the container a positioning context for
	// absolutely anchored children.
	EnsurePositioned()

	AppendChild(el Element) error
	RemoveChild(el Element) error
}

// Root is the render-root handle passed through every call that needs
// document-containment checks.
type Root interface {
	// Tracked returns every descendant carrying a flip id, in document order.
	Tracked() []Element

	// Inverted returns every descendant declaring an inverse flip id.
	Inverted() []Element

	// Find returns the tracked element with id, or nil.
	Find(id FlipID) Element

	// Contains reports whether el is attached below this root.
	Contains(el Element) bool

	// Viewport returns the visible area in viewport coordinates.
	Viewport() geom.Rect
}
