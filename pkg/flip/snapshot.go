package flip

import "github.com/matzehuels/flipkit/pkg/geom"

// Snapshot is the state of one tracked element at one instant.
type Snapshot struct {
	Rect        geom.Rect
	Opacity     float64
	ComponentID string

	// Exit is set only for elements with an OnExit callback captured before
	// an update: they are about to be detached and must be re-anchored to
	// animate out in place.
	Exit *ExitData
}

// ExitData records where an exiting element lived.
type ExitData struct {
	Element Element
	Parent  Container

	// Position is the element's rectangle relative to Parent.
	Position geom.Rect
}

// Snapshots maps flip ids to snapshots and remembers capture order.
// The zero value is an empty set.
type Snapshots struct {
	order []FlipID
	byID  map[FlipID]Snapshot
}

// Get returns the snapshot for id.
func (s Snapshots) Get(id FlipID) (Snapshot, bool) {
	snap, ok := s.byID[id]
	return snap, ok
}

// Has reports whether id was captured.
func (s Snapshots) Has(id FlipID) bool {
	_, ok := s.byID[id]
	return ok
}

// IDs returns the captured ids in document order.
func (s Snapshots) IDs() []FlipID {
	return append([]FlipID(nil), s.order...)
}

// Len returns the number of captured ids.
func (s Snapshots) Len() int { return len(s.order) }

// Set records snap for id. A repeated id keeps its first position.
func (s *Snapshots) Set(id FlipID, snap Snapshot) {
	if s.byID == nil {
		s.byID = make(map[FlipID]Snapshot)
	}
	if _, ok := s.byID[id]; !ok {
		s.order = append(s.order, id)
	}
	s.byID[id] = snap
}

// Capture records the geometry, opacity and component id of every tracked
// element under root. It has no side effects.
func Capture(root Root) Snapshots {
	return capture(root, nil)
}

// capture records snapshots; when exits is non-nil, elements with an OnExit
// callback also get ExitData relative to their parent.
func capture(root Root, exits Callbacks) Snapshots {
	tracked := root.Tracked()

	// parent rects are measured once per parent
	parentRects := make(map[Container]geom.Rect)
	exitParent := func(el Element) (Container, geom.Rect, bool) {
		if exits == nil || exits[el.FlipID()].OnExit == nil {
			return nil, geom.Rect{}, false
		}
		parent := el.Parent()
		if parent == nil {
			return nil, geom.Rect{}, false
		}
		r, ok := parentRects[parent]
		if !ok {
			r = parent.BoundingRect()
			parentRects[parent] = r
		}
		return parent, r, true
	}

	var out Snapshots
	for _, el := range tracked {
		rect := el.BoundingRect()
		snap := Snapshot{
			Rect:        rect,
			Opacity:     el.Opacity(),
			ComponentID: el.Config().ComponentID,
		}
		if parent, parentRect, ok := exitParent(el); ok {
			snap.Exit = &ExitData{
				Element:  el,
				Parent:   parent,
				Position: rect.RelativeTo(parentRect),
			}
		}
		out.Set(el.FlipID(), snap)
	}
	return out
}
