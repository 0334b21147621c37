package scene

import (
	"time"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
	"github.com/matzehuels/flipkit/pkg/surface"
)

var layouts = map[string]surface.Layout{
	"":         surface.Absolute,
	"absolute": surface.Absolute,
	"column":   surface.Column,
	"row":      surface.Row,
}

func parseLayout(name string) (surface.Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidScene, "unknown layout %q", name)
	}
	return l, nil
}

// ViewportRect returns the viewport as a rectangle at the origin.
func (s *Scene) ViewportRect() geom.Rect {
	return geom.Rect{Width: s.Viewport.Width, Height: s.Viewport.Height}
}

// Document builds frame i as a new document.
func (s *Scene) Document(i int) (*surface.Document, error) {
	layout, nodes, err := s.build(i)
	if err != nil {
		return nil, err
	}
	return surface.NewDocument(s.ViewportRect(), layout, nodes...), nil
}

// Apply replaces the layout of doc with frame i, keeping node identity.
func (s *Scene) Apply(doc *surface.Document, i int) error {
	layout, nodes, err := s.build(i)
	if err != nil {
		return err
	}
	doc.Update(layout, nodes...)
	return nil
}

func (s *Scene) build(i int) (surface.Layout, []*surface.Node, error) {
	if i < 0 || i >= len(s.Frames) {
		return 0, nil, errors.New(errors.ErrCodeNotFound, "frame %d out of range [0, %d)", i, len(s.Frames))
	}
	f := s.Frames[i]
	layout, err := parseLayout(f.Layout)
	if err != nil {
		return 0, nil, err
	}
	nodes := make([]*surface.Node, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		built, err := n.build()
		if err != nil {
			return 0, nil, err
		}
		nodes = append(nodes, built)
	}
	return layout, nodes, nil
}

func (n Node) build() (*surface.Node, error) {
	layout, err := parseLayout(n.Layout)
	if err != nil {
		return nil, err
	}
	transform, err := matrix.Parse(n.Transform)
	if err != nil {
		return nil, err
	}
	cfg, err := n.Config()
	if err != nil {
		return nil, err
	}

	children := make([]*surface.Node, 0, len(n.Children))
	for _, c := range n.Children {
		built, err := c.build()
		if err != nil {
			return nil, err
		}
		children = append(children, built)
	}

	return surface.NewNode(surface.Props{
		ID:        flip.FlipID(n.ID),
		Inverse:   flip.FlipID(n.Inverse),
		Config:    cfg,
		Rect:      geom.Rect{Top: n.Y, Left: n.X, Width: n.W, Height: n.H},
		Layout:    layout,
		Gap:       n.Gap,
		Transform: transform,
		Opacity:   n.Opacity,
		Label:     n.Label,
		Color:     n.Color,
	}, children...), nil
}

// Config returns the flip configuration of the node.
func (n Node) Config() (flip.Config, error) {
	cfg := flip.Config{
		Translate:         boolOr(n.Translate, true),
		Scale:             boolOr(n.Scale, true),
		Opacity:           boolOr(n.AnimateOpacity, true),
		Ease:              n.Ease,
		Duration:          millis(n.Duration),
		Delay:             millis(n.Delay),
		TransformOrigin:   n.Origin,
		ComponentID:       n.Component,
		ComponentIDFilter: flip.ComponentFilter(n.ComponentFilter),
	}
	if n.Spring != nil {
		p, err := n.Spring.Params()
		if err != nil {
			return flip.Config{}, err
		}
		cfg.Spring = &p
	}
	return cfg, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Callbacks returns the fade callbacks declared by appear and exit across
// all frames. Fades last the container duration and are registered in reg,
// so a capture cancels them.
func (s *Scene) Callbacks(sched anim.Scheduler, reg *flip.Registry, root flip.Root) flip.Callbacks {
	opts, err := s.FlipOptions()
	if err != nil {
		opts = flip.DefaultOptions()
	}
	fade := flip.Fade{
		Scheduler: sched,
		Registry:  reg,
		Root:      root,
		Duration:  opts.Duration,
		Stagger:   millis(s.Options.Stagger),
	}

	cb := flip.Callbacks{}
	var visit func(n Node)
	visit = func(n Node) {
		if n.ID != "" {
			c := cb[flip.FlipID(n.ID)]
			if n.Appear == FadeEffect {
				c.OnAppear = fade.In()
			}
			if n.Exit == FadeEffect {
				c.OnExit = fade.Out()
			}
			if c.OnAppear != nil || c.OnExit != nil {
				cb[flip.FlipID(n.ID)] = c
			}
		}
		for _, child := range n.Children {
			visit(child)
		}
	}
	for _, f := range s.Frames {
		for _, n := range f.Nodes {
			visit(n)
		}
	}
	return cb
}

// TotalNodes counts the nodes of frame i, including nested ones.
func (s *Scene) TotalNodes(i int) int {
	if i < 0 || i >= len(s.Frames) {
		return 0
	}
	var count func([]Node) int
	count = func(ns []Node) int {
		total := len(ns)
		for _, n := range ns {
			total += count(n.Children)
		}
		return total
	}
	return count(s.Frames[i].Nodes)
}

// FrameDuration is the time a player should leave between frames so that
// tweens finish: the longest configured delay plus duration, at least the
// container duration.
func (s *Scene) FrameDuration() time.Duration {
	opts, err := s.FlipOptions()
	if err != nil {
		opts = flip.DefaultOptions()
	}
	longest := opts.Duration
	var visit func(n Node)
	visit = func(n Node) {
		if d := millis(n.Delay + n.Duration); d > longest {
			longest = d
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, f := range s.Frames {
		for _, n := range f.Nodes {
			visit(n)
		}
	}
	return longest
}
