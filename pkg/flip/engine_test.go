package flip_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
	"github.com/matzehuels/flipkit/pkg/observability"
	"github.com/matzehuels/flipkit/pkg/surface"
)

const frame = time.Second / 60

var viewport = geom.Rect{Width: 200, Height: 400}

func linear() flip.Options {
	return flip.Options{Easing: "linear", Duration: 100 * time.Millisecond, ApplyTransformOrigin: true}
}

func item(id flip.FlipID, r geom.Rect, children ...*surface.Node) *surface.Node {
	return surface.NewNode(surface.Props{ID: id, Config: flip.DefaultConfig(), Rect: r}, children...)
}

func itemWith(id flip.FlipID, r geom.Rect, cfg flip.Config) *surface.Node {
	return surface.NewNode(surface.Props{ID: id, Config: cfg, Rect: r})
}

type fixture struct {
	loop   *anim.Loop
	engine *flip.Engine
	doc    *surface.Document
	reg    *flip.Registry
	now    time.Time
}

func newFixture(layout surface.Layout, nodes ...*surface.Node) *fixture {
	loop := anim.NewLoop()
	return &fixture{
		loop:   loop,
		engine: flip.New(loop),
		doc:    surface.NewDocument(viewport, layout, nodes...),
		reg:    flip.NewRegistry(),
		now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) transition(cb flip.Callbacks, opts flip.Options, update func()) flip.Report {
	prev := f.engine.CaptureBeforeUpdate(f.doc, cb, f.reg)
	update()
	return f.engine.RunTransition(f.doc, prev, f.reg, cb, opts)
}

func (f *fixture) step(n int) {
	for i := 0; i < n; i++ {
		f.now = f.now.Add(frame)
		f.loop.Step(f.now)
	}
}

func (f *fixture) drain() {
	f.now = f.loop.Drain(f.now, frame, 2000)
}

// recordHooks records the driver picked per flip id.
type recordHooks struct {
	observability.Stats
	drivers map[string]string
}

func (r *recordHooks) OnAnimationStart(id, driver string) {
	r.Stats.OnAnimationStart(id, driver)
	r.drivers[id] = driver
}

func useHooks(t *testing.T) *recordHooks {
	t.Helper()
	h := &recordHooks{drivers: map[string]string{}}
	observability.SetAnimationHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func assertRect(t *testing.T, want, got geom.Rect) {
	t.Helper()
	assert.InDelta(t, want.Top, got.Top, 1e-6, "top")
	assert.InDelta(t, want.Left, got.Left, 1e-6, "left")
	assert.InDelta(t, want.Width, got.Width, 1e-6, "width")
	assert.InDelta(t, want.Height, got.Height, 1e-6, "height")
}

func TestTransitionNoChange(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}), item("b", geom.Rect{Height: 50}))

	rep := f.transition(nil, linear(), func() {})

	assert.Equal(t, 2, rep.Flipped)
	assert.Equal(t, 2, rep.Skipped)
	assert.Zero(t, rep.Started)
	assert.True(t, f.loop.Idle())
	assert.Zero(t, f.reg.Len())
	assert.NotEmpty(t, rep.ID)
}

func TestTransitionStartsAtPreviousRect(t *testing.T) {
	f := newFixture(surface.Absolute, item("a", geom.Rect{Width: 100, Height: 100}))
	completed := 0
	cb := flip.Callbacks{"a": {OnComplete: func(flip.Element, string) { completed++ }}}

	rep := f.transition(cb, linear(), func() {
		f.doc.Update(surface.Absolute, item("a", geom.Rect{Top: 50, Width: 50, Height: 50}))
	})
	require.Equal(t, 1, rep.Started)

	a := f.doc.Node("a")
	c := a.Transform().Decompose()
	assert.InDelta(t, 2, c.ScaleX, 1e-9)
	assert.InDelta(t, 2, c.ScaleY, 1e-9)
	assert.InDelta(t, 0, c.TranslateX, 1e-9)
	assert.InDelta(t, -50, c.TranslateY, 1e-9)
	assertRect(t, geom.Rect{Width: 100, Height: 100}, a.BoundingRect())
	assert.Equal(t, flip.Running, f.reg.State("a"))

	// first frame pins the start time, three more reach the midpoint
	f.step(4)
	assert.InDelta(t, 1.5, a.Transform().Decompose().ScaleX, 1e-3)
	assert.Zero(t, completed)

	f.drain()
	assert.True(t, a.Transform().ApproxEqual(matrix.Identity(), 1e-9))
	assertRect(t, geom.Rect{Top: 50, Width: 50, Height: 50}, a.BoundingRect())
	assert.Equal(t, 1, completed)
	assert.Equal(t, flip.Settled, f.reg.State("a"))
}

func TestTransitionCallbacksOrder(t *testing.T) {
	f := newFixture(surface.Absolute, item("a", geom.Rect{Width: 100, Height: 100}))
	var events []string
	cb := flip.Callbacks{"a": {
		OnStart:    func(_ flip.Element, prev string) { events = append(events, "start") },
		OnComplete: func(_ flip.Element, prev string) { events = append(events, "complete") },
	}}

	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Absolute, item("a", geom.Rect{Left: 10, Width: 100, Height: 100}))
	})
	assert.Equal(t, []string{"start"}, events)

	f.drain()
	assert.Equal(t, []string{"start", "complete"}, events)
}

func TestTransitionSkipsOutsideViewport(t *testing.T) {
	f := newFixture(surface.Absolute, item("a", geom.Rect{Top: 500, Width: 10, Height: 10}))

	rep := f.transition(nil, linear(), func() {
		f.doc.Update(surface.Absolute, item("a", geom.Rect{Top: 600, Width: 10, Height: 10}))
	})

	assert.Equal(t, 1, rep.Skipped)
	assert.Zero(t, rep.Started)
	assert.True(t, f.doc.Node("a").Transform().IsIdentity())
	assert.True(t, f.loop.Idle())
}

func TestTransitionHonoursConfigFlags(t *testing.T) {
	cfg := flip.Config{Scale: true}
	f := newFixture(surface.Absolute, itemWith("a", geom.Rect{Width: 100, Height: 100}, cfg))

	f.transition(nil, linear(), func() {
		f.doc.Update(surface.Absolute, itemWith("a", geom.Rect{Top: 50, Left: 20, Width: 50, Height: 50}, cfg))
	})

	c := f.doc.Node("a").Transform().Decompose()
	assert.InDelta(t, 2, c.ScaleX, 1e-9)
	assert.Zero(t, c.TranslateX)
	assert.Zero(t, c.TranslateY)
}

func TestTransitionComponentFilter(t *testing.T) {
	for _, tt := range []struct {
		name    string
		filter  flip.ComponentFilter
		started int
	}{
		{"listed", flip.ComponentFilter{"list"}, 1},
		{"not listed", flip.ComponentFilter{"grid"}, 0},
		{"empty", nil, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := flip.DefaultConfig()
			cfg.ComponentID = "list"
			cfg.ComponentIDFilter = tt.filter
			f := newFixture(surface.Absolute, itemWith("a", geom.Rect{Width: 10, Height: 10}, cfg))

			rep := f.transition(nil, linear(), func() {
				f.doc.Update(surface.Absolute, itemWith("a", geom.Rect{Left: 50, Width: 10, Height: 10}, cfg))
			})
			assert.Equal(t, tt.started, rep.Started)
		})
	}
}

func TestTransitionReplacesRunningAnimation(t *testing.T) {
	hooks := useHooks(t)
	f := newFixture(surface.Absolute, item("a", geom.Rect{Width: 10, Height: 10}))
	var completed []int
	round := 0
	cb := flip.Callbacks{"a": {OnComplete: func(flip.Element, string) { completed = append(completed, round) }}}

	round = 1
	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Absolute, item("a", geom.Rect{Left: 100, Width: 10, Height: 10}))
	})
	f.step(3)
	mid := f.doc.Node("a").BoundingRect()
	require.Greater(t, mid.Left, 0.0)
	require.Less(t, mid.Left, 100.0)

	round = 2
	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Absolute, item("a", geom.Rect{Width: 10, Height: 10}))
	})
	assert.Equal(t, 1, f.reg.Len())
	// the second animation starts where the first was interrupted
	assertRect(t, mid, f.doc.Node("a").BoundingRect())

	f.drain()
	assert.Equal(t, []int{2}, completed)
	s := hooks.Snapshot()
	assert.Equal(t, int64(2), s.Started)
	assert.Equal(t, int64(1), s.Abandoned)
	assert.Equal(t, int64(1), s.Completed)
	assert.Equal(t, int64(2), s.Transitions)
}

func TestTransitionElementRemovedMidFlight(t *testing.T) {
	f := newFixture(surface.Absolute, item("a", geom.Rect{Width: 10, Height: 10}))
	completed := 0
	cb := flip.Callbacks{"a": {OnComplete: func(flip.Element, string) { completed++ }}}

	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Absolute, item("a", geom.Rect{Left: 100, Width: 10, Height: 10}))
	})
	f.step(2)
	f.doc.Update(surface.Absolute)
	f.drain()

	assert.Zero(t, completed)
	assert.Equal(t, flip.Idle, f.reg.State("a"))
	assert.True(t, f.loop.Idle())
}

func TestTransitionInverseChildren(t *testing.T) {
	child := func() *surface.Node {
		return surface.NewNode(surface.Props{Inverse: "p", Config: flip.DefaultConfig(), Rect: geom.Rect{Width: 20, Height: 20}})
	}
	f := newFixture(surface.Absolute, item("p", geom.Rect{Width: 100, Height: 100}, child()))

	f.transition(nil, linear(), func() {
		f.doc.Update(surface.Absolute, item("p", geom.Rect{Top: 50, Width: 50, Height: 50}, child()))
	})

	p := f.doc.Node("p")
	inverted := p.InvertedChildren("p")
	require.Len(t, inverted, 1)
	assert.True(t, p.Transform().Multiply(inverted[0].Transform()).ApproxEqual(matrix.Identity(), 1e-9))
	assertRect(t, geom.Rect{Top: 50, Width: 20, Height: 20}, inverted[0].BoundingRect())

	f.step(3)
	assertRect(t, geom.Rect{Top: 50, Width: 20, Height: 20}, inverted[0].BoundingRect())
}

func TestTransitionExitReanchors(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}), item("b", geom.Rect{Height: 50}))
	var remove func()
	index := -1
	cb := flip.Callbacks{"b": {OnExit: func(_ flip.Element, i int, r func()) { index, remove = i, r }}}
	b := f.doc.Node("b")

	rep := f.transition(cb, linear(), func() {
		f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}))
	})

	assert.Equal(t, 1, rep.Exited)
	assert.Equal(t, 0, index)
	require.NotNil(t, remove)
	assert.True(t, f.doc.Contains(b))
	assert.True(t, b.Anchored())
	assertRect(t, geom.Rect{Top: 50, Width: 200, Height: 50}, b.BoundingRect())
	assert.Equal(t, flip.Running, f.reg.State("b"))

	remove()
	assert.False(t, f.doc.Contains(b))
	assert.Equal(t, flip.Settled, f.reg.State("b"))
}

func TestExitInterruptedByNextCapture(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}), item("b", geom.Rect{Height: 50}))
	cb := flip.Callbacks{"b": {OnExit: func(flip.Element, int, func()) {}}}
	b := f.doc.Node("b")

	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}))
	})
	require.True(t, f.doc.Contains(b))

	f.engine.CaptureBeforeUpdate(f.doc, cb, f.reg)
	assert.False(t, f.doc.Contains(b))
}

func TestFadeHelpers(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}), item("b", geom.Rect{Height: 50}))
	fade := flip.Fade{Scheduler: f.loop, Registry: f.reg, Root: f.doc, Duration: 100 * time.Millisecond}
	cb := flip.Callbacks{
		"b": {OnExit: fade.Out()},
		"c": {OnAppear: fade.In()},
	}
	b := f.doc.Node("b")

	rep := f.transition(cb, linear(), func() {
		f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}), item("c", geom.Rect{Height: 50}))
	})
	c := f.doc.Node("c")

	assert.Equal(t, 1, rep.Appeared)
	assert.Equal(t, 1, rep.Exited)
	assert.Zero(t, c.Opacity())
	assert.Equal(t, "0 0", c.TransformOrigin())
	assert.True(t, f.doc.Contains(b))

	assert.Equal(t, flip.Running, f.reg.State("c"))

	f.drain()
	assert.Equal(t, 1.0, c.Opacity())
	assert.Zero(t, b.Opacity())
	assert.False(t, f.doc.Contains(b))
	assert.Equal(t, flip.Settled, f.reg.State("b"))
	assert.Equal(t, flip.Settled, f.reg.State("c"))
}

func TestFadeCancelledByCapture(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}))
	fade := flip.Fade{Scheduler: f.loop, Registry: f.reg, Root: f.doc, Duration: 500 * time.Millisecond}
	cb := flip.Callbacks{"c": {OnAppear: fade.In()}}

	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}), item("c", geom.Rect{Height: 50}))
	})
	c := f.doc.Node("c")
	f.step(10)
	require.Greater(t, c.Opacity(), 0.0)
	require.Less(t, c.Opacity(), 1.0)

	prev := f.engine.CaptureBeforeUpdate(f.doc, cb, f.reg)
	assert.Equal(t, flip.Idle, f.reg.State("c"))
	opts := linear()
	opts.Debug = true
	f.engine.RunTransition(f.doc, prev, f.reg, cb, opts)
	opacity := c.Opacity()

	f.step(5)
	assert.True(t, f.loop.Idle())
	assert.Zero(t, f.loop.Pending())
	assert.Equal(t, opacity, c.Opacity())
}

func TestFadeOutCancelledByCapture(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}), item("b", geom.Rect{Height: 50}))
	fade := flip.Fade{Scheduler: f.loop, Registry: f.reg, Root: f.doc, Duration: 500 * time.Millisecond}
	cb := flip.Callbacks{"b": {OnExit: fade.Out()}}
	b := f.doc.Node("b")

	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}))
	})
	f.step(10)
	require.True(t, f.doc.Contains(b))

	f.engine.CaptureBeforeUpdate(f.doc, cb, f.reg)
	assert.False(t, f.doc.Contains(b))
	opacity := b.Opacity()

	f.step(5)
	assert.True(t, f.loop.Idle())
	assert.Equal(t, opacity, b.Opacity())
}

func TestFadeStopsWhenDetached(t *testing.T) {
	f := newFixture(surface.Column, item("a", geom.Rect{Height: 50}))
	fade := flip.Fade{Scheduler: f.loop, Registry: f.reg, Root: f.doc, Duration: 500 * time.Millisecond}
	cb := flip.Callbacks{"c": {OnAppear: fade.In()}}

	f.transition(cb, linear(), func() {
		f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}), item("c", geom.Rect{Height: 50}))
	})
	c := f.doc.Node("c")
	f.step(2)
	f.doc.Update(surface.Column, item("a", geom.Rect{Height: 50}))
	require.False(t, f.doc.Contains(c))

	f.step(2)
	assert.True(t, f.loop.Idle())
	assert.Equal(t, flip.Idle, f.reg.State("c"))
}

func TestTransitionDebug(t *testing.T) {
	var buf bytes.Buffer
	loop := anim.NewLoop()
	engine := flip.New(loop, flip.WithLogger(log.New(&buf)))
	doc := surface.NewDocument(viewport, surface.Absolute, item("a", geom.Rect{Width: 100, Height: 100}))
	reg := flip.NewRegistry()

	prev := engine.CaptureBeforeUpdate(doc, nil, reg)
	doc.Update(surface.Absolute, item("a", geom.Rect{Top: 50, Width: 50, Height: 50}))
	opts := linear()
	opts.Debug = true
	rep := engine.RunTransition(doc, prev, reg, nil, opts)

	assert.True(t, rep.DebugOnly)
	assert.Equal(t, 1, rep.Animated)
	assert.Zero(t, rep.Started)
	assert.True(t, loop.Idle())
	assert.Zero(t, reg.Len())
	assert.InDelta(t, 2, doc.Node("a").Transform().Decompose().ScaleX, 1e-9)
	assert.Contains(t, buf.String(), "All FLIP animations will return at the beginning")
}

func TestDriverSelection(t *testing.T) {
	gentle, err := anim.SpringPreset("gentle")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cfg    func(*flip.Config)
		easing string
		want   string
	}{
		{"default spring", func(*flip.Config) {}, "", flip.DriverSpring},
		{"container easing", func(*flip.Config) {}, "easeInQuad", flip.DriverTween},
		{"element ease", func(c *flip.Config) { c.Ease = "linear" }, "", flip.DriverTween},
		{"element spring wins", func(c *flip.Config) { c.Spring = &gentle }, "linear", flip.DriverSpring},
		{"unknown easing falls back", func(c *flip.Config) { c.Ease = "bogus" }, "", flip.DriverTween},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hooks := useHooks(t)
			cfg := flip.DefaultConfig()
			tt.cfg(&cfg)
			f := newFixture(surface.Absolute, itemWith("a", geom.Rect{Width: 10, Height: 10}, cfg))

			f.transition(nil, flip.Options{Easing: tt.easing}, func() {
				f.doc.Update(surface.Absolute, itemWith("a", geom.Rect{Left: 40, Width: 10, Height: 10}, cfg))
			})
			assert.Equal(t, tt.want, hooks.drivers["a"])

			f.drain()
			assert.True(t, f.loop.Idle())
			assert.Equal(t, 40.0, f.doc.Node("a").BoundingRect().Left)
		})
	}
}

func TestElementDurationAndDelay(t *testing.T) {
	cfg := flip.DefaultConfig()
	cfg.Ease = "linear"
	cfg.Duration = 50 * time.Millisecond
	cfg.Delay = 50 * time.Millisecond
	f := newFixture(surface.Absolute, itemWith("a", geom.Rect{Width: 10, Height: 10}, cfg))

	f.transition(nil, flip.Options{Duration: time.Second}, func() {
		f.doc.Update(surface.Absolute, itemWith("a", geom.Rect{Left: 60, Width: 10, Height: 10}, cfg))
	})

	// still held at the start during the delay
	f.step(3)
	assert.InDelta(t, 0, f.doc.Node("a").BoundingRect().Left, 1e-9)

	// 100ms total is seven frames
	f.step(5)
	assert.True(t, f.loop.Idle())
	assert.Equal(t, 60.0, f.doc.Node("a").BoundingRect().Left)
}

func TestFlipper(t *testing.T) {
	loop := anim.NewLoop()
	doc := surface.NewDocument(viewport, surface.Column, item("a", geom.Rect{Height: 50}), item("b", geom.Rect{Height: 50}))
	exited := 0
	f := flip.NewFlipper(flip.New(loop), doc, linear()).
		On("a", flip.Callback{OnExit: func(_ flip.Element, _ int, remove func()) { exited++; remove() }})

	assert.Equal(t, flip.Report{}, f.Flip())

	f.Capture()
	doc.Update(surface.Column, item("b", geom.Rect{Height: 50}))
	rep := f.Flip()

	assert.Equal(t, 1, exited)
	assert.Equal(t, 1, rep.Started)
	assert.Equal(t, 1, f.Registry().Len())
	assert.Equal(t, 100*time.Millisecond, f.Options().Duration)

	loop.Drain(time.Now(), frame, 100)
	assert.Zero(t, f.Registry().Len())

	f.SetOptions(flip.Options{Debug: true})
	assert.True(t, f.Options().Debug)
	assert.NotZero(t, f.Options().Duration, "defaults applied")
}
