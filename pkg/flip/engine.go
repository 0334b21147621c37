package flip

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/observability"
)

// DebugMessage is logged when a transition runs in debug mode.
const DebugMessage = `The "debug" option is set. All FLIP animations will return at the beginning of the transition.`

// Driver names reported to hooks and logs.
const (
	DriverSpring = "spring"
	DriverTween  = "tween"
)

// Engine runs transitions on one scheduler.
type Engine struct {
	sched  anim.Scheduler
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine whose drivers run on sched.
func New(sched anim.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		sched:  sched,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report summarizes one call to RunTransition.
type Report struct {
	ID        string
	Flipped   int // ids present in both snapshots
	Animated  int // flipped ids that got a from-state
	Started   int // drivers started (0 in debug mode)
	Appeared  int
	Exited    int
	Skipped   int // flipped ids culled, unchanged, missing or filtered
	DebugOnly bool
}

// CaptureBeforeUpdate snapshots root before the host mutates it.
//
// Elements with an OnExit callback also record their position relative to
// their parent. After measuring, inline transform and opacity overrides are
// cleared on every tracked and inverse element and all animations in reg
// are stopped, so the next measurement sees the natural layout. Measuring
// first keeps the last rendered rect of interrupted elements.
func (e *Engine) CaptureBeforeUpdate(root Root, callbacks Callbacks, reg *Registry) Snapshots {
	if callbacks == nil {
		callbacks = Callbacks{}
	}
	snaps := capture(root, callbacks)

	for _, el := range root.Tracked() {
		el.ClearStyle()
	}
	for _, el := range root.Inverted() {
		el.ClearStyle()
	}
	running := reg.Len()
	reg.StopAll()

	e.logger.Debug("captured snapshot", "elements", snaps.Len(), "stopped", running)
	return snaps
}

// invertedChild pairs an inverse child with its config, read once.
type invertedChild struct {
	el  Element
	cfg Config
}

// plan is the geometric program for one flipped element.
type plan struct {
	id       FlipID
	el       Element
	cfg      Config
	from, to anim.Values
	startID  string
	inverted []invertedChild
}

// RunTransition animates root from prev to its current layout. It is called
// after the host has applied the new layout and never fails: elements that
// vanished or were filtered out are skipped.
func (e *Engine) RunTransition(root Root, prev Snapshots, reg *Registry, callbacks Callbacks, opts Options) Report {
	if callbacks == nil {
		callbacks = Callbacks{}
	}
	opts.SetDefaults()

	rep := Report{ID: uuid.New().String()[:8], DebugOnly: opts.Debug}
	logger := e.logger.With("transition", rep.ID)

	cur := Capture(root)
	diff := Classify(prev, cur, callbacks)
	rep.Flipped = len(diff.Flipped)
	observability.Animation().OnTransition(rep.ID, len(diff.Flipped), len(diff.Appearing), len(diff.Disappearing))

	rep.Appeared = e.appear(root, diff.Appearing, callbacks, opts)
	rep.Exited = e.exit(prev, diff.Disappearing, reg, callbacks, logger)

	if opts.Debug {
		logger.Error(DebugMessage)
	}

	// every from-state is applied before any driver starts
	plans := make([]plan, 0, len(diff.Flipped))
	for _, id := range diff.Flipped {
		p, ok := e.plan(root, id, prev, cur, opts)
		if !ok {
			rep.Skipped++
			continue
		}
		e.applier(root, p)(p.from)
		plans = append(plans, p)
	}
	rep.Animated = len(plans)

	if opts.Debug {
		logger.Debug("debug mode, drivers not started", "animated", rep.Animated)
		return rep
	}

	for _, p := range plans {
		driver := e.start(root, p, reg, callbacks[p.id], opts)
		logger.Debug("animating", "id", p.id, "driver", driver)
		rep.Started++
	}

	logger.Debug("transition started",
		"flipped", rep.Flipped, "started", rep.Started, "skipped", rep.Skipped,
		"appeared", rep.Appeared, "exited", rep.Exited)
	return rep
}

func (e *Engine) appear(root Root, ids []FlipID, callbacks Callbacks, opts Options) int {
	n := 0
	for i, id := range ids {
		el := root.Find(id)
		if el == nil {
			continue
		}
		if opts.ApplyTransformOrigin {
			el.SetTransformOrigin("0 0")
		}
		callbacks[id].OnAppear(el, i)
		n++
	}
	return n
}

func (e *Engine) exit(prev Snapshots, ids []FlipID, reg *Registry, callbacks Callbacks, logger *log.Logger) int {
	n := 0
	for i, id := range ids {
		snap, _ := prev.Get(id)
		data := snap.Exit
		if data == nil || data.Parent == nil {
			logger.Debug("exiting element has no exit data", "id", id)
			continue
		}
		el, parent := data.Element, data.Parent

		parent.EnsurePositioned()
		el.Anchor(data.Position)
		if err := parent.AppendChild(el); err != nil {
			logger.Debug("re-inserting exiting element", "id", id, "err", err)
			continue
		}

		h := reg.Start(id, nil)
		h.Bind(func() {
			// someone else may have removed it already
			_ = parent.RemoveChild(el)
		})
		remove := func() {
			if h.State() != Running {
				return
			}
			h.complete()
			h.halt()
		}
		callbacks[id].OnExit(el, i, remove)
		n++
	}
	return n
}

// plan computes the program for one flipped id, or false if it is skipped.
func (e *Engine) plan(root Root, id FlipID, prev, cur Snapshots, opts Options) (plan, bool) {
	before, _ := prev.Get(id)
	after, _ := cur.Get(id)

	if !Visible(before, after, root.Viewport()) {
		return plan{}, false
	}
	if Unchanged(before, after) {
		return plan{}, false
	}
	el := root.Find(id)
	if el == nil {
		return plan{}, false
	}
	cfg := el.Config()
	if !ShouldApplyTransform(cfg.ComponentIDFilter, before.ComponentID, cfg.ComponentID) {
		return plan{}, false
	}

	from, to := ComputeDelta(before, after, cfg, el.Transform())

	switch {
	case cfg.TransformOrigin != "":
		el.SetTransformOrigin(cfg.TransformOrigin)
	case opts.ApplyTransformOrigin:
		el.SetTransformOrigin("0 0")
	}

	var inverted []invertedChild
	for _, child := range el.InvertedChildren(id) {
		childCfg := child.Config()
		switch {
		case childCfg.TransformOrigin != "":
			child.SetTransformOrigin(childCfg.TransformOrigin)
		case opts.ApplyTransformOrigin:
			child.SetTransformOrigin("0 0")
		}
		inverted = append(inverted, invertedChild{el: child, cfg: childCfg})
	}

	return plan{
		id:       id,
		el:       el,
		cfg:      cfg,
		from:     from,
		to:       to,
		startID:  before.ComponentID,
		inverted: inverted,
	}, true
}

// applier returns the style writer for p: the element's own transform and
// opacity plus the compensation of its inverse children.
func (e *Engine) applier(root Root, p plan) func(anim.Values) {
	endID := p.cfg.ComponentID
	return func(v anim.Values) {
		p.el.SetTransform(v.Matrix)
		p.el.SetOpacity(v.Opacity)
		for _, c := range p.inverted {
			if !ShouldApplyTransform(c.cfg.ComponentIDFilter, p.startID, endID) {
				continue
			}
			if !root.Contains(c.el) {
				continue
			}
			c.el.SetTransform(InverseTransform(v.Matrix, c.cfg))
		}
	}
}

// start registers p in reg and starts its driver. It returns the driver name.
func (e *Engine) start(root Root, p plan, reg *Registry, cb Callback, opts Options) string {
	if cb.OnStart != nil {
		cb.OnStart(p.el, p.startID)
	}
	var onComplete func()
	if cb.OnComplete != nil {
		onComplete = func() { cb.OnComplete(p.el, p.startID) }
	}

	h := reg.Start(p.id, onComplete)
	apply := e.applier(root, p)
	update := func(v anim.Values) bool {
		if !root.Contains(p.el) {
			h.Stop()
			return false
		}
		apply(v)
		h.frame()
		return true
	}

	driver, name := e.driver(p.cfg, opts)
	observability.Animation().OnAnimationStart(string(p.id), name)
	h.Bind(driver.Drive(p.from, p.to, update, h.complete))
	return name
}

// driver picks the interpolation driver: an element spring wins, then an
// element easing, then a container easing; otherwise the container spring.
func (e *Engine) driver(cfg Config, opts Options) (anim.Driver, string) {
	switch {
	case cfg.Spring != nil:
		return anim.Spring{Params: *cfg.Spring, Delay: cfg.Delay, Scheduler: e.sched}, DriverSpring
	case cfg.Ease != "" || opts.Easing != "":
		name := cfg.Ease
		if name == "" {
			name = opts.Easing
		}
		duration := cfg.Duration
		if duration <= 0 {
			duration = opts.Duration
		}
		return anim.Tween{
			Duration:  duration,
			Delay:     cfg.Delay,
			Easing:    e.easing(name),
			Scheduler: e.sched,
		}, DriverTween
	}
	return anim.Spring{Params: opts.Spring, Delay: cfg.Delay, Scheduler: e.sched}, DriverSpring
}

func (e *Engine) easing(name string) anim.EasingFunc {
	f, err := anim.ParseEasing(name)
	if err != nil {
		e.logger.Debug("falling back to default easing", "easing", name, "err", err)
		f, _ = anim.ParseEasing(anim.DefaultEasing)
	}
	return f
}
