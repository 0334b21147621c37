package flip

// Flipper binds an engine to one root and keeps the snapshot between the
// two halves of a transition.
//
//	f := flip.NewFlipper(engine, doc, opts)
//	f.Capture()
//	doc.Update(layout, next...) // host mutates the layout
//	f.Flip()
type Flipper struct {
	engine    *Engine
	root      Root
	reg       *Registry
	opts      Options
	callbacks Callbacks

	prev     Snapshots
	captured bool
}

// NewFlipper creates a flipper with an empty registry.
func NewFlipper(engine *Engine, root Root, opts Options) *Flipper {
	opts.SetDefaults()
	return &Flipper{
		engine:    engine,
		root:      root,
		reg:       NewRegistry(),
		opts:      opts,
		callbacks: Callbacks{},
	}
}

// On registers callbacks for id, replacing earlier ones.
func (f *Flipper) On(id FlipID, cb Callback) *Flipper {
	f.callbacks[id] = cb
	return f
}

// SetRoot points the flipper at a new root, e.g. after the host swapped
// documents. The running registry is kept.
func (f *Flipper) SetRoot(root Root) { f.root = root }

// Registry returns the registry owning the flipper's animations.
func (f *Flipper) Registry() *Registry { return f.reg }

// Options returns the container options with defaults applied.
func (f *Flipper) Options() Options { return f.opts }

// SetOptions replaces the container options for later transitions.
func (f *Flipper) SetOptions(opts Options) {
	opts.SetDefaults()
	f.opts = opts
}

// Capture snapshots the current layout. It must be called before the host
// applies an update.
func (f *Flipper) Capture() {
	f.prev = f.engine.CaptureBeforeUpdate(f.root, f.callbacks, f.reg)
	f.captured = true
}

// Flip animates from the last capture to the current layout. Without a
// prior Capture nothing happens.
func (f *Flipper) Flip() Report {
	if !f.captured {
		return Report{}
	}
	f.captured = false
	return f.engine.RunTransition(f.root, f.prev, f.reg, f.callbacks, f.opts)
}
