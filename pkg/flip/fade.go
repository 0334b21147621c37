package flip

import (
	"time"

	"github.com/matzehuels/flipkit/pkg/anim"
)

// Fade builds appear and exit callbacks that tween opacity. Its tweens are
// registered in Registry under the element's flip id, so the next capture
// cancels them like any other animation of the container.
//
//	fade := flip.Fade{Scheduler: loop, Registry: f.Registry(), Root: doc, Duration: 200 * time.Millisecond}
//	f.On("toast", flip.Callback{OnAppear: fade.In(), OnExit: fade.Out()})
type Fade struct {
	Scheduler anim.Scheduler
	Registry  *Registry

	// Root, when set, stops a fade once its element is detached.
	Root Root

	Duration time.Duration

	// Stagger delays each element by its index in the batch.
	Stagger time.Duration
}

// In returns an OnAppear callback that tweens opacity from 0 to 1.
func (f Fade) In() func(Element, int) {
	return func(el Element, index int) {
		el.SetOpacity(0)
		var h *Handle
		if f.Registry != nil {
			h = f.Registry.Start(el.FlipID(), nil)
		}
		f.run(el, index, h, 0, 1, nil)
	}
}

// Out returns an OnExit callback that tweens opacity to 0 and then calls
// remove. The tween joins the exit animation the engine registered for the
// element.
func (f Fade) Out() func(Element, int, func()) {
	return func(el Element, index int, remove func()) {
		var h *Handle
		if f.Registry != nil {
			h = f.Registry.Get(el.FlipID())
		}
		if h != nil && h.State() != Running {
			h = nil
		}
		f.run(el, index, h, el.Opacity(), 0, remove)
	}
}

func (f Fade) run(el Element, index int, h *Handle, from, to float64, done func()) {
	m := el.Transform()
	update := func(v anim.Values) bool {
		if f.Root != nil && !f.Root.Contains(el) {
			if h != nil {
				h.Stop()
			}
			return false
		}
		el.SetOpacity(v.Opacity)
		if h != nil {
			h.frame()
		}
		return true
	}

	finish := done
	if h != nil {
		finish = func() {
			if done != nil {
				done()
			}
			h.complete()
		}
	}

	easing, _ := anim.ParseEasing("easeOutQuad")
	tw := anim.Tween{
		Duration:  f.Duration,
		Delay:     time.Duration(index) * f.Stagger,
		Easing:    easing,
		Scheduler: f.Scheduler,
	}
	stop := tw.Drive(anim.Values{Matrix: m, Opacity: from}, anim.Values{Matrix: m, Opacity: to}, update, finish)
	if h != nil {
		h.Bind(stop)
	}
}
