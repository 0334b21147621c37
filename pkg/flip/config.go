package flip

import (
	"time"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/errors"
)

// Config is the per-element participation declared at render time. The
// engine reads it once per transition and never modifies it.
type Config struct {
	Translate bool
	Scale     bool
	Opacity   bool

	// Spring selects the spring driver with these parameters.
	Spring *anim.SpringParams

	// Ease selects the tween driver with this easing.
	Ease     string
	Duration time.Duration
	Delay    time.Duration

	// TransformOrigin overrides the container-level origin setting.
	TransformOrigin string

	ComponentID       string
	ComponentIDFilter ComponentFilter
}

// DefaultConfig animates translate, scale and opacity.
func DefaultConfig() Config {
	return Config{Translate: true, Scale: true, Opacity: true}
}

// ComponentFilter restricts an animation to transitions whose start or end
// component id is listed. An empty filter lets everything through.
type ComponentFilter []string

func (f ComponentFilter) passes(componentID string) bool {
	for _, id := range f {
		if id == componentID {
			return true
		}
	}
	return false
}

// ShouldApplyTransform reports whether an animation between components
// startID and endID passes filter. It is false exactly when the filter is
// non-empty and neither id is listed.
func ShouldApplyTransform(filter ComponentFilter, startID, endID string) bool {
	if len(filter) == 0 {
		return true
	}
	return filter.passes(startID) || filter.passes(endID)
}

// Options are the container-level animation settings.
type Options struct {
	// Duration of tweens that do not set their own.
	Duration time.Duration

	// Easing, when set, makes tween the default driver.
	Easing string

	// ApplyTransformOrigin sets "0 0" as transform origin on animated
	// elements that do not declare their own.
	ApplyTransformOrigin bool

	// Spring parameters for elements animated by the default spring.
	Spring anim.SpringParams

	// Debug applies the "from" state and stops before any driver starts.
	Debug bool
}

// DefaultDuration is the tween duration used when none is configured.
const DefaultDuration = 250 * time.Millisecond

// DefaultOptions returns options with all defaults applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills zero fields: 250ms duration and the noWobble spring.
// Easing stays empty so spring remains the default driver.
func (o *Options) SetDefaults() {
	if o.Duration == 0 {
		o.Duration = DefaultDuration
	}
	if o.Spring == (anim.SpringParams{}) {
		o.Spring, _ = anim.SpringPreset(anim.DefaultSpring)
	}
}

// Validate checks option values.
func (o Options) Validate() error {
	if o.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "duration must not be negative, got %s", o.Duration)
	}
	if o.Easing != "" {
		if _, err := anim.ParseEasing(o.Easing); err != nil {
			return err
		}
	}
	if o.Spring != (anim.SpringParams{}) {
		if err := o.Spring.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Callbacks are keyed by flip id. Missing entries mean "no callbacks".
type Callbacks map[FlipID]Callback

// Callback holds the optional lifecycle callbacks of one element.
type Callback struct {
	// OnAppear is called for elements that exist only after the update.
	// index counts appearing elements in document order.
	OnAppear func(el Element, index int)

	// OnExit is called for elements that existed only before the update,
	// after they were re-inserted at their old position. The callback must
	// eventually call remove.
	OnExit func(el Element, index int, remove func())

	// OnStart is called when a flipped element's driver starts.
	OnStart func(el Element, prevComponentID string)

	// OnComplete is called when a flipped element's animation settles. It is
	// never called for animations that were stopped.
	OnComplete func(el Element, prevComponentID string)
}
