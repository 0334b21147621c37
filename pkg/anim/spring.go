package anim

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/matzehuels/flipkit/pkg/errors"
)

// SpringParams describes a damped harmonic oscillator.
type SpringParams struct {
	Stiffness float64 `json:"stiffness" toml:"stiffness" yaml:"stiffness"`
	Damping   float64 `json:"damping" toml:"damping" yaml:"damping"`
	Mass      float64 `json:"mass,omitempty" toml:"mass" yaml:"mass"`

	// OvershootClamping snaps a scalar to its target the first time it
	// crosses it instead of oscillating around it.
	OvershootClamping bool `json:"overshoot_clamping,omitempty" toml:"overshoot_clamping" yaml:"overshoot_clamping"`
}

// DefaultSpring is the preset used when nothing else is configured.
const DefaultSpring = "noWobble"

var springPresets = map[string]SpringParams{
	"noWobble":   {Stiffness: 200, Damping: 26, Mass: 1},
	"gentle":     {Stiffness: 120, Damping: 14, Mass: 1},
	"veryGentle": {Stiffness: 130, Damping: 17, Mass: 1},
	"wobbly":     {Stiffness: 180, Damping: 12, Mass: 1},
	"stiff":      {Stiffness: 260, Damping: 26, Mass: 1},
}

// SpringPreset returns a named preset.
func SpringPreset(name string) (SpringParams, error) {
	p, ok := springPresets[name]
	if !ok {
		return SpringParams{}, errors.New(errors.ErrCodeInvalidSpring, "unknown spring preset %q", name)
	}
	return p, nil
}

// SpringPresets returns the preset names, sorted.
func SpringPresets() []string {
	names := make([]string, 0, len(springPresets))
	for name := range springPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the parameters describe a physical spring.
// Mass 0 is accepted and read as 1.
func (p SpringParams) Validate() error {
	if p.Stiffness <= 0 {
		return errors.New(errors.ErrCodeInvalidSpring, "stiffness must be positive, got %g", p.Stiffness)
	}
	if p.Damping <= 0 {
		// an undamped spring never comes to rest
		return errors.New(errors.ErrCodeInvalidSpring, "damping must be positive, got %g", p.Damping)
	}
	if p.Mass < 0 {
		return errors.New(errors.ErrCodeInvalidSpring, "mass must not be negative, got %g", p.Mass)
	}
	return nil
}

// Harmonic converts stiffness/damping/mass into the angular frequency and
// damping ratio used by harmonica.
func (p SpringParams) Harmonic() (angularFrequency, dampingRatio float64) {
	m := p.Mass
	if m <= 0 {
		m = 1
	}
	angularFrequency = math.Sqrt(p.Stiffness / m)
	dampingRatio = p.Damping / (2 * math.Sqrt(p.Stiffness*m))
	return angularFrequency, dampingRatio
}

// Rest thresholds per scalar.
const (
	restDisplacement = 1e-3
	restSpeed        = 1e-3
	defaultSpringFPS = 60
	maxSubsteps      = 8
)

// Spring drives every scalar toward its target with its own oscillator.
type Spring struct {
	Params    SpringParams
	Delay     time.Duration
	Scheduler Scheduler

	// FPS is the fixed integration rate; 0 means 60. Frames longer than one
	// integration step run several steps, up to a small cap.
	FPS int
}

// Drive implements Driver. Invalid Params fall back to the default preset.
func (s Spring) Drive(from, to Values, update UpdateFunc, done func()) StopFunc {
	params := s.Params
	if params.Validate() != nil {
		params = springPresets[DefaultSpring]
	}
	fps := s.FPS
	if fps <= 0 {
		fps = defaultSpringFPS
	}
	step := time.Second / time.Duration(fps)
	omega, zeta := params.Harmonic()
	osc := harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)

	pos := from.scalars()
	target := to.scalars()
	var vel [numScalars]float64
	var clamped [numScalars]bool

	r := &run{sched: s.Scheduler}
	var start, last time.Time
	var acc time.Duration
	started := false

	integrate := func() {
		for i := range pos {
			if clamped[i] {
				continue
			}
			before := pos[i] - target[i]
			pos[i], vel[i] = osc.Update(pos[i], vel[i], target[i])
			if params.OvershootClamping && before != 0 && (pos[i]-target[i])*before <= 0 {
				pos[i], vel[i], clamped[i] = target[i], 0, true
			}
		}
	}
	atRest := func() bool {
		for i := range pos {
			if math.Abs(pos[i]-target[i]) > restDisplacement || math.Abs(vel[i]) > restSpeed {
				return false
			}
		}
		return true
	}

	var tick FrameFunc
	tick = func(now time.Time) {
		if r.stopped {
			return
		}
		if !started {
			started = true
			start, last = now, now
			r.next(tick)
			return
		}
		if now.Sub(start) < s.Delay {
			last = now
			r.next(tick)
			return
		}

		acc += now.Sub(last)
		last = now
		n := int(acc / step)
		if n > maxSubsteps {
			n, acc = maxSubsteps, 0
		} else {
			acc -= time.Duration(n) * step
		}
		if n == 0 {
			r.next(tick)
			return
		}
		for i := 0; i < n; i++ {
			integrate()
		}

		if atRest() {
			r.finish(update, to, done)
			return
		}
		if !r.emit(update, fromScalars(pos)) {
			return
		}
		r.next(tick)
	}

	r.next(tick)
	return r.stop
}
