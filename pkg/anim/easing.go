package anim

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/flipkit/pkg/errors"
)

// EasingFunc maps normalized time in [0,1] to progress. Progress starts at
// 0 and ends at 1 but may leave that range in between (back easings).
type EasingFunc func(t float64) float64

// DefaultEasing is used when a tween is requested without a known easing.
const DefaultEasing = "easeOutCubic"

const backPower = 1.525

var easings = map[string]EasingFunc{
	"linear":         Linear,
	"easeIn":         powIn(2),
	"easeOut":        reverse(powIn(2)),
	"easeInOut":      mirror(powIn(2)),
	"easeInQuad":     powIn(2),
	"easeOutQuad":    reverse(powIn(2)),
	"easeInOutQuad":  mirror(powIn(2)),
	"easeInCubic":    powIn(3),
	"easeOutCubic":   reverse(powIn(3)),
	"easeInOutCubic": mirror(powIn(3)),
	"easeInQuart":    powIn(4),
	"easeOutQuart":   reverse(powIn(4)),
	"easeInOutQuart": mirror(powIn(4)),
	"easeInExpo":     reverse(expoOut),
	"easeOutExpo":    expoOut,
	"easeInOutExpo":  mirror(reverse(expoOut)),
	"circIn":         circIn,
	"circOut":        reverse(circIn),
	"circInOut":      mirror(circIn),
	"backIn":         backIn,
	"backOut":        reverse(backIn),
	"backInOut":      mirror(backIn),
	"anticipate":     anticipate,
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

func powIn(p float64) EasingFunc {
	return func(t float64) float64 { return math.Pow(t, p) }
}

func reverse(f EasingFunc) EasingFunc {
	return func(t float64) float64 { return 1 - f(1-t) }
}

func mirror(f EasingFunc) EasingFunc {
	return func(t float64) float64 {
		if t <= 0.5 {
			return f(2*t) / 2
		}
		return (2 - f(2*(1-t))) / 2
	}
}

func expoOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func circIn(t float64) float64 {
	return 1 - math.Sin(math.Acos(math.Min(math.Max(t, -1), 1)))
}

func backIn(t float64) float64 {
	return t * t * ((backPower+1)*t - backPower)
}

func anticipate(t float64) float64 {
	if t >= 1 {
		return 1
	}
	p := t * 2
	if p < 1 {
		return 0.5 * backIn(p)
	}
	return 0.5 * (2 - math.Pow(2, -10*(p-1)))
}

// Easings returns the names of all built-in easings, sorted.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseEasing resolves a built-in easing name or a
// "cubic-bezier(x1, y1, x2, y2)" expression.
func ParseEasing(name string) (EasingFunc, error) {
	name = strings.TrimSpace(name)
	if f, ok := easings[name]; ok {
		return f, nil
	}
	if inner, ok := strings.CutPrefix(name, "cubic-bezier("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidEasing, "malformed easing %q", name)
		}
		parts := strings.Split(inner, ",")
		if len(parts) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidEasing, "cubic-bezier needs 4 values, got %d", len(parts))
		}
		var v [4]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidEasing, err, "easing %q", name)
			}
			v[i] = f
		}
		if v[0] < 0 || v[0] > 1 || v[2] < 0 || v[2] > 1 {
			return nil, errors.New(errors.ErrCodeInvalidEasing, "cubic-bezier x values must lie in [0,1]")
		}
		return CubicBezier(v[0], v[1], v[2], v[3]), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidEasing, "unknown easing %q", name)
}

// CubicBezier builds an easing from a cubic Bézier curve that starts at
// (0,0) heading toward (x1,y1) and arrives at (1,1) coming from (x2,y2).
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		// B(t) = 3(1-t)^2 t P1 + 3(1-t) t^2 P2 + t^3; solve B_x(t) = x with
		// Newton's method, then evaluate B_y(t).
		t := x
		for i := 0; i < 8; i++ {
			d := 1 - t
			bx := 3*d*d*t*x1 + 3*d*t*t*x2 + t*t*t
			dx := 3*d*d*x1 + 6*d*t*(x2-x1) + 3*t*t*(1-x2)
			if dx == 0 {
				break
			}
			t -= (bx - x) / dx
			if t <= 0 || t >= 1 {
				break
			}
		}
		t = math.Min(math.Max(t, 0), 1)
		d := 1 - t
		return 3*d*d*t*y1 + 3*d*t*t*y2 + t*t*t
	}
}
