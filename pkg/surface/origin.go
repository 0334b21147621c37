package surface

import (
	"strconv"
	"strings"

	"github.com/matzehuels/flipkit/pkg/errors"
)

// DefaultOrigin is the transform origin of nodes that do not set one.
const DefaultOrigin = "50% 50%"

// ResolveOrigin converts a CSS transform-origin value into a point inside a
// box of size w×h. It accepts lengths ("10px", "10"), percentages and the
// keywords left, right, top, bottom and center. A single value sets the
// horizontal component and centers the vertical one.
func ResolveOrigin(origin string, w, h float64) (float64, float64, error) {
	fields := strings.Fields(origin)
	switch len(fields) {
	case 0:
		return w / 2, h / 2, nil
	case 1:
		fields = append(fields, "center")
	case 2:
	default:
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "transform origin %q: too many values", origin)
	}

	// keywords may come in either order
	x, y := fields[0], fields[1]
	if x == "top" || x == "bottom" || y == "left" || y == "right" {
		x, y = y, x
	}

	ox, err := originComponent(x, w, "left", "right")
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "transform origin %q", origin)
	}
	oy, err := originComponent(y, h, "top", "bottom")
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "transform origin %q", origin)
	}
	return ox, oy, nil
}

func originComponent(v string, size float64, start, end string) (float64, error) {
	switch v {
	case start:
		return 0, nil
	case end:
		return size, nil
	case "center":
		return size / 2, nil
	}
	if pct, ok := strings.CutSuffix(v, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return size * f / 100, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0, err
	}
	return f, nil
}
