package flip

import (
	"math"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
)

// minExtent guards scale ratios against zero-size current rectangles.
const minExtent = 0.01

// Unchanged reports whether rect and opacity are identical.
func Unchanged(prev, cur Snapshot) bool {
	return prev.Rect == cur.Rect && prev.Opacity == cur.Opacity
}

// Visible reports whether either rectangle intersects viewport. Animations
// entirely outside the viewport are skipped.
func Visible(prev, cur Snapshot, viewport geom.Rect) bool {
	return prev.Rect.Intersects(viewport) || cur.Rect.Intersects(viewport)
}

// ComputeDelta returns the endpoints that make an element at cur look as it
// did at prev and then relax back. base is the element's computed transform,
// which both endpoints keep.
//
// The "from" matrix is base × translate × scale, each factor included only
// if cfg enables it. Opacity animates only with cfg.Opacity; otherwise both
// endpoints are 1.
func ComputeDelta(prev, cur Snapshot, cfg Config, base matrix.Affine) (from, to anim.Values) {
	parts := []matrix.Affine{base}
	if cfg.Translate {
		parts = append(parts,
			matrix.TranslateX(prev.Rect.Left-cur.Rect.Left),
			matrix.TranslateY(prev.Rect.Top-cur.Rect.Top),
		)
	}
	if cfg.Scale {
		parts = append(parts,
			matrix.ScaleX(prev.Rect.Width/math.Max(cur.Rect.Width, minExtent)),
			matrix.ScaleY(prev.Rect.Height/math.Max(cur.Rect.Height, minExtent)),
		)
	}

	from = anim.Values{Matrix: matrix.Compose(parts...), Opacity: 1}
	to = anim.Values{Matrix: base, Opacity: 1}
	if cfg.Opacity {
		from.Opacity = prev.Opacity
		to.Opacity = cur.Opacity
	}
	return from, to
}

// InverseTransform returns the transform that cancels ancestor for a child
// declaring cfg: translate(-tx/sx, -ty/sy) when cfg.Translate and
// scale(1/sx, 1/sy) when cfg.Scale.
func InverseTransform(ancestor matrix.Affine, cfg Config) matrix.Affine {
	c := ancestor.Decompose()
	sx := nonZero(c.ScaleX)
	sy := nonZero(c.ScaleY)

	out := matrix.Identity()
	if cfg.Translate {
		out = out.Multiply(matrix.Translate(-c.TranslateX/sx, -c.TranslateY/sy))
	}
	if cfg.Scale {
		out = out.Multiply(matrix.Scale(1/sx, 1/sy))
	}
	return out
}

func nonZero(v float64) float64 {
	if math.Abs(v) < minExtent {
		return math.Copysign(minExtent, v)
	}
	return v
}
