package matrix

import (
	"fmt"
	"math"
	"strconv"
)

// Affine is a 2-D affine transformation. The zero value is not the identity;
// use [Identity].
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Components is the translate/scale decomposition of an Affine.
type Components struct {
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate creates a translation.
func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// TranslateX creates a horizontal translation.
func TranslateX(x float64) Affine { return Translate(x, 0) }

// TranslateY creates a vertical translation.
func TranslateY(y float64) Affine { return Translate(0, y) }

// Scale creates a scaling transformation.
func Scale(x, y float64) Affine {
	return Affine{A: x, E: y}
}

// ScaleX creates a horizontal scale.
func ScaleX(x float64) Affine { return Scale(x, 1) }

// ScaleY creates a vertical scale.
func ScaleY(y float64) Affine { return Scale(1, y) }

// FromComponents builds translate(tx, ty) followed by scale(sx, sy), the
// inverse of [Affine.Decompose] for skew-free matrices.
func FromComponents(c Components) Affine {
	return Affine{A: c.ScaleX, C: c.TranslateX, E: c.ScaleY, F: c.TranslateY}
}

// Multiply returns m * other: other is applied first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Compose multiplies the given transforms left to right, so the last one is
// applied to a point first. Compose() is the identity.
func Compose(ms ...Affine) Affine {
	out := Identity()
	for _, m := range ms {
		out = out.Multiply(m)
	}
	return out
}

// Decompose reads the translate and scale parts of m. Skew terms are ignored.
func (m Affine) Decompose() Components {
	return Components{TranslateX: m.C, TranslateY: m.F, ScaleX: m.A, ScaleY: m.E}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns the inverse matrix.
// Returns the identity matrix if m is not invertible.
func (m Affine) Invert() Affine {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1.0 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// ApproxEqual reports whether every coefficient of m and o differs by at
// most eps.
func (m Affine) ApproxEqual(o Affine, eps float64) bool {
	a, b := m.Array(), o.Array()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Array returns the coefficients in CSS order (a, b, c, d, e, f), where
// CSS a=A, b=D, c=B, d=E, e=C, f=F.
func (m Affine) Array() [6]float64 {
	return [6]float64{m.A, m.D, m.B, m.E, m.C, m.F}
}

// FromArray is the inverse of [Affine.Array].
func FromArray(v [6]float64) Affine {
	return Affine{A: v[0], D: v[1], B: v[2], E: v[3], C: v[4], F: v[5]}
}

// Lerp interpolates every coefficient of from and to at t.
func Lerp(from, to Affine, t float64) Affine {
	a, b := from.Array(), to.Array()
	var out [6]float64
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return FromArray(out)
}

// String formats m as "matrix(a, b, c, d, e, f)".
func (m Affine) String() string {
	v := m.Array()
	return fmt.Sprintf("matrix(%s, %s, %s, %s, %s, %s)",
		ftoa(v[0]), ftoa(v[1]), ftoa(v[2]), ftoa(v[3]), ftoa(v[4]), ftoa(v[5]))
}

func ftoa(f float64) string {
	if f == 0 {
		f = 0 // drop negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
