package anim

import "github.com/matzehuels/flipkit/pkg/matrix"

// Values is one interpolation sample: a transform and an opacity.
type Values struct {
	Matrix  matrix.Affine
	Opacity float64
}

// numScalars is the number of independently animated scalars in Values:
// the six affine coefficients plus opacity.
const numScalars = 7

func (v Values) scalars() [numScalars]float64 {
	m := v.Matrix.Array()
	return [numScalars]float64{m[0], m[1], m[2], m[3], m[4], m[5], v.Opacity}
}

func fromScalars(s [numScalars]float64) Values {
	return Values{
		Matrix:  matrix.FromArray([6]float64{s[0], s[1], s[2], s[3], s[4], s[5]}),
		Opacity: s[6],
	}
}

// Lerp linearly interpolates every scalar of from and to at t.
func Lerp(from, to Values, t float64) Values {
	return Values{
		Matrix:  matrix.Lerp(from.Matrix, to.Matrix, t),
		Opacity: from.Opacity + (to.Opacity-from.Opacity)*t,
	}
}
