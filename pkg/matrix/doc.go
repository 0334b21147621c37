// Package matrix implements the 2-D affine transforms written onto animated
// elements.
//
// An [Affine] uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps a point as
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The flip engine only ever builds translate and scale compositions, so an
// Affine without skew can be read back losslessly as [Components]
// (translateX, translateY, scaleX, scaleY).
//
// # Composition
//
// [Affine.Multiply] composes right-to-left: m.Multiply(n) applies n first and
// then m, the same order a CSS transform list such as
// "translate(10px, 0) scale(2)" uses.
//
// # Text form
//
// [Parse] reads the subset of CSS transform syntax used by scene files and
// computed styles; [Affine.String] writes the canonical
// "matrix(a, b, c, d, e, f)" form.
package matrix
