package matrix

import (
	"strconv"
	"strings"

	"github.com/matzehuels/flipkit/pkg/errors"
)

// Parse reads a transform list such as "translate(10px, 5px) scale(2)".
//
// Supported functions: matrix, matrix3d (2-D part only), translate,
// translateX, translateY, scale, scaleX, scaleY. Lengths may carry a "px"
// suffix. The empty string and "none" yield the identity.
func Parse(s string) (Affine, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return Identity(), nil
	}

	out := Identity()
	rest := s
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open <= 0 || closing < open {
			return Identity(), errors.New(errors.ErrCodeInvalidTransform, "malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseArgs(rest[open+1 : closing])
		if err != nil {
			return Identity(), errors.Wrap(errors.ErrCodeInvalidTransform, err, "transform %q", s)
		}
		m, err := function(name, args)
		if err != nil {
			return Identity(), err
		}
		out = out.Multiply(m)
		rest = strings.TrimSpace(rest[closing+1:])
	}
	return out, nil
}

func function(name string, args []float64) (Affine, error) {
	want := func(n ...int) error {
		for _, k := range n {
			if len(args) == k {
				return nil
			}
		}
		return errors.New(errors.ErrCodeInvalidTransform, "%s: unexpected argument count %d", name, len(args))
	}

	switch name {
	case "matrix":
		if err := want(6); err != nil {
			return Identity(), err
		}
		return FromArray([6]float64{args[0], args[1], args[2], args[3], args[4], args[5]}), nil
	case "matrix3d":
		if err := want(16); err != nil {
			return Identity(), err
		}
		// column-major 4x4; keep the x/y rows and the translation column
		return FromArray([6]float64{args[0], args[1], args[4], args[5], args[12], args[13]}), nil
	case "translate":
		if err := want(1, 2); err != nil {
			return Identity(), err
		}
		if len(args) == 1 {
			return Translate(args[0], 0), nil
		}
		return Translate(args[0], args[1]), nil
	case "translateX":
		if err := want(1); err != nil {
			return Identity(), err
		}
		return TranslateX(args[0]), nil
	case "translateY":
		if err := want(1); err != nil {
			return Identity(), err
		}
		return TranslateY(args[0]), nil
	case "scale":
		if err := want(1, 2); err != nil {
			return Identity(), err
		}
		if len(args) == 1 {
			return Scale(args[0], args[0]), nil
		}
		return Scale(args[0], args[1]), nil
	case "scaleX":
		if err := want(1); err != nil {
			return Identity(), err
		}
		return ScaleX(args[0]), nil
	case "scaleY":
		if err := want(1); err != nil {
			return Identity(), err
		}
		return ScaleY(args[0]), nil
	}
	return Identity(), errors.New(errors.ErrCodeInvalidTransform, "unsupported transform function %q", name)
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
