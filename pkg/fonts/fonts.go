// Package fonts provides the font used for labels in raster output.
//
// The Go Regular typeface ships with golang.org/x/image, so rendering
// needs no font files on the host.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the family name of the label font.
const FontFamily = "Go"

// DefaultSize is the label size in points at scale 1.
const DefaultSize = 11

// Parsed once on first access.
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a face of the label font at size points.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
