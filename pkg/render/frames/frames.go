// Package frames draws surface documents as PNG images.
//
// A [Recorder] writes one numbered image per call, which is how "flipkit
// play --frames DIR" dumps an animation for inspection or for assembling a
// GIF with external tools.
package frames

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/fonts"
	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/render"
	"github.com/matzehuels/flipkit/pkg/surface"
)

// Option configures PNG rendering.
type Option func(*renderer)

type renderer struct {
	scale    float64
	outline  bool
	labels   bool
	fontSize float64
}

// WithScale sets the pixel scale (default 1).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithOutline strokes box outlines.
func WithOutline(on bool) Option {
	return func(r *renderer) { r.outline = on }
}

// WithLabels draws node labels at box centers.
func WithLabels(on bool) Option {
	return func(r *renderer) { r.labels = on }
}

// WithFontSize sets the label size in points before scaling.
func WithFontSize(pt float64) Option {
	return func(r *renderer) {
		if pt > 0 {
			r.fontSize = pt
		}
	}
}

func newRenderer(opts []Option) renderer {
	r := renderer{scale: 1, outline: true, labels: true, fontSize: fonts.DefaultSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Draw paints doc into a new gg context.
func Draw(doc *surface.Document, opts ...Option) *gg.Context {
	r := newRenderer(opts)
	vp := doc.Viewport()
	w := max(1, int(math.Ceil(vp.Width*r.scale)))
	h := max(1, int(math.Ceil(vp.Height*r.scale)))

	dc := gg.NewContext(w, h)
	dc.SetHexColor(render.Background)
	dc.Clear()
	if r.labels {
		// Glyphs are not affected by the context transform.
		if face, err := fonts.Face(r.fontSize * r.scale); err == nil {
			dc.SetFontFace(face)
		}
	}
	dc.Scale(r.scale, r.scale)
	dc.Translate(-vp.Left, -vp.Top)

	for i, q := range doc.Paint() {
		if q.Opacity <= 0 || !onscreen(q.Bounds, vp) {
			continue
		}
		fill := render.Fill(q.Node.Props().Color, i)
		pts := q.Corners()
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetRGBA(fill.R, fill.G, fill.B, q.Opacity)
		if r.outline {
			dc.FillPreserve()
			dc.SetRGBA(1, 1, 1, 0.35*q.Opacity)
			dc.SetLineWidth(1 / r.scale)
			dc.Stroke()
		} else {
			dc.Fill()
		}

		if label := q.Node.Label(); r.labels && label != "" {
			dc.SetRGBA(1, 1, 1, q.Opacity)
			dc.DrawStringAnchored(label, q.Bounds.CenterX(), q.Bounds.CenterY(), 0.5, 0.5)
		}
	}
	return dc
}

// onscreen reports whether a box with bounds b paints any pixel of vp.
func onscreen(b, vp geom.Rect) bool {
	return !b.Empty() && b.Translate(-vp.Left, -vp.Top).InViewport(vp.Width, vp.Height)
}

// WritePNG encodes doc as PNG to w.
func WritePNG(w io.Writer, doc *surface.Document, opts ...Option) error {
	if err := Draw(doc, opts...).EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// RenderPNG returns doc as PNG bytes.
func RenderPNG(doc *surface.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Recorder writes numbered PNG frames into a directory.
type Recorder struct {
	dir  string
	opts []Option
	n    int
}

// NewRecorder creates dir if needed.
func NewRecorder(dir string, opts ...Option) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create frames dir %s", dir)
	}
	return &Recorder{dir: dir, opts: opts}, nil
}

// Record writes the next frame and returns its path.
func (r *Recorder) Record(doc *surface.Document) (string, error) {
	path := filepath.Join(r.dir, fmt.Sprintf("frame_%04d.png", r.n))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	if err := WritePNG(f, doc, r.opts...); err != nil {
		return "", err
	}
	r.n++
	return path, nil
}

// Count returns how many frames were written.
func (r *Recorder) Count() int { return r.n }
