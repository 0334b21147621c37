package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
	"github.com/matzehuels/flipkit/pkg/surface"
)

func TestRenderPlain(t *testing.T) {
	doc := surface.NewDocument(geom.Rect{Width: 100, Height: 40}, surface.Absolute,
		surface.NewNode(surface.Props{ID: "a", Rect: geom.Rect{Width: 50, Height: 20}, Label: "A"}),
	)

	out := Render(doc, Options{Columns: 10})
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "█A███     ", lines[0])
	assert.Equal(t, "          ", lines[1])
}

func TestRenderOpacityShades(t *testing.T) {
	for _, tt := range []struct {
		opacity float64
		glyph   string
	}{
		{1, "█"},
		{0.5, "▓"},
		{0.3, "▒"},
		{0.1, "░"},
		{0, " "},
	} {
		o := tt.opacity
		doc := surface.NewDocument(geom.Rect{Width: 10, Height: 10}, surface.Absolute,
			surface.NewNode(surface.Props{Rect: geom.Rect{Width: 10, Height: 10}, Opacity: &o}),
		)
		out := Render(doc, Options{Columns: 2})
		assert.Equal(t, tt.glyph+tt.glyph, out, "opacity %g", tt.opacity)
	}
}

func TestRenderFollowsTransform(t *testing.T) {
	n := surface.NewNode(surface.Props{ID: "a", Rect: geom.Rect{Width: 20, Height: 20}})
	doc := surface.NewDocument(geom.Rect{Width: 100, Height: 20}, surface.Absolute, n)
	n.SetTransformOrigin("0 0")

	before := Render(doc, Options{Columns: 10})
	assert.Equal(t, "██        ", before)

	n.SetTransform(matrix.Translate(60, 0))
	after := Render(doc, Options{Columns: 10})
	assert.Equal(t, "      ██  ", after)
}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(geom.Rect{Width: 200, Height: 100}, 0)
	cols, rows := c.Size()
	assert.Equal(t, DefaultColumns, cols)
	assert.Equal(t, 16, rows)
}

func TestStyledKeepsGlyphs(t *testing.T) {
	doc := surface.NewDocument(geom.Rect{Width: 10, Height: 10}, surface.Absolute,
		surface.NewNode(surface.Props{Rect: geom.Rect{Width: 10, Height: 10}, Color: "#ff0000"}),
	)
	out := Render(doc, Options{Columns: 2, Color: true})
	assert.Contains(t, out, "██")
}
