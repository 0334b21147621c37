package frames

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/surface"
)

func testDoc() *surface.Document {
	return surface.NewDocument(geom.Rect{Width: 40, Height: 20}, surface.Absolute,
		surface.NewNode(surface.Props{ID: "a", Rect: geom.Rect{Width: 20, Height: 20}, Color: "#ff0000"}),
	)
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testDoc(), WithScale(2), WithOutline(false), WithLabels(false))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	// right half is background
	r, _, _, _ = img.At(70, 10).RGBA()
	assert.Less(t, r, uint32(0x4000))
}

func TestRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rec, err := NewRecorder(dir)
	require.NoError(t, err)

	doc := testDoc()
	for i := 0; i < 3; i++ {
		_, err := rec.Record(doc)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, rec.Count())
	_, err = os.Stat(filepath.Join(dir, "frame_0002.png"))
	assert.NoError(t, err)
}

func TestLabels(t *testing.T) {
	doc := surface.NewDocument(geom.Rect{Width: 60, Height: 30}, surface.Absolute,
		surface.NewNode(surface.Props{ID: "a", Rect: geom.Rect{Width: 60, Height: 30}, Color: "#000080", Label: "AB"}),
	)

	plain, err := RenderPNG(doc, WithOutline(false), WithLabels(false))
	require.NoError(t, err)
	labeled, err := RenderPNG(doc, WithOutline(false), WithFontSize(16))
	require.NoError(t, err)

	assert.NotEqual(t, plain, labeled, "label should change pixels")
}

func TestOnscreen(t *testing.T) {
	vp := geom.Rect{Top: 100, Left: 50, Width: 40, Height: 20}
	tests := []struct {
		name   string
		bounds geom.Rect
		want   bool
	}{
		{"inside", geom.Rect{Top: 105, Left: 55, Width: 10, Height: 10}, true},
		{"straddles bottom", geom.Rect{Top: 115, Left: 55, Width: 10, Height: 10}, true},
		{"left of viewport", geom.Rect{Top: 105, Left: 0, Width: 50, Height: 10}, false},
		{"below viewport", geom.Rect{Top: 120, Left: 55, Width: 10, Height: 10}, false},
		{"at the origin", geom.Rect{Width: 10, Height: 10}, false},
		{"zero width", geom.Rect{Top: 105, Left: 55, Height: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, onscreen(tt.bounds, vp))
		})
	}
}
