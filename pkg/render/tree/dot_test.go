package tree

import (
	"strings"
	"testing"

	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/matrix"
	"github.com/matzehuels/flipkit/pkg/surface"
)

func testDoc() *surface.Document {
	return surface.NewDocument(geom.Rect{Width: 100, Height: 100}, surface.Absolute,
		surface.NewNode(surface.Props{ID: "card", Rect: geom.Rect{Width: 50, Height: 50}},
			surface.NewNode(surface.Props{Inverse: "card", Label: "title", Rect: geom.Rect{Width: 10, Height: 10}}),
		),
	)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testDoc(), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="card"`,
		`n1 [label="title"]`,
		"n0 -> n1;",
		"n0 -> n1 [style=dashed",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	doc := testDoc()
	card := doc.Node("card")
	card.SetTransformOrigin("0 0")
	card.SetTransform(matrix.Scale(2, 2))
	card.SetOpacity(0.5)

	dot := ToDOT(doc, Options{Detailed: true})

	for _, want := range []string{
		`rect: 0,0 100x100`,
		`matrix(2, 0, 0, 2, 0, 0)`,
		`origin: 0 0`,
		`opacity: 0.5`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTAnchored(t *testing.T) {
	doc := testDoc()
	doc.Node("card").Anchor(geom.Rect{Width: 50, Height: 50})

	dot := ToDOT(doc, Options{})
	if !strings.Contains(dot, "dashed\", fillcolor=lightgrey") {
		t.Errorf("anchored node not greyed:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("unexpected svg: %s", out)
	}
	if got := string(normalizeViewBox([]byte("<svg>"))); got != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
