package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFill(t *testing.T) {
	assert.Equal(t, "#ff0000", Fill("#ff0000", 3).Hex())
	assert.Equal(t, Palette[1], Fill("", 1).Hex())
	assert.Equal(t, Palette[0], Fill("not-a-color", len(Palette)).Hex(), "cycles the palette")
}

func TestBlend(t *testing.T) {
	red := Fill("#ff0000", 0)

	assert.Equal(t, "#ff0000", Blend(red, 1).Hex())
	assert.Equal(t, Background, Blend(red, 0).Hex())
	assert.Equal(t, Background, Blend(red, -2).Hex(), "clamped")

	half := Blend(red, 0.5)
	assert.Greater(t, half.R, 0.4)
	assert.Less(t, half.R, 0.6)
}
