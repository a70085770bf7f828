package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestQuadVertices(t *testing.T) {
	v := quadVertices(0, 0, 50, 25, 100, 50)
	require.Len(t, v, 24)

	// Top-left corner
	assert.Equal(t, []float32{-1, 1, 0, 0}, v[0:4])
	// Bottom-right corner lands at the viewport center
	assert.Equal(t, []float32{0, 0, 1, 1}, v[8:12])
}

func TestComposeSkipsEmptyLines(t *testing.T) {
	face := basicfont.Face7x13
	white := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 128}

	img := Compose([]Line{
		{Text: "CORE TEAM", Face: face, Color: white},
		{Text: "", Face: face, Color: white},
		{Text: "Ada", Face: face, Color: white},
	}, 4, bg)
	require.NotNil(t, img)

	// 9 glyphs of 7px plus padding, two 13px lines plus padding
	assert.Equal(t, 9*7+8, img.Bounds().Dx())
	assert.Equal(t, 2*13+8, img.Bounds().Dy())
	assert.Equal(t, bg, img.RGBAAt(0, 0))
}

func TestComposeNothing(t *testing.T) {
	assert.Nil(t, Compose(nil, 4, color.RGBA{}))
	assert.Nil(t, Compose([]Line{{Text: "no face"}}, 4, color.RGBA{}))
}

func TestNewFaces(t *testing.T) {
	small, err := NewFaces(1)
	require.NoError(t, err)
	defer small.Close()

	large, err := NewFaces(2)
	require.NoError(t, err)
	defer large.Close()

	assert.Greater(t, large.Title.Metrics().Height, small.Title.Metrics().Height)
	assert.Greater(t, small.Title.Metrics().Height, small.Body.Metrics().Height)
}
