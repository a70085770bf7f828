package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Line is one row of overlay text.
type Line struct {
	Text  string
	Face  font.Face
	Color color.RGBA
}

// Faces are the typefaces used by the caption panel.
type Faces struct {
	Label font.Face // Small caps section label
	Title font.Face // Member name
	Body  font.Face // Tagline and hint
}

// NewFaces loads the Go fonts at sizes scaled by dpr.
func NewFaces(dpr float32) (*Faces, error) {
	if dpr <= 0 {
		dpr = 1
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	face := func(f *opentype.Font, size float32) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size * dpr),
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var fs Faces
	if fs.Label, err = face(bold, 12); err != nil {
		return nil, err
	}
	if fs.Title, err = face(bold, 26); err != nil {
		return nil, err
	}
	if fs.Body, err = face(regular, 15); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Close releases the faces.
func (f *Faces) Close() {
	for _, face := range []font.Face{f.Label, f.Title, f.Body} {
		if face != nil {
			face.Close()
		}
	}
}

// Compose renders lines top to bottom onto a panel filled with bg. Empty
// lines are skipped; with nothing to draw it returns nil.
func Compose(lines []Line, padding int, bg color.RGBA) *image.RGBA {
	width, height := 0, 0
	drawn := lines[:0:0]
	for _, l := range lines {
		if l.Text == "" || l.Face == nil {
			continue
		}
		drawn = append(drawn, l)
		width = max(width, font.MeasureString(l.Face, l.Text).Ceil())
		height += l.Face.Metrics().Height.Ceil()
	}
	if len(drawn) == 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width+2*padding, height+2*padding))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	y := padding
	for _, l := range drawn {
		m := l.Face.Metrics()
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(l.Color),
			Face: l.Face,
			Dot:  fixed.P(padding, y+m.Ascent.Ceil()),
		}
		d.DrawString(l.Text)
		y += m.Height.Ceil()
	}
	return img
}
