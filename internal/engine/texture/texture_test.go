package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, c color.RGBA, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, 24bpp, rows stored bottom row first
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, rgba.RGBAAt(1, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, 32bpp, top-down: run of two red then one raw blue
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 0, 0, 255, 128,
		0x00, 255, 0, 0, 255,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)

	assert.Equal(t, color.RGBA{255, 0, 0, 128}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 128}, rgba.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba.RGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	_, err := DecodeTGA([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = DecodeTGA(tgaHeader(1, 1, 1, 24, 0))
	assert.Error(t, err, "color-mapped type")

	_, err = DecodeTGA(tgaHeader(TGATypeUncompressed, 1, 1, 16, 0))
	assert.Error(t, err, "16bpp")

	_, err = DecodeTGA(tgaHeader(TGATypeUncompressed, 4, 4, 24, 0))
	assert.Error(t, err, "truncated pixels")
}

func TestDecodeByExtension(t *testing.T) {
	tga := append(tgaHeader(TGATypeUncompressed, 1, 1, 24, 0), 10, 20, 30)
	img, err := Decode(tga, "https://cdn.example.com/face.TGA?v=2")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{30, 20, 10, 255}, ToRGBA(img).RGBAAt(0, 0))

	img, err = Decode(solidPNG(t, color.RGBA{1, 2, 3, 255}, 2, 2), "face.png")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, ToRGBA(img).RGBAAt(1, 1))

	_, err = Decode([]byte("not an image"), "face.jpg")
	assert.Error(t, err)
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{9, 9, 9, 255})

	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, color.RGBA{9, 9, 9, 255}, out.RGBAAt(0, 0))
}

func TestGridSide(t *testing.T) {
	tests := []struct{ n, want int }{
		{-1, 1}, {0, 1}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4}, {16, 4}, {17, 5}, {42, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GridSide(tt.n), "GridSide(%d)", tt.n)
	}
}

// assertNear allows for rounding in the bilinear scaler.
func assertNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)
	assert.InDelta(t, want.A, got.A, 2)
}

type fakeFetcher struct {
	data    map[string][]byte
	release chan struct{}
}

func (f *fakeFetcher) Load(ctx context.Context, ref string) ([]byte, error) {
	switch ref {
	case "stall":
		<-f.release // ignores ctx on purpose
		return nil, errors.New("released")
	case "broken":
		return nil, errors.New("boom")
	}
	if d, ok := f.data[ref]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func TestBuildAtlas(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	fallback := color.RGBA{1, 2, 3, 255}

	f := &fakeFetcher{
		data: map[string][]byte{
			"red.png":   solidPNG(t, red, 4, 4),
			"green.png": solidPNG(t, green, 16, 8),
		},
		release: make(chan struct{}),
	}
	defer close(f.release)

	b := NewAtlasBuilder(f, AtlasConfig{
		CellSize:    8,
		LoadTimeout: 50 * time.Millisecond,
		Concurrency: 2,
		Fallback:    fallback,
	})

	refs := []string{"red.png", "stall", "green.png", "broken", "missing.png"}
	atlas, err := b.Build(context.Background(), refs)
	require.NoError(t, err)

	assert.Equal(t, 3, atlas.Side)
	assert.Equal(t, 5, atlas.Count)
	assert.Equal(t, image.Rect(0, 0, 24, 24), atlas.Image.Bounds())

	center := func(i int) color.RGBA {
		r := atlas.CellRect(i)
		return atlas.Image.RGBAAt(r.Min.X+4, r.Min.Y+4)
	}
	assertNear(t, red, center(0))
	assert.Equal(t, fallback, center(1))
	assertNear(t, green, center(2))
	assert.Equal(t, fallback, center(3))
	assert.Equal(t, fallback, center(4))

	// Unused cells stay transparent
	assert.Equal(t, color.RGBA{}, center(8))

	failed := append([]int(nil), atlas.Failed...)
	sort.Ints(failed)
	assert.Equal(t, []int{1, 3, 4}, failed)

	assert.Equal(t, image.Rect(8, 8, 16, 16), atlas.CellRect(4))
}

func TestBuildAtlasCancelled(t *testing.T) {
	f := &fakeFetcher{release: make(chan struct{})}
	defer close(f.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewAtlasBuilder(f, AtlasConfig{CellSize: 4, LoadTimeout: time.Second})
	_, err := b.Build(ctx, []string{"stall", "broken"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAtlasBuilderDefaults(t *testing.T) {
	b := NewAtlasBuilder(&fakeFetcher{}, AtlasConfig{})
	assert.Equal(t, DefaultAtlasConfig(), b.cfg)
}
