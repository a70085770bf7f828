package framebuffer

import "testing"

func TestFlipRows(t *testing.T) {
	// 1x3 image, bottom row first as GL returns it
	pixels := []byte{
		1, 1, 1, 255,
		2, 2, 2, 255,
		3, 3, 3, 255,
	}

	img := FlipRows(pixels, 1, 3)

	for y, want := range []uint8{3, 2, 1} {
		if got := img.RGBAAt(0, y).R; got != want {
			t.Errorf("row %d: R = %d, want %d", y, got, want)
		}
	}
}
