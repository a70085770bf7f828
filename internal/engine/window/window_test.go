package window

import "testing"

func TestPixelRatio(t *testing.T) {
	tests := []struct {
		name              string
		logical, drawable int
		want              float32
	}{
		{"standard", 1280, 1280, 1},
		{"retina", 1280, 2560, 2},
		{"fractional", 1000, 1500, 1.5},
		{"zero logical", 0, 100, 1},
		{"zero drawable", 100, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelRatio(tt.logical, tt.drawable); got != tt.want {
				t.Errorf("PixelRatio(%d, %d) = %v, want %v", tt.logical, tt.drawable, got, tt.want)
			}
		})
	}
}
