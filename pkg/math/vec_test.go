package math

import (
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"add", Vec2{1, 2}.Add(Vec2{3, 4}), Vec2{4, 6}},
		{"sub", Vec2{5, 1}.Sub(Vec2{2, 3}), Vec2{3, -2}},
		{"scale", Vec2{1.5, -2}.Scale(2), Vec2{3, -4}},
		{"scale by zero", Vec2{7, 8}.Scale(0), Vec2{}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestVec2Length(t *testing.T) {
	tests := []struct {
		v        Vec2
		lengthSq float32
		length   float32
	}{
		{Vec2{3, 4}, 25, 5},
		{Vec2{-3, 4}, 25, 5},
		{Vec2{}, 0, 0},
		{Vec2{0, -2}, 4, 2},
	}

	for _, tt := range tests {
		if got := tt.v.LengthSq(); got != tt.lengthSq {
			t.Errorf("%v.LengthSq() = %v, want %v", tt.v, got, tt.lengthSq)
		}
		if got := tt.v.Length(); got != tt.length {
			t.Errorf("%v.Length() = %v, want %v", tt.v, got, tt.length)
		}
	}
}

func TestVec2Normalize(t *testing.T) {
	n := Vec2{3, 4}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero Vec2.Normalize() = %v, want zero", got)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", Vec3{1, 2, 3}.Add(Vec3{4, 5, 6}), Vec3{5, 7, 9}},
		{"sub", Vec3{1, 2, 3}.Sub(Vec3{3, 2, 1}), Vec3{-2, 0, 2}},
		{"scale", Vec3{1, -2, 0.5}.Scale(-2), Vec3{-2, 4, -1}},
		{"negate", Vec3{1, -2, 3}.Negate(), Vec3{-1, 2, -3}},
		{"negate zero", Vec3{}.Negate(), Vec3{}},
		{"cross x y", Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}), Vec3{0, 0, 1}},
		{"cross y x", Vec3{0, 1, 0}.Cross(Vec3{1, 0, 0}), Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestVec3Distance(t *testing.T) {
	tests := []struct {
		a, b       Vec3
		distanceSq float32
		distance   float32
	}{
		{Vec3{}, Vec3{}, 0, 0},
		{Vec3{1, 2, 3}, Vec3{1, 2, 3}, 0, 0},
		{Vec3{0, 0, 0}, Vec3{2, 3, 6}, 49, 7},
		{Vec3{1, 1, 1}, Vec3{-1, 1, 1}, 4, 2},
	}

	for _, tt := range tests {
		if got := tt.a.DistanceSq(tt.b); got != tt.distanceSq {
			t.Errorf("%v.DistanceSq(%v) = %v, want %v", tt.a, tt.b, got, tt.distanceSq)
		}
		if got := tt.b.DistanceSq(tt.a); got != tt.distanceSq {
			t.Errorf("%v.DistanceSq(%v) = %v, want %v", tt.b, tt.a, got, tt.distanceSq)
		}
		if got := tt.a.Distance(tt.b); got != tt.distance {
			t.Errorf("%v.Distance(%v) = %v, want %v", tt.a, tt.b, got, tt.distance)
		}
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		v    Vec3
		want Vec3
	}{
		{Vec3{0, 0, -5}, Vec3{0, 0, -1}},
		{Vec3{2, 0, 0}, Vec3{1, 0, 0}},
		{Vec3{}, Vec3{}},
	}

	for _, tt := range tests {
		if got := tt.v.Normalize(); got != tt.want {
			t.Errorf("%v.Normalize() = %v, want %v", tt.v, got, tt.want)
		}
	}

	n := Vec3{1, 2, 2}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}
