package menu

import (
	"github.com/Faultbox/teamsphere/internal/engine/geometry"
	"github.com/Faultbox/teamsphere/internal/engine/texture"
)

// Options tunes the sphere. Zero fields take the defaults, except
// Subdivisions: zero is a valid level and gives the bare 12-anchor
// icosahedron. Start from DefaultOptions for the standard 42-anchor sphere.
type Options struct {
	DiscScale    float32
	SphereRadius float32
	DiscSteps    int
	Subdivisions int
	MaxDPR       float32
	ClearColor   [4]float32
	Atlas        texture.AtlasConfig

	// OnInit runs once at the end of New.
	OnInit func(*Menu)
}

// DefaultOptions returns the standard layout: radius 2, one subdivision,
// 56-step discs at 0.18 scale.
func DefaultOptions() Options {
	return Options{
		DiscScale:    0.18,
		SphereRadius: 2,
		DiscSteps:    56,
		Subdivisions: 1,
		MaxDPR:       2,
		ClearColor:   [4]float32{0.98, 0.99, 1, 1},
		Atlas:        texture.DefaultAtlasConfig(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DiscScale <= 0 {
		o.DiscScale = def.DiscScale
	}
	if o.SphereRadius <= 0 {
		o.SphereRadius = def.SphereRadius
	}
	if o.DiscSteps <= 0 {
		o.DiscSteps = def.DiscSteps
	}
	if o.DiscSteps < geometry.MinDiscSteps {
		o.DiscSteps = geometry.MinDiscSteps
	}
	if o.Subdivisions < 0 {
		o.Subdivisions = 0
	}
	if o.MaxDPR <= 0 {
		o.MaxDPR = def.MaxDPR
	}
	if o.ClearColor == ([4]float32{}) {
		o.ClearColor = def.ClearColor
	}
	return o
}
