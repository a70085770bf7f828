// Package camera provides the fixed-target camera that looks at the menu
// sphere from the +Z axis.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/teamsphere/pkg/math"
)

// Defaults for the sphere view.
const (
	DefaultDistance = 3.0
	DefaultNear     = 0.1
	DefaultFar      = 40.0

	// Fraction of the sphere radius kept in view along the short screen axis.
	viewHeightFactor = 0.35
)

// SphereCamera sits on the +Z axis looking at the origin. Only its distance
// changes at runtime; the projection follows the surface aspect ratio.
type SphereCamera struct {
	Position math.Vec3
	Up       math.Vec3
	Near     float32
	Far      float32
	FOV      float32 // Vertical, radians
	Aspect   float32

	sphereRadius float32
	view         math.Mat4
	projection   math.Mat4
}

// NewSphereCamera creates a camera framing a sphere of the given radius.
func NewSphereCamera(sphereRadius float32) *SphereCamera {
	c := &SphereCamera{
		Position:     math.Vec3{Z: DefaultDistance},
		Up:           math.Vec3{Y: 1},
		Near:         DefaultNear,
		Far:          DefaultFar,
		FOV:          math32.Pi / 4,
		Aspect:       1,
		sphereRadius: sphereRadius,
	}
	c.UpdateView()
	c.SetAspect(1)
	return c
}

// SetAspect recomputes the field of view and projection for a surface with
// the given width/height ratio. Portrait surfaces widen the vertical FOV so
// the sphere still fits horizontally.
func (c *SphereCamera) SetAspect(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	c.Aspect = aspect

	height := c.sphereRadius * viewHeightFactor
	distance := c.Position.Z
	if aspect > 1 {
		c.FOV = 2 * math32.Atan(height/distance)
	} else {
		c.FOV = 2 * math32.Atan(height/aspect/distance)
	}
	c.projection = math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// EaseDepth moves the camera a 1/damping step toward targetZ and refreshes
// the view matrix.
func (c *SphereCamera) EaseDepth(targetZ, damping float32) {
	c.Position.Z += (targetZ - c.Position.Z) / damping
	c.UpdateView()
}

// UpdateView recomputes the view matrix from the current position.
func (c *SphereCamera) UpdateView() {
	c.view = math.LookAt(c.Position, math.Vec3{}, c.Up)
}

// View returns the world-to-camera matrix.
func (c *SphereCamera) View() math.Mat4 {
	return c.view
}

// Projection returns the perspective matrix.
func (c *SphereCamera) Projection() math.Mat4 {
	return c.projection
}
