// Package picking casts rays from the screen into the scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/teamsphere/pkg/math"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts a surface position to a world-space ray. x and y are
// in the same units as width and height, origin top-left. invViewProj is the
// inverse of projection*view.
func ScreenToRay(x, y, width, height float32, invViewProj math.Mat4) Ray {
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectSphere returns the distance to the first hit with a sphere in
// front of the origin. A ray starting inside reports the exit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math32.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
