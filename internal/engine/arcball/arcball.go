// Package arcball implements the drag-to-rotate controller for the sphere
// menu. Pointer events only buffer positions; all rotation math runs in
// Update, once per frame, so the controller can be stepped deterministically.
package arcball

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/teamsphere/pkg/math"
)

// Tuning constants.
const (
	// Squared pointer delta (after intensity scaling) below which a drag
	// frame counts as stationary.
	dragEpsilon = 0.1

	dragIntensity      = 0.3
	dragAmplification  = 5.0
	idleIntensity      = 0.1
	snapIntensity      = 0.2
	minSnapFactor      = 0.1
	snapDistanceWeight = 10.0

	axisFilterIntensity     = 0.8
	velocityFilterIntensity = 0.5

	projectionRadius = 2.0
)

// State is the pointer state of the controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller accumulates pointer drags into a sphere orientation, decays it
// when released and rotates a chosen direction toward the viewer.
type Controller struct {
	width, height float32

	state       State
	pointer     math.Vec2
	prevPointer math.Vec2

	orientation     math.Quat
	pointerRotation math.Quat
	filtered        math.Quat

	rotationAxis     math.Vec3
	rotationVelocity float32
	filteredVelocity float32

	snapDirection math.Vec3
	snapTarget    math.Vec3
	hasSnapTarget bool
}

// New returns an idle controller for a surface of the given logical size.
func New(width, height float32) *Controller {
	return &Controller{
		width:           width,
		height:          height,
		orientation:     math.QuatIdentity(),
		pointerRotation: math.QuatIdentity(),
		filtered:        math.QuatIdentity(),
		rotationAxis:    math.Vec3{X: 1},
		snapDirection:   math.Vec3{Z: -1},
	}
}

// SetViewport updates the logical surface size used by the drag projection.
func (c *Controller) SetViewport(width, height float32) {
	c.width = width
	c.height = height
}

// PointerDown starts a drag at (x, y).
func (c *Controller) PointerDown(x, y float32) {
	c.pointer = math.Vec2{X: x, Y: y}
	c.prevPointer = c.pointer
	c.state = Dragging
}

// PointerMove records the latest position. Ignored unless dragging.
func (c *Controller) PointerMove(x, y float32) {
	if c.state == Dragging {
		c.pointer = math.Vec2{X: x, Y: y}
	}
}

// PointerUp ends the drag.
func (c *Controller) PointerUp() {
	c.state = Idle
}

// PointerLeave ends the drag when the pointer exits the surface.
func (c *Controller) PointerLeave() {
	c.state = Idle
}

// State reports whether a drag is in progress.
func (c *Controller) State() State {
	return c.state
}

// Dragging is shorthand for State() == Dragging.
func (c *Controller) Dragging() bool {
	return c.state == Dragging
}

// Orientation returns the accumulated unit rotation of the sphere.
func (c *Controller) Orientation() math.Quat {
	return c.orientation
}

// RotationAxis returns the low-pass filtered axis of the current spin.
func (c *Controller) RotationAxis() math.Vec3 {
	return c.rotationAxis
}

// RotationVelocity returns the filtered spin speed in turns per target frame.
func (c *Controller) RotationVelocity() float32 {
	return c.rotationVelocity
}

// SetSnapTarget sets the world direction that idle frames rotate toward the
// snap direction (0, 0, -1).
func (c *Controller) SetSnapTarget(dir math.Vec3) {
	c.snapTarget = dir
	c.hasSnapTarget = true
}

// ClearSnapTarget disables snapping.
func (c *Controller) ClearSnapTarget() {
	c.hasSnapTarget = false
}

// SnapTarget returns the current snap target, if any.
func (c *Controller) SnapTarget() (math.Vec3, bool) {
	return c.snapTarget, c.hasSnapTarget
}

// Update advances the controller by dt milliseconds. targetFrame is the
// nominal frame duration in milliseconds that dt is normalized against.
func (c *Controller) Update(dt, targetFrame float32) {
	timeScale := dt/targetFrame + 0.00001
	angleFactor := timeScale
	snapRotation := math.QuatIdentity()

	if c.state == Dragging {
		intensity := dragIntensity * timeScale
		amplification := dragAmplification / timeScale

		mid := c.pointer.Sub(c.prevPointer).Scale(intensity)
		if mid.LengthSq() > dragEpsilon {
			mid = c.prevPointer.Add(mid)

			a := c.project(mid).Normalize()
			b := c.project(c.prevPointer).Normalize()
			c.prevPointer = mid

			angleFactor *= amplification
			c.pointerRotation = math.QuatBetween(a, b, angleFactor)
		} else {
			c.pointerRotation = c.pointerRotation.Slerp(math.QuatIdentity(), intensity)
		}
	} else {
		c.pointerRotation = c.pointerRotation.Slerp(math.QuatIdentity(), idleIntensity*timeScale)

		if c.hasSnapTarget {
			sqrDist := c.snapTarget.DistanceSq(c.snapDirection)
			distanceFactor := math32.Max(minSnapFactor, 1-sqrDist*snapDistanceWeight)
			angleFactor *= snapIntensity * distanceFactor
			snapRotation = math.QuatBetween(c.snapTarget, c.snapDirection, angleFactor)
		}
	}

	combined := snapRotation.Mul(c.pointerRotation)
	c.orientation = combined.Mul(c.orientation).Normalize()

	c.filtered = c.filtered.Slerp(combined, axisFilterIntensity*timeScale).Normalize()

	var rv float32
	if axis, angle, ok := c.filtered.AxisAngle(); ok {
		rv = angle / (2 * math32.Pi)
		c.rotationAxis = axis
	}

	c.filteredVelocity += (rv - c.filteredVelocity) * velocityFilterIntensity * timeScale
	c.rotationVelocity = c.filteredVelocity / timeScale
}

// project maps a surface position onto a virtual trackball: a sphere of
// radius 2 near the center, blending into a hyperbolic sheet further out.
func (c *Controller) project(p math.Vec2) math.Vec3 {
	s := math32.Max(c.width, c.height) - 1
	if s <= 0 {
		s = 1
	}

	x := (2*p.X - c.width - 1) / s
	y := (2*p.Y - c.height - 1) / s

	xySq := x*x + y*y
	rSq := float32(projectionRadius * projectionRadius)

	var z float32
	if xySq <= rSq/2 {
		z = math32.Sqrt(rSq - xySq)
	} else {
		z = rSq / math32.Sqrt(xySq)
	}
	return math.Vec3{X: -x, Y: y, Z: z}
}
