package menu

import "github.com/Faultbox/teamsphere/pkg/math"

// forward is the direction, in world space, an item must face to be active.
var forward = math.Vec3{Z: -1}

// nearestAnchor returns the index of the anchor closest to the forward
// direction once the sphere is rotated by orientation. Ties go to the lowest
// index.
func nearestAnchor(anchors []math.Vec3, orientation math.Quat) int {
	target := orientation.Conjugate().Rotate(forward)

	nearest := 0
	maxDot := float32(-1)
	for i, p := range anchors {
		if d := target.Dot(p); d > maxDot {
			maxDot = d
			nearest = i
		}
	}
	return nearest
}

// itemForAnchor maps an anchor to an item, cycling when there are more
// anchors than items.
func itemForAnchor(anchor, itemCount int) int {
	if itemCount < 1 {
		itemCount = 1
	}
	return anchor % itemCount
}
