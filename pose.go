package kinematics2d

import (
	"fmt"
	"math"
)

// Pose is a position and orientation: the rigid transform of one frame
// relative to another.
type Pose struct {
	Position    Vector
	Orientation float64 // radians, not capped
}

// NewPose returns a pose at position with the given orientation.
func NewPose(position Vector, orientation float64) Pose {
	return Pose{Position: position, Orientation: orientation}
}

// ZeroPose returns the identity transform.
func ZeroPose() Pose {
	return Pose{}
}

// PoseFromCopy returns a copy of source.
func PoseFromCopy(source Pose) Pose {
	return source
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose(pos: %v, ort: %v)", p.Position, p.Orientation)
}

// Add composes o, expressed in p's frame, onto p. The result is o in the
// frame p is expressed in. Not commutative.
func (p Pose) Add(o Pose) Pose {
	return Pose{
		Position:    p.Position.Add(o.Position.Rotated(p.Orientation)),
		Orientation: p.Orientation + o.Orientation,
	}
}

// Sub expresses p relative to the frame described by o. It undoes Add:
// o.Add(p.Sub(o)) and o.Add(p).Sub(o) both give back p.
func (p Pose) Sub(o Pose) Pose {
	return Pose{
		Position:    p.Position.Sub(o.Position).Rotated(-o.Orientation),
		Orientation: p.Orientation - o.Orientation,
	}
}

// Capped returns p with its orientation mapped into (-Pi, Pi].
func (p Pose) Capped() Pose {
	return Pose{Position: p.Position, Orientation: AngleCap(p.Orientation)}
}

// IsAtPosition reports whether p is within Epsilon of target.
func (p Pose) IsAtPosition(target Vector) bool {
	return p.IsAtPositionWithin(target, Epsilon)
}

// IsAtPositionWithin reports whether the distance from p to target is at most
// tolerance.
func (p Pose) IsAtPositionWithin(target Vector, tolerance float64) bool {
	return target.Sub(p.Position).Magnitude() <= tolerance
}

// IsAtOrientation reports whether p faces target within Epsilon.
func (p Pose) IsAtOrientation(target float64) bool {
	return p.IsAtOrientationWithin(target, Epsilon)
}

// IsAtOrientationWithin compares orientations modulo a full turn, so values
// either side of +-Pi compare as neighbours.
func (p Pose) IsAtOrientationWithin(target, tolerance float64) bool {
	return math.Abs(AngleDiff(p.Orientation, target)) <= tolerance
}

// IsAt reports whether p matches target in both position and orientation
// within Epsilon.
func (p Pose) IsAt(target Pose) bool {
	return p.IsAtWithin(target, Epsilon, Epsilon)
}

// IsAtWithin is IsAt with explicit tolerances.
func (p Pose) IsAtWithin(target Pose, posTolerance, ortTolerance float64) bool {
	return p.IsAtPositionWithin(target.Position, posTolerance) &&
		p.IsAtOrientationWithin(target.Orientation, ortTolerance)
}
