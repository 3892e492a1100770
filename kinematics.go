package kinematics2d

import (
	"fmt"
	"time"
)

// Kinematics is a pose together with its first derivatives.
type Kinematics struct {
	Position    Vector
	Orientation float64 // radians
	Velocity    Vector  // per second, in the same frame as Position
	Rotation    float64 // radians per second
}

// NewKinematics builds a Kinematics from its fields.
func NewKinematics(position Vector, orientation float64, velocity Vector, rotation float64) Kinematics {
	return Kinematics{
		Position:    position,
		Orientation: orientation,
		Velocity:    velocity,
		Rotation:    rotation,
	}
}

// KinematicsFromPose attaches velocity and rotation to pose.
func KinematicsFromPose(pose Pose, velocity Vector, rotation float64) Kinematics {
	return NewKinematics(pose.Position, pose.Orientation, velocity, rotation)
}

// KinematicsFromCopy returns a copy of source.
func KinematicsFromCopy(source Kinematics) Kinematics {
	return source
}

// ZeroKinematics returns a body at rest at the origin.
func ZeroKinematics() Kinematics {
	return Kinematics{}
}

// Pose returns the position and orientation of k.
func (k Kinematics) Pose() Pose {
	return NewPose(k.Position, k.Orientation)
}

func (k Kinematics) String() string {
	return fmt.Sprintf("Kinematics(pos: %v, ort: %v, vel: %v, rot: %v)",
		k.Position, k.Orientation, k.Velocity, k.Rotation)
}

// Add composes o, expressed in k's frame, onto k. Velocity is rotated into
// k's frame like position; rotation rate is about the shared out-of-plane
// axis and is summed as is.
func (k Kinematics) Add(o Kinematics) Kinematics {
	return Kinematics{
		Position:    k.Position.Add(o.Position.Rotated(k.Orientation)),
		Orientation: k.Orientation + o.Orientation,
		Velocity:    k.Velocity.Add(o.Velocity.Rotated(k.Orientation)),
		Rotation:    k.Rotation + o.Rotation,
	}
}

// Sub expresses k relative to the frame described by o.
func (k Kinematics) Sub(o Kinematics) Kinematics {
	return Kinematics{
		Position:    k.Position.Sub(o.Position).Rotated(-o.Orientation),
		Orientation: k.Orientation - o.Orientation,
		Velocity:    k.Velocity.Sub(o.Velocity).Rotated(-o.Orientation),
		Rotation:    k.Rotation - o.Rotation,
	}
}

// Updated predicts k after deltaTime seconds at constant velocity and
// rotation. The displacement is rotated by the orientation change of the
// step, which approximates the body turning while it translates.
func (k Kinematics) Updated(deltaTime float64) Kinematics {
	deltaOrientation := k.Rotation * deltaTime
	deltaPosition := k.Velocity.Scale(deltaTime).Rotated(deltaOrientation)
	return Kinematics{
		Position:    k.Position.Add(deltaPosition),
		Orientation: k.Orientation + deltaOrientation,
		Velocity:    k.Velocity,
		Rotation:    k.Rotation,
	}
}

// Step is Updated for a time.Duration.
func (k Kinematics) Step(d time.Duration) Kinematics {
	return k.Updated(d.Seconds())
}

// DeltaPositionToStop returns the displacement covered while braking from the
// current velocity to rest at a constant deceleration of maxLinearDecel.
// A zero deceleration follows IEEE semantics, as Vector.Div does.
func (k Kinematics) DeltaPositionToStop(maxLinearDecel float64) Vector {
	speed := k.Velocity.Magnitude()
	return k.Velocity.Normalized().Scale(speed * speed).Div(2 * maxLinearDecel)
}

// DeltaOrientationToStop returns the signed angle swept while braking the
// rotation to zero at a constant deceleration of maxAngularDecel.
func (k Kinematics) DeltaOrientationToStop(maxAngularDecel float64) float64 {
	v := k.Rotation * k.Rotation / (2 * maxAngularDecel)
	if k.Rotation > 0 {
		return v
	}
	return -v
}
