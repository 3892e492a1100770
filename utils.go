// Package kinematics2d provides 2D vectors, poses and rigid-body kinematics
// with coordinate-frame composition and simple motion prediction.
//
// Angles are in radians and positive angles rotate counter-clockwise.
// Orientations are left unbounded by arithmetic; use AngleCap or Pose.Capped
// to bring them back into (-Pi, Pi].
package kinematics2d

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// Pi is math.Pi, re-exported so callers need not import math.
	Pi = math.Pi

	// Epsilon is the default absolute tolerance for float comparisons.
	Epsilon = 1e-9
)

// IsClose reports whether a and b differ by at most Epsilon.
func IsClose(a, b float64) bool {
	return IsCloseWithin(a, b, Epsilon)
}

// IsCloseWithin reports whether |a-b| <= epsilon. A negative epsilon only
// matches exactly equal values.
func IsCloseWithin(a, b, epsilon float64) bool {
	return scalar.EqualWithinAbs(a, b, epsilon)
}

// RadFromDeg converts degrees to radians.
func RadFromDeg(v float64) float64 {
	return v * Pi / 180
}

// DegFromRad converts radians to degrees.
func DegFromRad(v float64) float64 {
	return v * 180 / Pi
}

// AngleCap maps any angle in radians into the range (-Pi, Pi].
func AngleCap(value float64) float64 {
	r := math.Mod(value, 2*Pi)
	switch {
	case r > Pi:
		r -= 2 * Pi
	case r <= -Pi:
		r += 2 * Pi
	}
	return r
}

// AngleDiff returns the signed shortest rotation that takes origin onto
// target, in (-Pi, Pi]. A positive result means target is counter-clockwise
// of origin.
func AngleDiff(target, origin float64) float64 {
	return AngleCap(AngleCap(target) - AngleCap(origin))
}
