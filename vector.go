package kinematics2d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector is a 2D vector. It is a plain value: assigning or passing a Vector
// copies it, and the exported fields may be set directly.
//
// Vectors are comparable with == (exact component equality) and may be used
// as map keys.
type Vector struct {
	X float64
	Y float64
}

// NewVector returns the vector (x, y).
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// ZeroVector returns (0, 0).
func ZeroVector() Vector {
	return Vector{}
}

// VectorFromCopy returns a copy of source.
func VectorFromCopy(source Vector) Vector {
	return source
}

// VectorFromArray builds a vector from a [x, y] array.
func VectorFromArray(a [2]float64) Vector {
	return Vector{X: a[0], Y: a[1]}
}

// VectorFromR2 converts a gonum r2.Vec.
func VectorFromR2(v r2.Vec) Vector {
	return Vector{X: v.X, Y: v.Y}
}

// Array returns the components as [x, y].
func (v Vector) Array() [2]float64 {
	return [2]float64{v.X, v.Y}
}

// R2 returns v as a gonum r2.Vec.
func (v Vector) R2() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(x: %v, y: %v)", v.X, v.Y)
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return VectorFromR2(r2.Add(v.R2(), o.R2()))
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return VectorFromR2(r2.Sub(v.R2(), o.R2()))
}

// Scale returns v * f.
func (v Vector) Scale(f float64) Vector {
	return VectorFromR2(r2.Scale(f, v.R2()))
}

// Div returns v / f. Division by zero follows IEEE semantics and yields
// infinite or NaN components.
func (v Vector) Div(f float64) Vector {
	return Vector{X: v.X / f, Y: v.Y / f}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Equal reports exact component equality.
func (v Vector) Equal(o Vector) bool {
	return v == o
}

// IsCloseTo reports whether both components are within Epsilon of o.
func (v Vector) IsCloseTo(o Vector) bool {
	return v.IsCloseToWithin(o, Epsilon)
}

// IsCloseToWithin reports whether both components are within epsilon of o.
func (v Vector) IsCloseToWithin(o Vector, epsilon float64) bool {
	return IsCloseWithin(v.X, o.X, epsilon) && IsCloseWithin(v.Y, o.Y, epsilon)
}

// Less orders vectors by magnitude.
func (v Vector) Less(o Vector) bool {
	return v.Magnitude() < o.Magnitude()
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return r2.Norm(v.R2())
}

// Angle returns the direction of v in (-Pi, Pi]. The zero vector, including
// one with negative-zero components, has angle 0.
func (v Vector) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	// atan2 gives -Pi for a negative-zero y on the negative x axis.
	if a := math.Atan2(v.Y, v.X); a != -Pi {
		return a
	}
	return Pi
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return r2.Dot(v.R2(), o.R2())
}

// AngleFrom returns the unsigned angle between v and o in [0, Pi].
// It returns 0 when either vector is zero.
func (v Vector) AngleFrom(o Vector) float64 {
	vm, om := v.Magnitude(), o.Magnitude()
	if vm == 0 || om == 0 {
		return 0
	}
	// Rounding can push the cosine just outside [-1, 1].
	cos := math.Max(-1, math.Min(1, o.Dot(v)/(om*vm)))
	return math.Acos(cos)
}

// Rotated returns v rotated counter-clockwise by angle radians.
func (v Vector) Rotated(angle float64) Vector {
	return VectorFromR2(r2.Rotate(v.R2(), angle, r2.Vec{}))
}

// Rotate rotates v in place.
func (v *Vector) Rotate(angle float64) {
	*v = v.Rotated(angle)
}

// Normalized returns the unit vector along v, or the zero vector if v is zero.
func (v Vector) Normalized() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Vector{}
	}
	return v.Div(m)
}

// Normalize scales v to unit length in place. A zero vector is left as is.
func (v *Vector) Normalize() {
	*v = v.Normalized()
}

// ScaledTo returns the vector along v with the given length. A zero vector
// stays zero.
func (v Vector) ScaledTo(length float64) Vector {
	return v.Normalized().Scale(length)
}

// ProjectedTo returns the projection of v onto the direction of o. Projecting
// onto the zero vector gives the zero vector.
func (v Vector) ProjectedTo(o Vector) Vector {
	m := o.Magnitude()
	if m == 0 {
		return Vector{}
	}
	return o.Normalized().Scale(v.Dot(o) / m)
}

// ProjectTo replaces v with its projection onto o.
func (v *Vector) ProjectTo(o Vector) {
	*v = v.ProjectedTo(o)
}
