package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the fixed global vertical axis.
var Up = Vector3{X: 0, Y: 1, Z: 0}

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + other
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul scales the vector
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Neg returns -v
func (v Vector3) Neg() Vector3 {
	return v.Mul(-1)
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v × other
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared avoids the square root when only comparisons are needed
func (v Vector3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// DistanceSquared returns the squared distance between two points
func (v Vector3) DistanceSquared(other Vector3) float64 {
	return v.Sub(other).LengthSquared()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// IsZero reports whether every component is exactly zero
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ApproxEqual compares component-wise within tolerance
func (v Vector3) ApproxEqual(other Vector3, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{X: math.Min(v.X, other.X), Y: math.Min(v.Y, other.Y), Z: math.Min(v.Z, other.Z)}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{X: math.Max(v.X, other.X), Y: math.Max(v.Y, other.Y), Z: math.Max(v.Z, other.Z)}
}

// Rotate rotates v by angle radians about axis using the right-hand rule.
// The axis does not need to be normalized; a zero axis leaves v unchanged.
func (v Vector3) Rotate(axis Vector3, angle float64) Vector3 {
	if angle == 0 || axis.IsZero() {
		return v
	}
	rot := r3.NewRotation(angle, r3.Vec{X: axis.X, Y: axis.Y, Z: axis.Z})
	p := rot.Rotate(r3.Vec{X: v.X, Y: v.Y, Z: v.Z})
	return Vector3{X: p.X, Y: p.Y, Z: p.Z}
}

// Elevation returns the angle between v and the horizontal plane, in radians
func (v Vector3) Elevation() float64 {
	length := v.Length()
	if length == 0 {
		return 0
	}
	return math.Asin(math.Max(-1, math.Min(1, v.Y/length)))
}

// DistanceToLine returns the perpendicular distance from v to the infinite line
// through origin with the given direction. direction must be non-zero.
func (v Vector3) DistanceToLine(origin, direction Vector3) float64 {
	return v.Sub(origin).Cross(direction).Length() / direction.Length()
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
