package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box ready to be extended
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// NewCube creates a box centred on the origin with the given half-extent
func NewCube(halfExtent float64) BoundingBox {
	return BoundingBox{
		Min: Vector3{X: -halfExtent, Y: -halfExtent, Z: -halfExtent},
		Max: Vector3{X: halfExtent, Y: halfExtent, Z: halfExtent},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Contains reports whether the point lies inside or on the box
func (b BoundingBox) Contains(point Vector3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// Clamp moves each component of point into the box
func (b BoundingBox) Clamp(point Vector3) Vector3 {
	return point.Max(b.Min).Min(b.Max)
}
