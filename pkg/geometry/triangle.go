package geometry

// Triangle is a face given by three corners in winding order
type Triangle struct {
	A, B, C Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Vector3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Normal returns the unit normal (B-A) × (C-A).
// Degenerate triangles return the zero vector.
func (t Triangle) Normal() Vector3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// EdgeLengths returns the lengths of AB, BC and CA
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.A.Distance(t.B),
		t.B.Distance(t.C),
		t.C.Distance(t.A),
	}
}
