// Package volume builds the convex volumes drawn around groups of points.
//
// Two vertices give a line segment, three give a single triangle in input
// order, and four or more run a 3D convex hull. Face normals for hulls are
// oriented with the witness-vertex rule in normals.go.
package volume

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/metric"
)

var (
	// ErrTooFewPoints is returned when fewer than two vertices are supplied.
	ErrTooFewPoints = errors.New("volume requires at least 2 points")
	// ErrInvalidVertex is returned for vertices with NaN or infinite components.
	ErrInvalidVertex = errors.New("invalid vertex")
)

// Face indexes three vertices of a Volume in winding order
type Face struct {
	A, B, C int
}

// Volume is an immutable convex polyhedron, triangle or segment
type Volume struct {
	Vertices []geometry.Vector3
	Faces    []Face
	Normals  []geometry.Vector3 // one unit normal per face
}

// Build constructs a volume from Cartesian vertices.
func Build(vertices []geometry.Vector3) (*Volume, error) {
	if len(vertices) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(vertices))
	}
	for i, v := range vertices {
		if !finite(v) {
			return nil, fmt.Errorf("%w: index %d %v", ErrInvalidVertex, i, v)
		}
	}

	switch len(vertices) {
	case 2:
		return &Volume{Vertices: clone(vertices)}, nil
	case 3:
		vol := &Volume{
			Vertices: clone(vertices),
			Faces:    []Face{{A: 0, B: 1, C: 2}},
		}
		vol.Normals = []geometry.Vector3{vol.Triangle(0).Normal()}
		return vol, nil
	}

	used, faces := convexHull(vertices)
	vol := reindex(vertices, used, faces)
	orientFaces(vol)
	return vol, nil
}

// BuildFromMetrics projects each metric and builds the volume
func BuildFromMetrics(metrics []metric.ColourMetric) (*Volume, error) {
	vertices := make([]geometry.Vector3, 0, len(metrics))
	for i, m := range metrics {
		v, err := m.Cartesian()
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		vertices = append(vertices, v)
	}
	return Build(vertices)
}

// IsSegment reports whether the volume degenerated to a line
func (v *Volume) IsSegment() bool {
	return len(v.Faces) == 0
}

// Triangle returns face i as a geometry.Triangle
func (v *Volume) Triangle(i int) geometry.Triangle {
	f := v.Faces[i]
	return geometry.NewTriangle(v.Vertices[f.A], v.Vertices[f.B], v.Vertices[f.C])
}

// Centroid returns the mean of the vertices
func (v *Volume) Centroid() geometry.Vector3 {
	var sum geometry.Vector3
	for _, p := range v.Vertices {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(v.Vertices)))
}

// Edges returns each undirected edge once, in first-seen order.
// A segment volume yields its single edge.
func (v *Volume) Edges() [][2]int {
	if v.IsSegment() {
		if len(v.Vertices) < 2 {
			return nil
		}
		return [][2]int{{0, 1}}
	}

	seen := make(map[[2]int]bool)
	var edges [][2]int
	for _, f := range v.Faces {
		for _, e := range [][2]int{{f.A, f.B}, {f.B, f.C}, {f.C, f.A}} {
			key := e
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, key)
			}
		}
	}
	return edges
}

// reindex keeps only the used input vertices, in input order
func reindex(points []geometry.Vector3, used []int, faces []Face) *Volume {
	mapping := make(map[int]int, len(used))
	vol := &Volume{Vertices: make([]geometry.Vector3, 0, len(used))}
	for _, idx := range used {
		mapping[idx] = len(vol.Vertices)
		vol.Vertices = append(vol.Vertices, points[idx])
	}
	vol.Faces = make([]Face, 0, len(faces))
	for _, f := range faces {
		vol.Faces = append(vol.Faces, Face{A: mapping[f.A], B: mapping[f.B], C: mapping[f.C]})
	}
	return vol
}

func clone(vertices []geometry.Vector3) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(vertices))
	copy(out, vertices)
	return out
}

func finite(v geometry.Vector3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
