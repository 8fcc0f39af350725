// Package analysis measures convex volumes: extent, surface, enclosed volume
// and edge statistics.
package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/volume"
)

// EdgeInfo is one undirected hull edge
type EdgeInfo struct {
	A, B   int // vertex indices
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// MeasurementResult contains the measurements of a volume
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64 // enclosed volume, zero for flat results
	SurfaceArea   float64 // one side of each face
	VertexCount   int
	FaceCount     int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// AnalyzeVolume measures vol
func AnalyzeVolume(vol *volume.Volume) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: geometry.NewBoundingBox(),
		VertexCount: len(vol.Vertices),
		FaceCount:   len(vol.Faces),
	}
	for _, v := range vol.Vertices {
		result.BoundingBox.Extend(v)
	}
	result.Dimensions = result.BoundingBox.Size()

	// signed tetrahedra against the centroid; outward faces make every term positive
	centroid := vol.Centroid()
	for i := range vol.Faces {
		tri := vol.Triangle(i)
		result.SurfaceArea += tri.Area()
		a, b, c := tri.A.Sub(centroid), tri.B.Sub(centroid), tri.C.Sub(centroid)
		result.Volume += a.Dot(b.Cross(c)) / 6
	}
	result.Volume = math.Abs(result.Volume)

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, e := range vol.Edges() {
		start, end := vol.Vertices[e[0]], vol.Vertices[e[1]]
		length := start.Distance(end)
		result.AllEdges = append(result.AllEdges, EdgeInfo{A: e[0], B: e[1], Start: start, End: end, Length: length})

		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) int { return cmp.Compare(b.Length, a.Length) })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) int { return cmp.Compare(a.Length, b.Length) })
}

func sortedEdges(result *MeasurementResult, count int, compare func(a, b EdgeInfo) int) []EdgeInfo {
	edges := slices.Clone(result.AllEdges)
	slices.SortStableFunc(edges, compare)
	return edges[:max(0, min(count, len(edges)))]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
