package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/volume"
)

func unitCube(t *testing.T) *volume.Volume {
	t.Helper()
	var corners []geometry.Vector3
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				corners = append(corners, geometry.NewVector3(x, y, z))
			}
		}
	}
	vol, err := volume.Build(corners)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return vol
}

func TestAnalyzeCube(t *testing.T) {
	result := AnalyzeVolume(unitCube(t))

	if math.Abs(result.Volume-1) > 1e-9 {
		t.Errorf("Expected volume 1, got %f", result.Volume)
	}
	if math.Abs(result.SurfaceArea-6) > 1e-9 {
		t.Errorf("Expected surface area 6, got %f", result.SurfaceArea)
	}
	if result.FaceCount != 12 || result.VertexCount != 8 || result.EdgeCount != 18 {
		t.Errorf("Unexpected counts: %d faces, %d vertices, %d edges", result.FaceCount, result.VertexCount, result.EdgeCount)
	}
	if result.Dimensions != geometry.NewVector3(1, 1, 1) {
		t.Errorf("Expected unit dimensions, got %v", result.Dimensions)
	}
	if result.MinEdgeLength != 1 {
		t.Errorf("Expected min edge 1, got %f", result.MinEdgeLength)
	}
	if math.Abs(result.MaxEdgeLength-math.Sqrt2) > 1e-12 {
		t.Errorf("Expected max edge sqrt(2), got %f", result.MaxEdgeLength)
	}
}

func TestAnalyzeSegment(t *testing.T) {
	vol, err := volume.Build([]geometry.Vector3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}})
	if err != nil {
		t.Fatal(err)
	}
	result := AnalyzeVolume(vol)

	if result.Volume != 0 || result.SurfaceArea != 0 {
		t.Errorf("Segment should have no volume or area, got %f / %f", result.Volume, result.SurfaceArea)
	}
	if result.EdgeCount != 1 || result.AvgEdgeLength != 2 {
		t.Errorf("Expected one edge of length 2, got %d edges avg %f", result.EdgeCount, result.AvgEdgeLength)
	}
}

func TestFindEdges(t *testing.T) {
	result := AnalyzeVolume(unitCube(t))

	longest := FindLongestEdges(result, 3)
	if len(longest) != 3 {
		t.Fatalf("Expected 3 edges, got %d", len(longest))
	}
	for _, e := range longest {
		if math.Abs(e.Length-math.Sqrt2) > 1e-12 {
			t.Errorf("Expected diagonal edge, got %f", e.Length)
		}
	}

	shortest := FindShortestEdges(result, 100)
	if len(shortest) != result.EdgeCount {
		t.Errorf("Expected all %d edges, got %d", result.EdgeCount, len(shortest))
	}
	if shortest[0].Length != 1 {
		t.Errorf("Expected shortest edge 1, got %f", shortest[0].Length)
	}
	if len(FindShortestEdges(result, -1)) != 0 {
		t.Error("Negative count should return no edges")
	}
}
