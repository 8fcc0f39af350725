package scene

import (
	"cmp"
	"slices"

	"github.com/philipparndt/tetraview/pkg/geometry"
)

// sortBackToFront orders points and shape faces by decreasing distance from eye.
// Equal distances keep insertion order.
func sortBackToFront(eye geometry.Vector3, points []Point, shapes []Shape) DrawOrder {
	order := DrawOrder{Points: make([]int, len(points))}
	for i := range points {
		order.Points[i] = i
	}
	slices.SortStableFunc(order.Points, func(a, b int) int {
		return cmp.Compare(points[b].pos.DistanceSquared(eye), points[a].pos.DistanceSquared(eye))
	})

	type keyed struct {
		ref      FaceRef
		distance float64
	}
	var faces []keyed
	for si, s := range shapes {
		for fi := range s.Volume.Faces {
			faces = append(faces, keyed{
				ref:      FaceRef{Shape: si, Face: fi},
				distance: s.Volume.Triangle(fi).Center().DistanceSquared(eye),
			})
		}
	}
	slices.SortStableFunc(faces, func(a, b keyed) int {
		return cmp.Compare(b.distance, a.distance)
	})
	order.Faces = make([]FaceRef, len(faces))
	for i, f := range faces {
		order.Faces[i] = f.ref
	}
	return order
}
