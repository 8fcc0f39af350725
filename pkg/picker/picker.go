// Package picker finds the point closest to the view ray.
package picker

import (
	"errors"
	"math"

	"github.com/philipparndt/tetraview/pkg/geometry"
)

// DefaultMaxDistance is the acceptance threshold in world units.
const DefaultMaxDistance = 0.2

// ErrZeroDirection is returned for a ray without a direction.
var ErrZeroDirection = errors.New("ray direction must be non-zero")

// Ray is an infinite line through Origin along Direction
type Ray struct {
	Origin    geometry.Vector3
	Direction geometry.Vector3
}

// Distance returns the perpendicular distance from p to the line
func (r Ray) Distance(p geometry.Vector3) float64 {
	return p.DistanceToLine(r.Origin, r.Direction)
}

// Locatable is anything with a position in the colour space
type Locatable interface {
	Position() geometry.Vector3
}

// Picker selects the candidate nearest to a ray within MaxDistance
type Picker struct {
	MaxDistance float64
}

// New creates a picker; a non-positive threshold falls back to DefaultMaxDistance
func New(maxDistance float64) *Picker {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Picker{MaxDistance: maxDistance}
}

// Pick returns the index of the nearest candidate, or -1 when nothing is close enough.
func (p *Picker) Pick(ray Ray, points []geometry.Vector3) (int, error) {
	index, _, err := nearestIndex(ray, len(points), func(i int) geometry.Vector3 { return points[i] }, p.MaxDistance)
	return index, err
}

// Nearest returns the candidate closest to the ray and its distance.
// ok is false when the candidate list is empty or the closest one is not
// strictly below maxDistance. Exact ties keep the earlier candidate.
func Nearest[P Locatable](ray Ray, points []P, maxDistance float64) (best P, distance float64, ok bool, err error) {
	index, distance, err := nearestIndex(ray, len(points), func(i int) geometry.Vector3 { return points[i].Position() }, maxDistance)
	if err != nil || index < 0 {
		return best, distance, false, err
	}
	return points[index], distance, true, nil
}

func nearestIndex(ray Ray, n int, at func(int) geometry.Vector3, maxDistance float64) (int, float64, error) {
	if ray.Direction.IsZero() {
		return -1, 0, ErrZeroDirection
	}

	bestIndex := -1
	bestDistance := math.Inf(1)
	for i := range n {
		if d := ray.Distance(at(i)); d < bestDistance {
			bestIndex, bestDistance = i, d
		}
	}
	if bestIndex < 0 || bestDistance >= maxDistance {
		return -1, bestDistance, nil
	}
	return bestIndex, bestDistance, nil
}
