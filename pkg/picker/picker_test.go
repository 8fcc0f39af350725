package picker

import (
	"testing"

	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedPoint struct {
	name string
	pos  geometry.Vector3
}

func (p namedPoint) Position() geometry.Vector3 { return p.pos }

var alongX = Ray{Origin: geometry.Vector3{}, Direction: geometry.NewVector3(1, 0, 0)}

func TestPickNearestOnRay(t *testing.T) {
	points := []geometry.Vector3{geometry.NewVector3(1, 0, 0), geometry.NewVector3(5, 10, 0)}

	index, err := New(DefaultMaxDistance).Pick(alongX, points)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestPickNothingWithinThreshold(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(1, 0.25, 0),
		geometry.NewVector3(2, 0, -0.3),
		geometry.NewVector3(-4, 1, 1),
	}

	index, err := New(DefaultMaxDistance).Pick(alongX, points)
	require.NoError(t, err)
	assert.Equal(t, -1, index)
}

func TestPickThresholdIsStrict(t *testing.T) {
	points := []geometry.Vector3{geometry.NewVector3(3, 0.5, 0)}

	index, err := New(0.5).Pick(alongX, points)
	require.NoError(t, err)
	assert.Equal(t, -1, index)
}

func TestPickEmptyCollection(t *testing.T) {
	index, err := New(DefaultMaxDistance).Pick(alongX, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, index)
}

func TestPickZeroDirection(t *testing.T) {
	_, err := New(DefaultMaxDistance).Pick(Ray{Origin: geometry.NewVector3(1, 1, 1)}, []geometry.Vector3{{}})
	require.ErrorIs(t, err, ErrZeroDirection)
}

func TestNearestTieKeepsFirst(t *testing.T) {
	ray := Ray{Origin: geometry.NewVector3(0, 0, -2), Direction: geometry.NewVector3(0, 0, 3)}
	points := []namedPoint{
		{"far", geometry.NewVector3(0.3, 0, 1)},
		{"first", geometry.NewVector3(0.1, 0, 4)},
		{"second", geometry.NewVector3(0, -0.1, -1)},
	}

	best, distance, ok, err := Nearest(ray, points, DefaultMaxDistance)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", best.name)
	assert.InDelta(t, 0.1, distance, 1e-12)
}

func TestNearestUnnormalizedDirection(t *testing.T) {
	ray := Ray{Origin: geometry.NewVector3(1, 1, 1), Direction: geometry.NewVector3(0, 10, 0)}
	points := []namedPoint{{"p", geometry.NewVector3(1.15, -3, 1)}}

	best, distance, ok, err := Nearest(ray, points, DefaultMaxDistance)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p", best.name)
	assert.InDelta(t, 0.15, distance, 1e-12)
}

func TestNewDefaultsThreshold(t *testing.T) {
	assert.Equal(t, DefaultMaxDistance, New(0).MaxDistance)
	assert.Equal(t, 0.5, New(0.5).MaxDistance)
}
