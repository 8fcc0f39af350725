package scene

import (
	"testing"

	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortBackToFront(t *testing.T) {
	points := []Point{
		{ID: "near", pos: geometry.NewVector3(0, 0, 1)},
		{ID: "far", pos: geometry.NewVector3(0, 0, -3)},
		{ID: "tie", pos: geometry.NewVector3(0, 0, 1)},
	}
	vol, err := volume.Build([]geometry.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	})
	require.NoError(t, err)

	order := sortBackToFront(geometry.NewVector3(0, 0, 2), points, []Shape{{ID: "tet", Volume: vol}})

	assert.Equal(t, []int{1, 0, 2}, order.Points)
	require.Len(t, order.Faces, 4)
	eye := geometry.NewVector3(0, 0, 2)
	for i := 1; i < len(order.Faces); i++ {
		prev := vol.Triangle(order.Faces[i-1].Face).Center().Distance(eye)
		cur := vol.Triangle(order.Faces[i].Face).Center().Distance(eye)
		assert.GreaterOrEqual(t, prev, cur)
	}
}
