package scene

import (
	"math"
	"os"
	"testing"

	"github.com/philipparndt/tetraview/internal/camera"
	"github.com/philipparndt/tetraview/internal/config"
	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/pkg/metric"
	"github.com/philipparndt/tetraview/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

// newTestWorld starts at the default pose looking at the origin with a point
// at the origin and one at +z
func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := New(config.Default())
	require.NoError(t, w.AddPoint("origin", metric.ColourMetric{}))
	require.NoError(t, w.AddPoint("blue", metric.ColourMetric{Theta: -math.Pi / 2, R: 1}))
	return w
}

func TestAddPointRejectsMalformed(t *testing.T) {
	w := newTestWorld(t)

	err := w.AddPoint("bad", metric.ColourMetric{R: -1})
	assert.ErrorIs(t, err, metric.ErrInvalidMagnitude)

	err = w.AddPoint("blue", metric.ColourMetric{R: 0.5})
	assert.ErrorIs(t, err, ErrDuplicateID)

	err = w.AddPoint("", metric.ColourMetric{R: 0.5})
	assert.ErrorIs(t, err, ErrEmptyID)

	assert.Len(t, w.Points(), 2)
	blue, ok := w.Point("blue")
	require.True(t, ok)
	assert.InDelta(t, 1, blue.Position().Z, 1e-12)
}

func TestTickHoversPointUnderCrosshair(t *testing.T) {
	w := newTestWorld(t)

	frame := w.Tick(0.016)
	assert.Equal(t, "origin", frame.Hovered)
	assert.Empty(t, frame.Selected)
	assert.False(t, frame.PoseChanged)
	assert.Equal(t, camera.FollowNone, frame.Mode)
}

func TestSelectAndFollow(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(0.016)

	require.True(t, w.Dispatch(input.Start(input.ActionSelect)))
	w.Dispatch(input.Stop(input.ActionSelect))
	selected, ok := w.Selection().Selected()
	require.True(t, ok)
	assert.Equal(t, "origin", selected)

	require.True(t, w.Dispatch(input.Stop(input.ActionFollowSelectionToggle)))
	frame := w.Tick(0.016)
	assert.Equal(t, camera.FollowSelected, frame.Mode)
	assert.Equal(t, "origin", frame.Selected)

	require.True(t, w.RemovePoint("origin"))
	frame = w.Tick(0.016)
	assert.Equal(t, camera.FollowNone, frame.Mode)
	assert.Empty(t, frame.Selected)
	assert.Empty(t, frame.Hovered)
	assert.False(t, w.RemovePoint("origin"))
}

func TestClearDropsContentAndSelection(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.AddShape("tri", []metric.ColourMetric{{R: 1}, {Theta: 2, R: 1}, {Theta: -2, R: 1}}))
	w.Tick(0.016)
	w.Dispatch(input.Start(input.ActionSelect))
	_, ok := w.Selection().Selected()
	require.True(t, ok)
	pose := w.Rig().Pose()

	w.Clear()
	assert.Empty(t, w.Points())
	assert.Empty(t, w.Shapes())
	_, ok = w.Selection().Selected()
	assert.False(t, ok)
	_, ok = w.Point("origin")
	assert.False(t, ok)

	frame := w.Tick(0.016)
	assert.Empty(t, frame.Hovered)
	assert.Equal(t, pose.Position, frame.Pose.Position)

	assert.NoError(t, w.AddPoint("origin", metric.ColourMetric{}))
	assert.NoError(t, w.AddShape("tri", []metric.ColourMetric{{R: 1}, {Theta: 2, R: 1}, {Theta: -2, R: 1}}))
}

func TestFollowSelectionWithoutSelectionIsUnclaimed(t *testing.T) {
	w := newTestWorld(t)
	assert.False(t, w.Dispatch(input.Stop(input.ActionFollowSelectionToggle)))
	assert.Equal(t, camera.FollowNone, w.Tick(0.016).Mode)
}

func TestSelectWithNothingHoveredClears(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(0.016)
	w.Dispatch(input.Start(input.ActionSelect))
	_, ok := w.Selection().Selected()
	require.True(t, ok)

	require.True(t, w.Dispatch(input.Start(input.ActionRotate)))
	require.True(t, w.Dispatch(input.Look(300, 0)))
	frame := w.Tick(0.016)
	require.True(t, frame.PoseChanged)
	require.Empty(t, frame.Hovered)

	w.Dispatch(input.Start(input.ActionSelect))
	_, ok = w.Selection().Selected()
	assert.False(t, ok)
}

func TestViewToggles(t *testing.T) {
	w := newTestWorld(t)
	require.Equal(t, DefaultViewSettings(), w.View())

	for _, a := range []input.Action{input.ActionToggleVolumes, input.ActionTogglePoints, input.ActionToggleAxes, input.ActionToggleLabels} {
		require.True(t, w.Dispatch(input.Start(a)))
		require.True(t, w.Dispatch(input.Stop(a)))
	}
	assert.Equal(t, ViewSettings{}, w.Tick(0).View)

	w.Dispatch(input.Start(input.ActionToggleAxes))
	assert.True(t, w.View().ShowAxes)
	assert.False(t, w.View().ShowPoints)
}

func TestLookWithoutRotateIsUnclaimed(t *testing.T) {
	w := newTestWorld(t)
	assert.False(t, w.Dispatch(input.Look(10, 10)))
}

func TestDrawOrderFollowsPose(t *testing.T) {
	w := newTestWorld(t)

	frame := w.Tick(0.016)
	assert.Equal(t, []int{0, 1}, frame.Order.Points, "origin is farther from the start pose")

	frame = w.Tick(0.016)
	assert.False(t, frame.PoseChanged)
	assert.Equal(t, []int{0, 1}, frame.Order.Points)

	w.Dispatch(input.Start(input.ActionPresetTwo))
	frame = w.Tick(0.016)
	assert.True(t, frame.PoseChanged)
	assert.Equal(t, []int{1, 0}, frame.Order.Points, "+z point is farther from the side preset")
}

func TestShapes(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.AddPoint("red", metric.ColourMetric{R: 1}))

	err := w.AddShapeFromPoints("missing", []string{"origin", "nope"})
	assert.ErrorIs(t, err, ErrUnknownPoint)

	err = w.AddShape("single", []metric.ColourMetric{{R: 1}})
	assert.ErrorIs(t, err, volume.ErrTooFewPoints)

	require.NoError(t, w.AddShapeFromPoints("triangle", []string{"origin", "blue", "red"}))
	assert.ErrorIs(t, w.AddShapeFromPoints("triangle", []string{"origin", "red"}), ErrDuplicateID)
	assert.ErrorIs(t, w.AddShape("", []metric.ColourMetric{{R: 1}, {R: 0}}), ErrEmptyID)

	require.Len(t, w.Shapes(), 1)
	assert.Len(t, w.Shapes()[0].Volume.Faces, 1)

	frame := w.Tick(0.016)
	assert.Equal(t, []FaceRef{{Shape: 0, Face: 0}}, frame.Order.Faces)
	assert.Len(t, frame.Order.Points, 3)
}
