package scenario

import (
	"os"
	"testing"

	"github.com/philipparndt/tetraview/internal/camera"
	"github.com/philipparndt/tetraview/internal/config"
	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/internal/scene"
	"github.com/philipparndt/tetraview/pkg/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func TestLoadAndRun(t *testing.T) {
	s, err := Load("testdata/orbit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "orbit the primaries", s.Name)
	assert.Len(t, s.Points, 6)
	assert.Equal(t, 22, s.FrameCount())

	w := scene.New(config.Default())
	var frames []scene.Frame
	report := s.Run(w, func(i int, f scene.Frame) {
		assert.Equal(t, len(frames), i)
		frames = append(frames, f)
	})

	assert.Equal(t, 22, report.Frames)
	require.Len(t, report.Rejected, 1)
	assert.ErrorIs(t, report.Rejected[0], metric.ErrInvalidMagnitude)
	assert.Empty(t, report.Unclaimed)

	assert.Len(t, w.Points(), 5)
	require.Len(t, w.Shapes(), 2)
	assert.Len(t, w.Shapes()[0].Volume.Faces, 4)
	assert.Len(t, w.Shapes()[1].Volume.Faces, 1)

	assert.Equal(t, "white", frames[0].Hovered)
	assert.Equal(t, 1.5, frames[0].Pose.Aspect)
	assert.Equal(t, camera.FollowOrigin, frames[1].Mode)
	assert.True(t, frames[1].AutoRotate.Enabled)

	last := frames[len(frames)-1]
	assert.True(t, last.PoseChanged)
	assert.NotEqual(t, frames[1].Pose.Position, last.Pose.Position)
	assert.InDelta(t, frames[1].Pose.Position.Length(), last.Pose.Position.Length(), 1e-9)
	assert.Equal(t, "white", last.Hovered)
}

func TestHoldScenario(t *testing.T) {
	s, err := Parse([]byte(`
name: hold
frames:
  - dt: 0.016
    events:
      - {action: follow_origin_hold, edge: start}
  - dt: 0.016
    events:
      - {action: follow_origin_hold, edge: stop}
      - {action: move_forward}
  - dt: 0.5
`))
	require.NoError(t, err)

	w := scene.New(config.Default())
	var frames []scene.Frame
	s.Run(w, func(_ int, f scene.Frame) { frames = append(frames, f) })

	require.Len(t, frames, 3)
	assert.Equal(t, camera.FollowOrigin, frames[0].Mode)
	assert.Equal(t, camera.FollowNone, frames[1].Mode)
	assert.Greater(t, frames[1].Pose.Position.Distance(frames[0].Pose.Position), 0.0)
	assert.InDelta(t, 0.5, frames[2].Pose.Position.Distance(frames[1].Pose.Position), 1e-9)
}

func TestUnclaimedEventsAreReported(t *testing.T) {
	s, err := Parse([]byte(`
frames:
  - dt: 0
    events:
      - {action: look, x: 5, y: 5}
      - {action: follow_selection_toggle, edge: stop}
`))
	require.NoError(t, err)

	report := s.Run(scene.New(config.Default()), nil)
	assert.Equal(t, 1, report.Frames)
	require.Len(t, report.Unclaimed, 2)
	assert.Equal(t, input.ActionLook, report.Unclaimed[0].Action)
	assert.Equal(t, input.Stopped, report.Unclaimed[1].Edge)
}

func TestShapeWithPointsAndVerticesRejected(t *testing.T) {
	s, err := Parse([]byte(`
points:
  - {id: a, r: 1}
  - {id: b, r: 0}
shapes:
  - id: both
    points: [a, b]
    vertices: [{r: 1}, {r: 0}]
`))
	require.NoError(t, err)

	rejected := s.Populate(scene.New(config.Default()))
	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], ErrInvalid)
}

func TestPopulateReplacesContent(t *testing.T) {
	s, err := Load("testdata/orbit.yaml")
	require.NoError(t, err)

	w := scene.New(config.Default())
	require.NoError(t, w.AddPoint("stale", metric.ColourMetric{R: 1}))

	first := s.Populate(w)
	second := s.Populate(w)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotErrorIs(t, second[0], scene.ErrDuplicateID)

	assert.Len(t, w.Points(), 5)
	assert.Len(t, w.Shapes(), 2)
	_, ok := w.Point("stale")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"syntax":         "frames: [",
		"unknown action": "frames: [{dt: 0.1, events: [{action: jump}]}]",
		"unknown edge":   "frames: [{dt: 0.1, events: [{action: slow, edge: sideways}]}]",
		"negative dt":    "frames: [{dt: -1}]",
		"negative rep":   "frames: [{dt: 1, repeat: -2}]",
		"aspect":         "aspect: -1",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadRejectsExtension(t *testing.T) {
	_, err := Load("testdata/orbit.json")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
