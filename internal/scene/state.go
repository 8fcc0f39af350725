package scene

import (
	"github.com/philipparndt/tetraview/internal/camera"
	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/metric"
	"github.com/philipparndt/tetraview/pkg/volume"
)

// Point is a named colour placed in the tetrahedral space
type Point struct {
	ID     string
	Metric metric.ColourMetric
	pos    geometry.Vector3
}

// Position returns the Cartesian location of the point
func (p Point) Position() geometry.Vector3 {
	return p.pos
}

// Shape is a named convex volume drawn around a group of colours
type Shape struct {
	ID     string
	Volume *volume.Volume
}

// ViewSettings holds display toggles
type ViewSettings struct {
	ShowVolumes bool
	ShowPoints  bool
	ShowAxes    bool
	ShowLabels  bool
}

// DefaultViewSettings shows everything
func DefaultViewSettings() ViewSettings {
	return ViewSettings{ShowVolumes: true, ShowPoints: true, ShowAxes: true, ShowLabels: true}
}

// HandleAction flips a toggle on the start edge
func (v *ViewSettings) HandleAction(ev input.Event) bool {
	var flag *bool
	switch ev.Action {
	case input.ActionToggleVolumes:
		flag = &v.ShowVolumes
	case input.ActionTogglePoints:
		flag = &v.ShowPoints
	case input.ActionToggleAxes:
		flag = &v.ShowAxes
	case input.ActionToggleLabels:
		flag = &v.ShowLabels
	default:
		return false
	}
	if ev.Edge == input.Started {
		*flag = !*flag
	}
	return true
}

// FaceRef addresses one triangle of one shape
type FaceRef struct {
	Shape int
	Face  int
}

// DrawOrder lists points and faces from farthest to nearest
type DrawOrder struct {
	Points []int
	Faces  []FaceRef
}

// Frame is the result of one Tick
type Frame struct {
	Pose        camera.Pose
	Mode        camera.NavigationMode
	AutoRotate  camera.AutoRotate
	PoseChanged bool
	Hovered     string // empty when nothing is under the crosshair
	Selected    string
	View        ViewSettings
	Order       DrawOrder
}
