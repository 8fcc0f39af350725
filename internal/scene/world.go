// Package scene is the per-session context passed to every frame: the camera
// rig, the colour points and volumes, the selection, the view toggles and the
// input chain that routes events between them.
package scene

import (
	"errors"
	"fmt"

	"github.com/philipparndt/tetraview/internal/camera"
	"github.com/philipparndt/tetraview/internal/config"
	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/pkg/metric"
	"github.com/philipparndt/tetraview/pkg/picker"
	"github.com/philipparndt/tetraview/pkg/volume"
)

var (
	// ErrDuplicateID is returned when a point or shape ID is already in use
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnknownPoint is returned when a shape references a missing point
	ErrUnknownPoint = errors.New("unknown point")
	// ErrEmptyID is returned for a point or shape without an ID
	ErrEmptyID = errors.New("empty id")
)

// World owns all state of a viewing session
type World struct {
	rig       *camera.Rig
	picker    *picker.Picker
	selection *Selection
	view      ViewSettings
	chain     *input.Chain

	points  []Point
	byID    map[string]int
	shapes  []Shape
	shapeID map[string]bool

	order      DrawOrder
	orderStale bool
}

// New builds a world from the given tuning
func New(cfg *config.Config) *World {
	w := &World{
		picker:     picker.New(cfg.Picker.MaxDistance),
		view:       DefaultViewSettings(),
		byID:       make(map[string]int),
		shapeID:    make(map[string]bool),
		orderStale: true,
	}
	w.selection = &Selection{world: w}
	w.rig = camera.New(cfg.Camera, w.selection)
	w.chain = input.NewChain(w.rig, w.selection, &w.view)
	return w
}

// Rig returns the camera rig
func (w *World) Rig() *camera.Rig { return w.rig }

// Selection returns the hover and selection state
func (w *World) Selection() *Selection { return w.selection }

// View returns the display toggles
func (w *World) View() ViewSettings { return w.view }

// Points returns the loaded points in insertion order
func (w *World) Points() []Point { return w.points }

// Shapes returns the loaded volumes in insertion order
func (w *World) Shapes() []Shape { return w.shapes }

// Point looks up a point by ID
func (w *World) Point(id string) (Point, bool) {
	i, ok := w.byID[id]
	if !ok {
		return Point{}, false
	}
	return w.points[i], true
}

// AddPoint projects m and adds it under id. A rejected point is logged and
// leaves the world unchanged.
func (w *World) AddPoint(id string, m metric.ColourMetric) error {
	if id == "" {
		return w.reject("point", id, ErrEmptyID)
	}
	if _, exists := w.byID[id]; exists {
		return w.reject("point", id, ErrDuplicateID)
	}
	pos, err := m.Cartesian()
	if err != nil {
		return w.reject("point", id, err)
	}
	w.byID[id] = len(w.points)
	w.points = append(w.points, Point{ID: id, Metric: m, pos: pos})
	w.orderStale = true
	return nil
}

// RemovePoint deletes a point. Hover and selection referencing it are cleared;
// a camera following it falls back to free flight on the next Tick.
func (w *World) RemovePoint(id string) bool {
	i, ok := w.byID[id]
	if !ok {
		return false
	}
	w.points = append(w.points[:i], w.points[i+1:]...)
	delete(w.byID, id)
	for j := i; j < len(w.points); j++ {
		w.byID[w.points[j].ID] = j
	}
	w.selection.forget(id)
	w.orderStale = true
	return true
}

// Clear removes all points and shapes and drops the hover and selection.
// The camera keeps its pose.
func (w *World) Clear() {
	w.points = nil
	w.shapes = nil
	clear(w.byID)
	clear(w.shapeID)
	w.selection.Clear()
	w.orderStale = true
}

// AddShape builds a convex volume around the given metrics
func (w *World) AddShape(id string, metrics []metric.ColourMetric) error {
	if id == "" {
		return w.reject("shape", id, ErrEmptyID)
	}
	if w.shapeID[id] {
		return w.reject("shape", id, ErrDuplicateID)
	}
	vol, err := volume.BuildFromMetrics(metrics)
	if err != nil {
		return w.reject("shape", id, err)
	}
	w.shapeID[id] = true
	w.shapes = append(w.shapes, Shape{ID: id, Volume: vol})
	w.orderStale = true
	return nil
}

// AddShapeFromPoints builds a convex volume around already loaded points
func (w *World) AddShapeFromPoints(id string, pointIDs []string) error {
	metrics := make([]metric.ColourMetric, 0, len(pointIDs))
	for _, pid := range pointIDs {
		p, ok := w.Point(pid)
		if !ok {
			return w.reject("shape", id, fmt.Errorf("%w: %s", ErrUnknownPoint, pid))
		}
		metrics = append(metrics, p.Metric)
	}
	return w.AddShape(id, metrics)
}

func (w *World) reject(kind, id string, err error) error {
	monitoring.Logger().Warn("rejected "+kind, "id", id, "error", err)
	return fmt.Errorf("%s %q: %w", kind, id, err)
}

// Dispatch routes an input event through the handler chain
func (w *World) Dispatch(ev input.Event) bool {
	return w.chain.Dispatch(ev)
}

// SetAspect forwards a viewport resize to the camera
func (w *World) SetAspect(aspect float64) {
	w.rig.SetAspect(aspect)
}

// Tick advances the camera by dt seconds, refreshes the hovered point and
// returns what the renderer needs for this frame. Draw order is only
// recomputed when the pose or the content changed.
func (w *World) Tick(dt float64) Frame {
	changed := w.rig.Update(dt)
	pose := w.rig.Pose()

	w.selection.hovered = ""
	if best, _, ok, err := picker.Nearest(pose.Ray(), w.points, w.picker.MaxDistance); err != nil {
		monitoring.Logger().Warn("hover pick failed", "error", err)
	} else if ok {
		w.selection.hovered = best.ID
	}

	if changed || w.orderStale {
		w.order = sortBackToFront(pose.Position, w.points, w.shapes)
		w.orderStale = false
	}

	selected, _ := w.selection.Selected()
	hovered, _ := w.selection.Hovered()
	return Frame{
		Pose:        pose,
		Mode:        w.rig.Mode(),
		AutoRotate:  w.rig.AutoRotate(),
		PoseChanged: changed,
		Hovered:     hovered,
		Selected:    selected,
		View:        w.view,
		Order:       w.order,
	}
}
