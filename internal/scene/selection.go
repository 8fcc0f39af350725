package scene

import (
	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/pkg/geometry"
)

// Selection tracks the hovered and selected points by ID. It is the focus
// provider for the FollowSelected camera mode.
type Selection struct {
	world    *World
	hovered  string
	selected string
}

// Hovered returns the ID of the point under the crosshair
func (s *Selection) Hovered() (string, bool) {
	return s.hovered, s.hovered != ""
}

// Selected returns the ID of the selected point
func (s *Selection) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// SelectedPosition returns the position of the selected point if it still exists
func (s *Selection) SelectedPosition() (geometry.Vector3, bool) {
	if s.selected == "" {
		return geometry.Vector3{}, false
	}
	p, ok := s.world.Point(s.selected)
	if !ok {
		return geometry.Vector3{}, false
	}
	return p.Position(), true
}

// Clear drops both hover and selection
func (s *Selection) Clear() {
	s.hovered, s.selected = "", ""
}

// HandleAction promotes the hovered point to the selection, or clears the
// selection when nothing is hovered
func (s *Selection) HandleAction(ev input.Event) bool {
	if ev.Action != input.ActionSelect {
		return false
	}
	if ev.Edge == input.Started && s.selected != s.hovered {
		s.selected = s.hovered
		monitoring.Logger().Debug("selection changed", "point", s.selected)
	}
	return true
}

// forget drops references to a removed point
func (s *Selection) forget(id string) {
	if s.hovered == id {
		s.hovered = ""
	}
	if s.selected == id {
		s.selected = ""
	}
}
