// Package input defines the abstract actions the viewer reacts to and the
// ordered handler chain that delivers them. Translating raw keys and mouse
// motion into these events happens outside this module.
package input

import (
	"fmt"
	"strings"
)

// Action is a resolved user intent
type Action int

const (
	ActionNone Action = iota

	// held movement; orbit mode reads forward/backward as zoom
	ActionMoveForward
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionSlow

	// pointer: Look carries X/Y deltas, Zoom carries the wheel delta in X
	ActionRotate
	ActionLook
	ActionZoom

	ActionFollowOriginHold
	ActionFollowOriginToggle
	ActionFollowSelectionToggle
	ActionToggleAutoRotate

	ActionPresetOne
	ActionPresetTwo
	ActionPresetThree

	ActionSelect
	ActionToggleVolumes
	ActionTogglePoints
	ActionToggleAxes
	ActionToggleLabels
)

var actionNames = map[Action]string{
	ActionNone:                  "none",
	ActionMoveForward:           "move_forward",
	ActionMoveBackward:          "move_backward",
	ActionMoveLeft:              "move_left",
	ActionMoveRight:             "move_right",
	ActionMoveUp:                "move_up",
	ActionMoveDown:              "move_down",
	ActionSlow:                  "slow",
	ActionRotate:                "rotate",
	ActionLook:                  "look",
	ActionZoom:                  "zoom",
	ActionFollowOriginHold:      "follow_origin_hold",
	ActionFollowOriginToggle:    "follow_origin_toggle",
	ActionFollowSelectionToggle: "follow_selection_toggle",
	ActionToggleAutoRotate:      "toggle_auto_rotate",
	ActionPresetOne:             "preset_1",
	ActionPresetTwo:             "preset_2",
	ActionPresetThree:           "preset_3",
	ActionSelect:                "select",
	ActionToggleVolumes:         "toggle_volumes",
	ActionTogglePoints:          "toggle_points",
	ActionToggleAxes:            "toggle_axes",
	ActionToggleLabels:          "toggle_labels",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction resolves the snake_case name used in scenario files
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Edge tells whether an action started or stopped
type Edge int

const (
	Started Edge = iota
	Stopped
)

func (e Edge) String() string {
	if e == Started {
		return "start"
	}
	return "stop"
}

// ParseEdge accepts start/started/press and stop/stopped/release
func ParseEdge(name string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "start", "started", "press":
		return Started, nil
	case "stop", "stopped", "release":
		return Stopped, nil
	}
	return Started, fmt.Errorf("unknown edge %q", name)
}

// Event is one edge of an action with optional pointer parameters
type Event struct {
	Action Action
	Edge   Edge
	X, Y   float64
}

// Start builds a start edge
func Start(a Action) Event { return Event{Action: a, Edge: Started} }

// Stop builds a stop edge
func Stop(a Action) Event { return Event{Action: a, Edge: Stopped} }

// Look builds a pointer motion event
func Look(dx, dy float64) Event { return Event{Action: ActionLook, Edge: Started, X: dx, Y: dy} }

// Scroll builds a wheel event; positive values zoom in
func Scroll(delta float64) Event { return Event{Action: ActionZoom, Edge: Started, X: delta} }

func (e Event) String() string {
	switch e.Action {
	case ActionLook:
		return fmt.Sprintf("%s(%.3f, %.3f)", e.Action, e.X, e.Y)
	case ActionZoom:
		return fmt.Sprintf("%s(%.3f)", e.Action, e.X)
	}
	return fmt.Sprintf("%s:%s", e.Action, e.Edge)
}
