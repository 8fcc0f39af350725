// Package camera implements the camera rig: free flight, orbiting the origin or
// the selected point, camera presets and auto-rotation. The rig is driven by
// input events between frames and advanced once per frame by Update.
package camera

import (
	"math"

	"github.com/philipparndt/tetraview/internal/config"
	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/pkg/geometry"
)

// FocusProvider exposes the current selection as an orbit target
type FocusProvider interface {
	SelectedPosition() (geometry.Vector3, bool)
}

// Rig owns the camera pose and navigation mode
type Rig struct {
	cfg      config.CameraConfig
	pose     Pose
	mode     NavigationMode
	bounds   geometry.BoundingBox
	maxPitch float64
	presets  []Pose

	focus FocusProvider

	holdActive bool // FollowOrigin was entered by the hold action
	aimPending bool
	dirty      bool

	held     map[input.Action]bool
	tapped   map[input.Action]bool // started since the last Update
	lookX    float64
	lookY    float64
	scroll   float64
	rotation autoRotator
}

// New creates a rig at the configured start pose. focus may be nil when
// nothing can be selected.
func New(cfg config.CameraConfig, focus FocusProvider) *Rig {
	r := &Rig{
		cfg:      cfg,
		bounds:   geometry.NewCube(cfg.BoundHalfExtent),
		maxPitch: cfg.MaxPitchDeg * math.Pi / 180,
		focus:    focus,
		held:     make(map[input.Action]bool),
		tapped:   make(map[input.Action]bool),
		rotation: newAutoRotator(cfg.MaxAutoRotateSpeed),
	}
	for _, p := range cfg.Presets {
		r.presets = append(r.presets, r.presetPose(p))
	}
	r.pose = r.presetPose(cfg.Start)
	return r
}

func (r *Rig) presetPose(p config.PresetConfig) Pose {
	position := p.PositionVector()
	return Pose{
		Position: position,
		Forward:  p.TargetVector().Sub(position).Normalize(),
		Up:       geometry.Up,
		Aspect:   r.cfg.Aspect,
		FOV:      r.cfg.FOVDeg * math.Pi / 180,
	}
}

// Pose returns the current camera state
func (r *Rig) Pose() Pose {
	return r.pose
}

// Mode returns the navigation mode
func (r *Rig) Mode() NavigationMode {
	return r.mode
}

// AutoRotate returns the auto-rotation setting
func (r *Rig) AutoRotate() AutoRotate {
	return r.rotation.AutoRotate
}

// SetAspect updates the viewport aspect ratio
func (r *Rig) SetAspect(aspect float64) {
	if aspect > 0 && aspect != r.pose.Aspect {
		r.pose.Aspect = aspect
		r.dirty = true
	}
}

// ApplyPreset snaps to preset i regardless of mode
func (r *Rig) ApplyPreset(i int) bool {
	if i < 0 || i >= len(r.presets) {
		return false
	}
	aspect := r.pose.Aspect
	r.pose = r.presets[i]
	r.pose.Aspect = aspect
	r.dirty = true
	return true
}

// HandleAction applies an input edge and reports whether the rig claimed it
func (r *Rig) HandleAction(ev input.Event) bool {
	switch ev.Action {
	case input.ActionMoveForward, input.ActionMoveBackward,
		input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMoveUp, input.ActionMoveDown:
		if r.rotation.modifierActive() {
			r.held[ev.Action] = false
			if ev.Edge == input.Stopped {
				r.rotation.adjust(ev.Action)
				monitoring.Logger().Debug("auto-rotate adjusted", "speed", r.rotation.Speed)
			}
			return true
		}
		r.track(ev)
		return true

	case input.ActionSlow, input.ActionRotate:
		r.track(ev)
		return true

	case input.ActionLook:
		if !r.active(input.ActionRotate) {
			return false
		}
		r.lookX += ev.X
		r.lookY += ev.Y
		return true

	case input.ActionZoom:
		r.scroll += ev.X
		return true

	case input.ActionFollowOriginHold:
		if ev.Edge == input.Started {
			if r.mode != FollowOrigin {
				r.setMode(FollowOrigin)
				r.holdActive = true
			}
			r.aimAt(geometry.Vector3{})
			return true
		}
		if r.mode == FollowOrigin && r.holdActive {
			r.setMode(FollowNone)
		}
		r.holdActive = false
		return true

	case input.ActionFollowOriginToggle:
		if ev.Edge == input.Stopped {
			if r.mode == FollowOrigin {
				r.setMode(FollowNone)
			} else {
				r.setMode(FollowOrigin)
				r.aimAt(geometry.Vector3{})
			}
		}
		return true

	case input.ActionFollowSelectionToggle:
		if ev.Edge == input.Started {
			return r.mode == FollowSelected || r.hasSelection()
		}
		if r.mode == FollowSelected {
			r.setMode(FollowNone)
			return true
		}
		target, ok := r.selected()
		if !ok {
			return false
		}
		r.setMode(FollowSelected)
		r.aimAt(target)
		return true

	case input.ActionToggleAutoRotate:
		if ev.Edge == input.Started {
			r.rotation.press()
		} else if r.rotation.release() {
			monitoring.Logger().Debug("auto-rotate toggled", "enabled", r.rotation.Enabled)
		}
		return true

	case input.ActionPresetOne, input.ActionPresetTwo, input.ActionPresetThree:
		if ev.Edge == input.Started {
			r.ApplyPreset(int(ev.Action - input.ActionPresetOne))
		}
		return true
	}
	return false
}

func (r *Rig) track(ev input.Event) {
	if ev.Edge == input.Started {
		r.held[ev.Action] = true
		r.tapped[ev.Action] = true
		return
	}
	r.held[ev.Action] = false
}

// active reports whether an action is held or was tapped since the last frame
func (r *Rig) active(a input.Action) bool {
	return r.held[a] || r.tapped[a]
}

func (r *Rig) axis(positive, negative input.Action) float64 {
	v := 0.0
	if r.active(positive) {
		v++
	}
	if r.active(negative) {
		v--
	}
	return v
}

func (r *Rig) setMode(m NavigationMode) {
	if m != r.mode {
		monitoring.Logger().Debug("navigation mode changed", "from", r.mode, "to", m)
	}
	r.mode = m
	r.holdActive = false
	r.dirty = true
}

func (r *Rig) hasSelection() bool {
	_, ok := r.selected()
	return ok
}

func (r *Rig) selected() (geometry.Vector3, bool) {
	if r.focus == nil {
		return geometry.Vector3{}, false
	}
	return r.focus.SelectedPosition()
}

// focusPoint returns the pivot for the current orbit mode
func (r *Rig) focusPoint() (geometry.Vector3, bool) {
	switch r.mode {
	case FollowOrigin:
		return geometry.Vector3{}, true
	case FollowSelected:
		return r.selected()
	}
	return geometry.Vector3{}, false
}

// Update advances the rig by dt seconds and reports whether the pose changed
func (r *Rig) Update(dt float64) bool {
	before := r.pose

	if r.mode == FollowSelected && !r.hasSelection() {
		r.setMode(FollowNone)
	}

	if focus, ok := r.focusPoint(); ok {
		r.updateOrbit(dt, focus)
	} else {
		r.updateFreeFly(dt)
	}

	clear(r.tapped)
	r.lookX, r.lookY, r.scroll = 0, 0, 0

	changed := r.dirty || r.pose != before
	r.dirty = false
	return changed
}
