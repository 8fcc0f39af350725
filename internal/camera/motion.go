package camera

import (
	"math"

	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/pkg/geometry"
)

// verticalEpsilon guards the right axis of a vector parallel to up
const verticalEpsilon = 1e-12

// updateFreeFly translates along the camera axes and turns with the pointer
func (r *Rig) updateFreeFly(dt float64) {
	speed := r.cfg.MoveSpeed * dt
	look := r.cfg.LookSensitivity
	if r.active(input.ActionSlow) {
		speed *= r.cfg.SlowFactorFree
		look *= r.cfg.SlowFactorFree
	}

	forward := r.pose.Forward
	right := r.pose.Right()
	move := forward.Mul(r.axis(input.ActionMoveForward, input.ActionMoveBackward)).
		Add(right.Mul(r.axis(input.ActionMoveRight, input.ActionMoveLeft))).
		Add(geometry.Up.Mul(r.axis(input.ActionMoveUp, input.ActionMoveDown)))
	r.pose.Position = r.bounds.Clamp(r.pose.Position.Add(move.Mul(speed)))

	if r.active(input.ActionRotate) && (r.lookX != 0 || r.lookY != 0) {
		forward = forward.Rotate(geometry.Up, -r.lookX*look)
		forward = pitchClamped(forward, -r.lookY*look, r.maxPitch, forward)
		r.pose.Forward = forward.Normalize()
	}
}

// updateOrbit zooms, yaws and pitches the camera around focus, then re-aims
func (r *Rig) updateOrbit(dt float64, focus geometry.Vector3) {
	zoom := r.axis(input.ActionMoveForward, input.ActionMoveBackward)*r.cfg.ZoomSpeed*dt +
		r.scroll*r.cfg.ScrollStep
	yaw := r.axis(input.ActionMoveRight, input.ActionMoveLeft) * r.cfg.KeyRotateSpeed * dt
	pitch := r.axis(input.ActionMoveUp, input.ActionMoveDown) * r.cfg.KeyRotateSpeed * dt

	if r.active(input.ActionRotate) {
		yaw -= r.lookX * r.cfg.LookSensitivity
		pitch += r.lookY * r.cfg.LookSensitivity
	}
	if r.rotation.Enabled {
		yaw += float64(r.rotation.Speed) * r.cfg.AutoRotateStep * dt
	}
	if r.active(input.ActionSlow) {
		zoom *= r.cfg.SlowFactorFree
		yaw *= r.cfg.SlowFactorOrbit
		pitch *= r.cfg.SlowFactorOrbit
	}

	start := r.pose.Position
	offset := start.Sub(focus)
	if distance := offset.Length(); zoom != 0 || distance < r.cfg.MinFocusDistance {
		direction := offset.Normalize()
		if distance == 0 {
			direction = r.pose.Forward.Neg()
		}
		offset = direction.Mul(math.Max(distance-zoom, r.cfg.MinFocusDistance))
	}
	offset = offset.Rotate(geometry.Up, yaw)
	offset = pitchClamped(offset, pitch, r.maxPitch, r.pose.Forward.Neg())

	r.pose.Position = r.clampNear(focus, offset)
	if r.pose.Position != start || r.aimPending {
		r.aimAt(focus)
	}
}

// aimAt points the camera at target. A camera that would look more steeply
// than the pitch limit is first swung down to the limit around the target.
func (r *Rig) aimAt(target geometry.Vector3) {
	r.aimPending = false
	offset := r.pose.Position.Sub(target)
	if offset.IsZero() {
		r.aimPending = true
		return
	}
	clamped := pitchClamped(offset, 0, r.maxPitch, r.pose.Forward.Neg())
	if clamped != offset {
		r.pose.Position = r.clampNear(target, clamped)
		offset = r.pose.Position.Sub(target)
		if offset.IsZero() {
			r.aimPending = true
			return
		}
	}
	r.pose.Forward = offset.Neg().Normalize()
	r.dirty = true
}

// clampNear keeps focus+offset inside the bounds. When a bounds face would
// pull the camera closer to focus than the minimum distance, the offset is
// mirrored across that face instead.
func (r *Rig) clampNear(focus, offset geometry.Vector3) geometry.Vector3 {
	wanted := focus.Add(offset)
	pos := r.bounds.Clamp(wanted)
	if pos == wanted || pos.Distance(focus) >= r.cfg.MinFocusDistance {
		return pos
	}

	mirrored := offset
	if pos.X != wanted.X {
		mirrored.X = -mirrored.X
	}
	if pos.Y != wanted.Y {
		mirrored.Y = -mirrored.Y
	}
	if pos.Z != wanted.Z {
		mirrored.Z = -mirrored.Z
	}
	if alt := r.bounds.Clamp(focus.Add(mirrored)); alt.Distance(focus) > pos.Distance(focus) {
		return alt
	}
	return pos
}

// pitchClamped changes the elevation of v by delta, keeping it within
// [-limit, limit]. The rotation is about the horizontal right axis of v; a
// vertical v is rebuilt from the horizontal heading of fallback.
func pitchClamped(v geometry.Vector3, delta, limit float64, fallback geometry.Vector3) geometry.Vector3 {
	elevation := v.Elevation()
	target := math.Max(-limit, math.Min(limit, elevation+delta))
	if target == elevation {
		return v
	}

	right := v.Cross(geometry.Up)
	if right.LengthSquared() > verticalEpsilon*v.LengthSquared() && math.Abs(elevation) <= limit {
		rotated := v.Rotate(right, target-elevation)
		if math.Abs(rotated.Elevation()) <= limit {
			return rotated
		}
	}
	return withElevation(v, target, fallback)
}

// withElevation keeps the length and heading of v and sets its elevation
func withElevation(v geometry.Vector3, elevation float64, fallback geometry.Vector3) geometry.Vector3 {
	heading := geometry.NewVector3(v.X, 0, v.Z)
	if heading.LengthSquared() <= verticalEpsilon*v.LengthSquared() {
		heading = geometry.NewVector3(fallback.X, 0, fallback.Z)
	}
	if heading.IsZero() {
		heading = geometry.NewVector3(1, 0, 0)
	}
	heading = heading.Normalize()
	return heading.Mul(math.Cos(elevation)).Add(geometry.Up.Mul(math.Sin(elevation))).Mul(v.Length())
}
