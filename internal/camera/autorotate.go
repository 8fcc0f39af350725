package camera

import "github.com/philipparndt/tetraview/internal/input"

// The auto-rotate control doubles as a modifier. A clean press and release
// toggles auto-rotation; while it is held, movement stop-edges adjust speed and
// direction instead, and the release that follows does not toggle.
type modifierState int

const (
	modifierIdle modifierState = iota
	modifierHeld
	modifierHeldAndConsumed
)

func (s modifierState) String() string {
	switch s {
	case modifierHeld:
		return "held"
	case modifierHeldAndConsumed:
		return "held_consumed"
	}
	return "idle"
}

// AutoRotate is the persisted auto-rotation setting
type AutoRotate struct {
	Enabled bool
	Speed   int // sign is the direction, magnitude the rate level
}

type autoRotator struct {
	AutoRotate
	state    modifierState
	maxSpeed int
}

func newAutoRotator(maxSpeed int) autoRotator {
	return autoRotator{AutoRotate: AutoRotate{Speed: 1}, maxSpeed: maxSpeed}
}

func (a *autoRotator) press() {
	if a.state == modifierIdle {
		a.state = modifierHeld
	}
}

// release ends the press and reports whether it toggled auto-rotation
func (a *autoRotator) release() bool {
	toggled := a.state != modifierHeldAndConsumed
	if toggled {
		a.Enabled = !a.Enabled
	}
	a.state = modifierIdle
	return toggled
}

func (a *autoRotator) modifierActive() bool {
	return a.state != modifierIdle
}

// adjust reinterprets a movement action while the modifier is held
func (a *autoRotator) adjust(action input.Action) bool {
	magnitude, sign := a.Speed, 1
	if magnitude < 0 {
		magnitude, sign = -magnitude, -1
	}

	switch action {
	case input.ActionMoveLeft:
		sign = -1
	case input.ActionMoveRight:
		sign = 1
	case input.ActionMoveForward, input.ActionMoveUp:
		magnitude = min(magnitude+1, a.maxSpeed)
	case input.ActionMoveBackward, input.ActionMoveDown:
		magnitude = max(magnitude-1, 1)
	default:
		return false
	}

	a.Speed = sign * magnitude
	a.state = modifierHeldAndConsumed
	return true
}
