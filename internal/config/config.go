// Package config loads the viewer tuning file. Every field has a default, so a
// TOML file only needs the keys it wants to change.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/picker"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the tuning file
type Config struct {
	Camera CameraConfig `toml:"camera"`
	Picker PickerConfig `toml:"picker"`
}

// CameraConfig tunes the camera rig. Angles are in degrees, rates per second.
type CameraConfig struct {
	MoveSpeed          float64        `toml:"move_speed"`
	ZoomSpeed          float64        `toml:"zoom_speed"`
	ScrollStep         float64        `toml:"scroll_step"`
	LookSensitivity    float64        `toml:"look_sensitivity"` // radians per pointer unit
	KeyRotateSpeed     float64        `toml:"key_rotate_speed"` // radians per second in orbit mode
	AutoRotateStep     float64        `toml:"auto_rotate_step"` // radians per second per speed level
	MaxAutoRotateSpeed int            `toml:"max_auto_rotate_speed"`
	MinFocusDistance   float64        `toml:"min_focus_distance"`
	BoundHalfExtent    float64        `toml:"bound_half_extent"`
	MaxPitchDeg        float64        `toml:"max_pitch_deg"`
	SlowFactorFree     float64        `toml:"slow_factor_free"`
	SlowFactorOrbit    float64        `toml:"slow_factor_orbit"`
	FOVDeg             float64        `toml:"fov_deg"`
	Aspect             float64        `toml:"aspect"`
	Start              PresetConfig   `toml:"start"`
	Presets            []PresetConfig `toml:"presets"`
}

// PresetConfig is a fixed camera pose looking from Position at Target
type PresetConfig struct {
	Name     string     `toml:"name"`
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
}

// PickerConfig tunes the hover picker
type PickerConfig struct {
	MaxDistance float64 `toml:"max_distance"`
}

// Default returns the built-in tuning
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			MoveSpeed:          1.0,
			ZoomSpeed:          1.0,
			ScrollStep:         0.1,
			LookSensitivity:    0.005,
			KeyRotateSpeed:     1.5,
			AutoRotateStep:     0.15,
			MaxAutoRotateSpeed: 10,
			MinFocusDistance:   0.025,
			BoundHalfExtent:    5,
			MaxPitchDeg:        89,
			SlowFactorFree:     1.0 / 3.0,
			SlowFactorOrbit:    0.5,
			FOVDeg:             45,
			Aspect:             16.0 / 9.0,
			Start:              PresetConfig{Name: "start", Position: [3]float64{2.5, 1.5, 2.5}},
			Presets: []PresetConfig{
				{Name: "front", Position: [3]float64{3.5, 0.5, 0}},
				{Name: "side", Position: [3]float64{0, 0.5, -3.5}},
				{Name: "top", Position: [3]float64{0.2, 3.5, 0.2}},
			},
		},
		Picker: PickerConfig{MaxDistance: picker.DefaultMaxDistance},
	}
}

// Load reads a TOML file on top of the defaults and validates the result
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".toml" {
		return nil, fmt.Errorf("config file must have .toml extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of the defaults. Unknown keys are rejected.
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and that every preset is a usable pose
func (c *Config) Validate() error {
	cam := c.Camera
	positive := map[string]float64{
		"move_speed":          cam.MoveSpeed,
		"zoom_speed":          cam.ZoomSpeed,
		"scroll_step":         cam.ScrollStep,
		"look_sensitivity":    cam.LookSensitivity,
		"key_rotate_speed":    cam.KeyRotateSpeed,
		"auto_rotate_step":    cam.AutoRotateStep,
		"min_focus_distance":  cam.MinFocusDistance,
		"bound_half_extent":   cam.BoundHalfExtent,
		"aspect":              cam.Aspect,
		"picker.max_distance": c.Picker.MaxDistance,
	}
	for name, v := range positive {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, v)
		}
	}
	if cam.MaxAutoRotateSpeed < 1 {
		return fmt.Errorf("%w: max_auto_rotate_speed must be at least 1", ErrInvalid)
	}
	if !(cam.MaxPitchDeg > 0 && cam.MaxPitchDeg < 90) {
		return fmt.Errorf("%w: max_pitch_deg must be in (0, 90), got %v", ErrInvalid, cam.MaxPitchDeg)
	}
	if !(cam.FOVDeg > 0 && cam.FOVDeg < 180) {
		return fmt.Errorf("%w: fov_deg must be in (0, 180), got %v", ErrInvalid, cam.FOVDeg)
	}
	for name, f := range map[string]float64{"slow_factor_free": cam.SlowFactorFree, "slow_factor_orbit": cam.SlowFactorOrbit} {
		if !(f > 0 && f <= 1) {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalid, name, f)
		}
	}
	if len(cam.Presets) != 3 {
		return fmt.Errorf("%w: exactly 3 presets required, got %d", ErrInvalid, len(cam.Presets))
	}
	for _, p := range append([]PresetConfig{cam.Start}, cam.Presets...) {
		if err := c.validatePreset(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validatePreset(p PresetConfig) error {
	bounds := geometry.NewCube(c.Camera.BoundHalfExtent)
	if !bounds.Contains(p.PositionVector()) {
		return fmt.Errorf("%w: preset %q position %v outside bounds", ErrInvalid, p.Name, p.Position)
	}
	view := p.TargetVector().Sub(p.PositionVector())
	if view.IsZero() {
		return fmt.Errorf("%w: preset %q looks at its own position", ErrInvalid, p.Name)
	}
	limit := c.Camera.MaxPitchDeg * math.Pi / 180
	if math.Abs(view.Elevation()) > limit {
		return fmt.Errorf("%w: preset %q pitch exceeds %v degrees", ErrInvalid, p.Name, c.Camera.MaxPitchDeg)
	}
	return nil
}

// PositionVector returns Position as a vector
func (p PresetConfig) PositionVector() geometry.Vector3 {
	return geometry.NewVector3(p.Position[0], p.Position[1], p.Position[2])
}

// TargetVector returns Target as a vector
func (p PresetConfig) TargetVector() geometry.Vector3 {
	return geometry.NewVector3(p.Target[0], p.Target[1], p.Target[2])
}
