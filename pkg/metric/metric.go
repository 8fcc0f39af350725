// Package metric converts between the spherical colour metric of a point
// (azimuth, elevation, magnitude) and Cartesian positions in the colour space.
//
// The forward mapping starts from the reference vector (1, 0, 0), yaws by theta
// about the global vertical axis, then pitches by phi about the right axis of
// the yawed vector. ToMetric is its exact inverse.
package metric

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/tetraview/pkg/geometry"
)

// ErrInvalidMagnitude is returned when a metric carries a negative or non-finite magnitude.
var ErrInvalidMagnitude = errors.New("invalid magnitude")

// Reference is the direction of a metric with zero azimuth and elevation.
var Reference = geometry.NewVector3(1, 0, 0)

// ColourMetric is a point in the colour space expressed in spherical form.
// Angles are in radians and are not normalized.
type ColourMetric struct {
	Theta float64 `yaml:"theta" toml:"theta"`
	Phi   float64 `yaml:"phi" toml:"phi"`
	R     float64 `yaml:"r" toml:"r"`
}

// New creates a metric, rejecting a negative magnitude
func New(theta, phi, r float64) (ColourMetric, error) {
	m := ColourMetric{Theta: theta, Phi: phi, R: r}
	if err := m.Validate(); err != nil {
		return ColourMetric{}, err
	}
	return m, nil
}

// Validate checks the magnitude and angle invariants
func (m ColourMetric) Validate() error {
	if math.IsNaN(m.R) || math.IsInf(m.R, 0) || m.R < 0 {
		return fmt.Errorf("%w: r=%v", ErrInvalidMagnitude, m.R)
	}
	if math.IsNaN(m.Theta) || math.IsInf(m.Theta, 0) || math.IsNaN(m.Phi) || math.IsInf(m.Phi, 0) {
		return fmt.Errorf("non-finite angle: theta=%v phi=%v", m.Theta, m.Phi)
	}
	return nil
}

// Cartesian returns the position of the metric
func (m ColourMetric) Cartesian() (geometry.Vector3, error) {
	return ToCartesian(m.Theta, m.Phi, m.R)
}

func (m ColourMetric) String() string {
	return fmt.Sprintf("theta=%.4f phi=%.4f r=%.4f", m.Theta, m.Phi, m.R)
}

// ToCartesian converts (theta, phi, r) into a position.
// A zero magnitude maps to the origin regardless of the angles.
func ToCartesian(theta, phi, r float64) (geometry.Vector3, error) {
	if err := (ColourMetric{Theta: theta, Phi: phi, R: r}).Validate(); err != nil {
		return geometry.Vector3{}, err
	}
	if r == 0 {
		return geometry.Vector3{}, nil
	}

	yawed := Reference.Rotate(geometry.Up, theta)
	right := yawed.Cross(geometry.Up)
	pitched := yawed.Rotate(right, phi)

	return pitched.Normalize().Mul(r), nil
}

// ToMetric is the inverse of ToCartesian. The origin maps to the zero metric.
// At the poles the azimuth is whatever the residual horizontal component gives.
func ToMetric(v geometry.Vector3) ColourMetric {
	r := v.Length()
	if r == 0 {
		return ColourMetric{}
	}
	horizontal := math.Hypot(v.X, v.Z)
	return ColourMetric{
		Theta: math.Atan2(-v.Z, v.X),
		Phi:   math.Atan2(v.Y, horizontal),
		R:     r,
	}
}

// NormalizeAngle wraps an angle into (-pi, pi]
func NormalizeAngle(angle float64) float64 {
	wrapped := math.Mod(angle, 2*math.Pi)
	switch {
	case wrapped > math.Pi:
		wrapped -= 2 * math.Pi
	case wrapped <= -math.Pi:
		wrapped += 2 * math.Pi
	}
	return wrapped
}
