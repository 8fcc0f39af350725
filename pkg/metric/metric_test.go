package metric

import (
	"math"
	"testing"

	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCartesianReference(t *testing.T) {
	for _, r := range []float64{0, 0.25, 1, 3.5} {
		v, err := ToCartesian(0, 0, r)
		require.NoError(t, err)
		assert.True(t, v.ApproxEqual(geometry.NewVector3(r, 0, 0), 1e-12), "r=%v got %v", r, v)
	}
}

func TestToCartesianAxes(t *testing.T) {
	tests := []struct {
		name       string
		theta, phi float64
		want       geometry.Vector3
	}{
		{"yaw quarter turn", math.Pi / 2, 0, geometry.NewVector3(0, 0, -1)},
		{"yaw half turn", math.Pi, 0, geometry.NewVector3(-1, 0, 0)},
		{"pitch straight up", 0, math.Pi / 2, geometry.NewVector3(0, 1, 0)},
		{"pitch down after yaw", -math.Pi / 2, -math.Pi / 4, geometry.NewVector3(0, -math.Sqrt2/2, math.Sqrt2/2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ToCartesian(tt.theta, tt.phi, 1)
			require.NoError(t, err)
			assert.True(t, v.ApproxEqual(tt.want, 1e-9), "want %v got %v", tt.want, v)
		})
	}
}

func TestToCartesianZeroMagnitude(t *testing.T) {
	v, err := ToCartesian(1.2, -0.7, 0)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestToCartesianRejectsNegativeMagnitude(t *testing.T) {
	_, err := ToCartesian(0.1, 0.2, -1)
	require.ErrorIs(t, err, ErrInvalidMagnitude)

	_, err = New(0, 0, -0.5)
	require.ErrorIs(t, err, ErrInvalidMagnitude)

	_, err = ToCartesian(0, 0, math.NaN())
	require.ErrorIs(t, err, ErrInvalidMagnitude)
}

func TestRoundTrip(t *testing.T) {
	const tolerance = 1e-3
	for theta := -math.Pi + 0.05; theta <= math.Pi; theta += 0.15 {
		for phi := -math.Pi/2 + 0.05; phi < math.Pi/2; phi += 0.1 {
			for _, r := range []float64{0.01, 0.5, 2, 4.9} {
				v, err := ToCartesian(theta, phi, r)
				require.NoError(t, err)

				m := ToMetric(v)
				assert.InDelta(t, theta, m.Theta, tolerance, "theta for (%v, %v, %v)", theta, phi, r)
				assert.InDelta(t, phi, m.Phi, tolerance, "phi for (%v, %v, %v)", theta, phi, r)
				assert.InDelta(t, r, m.R, tolerance, "r for (%v, %v, %v)", theta, phi, r)
			}
		}
	}
}

func TestRoundTripWrapsAzimuth(t *testing.T) {
	a, err := ToCartesian(0.4, 0.3, 1.5)
	require.NoError(t, err)
	b, err := ToCartesian(0.4+2*math.Pi, 0.3, 1.5)
	require.NoError(t, err)

	assert.True(t, a.ApproxEqual(b, 1e-9))
	assert.InDelta(t, 0.4, ToMetric(b).Theta, 1e-9)
}

func TestToMetricOrigin(t *testing.T) {
	assert.Equal(t, ColourMetric{}, ToMetric(geometry.Vector3{}))
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
		{7, 7 - 2*math.Pi},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-12, "NormalizeAngle(%v)", tt.in)
	}
}
