package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/philipparndt/tetraview/pkg/analysis"
	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/metric"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	var theta, phi, r float64
	var inDegrees bool
	cmd := &cobra.Command{
		Use:   "project --theta <angle> --phi <angle> [--r <magnitude>]",
		Short: "Convert a colour metric to a Cartesian position",
		Example: `  tetraview project --theta 0 --phi 0
  tetraview project -d --theta -120 --phi 30 --r 0.5
  tetraview project --theta=-2.0944 --phi=0.5236`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inDegrees {
				theta, phi = theta*math.Pi/180, phi*math.Pi/180
			}
			v, err := metric.ToCartesian(theta, phi, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.FormatVector(v))
			return nil
		},
	}
	cmd.Flags().Float64Var(&theta, "theta", 0, "hue angle")
	cmd.Flags().Float64Var(&phi, "phi", 0, "elevation angle")
	cmd.Flags().Float64Var(&r, "r", 1, "magnitude")
	cmd.Flags().BoolVarP(&inDegrees, "degrees", "d", false, "angles are in degrees")
	return cmd
}

func newMetricCmd() *cobra.Command {
	var x, y, z float64
	var inDegrees bool
	cmd := &cobra.Command{
		Use:   "metric [--x <x>] [--y <y>] [--z <z>]",
		Short: "Convert a Cartesian position to a colour metric",
		Example: `  tetraview metric --x 1 --z -1
  tetraview metric -d --x=-0.5 --y 0.25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := metric.ToMetric(geometry.NewVector3(x, y, z))
			if inDegrees {
				fmt.Fprintf(cmd.OutOrStdout(), "theta=%.4f° phi=%.4f° r=%.6f\n", m.Theta*180/math.Pi, m.Phi*180/math.Pi, m.R)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate (up)")
	cmd.Flags().Float64Var(&z, "z", 0, "z coordinate")
	cmd.Flags().BoolVarP(&inDegrees, "degrees", "d", false, "print angles in degrees")
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}
