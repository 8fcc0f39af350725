package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/tetraview/pkg/analysis"
	"github.com/philipparndt/tetraview/pkg/metric"
	"github.com/philipparndt/tetraview/pkg/volume"
	"github.com/spf13/cobra"
)

func newVolumeCmd() *cobra.Command {
	var (
		inputs    []string
		inDegrees bool
		edges     int
	)
	cmd := &cobra.Command{
		Use:   "volume -m <theta,phi,r> -m <theta,phi,r>...",
		Short: "Build the convex volume around a group of colour metrics",
		Long: `Build the convex volume around two or more colour metrics and print its
vertices, faces with outward normals and edges. Two metrics give a line segment
and three give a single triangle.`,
		Example: `  tetraview volume -m 0,0,1 -m 0,0,0
  tetraview volume -d -m 0,0,1 -m 120,0,1 -m -120,0,1 -m 0,90,1 --edges 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(inputs) < 2 {
				return fmt.Errorf("need at least two metrics, got %d", len(inputs))
			}
			metrics := make([]metric.ColourMetric, 0, len(inputs))
			for _, text := range inputs {
				parts := strings.Split(text, ",")
				if len(parts) != 3 {
					return fmt.Errorf("metric %q: expected theta,phi,r", text)
				}
				values, err := parseFloats(parts)
				if err != nil {
					return fmt.Errorf("metric %q: %w", text, err)
				}
				if inDegrees {
					values[0], values[1] = values[0]*math.Pi/180, values[1]*math.Pi/180
				}
				metrics = append(metrics, metric.ColourMetric{Theta: values[0], Phi: values[1], R: values[2]})
			}

			vol, err := volume.BuildFromMetrics(metrics)
			if err != nil {
				return err
			}
			printVolume(cmd, vol, edges)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&inputs, "metric", "m", nil, "colour metric as theta,phi,r (repeatable)")
	cmd.Flags().BoolVarP(&inDegrees, "degrees", "d", false, "angles are in degrees")
	cmd.Flags().IntVar(&edges, "edges", 0, "list the N longest and N shortest edges")
	return cmd
}

func printVolume(cmd *cobra.Command, vol *volume.Volume, edges int) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Vertices:")
	for i, v := range vol.Vertices {
		fmt.Fprintf(out, "  %3d  %s\n", i, analysis.FormatVector(v))
	}

	if vol.IsSegment() {
		fmt.Fprintln(out, "Segment (no faces)")
	} else {
		fmt.Fprintln(out, "Faces:")
		for i, f := range vol.Faces {
			fmt.Fprintf(out, "  %3d  [%d %d %d]  normal %s\n", i, f.A, f.B, f.C, analysis.FormatVector(vol.Normals[i]))
		}
	}

	result := analysis.AnalyzeVolume(vol)
	fmt.Fprintf(out, "Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Minimum: %.6f\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f\n", result.AvgEdgeLength)
	if edges > 0 {
		printEdges(cmd, "Longest", analysis.FindLongestEdges(result, edges))
		printEdges(cmd, "Shortest", analysis.FindShortestEdges(result, edges))
	}
	fmt.Fprintf(out, "Centroid: %s\n", analysis.FormatVector(vol.Centroid()))
	fmt.Fprintf(out, "Bounding Box: %s - %s\n", analysis.FormatVector(result.BoundingBox.Min), analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "Surface Area: %.6f\n", result.SurfaceArea)
	fmt.Fprintf(out, "Volume: %.6f\n", result.Volume)
}

func printEdges(cmd *cobra.Command, title string, edges []analysis.EdgeInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s edges:\n", title)
	for _, e := range edges {
		fmt.Fprintf(out, "  %s - %s  %.6f\n", analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.Length)
	}
}
