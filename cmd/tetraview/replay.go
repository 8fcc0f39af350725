package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/internal/scenario"
	"github.com/philipparndt/tetraview/internal/scene"
	"github.com/philipparndt/tetraview/pkg/analysis"
	"github.com/philipparndt/tetraview/pkg/watcher"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		watch bool
		every int
	)
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scripted camera session and print the camera per frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := replay(cmd.OutOrStdout(), path, every); err != nil {
				if !watch {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchAndReplay(ctx, cmd, path, every)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "replay again whenever the file changes")
	cmd.Flags().IntVar(&every, "every", 1, "print every n-th frame; changed poses only when 0")
	return cmd
}

func replay(out io.Writer, path string, every int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	if s.Name != "" {
		fmt.Fprintf(out, "Scenario: %s\n", s.Name)
	}
	world := scene.New(cfg)
	report := s.Run(world, func(i int, f scene.Frame) {
		if (every > 0 && i%every != 0) || (every <= 0 && !f.PoseChanged) {
			return
		}
		fmt.Fprintln(out, formatFrame(i, f))
	})

	fmt.Fprintf(out, "Frames: %d  Points: %d  Volumes: %d\n", report.Frames, len(world.Points()), len(world.Shapes()))
	for _, err := range report.Rejected {
		fmt.Fprintf(out, "  rejected: %v\n", err)
	}
	for _, ev := range report.Unclaimed {
		fmt.Fprintf(out, "  unclaimed: %s\n", ev)
	}
	return nil
}

func formatFrame(i int, f scene.Frame) string {
	hovered, selected := f.Hovered, f.Selected
	if hovered == "" {
		hovered = "-"
	}
	if selected == "" {
		selected = "-"
	}
	return fmt.Sprintf("%5d  %-15s pos=%s pitch=%7.2f° hover=%s select=%s",
		i, f.Mode, analysis.FormatVector(f.Pose.Position), f.Pose.Pitch()*180/math.Pi, hovered, selected)
}

func watchAndReplay(ctx context.Context, cmd *cobra.Command, path string, every int) error {
	w, err := watcher.New(200*time.Millisecond, monitoring.Logger())
	if err != nil {
		return err
	}
	defer w.Close()

	changes := make(chan struct{}, 1)
	if err := w.Watch([]string{path}, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	go w.Run(ctx)

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			fmt.Fprintln(cmd.OutOrStdout())
			if err := replay(cmd.OutOrStdout(), path, every); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		}
	}
}
