package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/tetraview/internal/config"
	"github.com/philipparndt/tetraview/internal/monitoring"
	"github.com/philipparndt/tetraview/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tetraview",
		Short: "Navigate and inspect colours in a tetrahedral colour space",
		Long: `tetraview places colours given as spherical metrics (theta, phi, r) into a
3D colour space, builds convex volumes around groups of colours and replays
scripted camera sessions headlessly.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			monitoring.SetLogger(monitoring.NewTextLogger(cmd.ErrOrStderr(), level))
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "tuning file (.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(newProjectCmd(), newMetricCmd(), newVolumeCmd(), newReplayCmd(), newCompletionCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
