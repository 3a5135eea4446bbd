package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/flock/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flock",
		Short: "Multi-species flocking simulation",
		Long: `flock simulates several species of boids, each tuned by its own
separation, alignment and cohesion parameters.

Run it in a window, in the terminal, or headless with CSV telemetry.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Set up slog (JSON to stdout for structured logging)
			level := slog.LevelInfo
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			// Initialize config before anything else
			path, _ := cmd.Flags().GetString("config")
			if err := config.Init(path); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return applyOverrides(cmd, config.Cfg())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = use config)")
	rootCmd.PersistentFlags().Int("max-population", -1, "Maximum agents (-1 = use config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newViewCmd(),
		newTUICmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// applyOverrides copies global flags onto the loaded config.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Simulation.Seed = seed
	}
	if maxPop, _ := cmd.Flags().GetInt("max-population"); maxPop >= 0 {
		cfg.Simulation.MaxPopulation = maxPop
	}
	return cfg.Recompute()
}
