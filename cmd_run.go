package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless",
		Long: `Run the simulation without graphics, optionally writing telemetry.

Examples:
  flock run --steps 6000 --log-stats
  flock run --output runs/a --steps 36000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")
			maxSteps, _ := cmd.Flags().GetInt64("steps")
			logStats, _ := cmd.Flags().GetBool("log-stats")
			statsWindow, _ := cmd.Flags().GetFloat64("stats-window")

			cfg := config.Cfg()
			// Use config stats window if not overridden by CLI
			if statsWindow > 0 {
				cfg.Telemetry.StatsWindow = statsWindow
			}

			g, err := game.New(cfg, game.Options{
				Headless:  true,
				LogStats:  logStats,
				OutputDir: outputDir,
			})
			if err != nil {
				return err
			}
			defer g.Unload()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			slog.Info("starting headless simulation",
				"seed", cfg.Simulation.Seed,
				"max_steps", maxSteps,
				"output", outputDir,
			)
			return runHeadless(ctx, g, maxSteps)
		},
	}

	cmd.Flags().String("output", "", "Output directory for CSV logs and config snapshot")
	cmd.Flags().Int64("steps", 0, "Stop after N steps (0 = until interrupted)")
	cmd.Flags().Bool("log-stats", false, "Output window stats via slog")
	cmd.Flags().Float64("stats-window", 0, "Stats window size in sim time (0 = use config)")
	return cmd
}

func runHeadless(ctx context.Context, g *game.Game, maxSteps int64) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "step", g.Steps())
			return nil
		default:
		}

		g.UpdateHeadless()

		if maxSteps > 0 && g.Steps() >= maxSteps {
			slog.Info("max steps reached", "step", g.Steps())
			return nil
		}
	}
}
