package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the simulation in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")
			logStats, _ := cmd.Flags().GetBool("log-stats")
			cfg := config.Cfg()

			rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
			rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
			defer rl.CloseWindow()

			rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
			// Tab toggles the settings panel, so it must not close the window.
			rl.SetExitKey(rl.KeyNull)

			g, err := game.New(cfg, game.Options{
				LogStats:  logStats,
				OutputDir: outputDir,
			})
			if err != nil {
				return err
			}
			defer g.Unload()

			for !rl.WindowShouldClose() {
				g.Update()
				g.Draw()
			}
			return nil
		},
	}

	cmd.Flags().String("output", "", "Output directory for CSV logs and config snapshot")
	cmd.Flags().Bool("log-stats", false, "Output window stats via slog")
	return cmd
}
