package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/termview"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the simulation in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sound, _ := cmd.Flags().GetBool("sound")
			fps, _ := cmd.Flags().GetInt("fps")
			logFile, _ := cmd.Flags().GetString("log-file")

			// Logs would tear the screen; send them elsewhere.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.Create(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				logOut = f
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

			cfg := config.Cfg()
			if fps > 0 {
				// Durations are converted at the target frame rate, so they
				// must follow the frame rate this view actually runs at.
				cfg.Screen.TargetFPS = fps
				if err := cfg.Recompute(); err != nil {
					return err
				}
			}

			runner, err := sim.New(cfg, sim.Options{})
			if err != nil {
				return err
			}
			defer runner.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			view := termview.New(screen, runner, termview.Options{FrameInterval: cfg.Derived.FrameInterval, Sound: sound})
			defer view.Close()

			err = view.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().Bool("sound", false, "Click on pointer spawns")
	cmd.Flags().Int("fps", 0, "Frames per second (0 uses screen.target_fps)")
	cmd.Flags().String("log-file", "", "Write logs here while the screen is active")
	return cmd
}
