// Package game is the windowed raylib host for the flock engine.
package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/inspector"
	"github.com/pthm-cable/flock/renderer"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

// Title shown in the window and HUD.
const Title = "Flock"

// Options configures a Game.
type Options struct {
	Headless      bool
	LogStats      bool
	OutputDir     string
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete host state.
type Game struct {
	cfg    *config.Config
	runner *sim.Runner

	// Rendering, nil when headless
	camera    *camera.Camera
	flock     *renderer.FlockRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	settings  *ui.SettingsPanel
	inspector *inspector.Inspector
	host      ui.HostSettings

	headless     bool
	showPerf     bool
	showControls bool

	screenWidth, screenHeight float32
}

// New creates a game from cfg. Graphical games must be created after the
// raylib window is open.
func New(cfg *config.Config, opts Options) (*Game, error) {
	runner, err := sim.New(cfg, sim.Options{
		LogStats:      opts.LogStats,
		OutputDir:     opts.OutputDir,
		StatsCallback: opts.StatsCallback,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		runner:       runner,
		headless:     opts.Headless,
		showControls: true,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	if !g.headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, g.screenWidth, g.screenHeight)
		g.flock = renderer.NewFlockRenderer()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-300, int32(g.screenHeight)-120)
		g.settings = ui.NewSettingsPanel(int32(g.screenWidth)-330, 10, 320)
		g.inspector = inspector.NewInspector(10, 120)
		g.host.Timestep = runner.Timestep()
	}

	return g, nil
}

// Update handles input and advances one frame.
func (g *Game) Update() {
	g.handleInput()
	g.runner.SetTimestep(g.host.Timestep)
	g.runner.Step()
}

// UpdateHeadless advances one frame without touching raylib.
func (g *Game) UpdateHeadless() {
	g.runner.Step()
}

// Engine returns the flock engine.
func (g *Game) Engine() *flock.Engine {
	return g.runner.Engine()
}

// Steps returns the number of engine steps taken.
func (g *Game) Steps() int64 {
	return g.runner.Steps()
}

// Unload releases resources and closes telemetry output.
func (g *Game) Unload() {
	if err := g.runner.Close(); err != nil {
		Logf("closing output: %v", err)
	}
}

// isOverUI reports whether a screen point is covered by an interactive panel.
func (g *Game) isOverUI(x, y float32) bool {
	if g.settings != nil && g.settings.Contains(x, y) {
		return true
	}
	return g.inspector != nil && g.inspector.Contains(x, y)
}

// pointerSpawn queues a spawn at the mouse position while the button is held.
func (g *Game) pointerSpawn() {
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if g.isOverUI(mouse.X, mouse.Y) {
		return
	}
	xn, yn := g.camera.ScreenToNormalized(mouse.X, mouse.Y)
	g.Engine().RequestSpawn(xn, yn)
}
