package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

// Background matches the dark neon theme.
var background = rl.Color{R: 16, G: 18, B: 24, A: 255}

const controlsText = "Mouse: spawn | Space: pause | Tab: settings | R: random species | Right click: inspect | Arrows/Wheel: camera | Home: reset | F3: perf | L: log | H: hide"

// Draw renders the game.
func (g *Game) Draw() {
	g.runner.PerfCollector().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(background)

	g.flock.Draw(g.runner.Geometry(), g.camera)
	g.inspector.DrawSelectionHighlight(g.Engine(), g.camera)

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and panels over the flock.
func (g *Game) drawUI() {
	e := g.Engine()
	last, _ := g.runner.LastStats()

	g.hud.Draw(ui.HUDData{
		Title:         Title,
		Population:    e.PopulationSize(),
		MaxPopulation: e.MaxPopulation(),
		SpeciesCount:  len(e.SpeciesIDs()),
		Steps:         g.runner.Steps(),
		Timestep:      g.runner.Timestep(),
		FPS:           rl.GetFPS(),
		Paused:        g.runner.Paused(),
		Polarization:  last.Polarization,
		ScreenHeight:  int32(g.screenHeight),
	})

	if g.showControls {
		g.hud.DrawControls(int32(g.screenHeight), controlsText)
	}

	if g.showPerf {
		g.perfPanel.Draw(g.perfStats())
	}

	g.settings.Draw(e, &g.host)
	g.inspector.Draw(e)
}

func (g *Game) perfStats() telemetry.PerfStats {
	return g.runner.PerfCollector().Stats()
}
