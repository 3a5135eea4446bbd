// Package termview renders a running flock in a terminal with tcell. Each
// agent is plotted as a colored arrow in the cell its position falls into.
package termview

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/species"
)

// Options configures a View.
type Options struct {
	FrameInterval time.Duration // 0 uses ~60 FPS
	Sound         bool          // click on pointer spawns
}

// View draws a sim.Runner onto a tcell screen.
type View struct {
	screen tcell.Screen
	runner *sim.Runner
	click  *clicker

	frameInterval time.Duration
	cols, rows    int // flock area, the status line sits below it
}

// New creates a view over an initialized screen.
func New(screen tcell.Screen, runner *sim.Runner, opts Options) *View {
	v := &View{
		screen:        screen,
		runner:        runner,
		frameInterval: opts.FrameInterval,
	}
	if v.frameInterval <= 0 {
		v.frameInterval = 16 * time.Millisecond
	}
	if opts.Sound {
		c, err := newClicker()
		if err != nil {
			// Non-fatal, the view runs silently
			slog.Warn("audio init failed", "error", err)
		} else {
			v.click = c
		}
	}
	screen.EnableMouse()
	v.resize()
	return v
}

// Run steps and redraws until ctx is done or the user quits.
func (v *View) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer func() {
		close(quit)
		// ChannelEvents closes events on exit; wait for it.
		for range events {
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				// Screen finalized
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			v.runner.Step()
			v.Draw()
		}
	}
}

// HandleEvent applies one input event. Returns false when the user quits.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.runner.TogglePause()
			case 'r':
				v.runner.Engine().AddRandomSpecies()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return true
		}
		x, y := ev.Position()
		if y >= v.rows {
			return true
		}
		xn, yn := CellToNormalized(x, y, v.cols, v.rows)
		v.runner.Engine().RequestSpawn(xn, yn)
		if v.click != nil {
			v.click.Click()
		}

	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}

	return true
}

func (v *View) resize() {
	w, h := v.screen.Size()
	v.cols = w
	v.rows = max(h-1, 0)
}

// Draw renders every agent and the status line.
func (v *View) Draw() {
	v.screen.Clear()

	e := v.runner.Engine()
	ww, wh := v.runner.Size()

	styles := make(map[string]tcell.Style)
	for _, id := range e.SpeciesIDs() {
		cfg, _ := e.SpeciesConfig(id)
		styles[id] = speciesStyle(cfg.Color)
	}

	for _, a := range e.Snapshot() {
		cx, cy, ok := WorldToCell(a.X, a.Y, ww, wh, v.cols, v.rows)
		if !ok {
			continue
		}
		v.screen.SetContent(cx, cy, HeadingGlyph(a.VX, a.VY), nil, styles[a.Species])
	}

	v.drawStatus(e)
	v.screen.Show()
}

func (v *View) drawStatus(e *flock.Engine) {
	state := "running"
	if v.runner.Paused() {
		state = "paused"
	}
	status := fmt.Sprintf(" agents %d/%d  species %d  step %d  %s  [click] spawn [space] pause [r] species [q] quit",
		e.PopulationSize(), e.MaxPopulation(), len(e.SpeciesIDs()), v.runner.Steps(), state)

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	col := 0
	for _, r := range status {
		if col >= v.cols {
			break
		}
		v.screen.SetContent(col, v.rows, r, nil, style)
		col++
	}
	for ; col < v.cols; col++ {
		v.screen.SetContent(col, v.rows, ' ', nil, style)
	}
}

// Close releases audio. The caller finalizes the screen.
func (v *View) Close() {
	if v.click != nil {
		v.click.Close()
	}
}

// WorldToCell maps a world position (origin centre, y up) inside a
// worldW × worldH world to a cell of a cols × rows grid.
func WorldToCell(x, y, worldW, worldH float32, cols, rows int) (cx, cy int, ok bool) {
	if worldW <= 0 || worldH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	fx := (x + worldW/2) / worldW
	fy := (worldH/2 - y) / worldH
	cx = int(math.Floor(float64(fx * float32(cols))))
	cy = int(math.Floor(float64(fy * float32(rows))))
	// Agents exactly on the far edge belong to the last cell.
	cx = min(cx, cols-1)
	cy = min(cy, rows-1)
	if cx < 0 || cy < 0 {
		return 0, 0, false
	}
	return cx, cy, true
}

// CellToNormalized returns the normalized spawn coordinates of a cell centre.
func CellToNormalized(cx, cy, cols, rows int) (xn, yn float32) {
	if cols <= 0 || rows <= 0 {
		return 0.5, 0.5
	}
	xn = (float32(cx) + 0.5) / float32(cols)
	yn = (float32(cy) + 0.5) / float32(rows)
	return xn, yn
}

var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// HeadingGlyph picks an arrow for a world velocity (y up). A zero velocity
// draws a dot.
func HeadingGlyph(vx, vy float32) rune {
	if vx == 0 && vy == 0 {
		return '·'
	}
	angle := math.Atan2(float64(vy), float64(vx))
	octant := int(math.Round(angle/(math.Pi/4))) & 7
	return headingGlyphs[octant]
}

func speciesStyle(c species.Color) tcell.Style {
	r, g, b := c.Bytes()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
