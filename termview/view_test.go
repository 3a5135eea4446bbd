package termview

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
)

func newTestView(t *testing.T) (*View, tcell.SimulationScreen) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	runner, err := sim.New(cfg, sim.Options{})
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	t.Cleanup(func() { runner.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	return New(screen, runner, Options{}), screen
}

func TestWorldToCell(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		cx, cy int
		ok     bool
	}{
		{"centre", 0, 0, 40, 12, true},
		{"top left", -50, 25, 0, 0, true},
		{"bottom right edge", 50, -25, 79, 23, true},
		{"just inside right", 49.9, 0, 79, 12, true},
		{"left of world", -51, 0, 0, 0, false},
		{"above world", 0, 26, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy, ok := WorldToCell(tt.x, tt.y, 100, 50, 80, 24)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (cx != tt.cx || cy != tt.cy) {
				t.Errorf("cell = (%d, %d), want (%d, %d)", cx, cy, tt.cx, tt.cy)
			}
		})
	}

	if _, _, ok := WorldToCell(0, 0, 100, 50, 0, 24); ok {
		t.Error("zero columns should map nothing")
	}
}

func TestCellToNormalized(t *testing.T) {
	xn, yn := CellToNormalized(0, 0, 80, 24)
	if math.Abs(float64(xn)-0.5/80) > 1e-6 || math.Abs(float64(yn)-0.5/24) > 1e-6 {
		t.Errorf("top left = (%v, %v)", xn, yn)
	}
	xn, yn = CellToNormalized(79, 23, 80, 24)
	if xn >= 1 || yn >= 1 || xn < 0.98 || yn < 0.97 {
		t.Errorf("bottom right = (%v, %v)", xn, yn)
	}
	if xn, yn := CellToNormalized(3, 3, 0, 0); xn != 0.5 || yn != 0.5 {
		t.Errorf("empty grid = (%v, %v), want centre", xn, yn)
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		vx, vy float32
		want   rune
	}{
		{1, 0, '→'},
		{1, 1, '↗'},
		{0, 1, '↑'},
		{-1, 1, '↖'},
		{-1, 0, '←'},
		{-1, -1, '↙'},
		{0, -1, '↓'},
		{1, -1, '↘'},
		{0, 0, '·'},
	}

	for _, tt := range tests {
		if got := HeadingGlyph(tt.vx, tt.vy); got != tt.want {
			t.Errorf("HeadingGlyph(%v, %v) = %q, want %q", tt.vx, tt.vy, got, tt.want)
		}
	}
}

func TestMouseSpawn(t *testing.T) {
	clicked, _ := newTestView(t)
	plain, _ := newTestView(t)

	if !clicked.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)) {
		t.Fatal("mouse event should not quit")
	}
	// Clicks on the status line are ignored.
	clicked.HandleEvent(tcell.NewEventMouse(5, 24, tcell.Button1, tcell.ModNone))
	// Motion without a button spawns nothing.
	clicked.HandleEvent(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))

	clicked.runner.Step()
	plain.runner.Step()

	got := clicked.runner.Engine().PopulationSize()
	want := plain.runner.Engine().PopulationSize() + 1
	if got != want {
		t.Fatalf("population = %d, want %d", got, want)
	}

	// The extra agent lands in the top left corner of the world.
	found := false
	for _, a := range clicked.runner.Engine().Snapshot() {
		if a.X < -600 && a.Y > 320 {
			found = true
		}
	}
	if !found {
		t.Error("no agent near the clicked corner")
	}
}

func TestDraw(t *testing.T) {
	v, screen := newTestView(t)
	for i := 0; i < 20; i++ {
		v.runner.Step()
	}
	v.Draw()

	agents := 0
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r != ' ' && r != 0 {
				agents++
			}
		}
	}
	if agents == 0 {
		t.Error("no agents drawn")
	}

	var status strings.Builder
	for x := 0; x < 8; x++ {
		r, _, _, _ := screen.GetContent(x, v.rows)
		status.WriteRune(r)
	}
	if status.String() != " agents " {
		t.Errorf("status line starts %q", status.String())
	}
}

func TestKeys(t *testing.T) {
	v, _ := newTestView(t)

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !v.runner.Paused() {
		t.Error("space should pause")
	}
	before := len(v.runner.Engine().SpeciesIDs())
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if got := len(v.runner.Engine().SpeciesIDs()); got != before+1 {
		t.Errorf("species = %d after r, want %d", got, before+1)
	}

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		if v.HandleEvent(ev) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
}

func TestRunReleasesEventsOnQuit(t *testing.T) {
	v, screen := newTestView(t)

	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := v.Run(ctx); err != nil {
		t.Fatalf("Run = %v, want nil after q", err)
	}

	// Nothing may still be reading the screen once Run has returned.
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	ev, ok := screen.PollEvent().(*tcell.EventKey)
	if !ok || ev.Rune() != 'z' {
		t.Errorf("PollEvent = %v, want the z key left on the screen", ev)
	}
}
