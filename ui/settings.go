package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/species"
)

// Maximum population reachable from the slider.
const maxPopulationSlider = 5000

// HostSettings holds the values the panel edits that live outside the engine.
type HostSettings struct {
	Timestep float32
}

// SettingsPanel is the raygui panel for flock and per-species settings.
// Species sections are collapsed until clicked.
type SettingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	expanded map[string]bool
	sliders  []SliderDescriptor
	bounds   rl.Rectangle
}

// NewSettingsPanel creates a visible settings panel at (x, y).
func NewSettingsPanel(x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		expanded: make(map[string]bool),
		sliders:  SpeciesSliders(),
	}
}

// SetPosition updates the panel position.
func (p *SettingsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle flips visibility and returns the new state.
func (p *SettingsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible reports whether the panel is drawn.
func (p *SettingsPanel) IsVisible() bool {
	return p.visible
}

// Contains reports whether a screen point lies over the panel as last drawn.
// Pointer spawns are suppressed there.
func (p *SettingsPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.bounds)
}

// Draw renders the panel and applies any edits to the engine and host settings.
func (p *SettingsPanel) Draw(e *flock.Engine, host *HostSettings) {
	if !p.visible {
		return
	}

	r := p.renderer
	pad := r.Theme.Padding
	x := float32(p.x + pad)
	w := float32(p.width - 2*pad)
	rowH := float32(18)

	// Background sized from the previous frame's layout.
	r.DrawPanel(p.x, p.y, p.width, int32(p.bounds.Height))

	y := float32(p.y + pad)
	y = float32(r.DrawSectionHeader(int32(x), int32(y), "flock settings"))

	enabled := e.Randomizer().Enabled
	if checked := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "randomization", enabled); checked != enabled {
		e.SetRandomization(checked)
	}
	y += rowH + 4

	y = p.slider(x, y, w, "timestep", "%.2f", &host.Timestep, 0, 5)

	maxPop := float32(e.MaxPopulation())
	p.slider(x, y, w, "max agents", "%.0f", &maxPop, 0, maxPopulationSlider)
	if int(maxPop) != e.MaxPopulation() {
		e.SetMaxPopulation(int(maxPop))
	}
	y += rowH + 6

	r.DrawLabel(int32(x), int32(y), fmt.Sprintf("current agents %d", e.PopulationSize()))
	y += rowH

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 22}, "generate random species") {
		e.AddRandomSpecies()
	}
	y += 30

	y = float32(r.DrawSectionHeader(int32(x), int32(y), "species settings"))

	counts := e.CountBySpecies()
	for _, id := range e.SpeciesIDs() {
		cfg, ok := e.SpeciesConfig(id)
		if !ok {
			continue
		}

		r.DrawColorSwatch(int32(x), int32(y), SpeciesColor(cfg.Color))
		label := fmt.Sprintf("%s (%d)", id, counts[id])
		if gui.Button(rl.Rectangle{X: x + 16, Y: y, Width: w - 16, Height: rowH}, label) {
			p.expanded[id] = !p.expanded[id]
		}
		y += rowH + 4

		if !p.expanded[id] {
			continue
		}

		edited := cfg
		for _, s := range p.sliders {
			v := s.Get(&edited)
			y = p.slider(x, y, w, s.Label, s.Format, &v, s.Min, s.Max)
			s.Set(&edited, v)
		}
		if edited != cfg {
			e.InsertSpeciesConfig(id, edited)
		}

		if !species.IsBuiltin(id) {
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 20}, "remove species") {
				e.RemoveSpeciesConfig(id)
				delete(p.expanded, id)
			}
			y += 26
		}
	}

	p.bounds = rl.Rectangle{
		X:      float32(p.x),
		Y:      float32(p.y),
		Width:  float32(p.width),
		Height: y - float32(p.y) + float32(pad),
	}
}

// slider draws one labelled slider row and returns the next row's y.
func (p *SettingsPanel) slider(x, y, w float32, label, format string, value *float32, min, max float32) float32 {
	r := p.renderer
	labelW := float32(r.Theme.LabelWidth)
	valueW := float32(44)

	r.DrawLabel(int32(x), int32(y+2), label)
	*value = gui.SliderBar(
		rl.Rectangle{X: x + labelW, Y: y, Width: w - labelW - valueW, Height: 16},
		"", "",
		*value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+w-valueW+4), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	return y + 20
}
