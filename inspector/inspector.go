// Package inspector shows the components of a selected agent and the
// parameters of its species.
package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/flock"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30

	// pickRadius is the click tolerance in screen pixels.
	pickRadius = 12
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages agent selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
	panelHeight int32
}

// NewInspector creates an inspector whose panel sits at (x, y).
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// SetPosition moves the panel.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX = x
	ins.panelY = y
}

// HandleInput selects the agent under the cursor on right click. Right
// clicking empty space, the close button or pressing Escape deselects.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera, e *flock.Engine) {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}
		if ins.Contains(mouseX, mouseY) {
			return
		}
	}

	wx, wy := cam.ScreenToWorld(mouseX, mouseY)
	ent, ok := e.AgentNear(wx, wy, pickRadius/cam.Zoom)
	if !ok {
		ins.Deselect()
		return
	}
	ins.selected = ent
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected agent.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether a screen point is over the open panel.
func (ins *Inspector) Contains(x, y float32) bool {
	if !ins.hasSelected {
		return false
	}
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY && int32(y) <= ins.panelY+ins.panelHeight
}

// agentFields lists the agent's components plus its heading and speed.
func agentFields(d *flock.AgentDetail) []Field {
	fields := ExtractFields(d)
	heading := float32(math.Atan2(float64(d.Velocity.Y), float64(d.Velocity.X)))
	speed := float32(math.Hypot(float64(d.Velocity.X), float64(d.Velocity.Y)))
	return append(fields,
		Field{Name: "Heading", Value: heading, Widget: WidgetAngle},
		Field{Name: "Speed", Value: speed, Widget: WidgetBar, Options: map[string]string{
			"max": FormatValue(d.Config.MaxSpeed, "%g"),
		}},
	)
}

// Draw renders the inspector panel if an agent is selected.
func (ins *Inspector) Draw(e *flock.Engine) {
	if !ins.hasSelected {
		return
	}

	d, ok := e.Agent(ins.selected)
	if !ok {
		// Evicted or its species was removed
		ins.Deselect()
		return
	}

	agent := agentFields(&d)
	params := ExtractFields(&d.Config)
	ins.panelHeight = ins.calculatePanelHeight(agent, params)

	// Draw panel background
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Draw header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	// Draw close button
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	ins.drawSectionHeader(x, y, "AGENT")
	y += 20
	for _, f := range agent {
		y += DrawField(x, y, f)
	}

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	ins.drawSectionHeader(x, y, "SPECIES "+d.Species)
	y += 20
	for _, f := range params {
		y += DrawField(x, y, f)
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the dynamic panel height.
func (ins *Inspector) calculatePanelHeight(sections ...[]Field) int32 {
	height := int32(HeaderHeight + PanelPadding)
	for i, fields := range sections {
		if i > 0 {
			height += 12 // separator
		}
		height += 20 // section header
		for _, f := range fields {
			height += FieldHeight(f)
		}
	}
	return height + PanelPadding
}

// DrawSelectionHighlight marks the selected agent and its perception and
// separation radii.
func (ins *Inspector) DrawSelectionHighlight(e *flock.Engine, cam *camera.Camera) {
	if !ins.hasSelected {
		return
	}
	d, ok := e.Agent(ins.selected)
	if !ok {
		return
	}

	sx, sy := cam.WorldToScreen(d.Position.X, d.Position.Y)
	center := rl.Vector2{X: sx, Y: sy}
	r, g, b := d.Config.Color.Bytes()

	rl.DrawCircleLinesV(center, d.Config.PerceptionRadius*cam.Zoom, rl.Color{R: r, G: g, B: b, A: 90})
	rl.DrawCircleLinesV(center, d.Config.SeparationRadius*cam.Zoom, rl.Color{R: 255, G: 120, B: 120, A: 90})
	rl.DrawCircleLinesV(center, (d.Config.AgentSize+4)*cam.Zoom, rl.Yellow)
}
