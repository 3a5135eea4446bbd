package systems

import (
	"math"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/species"
)

// Triangle layout: the nose sits 1.5 × r ahead along the heading and the two
// wing tips sit at heading ± wingSpread.
const (
	VerticesPerAgent = 3
	FloatsPerVertex  = 3
	wingSpread       = 2.4
	noseScale        = 1.5
)

// Geometry is the flat vertex output of one step.
// Positions holds (x, y, 0) per vertex; Colors holds (r, g, b) per vertex.
type Geometry struct {
	Positions []float32
	Colors    []float32
}

// NewGeometry allocates buffers sized for n agents.
func NewGeometry(n int) Geometry {
	size := n * VerticesPerAgent * FloatsPerVertex
	return Geometry{
		Positions: make([]float32, 0, size),
		Colors:    make([]float32, 0, size),
	}
}

// Agents returns the number of agents encoded in the buffers.
func (g Geometry) Agents() int {
	return len(g.Positions) / (VerticesPerAgent * FloatsPerVertex)
}

// TriangleVertices returns the three corners of an agent's triangle,
// nose first, oriented along its velocity.
func TriangleVertices(pos components.Position, vel components.Velocity, size float32) [3][2]float32 {
	angle := math.Atan2(float64(vel.Y), float64(vel.X))
	r := float64(size) / math.Sqrt(3)
	px, py := float64(pos.X), float64(pos.Y)

	return [3][2]float32{
		{float32(r*noseScale*math.Cos(angle) + px), float32(r*noseScale*math.Sin(angle) + py)},
		{float32(r*math.Cos(angle+wingSpread) + px), float32(r*math.Sin(angle+wingSpread) + py)},
		{float32(r*math.Cos(angle-wingSpread) + px), float32(r*math.Sin(angle-wingSpread) + py)},
	}
}

// AppendAgent appends one agent's triangle and per-vertex color.
func (g *Geometry) AppendAgent(pos components.Position, vel components.Velocity, cfg *species.Config) {
	for _, v := range TriangleVertices(pos, vel, cfg.AgentSize) {
		g.Positions = append(g.Positions, v[0], v[1], 0)
		g.Colors = append(g.Colors, cfg.Color.R, cfg.Color.G, cfg.Color.B)
	}
}
