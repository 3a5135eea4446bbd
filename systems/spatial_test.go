package systems

import (
	"math/rand"
	"sort"
	"testing"
)

func bruteForceRadius(points []AgentPoint, x, y, radius float32) []int {
	var out []int
	for _, p := range points {
		dx := float64(p.X - x)
		dy := float64(p.Y - y)
		if dx*dx+dy*dy <= float64(radius)*float64(radius) {
			out = append(out, p.Index)
		}
	}
	sort.Ints(out)
	return out
}

func TestSpatialIndexMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := make([]AgentPoint, 500)
	for i := range points {
		points[i] = AgentPoint{
			X:     rng.Float32()*800 - 400,
			Y:     rng.Float32()*600 - 300,
			Index: i,
		}
	}

	idx := BuildSpatialIndex(points)
	if idx.Len() != len(points) {
		t.Fatalf("Len() = %d, want %d", idx.Len(), len(points))
	}

	for q := 0; q < 50; q++ {
		x := rng.Float32()*800 - 400
		y := rng.Float32()*600 - 300
		radius := rng.Float32() * 120

		got := idx.QueryRadius(x, y, radius)
		sort.Ints(got)
		want := bruteForceRadius(points, x, y, radius)

		if len(got) != len(want) {
			t.Fatalf("query %d: got %d results, want %d", q, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("query %d: result %d = %d, want %d", q, i, got[i], want[i])
			}
		}
	}
}

func TestSpatialIndexOrdering(t *testing.T) {
	points := []AgentPoint{
		{X: 3, Y: 0, Index: 0},
		{X: 1, Y: 0, Index: 1},
		{X: 0, Y: 2, Index: 2},
		{X: -1, Y: 0, Index: 3},
	}
	idx := BuildSpatialIndex(points)

	got := idx.QueryRadiusInto(nil, 0, 0, 3)
	want := []int{1, 3, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v (distance then index order)", got, want)
		}
	}
}

func TestSpatialIndexEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		points []AgentPoint
		radius float32
		want   int
	}{
		{"empty index", nil, 100, 0},
		{"negative radius", []AgentPoint{{X: 0, Y: 0, Index: 0}}, -1, 0},
		{"zero radius hits coincident point", []AgentPoint{{X: 0, Y: 0, Index: 0}, {X: 1, Y: 0, Index: 1}}, 0, 1},
		{"radius is inclusive", []AgentPoint{{X: 5, Y: 0, Index: 0}}, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildSpatialIndex(tt.points)
			got := idx.QueryRadius(0, 0, tt.radius)
			if len(got) != tt.want {
				t.Errorf("got %d results, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSpatialIndexAppendsToDst(t *testing.T) {
	idx := BuildSpatialIndex([]AgentPoint{{X: 0, Y: 0, Index: 7}})
	dst := []int{99}
	dst = idx.QueryRadiusInto(dst, 0, 0, 1)
	if len(dst) != 2 || dst[0] != 99 || dst[1] != 7 {
		t.Errorf("dst = %v, want [99 7]", dst)
	}
}
