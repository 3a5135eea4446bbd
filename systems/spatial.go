// Package systems provides the per-step flocking systems: spatial indexing,
// steering forces, integration and geometry output.
package systems

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// AgentPoint is one agent position fed to the spatial index.
// Index refers back into the caller's agent snapshot.
type AgentPoint struct {
	X, Y  float32
	Index int
}

// kdPoint adapts an agent position to gonum's kdtree.Comparable.
// Distance is squared Euclidean, as kdtree expects for its pruning test.
type kdPoint struct {
	x, y float64
	idx  int
}

func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdPoint)
	switch d {
	case 0:
		return p.x - q.x
	case 1:
		return p.y - q.y
	default:
		panic("systems: illegal kd dimension")
	}
}

func (p kdPoint) Dims() int { return 2 }

func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(kdPoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

type kdPoints []kdPoint

func (p kdPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p kdPoints) Len() int                              { return len(p) }
func (p kdPoints) Pivot(d kdtree.Dim) int                { return kdPlane{Dim: d, kdPoints: p}.Pivot() }
func (p kdPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// kdPlane sorts points along one dimension for median partitioning.
type kdPlane struct {
	kdtree.Dim
	kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.kdPoints[i].x < p.kdPoints[j].x
	}
	return p.kdPoints[i].y < p.kdPoints[j].y
}

// Pivot uses median of medians so the tree shape does not depend on a global RNG.
func (p kdPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.kdPoints = p.kdPoints[start:end]
	return p
}

func (p kdPlane) Swap(i, j int) {
	p.kdPoints[i], p.kdPoints[j] = p.kdPoints[j], p.kdPoints[i]
}

// SpatialIndex answers radius queries over a fixed snapshot of agent positions.
// It is rebuilt from scratch every step; there is no incremental update.
type SpatialIndex struct {
	tree    *kdtree.Tree
	size    int
	results []kdtree.ComparableDist
}

// BuildSpatialIndex constructs a balanced 2-D tree over points in O(n log n).
func BuildSpatialIndex(points []AgentPoint) *SpatialIndex {
	s := &SpatialIndex{size: len(points)}
	if len(points) == 0 {
		return s
	}

	pts := make(kdPoints, len(points))
	for i, p := range points {
		pts[i] = kdPoint{x: float64(p.X), y: float64(p.Y), idx: p.Index}
	}
	s.tree = kdtree.New(pts, false)
	return s
}

// Len returns the number of indexed agents.
func (s *SpatialIndex) Len() int {
	return s.size
}

// QueryRadiusInto appends the snapshot index of every agent within radius of
// (x, y), inclusive, and returns the extended slice. Results are ordered by
// distance with ties broken by index, so truncating them is deterministic.
func (s *SpatialIndex) QueryRadiusInto(dst []int, x, y, radius float32) []int {
	if s.tree == nil || radius < 0 {
		return dst
	}

	r := float64(radius)
	keep := kdtree.NewDistKeeper(r * r)
	s.tree.NearestSet(keep, kdPoint{x: float64(x), y: float64(y), idx: -1})

	s.results = s.results[:0]
	for _, c := range keep.Heap {
		// The keeper seeds its heap with a sentinel that carries no point.
		if c.Comparable == nil {
			continue
		}
		s.results = append(s.results, c)
	}
	sort.Slice(s.results, func(i, j int) bool {
		a, b := s.results[i], s.results[j]
		if a.Dist != b.Dist {
			return a.Dist < b.Dist
		}
		return a.Comparable.(kdPoint).idx < b.Comparable.(kdPoint).idx
	})

	for _, c := range s.results {
		dst = append(dst, c.Comparable.(kdPoint).idx)
	}
	return dst
}

// QueryRadius returns all agents within radius of the given position.
// Deprecated: Use QueryRadiusInto to avoid allocations.
func (s *SpatialIndex) QueryRadius(x, y, radius float32) []int {
	return s.QueryRadiusInto(nil, x, y, radius)
}
