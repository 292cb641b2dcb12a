package geometry

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("bvh")

// Primitive pairs an object with its bounding box over the build interval
type Primitive struct {
	Object core.Hittable
	Box    core.AABB
}

// A SplitStrategy decides where a list of primitives is cut in two. Split may
// reorder the slice in place and returns the index of the first primitive of the
// right half, which the builder clamps to [1, len-1].
type SplitStrategy interface {
	Split(primitives []Primitive) int
}

// BVHNode is an interior node of a bounding volume hierarchy. Children are either
// further nodes or the objects themselves. A node built over a single object holds
// it as both children.
type BVHNode struct {
	Left   core.Hittable
	Right  core.Hittable
	Box    core.AABB
	single bool
}

// BVHStats summarises the shape of a built hierarchy
type BVHStats struct {
	Nodes      int
	Primitives int
	MaxDepth   int
}

// NewBVH builds a hierarchy over objects using boxes valid for [time0, time1].
// A nil strategy selects RandomAxisSplit with a fixed seed. The input slice is not
// modified.
func NewBVH(objects []core.Hittable, time0, time1 float64, strategy SplitStrategy) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}
	if strategy == nil {
		strategy = NewRandomAxisSplit(0)
	}

	primitives := make([]Primitive, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d: %w", i, ErrNoBoundingBox)
		}
		primitives[i] = Primitive{Object: object, Box: box}
	}

	start := time.Now()
	root := build(primitives, strategy)
	stats := root.Stats()
	logger.Debugf(
		"BVH build time: %d ms, primitives: %d, nodes: %d, maxDepth: %d",
		time.Since(start).Nanoseconds()/1e6, stats.Primitives, stats.Nodes, stats.MaxDepth,
	)
	return root, nil
}

func build(primitives []Primitive, strategy SplitStrategy) *BVHNode {
	n := len(primitives)
	if n == 1 {
		return &BVHNode{
			Left:   primitives[0].Object,
			Right:  primitives[0].Object,
			Box:    primitives[0].Box,
			single: true,
		}
	}

	// For two primitives the strategy only orders the pair
	mid := strategy.Split(primitives)
	if n == 2 {
		return &BVHNode{
			Left:  primitives[0].Object,
			Right: primitives[1].Object,
			Box:   core.SurroundingBox(primitives[0].Box, primitives[1].Box),
		}
	}

	mid = min(max(mid, 1), n-1)
	left := build(primitives[:mid], strategy)
	right := build(primitives[mid:], strategy)
	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   core.SurroundingBox(left.Box, right.Box),
	}
}

// Hit tests the node box first, then the left child, then the right child with
// the interval shrunk to the left hit.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if n.single {
		return leftHit, hitLeft
	}
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box computed at build time
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// Stats walks the hierarchy and counts its nodes and primitives
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []core.Hittable{n.Left, n.Right}
	if n.single {
		children = children[:1]
	}
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.Primitives++
		}
	}
}

// Split strategy names accepted by SplitByName
const (
	SplitRandomAxis  = "random-axis"
	SplitSurfaceArea = "sah"
)

// SplitByName returns the split strategy registered under name. An empty name
// selects the random axis split.
func SplitByName(name string, seed int64) (SplitStrategy, error) {
	switch name {
	case SplitRandomAxis, "":
		return NewRandomAxisSplit(seed), nil
	case SplitSurfaceArea:
		return SurfaceAreaSplit{}, nil
	}
	return nil, fmt.Errorf("geometry: unknown split strategy %q", name)
}

// RandomAxisSplit picks an axis uniformly at random, sorts along it by box
// minimum and cuts the list in half.
type RandomAxisSplit struct {
	Sampler core.Sampler
}

// NewRandomAxisSplit creates a random axis strategy with its own seeded sampler
func NewRandomAxisSplit(seed int64) *RandomAxisSplit {
	return &RandomAxisSplit{Sampler: core.NewSeededSampler(seed)}
}

func (s *RandomAxisSplit) Split(primitives []Primitive) int {
	axis := min(int(s.Sampler.Get1D()*3), 2)
	sortBy(primitives, func(p Primitive) float64 { return p.Box.Min.Axis(axis) })
	return len(primitives) / 2
}

// SurfaceAreaSplit evaluates every cut along every axis with the surface area
// heuristic and picks the cheapest:
//
// left count * left BBOX area + right count * right BBOX area.
type SurfaceAreaSplit struct{}

func (SurfaceAreaSplit) Split(primitives []Primitive) int {
	n := len(primitives)
	bestAxis, bestIndex, bestScore := 0, n/2, math.MaxFloat64

	rightAreas := make([]float64, n)
	for axis := 0; axis < 3; axis++ {
		sortBy(primitives, centroid(axis))

		// Sweep from the right to get the area of every suffix
		box := primitives[n-1].Box
		for i := n - 1; i >= 1; i-- {
			box = core.SurroundingBox(box, primitives[i].Box)
			rightAreas[i] = box.SurfaceArea()
		}

		box = primitives[0].Box
		for i := 1; i < n; i++ {
			score := float64(i)*box.SurfaceArea() + float64(n-i)*rightAreas[i]
			if score < bestScore {
				bestAxis, bestIndex, bestScore = axis, i, score
			}
			box = core.SurroundingBox(box, primitives[i].Box)
		}
	}

	sortBy(primitives, centroid(bestAxis))
	return bestIndex
}

func centroid(axis int) func(Primitive) float64 {
	return func(p Primitive) float64 { return p.Box.Center().Axis(axis) }
}

func sortBy(primitives []Primitive, key func(Primitive) float64) {
	sort.SliceStable(primitives, func(i, j int) bool {
		return key(primitives[i]) < key(primitives[j])
	})
}
