package pyramid

import (
	"math"

	"github.com/pyramidgen/chunktiles/internal/tileconst"
	"github.com/pyramidgen/chunktiles/internal/tilecoord"
)

// Plan is the result of planning one run: a populated Registry and the
// per-surface minimum zoom (the root level of that surface's
// pyramid). The total tile count across all surfaces is
// Registry.TotalTiles().
type Plan struct {
	Registry *Registry
	MinZoom  map[string]int32
}

// BuildPlan enumerates every tile that must be produced for each
// surface and populates a single shared Registry. Surfaces with zero
// chunks contribute nothing: no registry entries, no MinZoom entry.
func BuildPlan(surfaces []SurfaceInfo) *Plan {
	reg := NewRegistry()
	minZoom := make(map[string]int32)

	for _, s := range surfaces {
		if len(s.Chunks) == 0 {
			continue
		}
		mz := surfaceMinZoom(s.Chunks)
		minZoom[s.Name] = mz

		for _, c := range s.Chunks {
			planChunk(reg, s.Name, c, mz)
		}
	}

	return &Plan{Registry: reg, MinZoom: minZoom}
}

// planChunk walks a single chunk's tile upward from MaxZoom via
// Parent, inserting each ancestor into the registry until either the
// surface's minimum zoom is reached or a collision with an
// already-inserted ancestor is detected. Collisions short-circuit the
// walk: every tile above the collision point was already inserted by
// an earlier chunk's walk.
func planChunk(reg *Registry, surface string, c ChunkCoord, minZoom int32) {
	t := tilecoord.Tile{Surface: surface, Zoom: tileconst.MaxZoom, X: c.X, Y: c.Y}
	for t.Zoom > minZoom {
		if !reg.InsertWaiting(t) {
			return // collision: ancestors above this point already planned
		}
		t = tilecoord.Parent(t)
	}
}

// surfaceMinZoom computes the surface's minimum (root) zoom level:
//
//	min_zoom = MAX_ZOOM − ceil_log2(max(1−min_x, 1−min_y, max_x, max_y)) − 6
//
// using the inclusive chunk-coordinate extremes over the surface's
// chunk list. The four-way max accounts for the off-by-one between
// inclusive chunk coordinates and exclusive half-open tile extents on
// both sides of the origin.
func surfaceMinZoom(chunks []ChunkCoord) int32 {
	minX, minY := chunks[0].X, chunks[0].Y
	maxX, maxY := chunks[0].X, chunks[0].Y
	for _, c := range chunks[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	span := maxInt32(1-minX, 1-minY, maxX, maxY)
	return tileconst.MaxZoom - ceilLog2(span) - 6
}

func maxInt32(vals ...int32) int32 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// ceilLog2 returns the smallest k such that 2^k >= n, for n >= 1.
// ceilLog2(1) == 0.
func ceilLog2(n int32) int32 {
	if n <= 1 {
		return 0
	}
	return int32(math.Ceil(math.Log2(float64(n))))
}
