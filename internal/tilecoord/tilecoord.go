// Package tilecoord implements the pure coordinate algebra of the tile
// pyramid: parent/child relationships over signed (zoom, x, y) triples,
// scoped per surface.
package tilecoord

import "fmt"

// Tile identifies one tile of one surface's pyramid. Zero value is not
// a valid tile (Surface == "").
type Tile struct {
	Surface string
	Zoom    int32
	X, Y    int32
}

func (t Tile) String() string {
	return fmt.Sprintf("%s/%d/%d/%d", t.Surface, t.Zoom, t.X, t.Y)
}

// floorDiv2 returns the mathematical floor of v/2, unlike Go's native
// integer division which truncates toward zero. This matters for
// negative coordinates: floorDiv2(-1) == -1, but -1/2 == 0.
func floorDiv2(v int32) int32 {
	if v >= 0 {
		return v / 2
	}
	return -((-v + 1) / 2)
}

// Parent returns the tile one zoom level up that contains t.
func Parent(t Tile) Tile {
	return Tile{
		Surface: t.Surface,
		Zoom:    t.Zoom - 1,
		X:       floorDiv2(t.X),
		Y:       floorDiv2(t.Y),
	}
}

// FirstChild returns the top-left (dx=0, dy=0) child of t.
func FirstChild(t Tile) Tile {
	return Tile{
		Surface: t.Surface,
		Zoom:    t.Zoom + 1,
		X:       t.X * 2,
		Y:       t.Y * 2,
	}
}

// Children returns the four children of t in the fixed order
// (0,0), (1,0), (0,1), (1,1). This order is observable in write-parts
// output paths and must not change.
func Children(t Tile) [4]Tile {
	fc := FirstChild(t)
	return [4]Tile{
		{fc.Surface, fc.Zoom, fc.X, fc.Y},
		{fc.Surface, fc.Zoom, fc.X + 1, fc.Y},
		{fc.Surface, fc.Zoom, fc.X, fc.Y + 1},
		{fc.Surface, fc.Zoom, fc.X + 1, fc.Y + 1},
	}
}
