// Package pyramid holds the per-surface plan and the tile registry that
// the coordinator drives to completion.
package pyramid

import "encoding/json"

// Tag is a labeled point of interest carried through to the map index
// unchanged. It does not influence tile production.
type Tag struct {
	PositionX float64
	PositionY float64
	Text      string
}

// wireTag is the on-wire shape of a Tag: the position nests under its
// own object instead of sitting flat alongside text.
type wireTag struct {
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Text string `json:"text"`
}

func (t Tag) MarshalJSON() ([]byte, error) {
	var w wireTag
	w.Position.X = t.PositionX
	w.Position.Y = t.PositionY
	w.Text = t.Text
	return json.Marshal(w)
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	var w wireTag
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.PositionX = w.Position.X
	t.PositionY = w.Position.Y
	t.Text = w.Text
	return nil
}

// ChunkCoord is a single chunk's integer world position.
type ChunkCoord struct {
	X, Y int32
}

// SurfaceInfo is one surface's worth of the decoded manifest: its name,
// its tag categories, and the chunk coordinates the host game rendered.
type SurfaceInfo struct {
	Name   string
	Tags   map[string][]Tag
	Chunks []ChunkCoord
}
