// Package manifest decodes the host game's info.json blob into the
// pyramid package's SurfaceInfo type.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/pyramidgen/chunktiles/internal/pyramid"
)

type wireTag struct {
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Text string `json:"text"`
}

type wireChunk struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type wireSurface struct {
	Name   string               `json:"name"`
	Tags   map[string][]wireTag `json:"tags"`
	Chunks []wireChunk          `json:"chunks"`
}

// Decode parses info.json bytes into a list of SurfaceInfo. The
// manifest may be a single JSON object or an array of objects; content
// discriminates, not the source filename.
func Decode(data []byte) ([]pyramid.SurfaceInfo, error) {
	var arr []wireSurface
	if err := json.Unmarshal(data, &arr); err == nil {
		return convertAll(arr)
	}

	var single wireSurface
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("manifest: malformed info.json: %w", err)
	}
	return convertAll([]wireSurface{single})
}

func convertAll(in []wireSurface) ([]pyramid.SurfaceInfo, error) {
	out := make([]pyramid.SurfaceInfo, 0, len(in))
	for _, w := range in {
		if w.Name == "" {
			return nil, fmt.Errorf("manifest: surface with empty name")
		}
		s := pyramid.SurfaceInfo{
			Name:   w.Name,
			Chunks: make([]pyramid.ChunkCoord, len(w.Chunks)),
		}
		for i, c := range w.Chunks {
			s.Chunks[i] = pyramid.ChunkCoord{X: c.X, Y: c.Y}
		}
		if len(w.Tags) > 0 {
			s.Tags = make(map[string][]pyramid.Tag, len(w.Tags))
			for category, tags := range w.Tags {
				converted := make([]pyramid.Tag, len(tags))
				for i, tg := range tags {
					converted[i] = pyramid.Tag{
						PositionX: tg.Position.X,
						PositionY: tg.Position.Y,
						Text:      tg.Text,
					}
				}
				s.Tags[category] = converted
			}
		}
		out = append(out, s)
	}
	return out, nil
}
