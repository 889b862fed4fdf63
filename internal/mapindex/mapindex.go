// Package mapindex builds the final JSON document listing every
// emitted tile part per surface — the document that replaces the
// "$MAP_DATA$" token in the static web-viewer template.
package mapindex

import (
	"encoding/json"
	"fmt"

	"github.com/pyramidgen/chunktiles/internal/pyramid"
	"github.com/pyramidgen/chunktiles/internal/tileconst"
)

// Document is the map-index schema:
//
//	{ "extension": "<ext>", "surfaces": { <name>: { "tiles": [[z,X,Y], ...], "tags": <tags> }, ... } }
type Document struct {
	Extension string                  `json:"extension"`
	Surfaces  map[string]SurfaceEntry `json:"surfaces"`
}

// SurfaceEntry lists every (zoom, X, Y) part tuple for one surface.
// Order is unspecified; consumers must not depend on it. Tags are
// carried through unchanged from the manifest.
type SurfaceEntry struct {
	Tiles [][3]int32               `json:"tiles"`
	Tags  map[string][]pyramid.Tag `json:"tags"`
}

// Build collects (zoom, X, Y) tuples for every part of every tile in
// the registry, grouped by surface, for each surface named in
// minZoom (the planner gives surfaces with zero chunks no minZoom
// entry, so they are absent here).
func Build(reg *pyramid.Registry, minZoom map[string]int32, tags map[string]map[string][]pyramid.Tag, ext string) Document {
	bySurface := make(map[string][][3]int32, len(minZoom))
	for surface := range minZoom {
		bySurface[surface] = nil
	}

	for _, t := range reg.AllTiles() {
		for partY := int32(0); partY < tileconst.NumParts; partY++ {
			for partX := int32(0); partX < tileconst.NumParts; partX++ {
				x := partX + t.X*tileconst.NumParts
				y := partY + t.Y*tileconst.NumParts
				bySurface[t.Surface] = append(bySurface[t.Surface], [3]int32{t.Zoom, x, y})
			}
		}
	}

	surfaces := make(map[string]SurfaceEntry, len(bySurface))
	for name, tiles := range bySurface {
		surfaces[name] = SurfaceEntry{Tiles: tiles, Tags: tags[name]}
	}

	return Document{Extension: ext, Surfaces: surfaces}
}

// Marshal encodes doc as the final map-index JSON document.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("mapindex: marshal: %w", err)
	}
	return data, nil
}
