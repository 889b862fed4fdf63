package mapindex

import (
	"encoding/json"
	"testing"

	"github.com/pyramidgen/chunktiles/internal/pyramid"
	"github.com/pyramidgen/chunktiles/internal/tilecoord"
)

func TestBuild_CollectsPartsPerSurface(t *testing.T) {
	reg := pyramid.NewRegistry()
	tile := tilecoord.Tile{Surface: "nauvis", Zoom: 20, X: 0, Y: 0}
	reg.InsertWaiting(tile)
	if err := reg.MarkLoaded(tile, nil); err != nil {
		t.Fatalf("MarkLoaded: %v", err)
	}

	minZoom := map[string]int32{"nauvis": 14}
	tags := map[string]map[string][]pyramid.Tag{
		"nauvis": {"landmark": {{PositionX: 1, PositionY: 2, Text: "spawn"}}},
	}

	doc := Build(reg, minZoom, tags, ".jpg")
	if doc.Extension != ".jpg" {
		t.Errorf("Extension = %q, want \".jpg\"", doc.Extension)
	}
	entry, ok := doc.Surfaces["nauvis"]
	if !ok {
		t.Fatal("missing surface \"nauvis\"")
	}
	if len(entry.Tiles) != 4 {
		t.Fatalf("len(Tiles) = %d, want 4 (NUM_PARTS^2)", len(entry.Tiles))
	}
	if len(entry.Tags["landmark"]) != 1 {
		t.Errorf("tags not carried through: %+v", entry.Tags)
	}
}

func TestBuild_SkipsSurfacesWithNoMinZoomEntry(t *testing.T) {
	reg := pyramid.NewRegistry()
	doc := Build(reg, map[string]int32{}, nil, ".jpg")
	if len(doc.Surfaces) != 0 {
		t.Errorf("expected no surfaces, got %+v", doc.Surfaces)
	}
}

func TestMarshal_ProducesValidJSON(t *testing.T) {
	doc := Document{Extension: ".webp", Surfaces: map[string]SurfaceEntry{}}
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var roundTrip map[string]interface{}
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("round-trip unmarshal: %v", err)
	}
}

func TestMarshal_NestsTagPositionUnderPositionKey(t *testing.T) {
	doc := Document{
		Extension: ".jpg",
		Surfaces: map[string]SurfaceEntry{
			"nauvis": {
				Tiles: [][3]int32{{20, 0, 0}},
				Tags: map[string][]pyramid.Tag{
					"landmark": {{PositionX: 1.5, PositionY: -2.5, Text: "spawn"}},
				},
			},
		},
	}
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	surfaces := raw["surfaces"].(map[string]interface{})
	nauvis := surfaces["nauvis"].(map[string]interface{})
	tags := nauvis["tags"].(map[string]interface{})
	landmarks := tags["landmark"].([]interface{})
	tag := landmarks[0].(map[string]interface{})

	position, ok := tag["position"].(map[string]interface{})
	if !ok {
		t.Fatalf("tag has no nested \"position\" object: %+v", tag)
	}
	if position["x"] != 1.5 || position["y"] != -2.5 {
		t.Errorf("position = %+v, want {x:1.5 y:-2.5}", position)
	}
	if _, flat := tag["x"]; flat {
		t.Error("tag has flat \"x\" key; position must be nested, not flattened")
	}
	if tag["text"] != "spawn" {
		t.Errorf("text = %v, want \"spawn\"", tag["text"])
	}
}
