package pyramid

import (
	"fmt"
	"image"

	"github.com/pyramidgen/chunktiles/internal/tilecoord"
)

// State is a tile's position in its lifecycle. Thread-confined to the
// coordinator goroutine; never read or written from a worker.
type State int

const (
	// Waiting means the tile is planned but its image has not arrived.
	Waiting State = iota
	// Loaded means write-parts has completed and the image is available
	// to a single parent-build step.
	Loaded
	// Processed means a parent build consumed this tile's image. Terminal.
	Processed
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Loaded:
		return "Loaded"
	case Processed:
		return "Processed"
	default:
		return "Unknown"
	}
}

type entry struct {
	state State
	img   image.Image
}

// Registry is the per-run tile state machine: each tile moves from
// Waiting to Loaded to Processed and never reverts. It is never
// shared with workers: all mutation happens on the coordinator
// goroutine.
type Registry struct {
	tiles       map[tilecoord.Tile]*entry
	totalTiles  int
	loadedTiles int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tiles: make(map[tilecoord.Tile]*entry)}
}

// InsertWaiting adds tile in the Waiting state if it is not already
// present. Returns false if the tile already existed (a collision,
// used by the planner to short-circuit shared-ancestor walks).
func (r *Registry) InsertWaiting(t tilecoord.Tile) bool {
	if _, ok := r.tiles[t]; ok {
		return false
	}
	r.tiles[t] = &entry{state: Waiting}
	r.totalTiles++
	return true
}

// State reports a tile's current state. The second return value is
// false if the tile was never planned.
func (r *Registry) State(t tilecoord.Tile) (State, bool) {
	e, ok := r.tiles[t]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// MarkLoaded transitions a Waiting tile to Loaded, storing its image,
// and increments the run's progress counter.
func (r *Registry) MarkLoaded(t tilecoord.Tile, img image.Image) error {
	e, ok := r.tiles[t]
	if !ok {
		return fmt.Errorf("pyramid: mark-loaded on unplanned tile %+v", t)
	}
	if e.state != Waiting {
		return fmt.Errorf("pyramid: mark-loaded on tile %+v in state %s, want Waiting", t, e.state)
	}
	e.state = Loaded
	e.img = img
	r.loadedTiles++
	return nil
}

// Take transitions a Loaded tile to Processed and returns its image.
// Calling Take on anything but a Loaded tile is a programming error —
// Processed tiles never revert, and reading one again is a bug in the
// caller — and returns an error rather than panicking so the
// coordinator can surface it as a plan invariant violation.
func (r *Registry) Take(t tilecoord.Tile) (image.Image, error) {
	e, ok := r.tiles[t]
	if !ok {
		return nil, fmt.Errorf("pyramid: take on unplanned tile %+v", t)
	}
	if e.state != Loaded {
		return nil, fmt.Errorf("pyramid: take on tile %+v in state %s, want Loaded", t, e.state)
	}
	e.state = Processed
	img := e.img
	e.img = nil
	return img, nil
}

// ParentReady reports whether every child of parent is either Loaded
// or absent from the registry. A Processed child is a bug: the
// coordinator must never query a parent's readiness twice.
func (r *Registry) ParentReady(parent tilecoord.Tile) (bool, error) {
	for _, c := range tilecoord.Children(parent) {
		e, ok := r.tiles[c]
		if !ok {
			continue // absent quadrant: contributes nothing, counts as ready
		}
		switch e.state {
		case Loaded:
			// ready
		case Processed:
			return false, fmt.Errorf("pyramid: parent %+v queried with child %+v already Processed", parent, c)
		case Waiting:
			return false, nil
		}
	}
	return true, nil
}

// LoadedChildren returns the present children of parent that are
// currently Loaded, without mutating their state.
func (r *Registry) LoadedChildren(parent tilecoord.Tile) []tilecoord.Tile {
	var out []tilecoord.Tile
	for _, c := range tilecoord.Children(parent) {
		if e, ok := r.tiles[c]; ok && e.state == Loaded {
			out = append(out, c)
		}
	}
	return out
}

// TotalTiles is the size of the registry after planning completed.
func (r *Registry) TotalTiles() int { return r.totalTiles }

// LoadedTiles is the number of distinct tiles that have completed
// write-parts so far in this run.
func (r *Registry) LoadedTiles() int { return r.loadedTiles }

// AllTiles returns every planned tile, in unspecified order. Used by
// the map-index emitter once the run is complete.
func (r *Registry) AllTiles() []tilecoord.Tile {
	out := make([]tilecoord.Tile, 0, len(r.tiles))
	for t := range r.tiles {
		out = append(out, t)
	}
	return out
}
