package engine

import (
	"fmt"
	"image"
	"log"

	"github.com/pyramidgen/chunktiles/internal/chunkname"
	"github.com/pyramidgen/chunktiles/internal/manifest"
	"github.com/pyramidgen/chunktiles/internal/mapindex"
	"github.com/pyramidgen/chunktiles/internal/pyramid"
	"github.com/pyramidgen/chunktiles/internal/stage"
	"github.com/pyramidgen/chunktiles/internal/tileconst"
	"github.com/pyramidgen/chunktiles/internal/tilecoord"
)

// runState is the coordinator's own state machine: BeforePlan until
// the manifest arrives, then Running until Finished or Killed.
type runState int

const (
	stateBeforePlan runState = iota
	stateRunning
	stateDone
)

// Config is the engine's run-time configuration. TileSize, MaxZoom,
// and NumParts are build-time constants (internal/tileconst) and are
// not part of Config.
type Config struct {
	OutputDir   string
	Encoder     stage.Encoder
	Concurrency int
	Verbose     bool
}

// Stats summarizes a finished run. A killed or failed run returns the
// zero Stats.
type Stats struct {
	TotalTiles  int
	LoadedTiles int
	Surfaces    int
}

// Coordinator is the single-threaded event loop driving one run. It
// is the sole owner of the tile registry, the min_zoom table, and
// progress counters — never shared with the worker pool.
type Coordinator struct {
	cfg Config

	state   runState
	plan    *pyramid.Plan
	ext     string
	tagsBySurface map[string]map[string][]pyramid.Tag

	seenChunks map[tilecoord.Tile]bool

	// completionsIn is written by workers (via the pool) and by the
	// public Submit*/Kill methods; completionsOut is what Run reads.
	// relayCompletions buffers between them without bound so neither
	// producer ever blocks on the other, even when Run's own
	// pool.submit call is itself blocked (see relayWorkItems).
	completionsIn  chan Completion
	completionsOut chan Completion
	pool           *workerPool
	progress       *progressBar

	result       Stats
	mapIndexJSON []byte
	err          error
}

// MapIndexJSON returns the emitted map-index document. Only valid
// after Run returns with a nil error.
func (c *Coordinator) MapIndexJSON() []byte { return c.mapIndexJSON }

// NewCoordinator builds a Coordinator ready to receive events via its
// public Submit* methods once Run is started.
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	ext := cfg.Encoder.Extension()
	completionsIn := make(chan Completion)
	completionsOut := make(chan Completion)
	go relayCompletions(completionsIn, completionsOut)
	return &Coordinator{
		cfg:            cfg,
		state:          stateBeforePlan,
		ext:            ext,
		tagsBySurface:  make(map[string]map[string][]pyramid.Tag),
		seenChunks:     make(map[tilecoord.Tile]bool),
		completionsIn:  completionsIn,
		completionsOut: completionsOut,
		pool:           newWorkerPool(cfg.Concurrency, cfg.OutputDir, cfg.Encoder, completionsIn),
	}
}

// SubmitManifest injects a ManifestReceived{bytes} event.
func (c *Coordinator) SubmitManifest(data []byte) {
	c.completionsIn <- Completion{Kind: CompManifestReceived, ManifestBytes: data}
}

// SubmitChunk injects ChunkImageReceived{tile, bytes} for the chunk
// named by stem, following the "<surface>,<x>,<y>" contract. A stem
// that does not parse is fatal: the error is returned and also
// delivered to Run, which ends the run with ErrMalformedChunkName.
func (c *Coordinator) SubmitChunk(stem string, data []byte) error {
	parsed, err := chunkname.Parse(stem)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedChunkName, err)
		c.completionsIn <- Completion{Kind: CompChunkImageReceived, Err: err}
		return err
	}
	t := tilecoord.Tile{Surface: parsed.Surface, Zoom: tileconst.MaxZoom, X: parsed.X, Y: parsed.Y}
	c.completionsIn <- Completion{Kind: CompChunkImageReceived, Tile: t, EncodedBytes: data}
	return nil
}

// Kill injects a Killed event from any state.
func (c *Coordinator) Kill() {
	c.completionsIn <- Completion{Kind: CompKilled}
}

// Run drives the coordinator's event loop to completion. Callers
// submit the manifest and chunk stream concurrently (via SubmitManifest
// / SubmitChunk / Kill from another goroutine) while Run consumes
// completions; it returns once the engine reaches Finished (nil
// error) or Killed / a fatal stage error (non-nil error).
func (c *Coordinator) Run() (Stats, error) {
	for c.state != stateDone {
		evt := <-c.completionsOut
		if evt.Err != nil {
			c.fail(evt.Err)
			continue
		}
		c.handle(evt)
	}
	c.pool.shutdown()
	if c.progress != nil {
		c.progress.Finish()
	}
	return c.result, c.err
}

func (c *Coordinator) fail(err error) {
	if c.err == nil {
		c.err = err
	}
	c.state = stateDone
}

func (c *Coordinator) handle(evt Completion) {
	switch c.state {
	case stateBeforePlan:
		c.handleBeforePlan(evt)
	case stateRunning:
		c.handleRunning(evt)
	}
}

func (c *Coordinator) handleBeforePlan(evt Completion) {
	switch evt.Kind {
	case CompManifestReceived:
		if c.plan != nil {
			c.fail(ErrManifestAlreadyReceived)
			return
		}
		surfaces, err := manifest.Decode(evt.ManifestBytes)
		if err != nil {
			c.fail(fmt.Errorf("%w: %v", ErrMalformedManifest, err))
			return
		}
		c.plan = pyramid.BuildPlan(surfaces)
		for _, s := range surfaces {
			c.tagsBySurface[s.Name] = s.Tags
		}
		c.progress = newProgressBar("tiles", int64(c.plan.Registry.TotalTiles()))
		c.state = stateRunning
		if c.cfg.Verbose {
			log.Printf("planned %d tiles across %d surface(s)", c.plan.Registry.TotalTiles(), len(c.plan.MinZoom))
		}
		if c.plan.Registry.TotalTiles() == 0 {
			c.finish()
		}
	case CompChunkImageReceived:
		// A chunk arrived before the manifest: illegal input ordering.
		// Fail fast rather than buffer silently.
		c.fail(ErrManifestNotReceived)
	case CompKilled:
		c.kill()
	}
}

func (c *Coordinator) handleRunning(evt Completion) {
	switch evt.Kind {
	case CompManifestReceived:
		c.fail(ErrManifestAlreadyReceived)

	case CompChunkImageReceived:
		if c.seenChunks[evt.Tile] {
			c.fail(fmt.Errorf("%w: %s", ErrDuplicateChunk, evt.Tile))
			return
		}
		c.seenChunks[evt.Tile] = true
		c.pool.submit(WorkItem{Kind: WorkDecodeChunk, Tile: evt.Tile, EncodedBytes: evt.EncodedBytes})

	case CompChunkDecoded:
		c.pool.submit(WorkItem{Kind: WorkWriteParts, Tile: evt.Tile, Image: evt.Image})

	case CompPartsWritten:
		c.onPartsWritten(evt)

	case CompParentBuilt:
		c.pool.submit(WorkItem{Kind: WorkWriteParts, Tile: evt.Tile, Image: evt.Image})

	case CompKilled:
		c.kill()
	}
}

func (c *Coordinator) onPartsWritten(evt Completion) {
	reg := c.plan.Registry
	if err := reg.MarkLoaded(evt.Tile, evt.Image); err != nil {
		c.fail(fmt.Errorf("%w: %v", ErrPlanInvariant, err))
		return
	}

	minZoom, ok := c.plan.MinZoom[evt.Tile.Surface]
	if !ok {
		c.fail(fmt.Errorf("%w: surface %q has no min_zoom entry", ErrPlanInvariant, evt.Tile.Surface))
		return
	}

	p := tilecoord.Parent(evt.Tile)
	if p.Zoom > minZoom {
		ready, err := reg.ParentReady(p)
		if err != nil {
			c.fail(fmt.Errorf("%w: %v", ErrPlanInvariant, err))
			return
		}
		if ready {
			loaded := reg.LoadedChildren(p)
			children := make([]ChildImage, 0, len(loaded))
			for _, childTile := range loaded {
				img, err := reg.Take(childTile)
				if err != nil {
					c.fail(fmt.Errorf("%w: %v", ErrPlanInvariant, err))
					return
				}
				rgba, ok := img.(*image.RGBA)
				if !ok {
					c.fail(fmt.Errorf("%w: tile %s: registry held non-RGBA image", ErrPlanInvariant, childTile))
					return
				}
				children = append(children, ChildImage{Tile: childTile, Image: rgba})
			}
			c.pool.submit(WorkItem{Kind: WorkBuildParent, Parent: p, Children: children})
		}
	}

	if c.progress != nil {
		c.progress.Increment()
	}

	if reg.LoadedTiles() == reg.TotalTiles() {
		c.finish()
	} else if reg.LoadedTiles() > reg.TotalTiles() {
		c.fail(fmt.Errorf("%w: loaded_tiles %d exceeds total_tiles %d", ErrPlanInvariant, reg.LoadedTiles(), reg.TotalTiles()))
	}
}

func (c *Coordinator) finish() {
	idx := mapindex.Build(c.plan.Registry, c.plan.MinZoom, c.tagsBySurface, c.ext)
	data, err := mapindex.Marshal(idx)
	if err != nil {
		c.fail(fmt.Errorf("engine: map-index emit: %w", err))
		return
	}
	c.result = Stats{
		TotalTiles:  c.plan.Registry.TotalTiles(),
		LoadedTiles: c.plan.Registry.LoadedTiles(),
		Surfaces:    len(c.plan.MinZoom),
	}
	c.mapIndexJSON = data
	c.state = stateDone
}

func (c *Coordinator) kill() {
	c.err = ErrKilled
	c.state = stateDone
}
