package engine

import (
	"fmt"
	"sync"

	"github.com/pyramidgen/chunktiles/internal/stage"
)

// workerPool is a multi-producer/multi-consumer queue pair: the
// coordinator is the sole producer of WorkItem, and the N workers
// produce Completion results alongside the coordinator's
// externally-injected Submit*/Kill events. Both queues are genuinely unbounded
// (see relayWorkItems/relayCompletions) — there is no back-pressure
// beyond the coordinator's own serialization, and submit never blocks
// waiting for a free worker.
type workerPool struct {
	submitCh    chan WorkItem
	dispatch    chan WorkItem
	completions chan<- Completion
	wg          sync.WaitGroup
	encoder     stage.Encoder
	outputDir   string
}

func newWorkerPool(n int, outputDir string, encoder stage.Encoder, completions chan<- Completion) *workerPool {
	p := &workerPool{
		submitCh:    make(chan WorkItem),
		dispatch:    make(chan WorkItem),
		completions: completions,
		encoder:     encoder,
		outputDir:   outputDir,
	}
	go relayWorkItems(p.submitCh, p.dispatch)
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// submit hands one WorkItem to the pool. Never blocks on worker
// availability: the relay goroutine buffers unboundedly between
// submitCh and dispatch. Never called after shutdown.
func (p *workerPool) submit(item WorkItem) {
	p.submitCh <- item
}

// shutdown closes the submit channel and waits for the relay to drain
// and every worker to exit cleanly.
func (p *workerPool) shutdown() {
	close(p.submitCh)
	p.wg.Wait()
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for item := range p.dispatch {
		switch item.Kind {
		case WorkDecodeChunk:
			p.runDecodeChunk(item)
		case WorkWriteParts:
			p.runWriteParts(item)
		case WorkBuildParent:
			p.runBuildParent(item)
		}
	}
}

func (p *workerPool) runDecodeChunk(item WorkItem) {
	img, err := stage.DecodeChunk(item.EncodedBytes)
	if err != nil {
		p.completions <- Completion{
			Kind: CompChunkDecoded,
			Tile: item.Tile,
			Err:  fmt.Errorf("%w: %s: %v", ErrDecodeFailure, item.Tile, err),
		}
		return
	}
	p.completions <- Completion{Kind: CompChunkDecoded, Tile: item.Tile, Image: img}
}

func (p *workerPool) runWriteParts(item WorkItem) {
	if _, err := stage.WriteParts(p.outputDir, item.Tile, item.Image, p.encoder); err != nil {
		p.completions <- Completion{
			Kind: CompPartsWritten,
			Tile: item.Tile,
			Err:  fmt.Errorf("%w: %s: %v", ErrWriteFailure, item.Tile, err),
		}
		return
	}
	p.completions <- Completion{Kind: CompPartsWritten, Tile: item.Tile, Image: item.Image}
}

func (p *workerPool) runBuildParent(item WorkItem) {
	// Quadrant position is derived from each child's coordinates
	// relative to the parent, matching tilecoord.Children's fixed order.
	children := make([]stage.Child, 0, len(item.Children))
	for _, c := range item.Children {
		quadX := c.Tile.X - item.Parent.X*2
		quadY := c.Tile.Y - item.Parent.Y*2
		children = append(children, stage.Child{QuadX: quadX, QuadY: quadY, Image: c.Image})
	}
	parentImg := stage.BuildParent(children)
	p.completions <- Completion{Kind: CompParentBuilt, Tile: item.Parent, Image: parentImg}
}
