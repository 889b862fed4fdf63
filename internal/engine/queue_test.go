package engine

import (
	"testing"

	"github.com/pyramidgen/chunktiles/internal/tilecoord"
)

func tileX(x int32) tilecoord.Tile {
	return tilecoord.Tile{Surface: "nauvis", X: x}
}

func TestRelayWorkItems_PreservesOrderAndUnblocksSender(t *testing.T) {
	in := make(chan WorkItem)
	out := make(chan WorkItem)
	go relayWorkItems(in, out)

	// Send more items than any bounded channel in this package would
	// buffer, with nobody draining out yet: a bounded relay would
	// block here and the test would hang.
	const n = 64
	done := make(chan struct{})
	go func() {
		for i := int32(0); i < n; i++ {
			in <- WorkItem{Kind: WorkDecodeChunk, Tile: tileX(i)}
		}
		close(in)
		close(done)
	}()
	<-done

	for i := int32(0); i < n; i++ {
		item, ok := <-out
		if !ok {
			t.Fatalf("out closed early at i=%d", i)
		}
		if item.Tile.X != i {
			t.Fatalf("item %d out of order: got X=%d", i, item.Tile.X)
		}
	}
	if _, ok := <-out; ok {
		t.Fatal("expected out to be closed after in closed and drained")
	}
}

func TestRelayCompletions_PreservesOrderAndUnblocksSender(t *testing.T) {
	in := make(chan Completion)
	out := make(chan Completion)
	go relayCompletions(in, out)

	const n = 64
	done := make(chan struct{})
	go func() {
		for i := int32(0); i < n; i++ {
			in <- Completion{Kind: CompChunkDecoded, Tile: tileX(i)}
		}
		close(in)
		close(done)
	}()
	<-done

	for i := int32(0); i < n; i++ {
		evt, ok := <-out
		if !ok {
			t.Fatalf("out closed early at i=%d", i)
		}
		if evt.Tile.X != i {
			t.Fatalf("completion %d out of order: got X=%d", i, evt.Tile.X)
		}
	}
	if _, ok := <-out; ok {
		t.Fatal("expected out to be closed after in closed and drained")
	}
}
