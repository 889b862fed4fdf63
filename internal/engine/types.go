package engine

import (
	"image"

	"github.com/pyramidgen/chunktiles/internal/tilecoord"
)

// WorkItemKind discriminates the tagged union WorkItem carries from
// the coordinator to the worker pool.
type WorkItemKind int

const (
	WorkDecodeChunk WorkItemKind = iota
	WorkWriteParts
	WorkBuildParent
)

// ChildImage pairs a registry-owned tile with the image the
// coordinator took out of Loaded state for it, for BuildParent.
type ChildImage struct {
	Tile  tilecoord.Tile
	Image *image.RGBA
}

// WorkItem is one unit of work dispatched to the worker pool. Only
// the fields relevant to Kind are populated; images travel by value
// (never aliased once handed off).
type WorkItem struct {
	Kind WorkItemKind

	Tile tilecoord.Tile

	// DecodeChunk
	EncodedBytes []byte

	// WriteParts
	Image *image.RGBA

	// BuildParent
	Parent   tilecoord.Tile
	Children []ChildImage
}

// CompletionKind discriminates the tagged union Completion carries
// back to the coordinator. The same channel multiplexes worker
// results (ChunkDecoded, PartsWritten, ParentBuilt) with
// externally-injected events (ManifestReceived, ChunkImageReceived,
// Killed) — the coordinator does not care which side produced it.
type CompletionKind int

const (
	CompChunkDecoded CompletionKind = iota
	CompPartsWritten
	CompParentBuilt
	CompManifestReceived
	CompChunkImageReceived
	CompKilled
	CompFinished
)

// Completion is one event delivered to the coordinator's event loop.
// A non-nil Err makes any Kind fatal: stage kernels surface errors by
// returning a completion that the coordinator treats as terminal.
type Completion struct {
	Kind CompletionKind

	Tile  tilecoord.Tile
	Image *image.RGBA

	// ChunkImageReceived
	EncodedBytes []byte

	// ManifestReceived
	ManifestBytes []byte

	Err error
}
