// Package tileconst holds the engine's build-time configuration
// constants. Everything here is fixed across runs.
package tileconst

const (
	// TileSize is the pixel dimension of every tile held in memory.
	TileSize = 1024
	// MaxZoom is the zoom level chunk images arrive at.
	MaxZoom = 20
	// NumParts is the per-axis subdivision of a tile into on-disk parts.
	NumParts = 2
	// PartSize is the pixel dimension of one on-disk part.
	PartSize = TileSize / NumParts
	// DefaultJPEGQuality is the JPEG/WebP encode quality (1-100).
	DefaultJPEGQuality = 80
)

// FlattenRGB is the literal RGB triple substituted for pixels whose
// alpha is <= 127 before JPEG encoding.
var FlattenRGB = [3]uint8{27, 45, 51}
