// Package chunkname parses the chunk-image path-stem contract:
// "<surface>,<x>,<y>" where x and y are signed decimal integers.
package chunkname

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyramidgen/chunktiles/internal/pyramid"
)

// Parsed is a decoded chunk filename stem.
type Parsed struct {
	Surface string
	X, Y    int32
}

// Parse splits a stem of the form "<surface>,<x>,<y>" into its parts.
// Any deviation — missing comma, non-integer coordinate, empty surface
// name — is a malformed-name error: a programming error in the
// upstream, not a recoverable condition.
func Parse(stem string) (Parsed, error) {
	parts := strings.Split(stem, ",")
	if len(parts) != 3 {
		return Parsed{}, fmt.Errorf("chunkname: malformed stem %q: want 3 comma-separated fields, got %d", stem, len(parts))
	}
	surface := parts[0]
	if surface == "" {
		return Parsed{}, fmt.Errorf("chunkname: malformed stem %q: empty surface name", stem)
	}
	x, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return Parsed{}, fmt.Errorf("chunkname: malformed stem %q: invalid x: %w", stem, err)
	}
	y, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return Parsed{}, fmt.Errorf("chunkname: malformed stem %q: invalid y: %w", stem, err)
	}
	return Parsed{Surface: surface, X: int32(x), Y: int32(y)}, nil
}

// ChunkCoord converts a Parsed stem to a pyramid.ChunkCoord, dropping
// the surface (useful once the surface has been used for dispatch).
func (p Parsed) ChunkCoord() pyramid.ChunkCoord {
	return pyramid.ChunkCoord{X: p.X, Y: p.Y}
}
