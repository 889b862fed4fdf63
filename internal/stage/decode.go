// Package stage implements the three pure image pipeline stages:
// decode-chunk, write-tile-parts, and build-parent.
package stage

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/gen2brain/webp"
	"golang.org/x/image/bmp"
)

// DecodeChunk decodes a chunk image's raw bytes into an RGBA image.
// Format is identified by content signature, not by the filename
// extension hint carried alongside it: the extension is informative
// only.
func DecodeChunk(data []byte) (*image.RGBA, error) {
	img, err := decodeBySignature(data)
	if err != nil {
		return nil, fmt.Errorf("stage: decode chunk: %w", err)
	}
	return toRGBA(img), nil
}

func decodeBySignature(data []byte) (image.Image, error) {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return png.Decode(bytes.NewReader(data))
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return bmp.Decode(bytes.NewReader(data))
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unrecognized chunk image signature")
	}
}

// toRGBA converts any decoded image into *image.RGBA, the in-memory
// representation the rest of the pipeline operates on.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
