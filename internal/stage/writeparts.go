package stage

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pyramidgen/chunktiles/internal/tilecoord"
	"github.com/pyramidgen/chunktiles/internal/tileconst"
)

// PartPath is one encoded part's output location, relative to the
// run's OUTPUT_DIR.
type PartPath struct {
	Zoom int32
	X, Y int32
	Path string
}

// WriteParts splits a finished TILE_SIZE×TILE_SIZE tile image into
// NUM_PARTS×NUM_PARTS parts, flattens transparency for containers that
// need it, encodes each part, and writes it to
// <output>/tiles/<surface>/<zoom>/<X>/<Y>.<ext>.
// Parent directories are created on demand. Returns the paths written,
// in subdivision order (0,0),(1,0),(0,1),(1,1), matching
// tilecoord.Children.
func WriteParts(outputDir string, t tilecoord.Tile, img *image.RGBA, enc Encoder) ([]PartPath, error) {
	if b := img.Bounds(); b.Dx() != tileconst.TileSize || b.Dy() != tileconst.TileSize {
		return nil, fmt.Errorf("stage: write-parts: tile image is %dx%d, want %dx%d",
			b.Dx(), b.Dy(), tileconst.TileSize, tileconst.TileSize)
	}

	order := [4][2]int32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	out := make([]PartPath, 0, len(order))

	for _, d := range order {
		partX, partY := d[0], d[1]
		sub := extractPart(img, partX, partY)
		if enc.FlattensTransparency() {
			flattenTransparency(sub)
		}

		data, err := enc.Encode(sub)
		if err != nil {
			return nil, fmt.Errorf("stage: write-parts: encode: %w", err)
		}

		outX := partX + t.X*tileconst.NumParts
		outY := partY + t.Y*tileconst.NumParts
		path := filepath.Join(outputDir, "tiles", t.Surface, fmt.Sprint(t.Zoom), fmt.Sprint(outX), fmt.Sprint(outY)+enc.Extension())

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("stage: write-parts: mkdir: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("stage: write-parts: write %s: %w", path, err)
		}

		out = append(out, PartPath{Zoom: t.Zoom, X: outX, Y: outY, Path: path})
	}

	return out, nil
}

// extractPart copies the PART_SIZE×PART_SIZE sub-image at quadrant
// (partX, partY) out of a TILE_SIZE×TILE_SIZE tile image.
func extractPart(img *image.RGBA, partX, partY int32) *image.RGBA {
	offX := int(partX) * tileconst.PartSize
	offY := int(partY) * tileconst.PartSize
	sub := image.NewRGBA(image.Rect(0, 0, tileconst.PartSize, tileconst.PartSize))
	for y := 0; y < tileconst.PartSize; y++ {
		srcOff := img.PixOffset(offX, offY+y)
		dstOff := sub.PixOffset(0, y)
		copy(sub.Pix[dstOff:dstOff+tileconst.PartSize*4], img.Pix[srcOff:srcOff+tileconst.PartSize*4])
	}
	return sub
}

// flattenTransparency overwrites every pixel whose alpha is <= 127
// with RGB (27, 45, 51) and alpha 0xff, in place. Pixels with alpha
// >= 128 are untouched. Required before encoding into a container
// with no alpha channel.
func flattenTransparency(img *image.RGBA) {
	fill := tileconst.FlattenRGB
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] <= 127 {
			pix[i+0] = fill[0]
			pix[i+1] = fill[1]
			pix[i+2] = fill[2]
			pix[i+3] = 0xff
		}
	}
}

// flattenedColor is exposed for tests that want to assert the exact
// fill color without duplicating the literal.
func flattenedColor() color.RGBA {
	return color.RGBA{R: tileconst.FlattenRGB[0], G: tileconst.FlattenRGB[1], B: tileconst.FlattenRGB[2], A: 0xff}
}
