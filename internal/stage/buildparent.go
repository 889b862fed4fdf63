package stage

import (
	"image"

	"github.com/pyramidgen/chunktiles/internal/tilecoord"
	"github.com/pyramidgen/chunktiles/internal/tileconst"
)

// Child pairs a loaded tile image with its quadrant position relative
// to the parent being built (0,0 top-left ... 1,1 bottom-right,
// matching tilecoord.Children's order).
type Child struct {
	QuadX, QuadY int32
	Image        *image.RGBA
}

// BuildParent composites up to four loaded children onto a
// 2·TILE_SIZE canvas (missing quadrants stay fully transparent black)
// and downsamples the result to TILE_SIZE×TILE_SIZE via a Lanczos-3
// convolution. Channels are resampled on straight, non-premultiplied
// alpha — there is no premultiply/divide step.
func BuildParent(children []Child) *image.RGBA {
	canvasSize := 2 * tileconst.TileSize
	canvas := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))

	for _, c := range children {
		offX := int(c.QuadX) * tileconst.TileSize
		offY := int(c.QuadY) * tileconst.TileSize
		for y := 0; y < tileconst.TileSize; y++ {
			srcOff := c.Image.PixOffset(0, y)
			dstOff := canvas.PixOffset(offX, offY+y)
			copy(canvas.Pix[dstOff:dstOff+tileconst.TileSize*4], c.Image.Pix[srcOff:srcOff+tileconst.TileSize*4])
		}
	}

	return downsampleLanczos(canvas, tileconst.TileSize, tileconst.TileSize)
}

// ChildrenFromRegistry adapts tilecoord.Children's fixed quadrant
// order into BuildParent's input, skipping quadrants with no image.
func ChildrenFromRegistry(order [4]tilecoord.Tile, images map[tilecoord.Tile]*image.RGBA) []Child {
	quads := [4][2]int32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	out := make([]Child, 0, 4)
	for i, t := range order {
		img, ok := images[t]
		if !ok {
			continue
		}
		out = append(out, Child{QuadX: quads[i][0], QuadY: quads[i][1], Image: img})
	}
	return out
}

// downsampleLanczos resamples src to dstW×dstH using a separable
// Lanczos-3 filter: a horizontal pass followed by a vertical pass,
// each channel (R, G, B, A independently) convolved against
// lanczosWeights.
func downsampleLanczos(src *image.RGBA, dstW, dstH int) *image.RGBA {
	srcBounds := src.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()

	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)

	horiz := image.NewRGBA(image.Rect(0, 0, dstW, srcH))
	for y := 0; y < srcH; y++ {
		for x := 0; x < dstW; x++ {
			lo, weights := lanczosWeights(x, scaleX, srcW)
			var r, g, b, a float64
			for i, w := range weights {
				off := src.PixOffset(lo+i, y)
				r += float64(src.Pix[off+0]) * w
				g += float64(src.Pix[off+1]) * w
				b += float64(src.Pix[off+2]) * w
				a += float64(src.Pix[off+3]) * w
			}
			off := horiz.PixOffset(x, y)
			horiz.Pix[off+0] = clampByte(r)
			horiz.Pix[off+1] = clampByte(g)
			horiz.Pix[off+2] = clampByte(b)
			horiz.Pix[off+3] = clampByte(a)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for x := 0; x < dstW; x++ {
		for y := 0; y < dstH; y++ {
			lo, weights := lanczosWeights(y, scaleY, srcH)
			var r, g, b, a float64
			for i, w := range weights {
				off := horiz.PixOffset(x, lo+i)
				r += float64(horiz.Pix[off+0]) * w
				g += float64(horiz.Pix[off+1]) * w
				b += float64(horiz.Pix[off+2]) * w
				a += float64(horiz.Pix[off+3]) * w
			}
			off := dst.PixOffset(x, y)
			dst.Pix[off+0] = clampByte(r)
			dst.Pix[off+1] = clampByte(g)
			dst.Pix[off+2] = clampByte(b)
			dst.Pix[off+3] = clampByte(a)
		}
	}

	return dst
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
