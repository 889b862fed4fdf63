package stage

import (
	"image"
	"image/color"
	"testing"

	"github.com/pyramidgen/chunktiles/internal/tileconst"
)

func TestBuildParent_AllFourChildrenSolid_ProducesSolidParent(t *testing.T) {
	red := color.RGBA{200, 10, 10, 255}
	children := []Child{
		{QuadX: 0, QuadY: 0, Image: solidImage(tileconst.TileSize, red)},
		{QuadX: 1, QuadY: 0, Image: solidImage(tileconst.TileSize, red)},
		{QuadX: 0, QuadY: 1, Image: solidImage(tileconst.TileSize, red)},
		{QuadX: 1, QuadY: 1, Image: solidImage(tileconst.TileSize, red)},
	}

	parent := BuildParent(children)
	if got := parent.Bounds(); got.Dx() != tileconst.TileSize || got.Dy() != tileconst.TileSize {
		t.Fatalf("parent bounds = %v, want %dx%d", got, tileconst.TileSize, tileconst.TileSize)
	}

	// A uniform-color source downsamples to the same uniform color
	// regardless of the filter (Lanczos-3 reproduces flat regions
	// exactly since its taps are renormalized to sum to 1).
	mid := tileconst.TileSize / 2
	for _, p := range []image.Point{{0, 0}, {mid, mid}, {tileconst.TileSize - 1, tileconst.TileSize - 1}} {
		got := parent.RGBAAt(p.X, p.Y)
		if got != red {
			t.Errorf("pixel at %v = %v, want %v", p, got, red)
		}
	}
}

func TestBuildParent_MissingChildrenStayTransparent(t *testing.T) {
	red := color.RGBA{200, 10, 10, 255}
	children := []Child{
		{QuadX: 0, QuadY: 0, Image: solidImage(tileconst.TileSize, red)},
	}

	parent := BuildParent(children)

	// Top-left quadrant (downsampled) should carry the red child.
	if got := parent.RGBAAt(1, 1); got != red {
		t.Errorf("top-left pixel = %v, want %v", got, red)
	}
	// Bottom-right quadrant had no child: stays transparent black.
	br := tileconst.TileSize - 2
	if got := parent.RGBAAt(br, br); got.A != 0 {
		t.Errorf("bottom-right pixel alpha = %d, want 0 (transparent, no premultiply)", got.A)
	}
}

func TestLanczos3_PeakAtZero(t *testing.T) {
	if got := lanczos3(0); got != 1 {
		t.Errorf("lanczos3(0) = %v, want 1", got)
	}
}

func TestLanczos3_ZeroAtSupportBoundary(t *testing.T) {
	for _, x := range []float64{3, -3, 4, -4} {
		if got := lanczos3(x); got != 0 {
			t.Errorf("lanczos3(%v) = %v, want 0", x, got)
		}
	}
}

func TestLanczosWeights_SumToOne(t *testing.T) {
	_, weights := lanczosWeights(5, 2.0, 1024)
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights sum to %v, want ~1.0", sum)
	}
}
