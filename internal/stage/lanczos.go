package stage

import "math"

// lanczos3 evaluates the Lanczos kernel with a=3 at x. No pack library
// names a Lanczos-3 scaler (golang.org/x/image/draw only offers
// NearestNeighbor/ApproxBiLinear/BiLinear/CatmullRom), so the kernel
// itself is hand-written here; see DESIGN.md.
func lanczos3(x float64) float64 {
	const a = 3.0
	if x == 0 {
		return 1
	}
	if x <= -a || x >= a {
		return 0
	}
	piX := math.Pi * x
	return a * math.Sin(piX) * math.Sin(piX/a) / (piX * piX)
}

// lanczosWeights returns the lanczos3 taps for a source axis of length
// srcLen, sampling at destination coordinate dstX when downscaling by
// factor scale (srcLen / dstLen). The taps sum to 1 (renormalized) so
// flat regions of the source are reproduced exactly.
func lanczosWeights(dstX int, scale float64, srcLen int) (start int, weights []float64) {
	center := (float64(dstX) + 0.5) * scale
	radius := 3.0 * math.Max(scale, 1.0)

	lo := int(math.Floor(center - radius))
	hi := int(math.Ceil(center + radius))
	if lo < 0 {
		lo = 0
	}
	if hi > srcLen {
		hi = srcLen
	}
	if lo >= hi {
		lo = clampInt(int(center), 0, srcLen-1)
		hi = lo + 1
	}

	invScale := 1.0
	if scale > 1.0 {
		invScale = 1.0 / scale
	}

	weights = make([]float64, hi-lo)
	var sum float64
	for i := lo; i < hi; i++ {
		sampleCenter := (float64(i) + 0.5 - center) * invScale
		w := lanczos3(sampleCenter)
		weights[i-lo] = w
		sum += w
	}
	if sum != 0 {
		for i := range weights {
			weights[i] /= sum
		}
	}
	return lo, weights
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
