package stage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// Encoder produces the final on-disk bytes for one tile part. The
// container extension must match the format actually written.
type Encoder interface {
	Encode(img image.Image) ([]byte, error)
	Extension() string
	// FlattensTransparency reports whether this container requires the
	// alpha-flattening pass (true for formats with no alpha channel).
	FlattensTransparency() bool
}

// JPEGEncoder encodes tile parts as JPEG. JPEG carries no alpha
// channel, so write-parts must flatten transparency before encoding.
type JPEGEncoder struct {
	Quality int
}

func (e JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e JPEGEncoder) Extension() string        { return ".jpg" }
func (e JPEGEncoder) FlattensTransparency() bool { return true }

// NewEncoder builds the run's single configured Encoder from its
// format name. WebP support comes from newWebPEncoder, which is
// native-libwebp-via-CGo when CGo is available and a clear error
// otherwise (see webp.go / webp_stub.go).
func NewEncoder(format string, quality int) (Encoder, error) {
	switch format {
	case "jpeg", "jpg":
		return JPEGEncoder{Quality: quality}, nil
	case "webp":
		return newWebPEncoder(quality)
	default:
		return nil, fmt.Errorf("stage: unsupported tile container %q (supported: jpeg, webp)", format)
	}
}
