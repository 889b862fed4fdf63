package stage

/*
#cgo pkg-config: libwebp
#include <stdlib.h>
#include <webp/encode.h>
*/
import "C"
import (
	"fmt"
	"image"
	"unsafe"
)

// WebPEncoder encodes tile parts as WebP using native libwebp via CGo.
// Requires libwebp to be installed (brew install webp / apt-get install
// libwebp-dev). WebP carries alpha, so the transparency-flattening
// pass is skipped.
type WebPEncoder struct {
	Quality int
}

func newWebPEncoder(quality int) (Encoder, error) {
	if quality <= 0 {
		quality = 80
	}
	return WebPEncoder{Quality: quality}, nil
}

func (e WebPEncoder) Encode(img image.Image) ([]byte, error) {
	rgba := toRGBA(img)
	bounds := rgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("webp: empty image")
	}

	var output *C.uint8_t
	size := C.WebPEncodeRGBA(
		(*C.uint8_t)(unsafe.Pointer(&rgba.Pix[0])),
		C.int(width),
		C.int(height),
		C.int(rgba.Stride),
		C.float(e.Quality),
		&output,
	)
	if size == 0 || output == nil {
		return nil, fmt.Errorf("webp: encode failed")
	}
	defer C.WebPFree(unsafe.Pointer(output))

	return C.GoBytes(unsafe.Pointer(output), C.int(size)), nil
}

func (e WebPEncoder) Extension() string         { return ".webp" }
func (e WebPEncoder) FlattensTransparency() bool { return false }
