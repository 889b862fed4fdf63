//go:build !cgo

package stage

import "fmt"

func newWebPEncoder(quality int) (Encoder, error) {
	return nil, fmt.Errorf("stage: webp: native libwebp encoder requires CGO (install libwebp-dev and build with CGO_ENABLED=1)")
}
