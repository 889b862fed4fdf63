package stage

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"testing"
)

func TestNewEncoder(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"jpeg", ".jpg", false},
		{"jpg", ".jpg", false},
		{"bmp", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			enc, err := NewEncoder(tt.format, 80)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if enc.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", enc.Extension(), tt.wantExt)
			}
		})
	}
}

func TestJPEGEncoder_RoundTrips(t *testing.T) {
	img := solidImage(16, color.RGBA{10, 20, 30, 255})
	enc := JPEGEncoder{Quality: 90}

	data, err := enc.Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}

func TestJPEGEncoder_FlattensTransparency(t *testing.T) {
	enc := JPEGEncoder{Quality: 80}
	if !enc.FlattensTransparency() {
		t.Error("JPEGEncoder.FlattensTransparency() = false, want true")
	}
}
