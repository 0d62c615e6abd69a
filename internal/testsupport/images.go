package testsupport

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// JPEG encodes a width x height gradient image, enough detail for the
// thumbnail renderer to crop.
func JPEG(t testing.TB, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.White)
	for y := range height {
		for x := range width {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}
