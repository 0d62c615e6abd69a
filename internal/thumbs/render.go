package thumbs

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Renderer produces fixed-size JPEG thumbnails.
type Renderer struct {
	Width   int
	Height  int
	Quality int
}

// Render decodes src, scales it to cover Width x Height, crops the overflow
// from the less detailed edge, and encodes the result as JPEG.
func (r Renderer) Render(src []byte) ([]byte, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, errors.New("thumbnail size must be positive")
	}
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, errors.New("decode image: empty image")
	}

	scale := math.Max(float64(r.Width)/float64(bounds.Dx()), float64(r.Height)/float64(bounds.Dy()))
	scaledW := max(r.Width, int(math.Ceil(float64(bounds.Dx())*scale)))
	scaledH := max(r.Height, int(math.Ceil(float64(bounds.Dy())*scale)))
	scaled := imaging.Resize(img, scaledW, scaledH, imaging.Lanczos)

	cropped := imaging.Crop(scaled, entropyWindow(scaled, r.Width, r.Height))

	quality := r.Quality
	if quality <= 0 {
		quality = 80
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// entropyWindow returns the width x height rectangle left after repeatedly
// trimming a strip from whichever end of the overflowing axis carries less
// information.
func entropyWindow(img *image.NRGBA, width, height int) image.Rectangle {
	window := img.Bounds()
	for window.Dx() > width {
		strip := stripSize(window.Dx() - width)
		left := image.Rect(window.Min.X, window.Min.Y, window.Min.X+strip, window.Max.Y)
		right := image.Rect(window.Max.X-strip, window.Min.Y, window.Max.X, window.Max.Y)
		if entropy(img, left) < entropy(img, right) {
			window.Min.X += strip
		} else {
			window.Max.X -= strip
		}
	}
	for window.Dy() > height {
		strip := stripSize(window.Dy() - height)
		top := image.Rect(window.Min.X, window.Min.Y, window.Max.X, window.Min.Y+strip)
		bottom := image.Rect(window.Min.X, window.Max.Y-strip, window.Max.X, window.Max.Y)
		if entropy(img, top) < entropy(img, bottom) {
			window.Min.Y += strip
		} else {
			window.Max.Y -= strip
		}
	}
	return window
}

// stripSize trims in steps of at most 10 pixels so the choice can change
// side as the window moves.
func stripSize(overflow int) int {
	return min(overflow, 10)
}

// entropy is the Shannon entropy of the grayscale histogram of rect.
func entropy(img *image.NRGBA, rect image.Rectangle) float64 {
	var histogram [256]int
	total := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := img.Pix[img.PixOffset(rect.Min.X, y):]
		for x := 0; x < rect.Dx(); x++ {
			p := row[x*4 : x*4+3]
			gray := (299*int(p[0]) + 587*int(p[1]) + 114*int(p[2])) / 1000
			histogram[gray]++
			total++
		}
	}
	if total == 0 {
		return 0
	}
	var sum float64
	for _, count := range histogram {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		sum -= p * math.Log2(p)
	}
	return sum
}
