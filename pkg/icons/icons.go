// Package icons rasterizes SVG app icons to matrix-sized sprites and
// blits them onto a display.
package icons

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Canvas is the surface icons are drawn onto. Every display driver
// satisfies it.
type Canvas interface {
	SetPixel(x, y int, c color.RGBA)
}

// Load reads an SVG file and rasterizes it to width x height pixels
func Load(path string, width, height int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := Decode(file, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %s: %w", path, err)
	}
	return img, nil
}

// Decode rasterizes SVG data from r to width x height pixels
func Decode(r io.Reader, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid icon size: %dx%d", width, height)
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

// Draw blits a rasterized icon onto the canvas at (x, y). Matrix
// pixels have no alpha, so translucent icon pixels are composited over
// black and fully transparent ones are skipped.
func Draw(dst Canvas, img image.Image, x, y int) {
	bounds := img.Bounds()
	for yy := bounds.Min.Y; yy < bounds.Max.Y; yy++ {
		for xx := bounds.Min.X; xx < bounds.Max.X; xx++ {
			r, g, b, a := img.At(xx, yy).RGBA()
			if a == 0 {
				continue
			}
			dst.SetPixel(x+xx-bounds.Min.X, y+yy-bounds.Min.Y, color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: 0xFF,
			})
		}
	}
}
