// Package framebuffer provides the in-memory pixel buffer shared by all
// display drivers. The buffer holds 8-bit RGB values for a fixed-size
// logical matrix; hardware only sees its contents when a driver pushes
// them out on Show.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"
)

// Buffer is a width x height grid of RGB pixels. Dimensions are fixed at
// construction and every cell starts out black.
type Buffer struct {
	width  int
	height int
	pix    []color.RGBA
}

// New creates a buffer with the given dimensions
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	b := &Buffer{
		width:  width,
		height: height,
		pix:    make([]color.RGBA, width*height),
	}
	b.Clear()
	return b, nil
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels
func (b *Buffer) Height() int {
	return b.height
}

// Set writes a pixel. Coordinates outside the buffer are silently
// ignored so callers can draw without bounds-checking every write.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	c.A = 0xFF
	b.pix[y*b.width+x] = c
}

// At returns the pixel at the given coordinates. Out-of-range
// coordinates read as black.
func (b *Buffer) At(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{A: 0xFF}
	}
	return b.pix[y*b.width+x]
}

// Clear resets every cell to black
func (b *Buffer) Clear() {
	b.Fill(color.RGBA{})
}

// Fill sets every cell to the given color
func (b *Buffer) Fill(c color.RGBA) {
	c.A = 0xFF
	for i := range b.pix {
		b.pix[i] = c
	}
}

// WriteRGBA copies the buffer into dst as packed RGBA bytes, the layout
// expected by windowing backends. dst must hold width*height*4 bytes.
func (b *Buffer) WriteRGBA(dst []byte) error {
	if len(dst) < len(b.pix)*4 {
		return fmt.Errorf("destination too small: %d bytes, need %d", len(dst), len(b.pix)*4)
	}
	for i, c := range b.pix {
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = 0xFF
	}
	return nil
}

// Image returns a copy of the buffer as an image.RGBA
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	_ = b.WriteRGBA(img.Pix)
	return img
}
