// Package text draws strings onto a display. Small panels use the
// built-in 5x7 matrix font; larger matrices can render any
// golang.org/x/image font face.
package text

import (
	"image"
	"image/color"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// GlyphWidth is the 5x7 font glyph width in pixels
	GlyphWidth = 5

	// GlyphHeight is the 5x7 font glyph height in pixels
	GlyphHeight = 7

	// Spacing is the gap between 5x7 glyphs
	Spacing = 1
)

// Canvas is the drawing surface text renders onto. Every display
// driver satisfies it.
type Canvas interface {
	SetPixel(x, y int, c color.RGBA)
}

// Draw renders s at (x, y) in the 5x7 matrix font, top-left anchored.
// Unknown runes render as '?'. Clipping is the canvas's concern:
// out-of-range pixels are silently dropped by the driver contract.
func Draw(dst Canvas, s string, x, y int, c color.RGBA) {
	for _, r := range s {
		glyph, ok := font5x7[unicode.ToUpper(r)]
		if !ok {
			glyph = font5x7['?']
		}
		for col := 0; col < GlyphWidth; col++ {
			bits := glyph[col]
			for row := 0; row < GlyphHeight; row++ {
				if bits&(1<<row) != 0 {
					dst.SetPixel(x+col, y+row, c)
				}
			}
		}
		x += GlyphWidth + Spacing
	}
}

// Measure returns the width in pixels of s in the 5x7 font
func Measure(s string) int {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 0
	}
	return n*GlyphWidth + (n-1)*Spacing
}

// DrawFace renders s at (x, y) using an x/image font face, top-left
// anchored. The face is rasterized off-screen and copied pixel by
// pixel so any display backend can show it.
func DrawFace(dst Canvas, face font.Face, s string, x, y int, c color.RGBA) {
	metrics := face.Metrics()
	width := font.MeasureString(face, s).Ceil()
	height := metrics.Height.Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	drawer.DrawString(s)

	for yy := 0; yy < height; yy++ {
		for xx := 0; xx < width; xx++ {
			if _, _, _, a := img.At(xx, yy).RGBA(); a >= 0x8000 {
				dst.SetPixel(x+xx, y+yy, c)
			}
		}
	}
}
