package icons

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// redSquare is a minimal SVG filling its viewport
const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16">
  <rect x="0" y="0" width="16" height="16" fill="#ff0000"/>
</svg>`

// TestDecode rasterizes an SVG and checks size and fill
func TestDecode(t *testing.T) {
	img, err := Decode(strings.NewReader(redSquare), 8, 8)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", img.Bounds())
	}

	r, _, _, a := img.At(4, 4).RGBA()
	if a == 0 {
		t.Fatal("center pixel is transparent, want red fill")
	}
	if r < 0xF000 {
		t.Errorf("center pixel red channel = %#x, want near full", r)
	}
}

// TestDecodeErrors covers invalid input
func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(strings.NewReader(redSquare), 0, 8); err == nil {
		t.Error("Decode() with zero width did not return error")
	}
	if _, err := Decode(strings.NewReader("not svg at all <"), 8, 8); err == nil {
		t.Error("Decode() with malformed SVG did not return error")
	}
}

// TestLoad reads an icon from disk
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.svg")
	if err := os.WriteFile(path, []byte(redSquare), 0o644); err != nil {
		t.Fatalf("failed to write icon: %v", err)
	}

	img, err := Load(path, 4, 4)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d, want 4", img.Bounds().Dx())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.svg"), 4, 4); err == nil {
		t.Error("Load() on missing file did not return error")
	}
}

// recordCanvas captures blitted pixels
type recordCanvas struct {
	pixels map[[2]int]color.RGBA
}

func (r *recordCanvas) SetPixel(x, y int, c color.RGBA) {
	r.pixels[[2]int{x, y}] = c
}

// TestDraw blits a sprite, skipping transparent pixels
func TestDraw(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 200, A: 255})
	img.SetRGBA(1, 1, color.RGBA{G: 100, A: 255})
	// (1,0) and (0,1) stay fully transparent.

	dst := &recordCanvas{pixels: make(map[[2]int]color.RGBA)}
	Draw(dst, img, 5, 6)

	if len(dst.pixels) != 2 {
		t.Fatalf("blitted %d pixels, want 2", len(dst.pixels))
	}
	if c, ok := dst.pixels[[2]int{5, 6}]; !ok || c.R != 200 {
		t.Errorf("pixel (5,6) = %v, want red 200", c)
	}
	if c, ok := dst.pixels[[2]int{6, 7}]; !ok || c.G != 100 {
		t.Errorf("pixel (6,7) = %v, want green 100", c)
	}
}
