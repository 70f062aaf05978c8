package text

import (
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// gridCanvas records pixel writes for assertions
type gridCanvas struct {
	pixels map[[2]int]color.RGBA
}

func newGridCanvas() *gridCanvas {
	return &gridCanvas{pixels: make(map[[2]int]color.RGBA)}
}

func (g *gridCanvas) SetPixel(x, y int, c color.RGBA) {
	g.pixels[[2]int{x, y}] = c
}

// TestDraw renders a known glyph and checks its pixel pattern
func TestDraw(t *testing.T) {
	dst := newGridCanvas()
	white := color.RGBA{255, 255, 255, 255}

	// '-' is a single horizontal stroke on row 3.
	Draw(dst, "-", 0, 0, white)

	for col := 0; col < GlyphWidth; col++ {
		if _, on := dst.pixels[[2]int{col, 3}]; !on {
			t.Errorf("pixel (%d, 3) not lit for '-'", col)
		}
	}
	for pos := range dst.pixels {
		if pos[1] != 3 {
			t.Errorf("unexpected lit pixel at %v for '-'", pos)
		}
	}
}

// TestDrawOffsetsAndFolding verifies anchoring and lowercase folding
func TestDrawOffsetsAndFolding(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}

	upper := newGridCanvas()
	Draw(upper, "A", 0, 0, white)
	lower := newGridCanvas()
	Draw(lower, "a", 0, 0, white)
	if len(upper.pixels) != len(lower.pixels) {
		t.Errorf("'a' lit %d pixels, 'A' lit %d; want identical", len(lower.pixels), len(upper.pixels))
	}

	shifted := newGridCanvas()
	Draw(shifted, "A", 10, 4, white)
	for pos := range shifted.pixels {
		if pos[0] < 10 || pos[1] < 4 {
			t.Errorf("pixel %v drawn outside the anchored region", pos)
		}
	}

	// Unknown runes fall back to '?' instead of disappearing.
	unknown := newGridCanvas()
	Draw(unknown, "é", 0, 0, white)
	if len(unknown.pixels) == 0 {
		t.Error("unknown rune rendered nothing, want '?' fallback")
	}
}

// TestMeasure checks string widths in the 5x7 font
func TestMeasure(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{name: "empty", s: "", want: 0},
		{name: "one glyph", s: "A", want: 5},
		{name: "two glyphs", s: "OK", want: 11},
		{name: "spaces count", s: "A B", want: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Measure(tt.s); got != tt.want {
				t.Errorf("Measure(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

// TestDrawFace renders through an x/image font face
func TestDrawFace(t *testing.T) {
	dst := newGridCanvas()
	green := color.RGBA{0, 255, 0, 255}

	DrawFace(dst, basicfont.Face7x13, "Hi", 3, 2, green)
	if len(dst.pixels) == 0 {
		t.Fatal("DrawFace rendered nothing")
	}
	for pos, c := range dst.pixels {
		if pos[0] < 3 || pos[1] < 2 {
			t.Errorf("pixel %v drawn outside the anchored region", pos)
		}
		if c != green {
			t.Errorf("pixel %v color = %v, want %v", pos, c, green)
		}
	}

	empty := newGridCanvas()
	DrawFace(empty, basicfont.Face7x13, "", 0, 0, green)
	if len(empty.pixels) != 0 {
		t.Error("DrawFace of empty string lit pixels")
	}
}
