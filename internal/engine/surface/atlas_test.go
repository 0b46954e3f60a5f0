package surface

import (
	"testing"

	"github.com/Faultbox/wirehouse/pkg/math"
)

func newTestAtlas(t *testing.T, style TextStyle) *GlyphAtlas {
	t.Helper()
	fonts, err := LoadFonts()
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	t.Cleanup(fonts.Close)
	face, err := fonts.Face(style)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	atlas, err := NewGlyphAtlas(face)
	if err != nil {
		t.Fatalf("NewGlyphAtlas: %v", err)
	}
	return atlas
}

func TestGlyphAtlasCoversASCII(t *testing.T) {
	for _, style := range []TextStyle{StyleTitle, StyleHeading, StyleBody} {
		atlas := newTestAtlas(t, style)
		for r := rune(firstGlyph); r <= lastGlyph; r++ {
			if _, ok := atlas.glyphs[r]; !ok {
				t.Errorf("style %+v: missing glyph %q", style, r)
			}
		}

		g, _ := atlas.Glyph('W')
		if g.Bounds.Empty() || g.Advance <= 0 {
			t.Errorf("style %+v: glyph W = %+v", style, g)
		}
		if g.U0 >= g.U1 || g.V0 >= g.V1 {
			t.Errorf("style %+v: glyph W has inverted UVs", style)
		}
	}
}

func TestGlyphAtlasHasInk(t *testing.T) {
	atlas := newTestAtlas(t, StyleBody)
	ink := 0
	for _, a := range atlas.Image.Pix {
		if a > 0 {
			ink++
		}
	}
	if ink == 0 {
		t.Error("atlas image is blank")
	}
}

func TestGlyphAtlasLayout(t *testing.T) {
	atlas := newTestAtlas(t, StyleHeading)

	quads := atlas.Layout("A B", math.Vec2{X: 10, Y: 50})
	if len(quads) != 2 {
		t.Fatalf("expected 2 quads (space has no ink), got %d", len(quads))
	}
	if quads[1].X <= quads[0].X+quads[0].W {
		t.Errorf("second glyph at %v overlaps first ending at %v", quads[1].X, quads[0].X+quads[0].W)
	}
	for i, q := range quads {
		if q.Y >= 50 || q.Y+q.H > 51 {
			t.Errorf("quad %d (y=%v h=%v) should sit on the baseline at 50", i, q.Y, q.H)
		}
	}
}

func TestGlyphAtlasFallback(t *testing.T) {
	atlas := newTestAtlas(t, StyleBody)
	want, _ := atlas.Glyph('?')
	got, ok := atlas.Glyph('é')
	if !ok || got != want {
		t.Errorf("non-ASCII rune should fall back to '?', got %+v", got)
	}
}
