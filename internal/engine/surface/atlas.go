package surface

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/wirehouse/pkg/math"
)

// Atlas layout.
const (
	atlasWidth   = 512
	atlasPadding = 1
	firstGlyph   = ' '
	lastGlyph    = '~'
)

// Glyph locates one rasterized rune inside an atlas.
type Glyph struct {
	// Bounds is the glyph box relative to the pen dot, y down.
	Bounds  image.Rectangle
	U0, V0  float32
	U1, V1  float32
	Advance float64
}

// GlyphQuad is one positioned glyph ready to be drawn, in pixels with y down.
type GlyphQuad struct {
	X, Y, W, H     float64
	U0, V0, U1, V1 float32
}

// GlyphAtlas packs the printable ASCII glyphs of a face into one alpha image.
type GlyphAtlas struct {
	Image  *image.Alpha
	face   font.Face
	glyphs map[rune]Glyph
}

// NewGlyphAtlas rasterizes the printable ASCII range of face.
func NewGlyphAtlas(face font.Face) (*GlyphAtlas, error) {
	type slot struct {
		r      rune
		bounds image.Rectangle
		adv    fixed.Int26_6
		at     image.Point
	}

	// First pass: measure and pack into shelves.
	var slots []slot
	x, y, shelf := atlasPadding, atlasPadding, 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, _, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := dr.Dx(), dr.Dy()
		if w > atlasWidth-2*atlasPadding {
			return nil, fmt.Errorf("glyph %q is wider than the atlas", r)
		}
		if x+w+atlasPadding > atlasWidth {
			x = atlasPadding
			y += shelf + atlasPadding
			shelf = 0
		}
		slots = append(slots, slot{r: r, bounds: dr, adv: adv, at: image.Pt(x, y)})
		x += w + atlasPadding
		if h > shelf {
			shelf = h
		}
	}
	height := y + shelf + atlasPadding

	a := &GlyphAtlas{
		Image:  image.NewAlpha(image.Rect(0, 0, atlasWidth, height)),
		face:   face,
		glyphs: make(map[rune]Glyph, len(slots)),
	}

	// Second pass: the face reuses its mask buffer, so draw right after each call.
	fw, fh := float32(atlasWidth), float32(height)
	for _, s := range slots {
		dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, s.r)
		if !ok {
			continue
		}
		dst := image.Rectangle{Min: s.at, Max: s.at.Add(dr.Size())}
		if mask != nil && !dst.Empty() {
			draw.Draw(a.Image, dst, mask, maskp, draw.Src)
		}
		a.glyphs[s.r] = Glyph{
			Bounds:  s.bounds,
			U0:      float32(dst.Min.X) / fw,
			V0:      float32(dst.Min.Y) / fh,
			U1:      float32(dst.Max.X) / fw,
			V1:      float32(dst.Max.Y) / fh,
			Advance: float64(s.adv) / 64,
		}
	}
	return a, nil
}

// Glyph returns the atlas entry for r. Runes outside the atlas fall back to '?'.
func (a *GlyphAtlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	if !ok {
		g, ok = a.glyphs['?']
	}
	return g, ok
}

// Layout positions text with its baseline starting at origin (pixels, y down).
func (a *GlyphAtlas) Layout(text string, origin math.Vec2) []GlyphQuad {
	quads := make([]GlyphQuad, 0, len(text))
	penX := origin.X
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			penX += float64(a.face.Kern(prev, r)) / 64
		}
		g, ok := a.Glyph(r)
		if !ok {
			continue
		}
		if !g.Bounds.Empty() {
			quads = append(quads, GlyphQuad{
				X:  penX + float64(g.Bounds.Min.X),
				Y:  origin.Y + float64(g.Bounds.Min.Y),
				W:  float64(g.Bounds.Dx()),
				H:  float64(g.Bounds.Dy()),
				U0: g.U0, V0: g.V0, U1: g.U1, V1: g.V1,
			})
		}
		penX += g.Advance
		prev = r
	}
	return quads
}
