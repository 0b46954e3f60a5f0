package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	gomath "math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Faultbox/wirehouse/pkg/math"
)

// DefaultLineWidth is the stroke width of rasterized edges, in pixels.
const DefaultLineWidth = 1.0

// Image is a Surface backed by an in-memory RGBA image. It is used for
// headless rendering and snapshots.
type Image struct {
	img       *image.RGBA
	width     int
	height    int
	bg        color.RGBA
	fg        *image.Uniform
	pen       math.Vec2
	lineWidth float64
	fonts     *Fonts
	ras       *vector.Rasterizer
	frames    int
	closed    bool
}

// NewImage creates an image surface. fonts may be shared between surfaces.
func NewImage(width, height int, bg color.Color, fonts *Fonts) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image surface size %dx%d", width, height)
	}
	if fonts == nil {
		var err error
		if fonts, err = LoadFonts(); err != nil {
			return nil, err
		}
	}
	s := &Image{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		width:     width,
		height:    height,
		bg:        ToRGBA(bg),
		fg:        image.NewUniform(color.Black),
		lineWidth: DefaultLineWidth,
		fonts:     fonts,
		ras:       vector.NewRasterizer(width, height),
	}
	s.fill()
	return s, nil
}

// SetLineWidth changes the stroke width. Values below 0.5 are raised to 0.5.
func (s *Image) SetLineWidth(w float64) {
	s.lineWidth = gomath.Max(w, 0.5)
}

// Image returns the backing image. It is overwritten by the next frame.
func (s *Image) Image() *image.RGBA { return s.img }

// Frames returns how many frames have been presented.
func (s *Image) Frames() int { return s.frames }

// Size implements Surface.
func (s *Image) Size() (int, int) { return s.width, s.height }

// Clear implements Surface.
func (s *Image) Clear() error {
	if s.closed {
		return ErrClosed
	}
	s.fill()
	return nil
}

func (s *Image) fill() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
}

// SetColor implements Surface.
func (s *Image) SetColor(c color.Color) {
	s.fg = image.NewUniform(ToRGBA(c))
}

// MoveTo implements Surface.
func (s *Image) MoveTo(p math.Vec2) { s.pen = p }

// LineTo implements Surface.
func (s *Image) LineTo(p math.Vec2) error {
	if s.closed {
		return ErrClosed
	}
	from := s.toPixel(s.pen)
	to := s.toPixel(p)
	s.pen = p

	// Keep a margin so strokes touching the border keep their full width.
	margin := s.lineWidth + 1
	from, to, ok := clipSegment(from, to,
		-margin, -margin, float64(s.width)+margin, float64(s.height)+margin)
	if !ok {
		return nil
	}
	s.stroke(from, to)
	return nil
}

// stroke rasterizes a segment as a quad of lineWidth thickness.
func (s *Image) stroke(a, b math.Vec2) {
	half := s.lineWidth / 2
	d := b.Sub(a)
	length := d.Length()

	var nx, ny, ex, ey float64
	if length < 1e-9 {
		// Degenerate segment: a square dot.
		nx, ny = 0, half
		ex, ey = half, 0
	} else {
		nx, ny = -d.Y/length*half, d.X/length*half
	}

	s.ras.Reset(s.width, s.height)
	s.ras.MoveTo(float32(a.X+nx-ex), float32(a.Y+ny-ey))
	s.ras.LineTo(float32(b.X+nx+ex), float32(b.Y+ny+ey))
	s.ras.LineTo(float32(b.X-nx+ex), float32(b.Y-ny+ey))
	s.ras.LineTo(float32(a.X-nx-ex), float32(a.Y-ny-ey))
	s.ras.ClosePath()
	s.ras.Draw(s.img, s.img.Bounds(), s.fg, image.Point{})
}

// DrawText implements Surface.
func (s *Image) DrawText(p math.Vec2, text string, style TextStyle) error {
	if s.closed {
		return ErrClosed
	}
	face, err := s.fonts.Face(style)
	if err != nil {
		return err
	}
	px := s.toPixel(p)
	d := font.Drawer{
		Dst:  s.img,
		Src:  s.fg,
		Face: face,
		Dot:  fixed.P(int(gomath.Round(px.X)), int(gomath.Round(px.Y))),
	}
	d.DrawString(text)
	return nil
}

// Present implements Surface.
func (s *Image) Present() error {
	if s.closed {
		return ErrClosed
	}
	s.frames++
	return nil
}

// Close implements Surface. The shared fonts are left to their owner.
func (s *Image) Close() error {
	s.closed = true
	return nil
}

// Closed implements Surface.
func (s *Image) Closed() bool { return s.closed }

// toPixel maps centered y-up canvas coordinates to image pixels.
func (s *Image) toPixel(p math.Vec2) math.Vec2 {
	return math.Vec2{
		X: p.X + float64(s.width)/2,
		Y: float64(s.height)/2 - p.Y,
	}
}

// clipSegment clips a-b to the rectangle [minX,maxX]x[minY,maxY]
// (Liang-Barsky). ok is false when nothing is left.
func clipSegment(a, b math.Vec2, minX, minY, maxX, maxY float64) (math.Vec2, math.Vec2, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return math.Vec2{X: a.X + t0*dx, Y: a.Y + t0*dy},
		math.Vec2{X: a.X + t1*dx, Y: a.Y + t1*dy},
		true
}
