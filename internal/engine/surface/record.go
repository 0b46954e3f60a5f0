package surface

import (
	"image/color"

	"github.com/Faultbox/wirehouse/pkg/math"
)

// Segment is one recorded line.
type Segment struct {
	From, To math.Vec2
	Color    color.RGBA
}

// Text is one recorded text draw.
type Text struct {
	At    math.Vec2
	Text  string
	Style TextStyle
	Color color.RGBA
}

// Recorder is a Surface that keeps what was drawn in the current frame.
// It never touches a display, which makes it useful for tests and for
// counting work in headless runs.
type Recorder struct {
	Width, Height int

	// CloseAfter, when > 0, closes the surface once that many lines have
	// been drawn, imitating a window closed mid-frame.
	CloseAfter int

	Segments []Segment
	Texts    []Text
	Clears   int
	Presents int

	color  color.RGBA
	pen    math.Vec2
	lines  int
	closed bool
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// Size implements Surface.
func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

// Clear implements Surface. It drops the previous frame's records.
func (r *Recorder) Clear() error {
	if r.closed {
		return ErrClosed
	}
	r.Clears++
	r.Segments = r.Segments[:0]
	r.Texts = r.Texts[:0]
	return nil
}

// SetColor implements Surface.
func (r *Recorder) SetColor(c color.Color) { r.color = ToRGBA(c) }

// MoveTo implements Surface.
func (r *Recorder) MoveTo(p math.Vec2) { r.pen = p }

// LineTo implements Surface.
func (r *Recorder) LineTo(p math.Vec2) error {
	if r.closed {
		return ErrClosed
	}
	r.Segments = append(r.Segments, Segment{From: r.pen, To: p, Color: r.color})
	r.pen = p
	r.lines++
	if r.CloseAfter > 0 && r.lines >= r.CloseAfter {
		r.closed = true
	}
	return nil
}

// DrawText implements Surface.
func (r *Recorder) DrawText(p math.Vec2, text string, style TextStyle) error {
	if r.closed {
		return ErrClosed
	}
	r.Texts = append(r.Texts, Text{At: p, Text: text, Style: style, Color: r.color})
	return nil
}

// Present implements Surface.
func (r *Recorder) Present() error {
	if r.closed {
		return ErrClosed
	}
	r.Presents++
	return nil
}

// Close implements Surface.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Closed implements Surface.
func (r *Recorder) Closed() bool { return r.closed }
