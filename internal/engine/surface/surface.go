// Package surface defines the 2D canvas the renderer draws on.
//
// Canvas coordinates are centered on the origin with y pointing up, so a
// 1200x800 surface spans x in [-600, 600] and y in [-400, 400].
package surface

import (
	"errors"
	"image/color"

	"github.com/Faultbox/wirehouse/pkg/math"
)

// ErrClosed is returned by drawing calls once the surface is gone,
// typically because the user closed the window.
var ErrClosed = errors.New("surface closed")

// TextStyle selects a HUD font.
type TextStyle struct {
	Size float64 // points
	Bold bool
}

// Standard HUD styles.
var (
	StyleTitle   = TextStyle{Size: 16, Bold: true}
	StyleHeading = TextStyle{Size: 12, Bold: true}
	StyleBody    = TextStyle{Size: 10}
)

// Surface is a line-and-text canvas.
type Surface interface {
	// Size returns the canvas size in logical pixels.
	Size() (width, height int)
	// Clear fills the canvas with the background color.
	Clear() error
	// SetColor sets the color for subsequent lines and text.
	SetColor(c color.Color)
	// MoveTo lifts the pen and moves it to p.
	MoveTo(p math.Vec2)
	// LineTo draws from the pen position to p and leaves the pen at p.
	LineTo(p math.Vec2) error
	// DrawText writes text with its baseline starting at p.
	DrawText(p math.Vec2, text string, style TextStyle) error
	// Present makes the finished frame visible.
	Present() error
	// Close releases the surface. Further drawing returns ErrClosed.
	Close() error
	// Closed reports whether the surface is gone.
	Closed() bool
}

// ToRGBA converts any color to non-premultiplied RGBA.
func ToRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
