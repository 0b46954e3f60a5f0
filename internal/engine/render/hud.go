package render

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/Faultbox/wirehouse/internal/engine/camera"
	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/pkg/math"
)

// Layout defaults for the on-screen text.
const (
	DefaultHintsX     = -580.0
	DefaultTelemetryX = 350.0
	DefaultHUDTopY    = 350.0
	DefaultRowHeight  = 20.0
	titleGap          = 10.0
)

// HUDLine is one line of text and the style it is drawn in.
type HUDLine struct {
	Text  string
	Style surface.TextStyle
}

// ControlHints is the left column of the overlay.
var ControlHints = []HUDLine{
	{"3D Rendered House", surface.StyleTitle},
	{"Movement Controls (Hold for continuous):", surface.StyleHeading},
	{"WASD: Rotate around X and Y axes", surface.StyleBody},
	{"QE: Rotate around Z axis", surface.StyleBody},
	{"Up/Down arrows: Zoom in/out", surface.StyleBody},
	{"Left/Right arrows: Pan left/right", surface.StyleBody},
	{"PgUp/PgDn: Pan up/down", surface.StyleBody},
	{"R: Reset view", surface.StyleBody},
	{"ESC: Exit", surface.StyleBody},
}

// HUD draws the control hints and the camera telemetry.
type HUD struct {
	Hints     math.Vec2
	Telemetry math.Vec2
	RowHeight float64
	Color     color.Color
}

// DefaultHUD returns the standard overlay layout.
func DefaultHUD() HUD {
	return HUD{
		Hints:     math.Vec2{X: DefaultHintsX, Y: DefaultHUDTopY},
		Telemetry: math.Vec2{X: DefaultTelemetryX, Y: DefaultHUDTopY},
		RowHeight: DefaultRowHeight,
		Color:     colornames.Black,
	}
}

// TelemetryLines formats the right column for a view and object count.
func TelemetryLines(v camera.View, objects int) []HUDLine {
	return []HUDLine{
		{"Camera Status:", surface.StyleHeading},
		{fmt.Sprintf("Rotation X: %.3f", v.RotationX), surface.StyleBody},
		{fmt.Sprintf("Rotation Y: %.3f", v.RotationY), surface.StyleBody},
		{fmt.Sprintf("Rotation Z: %.3f", v.RotationZ), surface.StyleBody},
		{fmt.Sprintf("Zoom: %.3f", v.Zoom), surface.StyleBody},
		{fmt.Sprintf("Objects: %d", objects), surface.StyleBody},
	}
}

// Draw writes both columns. The title row gets extra space below it.
func (h HUD) Draw(s surface.Surface, v camera.View, objects int) error {
	s.SetColor(h.Color)

	at := h.Hints
	for i, line := range ControlHints {
		if err := s.DrawText(at, line.Text, line.Style); err != nil {
			return err
		}
		at.Y -= h.RowHeight
		if i == 0 {
			at.Y -= titleGap
		}
	}

	at = h.Telemetry
	for _, line := range TelemetryLines(v, objects) {
		if err := s.DrawText(at, line.Text, line.Style); err != nil {
			return err
		}
		at.Y -= h.RowHeight
	}
	return nil
}
