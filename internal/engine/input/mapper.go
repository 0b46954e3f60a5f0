package input

import (
	"github.com/Faultbox/wirehouse/internal/engine/camera"
)

// Per-frame target increments.
const (
	DefaultRotationStep = 0.01
	DefaultZoomStep     = 0.1
	DefaultPanStep      = 5.0
)

// EffectKind says which camera target a binding moves.
type EffectKind int

const (
	EffectRotate EffectKind = iota
	EffectZoom
	EffectPan
)

// Effect is what holding a key does each frame.
type Effect struct {
	Kind EffectKind
	Axis camera.Axis
	Sign float64
}

// Binding pairs a key with its effect.
type Binding struct {
	Key    Key
	Effect Effect
}

// DefaultBindings is the standard control table.
var DefaultBindings = []Binding{
	{KeyRotateXPos, Effect{EffectRotate, camera.AxisX, +1}},
	{KeyRotateXNeg, Effect{EffectRotate, camera.AxisX, -1}},
	{KeyRotateYPos, Effect{EffectRotate, camera.AxisY, +1}},
	{KeyRotateYNeg, Effect{EffectRotate, camera.AxisY, -1}},
	{KeyRotateZPos, Effect{EffectRotate, camera.AxisZ, +1}},
	{KeyRotateZNeg, Effect{EffectRotate, camera.AxisZ, -1}},
	{KeyZoomIn, Effect{EffectZoom, camera.AxisX, +1}},
	{KeyZoomOut, Effect{EffectZoom, camera.AxisX, -1}},
	{KeyPanRight, Effect{EffectPan, camera.AxisX, +1}},
	{KeyPanLeft, Effect{EffectPan, camera.AxisX, -1}},
	{KeyPanUp, Effect{EffectPan, camera.AxisY, +1}},
	{KeyPanDown, Effect{EffectPan, camera.AxisY, -1}},
}

// Steps holds the per-frame increments.
type Steps struct {
	Rotation float64
	Zoom     float64
	Pan      float64
}

// DefaultSteps returns the standard increments.
func DefaultSteps() Steps {
	return Steps{
		Rotation: DefaultRotationStep,
		Zoom:     DefaultZoomStep,
		Pan:      DefaultPanStep,
	}
}

// Mapper applies held keys to camera targets.
type Mapper struct {
	bindings []Binding
	steps    Steps
}

// NewMapper creates a mapper. A nil binding table means DefaultBindings.
func NewMapper(bindings []Binding, steps Steps) *Mapper {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &Mapper{bindings: bindings, steps: steps}
}

// Apply walks the binding table once and nudges the camera targets for each
// held key. Opposing keys cancel; keys without a binding do nothing.
func (m *Mapper) Apply(held Held, cam *camera.State) {
	for _, b := range m.bindings {
		if !held.Has(b.Key) {
			continue
		}
		e := b.Effect
		switch e.Kind {
		case EffectRotate:
			cam.AddRotationTarget(e.Axis, e.Sign*m.steps.Rotation)
		case EffectZoom:
			cam.AddZoomTarget(e.Sign * m.steps.Zoom)
		case EffectPan:
			cam.AddPanTarget(e.Axis, e.Sign*m.steps.Pan)
		}
	}
}
