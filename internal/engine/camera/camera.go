// Package camera holds the smoothed view state of the wireframe viewer.
package camera

import (
	"github.com/Faultbox/wirehouse/pkg/math"
)

// Default view, used at startup and on reset.
const (
	DefaultRotationX = 0.450
	DefaultRotationY = 3.110
	DefaultRotationZ = 0.000
	DefaultZoom      = 0.340

	// DefaultSmoothing is the fraction of the remaining distance closed per frame.
	DefaultSmoothing = 0.12
	// DefaultMinZoom is the lowest zoom the camera accepts.
	DefaultMinZoom = 0.1
)

// Axis names a principal axis for rotation and pan.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// View is one complete set of camera values.
type View struct {
	RotationX float64
	RotationY float64
	RotationZ float64
	Zoom      float64
	PanX      float64
	PanY      float64
}

// Defaults is the view the camera starts at and resets to.
type Defaults struct {
	View
	MinZoom float64
}

// DefaultView returns the built-in default view.
func DefaultView() Defaults {
	return Defaults{
		View: View{
			RotationX: DefaultRotationX,
			RotationY: DefaultRotationY,
			RotationZ: DefaultRotationZ,
			Zoom:      DefaultZoom,
		},
		MinZoom: DefaultMinZoom,
	}
}

// State holds current and target view values.
// Inputs move the target; Interpolate eases the current view toward it.
type State struct {
	current  View
	target   View
	defaults Defaults
}

// New creates a camera resting at the given defaults.
func New(d Defaults) *State {
	if d.MinZoom <= 0 {
		d.MinZoom = DefaultMinZoom
	}
	if d.Zoom < d.MinZoom {
		d.Zoom = d.MinZoom
	}
	return &State{
		current:  d.View,
		target:   d.View,
		defaults: d,
	}
}

// Current returns the current (displayed) view.
func (c *State) Current() View { return c.current }

// Target returns the view the camera is easing toward.
func (c *State) Target() View { return c.target }

// MinZoom returns the zoom floor.
func (c *State) MinZoom() float64 { return c.defaults.MinZoom }

// Pan returns the current screen-space offset.
func (c *State) Pan() math.Vec2 {
	return math.Vec2{X: c.current.PanX, Y: c.current.PanY}
}

// ResetTargets points every target back at the defaults.
// The current view is left alone so the reset animates.
func (c *State) ResetTargets() {
	c.target = c.defaults.View
}

// SetCurrent snaps the current view, clamping zoom.
func (c *State) SetCurrent(v View) {
	if v.Zoom < c.defaults.MinZoom {
		v.Zoom = c.defaults.MinZoom
	}
	c.current = v
}

// SetTarget replaces the target view, clamping zoom.
func (c *State) SetTarget(v View) {
	if v.Zoom < c.defaults.MinZoom {
		v.Zoom = c.defaults.MinZoom
	}
	c.target = v
}

// AddRotationTarget nudges the target rotation around axis.
func (c *State) AddRotationTarget(axis Axis, delta float64) {
	switch axis {
	case AxisX:
		c.target.RotationX += delta
	case AxisY:
		c.target.RotationY += delta
	case AxisZ:
		c.target.RotationZ += delta
	}
}

// AddZoomTarget nudges the target zoom, never below the minimum.
func (c *State) AddZoomTarget(delta float64) {
	z := c.target.Zoom + delta
	if z < c.defaults.MinZoom {
		z = c.defaults.MinZoom
	}
	c.target.Zoom = z
}

// AddPanTarget nudges the target pan along AxisX or AxisY.
func (c *State) AddPanTarget(axis Axis, delta float64) {
	switch axis {
	case AxisX:
		c.target.PanX += delta
	case AxisY:
		c.target.PanY += delta
	}
}

// Interpolate moves each current value blend of the way to its target.
// The step is per call, not per second. A blend of 1 lands exactly on the
// target and a blend of 0 leaves the current view untouched.
func (c *State) Interpolate(blend float64) {
	cur, tgt := &c.current, &c.target
	cur.RotationX = lerp(cur.RotationX, tgt.RotationX, blend)
	cur.RotationY = lerp(cur.RotationY, tgt.RotationY, blend)
	cur.RotationZ = lerp(cur.RotationZ, tgt.RotationZ, blend)
	cur.Zoom = lerp(cur.Zoom, tgt.Zoom, blend)
	cur.PanX = lerp(cur.PanX, tgt.PanX, blend)
	cur.PanY = lerp(cur.PanY, tgt.PanY, blend)

	if cur.Zoom < c.defaults.MinZoom {
		cur.Zoom = c.defaults.MinZoom
	}
}

// lerp weights both ends so t=0 and t=1 return a and b bit for bit.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Transform maps a world-space point into camera space:
// rotate X, then Y, then Z, then scale by zoom. Pan is not applied here.
func (c *State) Transform(p math.Vec3) math.Vec3 {
	return p.RotateX(c.current.RotationX).
		RotateY(c.current.RotationY).
		RotateZ(c.current.RotationZ).
		Scale(c.current.Zoom)
}

// Matrix returns Transform as a single matrix.
func (c *State) Matrix() math.Mat4 {
	v := c.current
	return math.EulerXYZ(v.RotationX, v.RotationY, v.RotationZ, v.Zoom)
}
