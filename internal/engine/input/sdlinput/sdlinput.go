// Package sdlinput feeds SDL2 keyboard and window events into an
// input.Source.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/wirehouse/internal/engine/input"
)

// DefaultScancodes maps physical SDL keys to logical keys.
var DefaultScancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:        input.KeyRotateXPos,
	sdl.SCANCODE_S:        input.KeyRotateXNeg,
	sdl.SCANCODE_D:        input.KeyRotateYPos,
	sdl.SCANCODE_A:        input.KeyRotateYNeg,
	sdl.SCANCODE_E:        input.KeyRotateZPos,
	sdl.SCANCODE_Q:        input.KeyRotateZNeg,
	sdl.SCANCODE_UP:       input.KeyZoomIn,
	sdl.SCANCODE_DOWN:     input.KeyZoomOut,
	sdl.SCANCODE_RIGHT:    input.KeyPanRight,
	sdl.SCANCODE_LEFT:     input.KeyPanLeft,
	sdl.SCANCODE_PAGEUP:   input.KeyPanUp,
	sdl.SCANCODE_PAGEDOWN: input.KeyPanDown,
	sdl.SCANCODE_R:        input.KeyReset,
	sdl.SCANCODE_ESCAPE:   input.KeyExit,
	sdl.SCANCODE_F12:      input.KeyScreenshot,
}

// Events translates SDL events for one input.Source.
type Events struct {
	source    *input.Source
	scancodes map[sdl.Scancode]input.Key
}

// New creates a translator writing into source.
func New(source *input.Source) *Events {
	return &Events{source: source, scancodes: DefaultScancodes}
}

// Source returns the source events are written to.
func (e *Events) Source() *input.Source { return e.source }

// Poll drains pending SDL events. It must run on the thread that owns the window.
func (e *Events) Poll() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e.Handle(event)
	}
}

// Handle applies a single SDL event.
func (e *Events) Handle(event sdl.Event) {
	keys := e.source.Keys()
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		e.source.Inject(input.SignalWindowClosed)

	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_CLOSE {
			e.source.Inject(input.SignalWindowClosed)
		}
		if ev.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			// Releases are not delivered to an unfocused window.
			keys.Clear()
		}

	case *sdl.KeyboardEvent:
		key, ok := e.scancodes[ev.Keysym.Scancode]
		if !ok {
			return
		}
		if sig, ok := input.SignalFor(key); ok {
			if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
				e.source.Inject(sig)
			}
			return
		}
		if ev.Type == sdl.KEYDOWN {
			keys.Press(key)
		} else if ev.Type == sdl.KEYUP {
			keys.Release(key)
		}
	}
}
