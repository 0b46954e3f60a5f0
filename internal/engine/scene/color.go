package scene

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// NamedColor resolves a CSS/X11 color name such as "saddlebrown".
// Unknown names resolve to opaque black.
func NamedColor(name string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return color.RGBA{A: 0xff}
}

// LookupColor is NamedColor with an explicit found flag.
func LookupColor(name string) (color.RGBA, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
