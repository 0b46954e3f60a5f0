package surface

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontDPI is the resolution HUD point sizes are rendered at.
const FontDPI = 72

// Fonts caches one face per TextStyle, built from the Go fonts.
type Fonts struct {
	mu      sync.Mutex
	regular *sfnt.Font
	bold    *sfnt.Font
	faces   map[TextStyle]font.Face
}

// LoadFonts parses the embedded Go regular and bold fonts.
func LoadFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[TextStyle]font.Face),
	}, nil
}

// Face returns the face for style, creating it on first use.
func (f *Fonts) Face(style TextStyle) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[style]; ok {
		return face, nil
	}

	src := f.regular
	if style.Bold {
		src = f.bold
	}
	size := style.Size
	if size <= 0 {
		size = StyleBody.Size
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     FontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %+v: %w", style, err)
	}
	f.faces[style] = face
	return face, nil
}

// Close releases every cached face.
func (f *Fonts) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, face := range f.faces {
		_ = face.Close()
		delete(f.faces, k)
	}
}
