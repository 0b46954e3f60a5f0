// Package debug writes rendered frames to disk.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an image file format for saved frames.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatPNG, FormatWebP, FormatTGA:
		return f, nil
	case "":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported image format %q (want png, webp or tga)", s)
}

// FormatFromPath picks a format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatPNG
	}
	return f
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatPNG, "":
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return nil
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img image.Image, f Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FlipRows builds an image from bottom-up RGBA rows, as returned by
// glReadPixels.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// ScreenshotCapture saves frames into a directory with timestamped names.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
	seq       int
}

// NewScreenshotCapture creates a capture handler.
func NewScreenshotCapture(outputDir, prefix string, format Format) *ScreenshotCapture {
	if format == "" {
		format = FormatPNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// Format returns the output format.
func (sc *ScreenshotCapture) Format() Format { return sc.format }

// CaptureFromPixels saves bottom-up RGBA rows (width*height*4 bytes).
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img and returns the file name used.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	name := sc.GenerateFilename()
	if err := WriteFile(name, img, sc.format); err != nil {
		return "", err
	}
	return name, nil
}

// GenerateFilename returns the next file name. A sequence number keeps
// captures within the same second apart.
func (sc *ScreenshotCapture) GenerateFilename() string {
	sc.seq++
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s_%03d.%s", sc.prefix, timestamp, sc.seq, sc.format)
	if sc.outputDir != "" {
		name = filepath.Join(sc.outputDir, name)
	}
	return name
}
