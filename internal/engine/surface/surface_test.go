package surface

import (
	"errors"
	"image/color"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/Faultbox/wirehouse/pkg/math"
)

func TestRecorderFrame(t *testing.T) {
	r := NewRecorder(1200, 800)
	r.SetColor(colornames.Red)
	r.MoveTo(math.Vec2{X: 1, Y: 2})
	if err := r.LineTo(math.Vec2{X: 3, Y: 4}); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawText(math.Vec2{X: -580, Y: 350}, "hello", StyleTitle); err != nil {
		t.Fatal(err)
	}
	if err := r.Present(); err != nil {
		t.Fatal(err)
	}

	if len(r.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(r.Segments))
	}
	seg := r.Segments[0]
	if seg.From != (math.Vec2{X: 1, Y: 2}) || seg.To != (math.Vec2{X: 3, Y: 4}) {
		t.Errorf("segment = %+v", seg)
	}
	if seg.Color != colornames.Red {
		t.Errorf("segment color = %v, want red", seg.Color)
	}
	if len(r.Texts) != 1 || r.Texts[0].Style != StyleTitle {
		t.Errorf("texts = %+v", r.Texts)
	}

	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(r.Segments) != 0 || len(r.Texts) != 0 {
		t.Error("Clear should drop previous frame records")
	}
}

func TestRecorderCloseAfter(t *testing.T) {
	r := NewRecorder(100, 100)
	r.CloseAfter = 2

	if err := r.LineTo(math.Vec2{X: 1}); err != nil {
		t.Fatalf("first line: %v", err)
	}
	if err := r.LineTo(math.Vec2{X: 2}); err != nil {
		t.Fatalf("second line: %v", err)
	}
	if !r.Closed() {
		t.Fatal("recorder should be closed after CloseAfter lines")
	}
	if err := r.LineTo(math.Vec2{X: 3}); !errors.Is(err, ErrClosed) {
		t.Errorf("LineTo after close = %v, want ErrClosed", err)
	}
	if err := r.Present(); !errors.Is(err, ErrClosed) {
		t.Errorf("Present after close = %v, want ErrClosed", err)
	}
}

func newTestImage(t *testing.T, w, h int) *Image {
	t.Helper()
	s, err := NewImage(w, h, colornames.Lightblue, nil)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	return s
}

func TestImageInvalidSize(t *testing.T) {
	if _, err := NewImage(0, 10, color.White, nil); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestImageClearFillsBackground(t *testing.T) {
	s := newTestImage(t, 40, 30)
	img := s.Image()
	for _, p := range [][2]int{{0, 0}, {39, 29}, {20, 15}} {
		if got := img.RGBAAt(p[0], p[1]); got != colornames.Lightblue {
			t.Errorf("pixel %v = %v, want lightblue", p, got)
		}
	}
}

func TestImageLineUsesCenteredCoordinates(t *testing.T) {
	s := newTestImage(t, 100, 100)
	s.SetLineWidth(2)
	s.SetColor(colornames.Black)

	// Horizontal line along canvas y=10, which is pixel row 40.
	s.MoveTo(math.Vec2{X: -20, Y: 10})
	if err := s.LineTo(math.Vec2{X: 20, Y: 10}); err != nil {
		t.Fatal(err)
	}

	img := s.Image()
	if got := img.RGBAAt(50, 40); got.R > 64 || got.G > 64 || got.B > 64 {
		t.Errorf("pixel on the line = %v, want dark", got)
	}
	if got := img.RGBAAt(50, 60); got != colornames.Lightblue {
		t.Errorf("pixel off the line = %v, want background", got)
	}
	if got := img.RGBAAt(10, 40); got != colornames.Lightblue {
		t.Errorf("pixel beyond the line end = %v, want background", got)
	}
}

func TestImageLineFarOutsideIsClipped(t *testing.T) {
	s := newTestImage(t, 50, 50)
	s.SetColor(colornames.Black)
	s.MoveTo(math.Vec2{X: -7000, Y: 7000})
	if err := s.LineTo(math.Vec2{X: -6000, Y: 7000}); err != nil {
		t.Fatal(err)
	}
	img := s.Image()
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if img.RGBAAt(x, y) != colornames.Lightblue {
				t.Fatalf("pixel (%d,%d) touched by an off-canvas line", x, y)
			}
		}
	}
}

func TestImageDrawText(t *testing.T) {
	s := newTestImage(t, 200, 100)
	s.SetColor(colornames.Black)
	if err := s.DrawText(math.Vec2{X: -90, Y: 0}, "Camera Status:", StyleHeading); err != nil {
		t.Fatal(err)
	}

	img := s.Image()
	inked := 0
	for y := 35; y < 55; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y) != colornames.Lightblue {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("text left no pixels above the baseline")
	}
}

func TestImageClosed(t *testing.T) {
	s := newTestImage(t, 10, 10)
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", s.Frames())
	}
	_ = s.Close()

	if err := s.Clear(); !errors.Is(err, ErrClosed) {
		t.Errorf("Clear = %v, want ErrClosed", err)
	}
	if err := s.LineTo(math.Vec2{}); !errors.Is(err, ErrClosed) {
		t.Errorf("LineTo = %v, want ErrClosed", err)
	}
	if err := s.DrawText(math.Vec2{}, "x", StyleBody); !errors.Is(err, ErrClosed) {
		t.Errorf("DrawText = %v, want ErrClosed", err)
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   math.Vec2
		ok     bool
		wa, wb math.Vec2
	}{
		{"inside", math.Vec2{X: 1, Y: 1}, math.Vec2{X: 5, Y: 5}, true, math.Vec2{X: 1, Y: 1}, math.Vec2{X: 5, Y: 5}},
		{"crosses right edge", math.Vec2{X: 5, Y: 5}, math.Vec2{X: 15, Y: 5}, true, math.Vec2{X: 5, Y: 5}, math.Vec2{X: 10, Y: 5}},
		{"crosses both", math.Vec2{X: -10, Y: 5}, math.Vec2{X: 20, Y: 5}, true, math.Vec2{X: 0, Y: 5}, math.Vec2{X: 10, Y: 5}},
		{"outside", math.Vec2{X: 11, Y: 0}, math.Vec2{X: 20, Y: 10}, false, math.Vec2{}, math.Vec2{}},
		{"parallel outside", math.Vec2{X: 0, Y: -1}, math.Vec2{X: 10, Y: -1}, false, math.Vec2{}, math.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := clipSegment(tt.a, tt.b, 0, 0, 10, 10)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (a.Sub(tt.wa).Length() > 1e-9 || b.Sub(tt.wb).Length() > 1e-9) {
				t.Errorf("clip = %v-%v, want %v-%v", a, b, tt.wa, tt.wb)
			}
		})
	}
}
