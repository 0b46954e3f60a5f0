package app

import (
	"context"
	"os"
	"testing"
	"time"

	"golang.org/x/image/colornames"

	"github.com/Faultbox/wirehouse/internal/config"
	"github.com/Faultbox/wirehouse/internal/engine/camera"
	"github.com/Faultbox/wirehouse/internal/engine/frame"
	"github.com/Faultbox/wirehouse/internal/engine/input"
	"github.com/Faultbox/wirehouse/internal/engine/scene"
	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/pkg/math"
)

func newTestApp(t *testing.T, surf surface.Surface, cfg *config.Config) *App {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	a, err := New(Options{Config: cfg, Surface: surf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestStepDrawsSuburb(t *testing.T) {
	rec := surface.NewRecorder(1200, 800)
	a := newTestApp(t, rec, nil)

	cont, err := a.Step()
	if err != nil || !cont {
		t.Fatalf("Step() = %v, %v", cont, err)
	}
	if len(rec.Segments) == 0 {
		t.Error("no segments drawn")
	}
	if rec.Presents != 1 {
		t.Errorf("Presents = %d, want 1", rec.Presents)
	}

	last := rec.Texts[len(rec.Texts)-1].Text
	if want := "Objects: 88"; last != want {
		t.Errorf("last HUD line = %q, want %q", last, want)
	}
}

func TestHeldKeysMoveCamera(t *testing.T) {
	a := newTestApp(t, surface.NewRecorder(1200, 800), nil)
	a.Source().Keys().Press(input.KeyZoomIn)

	for i := 0; i < 3; i++ {
		if _, err := a.Step(); err != nil {
			t.Fatal(err)
		}
	}
	want := camera.DefaultZoom + 3*input.DefaultZoomStep
	if got := a.Camera().Target().Zoom; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("zoom target = %v, want %v", got, want)
	}
}

func TestResetSignal(t *testing.T) {
	a := newTestApp(t, surface.NewRecorder(1200, 800), nil)
	a.Camera().SetTarget(camera.View{RotationX: 2, Zoom: 3, PanX: 40})

	a.Source().Inject(input.SignalReset)
	if _, err := a.Step(); err != nil {
		t.Fatal(err)
	}
	if got, want := a.Camera().Target(), camera.DefaultView().View; got != want {
		t.Errorf("target after reset = %+v, want %+v", got, want)
	}
}

func TestExitSignalStops(t *testing.T) {
	rec := surface.NewRecorder(1200, 800)
	a := newTestApp(t, rec, nil)

	a.Source().Inject(input.SignalExit)
	cont, err := a.Step()
	if err != nil || cont {
		t.Fatalf("Step() = %v, %v, want false, nil", cont, err)
	}
	if a.Scheduler().State() != frame.Stopped {
		t.Error("scheduler should be stopped after exit")
	}
	if rec.Presents != 0 {
		t.Error("no frame should be drawn after exit")
	}
}

func TestExitSurvivesFullSignalQueue(t *testing.T) {
	a := newTestApp(t, surface.NewRecorder(1200, 800), nil)
	for i := 0; i < 64; i++ {
		a.Source().Inject(input.SignalReset)
	}
	a.Source().Inject(input.SignalExit)

	cont, err := a.Step()
	if err != nil || cont {
		t.Fatalf("Step() = %v, %v, want false, nil", cont, err)
	}
	if a.Scheduler().State() != frame.Stopped {
		t.Error("exit queued behind a full buffer was lost")
	}
}

func TestWindowClosedSignal(t *testing.T) {
	rec := surface.NewRecorder(1200, 800)
	a := newTestApp(t, rec, nil)

	a.Source().Inject(input.SignalWindowClosed)
	cont, err := a.Step()
	if err != nil || cont {
		t.Fatalf("Step() = %v, %v, want false, nil", cont, err)
	}
	if !rec.Closed() {
		t.Error("surface should be closed")
	}
}

func TestSurfaceClosedMidFrame(t *testing.T) {
	rec := surface.NewRecorder(1200, 800)
	rec.CloseAfter = 10
	a := newTestApp(t, rec, nil)

	cont, err := a.Step()
	if err != nil {
		t.Fatalf("Step error = %v, want nil", err)
	}
	if cont {
		t.Error("Step should report stop once the surface is gone")
	}
}

func TestRunStopsAndReleasesSurface(t *testing.T) {
	cfg := config.Default()
	cfg.Frame.Interval = time.Millisecond
	cfg.Frame.Idle = 100 * time.Microsecond
	rec := surface.NewRecorder(1200, 800)
	a := newTestApp(t, rec, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(20 * time.Millisecond)
		a.Source().Inject(input.SignalExit)
	}()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rec.Closed() {
		t.Error("Run should release the surface")
	}
	if a.Scheduler().Frames() == 0 {
		t.Error("no frames ran before exit")
	}
	if ctx.Err() != nil {
		t.Error("Run returned only because of the timeout")
	}
}

func TestScreenshotFromImageSurface(t *testing.T) {
	cfg := config.Default()
	cfg.Screenshot.Dir = t.TempDir()
	cfg.Screenshot.Format = "webp"

	img, err := surface.NewImage(120, 80, colornames.Lightblue, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, img, cfg)

	if _, err := a.Step(); err != nil {
		t.Fatal(err)
	}
	a.Source().Inject(input.SignalScreenshot)
	if _, err := a.Step(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(cfg.Screenshot.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(entries))
	}
}

func TestCustomProvider(t *testing.T) {
	box := scene.CenteredBox(math.Vec3{}, 1, 1, 1, colornames.Red)
	rec := surface.NewRecorder(1200, 800)
	a, err := New(Options{
		Surface:  rec,
		Provider: scene.ProviderFunc(func() *scene.Scene { return scene.New(box) }),
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.Scene().Len() != 1 {
		t.Errorf("scene has %d meshes, want 1", a.Scene().Len())
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error without a surface")
	}

	cfg := config.Default()
	cfg.Screenshot.Format = "gif"
	if _, err := New(Options{Config: cfg, Surface: surface.NewRecorder(1, 1)}); err == nil {
		t.Error("expected error for unknown screenshot format")
	}
}

func TestBackground(t *testing.T) {
	cfg := config.Default()
	if got := Background(cfg); got != colornames.Lightblue {
		t.Errorf("Background = %v, want lightblue", got)
	}
	cfg.Window.Background = "no-such-color"
	if got := Background(cfg); got != colornames.Lightblue {
		t.Errorf("fallback = %v, want lightblue", got)
	}
	cfg.Window.Background = "White"
	if got := Background(cfg); got != colornames.White {
		t.Errorf("Background(White) = %v", got)
	}
}
