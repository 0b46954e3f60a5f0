// Package app wires the scene, camera, input, render pipeline and frame
// scheduler into a running viewer.
package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/Faultbox/wirehouse/internal/config"
	"github.com/Faultbox/wirehouse/internal/engine/camera"
	"github.com/Faultbox/wirehouse/internal/engine/debug"
	"github.com/Faultbox/wirehouse/internal/engine/frame"
	"github.com/Faultbox/wirehouse/internal/engine/input"
	"github.com/Faultbox/wirehouse/internal/engine/render"
	"github.com/Faultbox/wirehouse/internal/engine/scene"
	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/internal/logger"
	"github.com/Faultbox/wirehouse/internal/world"
	"github.com/Faultbox/wirehouse/pkg/math"
)

// pixelCapturer is a surface that can hand over the next presented frame.
type pixelCapturer interface {
	CaptureNext(fn func(pixels []byte, width, height int))
}

// imageSource is a surface backed by an in-memory image.
type imageSource interface {
	Image() *image.RGBA
}

// Options selects the collaborators of an App.
type Options struct {
	Config  *config.Config
	Surface surface.Surface
	// Provider builds the scene once at startup. Nil means the suburb.
	Provider scene.Provider
	// Source receives keyboard state. Nil creates an empty one.
	Source *input.Source
	// Poll pumps window events into Source at the start of every frame.
	Poll func()
}

// App is one viewer session.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	scene    *scene.Scene
	cam      *camera.State
	source   *input.Source
	poll     func()
	pipeline *render.Pipeline
	surf     surface.Surface
	sched    *frame.Scheduler
	shots    *debug.ScreenshotCapture

	fpsFrames int
	fpsTimer  time.Time
}

// New builds the scene and wires every component.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("app: no surface")
	}
	provider := opts.Provider
	if provider == nil {
		provider = world.NewSuburbBuilder()
	}
	source := opts.Source
	if source == nil {
		source = input.NewSource(input.NewKeySet())
	}
	format, err := debug.ParseFormat(cfg.Screenshot.Format)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    logger.Named("app"),
		scene:  provider.Build(),
		source: source,
		poll:   opts.Poll,
		surf:   opts.Surface,
		sched:  frame.New(cfg.Frame.Interval, cfg.Frame.Idle),
		shots:  debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, format),
	}
	a.cam = camera.New(CameraDefaults(cfg))
	mapper := input.NewMapper(nil, input.Steps{
		Rotation: cfg.Camera.RotationStep,
		Zoom:     cfg.Camera.ZoomStep,
		Pan:      cfg.Camera.PanStep,
	})
	a.pipeline = render.New(RenderOptions(cfg), a.scene, a.cam, mapper, a.surf)

	meshes, vertices, edges := a.scene.Stats()
	a.log.Info("scene built",
		zap.Int("meshes", meshes),
		zap.Int("vertices", vertices),
		zap.Int("edges", edges))
	return a, nil
}

// CameraDefaults converts the camera section of cfg.
func CameraDefaults(cfg *config.Config) camera.Defaults {
	return camera.Defaults{
		View: camera.View{
			RotationX: cfg.Camera.RotationX,
			RotationY: cfg.Camera.RotationY,
			RotationZ: cfg.Camera.RotationZ,
			Zoom:      cfg.Camera.Zoom,
		},
		MinZoom: cfg.Camera.MinZoom,
	}
}

// RenderOptions converts the render section of cfg.
func RenderOptions(cfg *config.Config) render.Options {
	r := cfg.Render
	return render.Options{
		FocalDistance:   r.FocalDistance,
		ProjectionScale: r.ProjectionScale,
		OffscreenLimit:  r.OffscreenLimit,
		Smoothing:       cfg.Camera.Smoothing,
		HUD: render.HUD{
			Hints:     math.Vec2{X: r.HintsX, Y: r.HUDTopY},
			Telemetry: math.Vec2{X: r.TelemetryX, Y: r.HUDTopY},
			RowHeight: r.RowHeight,
			Color:     colornames.Black,
		},
		HideHUD: !r.ShowHUD,
	}
}

// Background resolves the configured background color name, falling back
// to light blue.
func Background(cfg *config.Config) color.RGBA {
	if c, ok := scene.LookupColor(cfg.Window.Background); ok {
		return c
	}
	logger.Warn("unknown background color, using lightblue",
		zap.String("background", cfg.Window.Background))
	return colornames.Lightblue
}

// Scene returns the scene being rendered.
func (a *App) Scene() *scene.Scene { return a.scene }

// Camera returns the camera.
func (a *App) Camera() *camera.State { return a.cam }

// Source returns the input source.
func (a *App) Source() *input.Source { return a.source }

// Pipeline returns the render pipeline.
func (a *App) Pipeline() *render.Pipeline { return a.pipeline }

// Scheduler returns the frame scheduler.
func (a *App) Scheduler() *frame.Scheduler { return a.sched }

// Run drives frames until exit, window close or ctx cancellation, then
// releases the surface.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting frame loop",
		zap.Duration("interval", a.sched.Interval),
		zap.Duration("idle", a.sched.Idle))
	a.fpsTimer = time.Now()

	err := a.sched.Run(ctx, a.Step)
	if cerr := a.surf.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close surface: %w", cerr)
	}

	a.log.Info("frame loop stopped", zap.Uint64("frames", a.sched.Frames()))
	return err
}

// Stop asks the frame loop to end. Safe from any goroutine.
func (a *App) Stop() { a.sched.Stop() }

// Step handles pending input and renders one frame. It reports false once
// the viewer should stop.
func (a *App) Step() (bool, error) {
	if a.poll != nil {
		a.poll()
	}
	if !a.drainSignals() || a.surf.Closed() {
		return false, nil
	}

	stats, err := a.pipeline.Frame(a.source.Keys().Snapshot())
	if err != nil {
		return false, err
	}
	a.trackFPS(stats)
	return !a.surf.Closed(), nil
}

// drainSignals applies queued one-shot requests. It returns false when one
// of them ends the session.
func (a *App) drainSignals() bool {
	for {
		sig, ok := a.source.Next()
		if !ok {
			return true
		}
		a.log.Debug("signal", zap.Stringer("signal", sig))
		switch sig {
		case input.SignalReset:
			a.cam.ResetTargets()
		case input.SignalScreenshot:
			a.screenshot()
		case input.SignalExit:
			a.sched.Stop()
			return false
		case input.SignalWindowClosed:
			_ = a.surf.Close()
			return false
		}
	}
}

// screenshot saves the next frame (GL) or the last frame (image surface).
func (a *App) screenshot() {
	switch s := a.surf.(type) {
	case pixelCapturer:
		s.CaptureNext(func(pixels []byte, w, h int) {
			a.logCapture(a.shots.CaptureFromPixels(pixels, w, h))
		})
	case imageSource:
		a.logCapture(a.shots.CaptureFromImage(s.Image()))
	default:
		a.log.Warn("surface cannot capture screenshots")
	}
}

func (a *App) logCapture(name string, err error) {
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

func (a *App) trackFPS(stats render.FrameStats) {
	a.fpsFrames++
	if a.fpsTimer.IsZero() {
		a.fpsTimer = time.Now()
	}
	if time.Since(a.fpsTimer) >= time.Second {
		a.log.Debug("fps",
			zap.Int("count", a.fpsFrames),
			zap.Int("drawn", stats.Drawn),
			zap.Int("culled", stats.Culled),
			zap.Int("skipped", stats.Skipped))
		a.fpsFrames = 0
		a.fpsTimer = time.Now()
	}
}

// Close releases the surface if Run did not.
func (a *App) Close() error {
	return a.surf.Close()
}
