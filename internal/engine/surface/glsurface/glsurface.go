// Package glsurface implements surface.Surface on an SDL2 window with an
// OpenGL 4.1 core context.
package glsurface

import (
	"fmt"
	"image/color"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/internal/logger"
	"github.com/Faultbox/wirehouse/pkg/math"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Background color.Color
}

// Surface is a window whose canvas is drawn with batched GL lines and
// glyph quads.
type Surface struct {
	cfg       Config
	window    *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	fonts   *surface.Fonts
	atlases map[surface.TextStyle]*atlasTexture

	lines *batch
	text  *batch

	bg      [4]float32
	color   [4]float32
	pen     math.Vec2
	capture func(pixels []byte, width, height int)
	closed  bool
}

// atlasTexture is a GlyphAtlas uploaded as a single-channel texture, plus
// the glyph quads queued against it this frame.
type atlasTexture struct {
	atlas   *surface.GlyphAtlas
	texture uint32
	verts   []float32
}

// New creates the window and GL resources.
func New(cfg Config, fonts *surface.Fonts) (*Surface, error) {
	s := &Surface{
		cfg:     cfg,
		log:     logger.Named("glsurface"),
		fonts:   fonts,
		atlases: make(map[surface.TextStyle]*atlasTexture),
		bg:      toVec4(cfg.Background),
		color:   toVec4(color.Black),
	}

	s.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Must be set before the window is created.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	var err error
	s.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		uint32(sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI),
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	s.glContext, err = s.window.GLCreateContext()
	if err != nil {
		s.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		s.destroyWindow()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		s.log.Warn("failed to set swap interval", zap.Error(err))
	}

	if err := s.initGL(); err != nil {
		s.releaseGL()
		s.destroyWindow()
		return nil, err
	}

	s.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return s, nil
}

func (s *Surface) initGL() error {
	var err error
	s.lines, err = newBatch(lineVertexShader, lineFragmentShader, []attrib{{0, 2}, {1, 4}})
	if err != nil {
		return fmt.Errorf("create line batch: %w", err)
	}
	s.text, err = newBatch(textVertexShader, textFragmentShader, []attrib{{0, 2}, {1, 2}, {2, 4}})
	if err != nil {
		return fmt.Errorf("create text batch: %w", err)
	}

	for _, style := range []surface.TextStyle{surface.StyleTitle, surface.StyleHeading, surface.StyleBody} {
		if _, err := s.atlasFor(style); err != nil {
			return err
		}
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.LINE_SMOOTH)
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

// atlasFor returns the uploaded atlas for style, building it on first use.
func (s *Surface) atlasFor(style surface.TextStyle) (*atlasTexture, error) {
	if at, ok := s.atlases[style]; ok {
		return at, nil
	}
	face, err := s.fonts.Face(style)
	if err != nil {
		return nil, err
	}
	atlas, err := surface.NewGlyphAtlas(face)
	if err != nil {
		return nil, fmt.Errorf("build glyph atlas: %w", err)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	b := atlas.Image.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&atlas.Image.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	at := &atlasTexture{atlas: atlas, texture: tex, verts: make([]float32, 0, 1024)}
	s.atlases[style] = at
	return at, nil
}

// Size implements surface.Surface.
func (s *Surface) Size() (int, int) { return s.cfg.Width, s.cfg.Height }

// Clear implements surface.Surface.
func (s *Surface) Clear() error {
	if s.closed {
		return surface.ErrClosed
	}
	s.lines.reset()
	for _, at := range s.atlases {
		at.verts = at.verts[:0]
	}
	return nil
}

// SetColor implements surface.Surface.
func (s *Surface) SetColor(c color.Color) { s.color = toVec4(c) }

// MoveTo implements surface.Surface.
func (s *Surface) MoveTo(p math.Vec2) { s.pen = p }

// LineTo implements surface.Surface. Lines are queued until Present.
func (s *Surface) LineTo(p math.Vec2) error {
	if s.closed {
		return surface.ErrClosed
	}
	c := s.color
	s.lines.verts = append(s.lines.verts,
		float32(s.pen.X), float32(s.pen.Y), c[0], c[1], c[2], c[3],
		float32(p.X), float32(p.Y), c[0], c[1], c[2], c[3],
	)
	s.pen = p
	return nil
}

// DrawText implements surface.Surface. Glyphs are queued until Present.
func (s *Surface) DrawText(p math.Vec2, text string, style surface.TextStyle) error {
	if s.closed {
		return surface.ErrClosed
	}
	at, err := s.atlasFor(style)
	if err != nil {
		return err
	}

	// Glyph quads are laid out y-down from the top-left corner, then
	// flipped back into centered canvas space.
	halfW, halfH := float64(s.cfg.Width)/2, float64(s.cfg.Height)/2
	origin := math.Vec2{X: p.X + halfW, Y: halfH - p.Y}
	c := s.color
	for _, q := range at.atlas.Layout(text, origin) {
		x0, x1 := float32(q.X-halfW), float32(q.X+q.W-halfW)
		y0, y1 := float32(halfH-q.Y), float32(halfH-q.Y-q.H)
		at.verts = append(at.verts,
			x0, y0, q.U0, q.V0, c[0], c[1], c[2], c[3],
			x1, y0, q.U1, q.V0, c[0], c[1], c[2], c[3],
			x1, y1, q.U1, q.V1, c[0], c[1], c[2], c[3],
			x0, y0, q.U0, q.V0, c[0], c[1], c[2], c[3],
			x1, y1, q.U1, q.V1, c[0], c[1], c[2], c[3],
			x0, y1, q.U0, q.V1, c[0], c[1], c[2], c[3],
		)
	}
	return nil
}

// CaptureNext arranges for fn to receive the next presented frame as
// bottom-up RGBA rows.
func (s *Surface) CaptureNext(fn func(pixels []byte, width, height int)) { s.capture = fn }

// Present implements surface.Surface: it draws every queued batch and
// swaps buffers.
func (s *Surface) Present() error {
	if s.closed {
		return surface.ErrClosed
	}

	fbw, fbh := s.window.GLGetDrawableSize()
	gl.Viewport(0, 0, fbw, fbh)
	gl.ClearColor(s.bg[0], s.bg[1], s.bg[2], s.bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	proj := math.CanvasOrtho(s.cfg.Width, s.cfg.Height).Float32()

	s.lines.draw(gl.LINES, &proj, 6)

	for _, at := range s.atlases {
		if len(at.verts) == 0 {
			continue
		}
		s.text.verts = at.verts
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, at.texture)
		s.text.draw(gl.TRIANGLES, &proj, 8)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	s.text.verts = nil

	if s.capture != nil {
		pixels := make([]byte, int(fbw)*int(fbh)*4)
		gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
		gl.ReadPixels(0, 0, fbw, fbh, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
		fn := s.capture
		s.capture = nil
		fn(pixels, int(fbw), int(fbh))
	}

	s.window.GLSwap()
	return nil
}

// Close destroys GL resources and the window, and shuts SDL down.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.log.Info("closing window")
	s.releaseGL()
	s.destroyWindow()
	return nil
}

// Closed implements surface.Surface.
func (s *Surface) Closed() bool { return s.closed }

func (s *Surface) releaseGL() {
	for style, at := range s.atlases {
		gl.DeleteTextures(1, &at.texture)
		delete(s.atlases, style)
	}
	if s.lines != nil {
		s.lines.release()
	}
	if s.text != nil {
		s.text.release()
	}
}

func (s *Surface) destroyWindow() {
	if s.glContext != nil {
		sdl.GLDeleteContext(s.glContext)
		s.glContext = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
}

func toVec4(c color.Color) [4]float32 {
	if c == nil {
		c = color.White
	}
	rgba := surface.ToRGBA(c)
	return [4]float32{
		float32(rgba.R) / 255,
		float32(rgba.G) / 255,
		float32(rgba.B) / 255,
		float32(rgba.A) / 255,
	}
}
