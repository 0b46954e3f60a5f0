// Package render turns the scene and camera into line segments and text on
// a surface, one frame at a time.
package render

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/wirehouse/internal/engine/camera"
	"github.com/Faultbox/wirehouse/internal/engine/input"
	"github.com/Faultbox/wirehouse/internal/engine/scene"
	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/internal/logger"
	"github.com/Faultbox/wirehouse/pkg/math"
)

// DefaultOffscreenLimit is the projected coordinate magnitude beyond which
// an edge is dropped.
const DefaultOffscreenLimit = 8000.0

// Options tunes the pipeline.
type Options struct {
	FocalDistance   float64
	ProjectionScale float64
	OffscreenLimit  float64
	// Smoothing is the camera blend applied once per frame.
	Smoothing float64
	HUD       HUD
	HideHUD   bool
}

// DefaultOptions returns the standard projection and overlay settings.
func DefaultOptions() Options {
	return Options{
		FocalDistance:   math.DefaultFocalDistance,
		ProjectionScale: math.DefaultProjectionScale,
		OffscreenLimit:  DefaultOffscreenLimit,
		Smoothing:       camera.DefaultSmoothing,
		HUD:             DefaultHUD(),
	}
}

// FrameStats counts what happened to the scene's edges in one frame.
type FrameStats struct {
	Drawn   int // segments handed to the surface
	Culled  int // dropped by the off-screen limit
	Skipped int // vertex index out of range
}

// Pipeline renders one scene through one camera onto one surface.
// It is driven from a single goroutine.
type Pipeline struct {
	opts   Options
	scene  *scene.Scene
	cam    *camera.State
	mapper *input.Mapper
	surf   surface.Surface
	log    *zap.Logger

	// Per-frame scratch, reused across frames.
	camSpace [][]math.Vec3
	depths   []float64
	order    []int
	frames   uint64
}

// New creates a pipeline. A nil mapper disables keyboard control.
func New(opts Options, sc *scene.Scene, cam *camera.State, mapper *input.Mapper, surf surface.Surface) *Pipeline {
	n := sc.Len()
	p := &Pipeline{
		opts:     opts,
		scene:    sc,
		cam:      cam,
		mapper:   mapper,
		surf:     surf,
		log:      logger.Named("render"),
		camSpace: make([][]math.Vec3, n),
		depths:   make([]float64, n),
		order:    make([]int, n),
	}
	for i := 0; i < n; i++ {
		p.camSpace[i] = make([]math.Vec3, sc.At(i).VertexCount())
	}
	return p
}

// Camera returns the camera the pipeline drives.
func (p *Pipeline) Camera() *camera.State { return p.cam }

// Surface returns the surface the pipeline draws on.
func (p *Pipeline) Surface() surface.Surface { return p.surf }

// Frames returns how many frames have been run.
func (p *Pipeline) Frames() uint64 { return p.frames }

// Frame runs one full pass: apply held keys, ease the camera, depth sort,
// draw every edge, draw the overlay, present.
//
// A surface that closes mid-frame ends the frame early without an error;
// callers check Surface().Closed() to stop.
func (p *Pipeline) Frame(held input.Held) (FrameStats, error) {
	p.frames++
	if p.mapper != nil {
		p.mapper.Apply(held, p.cam)
	}
	p.cam.Interpolate(p.opts.Smoothing)
	p.sortByDepth()

	stats, err := p.draw()
	if errors.Is(err, surface.ErrClosed) {
		p.log.Debug("surface closed mid-frame",
			zap.Uint64("frame", p.frames),
			zap.Int("drawn", stats.Drawn))
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("render frame %d: %w", p.frames, err)
	}
	return stats, nil
}

// DepthOrder returns mesh indices from farthest to nearest as of the last
// frame (or the last call to Sort).
func (p *Pipeline) DepthOrder() []int {
	out := make([]int, len(p.order))
	copy(out, p.order)
	return out
}

// Sort recomputes the depth order for the current camera without drawing.
func (p *Pipeline) Sort() {
	p.sortByDepth()
}

// sortByDepth moves every vertex into camera space once and orders meshes
// by mean z, largest first. Ties keep scene order.
func (p *Pipeline) sortByDepth() {
	for i := range p.order {
		mesh := p.scene.At(i)
		verts := p.camSpace[i]
		sum := 0.0
		for j := range verts {
			verts[j] = p.cam.Transform(mesh.Vertex(j))
			sum += verts[j].Z
		}
		if len(verts) > 0 {
			p.depths[i] = sum / float64(len(verts))
		} else {
			p.depths[i] = 0
		}
		p.order[i] = i
	}
	sort.SliceStable(p.order, func(a, b int) bool {
		return p.depths[p.order[a]] > p.depths[p.order[b]]
	})
}

func (p *Pipeline) draw() (FrameStats, error) {
	var stats FrameStats
	if err := p.surf.Clear(); err != nil {
		return stats, err
	}

	pan := p.cam.Pan()
	limit := p.opts.OffscreenLimit
	for _, idx := range p.order {
		mesh := p.scene.At(idx)
		verts := p.camSpace[idx]
		stats.Skipped += mesh.SkippedEdges()

		p.surf.SetColor(mesh.Color())
		for _, e := range mesh.ValidEdges() {
			a := verts[e.A].Project(p.opts.FocalDistance, p.opts.ProjectionScale)
			b := verts[e.B].Project(p.opts.FocalDistance, p.opts.ProjectionScale)
			if a.Exceeds(limit) || b.Exceeds(limit) {
				stats.Culled++
				continue
			}
			p.surf.MoveTo(a.Add(pan))
			if err := p.surf.LineTo(b.Add(pan)); err != nil {
				return stats, err
			}
			stats.Drawn++
		}
	}

	if !p.opts.HideHUD {
		if err := p.opts.HUD.Draw(p.surf, p.cam.Current(), p.scene.Len()); err != nil {
			return stats, err
		}
	}
	return stats, p.surf.Present()
}
