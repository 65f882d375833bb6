// Package render rasterizes triangle meshes as wireframes into immutable
// RGBA frames.
package render

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
)

// Projection parameters. These are fixed; only the aspect ratio follows the
// raster size.
const (
	FieldOfView = math.Pi / 2
	NearPlane   = 0.01
	FarPlane    = 1.0
)

// Frame colors.
var (
	Background = color.RGBA{255, 255, 255, 255}
	Foreground = color.RGBA{0, 0, 0, 255}
)

// ScreenPoint is a projected vertex in pixel coordinates. Behind is set when
// the vertex lies on or behind the camera plane; X and Y then hold the
// Sentinel coordinates and carry no geometric meaning.
type ScreenPoint struct {
	X, Y   float64
	Behind bool
}

// Sentinel is the projection of every vertex that cannot be seen.
var Sentinel = ScreenPoint{X: -10, Y: -10, Behind: true}

// Vec2 returns the point's coordinates.
func (p ScreenPoint) Vec2() math3d.Vec2 {
	return math3d.V2(p.X, p.Y)
}

// Rasterizer draws meshes into a private framebuffer and publishes each
// finished frame atomically. Render must be called from one goroutine at a
// time; Frame may be called from any goroutine.
type Rasterizer struct {
	width, height int
	viewport      Rect
	projection    math3d.Mat4

	fb      *Framebuffer
	scratch []ScreenPoint
	seq     uint64

	frame atomic.Pointer[Frame]
}

// NewRasterizer creates a rasterizer for a width×height raster and publishes
// a blank frame.
func NewRasterizer(width, height int) *Rasterizer {
	width, height = max(width, 1), max(height, 1)
	r := &Rasterizer{
		width:      width,
		height:     height,
		viewport:   Viewport(width, height),
		projection: math3d.PerspectiveZO(FieldOfView, float64(width)/float64(height), NearPlane, FarPlane),
		fb:         NewFramebuffer(width, height),
	}
	r.fb.Clear(Background)
	r.frame.Store(&Frame{Image: r.fb.ToImage()})
	return r
}

// Width returns the raster width in pixels.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Rasterizer) Height() int { return r.height }

// Projection returns the fixed projection matrix.
func (r *Rasterizer) Projection() math3d.Mat4 { return r.projection }

// Frame returns the most recently published frame. The returned frame is
// never modified afterwards.
func (r *Rasterizer) Frame() *Frame {
	return r.frame.Load()
}

// Project maps v through transform (placement, view and projection combined)
// to pixel coordinates. The homogeneous result is divided by its z component;
// vertices with z ≤ 0 yield Sentinel. The result is not clamped to the
// viewport.
func (r *Rasterizer) Project(v math3d.Vec3, transform math3d.Mat4) ScreenPoint {
	p := transform.MulVec4(math3d.V4FromV3(v, 1))
	if !(p.Z > 0) {
		return Sentinel
	}
	w, h := float64(r.width), float64(r.height)
	return ScreenPoint{
		X: p.X/p.Z*w + w/2,
		Y: -p.Y/p.Z*h + h/2,
	}
}

// DrawLine plots the segment p0-p1 on the working surface in the foreground
// color. The segment is clipped to the viewport and its endpoints are then
// truncated to integers; a segment entirely off the raster, or with a
// non-finite endpoint, draws nothing.
func (r *Rasterizer) DrawLine(p0, p1 math3d.Vec2) {
	q0, q1, ok := ClipSegment(r.viewport, p0, p1)
	if !ok {
		return
	}
	r.fb.DrawLine(int(q0.X), int(q0.Y), int(q1.X), int(q1.Y), Foreground)
}

// Render clears the working surface, draws every edge of every mesh as seen
// from camera, and publishes the result as the new frame. Meshes are only
// read. A mesh that fails validation is skipped and logged.
func (r *Rasterizer) Render(camera *Camera, meshes []*models.Mesh) {
	start := time.Now()
	r.fb.Clear(Background)

	viewProj := r.projection.Mul(camera.ViewMatrix())

	var stats FrameStats
	for _, mesh := range meshes {
		if mesh == nil {
			continue
		}
		if err := mesh.Validate(); err != nil {
			Logger().Warn("skipping mesh", "mesh", mesh.Name, "err", err)
			continue
		}
		stats.Meshes++
		r.drawMesh(mesh, viewProj.Mul(mesh.Placement), &stats)
	}

	r.publish(stats, time.Since(start))
}

func (r *Rasterizer) drawMesh(mesh *models.Mesh, transform math3d.Mat4, stats *FrameStats) {
	if cap(r.scratch) < len(mesh.Vertices) {
		r.scratch = make([]ScreenPoint, len(mesh.Vertices))
	}
	points := r.scratch[:len(mesh.Vertices)]
	for i, v := range mesh.Vertices {
		points[i] = r.Project(v, transform)
	}

	for _, f := range mesh.Faces {
		stats.Faces++
		idx := f.Indices()
		for e := range 3 {
			a, b := points[idx[e]], points[idx[(e+1)%3]]
			if a.Behind || b.Behind {
				stats.EdgesBehind++
				continue
			}
			q0, q1, ok := ClipSegment(r.viewport, a.Vec2(), b.Vec2())
			if !ok {
				stats.EdgesClipped++
				continue
			}
			r.DrawLine(q0, q1)
			stats.EdgesDrawn++
		}
	}
}

func (r *Rasterizer) publish(stats FrameStats, elapsed time.Duration) {
	r.seq++
	frame := &Frame{
		Image:   r.fb.ToImage(),
		Seq:     r.seq,
		Stats:   stats,
		Elapsed: elapsed,
	}
	r.frame.Store(frame)

	Logger().Debug("frame published",
		"seq", frame.Seq,
		"meshes", stats.Meshes,
		"faces", stats.Faces,
		"drawn", stats.EdgesDrawn,
		"behind", stats.EdgesBehind,
		"clipped", stats.EdgesClipped,
		"elapsed", elapsed,
	)
}
