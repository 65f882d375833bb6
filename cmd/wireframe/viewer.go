package main

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/taigrr/wireframe/pkg/control"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
)

// viewer holds what every output mode shares: the scene, the camera, the
// input flags and the latest image to display.
type viewer struct {
	name   string
	meshes []*models.Mesh
	camera *render.Camera
	flags  *control.Flags
	hud    *HUD

	// latest is the image the display side should show next: the published
	// frame itself, or an annotated copy when the HUD is on.
	latest atomic.Pointer[image.RGBA]
}

// newLoop builds the render loop for a width×height raster.
func (v *viewer) newLoop(w, h, fps, maxFrames int) *control.Loop {
	r := render.NewRasterizer(w, h)
	v.latest.Store(r.Frame().Image)

	return &control.Loop{
		Rasterizer: r,
		Camera:     v.camera,
		Meshes:     v.meshes,
		Flags:      v.flags,
		Mover:      control.NewMover(max(fps, 1), *smooth),
		FPS:        fps,
		MaxFrames:  maxFrames,
		OnFrame:    v.onFrame,
	}
}

// onFrame runs on the render goroutine after each publish.
func (v *viewer) onFrame(frame *render.Frame, cam *render.Camera) {
	v.hud.Update(frame, cam)
	if v.hud.Visible() {
		v.latest.Store(render.Annotate(frame.Image, v.hud.Lines()...))
		return
	}
	v.latest.Store(frame.Image)
}

// HUD tracks the overlay text. Update is called from the render goroutine
// and Lines from the display goroutine, so the text is swapped atomically.
type HUD struct {
	name      string
	polyCount int

	fps       float64
	fpsFrames int
	fpsTime   time.Time

	visible atomic.Bool
	lines   atomic.Pointer[[]string]
}

// NewHUD creates a HUD for a scene.
func NewHUD(name string, polyCount int) *HUD {
	h := &HUD{
		name:      name,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
	h.lines.Store(&[]string{})
	return h
}

// Toggle flips HUD visibility.
func (h *HUD) Toggle() {
	h.visible.Store(!h.visible.Load())
}

// SetVisible shows or hides the HUD.
func (h *HUD) SetVisible(on bool) {
	h.visible.Store(on)
}

// Visible reports whether the HUD is shown.
func (h *HUD) Visible() bool {
	return h.visible.Load()
}

// Update refreshes the FPS counter and the text for a new frame.
func (h *HUD) Update(frame *render.Frame, cam *render.Camera) {
	h.fpsFrames++
	if elapsed := time.Since(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}

	s := frame.Stats
	lines := []string{
		fmt.Sprintf("%s  %d tris  %.0f fps  %.2fms", h.name, h.polyCount, h.fps, float64(frame.Elapsed.Microseconds())/1000),
		fmt.Sprintf("pos %.2f %.2f %.2f  look %.2f %.2f %.2f",
			cam.Position.X, cam.Position.Y, cam.Position.Z, cam.Look.X, cam.Look.Y, cam.Look.Z),
		fmt.Sprintf("edges %d drawn  %d behind  %d clipped", s.EdgesDrawn, s.EdgesBehind, s.EdgesClipped),
	}
	h.lines.Store(&lines)
}

// Lines returns the current HUD text.
func (h *HUD) Lines() []string {
	return *h.lines.Load()
}
