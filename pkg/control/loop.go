package control

import (
	"context"
	"time"

	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
)

// Loop owns the camera and advances it one frame at a time: read the intent
// snapshot, move the camera, render, publish. Only the goroutine running the
// loop touches Camera; input goroutines talk to it through Flags.
type Loop struct {
	Rasterizer *render.Rasterizer
	Camera     *render.Camera
	Meshes     []*models.Mesh
	Flags      *Flags
	Mover      *Mover

	// FPS caps the frame rate. Zero or less renders as fast as possible.
	FPS int
	// MaxFrames stops Run after that many frames. Zero means no limit.
	MaxFrames int
	// OnFrame, if set, is called after each frame is published.
	OnFrame func(frame *render.Frame, cam *render.Camera)
}

// Step renders a single frame and returns it.
func (l *Loop) Step() *render.Frame {
	var intent Intent
	if l.Flags != nil {
		intent = l.Flags.Snapshot()
	}
	if l.Mover != nil {
		l.Mover.Step(l.Camera, intent)
	}

	l.Rasterizer.Render(l.Camera, l.Meshes)
	frame := l.Rasterizer.Frame()

	render.Logger().Debug("frame",
		"seq", frame.Seq,
		"elapsed", frame.Elapsed,
		"position", l.Camera.Position,
		"look", l.Camera.Look,
	)

	if l.OnFrame != nil {
		l.OnFrame(frame, l.Camera)
	}
	return frame
}

// Run calls Step at the configured frame rate until ctx is done or
// MaxFrames frames have been rendered. Cancellation is observed between
// frames, never in the middle of one. Run returns nil when it stops because
// of MaxFrames and ctx.Err() otherwise. The camera starts from rest.
func (l *Loop) Run(ctx context.Context) error {
	if l.Mover != nil {
		l.Mover.Reset()
	}

	var interval time.Duration
	if l.FPS > 0 {
		interval = time.Second / time.Duration(l.FPS)
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for n := 0; l.MaxFrames <= 0 || n < l.MaxFrames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		l.Step()

		wait := interval - time.Since(start)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
