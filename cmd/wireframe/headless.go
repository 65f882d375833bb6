package main

import (
	"context"
	"fmt"

	"github.com/taigrr/wireframe/pkg/render"
)

// runHeadless renders -frames frames as fast as possible, applying held
// input on every frame, and writes the last one to -out.
func runHeadless(ctx context.Context, v *viewer) error {
	w, h := rasterSize(defaultSize, defaultSize)
	loop := v.newLoop(w, h, 0, max(*frameCount, 1))

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	frame := &render.Frame{Image: v.latest.Load()}
	if err := frame.SavePNG(*outPath); err != nil {
		return err
	}

	last := loop.Rasterizer.Frame()
	render.Logger().Info("frame written",
		"path", *outPath,
		"seq", last.Seq,
		"edges", last.Stats.EdgesDrawn,
		"elapsed", last.Elapsed,
	)
	return nil
}
