//go:build cgo

package main

import (
	"context"
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/wireframe/pkg/control"
)

// windowKeys maps keyboard keys to movement keys.
var windowKeys = map[ebiten.Key]control.Key{
	ebiten.KeyW:          control.KeyForward,
	ebiten.KeyS:          control.KeyBackward,
	ebiten.KeyA:          control.KeyStrafeLeft,
	ebiten.KeyD:          control.KeyStrafeRight,
	ebiten.KeyArrowUp:    control.KeyTiltUp,
	ebiten.KeyArrowDown:  control.KeyTiltDown,
	ebiten.KeyArrowLeft:  control.KeyTurnLeft,
	ebiten.KeyArrowRight: control.KeyTurnRight,
}

// runWindow opens a desktop window showing the published frames. It blocks
// until the window closes, Esc is pressed, or ctx is done.
func runWindow(ctx context.Context, v *viewer) error {
	w, h := rasterSize(defaultSize, defaultSize)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := v.newLoop(w, h, *targetFPS, 0)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	g := &windowGame{ctx: ctx, v: v, width: w, height: h}
	ebiten.SetWindowTitle("wireframe - " + v.name)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(max(*targetFPS, 1))

	err := ebiten.RunGame(g)
	cancel()
	<-loopErr
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type windowGame struct {
	ctx           context.Context
	v             *viewer
	width, height int

	shown  *image.RGBA
	canvas *ebiten.Image
	hudKey bool
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !ebiten.IsFocused() {
		// key releases are not delivered while unfocused
		g.v.flags.Reset()
		return nil
	}
	for key, k := range windowKeys {
		g.v.flags.Set(k, ebiten.IsKeyPressed(key))
	}

	// toggle on the press edge only
	down := ebiten.IsKeyPressed(ebiten.KeySlash)
	if down && !g.hudKey {
		g.v.hud.Toggle()
	}
	g.hudKey = down
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	img := g.v.latest.Load()
	if img == nil {
		return
	}
	b := img.Bounds()
	if g.canvas == nil || g.canvas.Bounds().Dx() != b.Dx() || g.canvas.Bounds().Dy() != b.Dy() {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(b.Dx(), b.Dy())
		g.shown = nil
	}
	if img != g.shown {
		g.canvas.WritePixels(img.Pix)
		g.shown = img
	}
	screen.DrawImage(g.canvas, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
