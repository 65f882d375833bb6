package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/wireframe/pkg/control"
	"github.com/taigrr/wireframe/pkg/render"
)

// runTerminal renders into the terminal with half-block cells. Rendering
// runs on its own goroutine; this goroutine owns the terminal and only
// copies published frames to it.
func runTerminal(ctx context.Context, v *viewer) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, h := rasterSize(render.TerminalRaster(cols, rows))
	loop := v.newLoop(w, h, *targetFPS, 0)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	resized := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resized <- [2]int{ev.Width, ev.Height}:
				default:
				}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					v.hud.Toggle()
				default:
					if k := terminalKey(ev); k != control.KeyNone {
						v.flags.Tap(k)
					}
				}

			case uv.KeyReleaseEvent:
				if k := terminalKey(ev); k != control.KeyNone {
					v.flags.Release(k)
				}
			}
		}
	}()

	interval := time.Second / time.Duration(max(*targetFPS, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil

		case size := <-resized:
			cols, rows = size[0], size[1]
			term.Erase()
			term.Resize(cols, rows)

		case <-ticker.C:
			area := uv.Rect(0, 0, cols, rows)
			render.DrawTerminal(term, area, v.latest.Load())
			if v.hud.Visible() {
				drawText(term, area, v.hud.Lines())
			}
			if err := term.Display(); err != nil {
				cancel()
				cleanup()
				<-loopErr
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

type keyMatcher interface {
	MatchString(...string) bool
}

// terminalKey maps a key press or release to a movement key.
func terminalKey(ev keyMatcher) control.Key {
	for _, name := range control.KeyNames() {
		if ev.MatchString(name) {
			return control.KeyByName(name)
		}
	}
	return control.KeyNone
}

// drawText writes lines into the top rows of area, one cell per rune.
func drawText(scr uv.Screen, area uv.Rectangle, lines []string) {
	for i, line := range lines {
		y := area.Min.Y + i
		if y >= area.Max.Y {
			return
		}
		x := area.Min.X
		for _, r := range line {
			if x >= area.Max.X {
				break
			}
			scr.SetCell(x, y, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style: uv.Style{
					Fg: render.OverlayColor,
					Bg: render.Background,
				},
			})
			x++
		}
	}
}
