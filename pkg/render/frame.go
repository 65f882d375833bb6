package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"
)

// FrameStats counts what happened to the edges of one frame.
type FrameStats struct {
	Meshes       int // meshes rendered
	Faces        int // triangles visited
	EdgesDrawn   int // edges that survived clipping
	EdgesBehind  int // edges skipped because an endpoint is behind the camera
	EdgesClipped int // edges entirely outside the viewport
}

// Frame is a published, read-only image. Seq is 0 for the blank frame
// published at construction and increases by one per render.
type Frame struct {
	Image   *image.RGBA
	Seq     uint64
	Stats   FrameStats
	Elapsed time.Duration
}

// Pixel returns the color at (x, y).
func (f *Frame) Pixel(x, y int) color.RGBA {
	return f.Image.RGBAAt(x, y)
}

// Count returns how many pixels have color c.
func (f *Frame) Count(c color.RGBA) int {
	n := 0
	pix := f.Image.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] == c.R && pix[i+1] == c.G && pix[i+2] == c.B && pix[i+3] == c.A {
			n++
		}
	}
	return n
}

// SavePNG writes the frame to path as a PNG.
func (f *Frame) SavePNG(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, f.Image); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
