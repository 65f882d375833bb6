package render

import (
	"image"
	"image/color"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// Framebuffer is the rasterizer's private working surface. It is cleared and
// redrawn every frame and never handed to readers directly.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // row-major
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pixels) == 0 {
		return
	}
	fb.Pixels[0] = c
	for filled := 1; filled < len(fb.Pixels); filled *= 2 {
		copy(fb.Pixels[filled:], fb.Pixels[:filled])
	}
}

// SetPixel sets the pixel at (x, y). Coordinates outside the framebuffer are
// ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black when out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine plots the integer Bresenham line from (x0, y0) to (x1, y1),
// endpoints included. A segment reaching past the raster is clipped first,
// so the walk is bounded by the raster size.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	vp := Viewport(fb.Width, fb.Height)
	p0 := math3d.V2(float64(x0), float64(y0))
	p1 := math3d.V2(float64(x1), float64(y1))
	if !vp.Contains(p0) || !vp.Contains(p1) {
		q0, q1, ok := ClipSegment(vp, p0, p1)
		if !ok {
			return
		}
		x0, y0, x1, y1 = int(q0.X), int(q0.Y), int(q1.X), int(q1.Y)
	}

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage copies the framebuffer into a new image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}
