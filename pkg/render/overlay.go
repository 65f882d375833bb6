package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// OverlayColor is the text color used by Annotate.
var OverlayColor = color.RGBA{200, 30, 30, 255}

// Annotate returns a copy of img with lines of text drawn in its top-left
// corner. img itself is left untouched, so published frames stay immutable.
func Annotate(img *image.RGBA, lines ...string) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	if len(lines) == 0 {
		return out
	}

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(OverlayColor),
		Face: face,
	}

	min := out.Bounds().Min
	y := fixed.I(min.Y+4) + face.Metrics().Ascent
	for _, line := range lines {
		d.Dot = fixed.Point26_6{X: fixed.I(min.X + 4), Y: y}
		d.DrawString(line)
		y += lineHeight
	}
	return out
}
