package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	xdraw "golang.org/x/image/draw"
)

// TerminalRaster returns the raster size that maps one pixel per half cell
// onto a cols×rows terminal area.
func TerminalRaster(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// DrawTerminal paints img onto area using upper half blocks: each cell shows
// two vertically stacked pixels, the top one as foreground and the bottom
// one as background. img is rescaled when its size does not match the area.
func DrawTerminal(scr uv.Screen, area uv.Rectangle, img *image.RGBA) {
	cols := area.Max.X - area.Min.X
	rows := area.Max.Y - area.Min.Y
	if cols <= 0 || rows <= 0 || img == nil {
		return
	}

	w, h := TerminalRaster(cols, rows)
	src := img
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		src = image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(src, src.Bounds(), img, b, xdraw.Src, nil)
	}
	origin := src.Bounds().Min

	for row := range rows {
		for col := range cols {
			top := src.RGBAAt(origin.X+col, origin.Y+row*2)
			bot := src.RGBAAt(origin.X+col, origin.Y+row*2+1)
			scr.SetCell(area.Min.X+col, area.Min.Y+row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(top),
					Bg: rgbaToColor(bot),
				},
			})
		}
	}
}

// rgbaToColor maps transparent pixels to the terminal default color.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
