package render

import "github.com/taigrr/wireframe/pkg/math3d"

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	X, Y, W, H float64
}

// Viewport returns the rectangle covering a width×height raster.
func Viewport(width, height int) Rect {
	return Rect{W: float64(width), H: float64(height)}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r. Points on the edges count as
// inside.
func (r Rect) Contains(p math3d.Vec2) bool {
	return outcode(r, p) == outcodeInside
}

// Outcode bits for Cohen-Sutherland.
const (
	outcodeInside = 0
	outcodeLeft   = 1
	outcodeRight  = 2
	outcodeBottom = 4
	outcodeTop    = 8
)

const maxClipSteps = 8

func outcode(r Rect, p math3d.Vec2) int {
	code := outcodeInside

	if p.X < r.X {
		code |= outcodeLeft
	} else if p.X > r.Right() {
		code |= outcodeRight
	}

	if p.Y < r.Y {
		code |= outcodeTop
	} else if p.Y > r.Bottom() {
		code |= outcodeBottom
	}

	return code
}

// ClipSegment clips the segment p0-p1 to r using the Cohen-Sutherland
// algorithm. It returns the visible part of the segment and true, or false
// when nothing of it lies inside r. Segments with a non-finite endpoint are
// rejected.
func ClipSegment(r Rect, p0, p1 math3d.Vec2) (q0, q1 math3d.Vec2, ok bool) {
	if !p0.IsFinite() || !p1.IsFinite() {
		return p0, p1, false
	}

	code0 := outcode(r, p0)
	code1 := outcode(r, p1)

	// each endpoint needs at most two clips; rounding can re-flag a point
	// sitting on an edge, so the loop is bounded
	for range maxClipSteps {
		if code0|code1 == 0 {
			return p0, p1, true
		}
		if code0&code1 != 0 {
			return p0, p1, false
		}

		codeOut := code0
		if codeOut == 0 {
			codeOut = code1
		}

		var p math3d.Vec2
		switch {
		case codeOut&outcodeTop != 0:
			t := (r.Y - p0.Y) / (p1.Y - p0.Y)
			p.X = p0.X + t*(p1.X-p0.X)
			p.Y = r.Y
		case codeOut&outcodeBottom != 0:
			t := (r.Bottom() - p0.Y) / (p1.Y - p0.Y)
			p.X = p0.X + t*(p1.X-p0.X)
			p.Y = r.Bottom()
		case codeOut&outcodeRight != 0:
			t := (r.Right() - p0.X) / (p1.X - p0.X)
			p.Y = p0.Y + t*(p1.Y-p0.Y)
			p.X = r.Right()
		case codeOut&outcodeLeft != 0:
			t := (r.X - p0.X) / (p1.X - p0.X)
			p.Y = p0.Y + t*(p1.Y-p0.Y)
			p.X = r.X
		}

		if codeOut == code0 {
			p0 = p
			code0 = outcode(r, p0)
		} else {
			p1 = p
			code1 = outcode(r, p1)
		}
	}
	return p0, p1, false
}
