package render

import "github.com/taigrr/wireframe/pkg/math3d"

// Camera is a look-direction camera. Target is always Position − Look; use
// SetPosition and SetLook to keep it in sync.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3
	Look     math3d.Vec3
}

// NewCamera creates a camera at position facing away from look, so a look
// of (0,0,1) faces down −Z.
func NewCamera(position, look, up math3d.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   position.Sub(look),
		Up:       up,
		Look:     look,
	}
}

// DefaultCamera returns the camera used when a scene does not define one.
func DefaultCamera() *Camera {
	return NewCamera(math3d.V3(1.2, 0, 8), math3d.V3(0, 0, 1), math3d.Up())
}

// SetPosition moves the camera and its target together.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.Target = pos.Sub(c.Look)
}

// SetLook changes the look direction and recomputes the target.
func (c *Camera) SetLook(look math3d.Vec3) {
	c.Look = look
	c.Target = c.Position.Sub(look)
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, c.Up)
}

// Strafe returns Look × Up, the sideways axis used for strafing and turning.
func (c *Camera) Strafe() math3d.Vec3 {
	return c.Look.Cross(c.Up)
}

// Clone returns a copy of the camera.
func (c *Camera) Clone() *Camera {
	cp := *c
	return &cp
}
