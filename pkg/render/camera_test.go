package render

import (
	"testing"

	"github.com/taigrr/wireframe/pkg/math3d"
)

func TestDefaultCamera(t *testing.T) {
	c := DefaultCamera()
	if c.Position != math3d.V3(1.2, 0, 8) {
		t.Errorf("Position = %v", c.Position)
	}
	if c.Target != math3d.V3(1.2, 0, 7) {
		t.Errorf("Target = %v, want (1.2,0,7)", c.Target)
	}
	if c.Up != math3d.V3(0, 1, 0) || c.Look != math3d.V3(0, 0, 1) {
		t.Errorf("Up = %v, Look = %v", c.Up, c.Look)
	}
}

func TestCameraKeepsTargetInSync(t *testing.T) {
	tests := []struct {
		name   string
		apply  func(c *Camera)
		target math3d.Vec3
	}{
		{
			name:   "SetPosition",
			apply:  func(c *Camera) { c.SetPosition(math3d.V3(0, 2, 4)) },
			target: math3d.V3(0, 2, 3),
		},
		{
			name:   "SetLook",
			apply:  func(c *Camera) { c.SetLook(math3d.V3(1, 0, 0)) },
			target: math3d.V3(0.2, 0, 8),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultCamera()
			tc.apply(c)
			if !c.Target.ApproxEqual(tc.target, 1e-12) {
				t.Errorf("Target = %v, want %v", c.Target, tc.target)
			}
			if !c.Target.ApproxEqual(c.Position.Sub(c.Look), 1e-12) {
				t.Error("Target != Position - Look")
			}
		})
	}
}

func TestCameraViewMatrix(t *testing.T) {
	c := DefaultCamera()
	view := c.ViewMatrix()

	if got := view.MulVec3(c.Position); !got.ApproxEqual(math3d.Zero3(), 1e-12) {
		t.Errorf("camera position in view space = %v, want origin", got)
	}
	if got := view.MulVec3(c.Target); !got.ApproxEqual(math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("target in view space = %v, want (0,0,-1)", got)
	}
}

func TestCameraStrafe(t *testing.T) {
	c := DefaultCamera()
	if got := c.Strafe(); got != math3d.V3(-1, 0, 0) {
		t.Errorf("Strafe = %v, want (-1,0,0)", got)
	}
}

func TestCameraClone(t *testing.T) {
	c := DefaultCamera()
	cp := c.Clone()
	cp.SetPosition(math3d.V3(9, 9, 9))
	if c.Position == cp.Position {
		t.Error("Clone shares state with its source")
	}
}
