package control

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/wireframe/pkg/render"
)

// Per-frame step sizes: a held movement key shifts the camera by Look/MoveDivisor
// and a held turn key shifts Look by one axis over TurnDivisor.
const (
	MoveDivisor = 50.0
	TurnDivisor = 100.0
)

// Spring parameters for smoothed motion. Damping 1 is critically damped, so
// velocity eases in and out without overshoot.
const (
	springFrequency = 6.0
	springDamping   = 1.0
)

// axis tracks the velocity of one motion channel.
type axis struct {
	velocity float64
	accel    float64
}

func (a *axis) update(spring *harmonica.Spring, target float64, smooth bool) float64 {
	if !smooth {
		a.velocity, a.accel = target, 0
		return target
	}
	a.velocity, a.accel = spring.Update(a.velocity, a.accel, target)
	return a.velocity
}

// Mover applies an Intent to a camera once per frame.
type Mover struct {
	smooth bool
	spring harmonica.Spring

	move, strafe, tilt, turn axis
}

// NewMover creates a mover for the given frame rate. With smooth set, each
// motion channel accelerates and decelerates through a spring instead of
// starting and stopping instantly.
func NewMover(fps int, smooth bool) *Mover {
	return &Mover{
		smooth: smooth,
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), springFrequency, springDamping),
	}
}

// Smooth reports whether spring smoothing is enabled.
func (m *Mover) Smooth() bool { return m.smooth }

// Step moves cam according to in:
//
//	Forward/Backward      Position ∓= Look/50
//	StrafeLeft/Right      Position ±= (Look×Up)/50
//	TiltUp/Down           Look ∓= Up/100
//	TurnLeft/Right        Look ∓= (Look×Up)/100
//
// The strafe axis is recomputed after tilting. Target follows Position and
// Look.
func (m *Mover) Step(cam *render.Camera, in Intent) {
	move := m.move.update(&m.spring, pair(in.Forward, in.Backward), m.smooth)
	strafe := m.strafe.update(&m.spring, pair(in.StrafeLeft, in.StrafeRight), m.smooth)
	tilt := m.tilt.update(&m.spring, pair(in.TiltUp, in.TiltDown), m.smooth)
	turn := m.turn.update(&m.spring, pair(in.TurnLeft, in.TurnRight), m.smooth)

	pos, look := cam.Position, cam.Look
	side := cam.Strafe()

	if move != 0 {
		pos = pos.Sub(look.Scale(move / MoveDivisor))
	}
	if strafe != 0 {
		pos = pos.Add(side.Scale(strafe / MoveDivisor))
	}
	if tilt != 0 {
		look = look.Sub(cam.Up.Scale(tilt / TurnDivisor))
		side = look.Cross(cam.Up)
	}
	if turn != 0 {
		look = look.Sub(side.Scale(turn / TurnDivisor))
	}

	cam.Look = look
	cam.SetPosition(pos)
}

// Reset stops all motion immediately.
func (m *Mover) Reset() {
	m.move, m.strafe, m.tilt, m.turn = axis{}, axis{}, axis{}, axis{}
}

// pair maps two opposing keys to +1, -1, or 0 when both or neither are held.
func pair(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}
