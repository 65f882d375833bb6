// Package control turns keyboard state into camera motion and drives the
// render loop.
package control

import (
	"strings"
	"sync/atomic"
)

// Key is a bit set of movement keys.
type Key uint32

const (
	KeyForward Key = 1 << iota
	KeyBackward
	KeyStrafeLeft
	KeyStrafeRight
	KeyTiltUp
	KeyTiltDown
	KeyTurnLeft
	KeyTurnRight

	KeyNone Key = 0
)

var keyNames = map[string]Key{
	"w":     KeyForward,
	"s":     KeyBackward,
	"a":     KeyStrafeLeft,
	"d":     KeyStrafeRight,
	"up":    KeyTiltUp,
	"down":  KeyTiltDown,
	"left":  KeyTurnLeft,
	"right": KeyTurnRight,
}

// KeyNames returns the key names understood by KeyByName.
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	return names
}

// KeyByName maps a key name such as "w" or "left" to its Key. Matching is
// case-insensitive; unknown names return KeyNone.
func KeyByName(name string) Key {
	return keyNames[strings.ToLower(name)]
}

// Intent is the set of movement requests for one frame.
type Intent struct {
	Forward, Backward       bool
	StrafeLeft, StrafeRight bool
	TiltUp, TiltDown        bool
	TurnLeft, TurnRight     bool
}

// IntentOf expands a key set into an Intent.
func IntentOf(k Key) Intent {
	return Intent{
		Forward:     k&KeyForward != 0,
		Backward:    k&KeyBackward != 0,
		StrafeLeft:  k&KeyStrafeLeft != 0,
		StrafeRight: k&KeyStrafeRight != 0,
		TiltUp:      k&KeyTiltUp != 0,
		TiltDown:    k&KeyTiltDown != 0,
		TurnLeft:    k&KeyTurnLeft != 0,
		TurnRight:   k&KeyTurnRight != 0,
	}
}

// Idle reports whether no movement is requested.
func (i Intent) Idle() bool {
	return i == Intent{}
}

// Flags holds key state shared between an input goroutine and the render
// loop. The zero value is ready to use.
type Flags struct {
	held atomic.Uint32
	taps atomic.Uint32
}

// Press marks k as held.
func (f *Flags) Press(k Key) {
	f.held.Or(uint32(k))
}

// Release clears k from the held set.
func (f *Flags) Release(k Key) {
	f.held.And(^uint32(k))
}

// Set presses or releases k.
func (f *Flags) Set(k Key, down bool) {
	if down {
		f.Press(k)
	} else {
		f.Release(k)
	}
}

// Tap requests k for the next snapshot only. Terminals usually report key
// repeats but not releases, so each repeat becomes a tap.
func (f *Flags) Tap(k Key) {
	f.taps.Or(uint32(k))
}

// Held returns the keys currently held, excluding taps.
func (f *Flags) Held() Key {
	return Key(f.held.Load())
}

// Snapshot returns the held keys plus pending taps and consumes the taps.
func (f *Flags) Snapshot() Intent {
	return IntentOf(Key(f.held.Load() | f.taps.Swap(0)))
}

// Reset releases every key and drops pending taps.
func (f *Flags) Reset() {
	f.held.Store(0)
	f.taps.Store(0)
}
