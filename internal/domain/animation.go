package domain

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/jonboulle/clockwork"
)

const (
	// PulseAmplitude is the relative size swing of a pulsing glyph.
	PulseAmplitude = 0.1
	// PulseFrequency is the pulse angular frequency in rad/s.
	PulseFrequency = 2.0
	// ParticlePhase offsets each particle's pulse by its X position.
	ParticlePhase = 0.01
	// RotationStep is the rotation added per rendered frame, in radians.
	RotationStep = 0.001
)

// PulseScale returns the animated scale of a glyph at elapsedSeconds. Glyphs
// that are not elevated keep their base scale.
func PulseScale(base, elapsedSeconds float64, elevated bool) float64 {
	if !elevated {
		return base
	}
	return base * (1 + PulseAmplitude*math.Sin(PulseFrequency*elapsedSeconds))
}

// ParticlePulse is the pulse factor applied to a TEMPO particle at scene X.
func ParticlePulse(elapsedSeconds, x float64) float64 {
	return 1 + PulseAmplitude*math.Sin(PulseFrequency*elapsedSeconds+ParticlePhase*x)
}

// FrameState is what a renderer needs to draw one frame.
type FrameState struct {
	Elapsed  time.Duration
	Rotation float64
}

// ElapsedSeconds is Elapsed as float seconds.
func (f FrameState) ElapsedSeconds() float64 {
	return f.Elapsed.Seconds()
}

// Rotate turns v about the up (Y) axis by the frame's rotation, the way the
// whole scene group spins.
func (f FrameState) Rotate(v r3.Vector) r3.Vector {
	sin, cos := math.Sincos(f.Rotation)
	return r3.Vector{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// ViewSession owns the per-view animation state. A session belongs to exactly
// one view and is not safe for concurrent use.
type ViewSession struct {
	clock    clockwork.Clock
	started  time.Time
	rotation float64
	frames   int
}

// NewViewSession starts a session at the clock's current time. A nil clock
// uses the real clock.
func NewViewSession(clock clockwork.Clock) *ViewSession {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ViewSession{clock: clock, started: clock.Now()}
}

// NextFrame advances the rotation by one step and returns the frame state.
func (s *ViewSession) NextFrame() FrameState {
	s.rotation += RotationStep
	s.frames++
	return FrameState{Elapsed: s.clock.Since(s.started), Rotation: s.rotation}
}

// Rotation returns the accumulated rotation without advancing it.
func (s *ViewSession) Rotation() float64 { return s.rotation }

// Frames returns how many frames have been produced.
func (s *ViewSession) Frames() int { return s.frames }

// PulseMode selects how elevated points pulse.
type PulseMode int

const (
	// PulseGlyph pulses every elevated glyph in phase, as station spheres do.
	PulseGlyph PulseMode = iota
	// PulseParticle offsets each particle's phase by its X position so a
	// TEMPO cloud ripples across the map.
	PulseParticle
)

// Animate applies the frame's pulse to every elevated point and returns new
// points. The input slice is left untouched.
func (v View) Animate(points []ScenePoint, frame FrameState) []ScenePoint {
	out := make([]ScenePoint, len(points))
	t := frame.ElapsedSeconds()
	for i, p := range points {
		switch {
		case !p.Elevated:
		case v.Pulse == PulseParticle:
			p.Scale *= ParticlePulse(t, p.Position.X)
		default:
			p.Scale = PulseScale(p.Scale, t, true)
		}
		out[i] = p
	}
	return out
}
