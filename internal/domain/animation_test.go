package domain

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulseScale_NotElevated(t *testing.T) {
	for _, elapsed := range []float64{0, 0.25, 1, 17.3, 1e6} {
		assert.Equal(t, 1.7, PulseScale(1.7, elapsed, false))
	}
}

func TestPulseScale_Elevated(t *testing.T) {
	assert.InDelta(t, 2.0, PulseScale(2, 0, true), 1e-12)

	// Peak of the sine at 2t = pi/2.
	assert.InDelta(t, 2.2, PulseScale(2, math.Pi/4, true), 1e-12)
	// Trough at 2t = 3pi/2.
	assert.InDelta(t, 1.8, PulseScale(2, 3*math.Pi/4, true), 1e-12)
}

func TestParticlePulse(t *testing.T) {
	assert.InDelta(t, 1.0, ParticlePulse(0, 0), 1e-12)
	assert.InDelta(t, 1.1, ParticlePulse(0, 50*math.Pi), 1e-12)
}

func TestViewSession_NextFrame(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC))
	s := NewViewSession(fc)

	f1 := s.NextFrame()
	assert.Equal(t, time.Duration(0), f1.Elapsed)
	assert.InDelta(t, RotationStep, f1.Rotation, 1e-15)

	fc.Advance(500 * time.Millisecond)
	f2 := s.NextFrame()
	assert.Equal(t, 500*time.Millisecond, f2.Elapsed)
	assert.InDelta(t, 0.5, f2.ElapsedSeconds(), 1e-12)
	assert.InDelta(t, 2*RotationStep, f2.Rotation, 1e-15)

	assert.Equal(t, 2, s.Frames())
	assert.InDelta(t, 2*RotationStep, s.Rotation(), 1e-15)
}

func TestViewSession_Independent(t *testing.T) {
	fc := clockwork.NewFakeClock()
	a := NewViewSession(fc)
	b := NewViewSession(fc)

	for range 10 {
		a.NextFrame()
	}
	b.NextFrame()

	assert.InDelta(t, 10*RotationStep, a.Rotation(), 1e-12)
	assert.InDelta(t, RotationStep, b.Rotation(), 1e-15)
}

func TestAnimate(t *testing.T) {
	points := []ScenePoint{
		{Label: "calm", Scale: 1, Elevated: false},
		{Label: "hot", Scale: 2, Elevated: true},
	}
	elapsed := math.Pi / 4
	frame := FrameState{Elapsed: time.Duration(elapsed * float64(time.Second))}

	out := AQIView().Animate(points, frame)

	assert.Equal(t, 1.0, out[0].Scale)
	assert.InDelta(t, 2.2, out[1].Scale, 1e-6)
	assert.Equal(t, 2.0, points[1].Scale, "input is not mutated")
}

func TestAnimate_ParticlesPhaseByX(t *testing.T) {
	view, err := TempoView(ParameterNO2)
	require.NoError(t, err)
	points := []ScenePoint{
		{Label: "west", Scale: 1, Elevated: true, Position: r3.Vector{X: 0}},
		{Label: "east", Scale: 1, Elevated: true, Position: r3.Vector{X: 160}},
		{Label: "clean", Scale: 1, Elevated: false, Position: r3.Vector{X: 160}},
	}

	out := view.Animate(points, FrameState{Elapsed: time.Second})

	assert.InDelta(t, 1+0.1*math.Sin(2), out[0].Scale, 1e-12)
	assert.InDelta(t, 1+0.1*math.Sin(2+1.6), out[1].Scale, 1e-12)
	assert.InDelta(t, ParticlePulse(1, 160), out[1].Scale, 1e-12)
	assert.NotEqual(t, out[0].Scale, out[1].Scale)
	assert.Equal(t, 1.0, out[2].Scale)
}

func TestFrameState_Rotate(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 0}

	same := FrameState{}.Rotate(v)
	assert.Equal(t, v, same)

	quarter := FrameState{Rotation: math.Pi / 2}.Rotate(v)
	assert.InDelta(t, 0, quarter.X, 1e-12)
	assert.InDelta(t, 2, quarter.Y, 0)
	assert.InDelta(t, -1, quarter.Z, 1e-12)

	// Rotation preserves distance from the up axis.
	f := FrameState{Rotation: 0.37}
	w := r3.Vector{X: 3, Y: -1, Z: 4}
	got := f.Rotate(w)
	assert.InDelta(t, 5, math.Hypot(got.X, got.Z), 1e-12)
}
