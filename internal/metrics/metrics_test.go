package metrics

import (
	"math"
	"testing"

	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/walker"
)

func frameAt(t float64, left, right bool) walker.Frame {
	return walker.Frame{
		T:     t,
		Left:  locomotion.FootReport{Foot: locomotion.FootLeft, InContact: left},
		Right: locomotion.FootReport{Foot: locomotion.FootRight, InContact: right},
	}
}

func TestCadenceCountsOnsets(t *testing.T) {
	c := NewCadence()

	// Two onsets per foot over two seconds: 2 steps/s.
	c.Observe(frameAt(0.0, false, false))
	c.Observe(frameAt(0.5, true, false))
	c.Observe(frameAt(1.0, false, true))
	c.Observe(frameAt(1.5, true, false))
	c.Observe(frameAt(2.0, false, true))

	if got := c.Value(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("cadence = %v, want 2.0", got)
	}
}

func TestCadenceIgnoresHeldContact(t *testing.T) {
	c := NewCadence()

	c.Observe(frameAt(0.0, true, true))
	c.Observe(frameAt(0.5, true, true))
	c.Observe(frameAt(1.0, true, true))

	// First frame counted both feet, holds count nothing further.
	if got := c.Value(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("cadence = %v, want 2.0", got)
	}
}

func TestCadenceDegenerateSpan(t *testing.T) {
	c := NewCadence()
	c.Observe(frameAt(1.0, true, false))
	if c.Value() != 0 {
		t.Error("single-sample cadence should report zero")
	}
}

func TestSettleAverages(t *testing.T) {
	s := NewSettle()

	f := walker.Frame{
		Left:  locomotion.FootReport{Offset: 0.10, TargetOffset: 0.12},
		Right: locomotion.FootReport{Offset: -0.05, TargetOffset: -0.01},
	}
	s.Observe(f)

	// (0.02 + 0.04) / 2
	if got := s.Value(); math.Abs(got-0.03) > 1e-9 {
		t.Errorf("settle = %v, want 0.03", got)
	}

	s.Reset()
	if s.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPelvisSway(t *testing.T) {
	p := NewPelvisSway()
	p.Observe(walker.Frame{PelvisOffset: -0.2})
	p.Observe(walker.Frame{PelvisOffset: 0.1})

	if got := p.Value(); math.Abs(got-0.15) > 1e-9 {
		t.Errorf("sway = %v, want 0.15", got)
	}
}

func TestBlendMassHoldsAtSteadyState(t *testing.T) {
	b := NewBlendMass()

	// Pure walk, no overlay: mass exactly one.
	b.Observe(walker.Frame{Snapshot: locomotion.Snapshot{
		Weights: locomotion.BlendWeights{Walk: 1},
	}})
	if got := b.Value(); got > 1e-9 {
		t.Errorf("mass error = %v, want 0", got)
	}

	// Saturated overlay: locomotion mass damped to its floor.
	b.Observe(walker.Frame{Snapshot: locomotion.Snapshot{
		Weights: locomotion.BlendWeights{Idle: 0.15, TurnLeft: 1},
	}})
	if got := b.Value(); got > 1e-9 {
		t.Errorf("mass error with overlay = %v, want 0", got)
	}
}

func TestBlendMassFlagsViolation(t *testing.T) {
	b := NewBlendMass()
	b.Observe(walker.Frame{Snapshot: locomotion.Snapshot{
		Weights: locomotion.BlendWeights{Idle: 0.5, Walk: 0.9},
	}})
	if got := b.Value(); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("mass error = %v, want 0.4", got)
	}
}
