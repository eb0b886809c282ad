package walker

import (
	"errors"

	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/mathutil"
)

// Config controls one walk run.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

var (
	ErrInvalidDt       = errors.New("walker: dt must be positive")
	ErrInvalidDuration = errors.New("walker: duration must be positive")
)

func (c Config) validate() error {
	if c.Dt <= 0 {
		return ErrInvalidDt
	}
	if c.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Frame is the per-step observation of the whole avatar.
type Frame struct {
	T            float64
	LinearSpeed  float64
	AngularSpeed float64
	Root         mathutil.Vec3
	GroundHeight float64
	Left         locomotion.FootReport
	Right        locomotion.FootReport
	PelvisOffset float64
	Snapshot     locomotion.Snapshot
}

// Contact timestamps a foot contact event within a run.
type Contact struct {
	T float64
	locomotion.ContactEvent
}

// Observer receives every frame as it is produced.
type Observer interface {
	OnFrame(f Frame)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Result collects a completed run.
type Result struct {
	Frames     []Frame
	Contacts   []Contact
	Metrics    map[string]float64
	StepsTaken int
}
