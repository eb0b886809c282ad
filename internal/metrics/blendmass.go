package metrics

import (
	"math"

	"github.com/futuroptimist/strider/internal/walker"
)

// BlendMass tracks the worst deviation of the locomotion weight mass from
// its ideal. Without a turn overlay the idle/walk/run weights sum to one;
// a saturated overlay pulls the sum down to its damped floor. Values near
// zero mean the animator held its invariant for the whole run.
type BlendMass struct {
	name     string
	maxError float64
	samples  int
}

const overlayMassFloor = 0.15

func NewBlendMass() *BlendMass {
	return &BlendMass{name: "blend_mass"}
}

func (b *BlendMass) Name() string { return b.name }

func (b *BlendMass) Observe(f walker.Frame) {
	b.samples++
	w := f.Snapshot.Weights
	mass := w.Idle + w.Walk + w.Run
	turn := math.Max(w.TurnLeft, w.TurnRight)

	ideal := 1.0 - (1.0-overlayMassFloor)*turn
	err := math.Abs(mass - ideal)
	if err > b.maxError {
		b.maxError = err
	}
}

func (b *BlendMass) Value() float64 {
	return b.maxError
}

func (b *BlendMass) Reset() {
	b.maxError = 0
	b.samples = 0
}
