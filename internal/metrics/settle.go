package metrics

import (
	"math"

	"github.com/futuroptimist/strider/internal/walker"
)

// Settle averages the absolute distance between each foot's offset and its
// target over a run. Lower values mean the feet track the terrain tightly.
type Settle struct {
	name    string
	total   float64
	samples int
}

func NewSettle() *Settle {
	return &Settle{name: "settle"}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(f walker.Frame) {
	s.total += math.Abs(f.Left.Offset - f.Left.TargetOffset)
	s.total += math.Abs(f.Right.Offset - f.Right.TargetOffset)
	s.samples += 2
}

func (s *Settle) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Settle) Reset() {
	s.total = 0
	s.samples = 0
}

// PelvisSway averages the absolute pelvis vertical offset, a proxy for how
// much the hips bob while walking uneven ground.
type PelvisSway struct {
	name    string
	total   float64
	samples int
}

func NewPelvisSway() *PelvisSway {
	return &PelvisSway{name: "pelvis_sway"}
}

func (p *PelvisSway) Name() string { return p.name }

func (p *PelvisSway) Observe(f walker.Frame) {
	p.total += math.Abs(f.PelvisOffset)
	p.samples++
}

func (p *PelvisSway) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *PelvisSway) Reset() {
	p.total = 0
	p.samples = 0
}
