package terrain

import (
	"fmt"
	"math"
)

// Stairs is a run of equal steps climbing along +Z, leveling off after
// the last step.
type Stairs struct {
	StepRise float64
	StepRun  float64
	Steps    float64 // kept as float so SetParam stays uniform
	StartZ   float64
}

func NewStairs() *Stairs {
	return &Stairs{
		StepRise: 0.17,
		StepRun:  0.28,
		Steps:    8,
		StartZ:   1.0,
	}
}

func (s *Stairs) Name() string { return "stairs" }

func (s *Stairs) HeightAt(x, z float64) float64 {
	if z <= s.StartZ || s.StepRun <= 0 {
		return 0
	}
	step := math.Floor((z - s.StartZ) / s.StepRun)
	if step > s.Steps {
		step = s.Steps
	}
	return step * s.StepRise
}

func (s *Stairs) GetParams() map[string]float64 {
	return map[string]float64{
		"step_rise": s.StepRise,
		"step_run":  s.StepRun,
		"steps":     s.Steps,
		"start_z":   s.StartZ,
	}
}

func (s *Stairs) SetParam(name string, value float64) error {
	switch name {
	case "step_rise":
		s.StepRise = value
	case "step_run":
		s.StepRun = value
	case "steps":
		s.Steps = value
	case "start_z":
		s.StartZ = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
