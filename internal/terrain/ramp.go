package terrain

import "fmt"

// Ramp is an inclined plane rising along +Z.
type Ramp struct {
	Slope  float64 // rise per unit of Z
	Base   float64
	StartZ float64 // floor height before this Z
}

func NewRamp() *Ramp {
	return &Ramp{
		Slope:  0.12,
		Base:   0,
		StartZ: 0,
	}
}

func (r *Ramp) Name() string { return "ramp" }

func (r *Ramp) HeightAt(x, z float64) float64 {
	if z <= r.StartZ {
		return r.Base
	}
	return r.Base + (z-r.StartZ)*r.Slope
}

func (r *Ramp) GetParams() map[string]float64 {
	return map[string]float64{
		"slope":   r.Slope,
		"base":    r.Base,
		"start_z": r.StartZ,
	}
}

func (r *Ramp) SetParam(name string, value float64) error {
	switch name {
	case "slope":
		r.Slope = value
	case "base":
		r.Base = value
	case "start_z":
		r.StartZ = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
