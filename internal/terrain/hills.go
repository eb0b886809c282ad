package terrain

import (
	"fmt"
	"math"
)

// Hills is a gently rolling floor built from two crossed sine waves.
type Hills struct {
	Amplitude float64
	WaveX     float64 // wavelength along X
	WaveZ     float64 // wavelength along Z
}

func NewHills() *Hills {
	return &Hills{
		Amplitude: 0.14,
		WaveX:     5.0,
		WaveZ:     7.0,
	}
}

func (h *Hills) Name() string { return "hills" }

func (h *Hills) HeightAt(x, z float64) float64 {
	if h.WaveX <= 0 || h.WaveZ <= 0 {
		return 0
	}
	return h.Amplitude * 0.5 * (math.Sin(2*math.Pi*x/h.WaveX) + math.Sin(2*math.Pi*z/h.WaveZ))
}

func (h *Hills) GetParams() map[string]float64 {
	return map[string]float64{
		"amplitude": h.Amplitude,
		"wave_x":    h.WaveX,
		"wave_z":    h.WaveZ,
	}
}

func (h *Hills) SetParam(name string, value float64) error {
	switch name {
	case "amplitude":
		h.Amplitude = value
	case "wave_x":
		h.WaveX = value
	case "wave_z":
		h.WaveZ = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
