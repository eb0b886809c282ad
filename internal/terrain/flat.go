package terrain

import "fmt"

// Flat is a level floor at a fixed height.
type Flat struct {
	Height float64
}

func NewFlat() *Flat {
	return &Flat{Height: 0}
}

func (f *Flat) Name() string { return "flat" }

func (f *Flat) HeightAt(x, z float64) float64 {
	return f.Height
}

func (f *Flat) GetParams() map[string]float64 {
	return map[string]float64{"height": f.Height}
}

func (f *Flat) SetParam(name string, value float64) error {
	switch name {
	case "height":
		f.Height = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
