package terrain

import "fmt"

// NewField constructs a named analytic field with its defaults.
func NewField(name string) (Field, error) {
	switch name {
	case "flat":
		return NewFlat(), nil
	case "ramp":
		return NewRamp(), nil
	case "stairs":
		return NewStairs(), nil
	case "hills":
		return NewHills(), nil
	default:
		return nil, fmt.Errorf("unknown terrain: %s (available: %v)", name, Names())
	}
}

// Names lists the analytic fields constructible by NewField. Grid fields
// are loaded from heightmap files instead.
func Names() []string {
	return []string{"flat", "ramp", "stairs", "hills"}
}
