// Package terrain provides the height fields avatars walk over: analytic
// floor models plus a sampled grid, all queried point-wise in world XZ.
package terrain

// Field is a height field over the ground plane.
type Field interface {
	Name() string
	HeightAt(x, z float64) float64
}

// ParamField is implemented by fields with tunable parameters.
type ParamField interface {
	Field
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
