package drive

import "github.com/futuroptimist/strider/internal/scene"

// Constant moves at fixed linear and angular speed.
type Constant struct {
	Linear  float64
	Angular float64
}

func NewConstant(linear, angular float64) *Constant {
	return &Constant{Linear: linear, Angular: angular}
}

func (c *Constant) Advance(root *scene.Node, t, dt float64) (float64, float64) {
	step(root, c.Linear, c.Angular, dt)
	return c.Linear, c.Angular
}
