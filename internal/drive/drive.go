// Package drive supplies the per-frame movement signal for an avatar: each
// source steers the avatar root across the ground plane and reports the
// instantaneous linear and angular speed the locomotion blender consumes.
package drive

import (
	"math"

	"github.com/futuroptimist/strider/internal/scene"
)

// Source advances the avatar root by one frame and reports speeds.
type Source interface {
	// Advance moves/rotates root for the frame at time t with step dt and
	// returns the linear speed (units/s) and angular speed (rad/s, positive
	// counterclockwise about +Y) actually applied.
	Advance(root *scene.Node, t, dt float64) (linear, angular float64)
}

// step applies one frame of planar motion along the root's heading.
func step(root *scene.Node, linear, angular, dt float64) {
	root.Rotation.Y += angular * dt
	yaw := root.Rotation.Y
	root.Position.X += math.Sin(yaw) * linear * dt
	root.Position.Z += math.Cos(yaw) * linear * dt
}
