package drive

import (
	"math"

	"github.com/futuroptimist/strider/internal/scene"
)

// Point is an XZ target on the floor plan.
type Point struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// Waypoint steers toward successive points, slowing into each arrival and
// limiting the turn rate so heading changes stay continuous.
type Waypoint struct {
	Points       []Point
	MaxSpeed     float64
	TurnRate     float64 // max |angular| in rad/s
	ArriveRadius float64
	SlowRadius   float64
	Loop         bool

	next int
	done bool
}

func NewWaypoint(points []Point, maxSpeed float64) *Waypoint {
	return &Waypoint{
		Points:       points,
		MaxSpeed:     maxSpeed,
		TurnRate:     2.0,
		ArriveRadius: 0.15,
		SlowRadius:   1.0,
	}
}

func (w *Waypoint) Advance(root *scene.Node, t, dt float64) (float64, float64) {
	if w.done || len(w.Points) == 0 || w.MaxSpeed <= 0 {
		return 0, 0
	}

	target := w.Points[w.next]
	dx := target.X - root.Position.X
	dz := target.Z - root.Position.Z
	dist := math.Hypot(dx, dz)

	if dist <= w.ArriveRadius {
		w.next++
		if w.next >= len(w.Points) {
			if w.Loop {
				w.next = 0
			} else {
				w.done = true
				return 0, 0
			}
		}
		target = w.Points[w.next]
		dx = target.X - root.Position.X
		dz = target.Z - root.Position.Z
		dist = math.Hypot(dx, dz)
	}

	// Shortest signed heading error in (-pi, pi].
	desired := math.Atan2(dx, dz)
	diff := desired - root.Rotation.Y
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff <= -math.Pi {
		diff += 2 * math.Pi
	}

	angular := diff / math.Max(dt, 1e-6)
	if angular > w.TurnRate {
		angular = w.TurnRate
	}
	if angular < -w.TurnRate {
		angular = -w.TurnRate
	}

	linear := w.MaxSpeed
	if w.SlowRadius > 0 && dist < w.SlowRadius {
		linear = w.MaxSpeed * dist / w.SlowRadius
	}
	// Walking into a sharp turn looks wrong; crawl until mostly aligned.
	if math.Abs(diff) > math.Pi/3 {
		linear *= 0.2
	}

	step(root, linear, angular, dt)
	return linear, angular
}

// Done reports whether a non-looping course has been completed.
func (w *Waypoint) Done() bool {
	return w.done
}
