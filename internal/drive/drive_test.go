package drive

import (
	"math"
	"testing"

	"github.com/futuroptimist/strider/internal/scene"
)

func TestConstantMovesAlongHeading(t *testing.T) {
	root := scene.NewNode("avatar")
	src := NewConstant(2.0, 0)

	linear, angular := src.Advance(root, 0, 0.5)
	if linear != 2.0 || angular != 0 {
		t.Errorf("reported speeds (%v,%v), want (2,0)", linear, angular)
	}
	// Default heading is +Z.
	if math.Abs(root.Position.Z-1.0) > 1e-12 || math.Abs(root.Position.X) > 1e-12 {
		t.Errorf("root moved to %+v, want (0,0,1)", root.Position)
	}
}

func TestConstantTurnCurvesPath(t *testing.T) {
	root := scene.NewNode("avatar")
	src := NewConstant(1.0, math.Pi/2)

	for i := 0; i < 100; i++ {
		src.Advance(root, float64(i)*0.01, 0.01)
	}
	// One second at pi/2 rad/s turns the heading a quarter circle.
	if math.Abs(root.Rotation.Y-math.Pi/2) > 1e-9 {
		t.Errorf("heading = %v, want %v", root.Rotation.Y, math.Pi/2)
	}
	if root.Position.X <= 0 {
		t.Error("turning left should bend the path toward +X")
	}
}

func TestScriptSchedule(t *testing.T) {
	src := NewScript([]Segment{
		{Duration: 1, Linear: 0.5},
		{Duration: 2, Linear: 2.0, Angular: 0.3},
	}, false)

	root := scene.NewNode("avatar")

	linear, _ := src.Advance(root, 0.5, 0.016)
	if linear != 0.5 {
		t.Errorf("segment 1 speed = %v, want 0.5", linear)
	}

	linear, angular := src.Advance(root, 1.5, 0.016)
	if linear != 2.0 || angular != 0.3 {
		t.Errorf("segment 2 speeds = (%v,%v), want (2,0.3)", linear, angular)
	}

	// Past the end a non-looping script halts.
	linear, angular = src.Advance(root, 5, 0.016)
	if linear != 0 || angular != 0 {
		t.Errorf("expected halt after schedule end, got (%v,%v)", linear, angular)
	}
}

func TestScriptLoops(t *testing.T) {
	src := NewScript([]Segment{
		{Duration: 1, Linear: 1},
		{Duration: 1, Linear: 2},
	}, true)
	root := scene.NewNode("avatar")

	linear, _ := src.Advance(root, 2.5, 0.016)
	if linear != 1 {
		t.Errorf("looped schedule at t=2.5 should replay segment 1, got %v", linear)
	}
}

func TestWaypointReachesCourse(t *testing.T) {
	src := NewWaypoint([]Point{{X: 0, Z: 3}, {X: 3, Z: 3}}, 1.5)
	root := scene.NewNode("avatar")

	dt := 0.02
	for i := 0; i < 2000 && !src.Done(); i++ {
		src.Advance(root, float64(i)*dt, dt)
	}

	if !src.Done() {
		t.Fatal("course not completed in time")
	}
	last := src.Points[len(src.Points)-1]
	dist := math.Hypot(root.Position.X-last.X, root.Position.Z-last.Z)
	if dist > src.ArriveRadius+1e-9 {
		t.Errorf("final distance to last waypoint = %v", dist)
	}
}

func TestWaypointTurnRateLimited(t *testing.T) {
	// Target directly behind: the commanded turn must clamp at TurnRate.
	src := NewWaypoint([]Point{{X: 0, Z: -5}}, 1.0)
	root := scene.NewNode("avatar")

	_, angular := src.Advance(root, 0, 0.02)
	if math.Abs(angular) > src.TurnRate+1e-9 {
		t.Errorf("angular speed %v exceeds turn rate %v", angular, src.TurnRate)
	}
}

func TestWaypointEmptyCourse(t *testing.T) {
	src := NewWaypoint(nil, 1.0)
	root := scene.NewNode("avatar")
	linear, angular := src.Advance(root, 0, 0.02)
	if linear != 0 || angular != 0 {
		t.Errorf("empty course should stand still, got (%v,%v)", linear, angular)
	}
}
