package scene

import (
	"math"
	"testing"

	"github.com/futuroptimist/strider/internal/mathutil"
)

func TestWorldPositionChain(t *testing.T) {
	root := NewNode("root")
	root.Position = mathutil.Vec3{X: 0, Y: 1, Z: 0}

	foot := NewNode("foot")
	foot.Position = mathutil.Vec3{X: 0.25, Y: 0, Z: 0}
	root.AddChild(foot)

	root.UpdateHierarchy()

	got := foot.WorldPosition()
	want := mathutil.Vec3{X: 0.25, Y: 1, Z: 0}
	if got != want {
		t.Errorf("world position = %+v, want %+v", got, want)
	}
}

func TestWorldRotationComposes(t *testing.T) {
	root := NewNode("root")
	root.Rotation = mathutil.Vec3{Y: math.Pi / 2}

	child := NewNode("child")
	child.Position = mathutil.Vec3{Z: 2}
	root.AddChild(child)

	root.UpdateHierarchy()

	// Parent yaw rotates the child's local +Z offset onto +X.
	got := child.WorldPosition()
	if math.Abs(got.X-2) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("expected child at (2,0,0), got %+v", got)
	}

	fwd := child.WorldQuaternion().Rotate(mathutil.Vec3{Z: 1})
	if math.Abs(fwd.X-1) > 1e-9 {
		t.Errorf("expected world forward (1,0,0), got %+v", fwd)
	}
}

func TestUpdateWorldPullsFromParentCache(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.AddChild(child)
	root.UpdateHierarchy()

	// Move the root but only refresh the child: the child must read the
	// parent's cached (stale) world transform, not recompute it.
	root.Position = mathutil.Vec3{Y: 5}
	child.UpdateWorld()
	if child.WorldPosition().Y != 0 {
		t.Errorf("child should see stale parent cache, got %+v", child.WorldPosition())
	}

	root.UpdateWorld()
	child.UpdateWorld()
	if child.WorldPosition().Y != 5 {
		t.Errorf("child should follow refreshed parent, got %+v", child.WorldPosition())
	}
}

func TestAddChildRejectsSelf(t *testing.T) {
	n := NewNode("n")
	n.AddChild(n)
	if len(n.Children()) != 0 {
		t.Error("node must not become its own child")
	}
}
