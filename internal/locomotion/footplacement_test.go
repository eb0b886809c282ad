package locomotion

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/futuroptimist/strider/internal/mathutil"
	"github.com/futuroptimist/strider/internal/scene"
)

// buildRig returns a root at the given height with two feet offset laterally
// by +-0.25 and a pelvis, all refreshed.
func buildRig(rootY float64) (root, left, right, pelvis *scene.Node) {
	root = scene.NewNode("avatar")
	root.Position = mathutil.Vec3{Y: rootY}

	left = scene.NewNode("foot_l")
	left.Position = mathutil.Vec3{X: -0.25}
	right = scene.NewNode("foot_r")
	right.Position = mathutil.Vec3{X: 0.25}
	pelvis = scene.NewNode("pelvis")

	root.AddChild(left)
	root.AddChild(right)
	root.AddChild(pelvis)
	root.UpdateHierarchy()
	return root, left, right, pelvis
}

func flatSampler(h float64) HeightSampler {
	return func(x, z float64, foot Foot) float64 { return h }
}

func TestConstructionRequiresFeet(t *testing.T) {
	_, _, right, _ := buildRig(0)

	_, err := NewFootPlacementController(nil, right, nil, DefaultFootPlacementConfig(), nil)
	if !errors.Is(err, ErrMissingFootNode) {
		t.Fatalf("expected ErrMissingFootNode, got %v", err)
	}
	if !strings.Contains(err.Error(), "left") {
		t.Errorf("error should name the missing foot: %v", err)
	}

	_, err = NewFootPlacementController(right, nil, nil, DefaultFootPlacementConfig(), nil)
	if err == nil || !strings.Contains(err.Error(), "right") {
		t.Errorf("error should name the right foot: %v", err)
	}
}

func TestInstantSettleScenario(t *testing.T) {
	// Feet at +-0.25 on an avatar at height 1, instantaneous smoothing,
	// left terrain at 0.05 and right at 0.2.
	root, left, right, pelvis := buildRig(1)

	cfg := DefaultFootPlacementConfig()
	cfg.MaxFootOffset = 1
	cfg.FootRate = math.Inf(1)
	cfg.PelvisRate = math.Inf(1)
	cfg.PelvisWeight = 1
	cfg.MaxPelvisOffset = 0.5

	ctrl, err := NewFootPlacementController(left, right, pelvis, cfg, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	sample := func(x, z float64, foot Foot) float64 {
		if foot == FootLeft {
			return 0.05
		}
		return 0.2
	}

	root.UpdateHierarchy()
	ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: sample})

	if math.Abs(left.Position.Y-(-0.95)) > 1e-9 {
		t.Errorf("left foot local Y = %v, want -0.95", left.Position.Y)
	}
	if math.Abs(right.Position.Y-(-0.8)) > 1e-9 {
		t.Errorf("right foot local Y = %v, want -0.8", right.Position.Y)
	}
	// Mean offset -0.875 clamped to the 0.5 pelvis limit.
	if math.Abs(pelvis.Position.Y-(-0.5)) > 1e-9 {
		t.Errorf("pelvis local Y = %v, want -0.5", pelvis.Position.Y)
	}

	ctrl.Dispose()
	if left.Position.Y != 0 || right.Position.Y != 0 || pelvis.Position.Y != 0 {
		t.Errorf("dispose should restore base transforms: %v %v %v",
			left.Position.Y, right.Position.Y, pelvis.Position.Y)
	}
}

func TestOffsetMonotoneAndBounded(t *testing.T) {
	root, left, right, _ := buildRig(0)
	cfg := DefaultFootPlacementConfig()

	ctrl, err := NewFootPlacementController(left, right, nil, cfg, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	// Terrain far above the clamp range: offset should climb toward
	// +MaxFootOffset without overshooting or reversing.
	sample := flatSampler(5)
	prev := 0.0
	for i := 0; i < 400; i++ {
		root.UpdateHierarchy()
		ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: sample})
		off := ctrl.Report(FootLeft).Offset
		if off < prev-1e-12 {
			t.Fatalf("offset reversed at frame %d: %v < %v", i, off, prev)
		}
		if off > cfg.MaxFootOffset+1e-12 {
			t.Fatalf("offset exceeded MaxFootOffset: %v", off)
		}
		prev = off
	}
	if math.Abs(prev-cfg.MaxFootOffset) > 1e-3 {
		t.Errorf("offset should converge to MaxFootOffset, got %v", prev)
	}
}

func TestContactFiresOncePerSettle(t *testing.T) {
	root, left, right, _ := buildRig(0)
	cfg := DefaultFootPlacementConfig()
	cfg.FootRate = math.Inf(1)

	var events []ContactEvent
	ctrl, err := NewFootPlacementController(left, right, nil, cfg, func(e ContactEvent) {
		events = append(events, e)
	})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	step := func(h float64) {
		root.UpdateHierarchy()
		ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: flatSampler(h)})
	}

	// First settle: both feet land at once.
	step(0.05)
	if len(events) != 2 {
		t.Fatalf("expected 2 contact events after first settle, got %d", len(events))
	}

	// Staying settled must not re-fire.
	for i := 0; i < 10; i++ {
		step(0.05)
	}
	if len(events) != 2 {
		t.Fatalf("settled feet re-fired contact events: %d", len(events))
	}

	// Unsettle (slow rate so the offset lags the new target), then
	// re-settle: one more event per foot.
	ctrl.cfg.FootRate = 2
	step(0.12)
	if ctrl.Report(FootLeft).InContact {
		t.Fatal("foot should be unsettled right after the terrain jump")
	}
	ctrl.cfg.FootRate = math.Inf(1)
	step(0.12)
	if len(events) != 4 {
		t.Errorf("expected 4 events after re-settle, got %d", len(events))
	}

	for _, e := range events {
		if e.Foot != FootLeft && e.Foot != FootRight {
			t.Errorf("event carries unknown foot label %q", e.Foot)
		}
		if e.DistanceToTarget > ctrl.cfg.ContactTolerance {
			t.Errorf("event fired outside tolerance: %v", e.DistanceToTarget)
		}
	}
}

func TestZeroSlopeDistanceStaysFinite(t *testing.T) {
	root, left, right, _ := buildRig(0)
	cfg := DefaultFootPlacementConfig()
	cfg.SlopeSampleDistance = 0

	ctrl, err := NewFootPlacementController(left, right, nil, cfg, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	sample := func(x, z float64, foot Foot) float64 { return 0.3 * z }
	for i := 0; i < 100; i++ {
		root.UpdateHierarchy()
		ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: sample})
		rot := ctrl.Report(FootLeft).RotationOffset
		if math.IsNaN(rot) || math.IsInf(rot, 0) {
			t.Fatalf("rotation went non-finite at frame %d", i)
		}
	}
	if math.Abs(ctrl.Report(FootLeft).RotationOffset) > 1e-6 {
		t.Errorf("zero sample distance should converge rotation to 0, got %v",
			ctrl.Report(FootLeft).RotationOffset)
	}
}

func TestSlopeFollowsRampAndClamps(t *testing.T) {
	root, left, right, _ := buildRig(0)
	cfg := DefaultFootPlacementConfig()
	cfg.RotationRate = math.Inf(1)

	ctrl, err := NewFootPlacementController(left, right, nil, cfg, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	// Extreme grade: rotation must clamp at MaxFootPitch.
	sample := func(x, z float64, foot Foot) float64 { return 10 * z }
	root.UpdateHierarchy()
	ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: sample})

	rot := ctrl.Report(FootLeft).RotationOffset
	if math.Abs(rot-cfg.MaxFootPitch) > 1e-9 {
		t.Errorf("rotation = %v, want clamp at %v", rot, cfg.MaxFootPitch)
	}
	if left.Rotation.X != rot {
		t.Errorf("rotation offset not applied to node pitch: %v vs %v", left.Rotation.X, rot)
	}
}

func TestNonFiniteSamplesNormalized(t *testing.T) {
	root, left, right, _ := buildRig(0)
	cfg := DefaultFootPlacementConfig()
	cfg.FootRate = math.Inf(1)

	ctrl, err := NewFootPlacementController(left, right, nil, cfg, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	root.UpdateHierarchy()
	ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: func(x, z float64, foot Foot) float64 {
		return math.NaN()
	}})

	rep := ctrl.Report(FootLeft)
	if rep.WorldHeight != 0 {
		t.Errorf("NaN sample should read as height 0, got %v", rep.WorldHeight)
	}
	if math.IsNaN(left.Position.Y) {
		t.Error("NaN propagated into the node transform")
	}
}

func TestDisposeIdempotentAndResetsContact(t *testing.T) {
	root, left, right, pelvis := buildRig(0)
	left.Rotation.X = 0.1

	cfg := DefaultFootPlacementConfig()
	cfg.FootRate = math.Inf(1)

	fired := 0
	ctrl, err := NewFootPlacementController(left, right, pelvis, cfg, func(ContactEvent) { fired++ })
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	root.UpdateHierarchy()
	ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: flatSampler(0.05)})
	fired = 0

	ctrl.Dispose()
	ctrl.Dispose()

	if left.Position.Y != 0 || left.Rotation.X != 0.1 {
		t.Errorf("dispose should restore captured base transform, got Y=%v pitch=%v",
			left.Position.Y, left.Rotation.X)
	}

	// A settled foot right after dispose must not re-fire.
	root.UpdateHierarchy()
	ctrl.Update(FrameInput{Delta: 0.016, SampleHeight: flatSampler(0)})
	if fired != 0 {
		t.Errorf("contact re-fired immediately after dispose: %d", fired)
	}
}

func TestNilSamplerReadsZero(t *testing.T) {
	root, left, right, _ := buildRig(0.1)
	cfg := DefaultFootPlacementConfig()
	cfg.FootRate = math.Inf(1)

	ctrl, err := NewFootPlacementController(left, right, nil, cfg, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	root.UpdateHierarchy()
	ctrl.Update(FrameInput{Delta: 0.016})
	if math.Abs(ctrl.Report(FootLeft).Offset-(-0.1)) > 1e-9 {
		t.Errorf("nil sampler should behave as flat height 0, offset %v",
			ctrl.Report(FootLeft).Offset)
	}
}
