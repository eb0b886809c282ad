package locomotion_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futuroptimist/strider/internal/anim"
	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/mathutil"
	"github.com/futuroptimist/strider/internal/scene"
)

var _ = Describe("BlendAnimator", func() {
	var blender *locomotion.BlendAnimator

	newBlender := func(cfg locomotion.BlendConfig) *locomotion.BlendAnimator {
		b, err := locomotion.NewBlendAnimator(anim.NewPlayer(), locomotion.ClipSet{
			Idle:      anim.Clip{Name: "idle", Duration: 2},
			Walk:      anim.Clip{Name: "walk", Duration: 1},
			Run:       anim.Clip{Name: "run", Duration: 0.8},
			TurnLeft:  anim.Clip{Name: "turn_left", Duration: 1.2},
			TurnRight: anim.Clip{Name: "turn_right", Duration: 1.2},
		}, cfg)
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	BeforeEach(func() {
		blender = newBlender(locomotion.BlendConfig{
			MaxLinearSpeed: 3,
			LinearRate:     math.Inf(1),
			TurnRate:       math.Inf(1),
		})
	})

	It("keeps every weight inside [0,1] across the speed range", func() {
		for speed := 0.0; speed <= 3.0; speed += 0.01 {
			blender.Update(0.016, speed, 0)
			w := blender.Weights()
			Expect(w.Idle).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
			Expect(w.Walk).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
			Expect(w.Run).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
		}
	})

	It("keeps locomotion mass near 1 while no overlay is active", func() {
		for speed := 0.0; speed <= 3.0; speed += 0.05 {
			blender.Update(0.016, speed, 0)
			w := blender.Weights()
			Expect(w.Idle + w.Walk + w.Run).To(BeNumerically("~", 1, 1e-9))
		}
	})

	It("shrinks locomotion mass proportionally as the overlay grows", func() {
		blender.Update(0.016, 0, 0)
		cfg := blender.Config()

		prevMass := 2.0
		for ang := cfg.TurnThreshold; ang <= cfg.TurnMax*1.5; ang += 0.05 {
			blender.Update(0.016, 0, ang)
			w := blender.Weights()
			mass := w.Idle + w.Walk + w.Run
			Expect(mass).To(BeNumerically("<=", prevMass+1e-9))
			prevMass = mass
		}
		// Past saturation the floor is the 15% remainder.
		Expect(prevMass).To(BeNumerically("~", 0.15, 1e-9))
	})

	It("never emits negative weights from adversarial thresholds", func() {
		b := newBlender(locomotion.BlendConfig{
			MaxLinearSpeed: 0.5,
			IdleToWalk:     0.5,
			WalkToRun:      0.1,
			LinearRate:     math.Inf(1),
		})
		for speed := 0.0; speed <= 0.5; speed += 0.01 {
			b.Update(0.016, speed, 0)
			w := b.Weights()
			Expect(math.Min(w.Idle, math.Min(w.Walk, w.Run))).To(BeNumerically(">=", 0))
		}
	})
})

var _ = Describe("FootPlacementController", func() {
	It("bounds the offset for any constant target height", func() {
		root := scene.NewNode("avatar")
		left := scene.NewNode("foot_l")
		left.Position = mathutil.Vec3{X: -0.25}
		right := scene.NewNode("foot_r")
		right.Position = mathutil.Vec3{X: 0.25}
		root.AddChild(left)
		root.AddChild(right)
		root.UpdateHierarchy()

		cfg := locomotion.DefaultFootPlacementConfig()
		ctrl, err := locomotion.NewFootPlacementController(left, right, nil, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		for _, height := range []float64{-4, -0.1, 0, 0.1, 4} {
			for i := 0; i < 120; i++ {
				root.UpdateHierarchy()
				ctrl.Update(locomotion.FrameInput{
					Delta:        0.016,
					SampleHeight: func(x, z float64, foot locomotion.Foot) float64 { return height },
				})
				off := ctrl.Report(locomotion.FootLeft).Offset
				Expect(math.Abs(off)).To(BeNumerically("<=", cfg.MaxFootOffset+1e-12))
			}
		}
	})
})
