// Package locomotion contains the avatar's per-frame motion control: foot
// placement over sampled terrain height and velocity-driven blending of
// locomotion animation clips. Both controllers are single-threaded and
// frame-driven; one caller constructs them, calls Update once per rendered
// frame, and disposes them when the avatar leaves the scene.
package locomotion

import (
	"fmt"
	"math"

	"github.com/futuroptimist/strider/internal/mathutil"
	"github.com/futuroptimist/strider/internal/scene"
)

// Foot labels the avatar's feet.
type Foot string

const (
	FootLeft  Foot = "left"
	FootRight Foot = "right"
)

// HeightSampler returns terrain height at a world XZ position. It must be
// synchronous; non-finite results are normalized to 0 by the controller.
type HeightSampler func(x, z float64, foot Foot) float64

// ContactEvent is emitted once per settle: when a foot's damped offset first
// converges within tolerance of its target.
type ContactEvent struct {
	Foot             Foot
	WorldHeight      float64
	Offset           float64
	TargetOffset     float64
	SlopeAngle       float64
	DistanceToTarget float64
}

// Default foot placement parameters.
const (
	DefaultMaxFootOffset       = 0.18
	DefaultMaxFootPitch        = math.Pi / 6
	DefaultSlopeSampleDistance = 0.42
	DefaultFootRate            = 12.0
	DefaultRotationRate        = 10.0
	DefaultPelvisRate          = 8.0
	DefaultPelvisWeight        = 0.6
	DefaultMaxPelvisOffset     = 0.12
	DefaultContactTolerance    = 0.015

	minTolerance = 1e-5
	minRate      = 1e-4
)

// FootPlacementConfig tunes the foot placement controller. Zero values are
// honored where they have meaning (a zero slope sample distance disables
// slope following); malformed values are floored so no configuration can
// produce divide-by-zero or NaN transforms.
type FootPlacementConfig struct {
	MaxFootOffset       float64
	MaxFootPitch        float64
	SlopeSampleDistance float64
	FootRate            float64
	RotationRate        float64
	PelvisRate          float64
	PelvisWeight        float64
	MaxPelvisOffset     float64
	ContactTolerance    float64
}

func DefaultFootPlacementConfig() FootPlacementConfig {
	return FootPlacementConfig{
		MaxFootOffset:       DefaultMaxFootOffset,
		MaxFootPitch:        DefaultMaxFootPitch,
		SlopeSampleDistance: DefaultSlopeSampleDistance,
		FootRate:            DefaultFootRate,
		RotationRate:        DefaultRotationRate,
		PelvisRate:          DefaultPelvisRate,
		PelvisWeight:        DefaultPelvisWeight,
		MaxPelvisOffset:     DefaultMaxPelvisOffset,
		ContactTolerance:    DefaultContactTolerance,
	}
}

func (c *FootPlacementConfig) sanitize() {
	c.MaxFootOffset = math.Max(mathutil.Finite(c.MaxFootOffset, DefaultMaxFootOffset), 0)
	c.MaxFootPitch = math.Max(mathutil.Finite(c.MaxFootPitch, DefaultMaxFootPitch), 0)
	c.SlopeSampleDistance = math.Max(mathutil.Finite(c.SlopeSampleDistance, DefaultSlopeSampleDistance), 0)
	if math.IsNaN(c.FootRate) || c.FootRate < minRate {
		c.FootRate = minRate
	}
	if math.IsNaN(c.RotationRate) || c.RotationRate < minRate {
		c.RotationRate = minRate
	}
	if math.IsNaN(c.PelvisRate) || c.PelvisRate < minRate {
		c.PelvisRate = minRate
	}
	c.PelvisWeight = math.Max(mathutil.Finite(c.PelvisWeight, DefaultPelvisWeight), 0)
	c.MaxPelvisOffset = math.Max(mathutil.Finite(c.MaxPelvisOffset, DefaultMaxPelvisOffset), 0)
	if math.IsNaN(c.ContactTolerance) || c.ContactTolerance < minTolerance {
		c.ContactTolerance = minTolerance
	}
}

// FrameInput carries one frame of input to Update.
type FrameInput struct {
	Delta        float64
	SampleHeight HeightSampler
}

// FootReport is a read-only view of one foot's current state.
type FootReport struct {
	Foot           Foot
	Offset         float64
	TargetOffset   float64
	RotationOffset float64
	SlopeAngle     float64
	WorldHeight    float64
	InContact      bool
}

type footState struct {
	label          Foot
	node           *scene.Node
	baseY          float64
	basePitch      float64
	offset         float64
	rotationOffset float64
	targetOffset   float64
	slopeAngle     float64
	worldHeight    float64
	contactActive  bool
}

type pelvisState struct {
	node   *scene.Node
	baseY  float64
	offset float64
}

// FootPlacementController adjusts each foot's vertical position and pitch so
// it rests on sampled terrain height, with a secondary pelvis settle from the
// mean foot offset. The caller must resolve ancestor transforms before each
// Update; the controller refreshes only the foot and pelvis nodes themselves.
type FootPlacementController struct {
	cfg       FootPlacementConfig
	feet      [2]*footState
	pelvis    *pelvisState
	onContact func(ContactEvent)
}

// NewFootPlacementController builds a controller for the given foot nodes.
// pelvis and onContact may be nil. It fails fast when either foot node is
// absent, naming the missing side.
func NewFootPlacementController(left, right, pelvis *scene.Node, cfg FootPlacementConfig, onContact func(ContactEvent)) (*FootPlacementController, error) {
	if left == nil {
		return nil, fmt.Errorf("%w: left", ErrMissingFootNode)
	}
	if right == nil {
		return nil, fmt.Errorf("%w: right", ErrMissingFootNode)
	}
	cfg.sanitize()

	c := &FootPlacementController{
		cfg: cfg,
		feet: [2]*footState{
			{label: FootLeft, node: left, baseY: left.Position.Y, basePitch: left.Rotation.X},
			{label: FootRight, node: right, baseY: right.Position.Y, basePitch: right.Rotation.X},
		},
		onContact: onContact,
	}
	if pelvis != nil {
		c.pelvis = &pelvisState{node: pelvis, baseY: pelvis.Position.Y}
	}
	return c, nil
}

// Update runs one frame of foot placement. SampleHeight is invoked
// synchronously; a panic raised by it propagates to the caller.
func (c *FootPlacementController) Update(in FrameInput) {
	delta := in.Delta
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}
	sample := in.SampleHeight
	if sample == nil {
		sample = func(x, z float64, foot Foot) float64 { return 0 }
	}

	for _, f := range c.feet {
		c.updateFoot(f, delta, sample)
	}

	if c.pelvis != nil {
		mean := (c.feet[0].offset + c.feet[1].offset) * 0.5
		target := mathutil.Clamp(mean*c.cfg.PelvisWeight, -c.cfg.MaxPelvisOffset, c.cfg.MaxPelvisOffset)
		c.pelvis.offset = mathutil.Damp(c.pelvis.offset, target, c.cfg.PelvisRate, delta)
		c.pelvis.node.Position.Y = c.pelvis.baseY + c.pelvis.offset
	}
}

func (c *FootPlacementController) updateFoot(f *footState, delta float64, sample HeightSampler) {
	f.node.UpdateWorld()
	wp := f.node.WorldPosition()

	unOffset := wp.Y - f.offset
	height := mathutil.Finite(sample(wp.X, wp.Z, f.label), 0)
	f.worldHeight = height

	f.targetOffset = mathutil.Clamp(height-unOffset, -c.cfg.MaxFootOffset, c.cfg.MaxFootOffset)
	f.offset = mathutil.Damp(f.offset, f.targetOffset, c.cfg.FootRate, delta)
	f.node.Position.Y = f.baseY + f.offset

	f.slopeAngle = c.slopeAt(f, wp, sample)
	f.rotationOffset = mathutil.Damp(f.rotationOffset, f.slopeAngle, c.cfg.RotationRate, delta)
	f.node.Rotation.X = f.basePitch + f.rotationOffset

	dist := math.Abs(f.offset - f.targetOffset)
	inContact := dist <= c.cfg.ContactTolerance
	if inContact && !f.contactActive && c.onContact != nil {
		c.onContact(ContactEvent{
			Foot:             f.label,
			WorldHeight:      f.worldHeight,
			Offset:           f.offset,
			TargetOffset:     f.targetOffset,
			SlopeAngle:       f.slopeAngle,
			DistanceToTarget: dist,
		})
	}
	f.contactActive = inContact
}

func (c *FootPlacementController) slopeAt(f *footState, wp mathutil.Vec3, sample HeightSampler) float64 {
	fwd := f.node.WorldQuaternion().Rotate(mathutil.Vec3{Z: 1}).FlattenY()
	if fwd.Len() < mathutil.Epsilon {
		// Foot pointing straight up/down: fall back to the default axis.
		fwd = mathutil.Vec3{Z: 1}
	} else {
		fwd = fwd.Normalize()
	}

	d := c.cfg.SlopeSampleDistance
	ahead := mathutil.Finite(sample(wp.X+fwd.X*d, wp.Z+fwd.Z*d, f.label), 0)
	behind := mathutil.Finite(sample(wp.X-fwd.X*d, wp.Z-fwd.Z*d, f.label), 0)

	slope := math.Atan2(ahead-behind, 2*math.Max(d, mathutil.Epsilon))
	return mathutil.Clamp(slope, -c.cfg.MaxFootPitch, c.cfg.MaxFootPitch)
}

// Report returns the current state of one foot.
func (c *FootPlacementController) Report(foot Foot) FootReport {
	f := c.feet[0]
	if foot == FootRight {
		f = c.feet[1]
	}
	return FootReport{
		Foot:           f.label,
		Offset:         f.offset,
		TargetOffset:   f.targetOffset,
		RotationOffset: f.rotationOffset,
		SlopeAngle:     f.slopeAngle,
		WorldHeight:    f.worldHeight,
		InContact:      f.contactActive,
	}
}

// PelvisOffset returns the current pelvis settle offset, 0 without a pelvis.
func (c *FootPlacementController) PelvisOffset() float64 {
	if c.pelvis == nil {
		return 0
	}
	return c.pelvis.offset
}

// Dispose restores every controlled node to its construction-time local
// transform and marks all feet settled so a reuse does not immediately
// re-fire contact events. It is idempotent.
func (c *FootPlacementController) Dispose() {
	for _, f := range c.feet {
		f.node.Position.Y = f.baseY
		f.node.Rotation.X = f.basePitch
		f.offset = 0
		f.rotationOffset = 0
		f.targetOffset = 0
		f.contactActive = true
	}
	if c.pelvis != nil {
		c.pelvis.node.Position.Y = c.pelvis.baseY
		c.pelvis.offset = 0
	}
}
