package locomotion

import (
	"fmt"
	"math"

	"github.com/futuroptimist/strider/internal/anim"
	"github.com/futuroptimist/strider/internal/mathutil"
)

// LinearState is the dominant locomotion pose.
type LinearState string

const (
	LinearIdle LinearState = "idle"
	LinearWalk LinearState = "walk"
	LinearRun  LinearState = "run"
)

// TurnState is the dominant turn overlay direction.
type TurnState string

const (
	TurnNone  TurnState = "none"
	TurnLeft  TurnState = "left"
	TurnRight TurnState = "right"
)

// ClipSet names the clips the blender drives. Idle, walk and run are
// mandatory; turn overlays are optional (empty Name disables them).
type ClipSet struct {
	Idle      anim.Clip
	Walk      anim.Clip
	Run       anim.Clip
	TurnLeft  anim.Clip
	TurnRight anim.Clip
}

// BlendWeights holds the five damped blend weights. They are individually
// in [0,1] but do not sum to 1: turn overlays scale the locomotion weights
// down rather than replacing them.
type BlendWeights struct {
	Idle      float64
	Walk      float64
	Run       float64
	TurnLeft  float64
	TurnRight float64
}

// TimeScales holds per-clip playback-speed multipliers. Idle is always 1.
type TimeScales struct {
	Idle      float64
	Walk      float64
	Run       float64
	TurnLeft  float64
	TurnRight float64
}

// Snapshot is the read-only derived view refreshed at the end of each Update.
type Snapshot struct {
	LinearState  LinearState
	TurnState    TurnState
	LinearSpeed  float64
	AngularSpeed float64
	Weights      BlendWeights
	TimeScales   TimeScales
}

// Blend parameter derivation constants (fractions of MaxLinearSpeed unless
// noted). Thresholds not supplied in BlendConfig derive from these.
const (
	idleToWalkFraction   = 0.18
	walkToRunFraction    = 0.55
	linearDeadZoneFrac   = 0.02
	turnSpeedLimitFrac   = 0.25
	walkReferenceFrac    = 0.40
	runReferenceFrac     = 0.85
	minThreshold         = 0.01
	defaultAngularDead   = 0.05 // rad/s
	defaultTurnThreshold = 0.20 // rad/s
	defaultTurnMax       = 1.60 // rad/s
	defaultLinearRate    = 10.0
	defaultTurnRate      = 8.0
	defaultMinTimeScale  = 0.25
	defaultMaxTimeScale  = 2.0

	// turnOverlayDamp is how far a saturated turn overlay scales the
	// locomotion weights down: turning dominates the visual pose without
	// fully erasing the underlying blend.
	turnOverlayDamp = 0.85

	// weightEpsilon is the enable threshold for clip actions.
	weightEpsilon = 1e-3
)

// BlendConfig tunes the blend animator. Only MaxLinearSpeed is mandatory;
// every other field derives a default from it when left zero, and ordering
// constraints (WalkToRun above IdleToWalk, TurnMax above TurnThreshold,
// MaxTimeScale above MinTimeScale) are enforced.
type BlendConfig struct {
	MaxLinearSpeed float64

	IdleRampStart float64
	IdleToWalk    float64
	WalkToRun     float64

	LinearDeadZone  float64
	AngularDeadZone float64

	TurnThreshold        float64
	TurnMax              float64
	TurnLinearSpeedLimit float64

	LinearRate float64
	TurnRate   float64

	WalkReferenceSpeed float64
	RunReferenceSpeed  float64
	TurnReferenceSpeed float64

	MinTimeScale float64
	MaxTimeScale float64
}

func (c *BlendConfig) sanitize() error {
	if math.IsNaN(c.MaxLinearSpeed) || c.MaxLinearSpeed <= 0 {
		return fmt.Errorf("%w: got %f", ErrInvalidMaxSpeed, c.MaxLinearSpeed)
	}
	max := c.MaxLinearSpeed

	if c.IdleToWalk <= 0 {
		c.IdleToWalk = idleToWalkFraction * max
	}
	c.IdleToWalk = math.Max(c.IdleToWalk, minThreshold)
	if c.WalkToRun <= 0 {
		c.WalkToRun = walkToRunFraction * max
	}
	c.WalkToRun = math.Max(c.WalkToRun, minThreshold)
	if c.WalkToRun <= c.IdleToWalk {
		c.WalkToRun = c.IdleToWalk + minThreshold
	}
	c.IdleRampStart = mathutil.Clamp(mathutil.Finite(c.IdleRampStart, 0), 0, c.IdleToWalk)

	if c.LinearDeadZone <= 0 {
		c.LinearDeadZone = linearDeadZoneFrac * max
	}
	if c.AngularDeadZone <= 0 {
		c.AngularDeadZone = defaultAngularDead
	}

	if c.TurnThreshold <= 0 {
		c.TurnThreshold = defaultTurnThreshold
	}
	if c.TurnMax <= 0 {
		c.TurnMax = defaultTurnMax
	}
	if c.TurnMax <= c.TurnThreshold {
		c.TurnMax = c.TurnThreshold + minThreshold
	}
	if c.TurnLinearSpeedLimit <= 0 {
		c.TurnLinearSpeedLimit = turnSpeedLimitFrac * max
	}

	if math.IsNaN(c.LinearRate) || c.LinearRate < minRate {
		c.LinearRate = defaultLinearRate
	}
	if math.IsNaN(c.TurnRate) || c.TurnRate < minRate {
		c.TurnRate = defaultTurnRate
	}

	if c.WalkReferenceSpeed <= 0 {
		c.WalkReferenceSpeed = walkReferenceFrac * max
	}
	c.WalkReferenceSpeed = math.Max(c.WalkReferenceSpeed, mathutil.Epsilon)
	if c.RunReferenceSpeed <= 0 {
		c.RunReferenceSpeed = runReferenceFrac * max
	}
	c.RunReferenceSpeed = math.Max(c.RunReferenceSpeed, mathutil.Epsilon)
	if c.TurnReferenceSpeed <= 0 {
		c.TurnReferenceSpeed = c.TurnMax
	}
	c.TurnReferenceSpeed = math.Max(c.TurnReferenceSpeed, mathutil.Epsilon)

	if c.MinTimeScale <= 0 {
		c.MinTimeScale = defaultMinTimeScale
	}
	if c.MaxTimeScale <= 0 {
		c.MaxTimeScale = defaultMaxTimeScale
	}
	if c.MaxTimeScale < c.MinTimeScale {
		c.MaxTimeScale = c.MinTimeScale
	}
	return nil
}

// BlendAnimator damps blend weights and time scales toward targets derived
// from instantaneous linear/angular speed and applies them to clip actions
// on an externally owned mixer, advancing that mixer's clock each frame.
type BlendAnimator struct {
	cfg   BlendConfig
	mixer anim.Mixer

	idle      anim.Action
	walk      anim.Action
	run       anim.Action
	turnLeft  anim.Action
	turnRight anim.Action

	weights  BlendWeights
	scales   TimeScales
	snapshot Snapshot
	disposed bool
}

// NewBlendAnimator binds the clip set to mixer actions. The mixer and the
// three mandatory clips are required; MaxLinearSpeed must be positive.
func NewBlendAnimator(mixer anim.Mixer, clips ClipSet, cfg BlendConfig) (*BlendAnimator, error) {
	if mixer == nil {
		return nil, ErrMissingMixer
	}
	for _, c := range []struct {
		name string
		clip anim.Clip
	}{
		{"idle", clips.Idle},
		{"walk", clips.Walk},
		{"run", clips.Run},
	} {
		if c.clip.Name == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingClip, c.name)
		}
	}
	if err := cfg.sanitize(); err != nil {
		return nil, err
	}

	b := &BlendAnimator{
		cfg:     cfg,
		mixer:   mixer,
		idle:    mixer.ClipAction(clips.Idle),
		walk:    mixer.ClipAction(clips.Walk),
		run:     mixer.ClipAction(clips.Run),
		weights: BlendWeights{Idle: 1},
		scales:  TimeScales{Idle: 1, Walk: 1, Run: 1, TurnLeft: 1, TurnRight: 1},
	}
	if clips.TurnLeft.Name != "" {
		b.turnLeft = mixer.ClipAction(clips.TurnLeft)
	}
	if clips.TurnRight.Name != "" {
		b.turnRight = mixer.ClipAction(clips.TurnRight)
	}
	b.snapshot = Snapshot{
		LinearState: LinearIdle,
		TurnState:   TurnNone,
		Weights:     b.weights,
		TimeScales:  b.scales,
	}
	return b, nil
}

// Update runs one frame of blending. After Dispose it is a no-op.
func (b *BlendAnimator) Update(delta, linearSpeed, angularSpeed float64) {
	if b.disposed {
		return
	}
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}
	cfg := b.cfg

	speed := mathutil.Clamp(mathutil.Finite(linearSpeed, 0), 0, cfg.MaxLinearSpeed)
	speed = mathutil.DeadZone(speed, cfg.LinearDeadZone)
	ang := mathutil.DeadZone(mathutil.Finite(angularSpeed, 0), cfg.AngularDeadZone)

	idleT := 1 - mathutil.Progress(speed, cfg.IdleRampStart, cfg.IdleToWalk)
	runT := mathutil.Progress(speed, cfg.WalkToRun, cfg.MaxLinearSpeed)
	walkT := mathutil.Clamp(1-idleT-runT, 0, 1)

	var leftT, rightT, turnMix float64
	if speed <= cfg.TurnLinearSpeedLimit && ang != 0 {
		turnMix = mathutil.Progress(math.Abs(ang), cfg.TurnThreshold, cfg.TurnMax)
		switch {
		case ang > 0 && b.turnLeft != nil:
			leftT = turnMix
		case ang < 0 && b.turnRight != nil:
			rightT = turnMix
		default:
			turnMix = 0
		}
	}

	// The overlay scales locomotion weights down by up to 85%.
	scale := 1 - turnOverlayDamp*turnMix
	idleT *= scale
	walkT *= scale
	runT *= scale

	b.weights.Idle = mathutil.Damp(b.weights.Idle, idleT, cfg.LinearRate, delta)
	b.weights.Walk = mathutil.Damp(b.weights.Walk, walkT, cfg.LinearRate, delta)
	b.weights.Run = mathutil.Damp(b.weights.Run, runT, cfg.LinearRate, delta)
	b.weights.TurnLeft = mathutil.Damp(b.weights.TurnLeft, leftT, cfg.TurnRate, delta)
	b.weights.TurnRight = mathutil.Damp(b.weights.TurnRight, rightT, cfg.TurnRate, delta)

	turnScale := mathutil.Clamp(math.Abs(ang)/cfg.TurnReferenceSpeed, cfg.MinTimeScale, cfg.MaxTimeScale)
	b.scales = TimeScales{
		Idle:      1,
		Walk:      mathutil.Clamp(speed/cfg.WalkReferenceSpeed, cfg.MinTimeScale, cfg.MaxTimeScale),
		Run:       mathutil.Clamp(speed/cfg.RunReferenceSpeed, cfg.MinTimeScale, cfg.MaxTimeScale),
		TurnLeft:  turnScale,
		TurnRight: turnScale,
	}

	applyAction(b.idle, b.weights.Idle, b.scales.Idle)
	applyAction(b.walk, b.weights.Walk, b.scales.Walk)
	applyAction(b.run, b.weights.Run, b.scales.Run)
	applyAction(b.turnLeft, b.weights.TurnLeft, b.scales.TurnLeft)
	applyAction(b.turnRight, b.weights.TurnRight, b.scales.TurnRight)

	b.mixer.Update(delta)
	b.refreshSnapshot(speed, ang)
}

func applyAction(a anim.Action, weight, timeScale float64) {
	if a == nil {
		return
	}
	a.SetWeight(weight)
	a.SetTimeScale(timeScale)
	if weight > weightEpsilon {
		a.SetEnabled(true)
		if !a.IsRunning() {
			a.Play()
		}
	} else {
		a.SetEnabled(false)
	}
}

func (b *BlendAnimator) refreshSnapshot(speed, ang float64) {
	// Ties break toward the higher-energy state.
	state := LinearIdle
	switch {
	case b.weights.Run >= b.weights.Walk && b.weights.Run >= b.weights.Idle:
		state = LinearRun
	case b.weights.Walk >= b.weights.Idle:
		state = LinearWalk
	}

	turn := TurnNone
	if b.weights.TurnLeft > weightEpsilon || b.weights.TurnRight > weightEpsilon {
		if b.weights.TurnLeft >= b.weights.TurnRight {
			turn = TurnLeft
		} else {
			turn = TurnRight
		}
	}

	b.snapshot = Snapshot{
		LinearState:  state,
		TurnState:    turn,
		LinearSpeed:  speed,
		AngularSpeed: ang,
		Weights:      b.weights,
		TimeScales:   b.scales,
	}
}

// Snapshot returns the view refreshed by the last Update.
func (b *BlendAnimator) Snapshot() Snapshot {
	return b.snapshot
}

// Weights returns a copy of the current blend weights.
func (b *BlendAnimator) Weights() BlendWeights {
	return b.weights
}

// Config returns the sanitized configuration in effect.
func (b *BlendAnimator) Config() BlendConfig {
	return b.cfg
}

// Dispose stops every clip action. Further Update calls are no-ops.
func (b *BlendAnimator) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for _, a := range []anim.Action{b.idle, b.walk, b.run, b.turnLeft, b.turnRight} {
		if a != nil {
			a.Stop()
		}
	}
}
