// Package walker drives a complete avatar across a terrain field one frame
// at a time: it advances the movement source, keeps the body at stance
// height over the ground, and updates both locomotion controllers in the
// order their contracts require (ancestor transforms first).
package walker

import (
	"context"

	"github.com/futuroptimist/strider/internal/anim"
	"github.com/futuroptimist/strider/internal/drive"
	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/mathutil"
	"github.com/futuroptimist/strider/internal/terrain"
)

// Default rig geometry.
const (
	DefaultStanceWidth    = 0.5
	DefaultRootHeight     = 1.0
	DefaultBodyFollowRate = 6.0
	DefaultMaxLinearSpeed = 3.0
)

// Options assemble a walker. Zero fields take defaults.
type Options struct {
	StanceWidth    float64
	RootHeight     float64
	BodyFollowRate float64
	Placement      locomotion.FootPlacementConfig
	Blend          locomotion.BlendConfig
	Clips          locomotion.ClipSet
}

// DefaultClips names the stock clip set of the reference avatar.
func DefaultClips() locomotion.ClipSet {
	return locomotion.ClipSet{
		Idle:      anim.Clip{Name: "idle", Duration: 2.4},
		Walk:      anim.Clip{Name: "walk", Duration: 1.0},
		Run:       anim.Clip{Name: "run", Duration: 0.7},
		TurnLeft:  anim.Clip{Name: "turn_left", Duration: 1.1},
		TurnRight: anim.Clip{Name: "turn_right", Duration: 1.1},
	}
}

// Walker owns one avatar's rig, controllers and player over a terrain field.
type Walker struct {
	rig       *Rig
	field     terrain.Field
	src       drive.Source
	placement *locomotion.FootPlacementController
	blender   *locomotion.BlendAnimator
	player    *anim.Player

	bodyFollowRate float64
	rootHeight     float64

	metrics   []Metric
	observers []Observer

	now      float64
	contacts []Contact
}

// New builds a walker over field driven by src.
func New(field terrain.Field, src drive.Source, opts Options) (*Walker, error) {
	if opts.StanceWidth <= 0 {
		opts.StanceWidth = DefaultStanceWidth
	}
	if opts.RootHeight <= 0 {
		opts.RootHeight = DefaultRootHeight
	}
	if opts.BodyFollowRate <= 0 {
		opts.BodyFollowRate = DefaultBodyFollowRate
	}
	if opts.Placement == (locomotion.FootPlacementConfig{}) {
		opts.Placement = locomotion.DefaultFootPlacementConfig()
	}
	if opts.Blend.MaxLinearSpeed <= 0 {
		opts.Blend.MaxLinearSpeed = DefaultMaxLinearSpeed
	}
	if opts.Clips.Idle.Name == "" {
		opts.Clips = DefaultClips()
	}

	rig := NewRig(opts.StanceWidth, opts.RootHeight)

	w := &Walker{
		rig:            rig,
		field:          field,
		src:            src,
		player:         anim.NewPlayer(),
		bodyFollowRate: opts.BodyFollowRate,
		rootHeight:     opts.RootHeight,
	}

	placement, err := locomotion.NewFootPlacementController(
		rig.LeftFoot, rig.RightFoot, rig.Pelvis, opts.Placement,
		func(e locomotion.ContactEvent) {
			w.contacts = append(w.contacts, Contact{T: w.now, ContactEvent: e})
		},
	)
	if err != nil {
		return nil, err
	}
	w.placement = placement

	blender, err := locomotion.NewBlendAnimator(w.player, opts.Clips, opts.Blend)
	if err != nil {
		return nil, err
	}
	w.blender = blender
	return w, nil
}

func (w *Walker) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *Walker) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Step advances one frame and returns its observation.
func (w *Walker) Step(t, dt float64) Frame {
	w.now = t

	linear, angular := w.src.Advance(w.rig.Root, t, dt)

	root := w.rig.Root
	ground := w.field.HeightAt(root.Position.X, root.Position.Z)
	root.Position.Y = mathutil.Damp(root.Position.Y, ground+w.rootHeight, w.bodyFollowRate, dt)
	root.UpdateHierarchy()

	w.placement.Update(locomotion.FrameInput{
		Delta: dt,
		SampleHeight: func(x, z float64, foot locomotion.Foot) float64 {
			return w.field.HeightAt(x, z)
		},
	})
	w.blender.Update(dt, linear, angular)

	return Frame{
		T:            t,
		LinearSpeed:  linear,
		AngularSpeed: angular,
		Root:         root.Position,
		GroundHeight: ground,
		Left:         w.placement.Report(locomotion.FootLeft),
		Right:        w.placement.Report(locomotion.FootRight),
		PelvisOffset: w.placement.PelvisOffset(),
		Snapshot:     w.blender.Snapshot(),
	}
}

// Run executes a full walk under ctx, collecting frames, contact events and
// metric values.
func (w *Walker) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps),
		Metrics: make(map[string]float64),
	}
	w.contacts = w.contacts[:0]

	for _, m := range w.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		frame := w.Step(t, cfg.Dt)
		result.Frames = append(result.Frames, frame)
		result.StepsTaken++

		for _, m := range w.metrics {
			m.Observe(frame)
		}
		for _, obs := range w.observers {
			obs.OnFrame(frame)
		}

		t += cfg.Dt
	}

	result.Contacts = append(result.Contacts, w.contacts...)
	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Dispose tears down both controllers, restoring the rig's base pose.
func (w *Walker) Dispose() {
	w.placement.Dispose()
	w.blender.Dispose()
}

func (w *Walker) Rig() *Rig                                     { return w.rig }
func (w *Walker) Field() terrain.Field                          { return w.field }
func (w *Walker) Blender() *locomotion.BlendAnimator            { return w.blender }
func (w *Walker) Placement() *locomotion.FootPlacementController { return w.placement }
