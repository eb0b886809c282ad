// Package anim defines the clip-player contract the locomotion blender
// drives, plus a reference Player implementation. The blender only depends
// on the interfaces; any engine-side mixer satisfying them can be plugged in.
package anim

// Clip identifies one animation clip.
type Clip struct {
	Name     string
	Duration float64 // seconds per loop
}

// Action is a controllable instance of a clip on a player.
type Action interface {
	SetWeight(w float64)
	Weight() float64
	SetEnabled(on bool)
	Enabled() bool
	SetTimeScale(s float64)
	TimeScale() float64
	Play()
	Stop()
	IsRunning() bool
}

// Mixer owns clip actions and a shared clock.
type Mixer interface {
	// ClipAction returns the action for a clip, creating it on first use.
	ClipAction(clip Clip) Action
	// Update advances the shared clock and every running action by delta.
	Update(delta float64)
}
