package anim

// Player is the in-process Mixer implementation. It tracks one action per
// clip name and advances running actions by delta scaled with their time
// scale, looping on the clip duration.
type Player struct {
	actions map[string]*playerAction
	order   []*playerAction
	time    float64
}

func NewPlayer() *Player {
	return &Player{actions: make(map[string]*playerAction)}
}

func (p *Player) ClipAction(clip Clip) Action {
	if a, ok := p.actions[clip.Name]; ok {
		return a
	}
	a := &playerAction{clip: clip, timeScale: 1}
	p.actions[clip.Name] = a
	p.order = append(p.order, a)
	return a
}

func (p *Player) Update(delta float64) {
	if delta < 0 {
		delta = 0
	}
	p.time += delta
	for _, a := range p.order {
		a.advance(delta)
	}
}

// Time returns the accumulated clock in seconds.
func (p *Player) Time() float64 {
	return p.time
}

type playerAction struct {
	clip      Clip
	weight    float64
	enabled   bool
	timeScale float64
	running   bool
	clipTime  float64
}

func (a *playerAction) SetWeight(w float64)    { a.weight = w }
func (a *playerAction) Weight() float64        { return a.weight }
func (a *playerAction) SetEnabled(on bool)     { a.enabled = on }
func (a *playerAction) Enabled() bool          { return a.enabled }
func (a *playerAction) SetTimeScale(s float64) { a.timeScale = s }
func (a *playerAction) TimeScale() float64     { return a.timeScale }
func (a *playerAction) IsRunning() bool        { return a.running }

func (a *playerAction) Play() {
	a.running = true
}

func (a *playerAction) Stop() {
	a.running = false
	a.clipTime = 0
}

// ClipTime returns the action's position within its clip loop.
func (a *playerAction) ClipTime() float64 {
	return a.clipTime
}

func (a *playerAction) advance(delta float64) {
	if !a.running || !a.enabled {
		return
	}
	a.clipTime += delta * a.timeScale
	if a.clip.Duration > 0 {
		for a.clipTime >= a.clip.Duration {
			a.clipTime -= a.clip.Duration
		}
		for a.clipTime < 0 {
			a.clipTime += a.clip.Duration
		}
	}
}
