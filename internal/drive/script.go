package drive

import "github.com/futuroptimist/strider/internal/scene"

// Segment is one timed stretch of a scripted walk.
type Segment struct {
	Duration float64 `yaml:"duration"`
	Linear   float64 `yaml:"linear"`
	Angular  float64 `yaml:"angular"`
}

// Script plays back a fixed speed schedule. After the last segment it either
// loops or holds zero speed.
type Script struct {
	Segments []Segment
	Loop     bool

	total float64
}

func NewScript(segments []Segment, loop bool) *Script {
	s := &Script{Segments: segments, Loop: loop}
	for _, seg := range segments {
		if seg.Duration > 0 {
			s.total += seg.Duration
		}
	}
	return s
}

func (s *Script) Advance(root *scene.Node, t, dt float64) (float64, float64) {
	linear, angular := s.speedsAt(t)
	step(root, linear, angular, dt)
	return linear, angular
}

func (s *Script) speedsAt(t float64) (float64, float64) {
	if s.total <= 0 {
		return 0, 0
	}
	if t >= s.total {
		if !s.Loop {
			return 0, 0
		}
		for t >= s.total {
			t -= s.total
		}
	}
	for _, seg := range s.Segments {
		if seg.Duration <= 0 {
			continue
		}
		if t < seg.Duration {
			return seg.Linear, seg.Angular
		}
		t -= seg.Duration
	}
	return 0, 0
}
