package metrics

import (
	"github.com/futuroptimist/strider/internal/walker"
)

// Cadence counts foot contact onsets per second of simulated time. A contact
// onset is a false-to-true transition of either foot's InContact flag.
type Cadence struct {
	name      string
	leftDown  bool
	rightDown bool
	onsets    int
	firstT    float64
	lastT     float64
	samples   int
}

func NewCadence() *Cadence {
	return &Cadence{name: "cadence"}
}

func (c *Cadence) Name() string { return c.name }

func (c *Cadence) Observe(f walker.Frame) {
	if c.samples == 0 {
		c.firstT = f.T
	}
	c.lastT = f.T
	c.samples++

	if f.Left.InContact && !c.leftDown {
		c.onsets++
	}
	if f.Right.InContact && !c.rightDown {
		c.onsets++
	}
	c.leftDown = f.Left.InContact
	c.rightDown = f.Right.InContact
}

func (c *Cadence) Value() float64 {
	span := c.lastT - c.firstT
	if span <= 0 {
		return 0
	}
	return float64(c.onsets) / span
}

func (c *Cadence) Reset() {
	c.leftDown = false
	c.rightDown = false
	c.onsets = 0
	c.firstT = 0
	c.lastT = 0
	c.samples = 0
}
