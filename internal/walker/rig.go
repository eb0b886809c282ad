package walker

import (
	"github.com/futuroptimist/strider/internal/mathutil"
	"github.com/futuroptimist/strider/internal/scene"
)

// Rig is the minimal avatar hierarchy the controllers operate on: a root
// that the drive source moves, with pelvis and feet as siblings so pelvis
// settling never feeds back into foot height sampling.
type Rig struct {
	Root      *scene.Node
	Pelvis    *scene.Node
	LeftFoot  *scene.Node
	RightFoot *scene.Node
}

// NewRig builds the hierarchy with the root hovering rootHeight above the
// origin and the feet split laterally by stanceWidth.
func NewRig(stanceWidth, rootHeight float64) *Rig {
	root := scene.NewNode("avatar")
	root.Position = mathutil.Vec3{Y: rootHeight}

	pelvis := scene.NewNode("pelvis")
	left := scene.NewNode("foot_l")
	left.Position = mathutil.Vec3{X: -stanceWidth / 2}
	right := scene.NewNode("foot_r")
	right.Position = mathutil.Vec3{X: stanceWidth / 2}

	root.AddChild(pelvis)
	root.AddChild(left)
	root.AddChild(right)
	root.UpdateHierarchy()

	return &Rig{
		Root:      root,
		Pelvis:    pelvis,
		LeftFoot:  left,
		RightFoot: right,
	}
}
