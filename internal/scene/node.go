// Package scene provides the minimal mutable transform hierarchy the
// locomotion controllers operate on: parent-relative local transforms with
// cached world transforms refreshed by an explicit step. There is no hidden
// global cache; callers refresh ancestors before reading world state.
package scene

import "github.com/futuroptimist/strider/internal/mathutil"

// Node is one transform in the hierarchy. Local position and rotation
// (XYZ Euler, radians) are freely mutable; world state is cached and only
// valid after UpdateWorld/UpdateHierarchy.
type Node struct {
	Name     string
	Position mathutil.Vec3
	Rotation mathutil.Vec3

	parent   *Node
	children []*Node

	worldPos mathutil.Vec3
	worldRot mathutil.Quat
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		worldRot: mathutil.QuatIdentity(),
	}
}

func (n *Node) AddChild(c *Node) *Node {
	if c == nil || c == n {
		return n
	}
	c.parent = n
	n.children = append(n.children, c)
	return n
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// UpdateWorld recomputes this node's cached world transform from its
// parent's cached world transform. The parent must already be current.
func (n *Node) UpdateWorld() {
	local := mathutil.EulerToQuat(n.Rotation.X, n.Rotation.Y, n.Rotation.Z)
	if n.parent == nil {
		n.worldPos = n.Position
		n.worldRot = local
		return
	}
	n.worldPos = n.parent.worldPos.Add(n.parent.worldRot.Rotate(n.Position))
	n.worldRot = n.parent.worldRot.Mul(local)
}

// UpdateHierarchy refreshes this node and every descendant, top down.
func (n *Node) UpdateHierarchy() {
	n.UpdateWorld()
	for _, c := range n.children {
		c.UpdateHierarchy()
	}
}

func (n *Node) WorldPosition() mathutil.Vec3 {
	return n.worldPos
}

func (n *Node) WorldQuaternion() mathutil.Quat {
	return n.worldRot
}
