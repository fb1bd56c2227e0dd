// Package spatial provides a minimal loose octree used as a spatial partition.
// Its nodes act as owners of opportunistically placed reflection probes.
package spatial

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// Item is an axis-aligned box stored in the tree.
type Item struct {
	Min, Max mgl32.Vec3
}

// Center returns the centre of the item.
func (it Item) Center() mgl32.Vec3 {
	return it.Min.Add(it.Max).Mul(0.5)
}

// Node is an octree node. It implements probe.SpatialGroup.
type Node struct {
	partition probe.PartitionType
	center    mgl32.Vec3
	size      float32
	depth     int

	children [8]*Node
	items    []Item

	contentMin, contentMax mgl32.Vec3
	hasContent             bool
}

// Octree is a cubic region subdivided down to a minimum node size.
type Octree struct {
	root    *Node
	minSize float32
}

// New creates an octree covering the cube at center with edge size. Nodes are
// never split below minSize.
func New(partition probe.PartitionType, center mgl32.Vec3, size, minSize float32) *Octree {
	return &Octree{
		root:    &Node{partition: partition, center: center, size: size},
		minSize: minSize,
	}
}

// Root returns the root node.
func (t *Octree) Root() *Node {
	return t.root
}

// Insert places item in the smallest node that fully contains it. Items
// outside the root are ignored; the return value reports whether it was stored.
func (t *Octree) Insert(item Item) bool {
	if !t.root.contains(item) {
		return false
	}
	n := t.root
	for {
		n.grow(item)
		if n.size*0.5 < t.minSize {
			break
		}
		child := n.childFor(item)
		if child == nil {
			break
		}
		n = child
	}
	n.items = append(n.items, item)
	return true
}

// Traverse visits nodes depth first. Returning false from visit skips the
// node's children.
func (t *Octree) Traverse(visit func(n *Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if !visit(n) {
			return
		}
		for _, c := range n.children {
			if c != nil {
				walk(c)
			}
		}
	}
	walk(t.root)
}

// PartitionType implements probe.SpatialGroup.
func (n *Node) PartitionType() probe.PartitionType { return n.partition }

// Center implements probe.SpatialGroup.
func (n *Node) Center() mgl32.Vec3 { return n.center }

// Size implements probe.SpatialGroup.
func (n *Node) Size() float32 { return n.size }

// Depth returns the node's depth below the root.
func (n *Node) Depth() int { return n.depth }

// Items returns the items stored directly in this node.
func (n *Node) Items() []Item { return n.items }

// Bounds implements probe.SpatialGroup. Empty nodes report their own box.
func (n *Node) Bounds() (center, extents mgl32.Vec3) {
	if !n.hasContent {
		h := n.size * 0.5
		return n.center, mgl32.Vec3{h, h, h}
	}
	return n.contentMin.Add(n.contentMax).Mul(0.5), n.contentMax.Sub(n.contentMin).Mul(0.5)
}

// Empty reports whether no item was inserted through this node.
func (n *Node) Empty() bool { return !n.hasContent }

func (n *Node) contains(item Item) bool {
	h := n.size * 0.5
	for i := 0; i < 3; i++ {
		if item.Min[i] < n.center[i]-h || item.Max[i] > n.center[i]+h {
			return false
		}
	}
	return true
}

func (n *Node) grow(item Item) {
	if !n.hasContent {
		n.contentMin, n.contentMax = item.Min, item.Max
		n.hasContent = true
		return
	}
	for i := 0; i < 3; i++ {
		n.contentMin[i] = min(n.contentMin[i], item.Min[i])
		n.contentMax[i] = max(n.contentMax[i], item.Max[i])
	}
}

// childFor returns the child octant that fully contains item, creating it on
// demand, or nil if item straddles the split planes.
func (n *Node) childFor(item Item) *Node {
	idx := 0
	quarter := n.size * 0.25
	var offset mgl32.Vec3
	for i := 0; i < 3; i++ {
		switch {
		case item.Min[i] >= n.center[i]:
			idx |= 1 << i
			offset[i] = quarter
		case item.Max[i] <= n.center[i]:
			offset[i] = -quarter
		default:
			return nil
		}
	}
	if n.children[idx] == nil {
		n.children[idx] = &Node{
			partition: n.partition,
			center:    n.center.Add(offset),
			size:      n.size * 0.5,
			depth:     n.depth + 1,
		}
	}
	return n.children[idx]
}
