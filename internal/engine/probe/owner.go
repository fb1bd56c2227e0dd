package probe

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// PartitionType identifies the spatial partition an octree node belongs to.
type PartitionType int

const (
	PartitionNone PartitionType = iota
	PartitionVolume
	PartitionTerrain
	PartitionTree
	PartitionWater
)

// String returns the partition name.
func (p PartitionType) String() string {
	switch p {
	case PartitionVolume:
		return "volume"
	case PartitionTerrain:
		return "terrain"
	case PartitionTree:
		return "tree"
	case PartitionWater:
		return "water"
	default:
		return "none"
	}
}

// SpatialGroup is an octree node that may own a probe.
// The probe only reads from it to re-derive its origin and radius.
type SpatialGroup interface {
	PartitionType() PartitionType
	// Center is the centre of the node box.
	Center() mgl32.Vec3
	// Size is the edge length of the node box.
	Size() float32
	// Bounds returns the centre and half-size of the content inside the node.
	Bounds() (center, extents mgl32.Vec3)
}

// ObjectProbe holds the reflection probe parameters a scene object carries.
type ObjectProbe struct {
	Box      bool
	Dynamic  bool
	Ambiance float32
	Priority int32
}

// SceneObject is a discrete scene object registered as a reflection probe.
type SceneObject interface {
	ID() uuid.UUID
	Position() mgl32.Vec3
	Scale() mgl32.Vec3
	Rotation() mgl32.Quat
	ProbeSettings() ObjectProbe
}
