// Package probe defines the reflection map entity: a positioned cube-map
// capture point with a spherical or box influence volume.
package probe

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NoIndex marks an unassigned cube slot or an inactive probe.
const NoIndex = -1

// Map is a single reflection probe.
//
// CubeIndex != NoIndex means the probe owns that layer of the shared cube map
// array. An unassigned probe may still exist, it just has never been rendered
// or its slot was stolen.
type Map struct {
	Origin mgl32.Vec3
	Radius float32

	// CubeIndex is the layer in the cube map array, or NoIndex.
	CubeIndex int
	// ProbeIndex is the position in the active list handed to shaders, or NoIndex.
	ProbeIndex int

	// LastUpdate is the frame time of the last rendered face.
	LastUpdate float64
	// LastBind is the frame time something last asked to sample this probe.
	LastBind float64

	Ambiance float32
	Priority int32
	Dynamic  bool

	// Distance from the camera to the edge of the influence sphere.
	Distance float32

	// Neighbors are probes whose influence volumes overlap this one.
	Neighbors []Handle

	// Group and Object are non-owning; at most one is set.
	Group  SpatialGroup
	Object SceneObject

	box    mgl32.Mat4
	obb    orientedBox
	hasBox bool

	refs int32
	seq  uint64
}

func newMap() *Map {
	return &Map{
		CubeIndex:  NoIndex,
		ProbeIndex: NoIndex,
		Ambiance:   0,
		refs:       1,
	}
}

// NewFromGroup creates a probe owned by an octree node.
// The returned probe carries one external reference for the caller.
func NewFromGroup(g SpatialGroup) *Map {
	m := newMap()
	m.Group = g
	m.Origin = g.Center()
	m.Radius = groupRadius(g)
	return m
}

// NewFromObject creates a probe owned by a scene object.
// The returned probe carries one external reference for the caller.
func NewFromObject(o SceneObject) *Map {
	m := newMap()
	m.Object = o
	m.Origin = o.Position()
	m.followObject()
	return m
}

// GetCubeIndex implements cubeindex.Slot.
func (m *Map) GetCubeIndex() int { return m.CubeIndex }

// SetCubeIndex implements cubeindex.Slot.
func (m *Map) SetCubeIndex(i int) { m.CubeIndex = i }

// HasSlot reports whether the probe owns a cube map array layer.
func (m *Map) HasSlot() bool { return m.CubeIndex != NoIndex }

// Seq returns the insertion sequence used to break distance ties.
func (m *Map) Seq() uint64 { return m.seq }

// SetSeq stamps the insertion sequence. The manager calls it once on registration.
func (m *Map) SetSeq(seq uint64) { m.seq = seq }

// Retain adds an external reference.
func (m *Map) Retain() { m.refs++ }

// Release drops an external reference.
func (m *Map) Release() {
	if m.refs <= 0 {
		panic(fmt.Sprintf("probe released with %d references", m.refs))
	}
	m.refs--
}

// Refs returns the number of external references. Zero means only the manager
// still holds the probe and it will be collected on the next tick.
func (m *Map) Refs() int32 { return m.refs }

// HasNeighbor reports whether h is in the neighbour list.
func (m *Map) HasNeighbor(h Handle) bool {
	for _, n := range m.Neighbors {
		if n == h {
			return true
		}
	}
	return false
}

// AddNeighbor appends h to the neighbour list.
func (m *Map) AddNeighbor(h Handle) {
	m.Neighbors = append(m.Neighbors, h)
}

// RemoveNeighbor removes h from the neighbour list. Returns false if h was
// not a neighbour.
func (m *Map) RemoveNeighbor(h Handle) bool {
	for i, n := range m.Neighbors {
		if n == h {
			m.Neighbors = append(m.Neighbors[:i], m.Neighbors[i+1:]...)
			return true
		}
	}
	return false
}
