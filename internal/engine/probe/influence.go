package probe

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// sqrt3Half is the ratio between a cube's half-diagonal and its edge length.
const sqrt3Half = 0.8660254

// groupRadius covers the whole node box so probes on a regular grid of nodes
// overlap their direct and diagonal neighbours.
func groupRadius(g SpatialGroup) float32 {
	return g.Size() * sqrt3Half
}

// ComputeDistance returns the distance from ref to the edge of the influence
// sphere and stores it in Distance. Negative values mean ref is inside.
func (m *Map) ComputeDistance(ref mgl32.Vec3) float32 {
	m.Distance = ref.Sub(m.Origin).Len() - m.Radius
	return m.Distance
}

// InfluenceBox returns the transform from world space into the unit box
// [-1,1]^3 of the probe's influence volume. The second result is false for
// spherical probes.
func (m *Map) InfluenceBox() (mgl32.Mat4, bool) {
	return m.box, m.hasBox
}

// Intersects reports whether the influence volumes of m and other overlap.
func (m *Map) Intersects(other *Map) bool {
	switch {
	case !m.hasBox && !other.hasBox:
		d := other.Origin.Sub(m.Origin).Len()
		return d < m.Radius+other.Radius
	case m.hasBox && other.hasBox:
		return m.obb.overlaps(other.obb)
	case m.hasBox:
		return boxSphereOverlap(m.box, other.Origin, other.Radius)
	default:
		return boxSphereOverlap(other.box, m.Origin, m.Radius)
	}
}

// boxSphereOverlap tests a sphere against an oriented box given as a
// world-to-unit-box transform. The closest point is found in box space and
// measured back in world space so non-uniform scale is handled.
func boxSphereOverlap(worldToBox mgl32.Mat4, center mgl32.Vec3, radius float32) bool {
	local := mgl32.TransformCoordinate(center, worldToBox)
	closest := mgl32.Vec3{
		mgl32.Clamp(local.X(), -1, 1),
		mgl32.Clamp(local.Y(), -1, 1),
		mgl32.Clamp(local.Z(), -1, 1),
	}
	if closest == local {
		return true
	}
	world := mgl32.TransformCoordinate(closest, worldToBox.Inv())
	return world.Sub(center).Len() < radius
}

// orientedBox is a box influence volume in world space.
type orientedBox struct {
	center mgl32.Vec3
	axes   [3]mgl32.Vec3
	half   mgl32.Vec3
}

// project returns the half-length of b's shadow on axis.
func (b orientedBox) project(axis mgl32.Vec3) float32 {
	var r float32
	for i := 0; i < 3; i++ {
		r += b.half[i] * abs32(b.axes[i].Dot(axis))
	}
	return r
}

// overlaps is a separating axis test over the 15 candidate axes of two boxes.
// Touching boxes do not overlap.
func (b orientedBox) overlaps(o orientedBox) bool {
	t := o.center.Sub(b.center)
	separated := func(axis mgl32.Vec3) bool {
		return abs32(t.Dot(axis)) >= b.project(axis)+o.project(axis)
	}
	for i := 0; i < 3; i++ {
		if separated(b.axes[i]) || separated(o.axes[i]) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := b.axes[i].Cross(o.axes[j])
			// Parallel edges give no new axis.
			if axis.LenSqr() < 1e-10 {
				continue
			}
			if separated(axis) {
				return false
			}
		}
	}
	return true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// AdjustOriginForContainment re-derives origin and radius from the owner so the
// cube map centre is representative of the volume it serves.
func (m *Map) AdjustOriginForContainment() {
	switch {
	case m.Group != nil:
		m.followGroup()
	case m.Object != nil:
		m.followObject()
	}
}

// followGroup moves the origin to the centre of the node content, clamped to
// stay inside the node box.
func (m *Map) followGroup() {
	center, _ := m.Group.Bounds()
	node := m.Group.Center()
	half := m.Group.Size() * 0.5
	for i := 0; i < 3; i++ {
		center[i] = mgl32.Clamp(center[i], node[i]-half, node[i]+half)
	}
	m.Origin = center
	m.Radius = groupRadius(m.Group)
}

// followObject tracks object position and size and refreshes the probe
// parameters the object carries.
func (m *Map) followObject() {
	o := m.Object
	settings := o.ProbeSettings()
	m.Origin = o.Position()
	m.Ambiance = settings.Ambiance
	m.Priority = settings.Priority
	m.Dynamic = settings.Dynamic

	half := o.Scale().Mul(0.5)
	if settings.Box {
		boxToWorld := mgl32.Translate3D(m.Origin.X(), m.Origin.Y(), m.Origin.Z()).
			Mul4(o.Rotation().Normalize().Mat4()).
			Mul4(mgl32.Scale3D(half.X(), half.Y(), half.Z()))
		m.box = boxToWorld.Inv()
		m.hasBox = true
		rot := o.Rotation().Normalize()
		m.obb = orientedBox{
			center: m.Origin,
			axes: [3]mgl32.Vec3{
				rot.Rotate(mgl32.Vec3{1, 0, 0}),
				rot.Rotate(mgl32.Vec3{0, 1, 0}),
				rot.Rotate(mgl32.Vec3{0, 0, 1}),
			},
			half: half,
		}
		m.Radius = half.Len()
		return
	}

	m.hasBox = false
	m.Radius = float32(math.Max(float64(half.X()), math.Max(float64(half.Y()), float64(half.Z()))))
}
