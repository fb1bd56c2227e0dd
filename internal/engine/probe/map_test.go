package probe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGroup struct {
	partition PartitionType
	center    mgl32.Vec3
	size      float32
	content   mgl32.Vec3
}

func (g *testGroup) PartitionType() PartitionType { return g.partition }
func (g *testGroup) Center() mgl32.Vec3           { return g.center }
func (g *testGroup) Size() float32                { return g.size }
func (g *testGroup) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return g.content, mgl32.Vec3{1, 1, 1}
}

type testObject struct {
	id       uuid.UUID
	pos      mgl32.Vec3
	scale    mgl32.Vec3
	rot      mgl32.Quat
	settings ObjectProbe
}

func (o *testObject) ID() uuid.UUID              { return o.id }
func (o *testObject) Position() mgl32.Vec3       { return o.pos }
func (o *testObject) Scale() mgl32.Vec3          { return o.scale }
func (o *testObject) Rotation() mgl32.Quat       { return o.rot }
func (o *testObject) ProbeSettings() ObjectProbe { return o.settings }

func sphereAt(x, y, z, radius float32) *Map {
	m := newMap()
	m.Origin = mgl32.Vec3{x, y, z}
	m.Radius = radius
	return m
}

func TestIntersects_Spheres(t *testing.T) {
	tests := []struct {
		name     string
		distance float32
		want     bool
	}{
		{"overlapping", 15, true},
		{"disjoint", 25, false},
		{"touching", 20, false},
		{"coincident", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sphereAt(0, 0, 0, 10)
			b := sphereAt(tt.distance, 0, 0, 10)
			assert.Equal(t, tt.want, a.Intersects(b))
			assert.Equal(t, tt.want, b.Intersects(a), "intersection must be symmetric")
		})
	}
}

func TestIntersects_Box(t *testing.T) {
	obj := &testObject{
		id:       uuid.New(),
		pos:      mgl32.Vec3{0, 0, 0},
		scale:    mgl32.Vec3{20, 2, 2},
		rot:      mgl32.QuatIdent(),
		settings: ObjectProbe{Box: true},
	}
	box := NewFromObject(obj)

	_, ok := box.InfluenceBox()
	require.True(t, ok)

	// Long thin box along X: a sphere near the end of the box touches it even
	// though it is outside the box's radius along Y.
	assert.True(t, box.Intersects(sphereAt(12, 0, 0, 3)))
	assert.True(t, sphereAt(12, 0, 0, 3).Intersects(box))

	// Same distance along Y misses the thin side.
	assert.False(t, box.Intersects(sphereAt(0, 12, 0, 3)))

	// Centre inside the box always intersects.
	assert.True(t, box.Intersects(sphereAt(5, 0, 0, 0.1)))
}

func boxAt(pos, scale mgl32.Vec3, rot mgl32.Quat) *Map {
	return NewFromObject(&testObject{
		id:       uuid.New(),
		pos:      pos,
		scale:    scale,
		rot:      rot,
		settings: ObjectProbe{Box: true},
	})
}

func TestIntersects_BoxBox(t *testing.T) {
	long := boxAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 1, 1}, mgl32.QuatIdent())
	tilted := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 0, 1})

	tests := []struct {
		name string
		pos  mgl32.Vec3
		rot  mgl32.Quat
		want bool
	}{
		{"above the thin side", mgl32.Vec3{40, 5, 0}, mgl32.QuatIdent(), false},
		{"grazing the thin side", mgl32.Vec3{40, 0.8, 0}, mgl32.QuatIdent(), true},
		{"past the end", mgl32.Vec3{52, 0, 0}, mgl32.QuatIdent(), false},
		{"overlapping the end", mgl32.Vec3{50.2, 0, 0}, mgl32.QuatIdent(), true},
		{"gap along x", mgl32.Vec3{50.6, 0, 0}, mgl32.QuatIdent(), false},
		{"tilted corner reaches the end", mgl32.Vec3{50.6, 0, 0}, tilted, true},
		{"tilted corner short of the end", mgl32.Vec3{51, 0, 0}, tilted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			small := boxAt(tt.pos, mgl32.Vec3{1, 1, 1}, tt.rot)
			assert.Equal(t, tt.want, long.Intersects(small))
			assert.Equal(t, tt.want, small.Intersects(long))
		})
	}
}

func TestIntersects_Symmetric(t *testing.T) {
	long := boxAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 1, 1}, mgl32.QuatIdent())
	cube := boxAt(mgl32.Vec3{40, 5, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	tilted := boxAt(mgl32.Vec3{10, 3, 0}, mgl32.Vec3{8, 2, 2},
		mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 1, 1}.Normalize()))
	near := sphereAt(40, 2, 0, 2)
	far := sphereAt(0, 30, 0, 5)

	all := map[string]*Map{"long": long, "cube": cube, "tilted": tilted, "near": near, "far": far}
	for an, a := range all {
		for bn, b := range all {
			if an == bn {
				continue
			}
			assert.Equal(t, a.Intersects(b), b.Intersects(a), "%s vs %s", an, bn)
		}
	}
}

func TestInfluenceBox_SphereHasNone(t *testing.T) {
	obj := &testObject{
		pos:   mgl32.Vec3{1, 2, 3},
		scale: mgl32.Vec3{4, 6, 2},
		rot:   mgl32.QuatIdent(),
	}
	m := NewFromObject(obj)

	_, ok := m.InfluenceBox()
	assert.False(t, ok)
	assert.InDelta(t, 3.0, m.Radius, 1e-6)
}

func TestComputeDistance(t *testing.T) {
	m := sphereAt(10, 0, 0, 4)
	d := m.ComputeDistance(mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 6.0, d, 1e-6)
	assert.Equal(t, d, m.Distance)

	inside := m.ComputeDistance(mgl32.Vec3{10, 1, 0})
	assert.Less(t, inside, float32(0))
}

func TestAdjustOriginForContainment_Group(t *testing.T) {
	g := &testGroup{
		partition: PartitionVolume,
		center:    mgl32.Vec3{8, 8, 8},
		size:      16,
		content:   mgl32.Vec3{30, 4, 8}, // outside the node along X
	}
	m := NewFromGroup(g)
	assert.Equal(t, g.center, m.Origin)

	m.AdjustOriginForContainment()
	assert.Equal(t, mgl32.Vec3{16, 4, 8}, m.Origin, "origin is clamped to the node box")
	assert.InDelta(t, 16*sqrt3Half, m.Radius, 1e-4)
}

func TestAdjustOriginForContainment_ObjectFollows(t *testing.T) {
	obj := &testObject{
		pos:      mgl32.Vec3{0, 0, 0},
		scale:    mgl32.Vec3{2, 2, 2},
		rot:      mgl32.QuatIdent(),
		settings: ObjectProbe{Dynamic: true, Ambiance: 0.5, Priority: 3},
	}
	m := NewFromObject(obj)
	assert.True(t, m.Dynamic)
	assert.Equal(t, int32(3), m.Priority)

	obj.pos = mgl32.Vec3{5, 0, 0}
	obj.settings.Ambiance = 0.25
	m.AdjustOriginForContainment()

	assert.Equal(t, obj.pos, m.Origin)
	assert.Equal(t, float32(0.25), m.Ambiance)
}

func TestRefs(t *testing.T) {
	m := sphereAt(0, 0, 0, 1)
	assert.Equal(t, int32(1), m.Refs())

	m.Retain()
	m.Release()
	m.Release()
	assert.Equal(t, int32(0), m.Refs())

	assert.Panics(t, func() { m.Release() })
}

func TestNeighbors(t *testing.T) {
	m := sphereAt(0, 0, 0, 1)
	a := Handle{Index: 1, Generation: 1}
	b := Handle{Index: 2, Generation: 1}

	m.AddNeighbor(a)
	m.AddNeighbor(b)
	assert.True(t, m.HasNeighbor(a))

	assert.True(t, m.RemoveNeighbor(a))
	assert.False(t, m.RemoveNeighbor(a))
	assert.Equal(t, []Handle{b}, m.Neighbors)
}

func TestHandle(t *testing.T) {
	assert.True(t, Nil.IsNil())
	assert.Equal(t, "nil", Nil.String())

	h := Handle{Index: 4, Generation: 2}
	assert.False(t, h.IsNil())
	assert.Equal(t, "4:2", h.String())
}
