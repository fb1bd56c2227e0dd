package reflection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-probes/internal/engine/capture/headless"
	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

type testGroup struct {
	partition probe.PartitionType
	center    mgl32.Vec3
	size      float32
}

func (g *testGroup) PartitionType() probe.PartitionType { return g.partition }
func (g *testGroup) Center() mgl32.Vec3                 { return g.center }
func (g *testGroup) Size() float32                      { return g.size }
func (g *testGroup) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return g.center, mgl32.Vec3{g.size, g.size, g.size}.Mul(0.5)
}

type testObject struct {
	id       uuid.UUID
	pos      mgl32.Vec3
	scale    mgl32.Vec3
	settings probe.ObjectProbe
}

func (o *testObject) ID() uuid.UUID                    { return o.id }
func (o *testObject) Position() mgl32.Vec3             { return o.pos }
func (o *testObject) Scale() mgl32.Vec3                { return o.scale }
func (o *testObject) Rotation() mgl32.Quat             { return mgl32.QuatIdent() }
func (o *testObject) ProbeSettings() probe.ObjectProbe { return o.settings }

// sphereObject returns an object whose probe is a sphere of the given radius.
func sphereObject(x, y, z, radius float32) *testObject {
	d := radius * 2
	return &testObject{
		id:    uuid.New(),
		pos:   mgl32.Vec3{x, y, z},
		scale: mgl32.Vec3{d, d, d},
	}
}

type harness struct {
	t      *testing.T
	m      *Manager
	device *headless.Device
	scene  *headless.Scene
	camera mgl32.Vec3
	clock  float64
}

func newHarness(t *testing.T, maxProbes int, configure ...func(*Options)) *harness {
	t.Helper()
	opts := DefaultOptions()
	opts.Resolution = 4
	opts.MaxProbes = maxProbes
	for _, fn := range configure {
		fn(&opts)
	}

	device := headless.New()
	scene := &headless.Scene{}
	m, err := New(device, scene, opts)
	require.NoError(t, err)
	return &harness{t: t, m: m, device: device, scene: scene}
}

func (h *harness) addObject(o *testObject) probe.Handle {
	return h.m.AddFromObject(o)
}

// tick advances one frame and checks the manager invariants afterwards.
func (h *harness) tick() {
	h.t.Helper()
	h.clock++
	require.NoError(h.t, h.m.Tick(Frame{Camera: h.camera, Time: h.clock}))
	h.checkInvariants()
}

func (h *harness) ticks(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		h.tick()
	}
}

func (h *harness) probe(hd probe.Handle) *probe.Map {
	h.t.Helper()
	p := h.m.Probe(hd)
	require.NotNil(h.t, p, "probe %s is gone", hd)
	return p
}

func (h *harness) checkInvariants() {
	t := h.t
	t.Helper()

	seen := make(map[int]probe.Handle)
	assigned := 0
	for _, hd := range h.m.Probes() {
		p := h.m.Probe(hd)
		require.NotNil(t, p)
		if !p.HasSlot() {
			continue
		}
		assigned++
		if other, dup := seen[p.CubeIndex]; dup {
			t.Fatalf("probes %s and %s share cube index %d", other, hd, p.CubeIndex)
		}
		seen[p.CubeIndex] = hd
		require.True(t, h.m.Pool().InUse(p.CubeIndex), "cube index %d held but free in pool", p.CubeIndex)
	}
	require.Equal(t, h.m.Pool().Size()-h.m.Pool().FreeCount(), assigned, "pool usage out of sync")

	updating, face := h.m.Cursor()
	require.Equal(t, updating.IsNil(), face == 0, "cursor %s at face %d", updating, face)
	if !updating.IsNil() {
		require.True(t, h.probe(updating).HasSlot(), "probe being captured lost its slot")
	}

	require.NoError(t, h.m.CheckSymmetry())
	require.True(t, h.device.Idle(), "device left with a bound target or program")
}

func (h *harness) slots() map[probe.Handle]int {
	out := make(map[probe.Handle]int)
	for _, hd := range h.m.Probes() {
		if p := h.m.Probe(hd); p.HasSlot() {
			out[hd] = p.CubeIndex
		}
	}
	return out
}
