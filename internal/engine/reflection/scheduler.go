package reflection

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/cubeindex"
	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// Frame carries the per-frame inputs of Tick.
type Frame struct {
	// Camera is the viewer position in world space.
	Camera mgl32.Vec3
	// Time is the frame time in seconds. It must not decrease between ticks.
	Time float64
}

// Tick advances probe maintenance by one frame.
//
// At most one probe is captured incrementally, one face per tick. When
// realtime detail is enabled the nearest dynamic probe that already owns a
// slot is additionally re-rendered in full. Distances are refreshed and the
// probe list is re-sorted nearest first; that order decides which probes are
// eligible for slots on the following tick.
func (m *Manager) Tick(frame Frame) error {
	if m.suspended {
		return nil
	}
	if m.snapshot {
		panic("reflection: Tick called while a snapshot is in progress")
	}
	if err := m.initResources(); err != nil {
		return err
	}

	m.now = frame.Time
	m.stats.Ticks++

	m.applyPending()

	if len(m.probes) == 0 {
		return nil
	}

	didUpdate := false
	if !m.updating.IsNil() {
		didUpdate = true
		m.doProbeUpdate()
	}

	var oldest, closestDynamic *probe.Map
	var oldestHandle probe.Handle

	for i := 0; i < len(m.probes); i++ {
		h := m.probes[i]
		p := m.arena.get(h)
		if p.Refs() == 0 {
			// Nobody outside the manager holds this probe any more.
			m.deleteProbe(i)
			i--
			continue
		}

		p.ProbeIndex = i

		if !didUpdate && i < m.pool.Size() &&
			(oldest == nil || p.LastUpdate < oldest.LastUpdate) {
			oldest = p
			oldestHandle = h
		}

		if m.opts.Realtime && closestDynamic == nil && p.HasSlot() && p.Dynamic {
			closestDynamic = p
		}

		if p.Dynamic {
			p.AdjustOriginForContainment()
		}
		p.ComputeDistance(frame.Camera)
	}

	if closestDynamic != nil {
		closestDynamic.AdjustOriginForContainment()
		for face := 0; face < capture.FaceCount; face++ {
			m.updateProbeFace(closestDynamic, face)
		}
		m.stats.RealtimeCaptures++
	}

	if !didUpdate && oldest != nil {
		if !oldest.HasSlot() {
			oldest.CubeIndex = m.pool.Allocate(m.rankedSlots())
		}
		oldest.AdjustOriginForContainment()

		m.updating = oldestHandle
		m.doProbeUpdate()
	}

	slices.SortFunc(m.probes, func(a, b probe.Handle) int {
		pa, pb := m.arena.get(a), m.arena.get(b)
		if c := cmp.Compare(pa.Distance, pb.Distance); c != 0 {
			return c
		}
		return cmp.Compare(pa.Seq(), pb.Seq())
	})

	return nil
}

// doProbeUpdate renders the cursor's face and advances it. Finishing the
// sixth face rebuilds the probe's neighbours and returns the cursor to idle.
func (m *Manager) doProbeUpdate() {
	p := m.arena.get(m.updating)
	if p == nil {
		panic("reflection: capture cursor points at a removed probe")
	}

	m.updateProbeFace(p, m.updatingFace)

	m.updatingFace++
	if m.updatingFace == capture.FaceCount {
		m.rebuildNeighbors(m.updating)
		m.stats.Captures++
		m.log.Debug("reflection probe captured",
			zap.Stringer("probe", m.updating),
			zap.Int("cube", p.CubeIndex),
			zap.Float32("distance", p.Distance),
		)
		m.updating = probe.Nil
		m.updatingFace = 0
	}
}

// rankedSlots exposes the live list, nearest first, to the allocator.
func (m *Manager) rankedSlots() []cubeindex.Slot {
	ranked := make([]cubeindex.Slot, len(m.probes))
	for i, h := range m.probes {
		ranked[i] = m.arena.get(h)
	}
	return ranked
}
