package reflection

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// Octree nodes in this size band get a probe. With 16 m leaves this drops a
// probe roughly every 16 m of populated space.
const (
	groupSizeMin = 15.0
	groupSizeMax = 17.0
)

// RegisterSpatialGroup places a probe on volume and terrain octree nodes whose
// size falls in the probe band. The second result is false when the node does
// not qualify.
func (m *Manager) RegisterSpatialGroup(g probe.SpatialGroup) (probe.Handle, bool) {
	switch g.PartitionType() {
	case probe.PartitionVolume, probe.PartitionTerrain:
	default:
		return probe.Nil, false
	}
	if size := g.Size(); size < groupSizeMin || size > groupSizeMax {
		return probe.Nil, false
	}
	return m.AddFromSpatialNode(g), true
}

// AddFromSpatialNode creates a probe owned by g. The caller holds one
// reference and must Release it when the node goes away.
func (m *Manager) AddFromSpatialNode(g probe.SpatialGroup) probe.Handle {
	return m.add(probe.NewFromGroup(g))
}

// AddFromObject creates a probe owned by a scene object. Registering an
// object that already has a live probe returns that probe with an extra
// reference, unless that probe is queued for a kill; the object then gets a
// fresh probe.
func (m *Manager) AddFromObject(o probe.SceneObject) probe.Handle {
	id := o.ID()
	if h, ok := m.objects[id]; ok && !m.pending.pendingKill(h) {
		if p := m.arena.get(h); p != nil {
			p.Retain()
			return h
		}
	}
	h := m.add(probe.NewFromObject(o))
	m.objects[id] = h
	return h
}

// ProbeForObject returns the probe registered for a scene object.
func (m *Manager) ProbeForObject(id uuid.UUID) (probe.Handle, bool) {
	h, ok := m.objects[id]
	if ok && m.arena.get(h) == nil {
		return probe.Nil, false
	}
	return h, ok
}

func (m *Manager) add(p *probe.Map) probe.Handle {
	m.nextSeq++
	p.SetSeq(m.nextSeq)
	h := m.arena.insert(p)

	if m.snapshot {
		// The live list is being iterated; insert on the next tick.
		m.pending.create(h)
	} else {
		m.probes = append(m.probes, h)
	}

	m.log.Debug("reflection probe registered",
		zap.Stringer("probe", h),
		zap.Bool("deferred", m.snapshot),
		zap.Bool("object", p.Object != nil),
	)
	return h
}

// Release drops one external reference. A probe without references is
// collected on the next tick.
func (m *Manager) Release(h probe.Handle) {
	if p := m.arena.get(h); p != nil {
		p.Release()
	}
}

// Kill removes a probe at the start of the next tick regardless of its
// reference count.
func (m *Manager) Kill(h probe.Handle) {
	if m.arena.get(h) == nil {
		return
	}
	m.pending.kill(h)
}

// Pending returns the number of queued creations and kills.
func (m *Manager) Pending() int {
	return m.pending.len()
}

// BeginSnapshot marks the probe list as being iterated. Registrations are
// deferred until EndSnapshot and the next tick.
func (m *Manager) BeginSnapshot() {
	if m.snapshot {
		panic("reflection: snapshot already in progress")
	}
	m.snapshot = true
}

// EndSnapshot ends the read-only iteration started by BeginSnapshot.
func (m *Manager) EndSnapshot() {
	m.snapshot = false
}

// SnapshotActive reports whether a snapshot is in progress.
func (m *Manager) SnapshotActive() bool {
	return m.snapshot
}

// SetSuspended stops all updates, e.g. while teleporting or logging out.
// Nothing is rolled back; updates resume on the next tick after clearing.
func (m *Manager) SetSuspended(suspended bool) {
	if m.suspended != suspended {
		m.log.Debug("reflection probe updates suspended", zap.Bool("suspended", suspended))
	}
	m.suspended = suspended
}

// Rebuild marks every probe stale so all are recaptured, oldest first.
func (m *Manager) Rebuild() {
	m.arena.each(func(_ probe.Handle, p *probe.Map) {
		p.LastUpdate = 0
	})
}

// Shift moves every probe origin by offset, e.g. when the agent crosses into
// a region with a different local origin.
func (m *Manager) Shift(offset mgl32.Vec3) {
	m.arena.each(func(_ probe.Handle, p *probe.Map) {
		p.Origin = p.Origin.Add(offset)
	})
}

// applyPending replays deferred kills and creations.
func (m *Manager) applyPending() {
	m.pending.drain(func(c command) {
		switch c.kind {
		case commandKill:
			m.removeProbe(c.handle)
		case commandCreate:
			if m.arena.get(c.handle) != nil {
				m.probes = append(m.probes, c.handle)
			}
		}
	})
}

// removeProbe deletes h whether it is live or still pending creation.
func (m *Manager) removeProbe(h probe.Handle) {
	for i, live := range m.probes {
		if live == h {
			m.deleteProbe(i)
			return
		}
	}
	if m.arena.get(h) != nil {
		m.retire(h)
	}
}

// deleteProbe removes the live probe at index i: its slot returns to the
// pool, the cursor resets if it was being captured, and every neighbour
// forgets it.
func (m *Manager) deleteProbe(i int) {
	h := m.probes[i]
	m.retire(h)
	m.probes = append(m.probes[:i], m.probes[i+1:]...)
}

func (m *Manager) retire(h probe.Handle) {
	p := m.arena.get(h)

	if p.HasSlot() {
		m.pool.Free(p.CubeIndex)
		p.CubeIndex = probe.NoIndex
	}
	if m.updating == h {
		m.updating = probe.Nil
		m.updatingFace = 0
	}
	m.unlinkNeighbors(h, p)

	if p.Object != nil {
		id := p.Object.ID()
		if m.objects[id] == h {
			delete(m.objects, id)
		}
	}

	m.arena.remove(h)
	m.stats.Removed++
	m.log.Debug("reflection probe removed", zap.Stringer("probe", h))
}

// IsPending reports whether h was registered during a snapshot and is still
// waiting to join the live list.
func (m *Manager) IsPending(h probe.Handle) bool {
	return m.pending.pendingCreate(h)
}
