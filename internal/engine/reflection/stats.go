package reflection

import (
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// Stats summarises manager activity.
type Stats struct {
	Ticks            uint64
	FacesRendered    uint64
	Captures         uint64
	RealtimeCaptures uint64
	Removed          uint64

	Probes    int
	Pending   int
	Assigned  int
	FreeSlots int
	Updating  probe.Handle
	Face      int
}

// Stats returns counters plus a snapshot of the current state.
func (m *Manager) Stats() Stats {
	s := m.stats
	s.Probes = len(m.probes)
	s.Pending = m.pending.len()
	for _, h := range m.probes {
		if m.arena.get(h).HasSlot() {
			s.Assigned++
		}
	}
	s.FreeSlots = m.pool.FreeCount()
	s.Updating = m.updating
	s.Face = m.updatingFace
	return s
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("ticks", s.Ticks)
	enc.AddUint64("faces", s.FacesRendered)
	enc.AddUint64("captures", s.Captures)
	enc.AddUint64("realtime", s.RealtimeCaptures)
	enc.AddUint64("removed", s.Removed)
	enc.AddInt("probes", s.Probes)
	enc.AddInt("pending", s.Pending)
	enc.AddInt("assigned", s.Assigned)
	enc.AddInt("free_slots", s.FreeSlots)
	enc.AddString("updating", s.Updating.String())
	enc.AddInt("face", s.Face)
	return nil
}
