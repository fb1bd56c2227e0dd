package reflection

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// unlinkNeighbors removes h from the list of every probe it neighbours and
// clears its own list. A missing back link means the graph is corrupt.
func (m *Manager) unlinkNeighbors(h probe.Handle, p *probe.Map) {
	for _, nh := range p.Neighbors {
		other := m.arena.get(nh)
		if other == nil || !other.RemoveNeighbor(h) {
			panic(fmt.Sprintf("reflection: probe %s lists neighbour %s without a back link", h, nh))
		}
	}
	p.Neighbors = p.Neighbors[:0]
}

// rebuildNeighbors recomputes the adjacency of h against every live probe.
// It only runs when h finishes a capture, which bounds the O(n) scan by the
// capture cadence.
func (m *Manager) rebuildNeighbors(h probe.Handle) {
	p := m.arena.get(h)
	m.unlinkNeighbors(h, p)

	for _, oh := range m.probes {
		if oh == h {
			continue
		}
		other := m.arena.get(oh)
		if p.Intersects(other) {
			p.AddNeighbor(oh)
			other.AddNeighbor(h)
		}
	}

	m.log.Debug("reflection probe neighbours rebuilt",
		zap.Stringer("probe", h),
		zap.Int("neighbors", len(p.Neighbors)),
	)
}

// CheckSymmetry verifies that every neighbour edge has its back link.
func (m *Manager) CheckSymmetry() error {
	var err error
	m.arena.each(func(h probe.Handle, p *probe.Map) {
		if err != nil {
			return
		}
		for _, nh := range p.Neighbors {
			other := m.arena.get(nh)
			if other == nil {
				err = fmt.Errorf("probe %s lists stale neighbour %s", h, nh)
				return
			}
			if !other.HasNeighbor(h) {
				err = fmt.Errorf("probe %s lists %s but not the reverse", h, nh)
				return
			}
		}
	})
	return err
}
