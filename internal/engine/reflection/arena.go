package reflection

import "github.com/Faultbox/midgard-probes/internal/engine/probe"

// arena stores probes at stable indices. Neighbour lists and the cursor hold
// handles into it instead of pointers, so a removed probe can never be reached
// through a stale reference.
type arena struct {
	slots []arenaSlot
	free  []uint32
	count int
}

type arenaSlot struct {
	generation uint32
	probe      *probe.Map
}

func (a *arena) insert(p *probe.Map) probe.Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot{})
	}
	s := &a.slots[idx]
	s.generation++
	s.probe = p
	a.count++
	return probe.Handle{Index: idx, Generation: s.generation}
}

func (a *arena) get(h probe.Handle) *probe.Map {
	if h.IsNil() || int(h.Index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.Index]
	if s.generation != h.Generation {
		return nil
	}
	return s.probe
}

func (a *arena) remove(h probe.Handle) {
	if a.get(h) == nil {
		return
	}
	s := &a.slots[h.Index]
	s.probe = nil
	// Bump so outstanding handles go stale immediately.
	s.generation++
	a.free = append(a.free, h.Index)
	a.count--
}

func (a *arena) len() int {
	return a.count
}

// each visits every stored probe in index order.
func (a *arena) each(fn func(h probe.Handle, p *probe.Map)) {
	for i, s := range a.slots {
		if s.probe != nil {
			fn(probe.Handle{Index: uint32(i), Generation: s.generation}, s.probe)
		}
	}
}
