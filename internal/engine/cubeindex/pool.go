// Package cubeindex allocates layers of the shared cube map array.
package cubeindex

import "fmt"

// Slot is anything that can hold a cube index. Probes implement it.
type Slot interface {
	GetCubeIndex() int
	SetCubeIndex(int)
}

// Pool tracks which layers of a fixed-size cube map array are in use.
// Exactly the indices owned by live probes are marked used.
type Pool struct {
	used       []bool
	guaranteed int
}

// New creates a pool of size layers. The first guaranteed entries of the
// ranked list passed to Allocate are never robbed of their slot; a value <= 0
// means the whole pool is guaranteed.
func New(size, guaranteed int) *Pool {
	if size < 1 {
		panic(fmt.Sprintf("cube index pool size must be positive, got %d", size))
	}
	if guaranteed <= 0 || guaranteed > size {
		guaranteed = size
	}
	return &Pool{
		used:       make([]bool, size),
		guaranteed: guaranteed,
	}
}

// Size returns the number of layers in the pool.
func (p *Pool) Size() int {
	return len(p.used)
}

// Guaranteed returns how many leading probes keep their slots when stealing.
func (p *Pool) Guaranteed() int {
	return p.guaranteed
}

// Allocate returns a free layer if there is one. Otherwise it steals the slot
// of the lowest ranked slot holder past the guaranteed count, walking ranked
// from the back. The victim is reset to -1 and must be re-rendered when it is
// next scheduled.
//
// Panics if nothing can be stolen: the pool is too small for the number of
// probes allowed to hold slots.
func (p *Pool) Allocate(ranked []Slot) int {
	for i, used := range p.used {
		if !used {
			p.used[i] = true
			return i
		}
	}

	for i := len(ranked) - 1; i >= p.guaranteed; i-- {
		if idx := ranked[i].GetCubeIndex(); idx != -1 {
			ranked[i].SetCubeIndex(-1)
			return idx
		}
	}

	panic(fmt.Sprintf("cube index pool exhausted: %d layers in use and nothing stealable among %d probes", len(p.used), len(ranked)))
}

// Free returns a layer to the pool. Freeing a free layer is harmless; callers
// track their own index so this does not happen in practice.
func (p *Pool) Free(index int) {
	p.check(index)
	p.used[index] = false
}

// InUse reports whether index is allocated.
func (p *Pool) InUse(index int) bool {
	p.check(index)
	return p.used[index]
}

// FreeCount returns the number of unallocated layers.
func (p *Pool) FreeCount() int {
	n := 0
	for _, used := range p.used {
		if !used {
			n++
		}
	}
	return n
}

// Reset marks every layer free.
func (p *Pool) Reset() {
	for i := range p.used {
		p.used[i] = false
	}
}

func (p *Pool) check(index int) {
	if index < 0 || index >= len(p.used) {
		panic(fmt.Sprintf("cube index %d out of range [0,%d)", index, len(p.used)))
	}
}
