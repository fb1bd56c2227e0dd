package probe

import "fmt"

// Handle is a stable reference to a probe stored in the manager arena.
// A handle whose generation no longer matches its slot is stale and resolves
// to nothing.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Nil is the invalid handle. Generations start at 1, so it never resolves.
var Nil Handle

// IsNil reports whether h is the invalid handle.
func (h Handle) IsNil() bool {
	return h.Generation == 0
}

// String formats the handle as index:generation.
func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", h.Index, h.Generation)
}
