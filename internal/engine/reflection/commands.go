package reflection

import "github.com/Faultbox/midgard-probes/internal/engine/probe"

type commandKind int

const (
	commandCreate commandKind = iota
	commandKill
)

type command struct {
	kind   commandKind
	handle probe.Handle
}

// commandBuffer collects structural changes to the live probe list while it
// may be iterated, and replays them at the start of the next tick.
type commandBuffer struct {
	creates []command
	kills   []command
}

func (b *commandBuffer) create(h probe.Handle) {
	b.creates = append(b.creates, command{kind: commandCreate, handle: h})
}

func (b *commandBuffer) kill(h probe.Handle) {
	b.kills = append(b.kills, command{kind: commandKill, handle: h})
}

func (b *commandBuffer) len() int {
	return len(b.creates) + len(b.kills)
}

// drain applies kills first, then creates, and empties the buffer.
func (b *commandBuffer) drain(apply func(c command)) {
	kills, creates := b.kills, b.creates
	b.kills, b.creates = nil, nil
	for _, c := range kills {
		apply(c)
	}
	for _, c := range creates {
		apply(c)
	}
}

// pendingCreate reports whether h is waiting to be inserted.
func (b *commandBuffer) pendingCreate(h probe.Handle) bool {
	for _, c := range b.creates {
		if c.handle == h {
			return true
		}
	}
	return false
}

// pendingKill reports whether h is queued for removal.
func (b *commandBuffer) pendingKill(h probe.Handle) bool {
	for _, c := range b.kills {
		if c.handle == h {
			return true
		}
	}
	return false
}
