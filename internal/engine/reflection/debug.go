package reflection

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-probes/internal/engine/debug"
)

// boxColor tints the influence volume of box probes.
var boxColor = mgl32.Vec4{0, 0.8, 1, 1}

// DebugLines returns a line from every probe to each of its neighbours, each
// edge once, plus the wireframe of every box influence volume.
func (m *Manager) DebugLines() []debug.Segment {
	var segs []debug.Segment
	for _, h := range m.probes {
		p := m.arena.get(h)
		for _, nh := range p.Neighbors {
			// Edges are symmetric; emit from the lower index only.
			if nh.Index < h.Index {
				continue
			}
			other := m.arena.get(nh)
			if other == nil {
				continue
			}
			segs = append(segs, debug.Segment{From: p.Origin, To: other.Origin, Color: debug.NeighborColor})
		}

		if box, ok := p.InfluenceBox(); ok {
			segs = appendWireframe(segs, debug.BoxWireframeVertices(box))
		}
	}
	return segs
}

func appendWireframe(segs []debug.Segment, verts []float32) []debug.Segment {
	for i := 0; i+5 < len(verts); i += 6 {
		segs = append(segs, debug.Segment{
			From:  mgl32.Vec3{verts[i], verts[i+1], verts[i+2]},
			To:    mgl32.Vec3{verts[i+3], verts[i+4], verts[i+5]},
			Color: boxColor,
		})
	}
	return segs
}
