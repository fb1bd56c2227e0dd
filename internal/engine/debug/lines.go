package debug

import "github.com/go-gl/mathgl/mgl32"

// Segment is a coloured debug line.
type Segment struct {
	From, To mgl32.Vec3
	Color    mgl32.Vec4
}

// NeighborColor is the colour of probe-to-neighbour lines.
var NeighborColor = mgl32.Vec4{1, 0.5, 0, 1}

// SegmentVertices flattens segments into interleaved position/colour
// vertices: [x, y, z, r, g, b, a] per endpoint.
func SegmentVertices(segs []Segment) []float32 {
	out := make([]float32, 0, len(segs)*14)
	for _, s := range segs {
		out = append(out, s.From.X(), s.From.Y(), s.From.Z(), s.Color[0], s.Color[1], s.Color[2], s.Color[3])
		out = append(out, s.To.X(), s.To.Y(), s.To.Z(), s.Color[0], s.Color[1], s.Color[2], s.Color[3])
	}
	return out
}
