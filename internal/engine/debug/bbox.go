// Package debug provides debug visualization utilities for reflection probes.
package debug

import "github.com/go-gl/mathgl/mgl32"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// unitBoxEdges lists the 12 edges of the [-1,1]^3 cube as corner pairs.
// Corners are indexed by bits: x = bit 0, y = bit 1, z = bit 2.
var unitBoxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

func unitCorner(i int) mgl32.Vec3 {
	c := mgl32.Vec3{-1, -1, -1}
	for axis := 0; axis < 3; axis++ {
		if i&(1<<axis) != 0 {
			c[axis] = 1
		}
	}
	return c
}

// BoxWireframeVertices returns line vertices for an oriented influence box
// given as a world-to-unit-box transform. Format: [x, y, z] per vertex.
func BoxWireframeVertices(worldToBox mgl32.Mat4) []float32 {
	boxToWorld := worldToBox.Inv()
	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, e := range unitBoxEdges {
		for _, corner := range e {
			p := mgl32.TransformCoordinate(unitCorner(corner), boxToWorld)
			out = append(out, p.X(), p.Y(), p.Z())
		}
	}
	return out
}

// GenerateBBoxWireframeVertices creates line vertices for an axis-aligned box.
func GenerateBBoxWireframeVertices(min, max mgl32.Vec3) []float32 {
	center := min.Add(max).Mul(0.5)
	half := max.Sub(min).Mul(0.5)
	boxToWorld := mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl32.Scale3D(half.X(), half.Y(), half.Z()))
	return BoxWireframeVertices(boxToWorld.Inv())
}
