package glcapture

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
)

// FaceColor is a stand-in sky colour per cube face so captures are visibly
// oriented without a real scene.
func FaceColor(face int, origin mgl32.Vec3) mgl32.Vec4 {
	dir := capture.FaceLook[face]
	// Map the look direction from [-1,1] to [0.2,1] and tint by height.
	c := dir.Mul(0.4).Add(mgl32.Vec3{0.6, 0.6, 0.6})
	tint := mgl32.Clamp(origin.Y()/128, 0, 1) * 0.2
	return mgl32.Vec4{c.X(), c.Y(), mgl32.Clamp(c.Z()+tint, 0, 1), 1}
}

// ClearScene renders each cube face as a flat colour.
type ClearScene struct{}

// RenderCubeFace clears the bound target.
func (ClearScene) RenderCubeFace(ctx capture.Context) {
	c := FaceColor(ctx.Face, ctx.Origin)
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
