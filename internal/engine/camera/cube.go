package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
)

// CubeFaceView returns the view matrix for rendering face of a cube map
// centred at origin.
func CubeFaceView(origin mgl32.Vec3, face int) mgl32.Mat4 {
	return mgl32.LookAtV(origin, origin.Add(capture.FaceLook[face]), capture.FaceUp[face])
}

// CubeFaceProjection returns the 90 degree square projection shared by all
// cube faces.
func CubeFaceProjection(near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(90), 1, near, far)
}
