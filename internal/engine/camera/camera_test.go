package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
)

func TestCubeFaceView_LooksDownAxis(t *testing.T) {
	origin := mgl32.Vec3{3, 4, 5}
	for face := 0; face < capture.FaceCount; face++ {
		view := CubeFaceView(origin, face)

		// The origin maps to the eye, a point ahead of it maps onto -Z.
		eye := mgl32.TransformCoordinate(origin, view)
		assert.InDelta(t, 0, eye.Len(), 1e-4, "face %s", capture.FaceName(face))

		ahead := mgl32.TransformCoordinate(origin.Add(capture.FaceLook[face]), view)
		assert.InDelta(t, -1, ahead.Z(), 1e-4, "face %s", capture.FaceName(face))
		assert.InDelta(t, 0, ahead.X(), 1e-4)
		assert.InDelta(t, 0, ahead.Y(), 1e-4)
	}
}

func TestOrbitCamera_Zoom(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)

	c.Distance = 10
	c.HandleZoom(-1000)
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitCamera_PositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{10, 0, 10}
	c.Advance(0.5, 1)

	assert.InDelta(t, c.Distance, c.Position().Sub(c.Center).Len(), 1e-3)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{128, 32, 64})

	assert.Equal(t, mgl32.Vec3{64, 16, 32}, c.Center)
	assert.InDelta(t, 76.8, c.Distance, 1e-3)
}
