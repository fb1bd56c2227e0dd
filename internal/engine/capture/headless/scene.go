package headless

import "github.com/Faultbox/midgard-probes/internal/engine/capture"

// Scene records the cube faces it is asked to render.
type Scene struct {
	Faces []capture.Context
}

// RenderCubeFace records ctx.
func (s *Scene) RenderCubeFace(ctx capture.Context) {
	s.Faces = append(s.Faces, ctx)
}

// Reset forgets recorded faces.
func (s *Scene) Reset() {
	s.Faces = nil
}
