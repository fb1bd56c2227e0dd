package reflection

import (
	"fmt"

	"github.com/Faultbox/midgard-probes/internal/engine/camera"
	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

// updateProbeFace renders one cube face of p into the supersampled target,
// downsamples it through the mip chain and copies each level into the probe's
// layer of the cube map array.
func (m *Manager) updateProbeFace(p *probe.Map, face int) {
	if !p.HasSlot() {
		panic(fmt.Sprintf("reflection: capturing face %d of a probe without a cube slot", face))
	}

	ctx := capture.Context{
		Origin:     p.Origin,
		Face:       face,
		Resolution: m.target.Size(),
		View:       camera.CubeFaceView(p.Origin, face),
		Projection: camera.CubeFaceProjection(m.opts.NearClip, m.opts.FarClip),
		NearClip:   m.opts.NearClip,
		FarClip:    m.opts.FarClip,
		Target:     m.target,
	}

	// The scene pass may register new spatial groups; the snapshot flag
	// defers them until the next tick.
	m.target.Bind()
	wasSnapshot := m.snapshot
	m.snapshot = true
	m.scene.RenderCubeFace(ctx)
	m.snapshot = wasSnapshot
	m.target.Flush()

	p.LastUpdate = m.now
	m.stats.FacesRendered++

	m.device.BindMipProgram()

	res := m.target.Size()
	mips := m.mipCount()
	for i, rt := range m.mipChain {
		rt.Bind()

		src := m.target
		if i > 0 {
			src = m.mipChain[i-1]
		}
		m.device.DrawScreenTriangle(src, res)

		res /= 2

		if mip := i - (len(m.mipChain) - mips); mip >= 0 {
			m.device.CopyToCubeArray(m.cube, int32(p.CubeIndex), int32(face), int32(mip), res)
		}
		rt.Flush()
	}

	m.device.UnbindMipProgram()
}
