package reflection

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-probes/internal/engine/probe"
)

const (
	// UniformBinding is the uniform block binding point the shading stage
	// reads probes from.
	UniformBinding = 1
	// MaxNeighborIndices caps the shared neighbour index array.
	MaxNeighborIndices = 4096
)

// UniformBlock mirrors the std140 ReflectionProbes block:
//
//	mat4  refBox[N];       // eye space -> unit box, for box probes
//	vec4  refSphere[N];    // eye space origin, radius
//	vec4  refParams[N];    // ambiance, 0, 0, 0
//	ivec4 refIndex[N];     // cube index, neighbour run / 4 (or -1), neighbour count, priority
//	ivec4 refNeighbor[MaxNeighborIndices/4];
//	int   refmapCount;
//
// A negative priority flags a probe with a box influence volume.
type UniformBlock struct {
	RefBox      []mgl32.Mat4
	RefSphere   []mgl32.Vec4
	RefParams   []mgl32.Vec4
	RefIndex    [][4]int32
	RefNeighbor [MaxNeighborIndices]int32
	RefmapCount int32
}

func newUniformBlock(n int) *UniformBlock {
	return &UniformBlock{
		RefBox:    make([]mgl32.Mat4, n),
		RefSphere: make([]mgl32.Vec4, n),
		RefParams: make([]mgl32.Vec4, n),
		RefIndex:  make([][4]int32, n),
	}
}

// Size returns the byte size of the serialised block.
func (u *UniformBlock) Size() int {
	n := len(u.RefIndex)
	size := n*64 + n*16*3 + MaxNeighborIndices*4 + 4
	// Round the block up to a vec4 boundary.
	return (size + 15) &^ 15
}

// Bytes serialises the block little-endian in std140 layout.
func (u *UniformBlock) Bytes() []byte {
	buf := make([]byte, u.Size())
	off := 0
	putF := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	putI := func(v int32) {
		binary.LittleEndian.PutUint32(buf[off:], uint32(v))
		off += 4
	}

	for _, m := range u.RefBox {
		for _, v := range m {
			putF(v)
		}
	}
	for _, s := range u.RefSphere {
		for _, v := range s {
			putF(v)
		}
	}
	for _, p := range u.RefParams {
		for _, v := range p {
			putF(v)
		}
	}
	for _, idx := range u.RefIndex {
		for _, v := range idx {
			putI(v)
		}
	}
	for _, v := range u.RefNeighbor {
		putI(v)
	}
	putI(u.RefmapCount)

	return buf
}

// CollectActive fills out with up to len(out) slot-assigned probes, nearest
// first, and pads the rest with probe.Nil. Every probe looked at is stamped
// as recently bound. Active probes get their position in out as ProbeIndex;
// all others get NoIndex. Returns the number of active probes.
func (m *Manager) CollectActive(out []probe.Handle) int {
	count := 0
	i := 0
	for ; count < len(out) && i < len(m.probes); i++ {
		p := m.arena.get(m.probes[i])
		p.LastBind = m.now
		if p.HasSlot() {
			p.ProbeIndex = count
			out[count] = m.probes[i]
			count++
		} else {
			p.ProbeIndex = probe.NoIndex
		}
	}
	for ; i < len(m.probes); i++ {
		m.arena.get(m.probes[i]).ProbeIndex = probe.NoIndex
	}
	for j := count; j < len(out); j++ {
		out[j] = probe.Nil
	}
	return count
}

// PackShaderUniforms collects the active probes and packs them into the
// uniform block, transforming origins and boxes into the space of view.
// The returned block is reused by later calls.
func (m *Manager) PackShaderUniforms(view mgl32.Mat4) *UniformBlock {
	if m.uniforms == nil {
		m.uniforms = newUniformBlock(m.opts.MaxProbes)
	}
	rpd := m.uniforms
	*rpd = UniformBlock{
		RefBox:    rpd.RefBox,
		RefSphere: rpd.RefSphere,
		RefParams: rpd.RefParams,
		RefIndex:  rpd.RefIndex,
	}
	for i := range rpd.RefIndex {
		rpd.RefBox[i] = mgl32.Mat4{}
		rpd.RefSphere[i] = mgl32.Vec4{}
		rpd.RefParams[i] = mgl32.Vec4{}
		rpd.RefIndex[i] = [4]int32{}
	}

	n := m.CollectActive(m.active)
	eyeToWorld := view.Inv()

	nc := 0 // start of the next neighbour run, always a multiple of 4
	for count := 0; count < n; count++ {
		p := m.arena.get(m.active[count])

		oa := mgl32.TransformCoordinate(p.Origin, view)
		rpd.RefSphere[count] = mgl32.Vec4{oa.X(), oa.Y(), oa.Z(), p.Radius}

		idx := &rpd.RefIndex[count]
		idx[0] = int32(p.CubeIndex)
		idx[1] = int32(nc / 4)
		idx[3] = p.Priority

		if box, ok := p.InfluenceBox(); ok {
			rpd.RefBox[count] = box.Mul4(eyeToWorld)
			idx[3] = -idx[3]
			if idx[3] == 0 {
				// Priority zero cannot carry the box tag as a sign.
				idx[3] = -1
			}
		}

		rpd.RefParams[count] = mgl32.Vec4{p.Ambiance, 0, 0, 0}

		ni := nc
		for _, nh := range p.Neighbors {
			if ni >= MaxNeighborIndices {
				break
			}
			other := m.arena.get(nh)
			if other == nil || other.ProbeIndex == probe.NoIndex {
				continue
			}
			rpd.RefNeighbor[ni] = int32(other.ProbeIndex)
			ni++
		}

		if ni == nc {
			idx[1] = -1
		} else {
			idx[2] = int32(ni - nc)
			nc = ni
			if nc%4 != 0 {
				nc += 4 - nc%4
			}
		}
	}

	rpd.RefmapCount = int32(n)
	return rpd
}

// UpdateUniforms packs the block and uploads it to the device.
func (m *Manager) UpdateUniforms(view mgl32.Mat4) *UniformBlock {
	block := m.PackShaderUniforms(view)
	m.device.UploadUniforms(block.Bytes())
	m.uniformsUploaded = true
	return block
}

// SetUniforms binds the uniform block for shading, uploading it first if it
// has never been uploaded.
func (m *Manager) SetUniforms(view mgl32.Mat4) {
	if !m.uniformsUploaded {
		m.UpdateUniforms(view)
	}
	m.device.BindUniforms(UniformBinding)
}
