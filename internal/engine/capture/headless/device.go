// Package headless implements the capture capabilities without a GPU. Every
// call is recorded so tests and the -headless demo can inspect what the
// probe manager asked the pipeline to do.
package headless

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
)

// ErrAllocation is returned when allocation failure injection is enabled.
var ErrAllocation = errors.New("headless: allocation failed")

// Target is a recorded render target.
type Target struct {
	dev    *Device
	id     int
	size   int32
	format capture.Format
	depth  bool
}

// Bind records the bind.
func (t *Target) Bind() {
	if t.dev.bound != nil {
		panic(fmt.Sprintf("headless: target %d bound while target %d is bound", t.id, t.dev.bound.id))
	}
	t.dev.bound = t
	t.dev.Binds++
}

// Flush records the flush.
func (t *Target) Flush() {
	if t.dev.bound != t {
		panic(fmt.Sprintf("headless: target %d flushed while not bound", t.id))
	}
	t.dev.bound = nil
}

// Size returns the edge length.
func (t *Target) Size() int32 { return t.size }

// ID returns the allocation order of the target.
func (t *Target) ID() int { return t.id }

// CubeArray is a recorded cube map array.
type CubeArray struct {
	resolution, layers, mips int32
}

func (c *CubeArray) Resolution() int32 { return c.resolution }
func (c *CubeArray) Layers() int32     { return c.layers }
func (c *CubeArray) Mips() int32       { return c.mips }

// Copy is one recorded cube face copy.
type Copy struct {
	Layer, Face, Mip, Size int32
}

// Device records capture calls.
type Device struct {
	Targets    []*Target
	CubeArrays []*CubeArray
	Copies     []Copy
	Draws      int
	Binds      int
	Uploads    [][]byte
	Binding    uint32
	BoundUBO   bool

	// FailAllocations makes every New* call return ErrAllocation.
	FailAllocations bool

	bound     *Target
	programOn bool
}

// New creates an empty recording device.
func New() *Device {
	return &Device{}
}

// NewRenderTarget records a render target allocation.
func (d *Device) NewRenderTarget(size int32, format capture.Format, depth bool) (capture.RenderTarget, error) {
	if d.FailAllocations {
		return nil, ErrAllocation
	}
	t := &Target{dev: d, id: len(d.Targets), size: size, format: format, depth: depth}
	d.Targets = append(d.Targets, t)
	return t, nil
}

// NewCubeMapArray records a cube map array allocation.
func (d *Device) NewCubeMapArray(resolution, layers, mips int32) (capture.CubeMapArray, error) {
	if d.FailAllocations {
		return nil, ErrAllocation
	}
	c := &CubeArray{resolution: resolution, layers: layers, mips: mips}
	d.CubeArrays = append(d.CubeArrays, c)
	return c, nil
}

// BindMipProgram records the program bind.
func (d *Device) BindMipProgram() {
	if d.programOn {
		panic("headless: mip program bound twice")
	}
	d.programOn = true
}

// UnbindMipProgram records the program unbind.
func (d *Device) UnbindMipProgram() {
	d.programOn = false
}

// DrawScreenTriangle records a draw. It must happen with a target and the
// mip program bound.
func (d *Device) DrawScreenTriangle(src capture.RenderTarget, srcRes int32) {
	if d.bound == nil || !d.programOn {
		panic("headless: draw without bound target and program")
	}
	if src == capture.RenderTarget(d.bound) {
		panic("headless: draw samples the bound target")
	}
	d.Draws++
}

// CopyToCubeArray records a copy into the cube map array.
func (d *Device) CopyToCubeArray(dst capture.CubeMapArray, layer, face, mip, size int32) {
	if d.bound == nil {
		panic("headless: copy without a bound target")
	}
	if layer < 0 || layer >= dst.Layers() {
		panic(fmt.Sprintf("headless: copy to layer %d outside [0,%d)", layer, dst.Layers()))
	}
	d.Copies = append(d.Copies, Copy{Layer: layer, Face: face, Mip: mip, Size: size})
}

// UploadUniforms records a uniform buffer upload.
func (d *Device) UploadUniforms(data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	d.Uploads = append(d.Uploads, buf)
}

// BindUniforms records the binding point.
func (d *Device) BindUniforms(binding uint32) {
	d.Binding = binding
	d.BoundUBO = true
}

// Idle reports whether no target or program is left bound.
func (d *Device) Idle() bool {
	return d.bound == nil && !d.programOn
}

// Reset clears the recorded draws, copies and uploads but keeps allocations.
func (d *Device) Reset() {
	d.Copies = nil
	d.Draws = 0
	d.Binds = 0
	d.Uploads = nil
}
