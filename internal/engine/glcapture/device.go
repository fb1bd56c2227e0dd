// Package glcapture implements the capture capabilities on OpenGL 4.1.
package glcapture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/cubemap"
	"github.com/Faultbox/midgard-probes/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-probes/internal/engine/shader"
)

// Device renders probe faces with OpenGL.
// IMPORTANT: Must be created AFTER the OpenGL context is current.
type Device struct {
	log *zap.Logger
	mip *shader.MipProgram
	ubo uint32

	targets []*framebuffer.Framebuffer
	cubes   []*cubemap.Array
}

// New initializes OpenGL and compiles the downsample program.
func New(log *zap.Logger) (*Device, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	mip, err := shader.NewMipProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create mip program: %w", err)
	}

	return &Device{log: log, mip: mip}, nil
}

// NewRenderTarget allocates a square framebuffer.
func (d *Device) NewRenderTarget(size int32, format capture.Format, depth bool) (capture.RenderTarget, error) {
	fb, err := framebuffer.New(size, format, depth)
	if err != nil {
		return nil, err
	}
	d.targets = append(d.targets, fb)
	d.log.Debug("render target created",
		zap.Int32("size", size),
		zap.Bool("depth", depth),
		zap.Uint32("fbo", fb.FBO()),
	)
	return fb, nil
}

// NewCubeMapArray allocates the probe cube map array.
func (d *Device) NewCubeMapArray(resolution, layers, mips int32) (capture.CubeMapArray, error) {
	a, err := cubemap.New(resolution, layers, mips)
	if err != nil {
		return nil, err
	}
	d.cubes = append(d.cubes, a)
	return a, nil
}

// BindMipProgram activates the downsample program.
func (d *Device) BindMipProgram() {
	gl.Disable(gl.DEPTH_TEST)
	d.mip.Bind()
}

// UnbindMipProgram deactivates the downsample program.
func (d *Device) UnbindMipProgram() {
	d.mip.Unbind()
	gl.Enable(gl.DEPTH_TEST)
}

// DrawScreenTriangle samples src into the bound target.
func (d *Device) DrawScreenTriangle(src capture.RenderTarget, srcRes int32) {
	fb, ok := src.(*framebuffer.Framebuffer)
	if !ok {
		panic(fmt.Sprintf("glcapture: cannot sample %T", src))
	}
	d.mip.Draw(fb.ColorTexture(), srcRes)
}

// CopyToCubeArray copies the bound target into one face and level of dst.
func (d *Device) CopyToCubeArray(dst capture.CubeMapArray, layer, face, mip, size int32) {
	a, ok := dst.(*cubemap.Array)
	if !ok {
		panic(fmt.Sprintf("glcapture: cannot copy into %T", dst))
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, a.Texture())
	gl.CopyTexSubImage3D(gl.TEXTURE_CUBE_MAP_ARRAY, mip, 0, 0, cubemap.LayerFace(layer, face), 0, 0, size, size)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, 0)
}

// UploadUniforms replaces the contents of the probe uniform buffer.
func (d *Device) UploadUniforms(data []byte) {
	if len(data) == 0 {
		return
	}
	if d.ubo == 0 {
		gl.GenBuffers(1, &d.ubo)
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, d.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, len(data), gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// BindUniforms binds the probe uniform buffer to a block binding point.
func (d *Device) BindUniforms(binding uint32) {
	if d.ubo == 0 {
		return
	}
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, d.ubo)
}

// CubeArray returns the most recently allocated cube map array, for sampling.
func (d *Device) CubeArray() *cubemap.Array {
	if len(d.cubes) == 0 {
		return nil
	}
	return d.cubes[len(d.cubes)-1]
}

// Close releases every GL resource the device created.
func (d *Device) Close() {
	d.log.Info("closing capture device")
	for _, fb := range d.targets {
		fb.Destroy()
	}
	for _, a := range d.cubes {
		a.Destroy()
	}
	if d.ubo != 0 {
		gl.DeleteBuffers(1, &d.ubo)
		d.ubo = 0
	}
	if d.mip != nil {
		d.mip.Destroy()
	}
}
