// Package capture defines the rendering capabilities the reflection probe
// manager needs from the pipeline: render targets, a cube map array, the mip
// downsample program, screen triangle draws, cube face copies and the probe
// uniform buffer.
package capture

import "github.com/go-gl/mathgl/mgl32"

// Format selects the colour format of a render target.
type Format int

const (
	FormatRGBA Format = iota
	FormatRGB
)

// RenderTarget is an offscreen colour (and optional depth) target.
type RenderTarget interface {
	// Bind makes the target current and sets the viewport to its size.
	Bind()
	// Flush finishes rendering to the target and restores the previous one.
	Flush()
	// Size returns the edge length; targets are square.
	Size() int32
}

// CubeMapArray is the shared texture holding every probe's cube map.
type CubeMapArray interface {
	Resolution() int32
	Layers() int32
	Mips() int32
}

// Device is the pipeline collaborator. Only allocation can fail; binding and
// drawing failures are driver-state bugs and are not reported.
type Device interface {
	NewRenderTarget(size int32, format Format, depth bool) (RenderTarget, error)
	NewCubeMapArray(resolution, layers, mips int32) (CubeMapArray, error)

	BindMipProgram()
	UnbindMipProgram()

	// DrawScreenTriangle draws a full screen triangle into the bound target,
	// sampling src whose texel extent is srcRes.
	DrawScreenTriangle(src RenderTarget, srcRes int32)

	// CopyToCubeArray copies the lower-left size×size region of the bound
	// target into mip level mip of face face of layer layer.
	CopyToCubeArray(dst CubeMapArray, layer, face, mip, size int32)

	UploadUniforms(data []byte)
	BindUniforms(binding uint32)
}

// Context describes a single cube face capture. Exactly one is live at a
// time; it replaces swapping pipeline-global render targets.
type Context struct {
	Origin     mgl32.Vec3
	Face       int
	Resolution int32
	View       mgl32.Mat4
	Projection mgl32.Mat4
	NearClip   float32
	FarClip    float32
	Target     RenderTarget
}

// SceneRenderer draws the world for a cube face capture into ctx.Target,
// which is already bound.
type SceneRenderer interface {
	RenderCubeFace(ctx Context)
}

// SceneRendererFunc adapts a function to SceneRenderer.
type SceneRendererFunc func(ctx Context)

// RenderCubeFace calls f(ctx).
func (f SceneRendererFunc) RenderCubeFace(ctx Context) {
	f(ctx)
}
