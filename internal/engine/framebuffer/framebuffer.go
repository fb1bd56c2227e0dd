// Package framebuffer provides OpenGL framebuffer utilities for offscreen rendering.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-probes/internal/engine/capture"
)

// Framebuffer is a square offscreen render target with a colour texture and
// an optional depth attachment. It implements capture.RenderTarget.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	size         int32
	format       capture.Format

	// State saved by Bind and restored by Flush.
	prevFBO      int32
	prevViewport [4]int32
}

// textureFormat maps a capture format to the GL internal format and pixel format.
func textureFormat(f capture.Format) (internal int32, format uint32) {
	if f == capture.FormatRGB {
		return gl.RGB8, gl.RGB
	}
	return gl.RGBA8, gl.RGBA
}

// New creates a new framebuffer with the specified edge length.
func New(size int32, format capture.Format, depth bool) (*Framebuffer, error) {
	if size < 1 {
		size = 1
	}

	fb := &Framebuffer{
		size:   size,
		format: format,
	}

	if err := fb.create(depth); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

func (fb *Framebuffer) create(depth bool) error {
	// Create framebuffer object
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	// Create color texture attachment
	internal, format := textureFormat(fb.format)
	gl.GenTextures(1, &fb.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, fb.size, fb.size, 0, format, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)

	// Create depth renderbuffer attachment
	if depth {
		gl.GenRenderbuffers(1, &fb.depthRBO)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.size, fb.size)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
	}

	// Check framebuffer completeness
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// Bind makes this framebuffer the current render target and sets the
// viewport to cover it, saving the previous framebuffer and viewport.
func (fb *Framebuffer) Bind() {
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &fb.prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &fb.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.size, fb.size)
}

// Flush restores the framebuffer and viewport saved by Bind.
func (fb *Framebuffer) Flush() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb.prevFBO))
	gl.Viewport(fb.prevViewport[0], fb.prevViewport[1], fb.prevViewport[2], fb.prevViewport[3])
}

// Clear clears color and depth buffers with the specified color.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ColorTexture returns the color attachment texture ID.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTexture
}

// FBO returns the underlying framebuffer object ID.
func (fb *Framebuffer) FBO() uint32 {
	return fb.fbo
}

// Size returns the edge length.
func (fb *Framebuffer) Size() int32 {
	return fb.size
}

// ReadPixels reads the color attachment as bottom-up RGBA bytes.
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.size*fb.size*4)

	// Bind our framebuffer to read from it
	var prevFBO int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)

	gl.ReadPixels(0, 0, fb.size, fb.size, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Restore previous framebuffer
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prevFBO))

	return pixels
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
