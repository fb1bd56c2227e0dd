package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Screen triangle generated from gl_VertexID; no vertex buffer is needed.
const mipVertexSrc = `#version 410 core

out vec2 vUV;

void main() {
	vec2 pos = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
	vUV = pos;
	gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

// 2x2 box filter: each destination texel averages the four source texels
// it covers.
const mipFragmentSrc = `#version 410 core

in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uSource;
uniform float uTexelSize;

void main() {
	vec2 h = vec2(uTexelSize * 0.5);
	vec4 c = texture(uSource, vUV + vec2(-h.x, -h.y));
	c += texture(uSource, vUV + vec2( h.x, -h.y));
	c += texture(uSource, vUV + vec2(-h.x,  h.y));
	c += texture(uSource, vUV + vec2( h.x,  h.y));
	FragColor = c * 0.25;
}
`

// MipProgram downsamples a source texture by half into the bound target.
type MipProgram struct {
	program   uint32
	vao       uint32
	locSource int32
	locTexel  int32
}

// NewMipProgram compiles the downsample program.
func NewMipProgram() (*MipProgram, error) {
	program, err := CompileProgram(mipVertexSrc, mipFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("mip program: %w", err)
	}

	p := &MipProgram{
		program:   program,
		locSource: MustGetUniform(program, "uSource"),
		locTexel:  MustGetUniform(program, "uTexelSize"),
	}

	// Core profile needs a VAO bound even for attribute-less draws.
	gl.GenVertexArrays(1, &p.vao)
	return p, nil
}

// Bind activates the program and its empty vertex array.
func (p *MipProgram) Bind() {
	gl.UseProgram(p.program)
	gl.BindVertexArray(p.vao)
	gl.Uniform1i(p.locSource, 0)
}

// Unbind deactivates the program.
func (p *MipProgram) Unbind() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draw samples texture (srcRes texels wide) into the bound target.
func (p *MipProgram) Draw(texture uint32, srcRes int32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1f(p.locTexel, TexelSize(srcRes))
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

// Destroy releases the program and vertex array.
func (p *MipProgram) Destroy() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

// TexelSize returns the UV size of one texel of a res-wide texture.
func TexelSize(res int32) float32 {
	if res < 1 {
		return 1
	}
	return 1 / float32(res)
}
