package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const lineVertexSrc = `#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uViewProj;

out vec4 vColor;

void main() {
	vColor = aColor;
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// LineVertexStride is the byte size of one interleaved position/colour vertex.
const LineVertexStride = 7 * 4

// LineProgram draws coloured debug lines from interleaved vertices.
type LineProgram struct {
	program     uint32
	vao         uint32
	vbo         uint32
	locViewProj int32
}

// NewLineProgram compiles the line program and sets up its vertex layout.
func NewLineProgram() (*LineProgram, error) {
	program, err := CompileProgram(lineVertexSrc, lineFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("line program: %w", err)
	}

	p := &LineProgram{
		program:     program,
		locViewProj: MustGetUniform(program, "uViewProj"),
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, LineVertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, LineVertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return p, nil
}

// Draw uploads vertices ([x y z r g b a] per vertex, two per line) and draws them.
func (p *LineProgram) Draw(vertices []float32, viewProj mgl32.Mat4) {
	count := int32(len(vertices) * 4 / LineVertexStride)
	if count < 2 {
		return
	}

	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.locViewProj, 1, false, &viewProj[0])

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, count)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases the program and buffers.
func (p *LineProgram) Destroy() {
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
		p.vbo = 0
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
