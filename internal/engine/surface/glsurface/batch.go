package glsurface

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const lineVertexShader = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec4 aColor;

	uniform mat4 uProjection;

	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
		vColor = aColor;
	}
` + "\x00"

const lineFragmentShader = `
	#version 410 core

	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		FragColor = vColor;
	}
` + "\x00"

const textVertexShader = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec2 aTexCoord;
	layout (location = 2) in vec4 aColor;

	uniform mat4 uProjection;

	out vec2 vTexCoord;
	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
		vTexCoord = aTexCoord;
		vColor = aColor;
	}
` + "\x00"

// The atlas is single channel; coverage lives in red.
const textFragmentShader = `
	#version 410 core

	uniform sampler2D uTexture;

	in vec2 vTexCoord;
	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		float coverage = texture(uTexture, vTexCoord).r;
		FragColor = vec4(vColor.rgb, vColor.a * coverage);
	}
` + "\x00"

// attrib is one float vertex attribute: shader location and component count.
type attrib struct {
	location uint32
	size     int32
}

// batch is a shader program with a streaming VAO/VBO and a CPU-side
// vertex list that is uploaded once per draw.
type batch struct {
	program uint32
	projLoc int32
	texLoc  int32
	vao     uint32
	vbo     uint32
	verts   []float32
}

func newBatch(vertexSrc, fragmentSrc string, layout []attrib) (*batch, error) {
	program, err := linkShaderProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	b := &batch{
		program: program,
		projLoc: gl.GetUniformLocation(program, gl.Str("uProjection\x00")),
		texLoc:  gl.GetUniformLocation(program, gl.Str("uTexture\x00")),
		verts:   make([]float32, 0, 8192),
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	var floats int32
	for _, a := range layout {
		floats += a.size
	}
	stride := floats * 4
	offset := uintptr(0)
	for _, a := range layout {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(a.location)
		offset += uintptr(a.size) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b, nil
}

func (b *batch) reset() { b.verts = b.verts[:0] }

// draw uploads the queued vertices and issues one draw call.
func (b *batch) draw(mode uint32, proj *[16]float32, floatsPerVertex int) {
	if len(b.verts) == 0 {
		return
	}
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.projLoc, 1, false, &proj[0])
	if b.texLoc >= 0 {
		gl.Uniform1i(b.texLoc, 0)
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.verts)*4, unsafe.Pointer(&b.verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(b.verts)/floatsPerVertex))

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (b *batch) release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
	}
}

// linkShaderProgram compiles and links a shader program.
func linkShaderProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link failed: %s", log)
	}
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", log)
	}
	return shader, nil
}
