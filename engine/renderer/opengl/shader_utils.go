package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

func glShaderType(stage metadata.ShaderStage) (uint32, error) {
	switch stage {
	case metadata.ShaderStageVertex:
		return gl.VERTEX_SHADER, nil
	case metadata.ShaderStageFragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("unsupported shader stage %s", stage)
}

func (r *OpenGLRenderer) CompileShader(stage metadata.ShaderStage, source string) (uint32, error) {
	if !r.initialized {
		return 0, ErrNotInitialized
	}
	shaderType, err := glShaderType(stage)
	if err != nil {
		return 0, err
	}

	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, fmt.Errorf("failed to create %s shader object", stage)
	}
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %s shader: %v", stage, strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}

func (r *OpenGLRenderer) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

func (r *OpenGLRenderer) LinkProgram(vertex, fragment uint32) (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("failed to create program object")
	}
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)

	return r.trackProgram(program, checkError("link program"))
}

// trackProgram registers a linked program, or releases it when linking
// reported an error.
func (r *OpenGLRenderer) trackProgram(program uint32, err error) (uint32, error) {
	if err != nil {
		r.DestroyProgram(program)
		return 0, err
	}
	r.uniforms[program] = make(map[string]int32)
	return program, nil
}

func (r *OpenGLRenderer) DestroyProgram(program uint32) {
	r.deleteProgram(program)
	delete(r.uniforms, program)
}
