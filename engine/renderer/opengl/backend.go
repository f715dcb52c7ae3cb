package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/renderer"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

var _ renderer.RendererBackend = (*OpenGLRenderer)(nil)

var ErrNotInitialized = errors.New("opengl backend is not initialized")

// OpenGLRenderer implements renderer.RendererBackend on an OpenGL 4.1 core
// context made current by the platform.
type OpenGLRenderer struct {
	initialized   bool
	deleteProgram func(program uint32)

	// uniform locations per program, looked up once
	uniforms map[uint32]map[string]int32
}

func New() *OpenGLRenderer {
	return &OpenGLRenderer{
		uniforms:      make(map[uint32]map[string]int32),
		deleteProgram: gl.DeleteProgram,
	}
}

func (r *OpenGLRenderer) Initialize() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to load OpenGL entry points: %w", err)
	}
	core.LogInfo("OpenGL version %s, renderer %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r.initialized = true
	return checkError("initialize")
}

func (r *OpenGLRenderer) Shutdown() error {
	for program := range r.uniforms {
		r.deleteProgram(program)
	}
	r.uniforms = make(map[uint32]map[string]int32)
	r.initialized = false
	return nil
}

func (r *OpenGLRenderer) Clear(color metadata.Color, depth float64) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	gl.ClearDepth(depth)
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return checkError("clear")
}

func (r *OpenGLRenderer) UseProgram(program uint32) error {
	gl.UseProgram(program)
	return checkError("use program")
}

func (r *OpenGLRenderer) SetUniformVec3(program uint32, name string, value mgl32.Vec3) error {
	loc := r.uniformLocation(program, name)
	if loc < 0 {
		// optimized out or not declared, nothing to upload
		return nil
	}
	gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	return checkError("set uniform " + name)
}

func (r *OpenGLRenderer) uniformLocation(program uint32, name string) int32 {
	locs, ok := r.uniforms[program]
	if !ok {
		locs = make(map[string]int32)
		r.uniforms[program] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	locs[name] = loc
	return loc
}

func (r *OpenGLRenderer) DrawIndexed(indexCount int32) error {
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	return checkError("draw elements")
}

func checkError(op string) error {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
		// a lost context reports errors forever
		if len(codes) == 8 {
			break
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("opengl %s failed: %s", op, errorString(codes[0]))
}

func errorString(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	}
	return fmt.Sprintf("0x%x", code)
}
