package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

var ErrNoBackend = errors.New("renderer backend is nil")

type RendererType uint8

const (
	OpenGL RendererType = iota
)

// Renderer groups backend calls into the operations the systems need.
type Renderer struct {
	backend    RendererBackend
	clearColor metadata.Color
	clearDepth float64
}

func New(backend RendererBackend) (*Renderer, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	return &Renderer{
		backend:    backend,
		clearColor: metadata.DefaultClearColor,
		clearDepth: metadata.DefaultClearDepth,
	}, nil
}

func (r *Renderer) Initialize() error {
	if err := r.backend.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize renderer backend: %w", err)
	}
	core.LogDebug("Renderer backend initialized.")
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) SetClearColor(color metadata.Color) {
	r.clearColor = color
}

// BeginFrame clears the color and depth buffers.
func (r *Renderer) BeginFrame() error {
	if err := r.backend.Clear(r.clearColor, r.clearDepth); err != nil {
		return fmt.Errorf("failed to clear frame: %w", err)
	}
	return nil
}

// CreateProgram compiles both stages and links them. The stage objects are
// released whether or not linking succeeds.
func (r *Renderer) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := r.backend.CompileShader(metadata.ShaderStageVertex, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex stage: %w", err)
	}
	defer r.backend.DeleteShader(vs)

	fs, err := r.backend.CompileShader(metadata.ShaderStageFragment, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment stage: %w", err)
	}
	defer r.backend.DeleteShader(fs)

	program, err := r.backend.LinkProgram(vs, fs)
	if err != nil {
		return 0, err
	}
	return program, nil
}

func (r *Renderer) DestroyProgram(program uint32) {
	r.backend.DestroyProgram(program)
}

func (r *Renderer) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	g, err := r.backend.CreateGeometry(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create geometry %q: %w", config.Name, err)
	}
	return g, nil
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry != nil {
		r.backend.DestroyGeometry(geometry)
	}
}

// DrawShader issues the draw call of one record at the given position.
func (r *Renderer) DrawShader(shader *metadata.Shader, position mgl32.Vec3) error {
	if err := r.backend.UseProgram(shader.Program); err != nil {
		return err
	}
	if err := r.backend.BindGeometry(shader.Geometry); err != nil {
		return err
	}
	if err := r.backend.SetUniformVec3(shader.Program, metadata.PositionUniformName, position); err != nil {
		return err
	}
	return r.backend.DrawIndexed(shader.Geometry.IndexCount)
}
