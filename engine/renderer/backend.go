package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

// RendererBackend is the GPU device the engine draws through. Every call
// must happen on the thread that owns the graphics context.
type RendererBackend interface {
	// Initialize loads the graphics API entry points. It requires a current
	// context, so it runs after the platform surface has been created.
	Initialize() error
	Shutdown() error
	Clear(color metadata.Color, depth float64) error
	CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error)
	DestroyGeometry(geometry *metadata.Geometry)
	CompileShader(stage metadata.ShaderStage, source string) (uint32, error)
	DeleteShader(handle uint32)
	LinkProgram(vertex, fragment uint32) (uint32, error)
	DestroyProgram(program uint32)
	UseProgram(program uint32) error
	BindGeometry(geometry *metadata.Geometry) error
	SetUniformVec3(program uint32, name string, value mgl32.Vec3) error
	DrawIndexed(indexCount int32) error
}
