package systems

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/spaghettifunk/nanite/engine/assets"
	"github.com/spaghettifunk/nanite/engine/containers"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/platform"
	"github.com/spaghettifunk/nanite/engine/renderer"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of draw records held in the system. */
	MaxShaderCount int
	/** @brief Half size of the quad every record draws, in clip space units. */
	QuadHalfExtent float32
}

// ShaderSystem owns the draw records and draws all of them every frame. The
// records live in a bounded FIFO; a frame visits each one by dequeuing it and
// enqueuing it again, so the set and its order survive the frame. It must
// only be used from the thread that owns the graphics context.
type ShaderSystem struct {
	Config   *ShaderSystemConfig
	shaders  *containers.RingQueue[*metadata.Shader]
	entities *EntitySystem
	loader   assets.SourceLoader
	renderer *renderer.Renderer
}

func NewShaderSystem(config *ShaderSystemConfig, es *EntitySystem, loader assets.SourceLoader, r *renderer.Renderer) (*ShaderSystem, error) {
	if config == nil || config.MaxShaderCount <= 0 {
		err := fmt.Errorf("NewShaderSystem - config.MaxShaderCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	if es == nil || r == nil {
		return nil, fmt.Errorf("NewShaderSystem - entity system and renderer are required")
	}
	if config.QuadHalfExtent <= 0 {
		config.QuadHalfExtent = 0.1
	}
	return &ShaderSystem{
		Config:   config,
		shaders:  containers.NewRingQueue[*metadata.Shader](config.MaxShaderCount),
		entities: es,
		loader:   loader,
		renderer: r,
	}, nil
}

// CreateShader loads both stages from disk and registers a draw record for
// the entity.
func (ss *ShaderSystem) CreateShader(entityID, vertexPath, fragmentPath string) error {
	if entityID == "" || vertexPath == "" || fragmentPath == "" {
		return ErrInvalidArgument
	}
	if ss.loader == nil {
		return ErrNoSourceLoader
	}
	vs, err := ss.loader.LoadSource(vertexPath)
	if err != nil {
		return err
	}
	fs, err := ss.loader.LoadSource(fragmentPath)
	if err != nil {
		return err
	}
	return ss.createShader(entityID, vs, fs, vertexPath, fragmentPath)
}

// CreateShaderFromSource registers a draw record from in-memory sources.
func (ss *ShaderSystem) CreateShaderFromSource(entityID, vertexSource, fragmentSource string) error {
	if entityID == "" || vertexSource == "" || fragmentSource == "" {
		return ErrInvalidArgument
	}
	return ss.createShader(entityID, vertexSource, fragmentSource, "", "")
}

func (ss *ShaderSystem) createShader(entityID, vs, fs, vertexPath, fragmentPath string) error {
	if ss.shaders.IsFull() {
		return fmt.Errorf("%w: cannot add shader for %q", ErrShaderQueueFull, entityID)
	}

	geometry, err := ss.renderer.CreateGeometry(metadata.QuadGeometryConfig(ss.Config.QuadHalfExtent))
	if err != nil {
		return err
	}
	program, err := ss.renderer.CreateProgram(vs, fs)
	if err != nil {
		ss.renderer.DestroyGeometry(geometry)
		return fmt.Errorf("failed to create shader for %q: %w", entityID, err)
	}

	id := uuid.New()
	shader := &metadata.Shader{
		ID:           id,
		Name:         fmt.Sprintf("%s/%s", entityID, id.String()[:8]),
		EntityID:     entityID,
		Program:      program,
		Geometry:     geometry,
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
	}
	if err := ss.shaders.Enqueue(shader); err != nil {
		ss.destroy(shader)
		return err
	}
	core.LogDebug("shader %s created (program %d)", shader.Name, program)
	return nil
}

// DrawFrame clears the frame, draws every record at its entity's current
// position and presents the result. A record whose entity is gone is drawn
// at the origin.
func (ss *ShaderSystem) DrawFrame(surface platform.Surface) error {
	if surface == nil {
		return ErrNilSurface
	}
	if err := ss.renderer.BeginFrame(); err != nil {
		return err
	}
	if err := ss.shaders.Rotate(ss.draw); err != nil {
		return err
	}
	if err := surface.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

func (ss *ShaderSystem) draw(shader *metadata.Shader) error {
	position, ok := ss.entities.Position(shader.EntityID)
	if !ok {
		position = mgl32.Vec3{}
	}
	if err := ss.renderer.DrawShader(shader, position); err != nil {
		return fmt.Errorf("failed to draw shader %s: %w", shader.Name, err)
	}
	return nil
}

// Reload rebuilds the program of every record that uses the source at path.
// A record keeps its previous program when the rebuild fails.
func (ss *ShaderSystem) Reload(path string) error {
	if path == "" {
		return ErrInvalidArgument
	}
	if ss.loader == nil {
		return ErrNoSourceLoader
	}
	var errs []error
	reloaded := 0
	err := ss.shaders.Rotate(func(shader *metadata.Shader) error {
		if !shader.UsesPath(path) {
			return nil
		}
		if err := ss.rebuild(shader); err != nil {
			core.LogError("reload of %s failed: %s", shader.Name, err)
			errs = append(errs, err)
			return nil
		}
		reloaded++
		return nil
	})
	if err != nil {
		return err
	}
	if reloaded > 0 {
		core.LogInfo("reloaded %d shader(s) using %s", reloaded, path)
	}
	return errors.Join(errs...)
}

func (ss *ShaderSystem) rebuild(shader *metadata.Shader) error {
	vs, err := ss.loader.LoadSource(shader.VertexPath)
	if err != nil {
		return err
	}
	fs, err := ss.loader.LoadSource(shader.FragmentPath)
	if err != nil {
		return err
	}
	program, err := ss.renderer.CreateProgram(vs, fs)
	if err != nil {
		return err
	}
	ss.renderer.DestroyProgram(shader.Program)
	shader.Program = program
	return nil
}

// Size returns the number of live draw records.
func (ss *ShaderSystem) Size() int {
	return ss.shaders.Len()
}

// Each calls fn for every record in draw order.
func (ss *ShaderSystem) Each(fn func(*metadata.Shader)) {
	_ = ss.shaders.Rotate(func(s *metadata.Shader) error {
		fn(s)
		return nil
	})
}

/**
 * @brief Shuts down the shader system.
 *
 * Destroys every draw record and its backend resources.
 */
func (ss *ShaderSystem) Shutdown() error {
	for !ss.shaders.IsEmpty() {
		shader, err := ss.shaders.Dequeue()
		if err != nil {
			return err
		}
		ss.destroy(shader)
	}
	return nil
}

func (ss *ShaderSystem) destroy(shader *metadata.Shader) {
	ss.renderer.DestroyProgram(shader.Program)
	ss.renderer.DestroyGeometry(shader.Geometry)
}
