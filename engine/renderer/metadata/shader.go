package metadata

import (
	"fmt"

	"github.com/google/uuid"
)

/** @brief The name of the vec3 uniform that receives the owning entity position. */
const PositionUniformName string = "u_position"

/**
 * @brief The pipeline stage a shader source is compiled for.
 */
type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", uint8(s))
}

/**
 * @brief A draw record: a linked program, the geometry it draws and the
 * entity whose position drives it.
 */
type Shader struct {
	/** @brief Unique identifier of the draw record. */
	ID uuid.UUID
	/** @brief Human readable name, used in logs. */
	Name string
	/** @brief ID of the owning entity. Weak reference, resolved every frame. */
	EntityID string
	/** @brief The backend program handle. */
	Program uint32
	/** @brief The geometry drawn by this record. */
	Geometry *Geometry
	/** @brief Source path of the vertex stage, empty for inline sources. */
	VertexPath string
	/** @brief Source path of the fragment stage, empty for inline sources. */
	FragmentPath string
}

// UsesPath reports whether either stage was loaded from path.
func (s *Shader) UsesPath(path string) bool {
	return path != "" && (s.VertexPath == path || s.FragmentPath == path)
}
