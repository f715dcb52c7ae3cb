package metadata

/** @brief The name of the quad geometry shared by every draw record. */
const QuadGeometryName string = "quad"

/** @brief Number of indices drawn for the quad: two triangles. */
const QuadIndexCount int32 = 6

/** @brief Number of float32 components per vertex (x, y, z). */
const VertexComponents int32 = 3

/**
 * @brief Represents the configuration for a geometry upload.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string
	/** @brief Tightly packed xyz positions. */
	Vertices []float32
	/** @brief Triangle list indices. */
	Indices []uint32
}

// VertexCount returns the number of xyz vertices in the config.
func (c *GeometryConfig) VertexCount() int {
	return len(c.Vertices) / int(VertexComponents)
}

/**
 * @brief Backend handles of an uploaded geometry.
 */
type Geometry struct {
	/** @brief The geometry Name. */
	Name string
	/** @brief Vertex array object. */
	VertexArray uint32
	/** @brief Vertex buffer object. */
	VertexBuffer uint32
	/** @brief Index buffer object. */
	IndexBuffer uint32
	/** @brief Number of indices to draw. */
	IndexCount int32
}

// QuadGeometryConfig returns a square of the given half extent centered on
// the origin: 4 vertices, 2 triangles.
func QuadGeometryConfig(halfExtent float32) *GeometryConfig {
	h := halfExtent
	return &GeometryConfig{
		Name: QuadGeometryName,
		Vertices: []float32{
			-h, -h, 0.0,
			h, -h, 0.0,
			h, h, 0.0,
			-h, h, 0.0,
		},
		Indices: []uint32{
			0, 1, 2,
			2, 3, 0,
		},
	}
}
