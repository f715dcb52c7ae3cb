package metadata

/** @brief An RGBA colour with components in [0, 1]. */
type Color struct {
	R, G, B, A float32
}

/** @brief Background colour every frame is cleared to. */
var DefaultClearColor = Color{R: 0.08, G: 0.10, B: 0.10, A: 1.00}

/** @brief Depth value every frame is cleared to. */
const DefaultClearDepth float64 = 1.0
