package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

func (r *OpenGLRenderer) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if !r.initialized {
		return nil, ErrNotInitialized
	}
	if len(config.Vertices) == 0 || len(config.Indices) == 0 {
		return nil, fmt.Errorf("geometry %q has no vertices or indices", config.Name)
	}

	g := &metadata.Geometry{
		Name:       config.Name,
		IndexCount: int32(len(config.Indices)),
	}

	gl.GenVertexArrays(1, &g.VertexArray)
	gl.GenBuffers(1, &g.VertexBuffer)
	gl.GenBuffers(1, &g.IndexBuffer)
	if g.VertexArray == 0 || g.VertexBuffer == 0 || g.IndexBuffer == 0 {
		r.DestroyGeometry(g)
		return nil, fmt.Errorf("failed to generate buffer objects for %q", config.Name)
	}

	gl.BindVertexArray(g.VertexArray)

	gl.BindBuffer(gl.ARRAY_BUFFER, g.VertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(config.Vertices)*4, gl.Ptr(config.Vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.IndexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(config.Indices)*4, gl.Ptr(config.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, metadata.VertexComponents, gl.FLOAT, false, metadata.VertexComponents*4, gl.PtrOffset(0))

	// the element buffer binding is VAO state, only the array buffer is unbound
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := checkError("create geometry"); err != nil {
		r.DestroyGeometry(g)
		return nil, err
	}
	return g, nil
}

func (r *OpenGLRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry.IndexBuffer != 0 {
		gl.DeleteBuffers(1, &geometry.IndexBuffer)
		geometry.IndexBuffer = 0
	}
	if geometry.VertexBuffer != 0 {
		gl.DeleteBuffers(1, &geometry.VertexBuffer)
		geometry.VertexBuffer = 0
	}
	if geometry.VertexArray != 0 {
		gl.DeleteVertexArrays(1, &geometry.VertexArray)
		geometry.VertexArray = 0
	}
}

func (r *OpenGLRenderer) BindGeometry(geometry *metadata.Geometry) error {
	if geometry == nil || geometry.VertexArray == 0 {
		return fmt.Errorf("geometry is not uploaded")
	}
	gl.BindVertexArray(geometry.VertexArray)
	return checkError("bind vertex array")
}
