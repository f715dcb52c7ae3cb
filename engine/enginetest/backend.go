// Package enginetest provides in-memory stand-ins for the GPU backend and the
// platform surface so engine code can be exercised without a window.
package enginetest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine/renderer"
	"github.com/spaghettifunk/nanite/engine/renderer/metadata"
)

var _ renderer.RendererBackend = (*FakeBackend)(nil)

// UniformUpload is one SetUniformVec3 call seen by the fake backend.
type UniformUpload struct {
	Program uint32
	Name    string
	Value   mgl32.Vec3
}

// FakeBackend records every call and hands out increasing handles. Setting
// one of the Fail* fields makes the matching call return that error.
type FakeBackend struct {
	Initialized bool
	ShutDown    bool

	FailInitialize error
	FailClear      error
	FailCompile    error
	FailLink       error
	FailGeometry   error
	FailUse        error
	FailDraw       error
	// FailCompileSource fails compilation of exactly this source text.
	FailCompileSource string

	Clears     int
	Draws      []int32
	Uniforms   []UniformUpload
	Used       []uint32
	Bound      []uint32
	Compiled   []string
	Deleted    []uint32
	Programs   map[uint32]bool
	Geometries map[uint32]*metadata.Geometry

	nextHandle uint32
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Programs:   make(map[uint32]bool),
		Geometries: make(map[uint32]*metadata.Geometry),
	}
}

func (b *FakeBackend) handle() uint32 {
	b.nextHandle++
	return b.nextHandle
}

func (b *FakeBackend) Initialize() error {
	if b.FailInitialize != nil {
		return b.FailInitialize
	}
	b.Initialized = true
	return nil
}

func (b *FakeBackend) Shutdown() error {
	b.ShutDown = true
	return nil
}

func (b *FakeBackend) Clear(metadata.Color, float64) error {
	if b.FailClear != nil {
		return b.FailClear
	}
	b.Clears++
	return nil
}

func (b *FakeBackend) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if b.FailGeometry != nil {
		return nil, b.FailGeometry
	}
	g := &metadata.Geometry{
		Name:         config.Name,
		VertexArray:  b.handle(),
		VertexBuffer: b.handle(),
		IndexBuffer:  b.handle(),
		IndexCount:   int32(len(config.Indices)),
	}
	b.Geometries[g.VertexArray] = g
	return g, nil
}

func (b *FakeBackend) DestroyGeometry(geometry *metadata.Geometry) {
	delete(b.Geometries, geometry.VertexArray)
}

func (b *FakeBackend) CompileShader(stage metadata.ShaderStage, source string) (uint32, error) {
	if b.FailCompile != nil {
		return 0, b.FailCompile
	}
	if b.FailCompileSource != "" && source == b.FailCompileSource {
		return 0, fmt.Errorf("failed to compile %s shader", stage)
	}
	b.Compiled = append(b.Compiled, source)
	return b.handle(), nil
}

func (b *FakeBackend) DeleteShader(handle uint32) {
	b.Deleted = append(b.Deleted, handle)
}

func (b *FakeBackend) LinkProgram(vertex, fragment uint32) (uint32, error) {
	if b.FailLink != nil {
		return 0, b.FailLink
	}
	p := b.handle()
	b.Programs[p] = true
	return p, nil
}

func (b *FakeBackend) DestroyProgram(program uint32) {
	delete(b.Programs, program)
}

func (b *FakeBackend) UseProgram(program uint32) error {
	if b.FailUse != nil {
		return b.FailUse
	}
	b.Used = append(b.Used, program)
	return nil
}

func (b *FakeBackend) BindGeometry(geometry *metadata.Geometry) error {
	if geometry == nil {
		return fmt.Errorf("geometry is not uploaded")
	}
	b.Bound = append(b.Bound, geometry.VertexArray)
	return nil
}

func (b *FakeBackend) SetUniformVec3(program uint32, name string, value mgl32.Vec3) error {
	b.Uniforms = append(b.Uniforms, UniformUpload{Program: program, Name: name, Value: value})
	return nil
}

func (b *FakeBackend) DrawIndexed(indexCount int32) error {
	if b.FailDraw != nil {
		return b.FailDraw
	}
	b.Draws = append(b.Draws, indexCount)
	return nil
}
