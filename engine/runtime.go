package engine

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/systems"
)

// Runtime is the state a game works on: the input state, the entity and
// shader systems, and the quit switch. Each Engine owns exactly one.
type Runtime struct {
	ID       uuid.UUID
	Input    *core.InputState
	Entities *systems.EntitySystem
	// Nil when the renderer is disabled.
	Shaders *systems.ShaderSystem

	quit atomic.Bool
}

func newRuntime(sm *systems.SystemManager) *Runtime {
	input := core.NewInputState()
	input.Reset()
	return &Runtime{
		ID:       uuid.New(),
		Input:    input,
		Entities: sm.EntitySystem,
		Shaders:  sm.ShaderSystem,
	}
}

// Quit asks the engine to stop after the current tick.
func (rt *Runtime) Quit() {
	rt.quit.Store(true)
}

func (rt *Runtime) Running() bool {
	return !rt.quit.Load()
}
