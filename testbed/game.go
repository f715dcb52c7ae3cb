package testbed

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine"
	"github.com/spaghettifunk/nanite/engine/core"
)

const (
	PlayerEntityID = "Entity"

	VertexShaderPath   = "shaders/basic.vert"
	FragmentShaderPath = "shaders/basic.frag"
)

// units per millisecond
var moveSpeed float32 = 0.001

// TestGame moves a single quad around with WASD or the arrow keys and quits
// on escape.
type TestGame struct {
	VertexPath   string
	FragmentPath string

	width  uint32
	height uint32
}

var (
	_ engine.Game         = (*TestGame)(nil)
	_ engine.EventHandler = (*TestGame)(nil)
	_ engine.Shutdowner   = (*TestGame)(nil)
)

func NewTestGame() *TestGame {
	return &TestGame{
		VertexPath:   VertexShaderPath,
		FragmentPath: FragmentShaderPath,
	}
}

func (g *TestGame) OnLoad(rt *engine.Runtime) error {
	core.LogDebug("TestGame OnLoad fn....")

	if err := rt.Entities.Create(PlayerEntityID, mgl32.Vec3{0, 0, 0}); err != nil {
		return err
	}
	if rt.Shaders == nil {
		core.LogWarn("renderer disabled, %q will not be drawn", PlayerEntityID)
		return nil
	}
	return rt.Shaders.CreateShader(PlayerEntityID, g.VertexPath, g.FragmentPath)
}

func (g *TestGame) OnTick(rt *engine.Runtime, delta float64) error {
	if rt.Input.IsKeyDown(core.KEY_ESCAPE) {
		rt.Quit()
		return nil
	}

	step := moveSpeed * float32(delta)
	var move mgl32.Vec3
	if rt.Input.IsKeyDown(core.KEY_A) || rt.Input.IsKeyDown(core.KEY_LEFT) {
		move[0] -= step
	}
	if rt.Input.IsKeyDown(core.KEY_D) || rt.Input.IsKeyDown(core.KEY_RIGHT) {
		move[0] += step
	}
	if rt.Input.IsKeyDown(core.KEY_W) || rt.Input.IsKeyDown(core.KEY_UP) {
		move[1] += step
	}
	if rt.Input.IsKeyDown(core.KEY_S) || rt.Input.IsKeyDown(core.KEY_DOWN) {
		move[1] -= step
	}
	if move != (mgl32.Vec3{}) {
		rt.Entities.ApplyDelta(PlayerEntityID, move)
	}

	if rt.Input.KeyState(core.KEY_P) == core.KeyStatePressed {
		pos, _ := rt.Entities.Position(PlayerEntityID)
		core.LogDebug("Pos:[%.2f, %.2f, %.2f]", pos.X(), pos.Y(), pos.Z())
	}
	return nil
}

func (g *TestGame) OnEvent(rt *engine.Runtime, event core.Event) {
	switch event.Type {
	case core.EVENT_CODE_RESIZED:
		g.width = event.Width
		g.height = event.Height
	case core.EVENT_CODE_KEY_PRESSED:
		if event.KeyCode == core.KEY_A {
			// Example on checking for a key
			core.LogDebug("Explicit - A key pressed!")
		}
	}
}

func (g *TestGame) OnShutdown(rt *engine.Runtime) error {
	pos, _ := rt.Entities.Position(PlayerEntityID)
	core.LogInfo("%s stopped at [%.2f, %.2f, %.2f]", PlayerEntityID, pos.X(), pos.Y(), pos.Z())
	return nil
}
