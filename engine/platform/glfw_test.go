package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/nanite/engine/containers"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/stretchr/testify/require"
)

func TestKeyCodeFromGLFW(t *testing.T) {
	code, ok := keyCodeFromGLFW(glfw.KeyW)
	require.True(t, ok)
	require.Equal(t, core.KEY_W, code)

	code, ok = keyCodeFromGLFW(glfw.KeyEnter)
	require.True(t, ok)
	require.Equal(t, core.KEY_RETURN, code)

	_, ok = keyCodeFromGLFW(glfw.KeyF12)
	require.False(t, ok)
}

func TestGLFWKeysAreDistinct(t *testing.T) {
	seen := make(map[glfw.Key]core.KeyCode)
	for code, key := range glfwKeys {
		prev, dup := seen[key]
		require.False(t, dup, "%s and %s share a glfw key", prev, core.KeyCode(code))
		seen[key] = core.KeyCode(code)
	}
}

func TestGLFWSurface_QuitSurvivesFullQueue(t *testing.T) {
	s := &GLFWSurface{
		events:     containers.NewRingQueue[core.Event](2),
		pollEvents: func() {},
	}

	s.push(core.KeyEvent(core.KEY_A, true))
	s.push(core.KeyEvent(core.KEY_A, false))
	s.push(core.KeyEvent(core.KEY_B, true)) // dropped
	s.push(core.QuitEvent())

	e, ok := s.PollEvent()
	require.True(t, ok)
	require.Equal(t, core.EVENT_CODE_KEY_PRESSED, e.Type)

	e, ok = s.PollEvent()
	require.True(t, ok)
	require.Equal(t, core.EVENT_CODE_KEY_RELEASED, e.Type)

	e, ok = s.PollEvent()
	require.True(t, ok)
	require.True(t, e.IsQuit())
}

func TestGLFWSurface_PumpsOnEveryPoll(t *testing.T) {
	pumps := 0
	s := &GLFWSurface{
		events:     containers.NewRingQueue[core.Event](4),
		pollEvents: func() { pumps++ },
	}
	s.push(core.KeyEvent(core.KEY_A, true))
	s.push(core.KeyEvent(core.KEY_A, false))
	s.push(core.QuitEvent())

	for i := 1; i <= 3; i++ {
		_, ok := s.PollEvent()
		require.True(t, ok)
		require.Equal(t, i, pumps)
	}

	_, ok := s.PollEvent()
	require.False(t, ok)
	require.Equal(t, 4, pumps)
}

func TestGLFWSurface_DestroyedSurface(t *testing.T) {
	s := &GLFWSurface{events: containers.NewRingQueue[core.Event](2), destroyed: true}

	_, ok := s.PollEvent()
	require.False(t, ok)
	require.ErrorIs(t, s.Present(), ErrSurfaceDestroyed)
	require.ErrorIs(t, s.Destroy(), ErrSurfaceDestroyed)
	require.Equal(t, core.KeyboardSnapshot{}, s.KeyboardState())
}
