package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/enginetest"
	"github.com/stretchr/testify/require"
)

const (
	vertexSource   = "#version 410 core\nvoid main() {}\n"
	fragmentSource = "#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n"
)

type fakeClock struct {
	t      time.Time
	sleeps []float64
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(ms float64) {
	c.t = c.t.Add(time.Duration(ms * float64(time.Millisecond)))
}

// sleep moves time forward by at least a millisecond so a loop driven by it
// always makes progress.
func (c *fakeClock) sleep(ms float64) {
	c.sleeps = append(c.sleeps, ms)
	if ms < 1 {
		ms = 1
	}
	c.advance(ms)
}

type harness struct {
	engine   *Engine
	platform *enginetest.FakePlatform
	backend  *enginetest.FakeBackend
	clock    *fakeClock
	fatals   int
}

func newHarness(t *testing.T, g Game) *harness {
	t.Helper()
	h := &harness{
		platform: enginetest.NewFakePlatform(),
		backend:  enginetest.NewFakeBackend(),
		clock:    newFakeClock(),
	}
	e, err := New(g, h.platform, h.backend)
	require.NoError(t, err)
	e.now = h.clock.now
	e.sleep = h.clock.sleep
	e.fatal = func(string, ...interface{}) { h.fatals++ }
	h.engine = e
	return h
}

// prepare brings the engine to the running stage without entering the loop.
func (h *harness) prepare(t *testing.T, config *ApplicationConfig) {
	t.Helper()
	config.ApplyDefaults()
	h.engine.config = config
	h.engine.frameBudget = config.FrameBudget()
	require.NoError(t, h.engine.initialize())
	h.engine.clock = core.NewClockWithSource(h.clock.now)
	h.engine.clock.Start()
	h.engine.lastTime = 0
	h.engine.currentStage = EngineStageRunning
}

func TestEngine_TickPacing(t *testing.T) {
	ticks := 0
	var deltas []float64
	h := newHarness(t, GameFuncs{
		FnTick: func(rt *Runtime, delta float64) error {
			ticks++
			deltas = append(deltas, delta)
			return nil
		},
	})
	h.prepare(t, &ApplicationConfig{FPS: 60})
	surface := h.platform.Surface

	h.clock.advance(10)
	require.NoError(t, h.engine.tick())
	require.Zero(t, ticks)
	require.Zero(t, surface.Presents)
	require.Zero(t, surface.Polls)
	require.Len(t, h.clock.sleeps, 1)
	require.InDelta(t, 1000.0/60.0-10, h.clock.sleeps[0], 1e-6)

	h.clock.t = h.clock.t.Add(-time.Duration(float64(time.Millisecond) * h.clock.sleeps[0]))
	h.clock.advance(7)
	require.NoError(t, h.engine.tick())
	require.Equal(t, 1, ticks)
	require.Equal(t, 1, surface.Presents)
	require.Equal(t, 1, surface.Polls)
	require.Equal(t, 1, h.backend.Clears)
	require.InDelta(t, 17, deltas[0], 1e-6)
	require.InDelta(t, 17, h.engine.lastTime, 1e-6)

	// right after a tick nothing is due
	require.NoError(t, h.engine.tick())
	require.Equal(t, 1, ticks)
}

func TestEngine_QuitEventStopsBeforeStep(t *testing.T) {
	loads, ticks := 0, 0
	h := newHarness(t, GameFuncs{
		FnLoad: func(*Runtime) error { loads++; return nil },
		FnTick: func(*Runtime, float64) error { ticks++; return nil },
	})
	h.platform.Surface.Events = []core.Event{core.QuitEvent()}

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.Equal(t, 1, loads)
	require.Zero(t, ticks)
	require.Zero(t, h.platform.Surface.Presents)
	require.Equal(t, EngineStageTerminated, h.engine.Stage())
	require.True(t, h.platform.Surface.Destroyed)
	require.True(t, h.backend.Initialized)
	require.True(t, h.backend.ShutDown)
}

func TestEngine_StepInitiatedQuit(t *testing.T) {
	ticks := 0
	h := newHarness(t, GameFuncs{
		FnTick: func(rt *Runtime, _ float64) error {
			ticks++
			if ticks == 3 {
				rt.Quit()
			}
			return nil
		},
	})

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.Equal(t, 3, ticks)
	require.Equal(t, 3, h.platform.Surface.Presents)
	require.False(t, h.engine.Runtime().Running())
}

func TestEngine_ShutdownRequest(t *testing.T) {
	ticks := 0
	var h *harness
	h = newHarness(t, GameFuncs{
		FnLoad: func(*Runtime) error {
			h.engine.Shutdown()
			return nil
		},
		FnTick: func(*Runtime, float64) error { ticks++; return nil },
	})

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.Zero(t, ticks)
	require.Equal(t, EngineStageTerminated, h.engine.Stage())
}

func TestEngine_SurfaceConfigDefaults(t *testing.T) {
	h := newHarness(t, GameFuncs{FnLoad: func(rt *Runtime) error { rt.Quit(); return nil }})

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	cfg := h.platform.Config
	require.Equal(t, "nanite", cfg.Title)
	require.Equal(t, 640, cfg.Width)
	require.Equal(t, 480, cfg.Height)
	require.False(t, cfg.Fullscreen)
	require.True(t, cfg.VSync)
	require.NotNil(t, h.platform.Surface.VSync)
	require.True(t, *h.platform.Surface.VSync)
}

func TestEngine_InputSampledOncePerTick(t *testing.T) {
	var down, up core.KeyboardSnapshot
	down[core.KEY_A] = true

	var states []core.KeyState
	h := newHarness(t, GameFuncs{
		FnTick: func(rt *Runtime, _ float64) error {
			states = append(states, rt.Input.KeyState(core.KEY_A))
			if len(states) == 4 {
				rt.Quit()
			}
			return nil
		},
	})
	h.platform.Surface.Keyboard = []core.KeyboardSnapshot{down, down, down, up}

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.Equal(t, []core.KeyState{
		core.KeyStatePressed,
		core.KeyStateHeld,
		core.KeyStateHeld,
		core.KeyStateReleased,
	}, states)
}

func TestEngine_DisableInput(t *testing.T) {
	var down core.KeyboardSnapshot
	down[core.KEY_SPACE] = true

	pressed := false
	h := newHarness(t, GameFuncs{
		FnTick: func(rt *Runtime, _ float64) error {
			pressed = rt.Input.IsKeyDown(core.KEY_SPACE)
			rt.Quit()
			return nil
		},
	})
	h.platform.Surface.Keyboard = []core.KeyboardSnapshot{down}

	require.NoError(t, h.engine.Start(&ApplicationConfig{DisableInput: true}))
	require.False(t, pressed)
}

func TestEngine_DisabledRendererOnlyPresents(t *testing.T) {
	p := enginetest.NewFakePlatform()
	hasShaders := true
	e, err := New(GameFuncs{
		FnLoad: func(rt *Runtime) error {
			hasShaders = rt.Shaders != nil
			return nil
		},
		FnTick: func(rt *Runtime, _ float64) error {
			rt.Quit()
			return nil
		},
	}, p, nil)
	require.NoError(t, err)
	clock := newFakeClock()
	e.now, e.sleep = clock.now, clock.sleep

	require.NoError(t, e.Start(&ApplicationConfig{DisableRenderer: true}))
	require.False(t, hasShaders)
	require.Equal(t, 1, p.Surface.Presents)
}

func TestEngine_DrawsEntityShaders(t *testing.T) {
	h := newHarness(t, GameFuncs{
		FnLoad: func(rt *Runtime) error {
			if err := rt.Entities.Create("E1", mgl32.Vec3{}); err != nil {
				return err
			}
			return rt.Shaders.CreateShaderFromSource("E1", vertexSource, fragmentSource)
		},
		FnTick: func(rt *Runtime, _ float64) error {
			rt.Entities.ApplyDelta("E1", mgl32.Vec3{0.25, 0, 0})
			rt.Quit()
			return nil
		},
	})

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.Equal(t, []int32{6}, h.backend.Draws)
	require.Len(t, h.backend.Uniforms, 1)
	require.Equal(t, mgl32.Vec3{0.25, 0, 0}, h.backend.Uniforms[0].Value)
	// shutdown released the draw record
	require.Empty(t, h.backend.Programs)
	require.Empty(t, h.backend.Geometries)
}

func TestEngine_EventsReachHandler(t *testing.T) {
	var got []core.Event
	h := newHarness(t, GameFuncs{
		FnOnEvent: func(_ *Runtime, ev core.Event) { got = append(got, ev) },
		FnTick: func(rt *Runtime, _ float64) error {
			if len(got) == 2 {
				rt.Quit()
			}
			return nil
		},
	})
	h.platform.Surface.Events = []core.Event{
		core.ResizeEvent(800, 600),
		core.KeyEvent(core.KEY_ESCAPE, true),
	}

	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.Equal(t, core.ResizeEvent(800, 600), got[0])
	require.Equal(t, core.KeyEvent(core.KEY_ESCAPE, true), got[1])
}

func TestEngine_FailurePolicies(t *testing.T) {
	boom := errors.New("boom")

	t.Run("return", func(t *testing.T) {
		h := newHarness(t, GameFuncs{FnTick: func(*Runtime, float64) error { return boom }})
		err := h.engine.Start(&ApplicationConfig{FailurePolicy: FailurePolicyReturn})
		require.ErrorIs(t, err, boom)
		require.Zero(t, h.fatals)
		require.Equal(t, EngineStageTerminated, h.engine.Stage())
		require.True(t, h.platform.Surface.Destroyed)
	})

	t.Run("log", func(t *testing.T) {
		ticks := 0
		h := newHarness(t, GameFuncs{FnTick: func(rt *Runtime, _ float64) error {
			ticks++
			if ticks == 3 {
				rt.Quit()
			}
			return boom
		}})
		require.NoError(t, h.engine.Start(&ApplicationConfig{FailurePolicy: FailurePolicyLog}))
		require.Equal(t, 3, ticks)
		require.Equal(t, 3, h.platform.Surface.Presents)
	})

	t.Run("fatal", func(t *testing.T) {
		h := newHarness(t, GameFuncs{FnLoad: func(*Runtime) error { return boom }})
		err := h.engine.Start(&ApplicationConfig{})
		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, h.fatals)
	})

	t.Run("draw failure", func(t *testing.T) {
		h := newHarness(t, GameFuncs{})
		h.platform.Surface.FailPresent = boom
		err := h.engine.Start(&ApplicationConfig{FailurePolicy: FailurePolicyReturn})
		require.ErrorIs(t, err, boom)
	})

	t.Run("setup failure is returned under log", func(t *testing.T) {
		h := newHarness(t, GameFuncs{})
		h.backend.FailInitialize = boom
		err := h.engine.Start(&ApplicationConfig{FailurePolicy: FailurePolicyLog})
		require.ErrorIs(t, err, boom)
		require.True(t, h.platform.Surface.Destroyed)
		require.Equal(t, EngineStageTerminated, h.engine.Stage())
	})
}

func TestEngine_NilConfig(t *testing.T) {
	h := newHarness(t, GameFuncs{})
	require.ErrorIs(t, h.engine.Start(nil), ErrNilConfig)
	require.Equal(t, 1, h.fatals)
	require.Equal(t, EngineStageUninitialized, h.engine.Stage())
}

func TestEngine_StartTwice(t *testing.T) {
	h := newHarness(t, GameFuncs{FnLoad: func(rt *Runtime) error { rt.Quit(); return nil }})
	require.NoError(t, h.engine.Start(&ApplicationConfig{}))
	require.ErrorIs(t, h.engine.Start(&ApplicationConfig{}), ErrAlreadyStarted)
}

func TestNew_RequiresGameAndPlatform(t *testing.T) {
	_, err := New(nil, enginetest.NewFakePlatform(), nil)
	require.ErrorIs(t, err, ErrNilGame)
	_, err = New(GameFuncs{}, nil, nil)
	require.ErrorIs(t, err, ErrNilPlatform)
}
