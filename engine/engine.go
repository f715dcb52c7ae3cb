package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/nanite/engine/assets"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/platform"
	"github.com/spaghettifunk/nanite/engine/renderer"
	"github.com/spaghettifunk/nanite/engine/systems"
)

var (
	ErrNilConfig      = errors.New("application config is nil")
	ErrNilGame        = errors.New("game is nil")
	ErrNilPlatform    = errors.New("platform is nil")
	ErrAlreadyStarted = errors.New("engine already started")
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is creating the surface, the renderer and the systems
	EngineStageInitializing
	// Engine is ticking
	EngineStageRunning
	// Engine is releasing its resources
	EngineStageClosingDown
	// Engine is done, Start has returned or is about to
	EngineStageTerminated
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageRunning:
		return "running"
	case EngineStageClosingDown:
		return "closing_down"
	case EngineStageTerminated:
		return "terminated"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Engine drives a Game on a fixed timestep. It must run on the goroutine
// that owns the main OS thread; only Shutdown may be called from elsewhere.
type Engine struct {
	currentStage Stage
	gameInstance Game
	config       *ApplicationConfig

	platform      platform.Platform
	backend       renderer.RendererBackend
	surface       platform.Surface
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	runtime       *Runtime

	clock       *core.Clock
	metrics     *core.Metrics
	lastTime    float64
	frameBudget float64

	shutdownRequested atomic.Bool

	now   func() time.Time
	sleep func(ms float64)
	fatal func(format string, args ...interface{})
}

// New creates an engine for g. backend may be nil when the config disables
// the renderer.
func New(g Game, p platform.Platform, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	if p == nil {
		return nil, ErrNilPlatform
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		backend:      backend,
		metrics:      core.NewMetrics(),
		now:          time.Now,
		sleep:        platform.Sleep,
		fatal:        core.LogFatal,
	}, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Runtime returns nil until Start has initialized the engine.
func (e *Engine) Runtime() *Runtime {
	return e.runtime
}

// Shutdown asks a running engine to close after the current tick. It is
// safe to call from any goroutine.
func (e *Engine) Shutdown() {
	e.shutdownRequested.Store(true)
}

// Start initializes the engine, loads the game and runs the tick loop until
// a quit is requested. Resources are released before it returns.
func (e *Engine) Start(config *ApplicationConfig) error {
	if e.currentStage != EngineStageUninitialized {
		return ErrAlreadyStarted
	}
	if config == nil {
		return e.setupFailure(ErrNilConfig)
	}
	config.ApplyDefaults()
	e.config = config
	e.frameBudget = config.FrameBudget()

	e.currentStage = EngineStageInitializing
	if err := e.initialize(); err != nil {
		e.closeDown()
		return e.setupFailure(err)
	}

	e.currentStage = EngineStageRunning
	err := e.run()
	e.closeDown()
	return err
}

func (e *Engine) initialize() error {
	if e.config.LogLevel != nil {
		core.SetLogLevel(*e.config.LogLevel)
	}
	core.LogInfo("Initializing %s", e.config.Title)

	surface, err := e.platform.CreateSurface(e.config.surfaceConfig())
	if err != nil {
		return fmt.Errorf("failed to create surface: %w", err)
	}
	e.surface = surface

	if !e.config.DisableRenderer {
		r, err := renderer.New(e.backend)
		if err != nil {
			return err
		}
		if err := r.Initialize(); err != nil {
			return err
		}
		e.renderer = r
	}
	e.surface.SetSwapInterval(*e.config.VSync)

	am := assets.NewAssetManager(e.config.AssetDir)
	if e.config.WatchShaders {
		if err := am.EnableWatch(); err != nil {
			am.Close()
			return err
		}
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		MaxEntityCount: e.config.EntityCapacity,
		MaxShaderCount: e.config.ShaderQueueCapacity,
	}, am, e.renderer)
	if err != nil {
		am.Close()
		return err
	}
	e.systemManager = sm
	e.runtime = newRuntime(sm)

	core.LogInfo("Initialized %s (runtime %s)", e.config.Title, e.runtime.ID)
	return nil
}

func (e *Engine) run() error {
	if err := e.gameInstance.OnLoad(e.runtime); err != nil {
		if err := e.runtimeFailure(fmt.Errorf("game load failed: %w", err)); err != nil {
			return err
		}
	}

	e.clock = core.NewClockWithSource(e.now)
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	core.LogInfo("Running %s at %d ticks per second", e.config.Title, e.config.FPS)
	for e.isRunning() {
		if err := e.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) isRunning() bool {
	return e.runtime.Running() && !e.shutdownRequested.Load()
}

// tick runs one iteration of the loop body. When less than a frame budget
// has passed it only sleeps for the remainder.
func (e *Engine) tick() error {
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime

	if delta <= e.frameBudget {
		e.sleep(e.frameBudget - delta)
		return nil
	}

	if event, ok := e.surface.PollEvent(); ok {
		if event.IsQuit() {
			core.LogInfo("%s received, shutting down.", event.Type)
			e.runtime.Quit()
			return nil
		}
		e.onEvent(event)
	}

	if !e.config.DisableInput {
		e.runtime.Input.Sample(e.surface.KeyboardState())
	}

	if err := e.gameInstance.OnTick(e.runtime, delta); err != nil {
		if err := e.runtimeFailure(fmt.Errorf("game tick failed: %w", err)); err != nil {
			return err
		}
	}

	if e.config.WatchShaders {
		e.systemManager.ReloadChangedShaders()
	}

	if err := e.drawFrame(); err != nil {
		if err := e.runtimeFailure(err); err != nil {
			return err
		}
	}

	if e.metrics.Update(delta) {
		fps, frameTime := e.metrics.Frame()
		core.LogDebug("fps: %.0f, avg frame: %.2fms", fps, frameTime)
	}
	e.lastTime = currentTime
	return nil
}

func (e *Engine) drawFrame() error {
	if e.systemManager.ShaderSystem != nil {
		return e.systemManager.ShaderSystem.DrawFrame(e.surface)
	}
	if err := e.surface.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

func (e *Engine) onEvent(event core.Event) {
	switch event.Type {
	case core.EVENT_CODE_RESIZED:
		core.LogDebug("Window resize: %d, %d", event.Width, event.Height)
	case core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_KEY_RELEASED:
		core.LogDebug("%s: %s", event.Type, event.KeyCode)
	}
	if h, ok := e.gameInstance.(EventHandler); ok {
		h.OnEvent(e.runtime, event)
	}
}

// setupFailure applies the failure policy to an error raised before the
// loop started. Setup errors are never swallowed.
func (e *Engine) setupFailure(err error) error {
	if e.config == nil || e.config.FailurePolicy == FailurePolicyFatal {
		e.fatal("%s", err)
	} else {
		core.LogError(err.Error())
	}
	return err
}

// runtimeFailure applies the failure policy to an error raised by a tick.
// A nil result means the loop keeps going.
func (e *Engine) runtimeFailure(err error) error {
	switch e.config.FailurePolicy {
	case FailurePolicyLog:
		core.LogError(err.Error())
		return nil
	case FailurePolicyReturn:
		core.LogError(err.Error())
		return err
	default:
		e.fatal("%s", err)
		return err
	}
}

func (e *Engine) closeDown() {
	e.currentStage = EngineStageClosingDown
	core.LogInfo("Closing %s", e.config.Title)

	if e.runtime != nil {
		if s, ok := e.gameInstance.(Shutdowner); ok {
			if err := s.OnShutdown(e.runtime); err != nil {
				core.LogError("game shutdown failed: %s", err)
			}
		}
		e.runtime.Quit()
	}
	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			core.LogError("failed to shut down systems: %s", err)
		}
	}
	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			core.LogError("failed to shut down renderer: %s", err)
		}
	}
	if e.surface != nil {
		if err := e.surface.Destroy(); err != nil {
			core.LogError("failed to destroy surface: %s", err)
		}
	}

	e.currentStage = EngineStageTerminated
	core.LogInfo("Closed %s", e.config.Title)
}
