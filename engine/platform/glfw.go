package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/nanite/engine/containers"
	"github.com/spaghettifunk/nanite/engine/core"
)

// Events buffered between two PollEvent calls. The loop drains one event per
// tick, so bursts larger than this drop the newest non-quit events.
const eventQueueCapacity = 256

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

var glfwKeys = [core.KEYS_MAX_KEYS]glfw.Key{
	core.KEY_A: glfw.KeyA, core.KEY_B: glfw.KeyB, core.KEY_C: glfw.KeyC,
	core.KEY_D: glfw.KeyD, core.KEY_E: glfw.KeyE, core.KEY_F: glfw.KeyF,
	core.KEY_G: glfw.KeyG, core.KEY_H: glfw.KeyH, core.KEY_I: glfw.KeyI,
	core.KEY_J: glfw.KeyJ, core.KEY_K: glfw.KeyK, core.KEY_L: glfw.KeyL,
	core.KEY_M: glfw.KeyM, core.KEY_N: glfw.KeyN, core.KEY_O: glfw.KeyO,
	core.KEY_P: glfw.KeyP, core.KEY_Q: glfw.KeyQ, core.KEY_R: glfw.KeyR,
	core.KEY_S: glfw.KeyS, core.KEY_T: glfw.KeyT, core.KEY_U: glfw.KeyU,
	core.KEY_V: glfw.KeyV, core.KEY_W: glfw.KeyW, core.KEY_X: glfw.KeyX,
	core.KEY_Y: glfw.KeyY, core.KEY_Z: glfw.KeyZ,

	core.KEY_0: glfw.Key0, core.KEY_1: glfw.Key1, core.KEY_2: glfw.Key2,
	core.KEY_3: glfw.Key3, core.KEY_4: glfw.Key4, core.KEY_5: glfw.Key5,
	core.KEY_6: glfw.Key6, core.KEY_7: glfw.Key7, core.KEY_8: glfw.Key8,
	core.KEY_9: glfw.Key9,

	core.KEY_ESCAPE:   glfw.KeyEscape,
	core.KEY_RETURN:   glfw.KeyEnter,
	core.KEY_LCONTROL: glfw.KeyLeftControl,
	core.KEY_LALT:     glfw.KeyLeftAlt,
	core.KEY_LEFT:     glfw.KeyLeft,
	core.KEY_RIGHT:    glfw.KeyRight,
	core.KEY_UP:       glfw.KeyUp,
	core.KEY_DOWN:     glfw.KeyDown,
	core.KEY_LSHIFT:   glfw.KeyLeftShift,
	core.KEY_SPACE:    glfw.KeySpace,
}

func keyCodeFromGLFW(key glfw.Key) (core.KeyCode, bool) {
	for code, k := range glfwKeys {
		if k == key {
			return core.KeyCode(code), true
		}
	}
	return core.KEYS_MAX_KEYS, false
}

// GLFWPlatform creates GLFW windows with an OpenGL 4.1 core context.
type GLFWPlatform struct{}

func New() *GLFWPlatform {
	return &GLFWPlatform{}
}

type GLFWSurface struct {
	Window      *glfw.Window
	events      *containers.RingQueue[core.Event]
	pendingQuit bool
	destroyed   bool

	pollEvents func()
}

func (p *GLFWPlatform) CreateSurface(config SurfaceConfig) (Surface, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	var monitor *glfw.Monitor
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			glfw.Terminate()
			return nil, ErrNoMonitor
		}
	}

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	s := &GLFWSurface{
		Window:     window,
		events:     containers.NewRingQueue[core.Event](eventQueueCapacity),
		pollEvents: glfw.PollEvents,
	}

	window.SetCloseCallback(s.closeCallback)
	window.SetKeyCallback(s.keyCallback)
	window.SetFramebufferSizeCallback(s.framebufferSizeCallback)

	if !config.Fullscreen {
		x, y := resolvePosition(config)
		window.SetPos(x, y)
	}
	window.Show()

	return s, nil
}

func resolvePosition(config SurfaceConfig) (int, int) {
	x, y := config.X, config.Y
	if x != WindowPosCentered && y != WindowPosCentered {
		return x, y
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 0, 0
	}
	mode := monitor.GetVideoMode()
	mx, my := monitor.GetPos()
	if x == WindowPosCentered {
		x = mx + (mode.Width-config.Width)/2
	}
	if y == WindowPosCentered {
		y = my + (mode.Height-config.Height)/2
	}
	return x, y
}

func (s *GLFWSurface) push(e core.Event) {
	if err := s.events.Enqueue(e); err != nil {
		if e.IsQuit() {
			s.pendingQuit = true
			return
		}
		core.LogWarn("event queue full, dropping %s event", e.Type)
	}
}

// PollEvent pumps the window system on every call, so the keyboard state
// stays current while buffered events drain one at a time.
func (s *GLFWSurface) PollEvent() (core.Event, bool) {
	if s.destroyed {
		return core.Event{}, false
	}
	s.pollEvents()
	if e, err := s.events.Dequeue(); err == nil {
		return e, true
	}
	if s.pendingQuit {
		s.pendingQuit = false
		return core.QuitEvent(), true
	}
	return core.Event{}, false
}

func (s *GLFWSurface) KeyboardState() core.KeyboardSnapshot {
	var snapshot core.KeyboardSnapshot
	if s.destroyed {
		return snapshot
	}
	for code, key := range glfwKeys {
		snapshot[code] = s.Window.GetKey(key) != glfw.Release
	}
	return snapshot
}

func (s *GLFWSurface) Present() error {
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	s.Window.SwapBuffers()
	return nil
}

func (s *GLFWSurface) SetSwapInterval(vsync bool) {
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (s *GLFWSurface) Destroy() error {
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	glfw.DetachCurrentContext()
	s.Window.Destroy()
	glfw.Terminate()
	s.destroyed = true
	return nil
}

func (s *GLFWSurface) closeCallback(w *glfw.Window) {
	s.push(core.QuitEvent())
}

func (s *GLFWSurface) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code, ok := keyCodeFromGLFW(key)
	if !ok {
		return
	}
	s.push(core.KeyEvent(code, action == glfw.Press))
}

func (s *GLFWSurface) framebufferSizeCallback(w *glfw.Window, width, height int) {
	s.push(core.ResizeEvent(uint32(width), uint32(height)))
}
