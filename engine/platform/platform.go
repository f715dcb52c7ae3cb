package platform

import (
	"errors"
	"math"
	"time"

	"github.com/spaghettifunk/nanite/engine/core"
)

// WindowPosCentered asks the platform to center the window on the primary
// monitor along that axis.
const WindowPosCentered int = math.MinInt32

var (
	ErrSurfaceDestroyed = errors.New("surface already destroyed")
	ErrNoMonitor        = errors.New("no monitor available")
)

// SurfaceConfig describes the window and context to create.
type SurfaceConfig struct {
	Title      string
	X          int
	Y          int
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Platform creates presentation surfaces.
type Platform interface {
	CreateSurface(config SurfaceConfig) (Surface, error)
}

// Surface is a window with a current graphics context.
type Surface interface {
	// PollEvent returns at most one pending event.
	PollEvent() (core.Event, bool)
	// KeyboardState reports which keys are down right now.
	KeyboardState() core.KeyboardSnapshot
	// Present swaps the back buffer to the screen.
	Present() error
	SetSwapInterval(vsync bool)
	// Destroy releases the context and the window.
	Destroy() error
}

// GetAbsoluteTime returns the wall clock in seconds.
func GetAbsoluteTime() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Sleep blocks for the given amount of milliseconds.
func Sleep(ms float64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}
