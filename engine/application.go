package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/math"
	"github.com/spaghettifunk/nanite/engine/platform"
)

const (
	DefaultTitle                 = "nanite"
	DefaultWidth                 = 640
	DefaultHeight                = 480
	DefaultFPS            uint32 = 60
	DefaultQueueCapacity         = 2048
	DefaultEntityCapacity        = 2048

	maxFPS      uint32 = 1000
	maxCapacity        = 1 << 20
)

var ErrUnknownFailurePolicy = errors.New("unknown failure policy")

// FailurePolicy decides how the engine reacts to a platform or GPU failure.
type FailurePolicy uint8

const (
	// Log the error and terminate the process.
	FailurePolicyFatal FailurePolicy = iota
	// Tear down and return the error from Start.
	FailurePolicyReturn
	// Log the error and keep running. Setup errors are still returned.
	FailurePolicyLog
)

func (p FailurePolicy) String() string {
	switch p {
	case FailurePolicyFatal:
		return "fatal"
	case FailurePolicyReturn:
		return "return"
	case FailurePolicyLog:
		return "log"
	}
	return fmt.Sprintf("FailurePolicy(%d)", uint8(p))
}

func (p FailurePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *FailurePolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fatal", "":
		*p = FailurePolicyFatal
	case "return":
		*p = FailurePolicyReturn
	case "log":
		*p = FailurePolicyLog
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFailurePolicy, text)
	}
	return nil
}

type ApplicationConfig struct {
	// The application name used in windowing.
	Title string `toml:"title"`
	// Window starting position, centered when unset.
	X *int `toml:"x"`
	Y *int `toml:"y"`
	// Window starting size.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Target ticks per second.
	FPS        uint32 `toml:"fps"`
	Fullscreen bool   `toml:"fullscreen"`
	// Swap interval of 1 when true. Defaults to true.
	VSync *bool `toml:"vsync"`

	// Skip keyboard sampling; InputState stays released.
	DisableInput bool `toml:"disable_input"`
	// Skip the GPU backend; ticks only present the surface.
	DisableRenderer bool `toml:"disable_renderer"`
	// Reload shaders when their sources change on disk.
	WatchShaders bool `toml:"watch_shaders"`
	// Base directory for relative shader paths.
	AssetDir string `toml:"asset_dir"`

	// Leaves the logger untouched when unset.
	LogLevel      *core.LogLevel `toml:"log_level"`
	FailurePolicy FailurePolicy  `toml:"failure_policy"`

	ShaderQueueCapacity int `toml:"shader_queue_capacity"`
	EntityCapacity      int `toml:"entity_capacity"`
}

// DefaultApplicationConfig returns a config with every default filled in.
func DefaultApplicationConfig() *ApplicationConfig {
	c := &ApplicationConfig{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields and clamps numeric limits.
func (c *ApplicationConfig) ApplyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.X == nil {
		x := platform.WindowPosCentered
		c.X = &x
	}
	if c.Y == nil {
		y := platform.WindowPosCentered
		c.Y = &y
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	c.FPS = math.Clamp(c.FPS, 1, maxFPS)
	if c.VSync == nil {
		vsync := true
		c.VSync = &vsync
	}
	if c.ShaderQueueCapacity <= 0 {
		c.ShaderQueueCapacity = DefaultQueueCapacity
	}
	c.ShaderQueueCapacity = math.Clamp(c.ShaderQueueCapacity, 1, maxCapacity)
	if c.EntityCapacity <= 0 {
		c.EntityCapacity = DefaultEntityCapacity
	}
	c.EntityCapacity = math.Clamp(c.EntityCapacity, 1, maxCapacity)
}

// FrameBudget is the minimum time between two ticks, in milliseconds.
func (c *ApplicationConfig) FrameBudget() float64 {
	return math.FrameBudget(c.FPS)
}

func (c *ApplicationConfig) surfaceConfig() platform.SurfaceConfig {
	return platform.SurfaceConfig{
		Title:      c.Title,
		X:          *c.X,
		Y:          *c.Y,
		Width:      c.Width,
		Height:     c.Height,
		Fullscreen: c.Fullscreen,
		VSync:      *c.VSync,
	}
}

// LoadConfig reads a TOML config file. Missing keys keep their defaults.
func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*ApplicationConfig, error) {
	c := &ApplicationConfig{}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}
