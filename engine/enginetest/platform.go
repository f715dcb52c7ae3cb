package enginetest

import (
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/platform"
)

var (
	_ platform.Platform = (*FakePlatform)(nil)
	_ platform.Surface  = (*FakeSurface)(nil)
)

// FakePlatform hands out a single FakeSurface.
type FakePlatform struct {
	Surface    *FakeSurface
	Config     platform.SurfaceConfig
	FailCreate error
}

func NewFakePlatform() *FakePlatform {
	return &FakePlatform{Surface: NewFakeSurface()}
}

func (p *FakePlatform) CreateSurface(config platform.SurfaceConfig) (platform.Surface, error) {
	if p.FailCreate != nil {
		return nil, p.FailCreate
	}
	p.Config = config
	return p.Surface, nil
}

// FakeSurface replays scripted events and keyboard snapshots. Once the
// scripted snapshots run out the last one keeps being reported.
type FakeSurface struct {
	Events    []core.Event
	Keyboard  []core.KeyboardSnapshot
	Presents  int
	Polls     int
	VSync     *bool
	Destroyed bool

	FailPresent error

	// OnPresent runs after every Present, handy for stepping a test clock.
	OnPresent func()

	lastKeyboard core.KeyboardSnapshot
}

func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

func (s *FakeSurface) PollEvent() (core.Event, bool) {
	s.Polls++
	if len(s.Events) == 0 {
		return core.Event{}, false
	}
	e := s.Events[0]
	s.Events = s.Events[1:]
	return e, true
}

func (s *FakeSurface) KeyboardState() core.KeyboardSnapshot {
	if len(s.Keyboard) > 0 {
		s.lastKeyboard = s.Keyboard[0]
		s.Keyboard = s.Keyboard[1:]
	}
	return s.lastKeyboard
}

func (s *FakeSurface) Present() error {
	if s.FailPresent != nil {
		return s.FailPresent
	}
	s.Presents++
	if s.OnPresent != nil {
		s.OnPresent()
	}
	return nil
}

func (s *FakeSurface) SetSwapInterval(vsync bool) {
	s.VSync = &vsync
}

func (s *FakeSurface) Destroy() error {
	s.Destroyed = true
	return nil
}
