package engine

import (
	"github.com/spaghettifunk/nanite/engine/core"
)

// Game is the user side of the engine. OnLoad runs once before the first
// tick; OnTick runs once per tick with the elapsed milliseconds since the
// previous one.
type Game interface {
	OnLoad(rt *Runtime) error
	OnTick(rt *Runtime, delta float64) error
}

// EventHandler is implemented by games that want the non-quit events the
// engine polls.
type EventHandler interface {
	OnEvent(rt *Runtime, event core.Event)
}

// Shutdowner is implemented by games that hold resources of their own.
type Shutdowner interface {
	OnShutdown(rt *Runtime) error
}

type Load func(rt *Runtime) error
type Tick func(rt *Runtime, delta float64) error
type OnEvent func(rt *Runtime, event core.Event)
type Shutdown func(rt *Runtime) error

// GameFuncs adapts plain functions to Game. Any of them may be nil.
type GameFuncs struct {
	FnLoad     Load
	FnTick     Tick
	FnOnEvent  OnEvent
	FnShutdown Shutdown
}

var (
	_ Game         = GameFuncs{}
	_ EventHandler = GameFuncs{}
	_ Shutdowner   = GameFuncs{}
)

func (g GameFuncs) OnLoad(rt *Runtime) error {
	if g.FnLoad == nil {
		return nil
	}
	return g.FnLoad(rt)
}

func (g GameFuncs) OnTick(rt *Runtime, delta float64) error {
	if g.FnTick == nil {
		return nil
	}
	return g.FnTick(rt, delta)
}

func (g GameFuncs) OnEvent(rt *Runtime, event core.Event) {
	if g.FnOnEvent != nil {
		g.FnOnEvent(rt, event)
	}
}

func (g GameFuncs) OnShutdown(rt *Runtime) error {
	if g.FnShutdown == nil {
		return nil
	}
	return g.FnShutdown(rt)
}
