package systems

import "errors"

var (
	ErrInvalidID       = errors.New("invalid entity id")
	ErrEntityExists    = errors.New("entity already exists")
	ErrRegistryFull    = errors.New("entity registry is full")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrShaderQueueFull = errors.New("shader queue is full")
	ErrNilSurface      = errors.New("surface is nil")
	ErrNoSourceLoader  = errors.New("no source loader configured")
)
