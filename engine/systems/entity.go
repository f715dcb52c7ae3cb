package systems

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/nanite/engine/containers"
	"github.com/spaghettifunk/nanite/engine/core"
)

/** @brief A named point in space. */
type Entity struct {
	/** @brief Unique, immutable identifier. */
	ID string
	/** @brief World position. */
	Position mgl32.Vec3
}

/** @brief Configuration for the entity system. */
type EntitySystemConfig struct {
	/** @brief The maximum number of entities held in the system. */
	MaxEntityCount int
	/** @brief Optional key hash, defaults to xxhash. */
	KeyHasher containers.Hasher
}

// EntitySystem stores entities by ID in a bounded table.
type EntitySystem struct {
	Config   *EntitySystemConfig
	entities *containers.FixedMap[*Entity]
}

func NewEntitySystem(config *EntitySystemConfig) (*EntitySystem, error) {
	if config == nil || config.MaxEntityCount <= 0 {
		err := fmt.Errorf("NewEntitySystem - config.MaxEntityCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &EntitySystem{
		Config:   config,
		entities: containers.NewFixedMapWithHasher[*Entity](config.MaxEntityCount, config.KeyHasher),
	}, nil
}

// Create registers a new entity. Nothing changes when the id is empty,
// already taken or the table is full.
func (es *EntitySystem) Create(id string, position mgl32.Vec3) error {
	if id == "" {
		return ErrInvalidID
	}
	err := es.entities.Put(id, &Entity{ID: id, Position: position})
	switch {
	case err == nil:
		core.LogDebug("entity %q created at %v", id, position)
		return nil
	case errors.Is(err, containers.ErrKeyExists):
		return fmt.Errorf("%w: %q", ErrEntityExists, id)
	case errors.Is(err, containers.ErrMapFull):
		return fmt.Errorf("%w: cannot add %q", ErrRegistryFull, id)
	}
	return err
}

// Get returns a copy of the entity. Changing the copy does not touch the
// registry.
func (es *EntitySystem) Get(id string) (Entity, bool) {
	e, ok := es.entities.Get(id)
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Position returns a copy of the entity position.
func (es *EntitySystem) Position(id string) (mgl32.Vec3, bool) {
	e, ok := es.entities.Get(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return e.Position, true
}

// ApplyDelta moves the entity by delta. It is the only way to change a
// position and reports false when the entity does not exist.
func (es *EntitySystem) ApplyDelta(id string, delta mgl32.Vec3) bool {
	e, ok := es.entities.Get(id)
	if !ok {
		return false
	}
	e.Position = e.Position.Add(delta)
	return true
}

// Each calls fn with a copy of every entity until fn returns false.
func (es *EntitySystem) Each(fn func(Entity) bool) {
	es.entities.Range(func(_ string, e *Entity) bool {
		return fn(*e)
	})
}

func (es *EntitySystem) Count() int {
	return es.entities.Len()
}

func (es *EntitySystem) Capacity() int {
	return es.entities.Cap()
}
