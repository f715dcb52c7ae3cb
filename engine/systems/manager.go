package systems

import (
	"github.com/spaghettifunk/nanite/engine/assets"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/renderer"
)

type SystemManagerConfig struct {
	MaxEntityCount int
	MaxShaderCount int
}

// SystemManager owns the entity and shader systems of one runtime. The
// shader system is nil when the manager is created without a renderer.
type SystemManager struct {
	EntitySystem *EntitySystem
	ShaderSystem *ShaderSystem
	assets       *assets.AssetManager
}

func NewSystemManager(config *SystemManagerConfig, am *assets.AssetManager, r *renderer.Renderer) (*SystemManager, error) {
	es, err := NewEntitySystem(&EntitySystemConfig{
		MaxEntityCount: config.MaxEntityCount,
	})
	if err != nil {
		return nil, err
	}
	sm := &SystemManager{
		EntitySystem: es,
		assets:       am,
	}
	if r == nil {
		return sm, nil
	}

	var loader assets.SourceLoader
	if am != nil {
		loader = am
	}
	ss, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount: config.MaxShaderCount,
	}, es, loader, r)
	if err != nil {
		return nil, err
	}
	sm.ShaderSystem = ss
	return sm, nil
}

// ReloadChangedShaders rebuilds the shaders whose sources changed on disk
// since the previous call. It returns the number of changed paths seen.
func (sm *SystemManager) ReloadChangedShaders() int {
	if sm.assets == nil || sm.ShaderSystem == nil {
		return 0
	}
	changed := sm.assets.DrainChanges()
	for _, path := range changed {
		if err := sm.ShaderSystem.Reload(path); err != nil {
			core.LogWarn("shader reload for %s kept the previous program: %s", path, err)
		}
	}
	return len(changed)
}

func (sm *SystemManager) Shutdown() error {
	if sm.ShaderSystem != nil {
		if err := sm.ShaderSystem.Shutdown(); err != nil {
			return err
		}
	}
	if sm.assets != nil {
		if err := sm.assets.Close(); err != nil {
			return err
		}
	}
	return nil
}
