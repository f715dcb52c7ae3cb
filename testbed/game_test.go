package testbed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/nanite/engine"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/enginetest"
	"github.com/stretchr/testify/require"
)

func writeShaders(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, VertexShaderPath), []byte("#version 410 core\nvoid main() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FragmentShaderPath), []byte("#version 410 core\nvoid main() {}\n"), 0o644))
	return dir
}

func TestTestGame_MovesAndQuits(t *testing.T) {
	var right, escape core.KeyboardSnapshot
	right[core.KEY_D] = true
	escape[core.KEY_ESCAPE] = true

	p := enginetest.NewFakePlatform()
	p.Surface.Keyboard = []core.KeyboardSnapshot{right, right, escape}
	backend := enginetest.NewFakeBackend()

	g := NewTestGame()
	e, err := engine.New(g, p, backend)
	require.NoError(t, err)

	config := &engine.ApplicationConfig{
		AssetDir:      writeShaders(t),
		FPS:           1000,
		FailurePolicy: engine.FailurePolicyReturn,
	}
	done := make(chan error, 1)
	go func() {
		done <- e.Start(config)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop on escape")
	}

	// the escape tick still draws, without moving the entity
	require.Len(t, backend.Uniforms, 3)
	moved := backend.Uniforms[1].Value
	require.Greater(t, moved.X(), backend.Uniforms[0].Value.X())
	require.Greater(t, backend.Uniforms[0].Value.X(), float32(0))
	require.Equal(t, float32(0), moved.Y())
	require.Equal(t, moved, backend.Uniforms[2].Value)
	require.Equal(t, 3, p.Surface.Presents)
	require.True(t, p.Surface.Destroyed)
}
