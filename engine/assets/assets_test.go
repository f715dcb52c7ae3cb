package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestAssetManager_LoadSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "basic.vert", "void main() {}")

	am := NewAssetManager(dir)
	defer am.Close()

	src, err := am.LoadSource("basic.vert")
	require.NoError(t, err)
	require.Equal(t, "void main() {}", src)

	_, err = am.LoadSource("missing.frag")
	require.Error(t, err)

	_, err = am.LoadSource("")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestAssetManager_RejectsLargeSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "huge.frag", strings.Repeat("x", MaxSourceSize+1))
	writeFile(t, dir, "limit.frag", strings.Repeat("x", MaxSourceSize))

	am := NewAssetManager(dir)
	defer am.Close()

	_, err := am.LoadSource("huge.frag")
	require.ErrorIs(t, err, ErrSourceTooLarge)

	src, err := am.LoadSource("limit.frag")
	require.NoError(t, err)
	require.Len(t, src, MaxSourceSize)
}

func TestAssetManager_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "basic.frag", "v1")
	writeFile(t, dir, "other.frag", "v1")

	am := NewAssetManager(dir)
	defer am.Close()

	_, err := am.LoadSource("basic.frag")
	require.NoError(t, err)
	require.NoError(t, am.EnableWatch())
	require.Empty(t, am.DrainChanges())

	require.NoError(t, os.WriteFile(p, []byte("v2"), 0o644))
	// files that were never loaded are not reported
	writeFile(t, dir, "other.frag", "v2")

	var changed []string
	require.Eventually(t, func() bool {
		changed = append(changed, am.DrainChanges()...)
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, "basic.frag", changed[0])
	for _, c := range changed {
		require.Equal(t, "basic.frag", c)
	}
}

func TestAssetManager_CloseIsIdempotent(t *testing.T) {
	am := NewAssetManager(t.TempDir())
	require.NoError(t, am.EnableWatch())
	require.NoError(t, am.Close())
	require.NoError(t, am.Close())
	require.ErrorIs(t, am.EnableWatch(), ErrClosed)
}
