package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func snapshotWith(keys ...KeyCode) KeyboardSnapshot {
	var s KeyboardSnapshot
	for _, k := range keys {
		s[k] = true
	}
	return s
}

func TestInputState_StartsReleased(t *testing.T) {
	is := NewInputState()
	for k := KeyCode(0); k < KEYS_MAX_KEYS; k++ {
		require.Equal(t, KeyStateReleased, is.KeyState(k), k.String())
		require.False(t, is.IsKeyDown(k))
		require.True(t, is.IsKeyUp(k))
	}
}

func TestInputState_HeldSequence(t *testing.T) {
	is := NewInputState()

	is.Sample(snapshotWith(KEY_W))
	require.Equal(t, KeyStatePressed, is.KeyState(KEY_W))
	require.True(t, is.IsKeyDown(KEY_W))

	for i := 0; i < 5; i++ {
		is.Sample(snapshotWith(KEY_W))
		require.Equal(t, KeyStateHeld, is.KeyState(KEY_W))
		require.True(t, is.IsKeyDown(KEY_W))
	}

	// untouched keys stay released
	require.Equal(t, KeyStateReleased, is.KeyState(KEY_A))
}

func TestInputState_ReleaseFromAnyState(t *testing.T) {
	for _, samples := range []int{0, 1, 2, 7} {
		is := NewInputState()
		for i := 0; i < samples; i++ {
			is.Sample(snapshotWith(KEY_SPACE))
		}
		is.Sample(KeyboardSnapshot{})
		require.Equal(t, KeyStateReleased, is.KeyState(KEY_SPACE))
		require.False(t, is.IsKeyDown(KEY_SPACE))
	}
}

func TestInputState_PressAfterRelease(t *testing.T) {
	is := NewInputState()
	is.Sample(snapshotWith(KEY_ESCAPE))
	is.Sample(snapshotWith(KEY_ESCAPE))
	is.Sample(KeyboardSnapshot{})
	is.Sample(snapshotWith(KEY_ESCAPE))
	require.Equal(t, KeyStatePressed, is.KeyState(KEY_ESCAPE))
}

func TestInputState_Reset(t *testing.T) {
	is := NewInputState()
	is.Sample(snapshotWith(KEY_A, KEY_B))
	is.Sample(snapshotWith(KEY_A, KEY_B))
	is.Reset()
	require.False(t, is.IsKeyDown(KEY_A))
	require.False(t, is.IsKeyDown(KEY_B))
}

func TestInputState_OutOfRangeKey(t *testing.T) {
	is := NewInputState()
	is.Sample(snapshotWith(KEY_A))
	require.Equal(t, KeyStateReleased, is.KeyState(KEYS_MAX_KEYS))
	require.False(t, is.IsKeyDown(KEYS_MAX_KEYS+3))
}

func TestKeyCode_Names(t *testing.T) {
	require.Equal(t, "W", KEY_W.String())
	require.Equal(t, "ESCAPE", KEY_ESCAPE.String())

	k, err := ParseKeyCode("LSHIFT")
	require.NoError(t, err)
	require.Equal(t, KEY_LSHIFT, k)

	_, err = ParseKeyCode("F13")
	require.ErrorIs(t, err, ErrUnknownKey)
}
