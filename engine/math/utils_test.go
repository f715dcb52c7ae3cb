package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	require.Equal(t, 5, Clamp(5, 1, 10))
	require.Equal(t, 1, Clamp(-3, 1, 10))
	require.Equal(t, 10, Clamp(42, 1, 10))
	require.Equal(t, uint32(1000), Clamp(uint32(5000), 1, 1000))
	require.InDelta(t, 0.5, Clamp(0.5, 0.0, 1.0), 1e-9)
}

func TestFrameBudget(t *testing.T) {
	require.InDelta(t, 1000.0/60.0, FrameBudget(uint32(60)), 1e-9)
	require.InDelta(t, 4.0, FrameBudget(250.0), 1e-9)
	require.Zero(t, FrameBudget(0))
}
