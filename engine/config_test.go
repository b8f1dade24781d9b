package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	require.False(t, cfg.HeadMoving)
	require.EqualValues(t, -1, cfg.ForcedFocusCluster)
	require.EqualValues(t, 1000, cfg.BioPeriodMs)
	require.EqualValues(t, 250, cfg.TargetsPeriodMs)
}

func TestClampPeriodMs(t *testing.T) {
	ms, clamped := ClampPeriodMs(10)
	require.EqualValues(t, 50, ms)
	require.True(t, clamped)

	ms, clamped = ClampPeriodMs(50)
	require.EqualValues(t, 50, ms)
	require.False(t, clamped)

	ms, clamped = ClampPeriodMs(2000)
	require.EqualValues(t, 2000, ms)
	require.False(t, clamped)
}
