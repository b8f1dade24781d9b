package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundSaturateI16(t *testing.T) {
	require.Equal(t, int16(0), RoundSaturateI16(math.NaN()))
	require.Equal(t, int16(0), RoundSaturateI16(math.Inf(1)))
	require.Equal(t, int16(0), RoundSaturateI16(math.Inf(-1)))
	require.Equal(t, int16(math.MaxInt16), RoundSaturateI16(1e9))
	require.Equal(t, int16(math.MinInt16), RoundSaturateI16(-1e9))
	require.Equal(t, int16(3), RoundSaturateI16(2.6))
	require.Equal(t, int16(-3), RoundSaturateI16(-2.6))
}

func TestRoundSaturateU16(t *testing.T) {
	require.Equal(t, uint16(0), RoundSaturateU16(math.NaN()))
	require.Equal(t, uint16(0), RoundSaturateU16(math.Inf(1)))
	require.Equal(t, uint16(0), RoundSaturateU16(-5))
	require.Equal(t, uint16(MissingU16-1), RoundSaturateU16(1e9))
	require.Equal(t, uint16(3), RoundSaturateU16(2.6))
}
