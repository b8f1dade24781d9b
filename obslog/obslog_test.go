package obslog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBuildsLoggerAtEachLevel(t *testing.T) {
	for _, lvl := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, "unknown"} {
		logger, err := New(lvl, true, "")
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}

func TestNewAttachesRunID(t *testing.T) {
	logger, err := New(LevelInfo, true, "boot-123")
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewProductionConfig(t *testing.T) {
	logger, err := New(LevelInfo, false, "")
	require.NoError(t, err)
	require.NotNil(t, logger)
}
