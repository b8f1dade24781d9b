package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/presence-vitals/fw-core/sensor/fake"
)

func TestLoadFixturesParsesJSONLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.jsonl")
	content := `{"human":false}
{"human":true,"targets":[{"Cluster":1,"X":0.5,"Y":0.1,"DopplerIndex":0}],"dist_ok":true,"dist_cm":60,"br_ok":true,"br":16,"hr_ok":true,"hr":70}

`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	frames, err := loadFixtures(path)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.False(t, frames[0].Human)
	require.True(t, frames[1].Human)
	require.Len(t, frames[1].Targets, 1)
	require.InDelta(t, 60.0, frames[1].DistCm, 0.001)
}

func TestLoadFixturesRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0o600))

	_, err := loadFixtures(path)
	require.Error(t, err)
}

func TestLoadFixturesMissingFile(t *testing.T) {
	_, err := loadFixtures(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
}

func TestDefaultFixturesNonEmpty(t *testing.T) {
	frames := defaultFixtures()
	require.NotEmpty(t, frames)
}

func TestReplayFixturesPushesUntilStopped(t *testing.T) {
	src := fake.New()
	frames := defaultFixtures()
	stop := make(chan struct{})

	go replayFixtures(src, frames, 5*time.Millisecond, stop)

	f, ok := src.NextFrame(200 * time.Millisecond)
	require.True(t, ok)
	require.Equal(t, frames[0], f)

	close(stop)
}
