package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Sources.SeedEnabled())
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `layout:
  breakpoint: 120
chat:
  response_delay: 250ms
sources:
  watch_dir: $NOTEBOOK_TEST_DROP/inbox
  seed: false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("NOTEBOOK_TEST_DROP", dir)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Layout.Breakpoint)
	assert.Equal(t, defaultGap, cfg.Layout.Gap)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ResponseDelay)
	assert.Equal(t, defaultRecordingDelay, cfg.Studio.RecordingDelay)
	assert.Equal(t, filepath.Join(dir, "inbox"), cfg.Sources.WatchDir)
	assert.False(t, cfg.Sources.SeedEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  breakpoint: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadKeepsZeroDelays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chat:\n  response_delay: 0s\nstudio:\n  recording_delay: 0s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Chat.ResponseDelay)
	assert.Zero(t, cfg.Studio.RecordingDelay)
}
