package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "watched.toml")
	writeFile(t, path, "[macro]\nrepeat = 1\n")
	SetConfigFile(path)

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)
	cw.SetDebounce(20 * time.Millisecond)

	reloaded := make(chan *Config, 4)
	cw.OnReload(func(cfg *Config) error {
		reloaded <- cfg
		return nil
	})
	cw.Start()
	t.Cleanup(func() { _ = cw.Stop() })

	writeFile(t, path, "[macro]\nrepeat = 5\n")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 5, cfg.Macro.Repeat)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload")
	}
}

func TestConfigWatcher_InvalidConfigSkipsCallbacks(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "watched.toml")
	writeFile(t, path, "[macro]\nrepeat = 1\n")
	SetConfigFile(path)

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)

	called := false
	cw.OnReload(func(*Config) error {
		called = true
		return nil
	})

	writeFile(t, path, "[macro]\nrepeat = -3\n")
	err = cw.reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reloaded config is invalid")
	assert.False(t, called)
	require.NoError(t, cw.Stop())
}

func TestConfigWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "watched.toml")
	writeFile(t, path, "[macro]\nrepeat = 1\n")
	SetConfigFile(path)

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)
	cw.SetDebounce(10 * time.Millisecond)

	reloaded := make(chan struct{}, 1)
	cw.OnReload(func(*Config) error {
		reloaded <- struct{}{}
		return nil
	})
	cw.Start()
	t.Cleanup(func() { _ = cw.Stop() })

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")

	select {
	case <-reloaded:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConfigWatcher_StopWithoutStart(t *testing.T) {
	cw, err := NewConfigWatcher(filepath.Join(t.TempDir(), "x.toml"))
	require.NoError(t, err)
	assert.NoError(t, cw.Stop())
}
