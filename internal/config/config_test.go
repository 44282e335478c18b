package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/draughts/internal/apperror"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file overriding some keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nmode: console\nrender:\n  square-size: 32\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and the rest falls back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeConsole, conf.Mode)
		assert.Equal(t, 32, conf.Render.SquareSize)
		assert.Equal(t, "draughts.png", conf.Render.SnapshotPath)
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		t.Setenv("DRAUGHTS_MODE", ModeSnapshot)

		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, ModeSnapshot, conf.Mode)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, 64, conf.Render.SquareSize)
	})

	t.Run("Rejects a square size that is not positive", func(t *testing.T) {
		// Given: a file and an environment each carrying a bad square size
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("render:\n  square-size: -8\n"), 0o600))

		// When: loading either source
		_, fileErr := Load(path)

		t.Setenv("DRAUGHTS_SQUARE_SIZE", "0")
		_, envErr := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: both fail with ErrInvalidConfig instead of reaching the renderer
		assert.ErrorIs(t, fileErr, apperror.ErrInvalidConfig)
		assert.ErrorIs(t, envErr, apperror.ErrInvalidConfig)
		assert.Panics(t, func() { MustLoad(path) })
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("render: [unclosed"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
