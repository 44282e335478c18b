package application

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/draughts/internal/apperror"
	"github.com/rocketscienceinc/draughts/internal/config"
	"github.com/rocketscienceinc/draughts/testing/suite"
)

func testConfig(t *testing.T, mode string) *config.Config {
	return &config.Config{
		LogLevel: "debug",
		Mode:     mode,
		Render: config.Render{
			SquareSize:   24,
			SnapshotPath: filepath.Join(t.TempDir(), "snapshot.png"),
		},
	}
}

func TestRun(t *testing.T) {
	t.Run("Snapshot mode writes the starting position", func(t *testing.T) {
		// Given: snapshot mode
		ctx, st := suite.New(t)
		conf := testConfig(t, config.ModeSnapshot)

		// When: running
		err := run(ctx, st.Logger, conf, nil)

		// Then: a PNG of the board is on disk
		require.NoError(t, err)

		file, err := os.Open(conf.Render.SnapshotPath)
		require.NoError(t, err)
		defer file.Close()

		img, err := png.Decode(file)
		require.NoError(t, err)
		assert.Equal(t, 24*10, img.Bounds().Dx())
	})

	t.Run("Terminal mode stops when the context ends", func(t *testing.T) {
		_, st := suite.New(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := run(ctx, st.Logger, testConfig(t, config.ModeTerminal), tcell.NewSimulationScreen(""))

		assert.NoError(t, err)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		ctx, st := suite.New(t)

		err := run(ctx, st.Logger, testConfig(t, "web"), nil)

		assert.ErrorIs(t, err, apperror.ErrUnknownMode)
	})

	t.Run("Broken theme file", func(t *testing.T) {
		ctx, st := suite.New(t)
		conf := testConfig(t, config.ModeSnapshot)
		conf.Render.ThemePath = filepath.Join(t.TempDir(), "missing.yaml")

		err := run(ctx, st.Logger, conf, nil)

		assert.ErrorContains(t, err, "failed to load theme")
	})
}
