package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/draughts/internal/apperror"
	"github.com/rocketscienceinc/draughts/internal/config"
	"github.com/rocketscienceinc/draughts/internal/render"
	"github.com/rocketscienceinc/draughts/internal/usecase"
	"github.com/rocketscienceinc/draughts/transport/console"
	"github.com/rocketscienceinc/draughts/transport/terminal"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return run(ctx, logger, conf, nil)
}

// run wires the session, renderer and driver for the configured mode. A nil
// screen means a real terminal.
func run(ctx context.Context, logger *slog.Logger, conf *config.Config, screen tcell.Screen) error {
	log := logger.With("component", "app")

	palette, err := render.LoadPalette(conf.Render.ThemePath)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	pieces := render.NewPieceSet(logger, conf.Render.AssetDir, palette)
	renderer := render.NewRenderer(conf.Render.SquareSize, palette, pieces)
	session := usecase.NewGame(logger)

	log.Info("Starting", "mode", conf.Mode, "session_id", session.ID())

	switch conf.Mode {
	case config.ModeTerminal:
		if screen == nil {
			if screen, err = tcell.NewScreen(); err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
		}

		return terminal.New(logger, screen, session, palette, renderer, conf.Render.SnapshotPath).Run(ctx)
	case config.ModeConsole:
		return console.New(logger, session, os.Stdin, os.Stdout).Run(ctx)
	case config.ModeSnapshot:
		return writeSnapshot(ctx, renderer, session, conf.Render.SnapshotPath)
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMode, conf.Mode)
	}
}

func writeSnapshot(ctx context.Context, renderer render.BoardRenderer, session *usecase.Session, path string) error {
	data, err := renderer.RenderPNG(ctx, session.Board(), render.Options{
		Turn:   session.Turn(),
		Winner: session.Winner(),
	})
	if err != nil {
		return fmt.Errorf("failed to render snapshot: %w", err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}
