package suite

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/draughts/internal/entity"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
	}
}

// Board builds a position from a diagram of 10 rows of 10 cells, row 0 first.
// Spaces are ignored; '.' or '-' is empty, 'b'/'g' are blue/grey pawns and
// 'B'/'G' are kings.
func (that *Suite) Board(diagram string) *entity.Board {
	that.Helper()

	return Board(that.T, diagram)
}

func Board(t *testing.T, diagram string) *entity.Board {
	t.Helper()

	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			rows = append(rows, line)
		}
	}

	if len(rows) != entity.Size {
		t.Fatalf("diagram has %d rows, want %d", len(rows), entity.Size)
	}

	board := entity.NewEmptyBoard()

	for row, line := range rows {
		if len(line) != entity.Size {
			t.Fatalf("diagram row %d has %d cells, want %d", row, len(line), entity.Size)
		}

		for col, cell := range line {
			var (
				color entity.Color
				king  bool
			)

			switch cell {
			case '.', '-':
				continue
			case 'b':
				color = entity.Blue
			case 'B':
				color, king = entity.Blue, true
			case 'g':
				color = entity.Grey
			case 'G':
				color, king = entity.Grey, true
			default:
				t.Fatalf("unknown diagram cell %q at (%d,%d)", cell, row, col)
			}

			if _, err := board.Place(color, entity.Square{Row: row, Col: col}, king); err != nil {
				t.Fatalf("could not place piece: %v", err)
			}
		}
	}

	return board
}
