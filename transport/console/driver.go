package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/draughts/internal/draughts"
	"github.com/rocketscienceinc/draughts/internal/entity"
)

type gameSession interface {
	Select(row, col int) bool
	CurrentValidMoves() draughts.Moves
	Selected() (entity.Piece, bool)
	Turn() entity.Color
	Board() *entity.Board
	Winner() entity.Color
	Reset()
	ID() string
}

const usage = "commands: <row> <col> select a square, r restart, q quit"

// Driver plays the game over line-oriented text streams.
type Driver struct {
	logger  *slog.Logger
	session gameSession
	in      io.Reader
	out     io.Writer

	blue     *color.Color
	grey     *color.Color
	simple   *color.Color
	capture  *color.Color
	selected *color.Color
	banner   *color.Color
}

func New(logger *slog.Logger, session gameSession, in io.Reader, out io.Writer) *Driver {
	return &Driver{
		logger:  logger,
		session: session,
		in:      in,
		out:     out,

		blue:     color.New(color.FgBlue, color.Bold),
		grey:     color.New(color.FgHiBlack, color.Bold),
		simple:   color.New(color.FgGreen),
		capture:  color.New(color.FgRed),
		selected: color.New(color.BgYellow, color.FgBlack),
		banner:   color.New(color.FgYellow, color.Bold),
	}
}

// Run reads commands until q, end of input or ctx cancellation.
func (that *Driver) Run(ctx context.Context) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go that.scan(ctx, done, lines, errs)

	that.print()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}

			if !that.Handle(line) {
				that.logger.Info("console driver stopped", "session_id", that.session.ID())
				return nil
			}

			that.print()
		}
	}
}

// scan feeds input lines to Run until the input ends or Run stops listening.
func (that *Driver) scan(ctx context.Context, done <-chan struct{}, lines chan<- string, errs chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}

	if err := scanner.Err(); err != nil {
		errs <- fmt.Errorf("failed to read input: %w", err)
	}
}

// Handle applies one command line and reports whether to keep running.
func (that *Driver) Handle(line string) bool {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 0:
		return true
	case fields[0] == "q" || fields[0] == "quit":
		return false
	case fields[0] == "r" || fields[0] == "restart":
		that.session.Reset()
		fmt.Fprintln(that.out, "New game")
		return true
	case len(fields) == 2:
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr != nil || colErr != nil || !(entity.Square{Row: row, Col: col}).InBounds() {
			break
		}

		if that.session.Winner() != entity.NoColor {
			fmt.Fprintln(that.out, "The game is over, r to restart")
			return true
		}

		if !that.session.Select(row, col) {
			fmt.Fprintf(that.out, "Nothing to do on (%d,%d)\n", row, col)
		}
		return true
	}

	fmt.Fprintln(that.out, usage)

	return true
}

func (that *Driver) print() {
	board := that.session.Board()
	moves := that.session.CurrentValidMoves()

	var selected *entity.Square
	if piece, ok := that.session.Selected(); ok {
		selected = &piece.Square
	}

	var b strings.Builder

	b.WriteString("   ")
	for col := 0; col < entity.Size; col++ {
		fmt.Fprintf(&b, " %d", col)
	}
	b.WriteString("\n")

	for row := 0; row < entity.Size; row++ {
		fmt.Fprintf(&b, "%2d ", row)

		for col := 0; col < entity.Size; col++ {
			sq := entity.Square{Row: row, Col: col}
			b.WriteString(" ")
			b.WriteString(that.cell(board, moves, sq, selected != nil && *selected == sq))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Turn: %s  Blue %d (%dK)  Grey %d (%dK)\n",
		that.session.Turn(),
		board.RemainingCount(entity.Blue), board.KingCount(entity.Blue),
		board.RemainingCount(entity.Grey), board.KingCount(entity.Grey),
	)

	if winner := that.session.Winner(); winner != entity.NoColor {
		b.WriteString(that.banner.Sprintf("%s WINS", strings.ToUpper(winner.String())))
		b.WriteString("\n")
	}

	fmt.Fprint(that.out, b.String())
}

func (that *Driver) cell(board *entity.Board, moves draughts.Moves, sq entity.Square, selected bool) string {
	piece, ok, _ := board.PieceAt(sq)
	if ok {
		text := pieceGlyph(piece)
		if selected {
			return that.selected.Sprint(text)
		}
		if piece.Color == entity.Blue {
			return that.blue.Sprint(text)
		}
		return that.grey.Sprint(text)
	}

	if _, ok = moves[sq]; ok {
		if moves.IsCapture(sq) {
			return that.capture.Sprint("x")
		}
		return that.simple.Sprint("*")
	}

	if sq.Playable() {
		return "."
	}

	return " "
}

func pieceGlyph(piece entity.Piece) string {
	glyph := "b"
	if piece.Color == entity.Grey {
		glyph = "g"
	}

	if piece.King {
		return strings.ToUpper(glyph)
	}

	return glyph
}
