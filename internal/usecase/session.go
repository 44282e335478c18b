package usecase

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/draughts/internal/apperror"
	"github.com/rocketscienceinc/draughts/internal/draughts"
	"github.com/rocketscienceinc/draughts/internal/entity"
)

// firstTurn is the side that opens every game.
const firstTurn = entity.Grey

// Session drives one game: whose turn it is, which piece is selected and
// where that piece may go. It is not safe for concurrent use.
type Session struct {
	base   *slog.Logger
	logger *slog.Logger

	id         string
	board      *entity.Board
	turn       entity.Color
	selected   entity.PieceID
	validMoves draughts.Moves
}

// NewGame starts a game from the standard position.
func NewGame(logger *slog.Logger) *Session {
	return NewGameFrom(logger, entity.NewBoard(), firstTurn)
}

// NewGameFrom starts a game from an arbitrary position with the given side to move.
func NewGameFrom(logger *slog.Logger, board *entity.Board, turn entity.Color) *Session {
	that := &Session{
		base:  logger,
		board: board,
		turn:  turn,
	}
	that.assignID()

	that.logger.Info("game started", "turn", turn.String())

	return that
}

// Select handles a click on a square. With nothing selected it picks up an own
// piece; with a piece selected it commits the move to a legal destination or
// otherwise drops the selection and treats the click as a fresh selection.
// It reports whether a piece ended up selected or a move was committed.
func (that *Session) Select(row, col int) bool {
	sq := entity.Square{Row: row, Col: col}
	if !sq.InBounds() {
		that.logger.Warn("select outside the board", "square", sq.String())
		return false
	}

	if that.selected == entity.NoPiece {
		return that.trySelect(sq)
	}

	err := that.commit(sq)
	if err == nil {
		return true
	}

	that.logger.Debug("selection dropped", "square", sq.String(), "reason", err.Error())
	that.clearSelection()

	return that.trySelect(sq)
}

func (that *Session) trySelect(sq entity.Square) bool {
	if err := that.selectPiece(sq); err != nil {
		that.logger.Debug("select ignored", "square", sq.String(), "reason", err.Error())
		return false
	}

	return true
}

func (that *Session) selectPiece(sq entity.Square) error {
	if winner := that.board.Winner(); winner != entity.NoColor {
		return fmt.Errorf("%w: %s won", apperror.ErrGameFinished, winner)
	}

	piece, ok, err := that.board.PieceAt(sq)
	if err != nil {
		return fmt.Errorf("failed to read square: %w", err)
	}

	if !ok || piece.Color != that.turn {
		return fmt.Errorf("%w: %s", apperror.ErrIllegalSelection, sq)
	}

	that.selected = piece.ID
	that.validMoves = draughts.LegalMoves(that.board, piece.ID)

	that.logger.Debug("piece selected",
		"square", sq.String(),
		"king", piece.King,
		"destinations", len(that.validMoves),
		"capture", that.validMoves.HasCaptures(),
	)

	return nil
}

func (that *Session) commit(to entity.Square) error {
	captured, ok := that.validMoves[to]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrIllegalDestination, to)
	}

	piece, ok := that.board.Piece(that.selected)
	if !ok {
		return fmt.Errorf("%w: id %d", apperror.ErrPieceNotFound, that.selected)
	}

	promoted, err := that.board.MovePiece(piece.ID, to)
	if err != nil {
		return fmt.Errorf("failed to move piece: %w", err)
	}

	that.board.RemovePieces(captured)

	that.logger.Info("move committed",
		"color", piece.Color.String(),
		"from", piece.Square.String(),
		"to", to.String(),
		"captures", len(captured),
		"promoted", promoted,
	)

	that.turn = that.turn.Opponent()
	that.clearSelection()

	if winner := that.board.Winner(); winner != entity.NoColor {
		that.logger.Info("game over",
			"winner", winner.String(),
			"blue", that.board.RemainingCount(entity.Blue),
			"grey", that.board.RemainingCount(entity.Grey),
		)
	}

	return nil
}

func (that *Session) clearSelection() {
	that.selected = entity.NoPiece
	that.validMoves = nil
}

// CurrentValidMoves returns a copy of the selected piece's legal moves.
func (that *Session) CurrentValidMoves() draughts.Moves {
	return that.validMoves.Clone()
}

// Selected returns the selected piece, if any.
func (that *Session) Selected() (entity.Piece, bool) {
	return that.board.Piece(that.selected)
}

func (that *Session) Turn() entity.Color {
	return that.turn
}

// Board exposes the position for rendering. Callers must not mutate it.
func (that *Session) Board() *entity.Board {
	return that.board
}

func (that *Session) Winner() entity.Color {
	return that.board.Winner()
}

func (that *Session) ID() string {
	return that.id
}

// Reset discards the current game and starts over from the standard position
// under a new id.
func (that *Session) Reset() {
	previous := that.id

	that.board = entity.NewBoard()
	that.turn = firstTurn
	that.clearSelection()
	that.assignID()

	that.logger.Info("game reset", "previous_session_id", previous)
}

func (that *Session) assignID() {
	that.id = uuid.NewString()
	that.logger = that.base.With("session_id", that.id)
}
