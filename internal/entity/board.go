package entity

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/draughts/internal/apperror"
)

const (
	piecesPerSide = 20
	setupRows     = 4
)

type arenaEntry struct {
	piece   Piece
	removed bool
}

// Board is the 10x10 grid. Cells hold arena handles instead of pieces so that
// selections and capture lists can refer to pieces by identity.
type Board struct {
	grid  [Size][Size]PieceID
	arena []arenaEntry
	live  [3]int
	kings [3]int
}

// NewEmptyBoard returns a board without pieces.
func NewEmptyBoard() *Board {
	return &Board{
		arena: make([]arenaEntry, 1, 2*piecesPerSide+1), // slot 0 is NoPiece
	}
}

// NewBoard returns the standard starting position: blue on the playable squares
// of rows 0-3, grey on rows 6-9.
func NewBoard() *Board {
	board := NewEmptyBoard()

	for row := 0; row < Size; row++ {
		var color Color

		switch {
		case row < setupRows:
			color = Blue
		case row >= Size-setupRows:
			color = Grey
		default:
			continue
		}

		for col := 0; col < Size; col++ {
			sq := Square{Row: row, Col: col}
			if !sq.Playable() {
				continue
			}

			// cannot fail: the square is in bounds and empty
			_, _ = board.Place(color, sq, false)
		}
	}

	return board
}

// Place puts a new piece on an empty square. Ids are never reused, so a board
// holds at most 255 placements over its lifetime.
func (that *Board) Place(color Color, sq Square, king bool) (PieceID, error) {
	if color != Blue && color != Grey {
		return NoPiece, fmt.Errorf("%w: %s", apperror.ErrInvalidColor, color)
	}

	if !sq.InBounds() {
		return NoPiece, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, sq)
	}

	if that.grid[sq.Row][sq.Col] != NoPiece {
		return NoPiece, fmt.Errorf("%w: %s", apperror.ErrSquareOccupied, sq)
	}

	if len(that.arena) > math.MaxUint8 {
		return NoPiece, apperror.ErrBoardFull
	}

	id := PieceID(len(that.arena))
	that.arena = append(that.arena, arenaEntry{
		piece: Piece{ID: id, Square: sq, Color: color, King: king},
	})
	that.grid[sq.Row][sq.Col] = id
	that.live[color]++

	if king {
		that.kings[color]++
	}

	return id, nil
}

// PieceAt returns the piece standing on sq. It fails only for off-grid squares.
func (that *Board) PieceAt(sq Square) (Piece, bool, error) {
	if !sq.InBounds() {
		return Piece{}, false, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, sq)
	}

	id := that.grid[sq.Row][sq.Col]
	if id == NoPiece {
		return Piece{}, false, nil
	}

	return that.arena[id].piece, true, nil
}

// Occupant returns the handle on sq, NoPiece for empty or off-grid squares.
func (that *Board) Occupant(sq Square) PieceID {
	if !sq.InBounds() {
		return NoPiece
	}

	return that.grid[sq.Row][sq.Col]
}

// Piece looks a live piece up by handle.
func (that *Board) Piece(id PieceID) (Piece, bool) {
	if id == NoPiece || int(id) >= len(that.arena) {
		return Piece{}, false
	}

	entry := that.arena[id]
	if entry.removed {
		return Piece{}, false
	}

	return entry.piece, true
}

// MovePiece relocates a piece and crowns it when it lands on its promotion row.
func (that *Board) MovePiece(id PieceID, to Square) (bool, error) {
	if !to.InBounds() {
		return false, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, to)
	}

	piece, ok := that.Piece(id)
	if !ok {
		return false, fmt.Errorf("%w: id %d", apperror.ErrPieceNotFound, id)
	}

	if occupant := that.grid[to.Row][to.Col]; occupant != NoPiece && occupant != id {
		return false, fmt.Errorf("%w: %s", apperror.ErrSquareOccupied, to)
	}

	from := piece.Square
	that.grid[from.Row][from.Col] = NoPiece
	that.grid[to.Row][to.Col] = id

	entry := &that.arena[id]
	entry.piece.Square = to

	if to.Row != piece.Color.PromotionRow() || piece.King {
		return false, nil
	}

	entry.piece.King = true
	that.kings[piece.Color]++

	return true, nil
}

// RemovePieces takes captured pieces off the board. Unknown or already removed
// handles are skipped.
func (that *Board) RemovePieces(ids []PieceID) {
	for _, id := range ids {
		piece, ok := that.Piece(id)
		if !ok {
			continue
		}

		that.grid[piece.Square.Row][piece.Square.Col] = NoPiece
		that.arena[id].removed = true
		that.live[piece.Color]--
	}
}

// RemainingCount is the number of live pieces of a colour.
func (that *Board) RemainingCount(color Color) int {
	return that.live[color]
}

// KingCount is the number of promotions a colour has made on this board,
// including kings placed directly.
func (that *Board) KingCount(color Color) int {
	return that.kings[color]
}

// Pieces lists the live pieces in row-major order.
func (that *Board) Pieces() []Piece {
	pieces := make([]Piece, 0, that.live[Blue]+that.live[Grey])

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if id := that.grid[row][col]; id != NoPiece {
				pieces = append(pieces, that.arena[id].piece)
			}
		}
	}

	return pieces
}

// Winner returns the side whose opponent has no pieces left.
func (that *Board) Winner() Color {
	switch {
	case that.live[Grey] <= 0:
		return Blue
	case that.live[Blue] <= 0:
		return Grey
	default:
		return NoColor
	}
}
