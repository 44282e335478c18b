package entity

import "fmt"

// Size is the number of rows and columns of an international draughts board.
const Size = 10

// Color identifies one of the two sides.
type Color uint8

const (
	NoColor Color = iota
	Blue
	Grey
)

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Grey:
		return "grey"
	default:
		return "none"
	}
}

// Opponent returns the other side, or NoColor for NoColor.
func (c Color) Opponent() Color {
	switch c {
	case Blue:
		return Grey
	case Grey:
		return Blue
	default:
		return NoColor
	}
}

// Forward is the row step of a non-capturing pawn move.
func (c Color) Forward() int {
	if c == Blue {
		return 1
	}
	return -1
}

// PromotionRow is the row farthest from the side's starting rows.
func (c Color) PromotionRow() int {
	if c == Blue {
		return Size - 1
	}
	return 0
}

// Square addresses one cell of the grid.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// Playable reports whether the square is one of the dark squares pieces stand on.
func (s Square) Playable() bool {
	return (s.Row+s.Col)%2 == 1
}

func (s Square) Add(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// PieceID is a stable handle into the board's piece arena.
type PieceID uint8

// NoPiece marks an empty cell.
const NoPiece PieceID = 0

type Piece struct {
	ID     PieceID `json:"id"`
	Square Square  `json:"square"`
	Color  Color   `json:"color"`
	King   bool    `json:"king"`
}
