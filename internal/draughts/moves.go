package draughts

import (
	"slices"

	"github.com/rocketscienceinc/draughts/internal/entity"
)

// Direction is a diagonal unit step.
type Direction struct {
	DRow int
	DCol int
}

// Diagonals lists the four diagonal directions in search order.
var Diagonals = [4]Direction{
	{DRow: -1, DCol: -1},
	{DRow: -1, DCol: 1},
	{DRow: 1, DCol: -1},
	{DRow: 1, DCol: 1},
}

func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

func (d Direction) isZero() bool {
	return d.DRow == 0 && d.DCol == 0
}

func (d Direction) from(sq entity.Square, distance int) entity.Square {
	return sq.Add(d.DRow*distance, d.DCol*distance)
}

// Moves maps a destination to the pieces captured on the way there, in capture
// order. A destination with no captures is a simple move.
type Moves map[entity.Square][]entity.PieceID

// HasCaptures reports whether any destination captures at least one piece.
func (m Moves) HasCaptures() bool {
	for _, captured := range m {
		if len(captured) > 0 {
			return true
		}
	}

	return false
}

func (m Moves) IsCapture(sq entity.Square) bool {
	return len(m[sq]) > 0
}

// Destinations returns the destination squares in row-major order.
func (m Moves) Destinations() []entity.Square {
	squares := make([]entity.Square, 0, len(m))
	for sq := range m {
		squares = append(squares, sq)
	}

	slices.SortFunc(squares, func(a, b entity.Square) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})

	return squares
}

func (m Moves) Clone() Moves {
	out := make(Moves, len(m))
	for sq, captured := range m {
		out[sq] = slices.Clone(captured)
	}

	return out
}

// merge keeps the strictly longer capture list for a landing; ties keep the
// list found first.
func (m Moves) merge(sq entity.Square, captured []entity.PieceID) {
	if existing, ok := m[sq]; ok && len(captured) <= len(existing) {
		return
	}

	m[sq] = captured
}
