package draughts

import (
	"slices"

	"github.com/rocketscienceinc/draughts/internal/entity"
)

// LegalMoves computes every legal destination of a piece. Captures are
// mandatory: when the piece can capture, simple moves are not returned.
func LegalMoves(board *entity.Board, id entity.PieceID) Moves {
	piece, ok := board.Piece(id)
	if !ok {
		return Moves{}
	}

	if captures := captureMoves(board, piece); len(captures) > 0 {
		return captures
	}

	if piece.King {
		return kingSimpleMoves(board, piece)
	}

	return pawnSimpleMoves(board, piece)
}

// chainStep is one node of the capture search: where the piece stands, the
// direction it arrived from and what it has captured so far.
type chainStep struct {
	at       entity.Square
	heading  Direction
	captured []entity.PieceID
}

// captureMoves runs a depth-first search over capture chains with an explicit
// stack. A landing with no continuation ends a chain and becomes a destination.
func captureMoves(board *entity.Board, piece entity.Piece) Moves {
	moves := Moves{}
	stack := []chainStep{{at: piece.Square}}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var next []chainStep
		if piece.King {
			next = kingContinuations(board, piece.Color, step)
		} else {
			next = pawnContinuations(board, piece.Color, step)
		}

		if len(next) == 0 {
			if len(step.captured) > 0 {
				moves.merge(step.at, step.captured)
			}
			continue
		}

		// pushed in reverse so they are explored in search order
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}

	return moves
}

func pawnContinuations(board *entity.Board, color entity.Color, step chainStep) []chainStep {
	var next []chainStep

	for _, dir := range Diagonals {
		enemySq := dir.from(step.at, 1)
		enemy, ok := capturable(board, color, enemySq, step.captured)
		if !ok {
			continue
		}

		landing := dir.from(step.at, 2)
		if !landing.InBounds() || board.Occupant(landing) != entity.NoPiece {
			continue
		}

		next = append(next, chainStep{
			at:       landing,
			heading:  dir,
			captured: withCapture(step.captured, enemy),
		})
	}

	return next
}

func kingContinuations(board *entity.Board, color entity.Color, step chainStep) []chainStep {
	var next []chainStep

	for _, dir := range Diagonals {
		if !step.heading.isZero() && dir == step.heading.Reverse() {
			continue
		}

		next = append(next, kingScan(board, color, step, dir)...)
	}

	return next
}

// kingScan slides along one diagonal looking for a single enemy to jump.
// Every empty square after that enemy, up to the next piece, is a landing.
func kingScan(board *entity.Board, color entity.Color, step chainStep, dir Direction) []chainStep {
	var (
		next  []chainStep
		enemy = entity.NoPiece
	)

	for sq := dir.from(step.at, 1); sq.InBounds(); sq = dir.from(sq, 1) {
		id := board.Occupant(sq)

		if id == entity.NoPiece {
			if enemy != entity.NoPiece {
				next = append(next, chainStep{
					at:       sq,
					heading:  dir,
					captured: withCapture(step.captured, enemy),
				})
			}
			continue
		}

		if enemy != entity.NoPiece {
			break
		}

		if _, ok := capturable(board, color, sq, step.captured); !ok {
			break
		}

		enemy = id
	}

	return next
}

// capturable reports whether sq holds an opposing piece not yet captured in
// the current chain.
func capturable(board *entity.Board, color entity.Color, sq entity.Square, captured []entity.PieceID) (entity.PieceID, bool) {
	id := board.Occupant(sq)
	if id == entity.NoPiece || slices.Contains(captured, id) {
		return entity.NoPiece, false
	}

	piece, ok := board.Piece(id)
	if !ok || piece.Color == color {
		return entity.NoPiece, false
	}

	return id, true
}

func withCapture(captured []entity.PieceID, id entity.PieceID) []entity.PieceID {
	out := make([]entity.PieceID, len(captured), len(captured)+1)
	copy(out, captured)

	return append(out, id)
}

func pawnSimpleMoves(board *entity.Board, piece entity.Piece) Moves {
	moves := Moves{}
	forward := piece.Color.Forward()

	for _, dCol := range []int{-1, 1} {
		sq := piece.Square.Add(forward, dCol)
		if sq.InBounds() && board.Occupant(sq) == entity.NoPiece {
			moves[sq] = nil
		}
	}

	return moves
}

func kingSimpleMoves(board *entity.Board, piece entity.Piece) Moves {
	moves := Moves{}

	for _, dir := range Diagonals {
		for sq := dir.from(piece.Square, 1); sq.InBounds(); sq = dir.from(sq, 1) {
			if board.Occupant(sq) != entity.NoPiece {
				break
			}
			moves[sq] = nil
		}
	}

	return moves
}
