package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/draughts/internal/draughts"
	"github.com/rocketscienceinc/draughts/internal/entity"
	"github.com/rocketscienceinc/draughts/testing/suite"
)

func TestNewGame(t *testing.T) {
	_, st := suite.New(t)

	// When: starting a new game
	session := NewGame(st.Logger)

	// Then: grey opens on the standard board with nothing selected
	assert.NotEmpty(t, session.ID())
	assert.Equal(t, entity.Grey, session.Turn())
	assert.Equal(t, entity.NoColor, session.Winner())
	assert.Equal(t, 20, session.Board().RemainingCount(entity.Blue))
	assert.Equal(t, 20, session.Board().RemainingCount(entity.Grey))
	assert.Empty(t, session.CurrentValidMoves())

	_, ok := session.Selected()
	assert.False(t, ok)
}

func TestSession_Select(t *testing.T) {
	t.Run("Selecting an own piece computes its moves", func(t *testing.T) {
		// Given: a new game
		_, st := suite.New(t)
		session := NewGame(st.Logger)

		// When: grey picks up the pawn on (6,1)
		ok := session.Select(6, 1)

		// Then: the pawn is selected with its two forward moves
		require.True(t, ok)

		piece, selected := session.Selected()
		require.True(t, selected)
		assert.Equal(t, entity.Square{Row: 6, Col: 1}, piece.Square)
		assert.Equal(t, draughts.Moves{{Row: 5, Col: 0}: nil, {Row: 5, Col: 2}: nil}, session.CurrentValidMoves())
	})

	t.Run("Opponent pieces and empty squares are ignored", func(t *testing.T) {
		_, st := suite.New(t)
		session := NewGame(st.Logger)

		assert.False(t, session.Select(3, 2), "blue piece on grey's turn")
		assert.False(t, session.Select(5, 0), "empty square")
		assert.False(t, session.Select(-1, 3), "off the board")

		_, ok := session.Selected()
		assert.False(t, ok)
	})

	t.Run("Commits a simple move and passes the turn", func(t *testing.T) {
		// Given: grey has selected the pawn on (6,1)
		_, st := suite.New(t)
		session := NewGame(st.Logger)
		require.True(t, session.Select(6, 1))
		id := session.Board().Occupant(entity.Square{Row: 6, Col: 1})

		// When: clicking the destination (5,0)
		ok := session.Select(5, 0)

		// Then: the move is committed and it is blue's turn
		require.True(t, ok)
		assert.Equal(t, id, session.Board().Occupant(entity.Square{Row: 5, Col: 0}))
		assert.Equal(t, entity.NoPiece, session.Board().Occupant(entity.Square{Row: 6, Col: 1}))
		assert.Equal(t, entity.Blue, session.Turn())
		assert.Empty(t, session.CurrentValidMoves())

		_, selected := session.Selected()
		assert.False(t, selected)
	})

	t.Run("Clicking another own piece reselects it", func(t *testing.T) {
		_, st := suite.New(t)
		session := NewGame(st.Logger)
		require.True(t, session.Select(6, 1))

		ok := session.Select(6, 3)

		require.True(t, ok)
		piece, selected := session.Selected()
		require.True(t, selected)
		assert.Equal(t, entity.Square{Row: 6, Col: 3}, piece.Square)
		assert.Equal(t, entity.Grey, session.Turn())
	})

	t.Run("Clicking an illegal empty square drops the selection", func(t *testing.T) {
		_, st := suite.New(t)
		session := NewGame(st.Logger)
		require.True(t, session.Select(6, 1))

		ok := session.Select(5, 6)

		assert.False(t, ok)
		_, selected := session.Selected()
		assert.False(t, selected)
		assert.Empty(t, session.CurrentValidMoves())
		assert.Equal(t, entity.Grey, session.Turn())
	})

	t.Run("Returned moves are a copy", func(t *testing.T) {
		_, st := suite.New(t)
		session := NewGame(st.Logger)
		require.True(t, session.Select(6, 1))

		moves := session.CurrentValidMoves()
		delete(moves, entity.Square{Row: 5, Col: 0})

		assert.Len(t, session.CurrentValidMoves(), 2)
	})
}

func TestSession_Capture(t *testing.T) {
	t.Run("Chain capture removes every captured piece", func(t *testing.T) {
		// Given: a blue pawn that can jump two grey pawns, and a spare grey piece
		_, st := suite.New(t)
		board := st.Board(`
			..........
			..........
			..........
			..........
			....b.....
			.....g....
			..........
			.......g..
			..........
			.g........
		`)
		session := NewGameFrom(st.Logger, board, entity.Blue)

		// When: blue selects the pawn and lands on (8,8)
		require.True(t, session.Select(4, 4))
		require.True(t, session.CurrentValidMoves().IsCapture(entity.Square{Row: 8, Col: 8}))
		require.True(t, session.Select(8, 8))

		// Then: both jumped pieces are gone and grey is to move
		assert.Equal(t, 1, board.RemainingCount(entity.Grey))
		assert.Equal(t, entity.NoPiece, board.Occupant(entity.Square{Row: 5, Col: 5}))
		assert.Equal(t, entity.NoPiece, board.Occupant(entity.Square{Row: 7, Col: 7}))
		assert.Equal(t, entity.Grey, session.Turn())
		assert.Equal(t, entity.NoColor, session.Winner())
	})

	t.Run("Capturing the last piece ends the game", func(t *testing.T) {
		// Given: grey can take the only blue piece
		_, st := suite.New(t)
		board := st.Board(`
			..........
			..........
			..........
			..........
			...b......
			....g.....
			..........
			..........
			..........
			..........
		`)
		session := NewGameFrom(st.Logger, board, entity.Grey)

		// When: grey jumps to (3,2)
		require.True(t, session.Select(5, 4))
		require.True(t, session.Select(3, 2))

		// Then: grey wins and further clicks are ignored
		assert.Equal(t, entity.Grey, session.Winner())
		assert.Equal(t, 0, board.RemainingCount(entity.Blue))
		assert.False(t, session.Select(3, 2))
	})

	t.Run("Landing on the far row promotes once", func(t *testing.T) {
		_, st := suite.New(t)
		board := st.Board(`
			..........
			..g.......
			..........
			..........
			..........
			..........
			..........
			..........
			..........
			b.........
		`)
		session := NewGameFrom(st.Logger, board, entity.Grey)

		require.True(t, session.Select(1, 2))
		require.True(t, session.Select(0, 1))

		piece, ok, err := board.PieceAt(entity.Square{Row: 0, Col: 1})
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, piece.King)
		assert.Equal(t, 1, board.KingCount(entity.Grey))
	})
}

func TestSession_Reset(t *testing.T) {
	// Given: a game in progress with a selection
	_, st := suite.New(t)
	session := NewGame(st.Logger)
	require.True(t, session.Select(6, 1))
	require.True(t, session.Select(5, 0))
	require.True(t, session.Select(3, 2))
	id := session.ID()

	// When: resetting
	session.Reset()

	// Then: the game starts over under a new id
	assert.NotEqual(t, id, session.ID())
	assert.Equal(t, entity.Grey, session.Turn())
	assert.Empty(t, session.CurrentValidMoves())
	assert.Equal(t, entity.NoPiece, session.Board().Occupant(entity.Square{Row: 5, Col: 0}))
	assert.NotEqual(t, entity.NoPiece, session.Board().Occupant(entity.Square{Row: 6, Col: 1}))

	_, ok := session.Selected()
	assert.False(t, ok)
}
