package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/draughts/internal/entity"
	"github.com/rocketscienceinc/draughts/internal/usecase"
	"github.com/rocketscienceinc/draughts/testing/suite"
)

func TestDriver_Run(t *testing.T) {
	color.NoColor = true

	t.Run("Plays a move from text commands", func(t *testing.T) {
		// Given: a new game and a script selecting and moving a grey pawn
		ctx, st := suite.New(t)
		session := usecase.NewGame(st.Logger)
		var out bytes.Buffer
		driver := New(st.Logger, session, strings.NewReader("6 1\n5 0\nq\n"), &out)

		// When: running the script
		err := driver.Run(ctx)

		// Then: the move is applied and the board was printed after each command
		require.NoError(t, err)
		assert.NotEqual(t, entity.NoPiece, session.Board().Occupant(entity.Square{Row: 5, Col: 0}))
		assert.Equal(t, entity.Blue, session.Turn())
		assert.Contains(t, out.String(), "Turn: grey")
		assert.Contains(t, out.String(), " 5  *   *")
		assert.Contains(t, out.String(), "Turn: blue")
	})

	t.Run("Stops at end of input", func(t *testing.T) {
		ctx, st := suite.New(t)
		var out bytes.Buffer
		driver := New(st.Logger, usecase.NewGame(st.Logger), strings.NewReader(""), &out)

		assert.NoError(t, driver.Run(ctx))
		assert.Contains(t, out.String(), "    0 1 2 3 4 5 6 7 8 9")
	})

	t.Run("Reader stops once the driver has quit", func(t *testing.T) {
		// Given: input left over after the driver stopped listening
		ctx, st := suite.New(t)
		var out bytes.Buffer
		driver := New(st.Logger, usecase.NewGame(st.Logger), strings.NewReader("6 1\n5 0\n"), &out)

		done := make(chan struct{})
		close(done)
		lines := make(chan string)
		errs := make(chan error, 1)

		// When: scanning with nobody reading lines
		finished := make(chan struct{})
		go func() {
			driver.scan(ctx, done, lines, errs)
			close(finished)
		}()

		// Then: the reader returns instead of blocking on the send
		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("reader still blocked after the driver quit")
		}

		_, ok := <-lines
		assert.False(t, ok)
	})
}

func TestDriver_Handle(t *testing.T) {
	color.NoColor = true

	t.Run("Rejects malformed commands", func(t *testing.T) {
		_, st := suite.New(t)
		var out bytes.Buffer
		driver := New(st.Logger, usecase.NewGame(st.Logger), strings.NewReader(""), &out)

		for _, line := range []string{"hello", "1", "10 0", "a b"} {
			out.Reset()
			assert.True(t, driver.Handle(line))
			assert.Contains(t, out.String(), usage, "line %q", line)
		}
	})

	t.Run("Reports clicks that do nothing", func(t *testing.T) {
		_, st := suite.New(t)
		var out bytes.Buffer
		driver := New(st.Logger, usecase.NewGame(st.Logger), strings.NewReader(""), &out)

		assert.True(t, driver.Handle("3 2"))
		assert.Contains(t, out.String(), "Nothing to do on (3,2)")
	})

	t.Run("Restart resets the session", func(t *testing.T) {
		_, st := suite.New(t)
		session := usecase.NewGame(st.Logger)
		id := session.ID()
		var out bytes.Buffer
		driver := New(st.Logger, session, strings.NewReader(""), &out)

		assert.True(t, driver.Handle("R"))
		assert.NotEqual(t, id, session.ID())
		assert.False(t, driver.Handle("quit"))
	})

	t.Run("Prints the winner and refuses further moves", func(t *testing.T) {
		// Given: a position without grey pieces
		_, st := suite.New(t)
		board := entity.NewEmptyBoard()
		_, err := board.Place(entity.Blue, entity.Square{Row: 3, Col: 2}, true)
		require.NoError(t, err)
		session := usecase.NewGameFrom(st.Logger, board, entity.Blue)
		var out bytes.Buffer
		driver := New(st.Logger, session, strings.NewReader(""), &out)

		// When: printing and selecting
		driver.print()
		assert.True(t, driver.Handle("3 2"))

		// Then: the banner is shown, the king glyph is upper case and nothing is selected
		assert.Contains(t, out.String(), "BLUE WINS")
		assert.Contains(t, out.String(), " 3  .   B")
		assert.Contains(t, out.String(), "The game is over")
		_, ok := session.Selected()
		assert.False(t, ok)
	})
}
