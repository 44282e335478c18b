package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/draughts/internal/entity"
)

// Board geometry in screen cells. Each square is cellW columns by cellH rows.
const (
	boardX = 2
	boardY = 2
	cellW  = 4
	cellH  = 2

	statusY = boardY + entity.Size*cellH + 1
)

// Menu geometry.
const (
	menuX       = 4
	menuTitleY  = 3
	menuStartY  = 8
	menuQuitY   = 10
	menuHelpY   = 13
	buttonWidth = 9
)

const keyHelp = "R restart  M menu  S snapshot  Q quit"

func (that *Driver) Draw() {
	that.screen.SetStyle(that.styles.base)
	that.screen.Clear()

	if that.view == viewMenu {
		that.drawMenu()
	} else {
		that.drawGame()
	}

	that.screen.Show()
}

func (that *Driver) drawMenu() {
	title := that.styles.base.Bold(true)
	plain := that.styles.base

	that.drawText(menuX, menuTitleY, title, "DRAUGHTS")
	that.drawText(menuX, menuTitleY+2, plain, "International (10x10)")

	for i, label := range []string{"Start", "Quit"} {
		style := plain.Background(that.styles.menu)
		if i == that.button {
			style = style.Reverse(true)
		}

		y := menuStartY
		if i == buttonQuit {
			y = menuQuitY
		}

		that.drawText(menuX, y, style, fmt.Sprintf("[ %-5s ]", label))
	}

	that.drawText(menuX, menuHelpY, plain, "Enter choose  Tab switch  Q quit")
}

func (that *Driver) drawGame() {
	board := that.session.Board()
	moves := that.session.CurrentValidMoves()
	selected := that.selectedSquare()

	that.drawHUD(board)

	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			sq := entity.Square{Row: row, Col: col}

			bg := that.styles.light
			if sq.Playable() {
				bg = that.styles.dark
			}
			if selected != nil && *selected == sq {
				bg = that.styles.selected
			}

			x, y := squareOrigin(sq)
			that.fill(x, y, cellW, cellH, tcell.StyleDefault.Background(bg))

			if piece, ok, _ := board.PieceAt(sq); ok {
				that.drawPiece(x, y, piece)
				continue
			}

			if _, ok := moves[sq]; ok {
				marker := that.styles.simpleMove
				if moves.IsCapture(sq) {
					marker = that.styles.captureMove
				}
				that.fill(x+1, y, cellW-2, cellH, tcell.StyleDefault.Background(marker))
			}
		}
	}

	if winner := that.session.Winner(); winner != entity.NoColor {
		that.drawBanner(winner)
	}

	that.drawText(boardX, statusY, that.styles.base, that.status)
	that.drawText(boardX, statusY+1, that.styles.base, keyHelp)
}

func (that *Driver) drawHUD(board *entity.Board) {
	turn := fmt.Sprintf("Turn: %s", strings.ToUpper(that.session.Turn().String()))
	counts := fmt.Sprintf("Blue %d (%dK)  Grey %d (%dK)",
		board.RemainingCount(entity.Blue), board.KingCount(entity.Blue),
		board.RemainingCount(entity.Grey), board.KingCount(entity.Grey),
	)

	that.drawText(boardX, 0, that.styles.base.Foreground(that.sideColor(that.session.Turn())), turn)
	that.drawText(boardX+entity.Size*cellW-len(counts), 0, that.styles.base, counts)
}

// drawPiece fills the middle of the square with the side's colour; kings carry
// a crown mark on the top row.
func (that *Driver) drawPiece(x, y int, piece entity.Piece) {
	body := tcell.StyleDefault.Background(that.sideColor(piece.Color))
	that.fill(x+1, y, cellW-2, cellH, body)

	if piece.King {
		that.drawText(x+1, y, body.Foreground(that.styles.crown).Bold(true), "KK")
	}
}

func (that *Driver) drawBanner(winner entity.Color) {
	text := fmt.Sprintf(" %s WINS  R new game  M menu ", strings.ToUpper(winner.String()))
	width := entity.Size * cellW
	y := boardY + entity.Size*cellH/2 - 1

	style := that.styles.base.Bold(true)
	that.fill(boardX, y, width, 1, style)
	that.drawText(boardX+(width-len(text))/2, y, style, text)
}

func (that *Driver) sideColor(c entity.Color) tcell.Color {
	if c == entity.Blue {
		return that.styles.blue
	}
	return that.styles.grey
}

func (that *Driver) fill(x, y, w, h int, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			that.screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
}

func (that *Driver) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		that.screen.SetContent(x+i, y, r, nil, style)
	}
}

func squareOrigin(sq entity.Square) (int, int) {
	return boardX + sq.Col*cellW, boardY + sq.Row*cellH
}

// squareAt maps a screen cell to the board square under it.
func squareAt(x, y int) (entity.Square, bool) {
	if x < boardX || y < boardY {
		return entity.Square{}, false
	}

	sq := entity.Square{Row: (y - boardY) / cellH, Col: (x - boardX) / cellW}

	return sq, sq.InBounds()
}

func buttonAt(x, y int) (int, bool) {
	if x < menuX || x >= menuX+buttonWidth {
		return 0, false
	}

	switch y {
	case menuStartY:
		return buttonStart, true
	case menuQuitY:
		return buttonQuit, true
	default:
		return 0, false
	}
}
