package terminal

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/draughts/internal/draughts"
	"github.com/rocketscienceinc/draughts/internal/entity"
	"github.com/rocketscienceinc/draughts/internal/render"
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

type view int

const (
	viewMenu view = iota
	viewBoard
)

const (
	buttonStart = iota
	buttonQuit
)

// Driver runs the game on a terminal screen: a start menu, then the board
// with mouse selection and keyboard shortcuts.
type Driver struct {
	logger       *slog.Logger
	screen       tcell.Screen
	session      gameSession
	renderer     render.BoardRenderer
	snapshotPath string
	styles       styles

	view      view
	button    int
	mouseDown bool
	status    string
}

func New(
	logger *slog.Logger,
	screen tcell.Screen,
	session gameSession,
	palette render.Palette,
	renderer render.BoardRenderer,
	snapshotPath string,
) *Driver {
	return &Driver{
		logger:       logger,
		screen:       screen,
		session:      session,
		renderer:     renderer,
		snapshotPath: snapshotPath,
		styles:       newStyles(palette),
	}
}

// Run owns the screen until the user quits or ctx is cancelled.
func (that *Driver) Run(ctx context.Context) error {
	if err := that.screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer that.screen.Fini()

	that.screen.EnableMouse()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = that.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-done:
		}
	}()

	that.Draw()

	for {
		ev := that.screen.PollEvent()
		if ev == nil {
			return nil
		}

		if !that.HandleEvent(ctx, ev) {
			that.logger.Info("terminal driver stopped", "session_id", that.session.ID())
			return nil
		}

		that.Draw()
	}
}

// HandleEvent applies one screen event and reports whether the driver should keep running.
func (that *Driver) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return false
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		return that.handleKey(ctx, ev)
	case *tcell.EventMouse:
		return that.handleMouse(ev)
	}

	return true
}

func (that *Driver) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if that.view == viewMenu {
			return that.press(that.button)
		}
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyTab, tcell.KeyBacktab:
		if that.view == viewMenu {
			that.button = (that.button + 1) % 2
		}
	case tcell.KeyRune:
		return that.handleRune(ctx, ev.Rune())
	}

	return true
}

func (that *Driver) handleRune(ctx context.Context, r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		if that.view == viewBoard {
			that.session.Reset()
			that.status = "New game"
		}
	case 'm', 'M':
		that.view = viewMenu
		that.button = buttonStart
	case 's', 'S':
		if that.view == viewBoard {
			that.saveSnapshot(ctx)
		}
	}

	return true
}

func (that *Driver) press(button int) bool {
	if button == buttonQuit {
		return false
	}

	that.view = viewBoard
	that.status = ""

	return true
}

// handleMouse acts on the press of the primary button only.
func (that *Driver) handleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		that.mouseDown = false
		return true
	}

	if that.mouseDown {
		return true
	}
	that.mouseDown = true

	x, y := ev.Position()

	if that.view == viewMenu {
		button, ok := buttonAt(x, y)
		if !ok {
			return true
		}

		that.button = button
		return that.press(button)
	}

	if that.session.Winner() != entity.NoColor {
		return true
	}

	if sq, ok := squareAt(x, y); ok {
		that.session.Select(sq.Row, sq.Col)
	}

	return true
}

func (that *Driver) saveSnapshot(ctx context.Context) {
	selected := that.selectedSquare()

	data, err := that.renderer.RenderPNG(ctx, that.session.Board(), render.Options{
		Selected: selected,
		Moves:    that.session.CurrentValidMoves(),
		Turn:     that.session.Turn(),
		Winner:   that.session.Winner(),
	})
	if err == nil {
		err = os.WriteFile(that.snapshotPath, data, 0o644)
	}

	if err != nil {
		that.logger.Error("failed to save snapshot", "path", that.snapshotPath, "error", err)
		that.status = "Snapshot failed"
		return
	}

	that.logger.Info("snapshot saved", "path", that.snapshotPath, "session_id", that.session.ID())
	that.status = "Saved " + that.snapshotPath
}

func (that *Driver) selectedSquare() *entity.Square {
	piece, ok := that.session.Selected()
	if !ok {
		return nil
	}

	return &piece.Square
}

type styles struct {
	base        tcell.Style
	light       tcell.Color
	dark        tcell.Color
	selected    tcell.Color
	simpleMove  tcell.Color
	captureMove tcell.Color
	blue        tcell.Color
	grey        tcell.Color
	crown       tcell.Color
	text        tcell.Color
	panel       tcell.Color
	menu        tcell.Color
}

func newStyles(palette render.Palette) styles {
	return styles{
		base:        tcell.StyleDefault.Foreground(toTcell(palette.Text)).Background(toTcell(palette.Panel)),
		light:       toTcell(palette.LightSquare),
		dark:        toTcell(palette.DarkSquare),
		selected:    toTcell(palette.Selected),
		simpleMove:  toTcell(palette.SimpleMove),
		captureMove: toTcell(palette.CaptureMove),
		blue:        toTcell(palette.BluePiece),
		grey:        toTcell(palette.GreyPiece),
		crown:       toTcell(palette.Crown),
		text:        toTcell(palette.Text),
		panel:       toTcell(palette.Panel),
		menu:        toTcell(palette.Menu),
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
