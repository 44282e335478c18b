package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rocketscienceinc/draughts/internal/draughts"
	"github.com/rocketscienceinc/draughts/internal/entity"
)

const (
	hudHeight      = 40
	bannerHeight   = 48
	markerRadius   = 0.18
	selectionBlend = 0.6
)

// Options carries the session state drawn on top of the position.
type Options struct {
	Selected *entity.Square
	Moves    draughts.Moves
	Turn     entity.Color
	Winner   entity.Color
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, board *entity.Board, opts Options) ([]byte, error)
}

type Renderer struct {
	squareSize int
	palette    Palette
	pieces     *PieceSet
}

func NewRenderer(squareSize int, palette Palette, pieces *PieceSet) *Renderer {
	return &Renderer{
		squareSize: squareSize,
		palette:    palette,
		pieces:     pieces,
	}
}

func (that *Renderer) RenderPNG(ctx context.Context, board *entity.Board, opts Options) ([]byte, error) {
	img, err := that.Render(ctx, board, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// Render draws the HUD strip followed by the board.
func (that *Renderer) Render(ctx context.Context, board *entity.Board, opts Options) (*image.RGBA, error) {
	if board == nil {
		return nil, fmt.Errorf("board is nil")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	boardSize := that.squareSize * entity.Size
	img := image.NewRGBA(image.Rect(0, 0, boardSize, boardSize+hudHeight))
	origin := image.Point{X: 0, Y: hudHeight}

	that.drawHUD(img, board, opts)
	that.drawSquares(img, origin, opts.Selected)
	that.drawPieces(img, origin, board)
	that.drawMarkers(img, origin, opts.Moves)

	if opts.Winner != entity.NoColor {
		that.drawBanner(img, origin, opts.Winner)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return img, nil
}

// SquareRect is the pixel rectangle of a board square.
func (that *Renderer) SquareRect(sq entity.Square) image.Rectangle {
	return squareRect(sq, that.squareSize, image.Point{X: 0, Y: hudHeight})
}

func (that *Renderer) drawHUD(img *image.RGBA, board *entity.Board, opts Options) {
	rect := image.Rect(0, 0, img.Bounds().Dx(), hudHeight)
	imagedraw.Draw(img, rect, image.NewUniform(that.palette.Panel), image.Point{}, imagedraw.Src)

	drawer := newDrawer(img, that.palette.Text)
	baseline := hudHeight/2 + basicfont.Face7x13.Metrics().Ascent.Ceil()/2

	status := "Turn: " + strings.ToUpper(opts.Turn.String())
	if opts.Winner != entity.NoColor {
		status = "Game over"
	}
	drawer.Dot = fixed.P(12, baseline)
	drawer.DrawString(status)

	counts := fmt.Sprintf("Blue %d (%dK)  Grey %d (%dK)",
		board.RemainingCount(entity.Blue), board.KingCount(entity.Blue),
		board.RemainingCount(entity.Grey), board.KingCount(entity.Grey),
	)
	width := drawer.MeasureString(counts).Round()
	drawer.Dot = fixed.P(rect.Max.X-width-12, baseline)
	drawer.DrawString(counts)
}

func (that *Renderer) drawSquares(img *image.RGBA, origin image.Point, selected *entity.Square) {
	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			sq := entity.Square{Row: row, Col: col}

			clr := that.palette.LightSquare
			if sq.Playable() {
				clr = that.palette.DarkSquare
			}

			if selected != nil && *selected == sq {
				clr = Tint(clr, that.palette.Selected, selectionBlend)
			}

			rect := squareRect(sq, that.squareSize, origin)
			imagedraw.Draw(img, rect, image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func (that *Renderer) drawPieces(img *image.RGBA, origin image.Point, board *entity.Board) {
	for _, piece := range board.Pieces() {
		rect := squareRect(piece.Square, that.squareSize, origin)
		sprite := that.pieces.Image(piece.Color, piece.King, that.squareSize)
		imagedraw.Draw(img, rect, sprite, image.Point{}, imagedraw.Over)
	}
}

// drawMarkers puts a dot on every destination, coloured by move kind.
func (that *Renderer) drawMarkers(img *image.RGBA, origin image.Point, moves draughts.Moves) {
	if len(moves) == 0 {
		return
	}

	bounds := img.Bounds()
	scanner := rasterx.NewScannerGV(bounds.Dx(), bounds.Dy(), img, bounds)
	filler := rasterx.NewFiller(bounds.Dx(), bounds.Dy(), scanner)
	radius := float64(that.squareSize) * markerRadius

	for _, dest := range moves.Destinations() {
		clr := that.palette.SimpleMove
		if moves.IsCapture(dest) {
			clr = that.palette.CaptureMove
		}

		center := squareRect(dest, that.squareSize, origin).Min
		half := float64(that.squareSize) / 2

		fillCircle(filler, float64(center.X)+half, float64(center.Y)+half, radius, clr)
	}
}

func (that *Renderer) drawBanner(img *image.RGBA, origin image.Point, winner entity.Color) {
	boardSize := that.squareSize * entity.Size
	top := origin.Y + (boardSize-bannerHeight)/2
	rect := image.Rect(0, top, boardSize, top+bannerHeight)

	shade := color.NRGBA{R: that.palette.Panel.R, G: that.palette.Panel.G, B: that.palette.Panel.B, A: 200}
	imagedraw.Draw(img, rect, image.NewUniform(shade), image.Point{}, imagedraw.Over)

	drawer := newDrawer(img, that.palette.Text)
	baseline := top + bannerHeight/2 + basicfont.Face7x13.Metrics().Ascent.Ceil()/2
	drawCenteredText(drawer, strings.ToUpper(winner.String())+" WINS", boardSize/2, baseline)
}

func newDrawer(img *image.RGBA, clr color.Color) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
	}
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	if text == "" {
		return
	}

	width := drawer.MeasureString(text).Round()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}

func squareRect(sq entity.Square, squareSize int, origin image.Point) image.Rectangle {
	x := origin.X + sq.Col*squareSize
	y := origin.Y + sq.Row*squareSize

	return image.Rect(x, y, x+squareSize, y+squareSize)
}
