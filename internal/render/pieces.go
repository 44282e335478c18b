package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/rocketscienceinc/draughts/internal/entity"
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

type pieceKey struct {
	color entity.Color
	king  bool
	size  int
}

// PieceSet rasterises piece images and caches them per size. When an SVG
// cannot be loaded it draws a plain disc instead, so a board can always be
// rendered.
type PieceSet struct {
	logger  *slog.Logger
	files   fs.FS
	palette Palette

	mu    sync.RWMutex
	cache map[pieceKey]image.Image
}

// NewPieceSet uses the SVGs in assetDir, or the built-in ones when assetDir is empty.
func NewPieceSet(logger *slog.Logger, assetDir string, palette Palette) *PieceSet {
	var files fs.FS
	if assetDir != "" {
		files = os.DirFS(assetDir)
	} else {
		files, _ = fs.Sub(pieceFiles, "assets/pieces")
	}

	return &PieceSet{
		logger:  logger,
		files:   files,
		palette: palette,
		cache:   make(map[pieceKey]image.Image),
	}
}

// Image returns a size×size image of the piece on a transparent background.
func (that *PieceSet) Image(side entity.Color, king bool, size int) image.Image {
	key := pieceKey{color: side, king: king, size: size}

	that.mu.RLock()
	if img, ok := that.cache[key]; ok {
		that.mu.RUnlock()
		return img
	}
	that.mu.RUnlock()

	img, err := that.renderSVG(key)
	if err != nil {
		that.logger.Warn("piece asset unavailable, drawing placeholder",
			"color", side.String(),
			"king", king,
			"error", err.Error(),
		)
		img = that.placeholder(key)
	}

	that.mu.Lock()
	that.cache[key] = img
	that.mu.Unlock()

	return img
}

func (that *PieceSet) renderSVG(key pieceKey) (image.Image, error) {
	name := pieceAssetName(key.color, key.king)

	data, err := fs.ReadFile(that.files, name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg %s: %w", name, err)
	}

	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(key.size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(key.size)
	}

	icon.SetTarget(0, 0, float64(key.size), float64(key.size))

	img := transparent(key.size)
	scanner := rasterx.NewScannerGV(key.size, key.size, img, img.Bounds())
	raster := rasterx.NewDasher(key.size, key.size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// placeholder draws a rimmed disc in the side's colour, with a crown mark for kings.
func (that *PieceSet) placeholder(key pieceKey) image.Image {
	img := transparent(key.size)
	scanner := rasterx.NewScannerGV(key.size, key.size, img, img.Bounds())
	filler := rasterx.NewFiller(key.size, key.size, scanner)

	center := float64(key.size) / 2
	radius := float64(key.size) * 0.42

	fillCircle(filler, center, center, radius, that.palette.Rim)
	fillCircle(filler, center, center, radius*0.85, that.pieceColor(key.color))

	if key.king {
		fillCircle(filler, center, center, radius*0.35, that.palette.Crown)
	}

	return img
}

func (that *PieceSet) pieceColor(c entity.Color) color.RGBA {
	if c == entity.Blue {
		return that.palette.BluePiece
	}
	return that.palette.GreyPiece
}

func fillCircle(filler *rasterx.Filler, cx, cy, radius float64, clr color.RGBA) {
	filler.Clear()
	rasterx.AddCircle(cx, cy, radius, filler)
	filler.SetColor(clr)
	filler.Draw()
}

func transparent(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	return img
}

func pieceAssetName(c entity.Color, king bool) string {
	kind := "pawn"
	if king {
		kind = "king"
	}

	return fmt.Sprintf("%s_%s.svg", c, kind)
}
