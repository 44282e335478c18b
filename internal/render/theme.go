package render

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	yaml "gopkg.in/yaml.v3"
)

//go:embed theme.default.yaml
var defaultTheme []byte

// Theme is the on-disk colour scheme. Every value is a "#rrggbb" string.
type Theme struct {
	LightSquare string `yaml:"light-square"`
	DarkSquare  string `yaml:"dark-square"`
	BluePiece   string `yaml:"blue-piece"`
	GreyPiece   string `yaml:"grey-piece"`
	Rim         string `yaml:"rim"`
	Crown       string `yaml:"crown"`
	Selected    string `yaml:"selected"`
	SimpleMove  string `yaml:"simple-move"`
	CaptureMove string `yaml:"capture-move"`
	Panel       string `yaml:"panel"`
	Text        string `yaml:"text"`
	Menu        string `yaml:"menu"`
}

// Palette is a parsed Theme.
type Palette struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	BluePiece   color.RGBA
	GreyPiece   color.RGBA
	Rim         color.RGBA
	Crown       color.RGBA
	Selected    color.RGBA
	SimpleMove  color.RGBA
	CaptureMove color.RGBA
	Panel       color.RGBA
	Text        color.RGBA
	Menu        color.RGBA
}

// DefaultPalette returns the built-in colours.
func DefaultPalette() Palette {
	palette, err := LoadPalette("")
	if err != nil {
		panic(fmt.Sprintf("embedded theme is invalid: %v", err))
	}

	return palette
}

// LoadPalette reads the built-in theme and overlays the file at path, if any.
// Keys missing from the file keep their built-in value.
func LoadPalette(path string) (Palette, error) {
	var theme Theme
	if err := yaml.Unmarshal(defaultTheme, &theme); err != nil {
		return Palette{}, fmt.Errorf("parse embedded theme: %w", err)
	}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Palette{}, fmt.Errorf("read theme %s: %w", path, err)
		}

		if err = yaml.Unmarshal(raw, &theme); err != nil {
			return Palette{}, fmt.Errorf("parse theme %s: %w", path, err)
		}
	}

	return theme.Palette()
}

func (that Theme) Palette() (Palette, error) {
	var (
		palette Palette
		err     error
	)

	fields := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"light-square", that.LightSquare, &palette.LightSquare},
		{"dark-square", that.DarkSquare, &palette.DarkSquare},
		{"blue-piece", that.BluePiece, &palette.BluePiece},
		{"grey-piece", that.GreyPiece, &palette.GreyPiece},
		{"rim", that.Rim, &palette.Rim},
		{"crown", that.Crown, &palette.Crown},
		{"selected", that.Selected, &palette.Selected},
		{"simple-move", that.SimpleMove, &palette.SimpleMove},
		{"capture-move", that.CaptureMove, &palette.CaptureMove},
		{"panel", that.Panel, &palette.Panel},
		{"text", that.Text, &palette.Text},
		{"menu", that.Menu, &palette.Menu},
	}

	for _, field := range fields {
		if *field.dst, err = parseHex(field.hex); err != nil {
			return Palette{}, fmt.Errorf("theme key %s: %w", field.name, err)
		}
	}

	return palette, nil
}

func parseHex(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.RGBA{}, err
	}

	r, g, b := c.RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Tint blends base towards c by t in [0,1].
func Tint(base, c color.RGBA, t float64) color.RGBA {
	from, _ := colorful.MakeColor(base)
	to, _ := colorful.MakeColor(c)

	r, g, b := from.BlendRgb(to, t).Clamped().RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 255}
}
