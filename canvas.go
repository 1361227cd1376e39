package wordface

import (
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
)

const FontSize = 14.0

// serifFonts are tried in order; the embedded Go Bold face is used when
// none is installed.
var serifFonts = []string{
	"/usr/share/fonts/truetype/msttcorefonts/Georgia_Bold.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/georgiab.ttf",
	"/Library/Fonts/Georgia Bold.ttf",
	"/System/Library/Fonts/Supplemental/Georgia Bold.ttf",
	"C:\\Windows\\Fonts\\georgiab.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSerif-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSerif-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSerif-Bold.ttf",
	"/usr/share/fonts/liberation/LiberationSerif-Bold.ttf",
}

func loadFont() (*text.FontSource, error) {
	for _, path := range serifFonts {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			slog.Warn("Can not load font", "path", path, "error", err)
			continue
		}
		return src, nil
	}
	src, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "Can not load embedded font")
	}
	return src, nil
}

// Canvas is a Surface backed by a gg drawing context: white background,
// black bold text centered on each placement.
type Canvas struct {
	dc   *gg.Context
	font *text.FontSource
}

func NewCanvas() (*Canvas, error) {
	font, err := loadFont()
	if err != nil {
		return nil, err
	}
	slog.Debug("Canvas font", "name", font.Name())

	dc := gg.NewContext(Width, Height)
	dc.SetFont(font.Face(FontSize))
	c := &Canvas{dc: dc, font: font}
	c.Clear()
	return c, nil
}

// Clear paints the background and resets the text color.
func (c *Canvas) Clear() {
	c.dc.ClearWithColor(gg.White)
	c.dc.SetRGB(0, 0, 0)
}

func (c *Canvas) DrawWord(word string, x, y, angle float64) {
	c.dc.Push()
	c.dc.Translate(x, y)
	c.dc.Rotate(angle)
	c.dc.DrawStringAnchored(word, 0, 0, 0.5, 0.5)
	c.dc.Pop()
}

// Image returns a copy of the canvas pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

func (c *Canvas) Close() error {
	err := c.dc.Close()
	if ferr := c.font.Close(); err == nil {
		err = ferr
	}
	return err
}
