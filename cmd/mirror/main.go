// Command mirror shows the word mask in a desktop window.
package main

import (
	"context"
	"image"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/abihf/wordface"
	"github.com/abihf/wordface/config"
	"github.com/abihf/wordface/pipeline"
	"github.com/abihf/wordface/utils/logging"
)

var conf = config.Load()

// window is a display.Sink that swaps the image shown by a fyne canvas.
type window struct {
	img *canvas.Image
}

func (w *window) Show(img image.Image) error {
	fyne.Do(func() {
		w.img.Image = img
		w.img.Refresh()
	})
	return nil
}

func main() {
	logging.Setup(conf.LogFile, logging.Level())

	a := app.New()
	win := a.NewWindow("wordface")

	blank := image.NewRGBA(image.Rect(0, 0, wordface.Width, wordface.Height))
	img := canvas.NewImageFromImage(blank)
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScaleFastest
	win.SetContent(img)
	win.Resize(fyne.NewSize(wordface.Width, wordface.Height))
	win.SetFixedSize(true)

	ctx, cancel := context.WithCancel(context.Background())
	win.SetOnClosed(cancel)

	go func() {
		err := pipeline.Run(ctx, conf, &window{img: img})
		if err != nil {
			slog.Error("Pipeline stopped", "error", err)
			os.Exit(1)
		}
	}()

	win.ShowAndRun()
	cancel()
}
