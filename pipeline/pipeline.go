// Package pipeline runs capture, detection and rendering together.
package pipeline

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/abihf/wordface"
	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/config"
	"github.com/abihf/wordface/detector"
	"github.com/abihf/wordface/display"
	"github.com/abihf/wordface/landmark"
	"github.com/abihf/wordface/utils/thread"
)

// Canvas is what the render loop draws on.
type Canvas interface {
	wordface.Target
	Image() image.Image
}

// Run captures from the configured device, sends frames to the detector
// and renders the latest faces into sink until ctx is done or capture
// stops.
func Run(ctx context.Context, conf *config.Config, sink display.Sink) error {
	det, err := detector.Dial(conf.Detector, landmark.DefaultOptions())
	if err != nil {
		return err
	}
	defer det.Close()

	canvas, err := wordface.NewCanvas()
	if err != nil {
		return errors.Wrap(err, "Can not create canvas")
	}
	defer canvas.Close()

	cam := capture.Open(&capture.Option{
		Device: conf.Device,
		Width:  wordface.Width,
		Height: wordface.Height,
	})
	defer cam.Close()

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var latest landmark.Latest
	limiter := rate.NewLimiter(rate.Limit(conf.DetectRate), 1)
	go func() {
		landmark.Detect(ctx, cam.Stream(), det, &latest, limiter)
		cancel()
	}()

	loop := &Loop{
		FPS:      conf.FPS,
		CPU:      conf.RenderCPU,
		Latest:   &latest,
		Renderer: wordface.NewRenderer(),
		Canvas:   canvas,
		Sink:     sink,
	}
	slog.Info("Rendering", "device", conf.Device, "detector", conf.Detector, "fps", conf.FPS)
	loop.Run(ctx)

	if parent.Err() != nil {
		return nil
	}
	// Detection only returns on its own when the frame stream closes.
	if err := cam.Err(); err != nil {
		return errors.Wrap(err, "Capture stopped")
	}
	return errors.New("Capture stopped")
}

// Loop redraws the latest detection result at a fixed rate.
type Loop struct {
	FPS int
	// CPU pins the loop to one core; negative leaves it unpinned.
	CPU      int
	Latest   *landmark.Latest
	Renderer *wordface.Renderer
	Canvas   Canvas
	Sink     display.Sink
}

// Run draws frames until ctx is done. Each frame reads the latest result
// once and draws it to completion before the next tick.
func (l *Loop) Run(ctx context.Context) {
	if l.CPU >= 0 {
		if err := thread.Pin(l.CPU); err != nil {
			slog.Warn("Can not pin render loop", "cpu", l.CPU, "error", err)
		}
		defer thread.Unpin()
	}

	ticker := time.NewTicker(time.Second / time.Duration(l.FPS))
	defer ticker.Stop()

	var shown *landmark.Result
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return
		}

		res := l.Latest.Load()
		n := wordface.DrawFrame(l.Canvas, l.Renderer, res)
		if res != shown {
			slog.Debug("Drawing result", "id", res.ID, "faces", len(res.Faces), "words", n)
			shown = res
		}
		if err := l.Sink.Show(l.Canvas.Image()); err != nil {
			slog.Warn("Can not show frame", "error", err)
		}
	}
}
