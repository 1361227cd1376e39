package landmark

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/abihf/wordface/capture"
)

// Detect runs det on frames until ctx is done or frames is closed, storing
// each result in latest. A failed detection is logged and the previous
// result stays in place. limiter may be nil.
func Detect(ctx context.Context, frames <-chan *capture.Frame, det Detector, latest *Latest, limiter *rate.Limiter) {
	for {
		var frame *capture.Frame
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			frame = f
		}

		if limiter != nil && !limiter.Allow() {
			continue
		}

		faces, err := det.Detect(ctx, frame)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("Detection failed", "error", err)
			continue
		}

		r := NewResult(time.Now(), faces)
		slog.Debug("Detected", "id", r.ID, "faces", len(faces))
		latest.Store(r)
	}
}
