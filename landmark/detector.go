package landmark

import (
	"context"

	"github.com/abihf/wordface/capture"
)

// Detector turns a frame into face results. Implementations talk to the
// face-mesh model, which lives outside this process.
type Detector interface {
	// Detect returns the faces found in frame, or an empty slice when there
	// are none.
	Detect(ctx context.Context, frame *capture.Frame) ([]Face, error)

	// Close releases the connection to the model.
	Close() error
}
