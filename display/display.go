// Package display delivers rendered frames to viewers.
package display

import (
	"bytes"
	"image"
	"image/png"
)

// Sink receives every rendered frame. Show must not keep img past the
// call unless it copies it.
type Sink interface {
	Show(img image.Image) error
}

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Multi shows each frame on every sink, stopping at the first error.
type Multi []Sink

func (m Multi) Show(img image.Image) error {
	for _, s := range m {
		if err := s.Show(img); err != nil {
			return err
		}
	}
	return nil
}
