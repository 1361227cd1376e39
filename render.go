// Package wordface traces face-mesh contours with repeating words.
//
// Each contour segment is filled with words spaced a fixed distance apart
// and rotated to the segment direction. The image is mirrored horizontally
// so the result behaves like a mirror in front of the camera.
package wordface

import (
	"math"

	"github.com/abihf/wordface/landmark"
)

const (
	Width   = 640
	Height  = 480
	Spacing = 18.0 // pixels between consecutive words on a segment
)

// Surface receives one word per call, centered at (x, y) and rotated by
// angle radians.
type Surface interface {
	DrawWord(word string, x, y, angle float64)
}

// Renderer places words along contours. The zero value draws nothing; use
// NewRenderer for the fixed look.
type Renderer struct {
	Words   []string
	Spacing float64
	// Width is the canvas width that x coordinates are mirrored against.
	Width float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		Words:   Words,
		Spacing: Spacing,
		Width:   Width,
	}
}

// Mirror flips x horizontally on a canvas of the given width.
func Mirror(x, width float64) float64 {
	return width - x
}

// Steps is the number of words that fit on a segment of length d.
func Steps(d, spacing float64) int {
	if spacing <= 0 || !(d >= spacing) {
		return 0
	}
	return int(math.Floor(d / spacing))
}

// DrawContour draws words along c and returns the cursor advanced by the
// number of words drawn. The word for each placement is picked by cursor,
// so consecutive calls continue the word sequence.
func (r *Renderer) DrawContour(dst Surface, face *landmark.Face, c Contour, cursor int) int {
	if len(r.Words) == 0 {
		return cursor
	}
	for i := 0; i < c.Segments(); i++ {
		from, to := c.Segment(i)
		p1, ok1 := face.At(from)
		p2, ok2 := face.At(to)
		if !ok1 || !ok2 {
			continue
		}
		cursor = r.drawSegment(dst, p1, p2, cursor)
	}
	return cursor
}

func (r *Renderer) drawSegment(dst Surface, p1, p2 landmark.Keypoint, cursor int) int {
	x1, y1 := Mirror(p1.X, r.Width), p1.Y
	x2, y2 := Mirror(p2.X, r.Width), p2.Y
	dx, dy := x2-x1, y2-y1

	steps := Steps(math.Hypot(dx, dy), r.Spacing)
	angle := math.Atan2(dy, dx)
	for j := 0; j < steps; j++ {
		t := float64(j) / float64(steps)
		dst.DrawWord(Word(r.Words, cursor), x1+dx*t, y1+dy*t, angle)
		cursor++
	}
	return cursor
}

// RenderFace draws every contour of face, starting the word sequence at
// the first word. It returns the number of words drawn.
func (r *Renderer) RenderFace(dst Surface, face *landmark.Face) int {
	cursor := 0
	for _, c := range Contours() {
		cursor = r.DrawContour(dst, face, c, cursor)
	}
	return cursor
}
