// Package landmark holds face-mesh results and the plumbing that moves them
// from an external detector to the render loop.
package landmark

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Mesh sizes of the face-mesh landmark scheme.
const (
	NumLandmarks        = 468
	NumRefinedLandmarks = 478 // adds the two irises
)

// Keypoint is one landmark in frame pixel coordinates. Z is relative depth
// and is zero for 2D models.
type Keypoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z,omitempty"`
	Name string  `json:"name,omitempty"`
}

// Face is the ordered keypoint list of one detected face, indexed by the
// mesh scheme.
type Face struct {
	Keypoints []Keypoint `json:"keypoints"`
}

// At returns the keypoint at index i, or false if the face has no such
// landmark.
func (f *Face) At(i int) (Keypoint, bool) {
	if i < 0 || i >= len(f.Keypoints) {
		return Keypoint{}, false
	}
	return f.Keypoints[i], true
}

// Result is one detection outcome. It is never modified after being
// published; a new detection produces a new Result.
type Result struct {
	ID    ulid.ULID `json:"id"`
	At    time.Time `json:"at"`
	Faces []Face    `json:"faces"`
}

// NewResult stamps faces with a fresh sequence ID.
func NewResult(at time.Time, faces []Face) *Result {
	return &Result{
		ID:    ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()),
		At:    at,
		Faces: faces,
	}
}

// First returns the first detected face. Only that face is rendered.
func (r *Result) First() (*Face, bool) {
	if r == nil || len(r.Faces) == 0 {
		return nil, false
	}
	return &r.Faces[0], true
}
