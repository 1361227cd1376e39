package wordface

import "github.com/abihf/wordface/landmark"

// Target is a Surface that can be wiped between frames.
type Target interface {
	Surface
	Clear()
}

// DrawFrame clears dst and traces the first face of res, if any. It
// returns the number of words drawn.
func DrawFrame(dst Target, r *Renderer, res *landmark.Result) int {
	dst.Clear()
	face, ok := res.First()
	if !ok {
		return 0
	}
	return r.RenderFace(dst, face)
}
