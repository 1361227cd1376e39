package landmark

// Options are passed through to the detector with every frame.
type Options struct {
	// MaxFaces caps the number of faces returned.
	MaxFaces int `json:"maxFaces"`
	// RefineLandmarks asks for the 478-point refined mesh.
	RefineLandmarks bool `json:"refineLandmarks"`
	// FlipHorizontal asks the detector to mirror its output. Mirroring is
	// done by the renderer, so this stays false.
	FlipHorizontal bool `json:"flipHorizontal"`
}

func DefaultOptions() Options {
	return Options{
		MaxFaces:        1,
		RefineLandmarks: true,
		FlipHorizontal:  false,
	}
}

// Limit truncates faces to MaxFaces. A non-positive MaxFaces keeps all.
func (o Options) Limit(faces []Face) []Face {
	if o.MaxFaces > 0 && len(faces) > o.MaxFaces {
		return faces[:o.MaxFaces]
	}
	return faces
}
