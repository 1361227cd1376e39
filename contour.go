package wordface

import "fmt"

// Contour is an ordered walk through face-mesh landmark indices. A closed
// contour joins its last index back to the first.
type Contour struct {
	Name    string
	Indices []int
	Closed  bool
}

// Segments is the number of index pairs the contour walks.
func (c Contour) Segments() int {
	n := len(c.Indices)
	switch {
	case n < 2:
		return 0
	case c.Closed:
		return n
	default:
		return n - 1
	}
}

// Segment returns the endpoints of segment i, 0 <= i < Segments().
func (c Contour) Segment(i int) (from, to int) {
	return c.Indices[i], c.Indices[(i+1)%len(c.Indices)]
}

// Validate reports the first index that does not exist in an n-point mesh.
func (c Contour) Validate(n int) error {
	for _, idx := range c.Indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("contour %s: index %d outside %d-point mesh", c.Name, idx, n)
		}
	}
	return nil
}

// Face-mesh contours, in the order they are drawn.
var (
	FaceOval = Contour{
		Name: "face-oval",
		Indices: []int{
			10, 338, 297, 332, 284, 251, 389, 356, 454, 323, 361, 288,
			397, 365, 379, 378, 400, 377, 152, 148, 176, 149, 150, 136,
			172, 58, 132, 93, 234, 127, 162, 21, 54, 103, 67, 109,
		},
		Closed: true,
	}
	LeftEyebrow = Contour{
		Name:    "left-eyebrow",
		Indices: []int{70, 63, 105, 66, 107, 55, 65, 52, 53, 46},
	}
	RightEyebrow = Contour{
		Name:    "right-eyebrow",
		Indices: []int{336, 296, 334, 293, 300, 276, 283, 282, 295, 285},
	}
	LeftEye = Contour{
		Name:    "left-eye",
		Indices: []int{33, 246, 161, 160, 159, 158, 157, 173, 133, 155, 154, 153, 145, 144, 163, 7},
		Closed:  true,
	}
	RightEye = Contour{
		Name:    "right-eye",
		Indices: []int{263, 466, 388, 387, 386, 385, 384, 398, 362, 382, 381, 380, 374, 373, 390, 249},
		Closed:  true,
	}
	Nose = Contour{
		Name:    "nose",
		Indices: []int{168, 6, 197, 195, 5},
	}
	Mouth = Contour{
		Name: "mouth",
		Indices: []int{
			61, 185, 40, 39, 37, 0, 267, 269, 270, 409,
			291, 375, 321, 405, 314, 17, 84, 181, 91, 146,
		},
		Closed: true,
	}
)

// Contours returns the face contours in draw order.
func Contours() []Contour {
	return []Contour{FaceOval, LeftEyebrow, RightEyebrow, LeftEye, RightEye, Nose, Mouth}
}
