package capture

import (
	"fmt"

	"github.com/blackjack/webcam"
)

// Format is a V4L2 fourcc pixel format.
type Format webcam.PixelFormat

const (
	FormatYUYV  Format = 0x56595559 // YUYV
	FormatMJPEG Format = 0x47504a4d // MJPG
)

// preferred lists formats in the order they are requested from the device.
var preferred = []Format{FormatYUYV, FormatMJPEG}

func (f Format) String() string {
	switch f {
	case FormatYUYV:
		return "yuyv"
	case FormatMJPEG:
		return "mjpeg"
	}
	return fmt.Sprintf("fourcc(%08x)", uint32(f))
}

// ParseFormat is the inverse of String for the known formats.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yuyv":
		return FormatYUYV, nil
	case "mjpeg":
		return FormatMJPEG, nil
	}
	return 0, fmt.Errorf("unknown pixel format %q", s)
}

func pickFormat(supported map[webcam.PixelFormat]string) (Format, bool) {
	for _, f := range preferred {
		if _, ok := supported[webcam.PixelFormat(f)]; ok {
			return f, true
		}
	}
	return 0, false
}

// hasSignal drops the blank frames some cameras emit while warming up.
func hasSignal(img []byte) bool {
	if len(img) == 0 {
		return false
	}
	first := img[0]
	for i := 1; i < len(img); i++ {
		if img[i] != first {
			return true
		}
	}
	return false
}
