package capture

import (
	"log/slog"
	"sync/atomic"

	"github.com/blackjack/webcam"
	"github.com/pkg/errors"
)

const waitTimeout = 1 // seconds

type camBuffer struct {
	frame chan *Frame
	done  chan struct{}
	err   error

	stopped atomic.Bool
}

func newCamBuffer() *camBuffer {
	return &camBuffer{
		frame: make(chan *Frame, 1),
		done:  make(chan struct{}),
	}
}

func (c *camBuffer) start(opt *Option) {
	go func() {
		defer close(c.done)
		defer close(c.frame)
		if err := c._start(opt); err != nil {
			c.err = err
		}
	}()
}

func (c *camBuffer) _start(opt *Option) error {
	cam, err := webcam.Open(opt.Device)
	if err != nil {
		return errors.Wrap(err, "Can not open device")
	}
	defer cam.Close()

	format, ok := pickFormat(cam.GetSupportedFormats())
	if !ok {
		return errors.Errorf("Device %s supports neither yuyv nor mjpeg", opt.Device)
	}
	reqW, reqH := opt.size()
	got, w, h, err := cam.SetImageFormat(webcam.PixelFormat(format), reqW, reqH)
	if err != nil {
		return errors.Wrap(err, "Can not set image format")
	}
	if w != reqW || h != reqH {
		slog.Warn("Device picked a different frame size", "device", opt.Device, "width", w, "height", h)
	}

	err = cam.StartStreaming()
	if err != nil {
		return errors.Wrap(err, "Can not start streaming")
	}

	for {
		if c.isStopped() {
			break
		}

		err = cam.WaitForFrame(waitTimeout)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			slog.Debug("Frame wait timed out", "device", opt.Device)
			continue
		default:
			return errors.Wrap(err, "Frame wait failed")
		}

		if c.isStopped() {
			break
		}

		buf, err := cam.ReadFrame()
		if err != nil {
			return errors.Wrap(err, "Read frame failed")
		}

		if len(c.frame) > 0 {
			continue
		}

		if !hasSignal(buf) {
			continue
		}

		frame := &Frame{
			Buffer: append([]byte(nil), buf...),
			Width:  int(w),
			Height: int(h),
			Format: Format(got),
		}
		select {
		case c.frame <- frame:
		default:
		}
	}

	return nil
}

func (c *camBuffer) isStopped() bool {
	return c.stopped.Load()
}

func (c *camBuffer) stop() {
	c.stopped.Store(true)
}
