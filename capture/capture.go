package capture

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Frame is one raw image read from the device. Buffer is owned by the
// receiver.
type Frame struct {
	Buffer []byte
	Width  int
	Height int
	Format Format
}

type Processor func(frame *Frame) (bool, error)

type Option struct {
	Device string
	Width  int
	Height int
}

func (o *Option) size() (uint32, uint32) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return uint32(w), uint32(h)
}

// Capture calls processor for every frame until it returns false, it fails,
// or the device stops.
func Capture(opt *Option, processor Processor) error {
	cam := Open(opt)
	defer cam.Close()

	for frame := range cam.Stream() {
		cont, err := processor(frame)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return cam.Err()
}

// Camera is an open capture stream.
type Camera struct {
	buf *camBuffer
}

// Open starts streaming from the device in the background. Errors are
// reported through Err once Stream is closed.
func Open(opt *Option) *Camera {
	buf := newCamBuffer()
	buf.start(opt)
	return &Camera{buf: buf}
}

// Stream returns the frame channel. It is closed when the device stops.
// Frames arriving while the previous one is still unread are dropped.
func (c *Camera) Stream() <-chan *Frame {
	return c.buf.frame
}

func (c *Camera) Err() error {
	<-c.buf.done
	return c.buf.err
}

func (c *Camera) Close() error {
	c.buf.stop()
	<-c.buf.done
	return nil
}
