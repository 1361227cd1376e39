package detector

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/landmark"
	"github.com/abihf/wordface/protocol"
)

// Socket talks to the detector over a unix socket, one request at a time.
// A broken connection is dropped and redialed on the next call.
type Socket struct {
	opts    landmark.Options
	timeout time.Duration
	dial    func(ctx context.Context) (net.Conn, error)

	mu   sync.Mutex
	conn net.Conn
}

func NewSocket(path string, opts landmark.Options) *Socket {
	return &Socket{
		opts:    opts,
		timeout: defaultTimeout,
		dial: func(ctx context.Context) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", path)
		},
	}
}

func (s *Socket) Detect(ctx context.Context, frame *capture.Frame) ([]landmark.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		conn, err := s.dial(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "Can not connect to detector")
		}
		s.conn = conn
	}

	faces, err := s.roundTrip(ctx, frame)
	if err != nil {
		s.conn.Close()
		s.conn = nil
		return nil, err
	}
	return faces, nil
}

func (s *Socket) roundTrip(ctx context.Context, frame *capture.Frame) ([]landmark.Face, error) {
	if err := s.conn.SetDeadline(deadline(ctx, s.timeout)); err != nil {
		return nil, errors.Wrap(err, "Can not set deadline")
	}

	id := newRequestID()
	if err := protocol.WriteDetectReq(s.conn, id, frame, s.opts); err != nil {
		return nil, errors.Wrap(err, "Can not send frame")
	}

	res, err := protocol.ReadRes(s.conn)
	if err != nil {
		return nil, errors.Wrap(err, "Can not read response")
	}
	if res.ID != id {
		return nil, errors.Errorf("Response %s does not match request %s", res.ID, id)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "Detector error")
	}
	return s.opts.Limit(res.Faces), nil
}

func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
