package detector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/landmark"
	"github.com/abihf/wordface/protocol"
)

// Websocket sends each frame as one text message holding a protocol.Req
// and expects one protocol.Res back.
type Websocket struct {
	url          string
	opts         landmark.Options
	timeout      time.Duration
	pingInterval time.Duration
	writeTimeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebsocket(url string, opts landmark.Options) *Websocket {
	return &Websocket{
		url:          url,
		opts:         opts,
		timeout:      defaultTimeout,
		pingInterval: 30 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

func (w *Websocket) connect(ctx context.Context) (*websocket.Conn, error) {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Can not connect to %s", w.url)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(w.writeTimeout))
		if err != nil {
			slog.Debug("Can not send pong", "error", err)
		}
		return nil
	})

	go w.keepAlive(conn)
	slog.Info("Connected to detector", "url", w.url)
	return conn, nil
}

// keepAlive pings conn until it fails or is replaced.
func (w *Websocket) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(w.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		w.mu.Lock()
		if w.conn != conn {
			w.mu.Unlock()
			return
		}
		err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(w.writeTimeout))
		if err != nil {
			slog.Warn("Detector ping failed", "url", w.url, "error", err)
			conn.Close()
			w.conn = nil
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()
	}
}

func (w *Websocket) Detect(ctx context.Context, frame *capture.Frame) ([]landmark.Face, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conn == nil {
		conn, err := w.connect(ctx)
		if err != nil {
			return nil, err
		}
		w.conn = conn
	}

	faces, err := w.roundTrip(ctx, frame)
	if err != nil {
		w.conn.Close()
		w.conn = nil
		return nil, err
	}
	return faces, nil
}

func (w *Websocket) roundTrip(ctx context.Context, frame *capture.Frame) ([]landmark.Face, error) {
	dl := deadline(ctx, w.timeout)
	w.conn.SetWriteDeadline(dl)

	id := newRequestID()
	mw, err := w.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return nil, errors.Wrap(err, "Can not send frame")
	}
	if err := protocol.WriteDetectReq(mw, id, frame, w.opts); err != nil {
		return nil, errors.Wrap(err, "Can not send frame")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "Can not send frame")
	}

	w.conn.SetReadDeadline(dl)
	_, mr, err := w.conn.NextReader()
	if err != nil {
		return nil, errors.Wrap(err, "Can not read response")
	}
	res, err := protocol.ReadRes(mr)
	if err != nil {
		return nil, errors.Wrap(err, "Can not decode response")
	}
	if res.ID != id {
		return nil, errors.Errorf("Response %s does not match request %s", res.ID, id)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "Detector error")
	}
	return w.opts.Limit(res.Faces), nil
}

func (w *Websocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(w.writeTimeout))
	err := w.conn.Close()
	w.conn = nil
	return err
}
