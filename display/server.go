package display

import (
	"image"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 2 * time.Second
	viewerQueue  = 2
)

// Server publishes frames over HTTP. GET /frame.png returns the latest
// frame and /ws streams every frame as a binary PNG message. Viewers that
// fall behind miss frames.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  image.Image
	encoded []byte
	viewers map[*viewer]struct{}
}

type viewer struct {
	id   uuid.UUID
	send chan []byte
}

func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		viewers: make(map[*viewer]struct{}),
	}
}

// Show stores img as the latest frame and pushes it to connected viewers.
func (s *Server) Show(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = img
	s.encoded = nil
	if len(s.viewers) == 0 {
		return nil
	}

	data, err := s.encodeLocked()
	if err != nil {
		return err
	}
	for v := range s.viewers {
		select {
		case v.send <- data:
		default:
		}
	}
	return nil
}

func (s *Server) encodeLocked() ([]byte, error) {
	if s.encoded == nil && s.latest != nil {
		data, err := encodePNG(s.latest)
		if err != nil {
			return nil, err
		}
		s.encoded = data
	}
	return s.encoded, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveIndex)
	mux.HandleFunc("GET /frame.png", s.serveFrame)
	mux.HandleFunc("GET /ws", s.serveWS)
	return mux
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, err := s.encodeLocked()
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	v := &viewer{id: uuid.New(), send: make(chan []byte, viewerQueue)}
	s.mu.Lock()
	s.viewers[v] = struct{}{}
	s.mu.Unlock()
	slog.Info("Viewer connected", "viewer", v.id, "remote", r.RemoteAddr)

	// The read loop only notices the viewer leaving.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(v)
				return
			}
		}
	}()

	defer conn.Close()
	for data := range v.send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			slog.Debug("Viewer write failed", "viewer", v.id, "error", err)
			s.drop(v)
			return
		}
	}
}

func (s *Server) drop(v *viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.viewers[v]; !ok {
		return
	}
	delete(s.viewers, v)
	close(v.send)
	slog.Info("Viewer disconnected", "viewer", v.id)
}

// Viewers is the number of connected websocket viewers.
func (s *Server) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

const indexHTML = `<!doctype html>
<html>
<head><title>wordface</title>
<style>body{margin:0;background:#fff;display:flex;justify-content:center}</style>
</head>
<body>
<img id="frame" width="640" height="480" src="/frame.png">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (ev) => {
  const url = URL.createObjectURL(ev.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
</body>
</html>
`
