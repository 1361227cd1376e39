// Package detector connects to the face-mesh service that produces
// landmarks for captured frames.
package detector

import (
	"context"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/abihf/wordface/landmark"
)

const defaultTimeout = 5 * time.Second

// Dial returns a detector for addr. Supported schemes are unix:// for a
// local socket and ws:// or wss:// for a websocket endpoint. Connections
// are made lazily on the first Detect.
func Dial(addr string, opts landmark.Options) (landmark.Detector, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad detector address %q", addr)
	}
	switch u.Scheme {
	case "unix":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		if path == "" {
			return nil, errors.Errorf("Missing socket path in %q", addr)
		}
		return NewSocket(path, opts), nil
	case "ws", "wss":
		return NewWebsocket(u.String(), opts), nil
	}
	return nil, errors.Errorf("Unsupported detector scheme %q", u.Scheme)
}

func newRequestID() string {
	return ulid.Make().String()
}

// deadline picks the earlier of the context deadline and now+timeout.
func deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if cd, ok := ctx.Deadline(); ok && cd.Before(d) {
		return cd
	}
	return d
}
