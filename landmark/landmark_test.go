package landmark

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abihf/wordface/capture"
)

func TestLatestBeforeStore(t *testing.T) {
	var l Latest
	r := l.Load()
	if r == nil {
		t.Fatal("Load returned nil")
	}
	if len(r.Faces) != 0 {
		t.Errorf("Load before Store has %d faces", len(r.Faces))
	}
	if _, ok := r.First(); ok {
		t.Error("First on empty result reported a face")
	}
}

func TestLatestStoreReplaces(t *testing.T) {
	var l Latest
	a := NewResult(time.Now(), []Face{{Keypoints: []Keypoint{{X: 1}}}})
	b := NewResult(time.Now(), nil)

	l.Store(a)
	if l.Load() != a {
		t.Fatal("Load did not return the stored result")
	}
	l.Store(b)
	if l.Load() != b {
		t.Fatal("second Store did not replace the first")
	}
	l.Store(nil)
	if got := l.Load(); got == nil || len(got.Faces) != 0 {
		t.Errorf("Store(nil) should publish an empty result, got %+v", got)
	}
}

func TestFaceAt(t *testing.T) {
	f := Face{Keypoints: []Keypoint{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	if kp, ok := f.At(1); !ok || kp.X != 3 || kp.Y != 4 {
		t.Errorf("At(1) = %+v, %v", kp, ok)
	}
	for _, i := range []int{-1, 2, 468} {
		if _, ok := f.At(i); ok {
			t.Errorf("At(%d) should be out of range", i)
		}
	}
}

func TestOptionsLimit(t *testing.T) {
	faces := make([]Face, 3)
	if got := DefaultOptions().Limit(faces); len(got) != 1 {
		t.Errorf("default Limit kept %d faces", len(got))
	}
	if got := (Options{}).Limit(faces); len(got) != 3 {
		t.Errorf("unbounded Limit kept %d faces", len(got))
	}
	opts := DefaultOptions()
	if opts.FlipHorizontal {
		t.Error("detector must not mirror")
	}
}

type fakeDetector struct {
	calls atomic.Int32
	fail  func(n int32) bool
}

func (d *fakeDetector) Detect(_ context.Context, frame *capture.Frame) ([]Face, error) {
	n := d.calls.Add(1)
	if d.fail != nil && d.fail(n) {
		return nil, errors.New("model unavailable")
	}
	return []Face{{Keypoints: []Keypoint{{X: float64(frame.Width)}}}}, nil
}

func (d *fakeDetector) Close() error { return nil }

func TestDetectStoresResults(t *testing.T) {
	frames := make(chan *capture.Frame, 2)
	frames <- &capture.Frame{Width: 1}
	frames <- &capture.Frame{Width: 2}
	close(frames)

	var l Latest
	det := &fakeDetector{}
	Detect(context.Background(), frames, det, &l, nil)

	if det.calls.Load() != 2 {
		t.Errorf("detector called %d times, want 2", det.calls.Load())
	}
	face, ok := l.Load().First()
	if !ok || face.Keypoints[0].X != 2 {
		t.Errorf("latest result is not from the last frame: %+v", l.Load())
	}
}

func TestDetectKeepsPreviousOnFailure(t *testing.T) {
	frames := make(chan *capture.Frame, 2)
	frames <- &capture.Frame{Width: 7}
	frames <- &capture.Frame{Width: 9}
	close(frames)

	var l Latest
	det := &fakeDetector{fail: func(n int32) bool { return n == 2 }}
	Detect(context.Background(), frames, det, &l, nil)

	face, ok := l.Load().First()
	if !ok || face.Keypoints[0].X != 7 {
		t.Errorf("failed detection replaced the previous result: %+v", l.Load())
	}
}

func TestDetectStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan *capture.Frame)
	done := make(chan struct{})
	go func() {
		Detect(ctx, frames, &fakeDetector{}, &Latest{}, nil)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Detect did not return after cancel")
	}
}

func TestRecordAndReplay(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	results := []*Result{
		NewResult(start, []Face{{Keypoints: []Keypoint{{X: 1, Y: 2, Z: -0.5}}}}),
		NewResult(start.Add(time.Millisecond), nil),
		NewResult(start.Add(2*time.Millisecond), []Face{{Keypoints: []Keypoint{{X: 3, Y: 4}}}}),
	}

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	for _, r := range results {
		if err := rec.Write(r); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if lines := strings.Count(buf.String(), "\n"); lines != len(results) {
		t.Fatalf("recorded %d lines, want %d", lines, len(results))
	}

	got, err := ReadResults(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(got) != len(results) {
		t.Fatalf("read %d results, want %d", len(got), len(results))
	}
	for i := range got {
		if got[i].ID != results[i].ID {
			t.Errorf("result %d id = %s, want %s", i, got[i].ID, results[i].ID)
		}
	}

	var l Latest
	if err := Replay(context.Background(), bytes.NewReader(buf.Bytes()), &l); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if l.Load().ID != results[2].ID {
		t.Errorf("replay ended on %s, want %s", l.Load().ID, results[2].ID)
	}
}

func TestReplayBadRecord(t *testing.T) {
	var l Latest
	err := Replay(context.Background(), strings.NewReader("{not json}\n"), &l)
	if err == nil {
		t.Fatal("Replay accepted a malformed record")
	}
}
