package landmark

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recorder appends results to w, one JSON document per line.
type Recorder struct {
	w   *bufio.Writer
	enc *jsoniter.Encoder
}

func NewRecorder(w io.Writer) *Recorder {
	bw := bufio.NewWriter(w)
	return &Recorder{w: bw, enc: json.NewEncoder(bw)}
}

func (r *Recorder) Write(res *Result) error {
	if err := r.enc.Encode(res); err != nil {
		return errors.Wrap(err, "Can not encode result")
	}
	return r.w.Flush()
}

const maxRecordSize = 1 << 20

// records yields each non-empty line of r decoded as a Result.
func records(r io.Reader, fn func(n int, res *Result) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxRecordSize)
	n := 0
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		n++
		res := &Result{}
		if err := json.Unmarshal(line, res); err != nil {
			return errors.Wrapf(err, "Bad record %d", n)
		}
		if err := fn(n, res); err != nil {
			return err
		}
	}
	return errors.Wrap(sc.Err(), "Can not read records")
}

// ReadResults decodes every recorded result in r.
func ReadResults(r io.Reader) ([]*Result, error) {
	var results []*Result
	err := records(r, func(_ int, res *Result) error {
		results = append(results, res)
		return nil
	})
	return results, err
}

// Replay stores recorded results into latest, keeping the gaps between
// their timestamps. It returns when the records run out or ctx is done.
func Replay(ctx context.Context, r io.Reader, latest *Latest) error {
	var prev time.Time
	return records(r, func(_ int, res *Result) error {
		if !prev.IsZero() && res.At.After(prev) {
			timer := time.NewTimer(res.At.Sub(prev))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		prev = res.At
		latest.Store(res)
		return nil
	})
}
