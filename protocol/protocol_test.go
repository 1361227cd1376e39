package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/landmark"
)

func TestDetectRequest(t *testing.T) {
	frame := &capture.Frame{
		Buffer: []byte{1, 2, 3, 4},
		Width:  640,
		Height: 480,
		Format: capture.FormatYUYV,
	}

	var buf bytes.Buffer
	if err := WriteDetectReq(&buf, "req-1", frame, landmark.DefaultOptions()); err != nil {
		t.Fatalf("WriteDetectReq: %v", err)
	}

	req, err := ReadReq(&buf)
	if err != nil {
		t.Fatalf("ReadReq: %v", err)
	}
	if req.ID != "req-1" || req.Action != ActionDetect {
		t.Errorf("req = %+v", req)
	}

	dr, err := ToDetectReq(req)
	if err != nil {
		t.Fatalf("ToDetectReq: %v", err)
	}
	if dr.Frame.Width != 640 || dr.Frame.Height != 480 || dr.Frame.Format != capture.FormatYUYV {
		t.Errorf("frame geometry = %dx%d %v", dr.Frame.Width, dr.Frame.Height, dr.Frame.Format)
	}
	if !bytes.Equal(dr.Frame.Buffer, frame.Buffer) {
		t.Errorf("frame buffer = %v", dr.Frame.Buffer)
	}
	if dr.Options != landmark.DefaultOptions() {
		t.Errorf("options = %+v", dr.Options)
	}
}

func TestToDetectReqRejects(t *testing.T) {
	good := NewDetectReq("x", &capture.Frame{Width: 1, Height: 1, Format: capture.FormatMJPEG}, landmark.DefaultOptions())

	tests := []struct {
		name   string
		mutate func(r *Req)
	}{
		{"wrong action", func(r *Req) { r.Action = "AUTH" }},
		{"bad width", func(r *Req) { r.Params["width"] = "wide" }},
		{"missing height", func(r *Req) { delete(r.Params, "height") }},
		{"bad format", func(r *Req) { r.Params["format"] = "bgr" }},
		{"bad maxFaces", func(r *Req) { r.Params["maxFaces"] = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := *good
			r.Params = map[string]string{}
			for k, v := range good.Params {
				r.Params[k] = v
			}
			tt.mutate(&r)
			if _, err := ToDetectReq(&r); err == nil {
				t.Error("ToDetectReq accepted a bad request")
			}
		})
	}
}

func TestFacesResponse(t *testing.T) {
	faces := []landmark.Face{{Keypoints: []landmark.Keypoint{{X: 10, Y: 20, Z: -1}, {X: 30, Y: 40}}}}

	var buf bytes.Buffer
	if err := WriteFacesRes(&buf, "req-2", faces); err != nil {
		t.Fatalf("WriteFacesRes: %v", err)
	}
	res, err := ReadRes(&buf)
	if err != nil {
		t.Fatalf("ReadRes: %v", err)
	}
	if err := res.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if res.ID != "req-2" || len(res.Faces) != 1 || len(res.Faces[0].Keypoints) != 2 {
		t.Fatalf("res = %+v", res)
	}
	if kp := res.Faces[0].Keypoints[0]; kp.X != 10 || kp.Y != 20 || kp.Z != -1 {
		t.Errorf("keypoint = %+v", kp)
	}
}

func TestEmptyFacesResponse(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFacesRes(&buf, "req-3", nil); err != nil {
		t.Fatalf("WriteFacesRes: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"faces":[]`)) {
		t.Errorf("empty faces not encoded as []: %s", buf.String())
	}
}

func TestErrorResponse(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteErrorRes(&buf, "req-4", errors.New("model not loaded")); err != nil {
		t.Fatalf("WriteErrorRes: %v", err)
	}
	res, err := ReadRes(&buf)
	if err != nil {
		t.Fatalf("ReadRes: %v", err)
	}
	if res.Status != StatusError {
		t.Errorf("status = %q", res.Status)
	}
	if err := res.Err(); err == nil || err.Error() != "model not loaded" {
		t.Errorf("Err() = %v", err)
	}

	if err := (&Res{Status: "BUSY"}).Err(); err == nil {
		t.Error("unknown status should be an error")
	}
}
