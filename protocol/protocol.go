// Package protocol is the JSON message format spoken with the face-mesh
// detector service.
package protocol

import (
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/landmark"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func GetSockAddress() string {
	return "/run/wordface/facemesh.sock"
}

func GetLockFile() string {
	return "/run/wordface.pid"
}

type Action string

const (
	ActionDetect Action = "DETECT"
)

type Req struct {
	ID     string            `json:"id"`
	Action Action            `json:"action"`
	Params map[string]string `json:"params"`
	Frame  []byte            `json:"frame,omitempty"`
}

type DetectReq struct {
	Frame   capture.Frame
	Options landmark.Options
}

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

type Res struct {
	ID     string          `json:"id"`
	Status Status          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Faces  []landmark.Face `json:"faces"`
}

// Err converts an error response into an error.
func (r *Res) Err() error {
	if r.Status == StatusSuccess {
		return nil
	}
	if r.Error == "" {
		return errors.Errorf("Detector returned status %q", r.Status)
	}
	return errors.New(r.Error)
}

func ReadReq(r io.Reader) (*Req, error) {
	var req Req
	err := json.NewDecoder(r).Decode(&req)
	return &req, err
}

func ReadRes(r io.Reader) (*Res, error) {
	var res Res
	err := json.NewDecoder(r).Decode(&res)
	return &res, err
}

// ToDetectReq parses the params of a DETECT request.
func ToDetectReq(req *Req) (*DetectReq, error) {
	if req.Action != ActionDetect {
		return nil, errors.Errorf("Unexpected action %q", req.Action)
	}
	p := req.Params
	width, err := strconv.Atoi(p["width"])
	if err != nil {
		return nil, errors.Wrap(err, "Bad width")
	}
	height, err := strconv.Atoi(p["height"])
	if err != nil {
		return nil, errors.Wrap(err, "Bad height")
	}
	format, err := capture.ParseFormat(p["format"])
	if err != nil {
		return nil, err
	}
	maxFaces, err := strconv.Atoi(p["maxFaces"])
	if err != nil {
		return nil, errors.Wrap(err, "Bad maxFaces")
	}
	return &DetectReq{
		Frame: capture.Frame{
			Buffer: req.Frame,
			Width:  width,
			Height: height,
			Format: format,
		},
		Options: landmark.Options{
			MaxFaces:        maxFaces,
			RefineLandmarks: p["refineLandmarks"] == "true",
			FlipHorizontal:  p["flipHorizontal"] == "true",
		},
	}, nil
}

// NewDetectReq builds the request for one frame.
func NewDetectReq(id string, frame *capture.Frame, opts landmark.Options) *Req {
	return &Req{
		ID:     id,
		Action: ActionDetect,
		Params: map[string]string{
			"width":           strconv.Itoa(frame.Width),
			"height":          strconv.Itoa(frame.Height),
			"format":          frame.Format.String(),
			"maxFaces":        strconv.Itoa(opts.MaxFaces),
			"refineLandmarks": strconv.FormatBool(opts.RefineLandmarks),
			"flipHorizontal":  strconv.FormatBool(opts.FlipHorizontal),
		},
		Frame: frame.Buffer,
	}
}

func WriteDetectReq(w io.Writer, id string, frame *capture.Frame, opts landmark.Options) error {
	return json.NewEncoder(w).Encode(NewDetectReq(id, frame, opts))
}

func WriteFacesRes(w io.Writer, id string, faces []landmark.Face) error {
	if faces == nil {
		faces = []landmark.Face{}
	}
	res := Res{
		ID:     id,
		Status: StatusSuccess,
		Faces:  faces,
	}
	return json.NewEncoder(w).Encode(&res)
}

func WriteErrorRes(w io.Writer, id string, err error) error {
	res := Res{
		ID:     id,
		Status: StatusError,
		Error:  err.Error(),
	}
	return json.NewEncoder(w).Encode(&res)
}
