package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/config"
	"github.com/abihf/wordface/detector"
	"github.com/abihf/wordface/landmark"
)

var conf = config.Load()

func main() {
	det, err := detector.Dial(conf.Detector, landmark.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	defer det.Close()

	var frame *capture.Frame
	err = capture.Capture(&capture.Option{Device: conf.Device}, func(f *capture.Frame) (bool, error) {
		frame = f
		return false, nil
	})
	if err != nil {
		log.Fatal(err)
	}
	if frame == nil {
		log.Fatal("No frame captured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	faces, err := det.Detect(ctx, frame)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Frame %dx%d %s\n", frame.Width, frame.Height, frame.Format)
	fmt.Println("Faces", len(faces))
	for i, face := range faces {
		fmt.Printf("  [%d] %d keypoints\n", i, len(face.Keypoints))
	}
}
