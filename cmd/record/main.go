package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abihf/wordface/capture"
	"github.com/abihf/wordface/config"
	"github.com/abihf/wordface/detector"
	"github.com/abihf/wordface/landmark"
)

var conf = config.Load()

func main() {
	out := "capture.faces.jsonl"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	if err := mainE(out); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func mainE(out string) error {
	det, err := detector.Dial(conf.Detector, landmark.DefaultOptions())
	if err != nil {
		return fmt.Errorf("can not initialize detector: %w", err)
	}
	defer det.Close()

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("can not create %s: %w", out, err)
	}
	defer file.Close()
	rec := landmark.NewRecorder(file)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	noFaceFrames := 0
	cam := capture.Open(&capture.Option{Device: conf.Device})
	defer cam.Close()
	for {
		var frame *capture.Frame
		select {
		case <-ctx.Done():
			fmt.Printf("Stopped, %d frames without a face\n", noFaceFrames)
			return nil
		case f, ok := <-cam.Stream():
			if !ok {
				return cam.Err()
			}
			frame = f
		}

		faces, err := det.Detect(ctx, frame)
		if err != nil {
			fmt.Printf("	- Detection failed: %v\n", err)
			continue
		}

		res := landmark.NewResult(time.Now(), faces)
		if err := rec.Write(res); err != nil {
			return err
		}

		if len(faces) == 0 {
			noFaceFrames++
			fmt.Println("	- No face detected")
			continue
		}
		for i, face := range faces {
			fmt.Printf("  - Face [%d] (%d keypoints) %s\n", i, len(face.Keypoints), res.ID)
		}
	}
}
