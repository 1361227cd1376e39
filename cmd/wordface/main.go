package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/abihf/wordface"
	"github.com/abihf/wordface/display"
	"github.com/abihf/wordface/landmark"
	"github.com/abihf/wordface/pipeline"
	"github.com/abihf/wordface/utils/logging"
)

func main() {
	logging.Setup("", logging.Level())
	if len(os.Args) < 2 {
		help()
	}
	switch os.Args[1] {
	case "render":
		if len(os.Args) != 4 {
			help()
		}
		must(render(os.Args[2], os.Args[3]))
		println("Done")
	case "replay":
		if len(os.Args) != 4 {
			help()
		}
		must(replay(os.Args[2], os.Args[3]))
		println("Done")
	case "contours":
		contours()
	default:
		help()
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err.Error())
	}
}

func help() {
	log.Fatalf("Usage: %s <render results.jsonl out-dir | replay results.jsonl out.png | contours>", os.Args[0])
}

// render writes one PNG per recorded result.
func render(in, outDir string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	results, err := landmark.ReadResults(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	canvas, err := wordface.NewCanvas()
	if err != nil {
		return err
	}
	defer canvas.Close()

	r := wordface.NewRenderer()
	for i, res := range results {
		n := wordface.DrawFrame(canvas, r, res)
		path := filepath.Join(outDir, fmt.Sprintf("frame-%05d.png", i))
		if err := (&display.File{Path: path}).Show(canvas.Image()); err != nil {
			return err
		}
		fmt.Printf("  - %s: %d faces, %d words\n", path, len(res.Faces), n)
	}
	return nil
}

// replay plays recorded results at their original pace through the render
// loop, keeping the latest frame in out.
func replay(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	canvas, err := wordface.NewCanvas()
	if err != nil {
		return err
	}
	defer canvas.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var latest landmark.Latest
	loop := &pipeline.Loop{
		FPS:      30,
		CPU:      -1,
		Latest:   &latest,
		Renderer: wordface.NewRenderer(),
		Canvas:   canvas,
		Sink:     &display.File{Path: out, Every: 100 * time.Millisecond},
	}
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	err = landmark.Replay(ctx, f, &latest)
	// Let the loop draw the final result before stopping it.
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done
	return err
}

func contours() {
	for _, c := range wordface.Contours() {
		kind := "open"
		if c.Closed {
			kind = "closed"
		}
		fmt.Printf("%-14s %-6s %2d segments %v\n", c.Name, kind, c.Segments(), c.Indices)
	}
}
