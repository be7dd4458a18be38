// Command viewer builds the terrain mesh and shows it in a 3D window. The
// window needs the raylib build tag.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"torus-rally/internal/config"
	"torus-rally/internal/fsutil"
	"torus-rally/internal/terrain"
	"torus-rally/internal/viewer"
)

func main() {
	fsys := fsutil.OSFileSystem{}
	cfg, err := config.Load(fsys, "torus.json")
	if err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	fps := flag.Int("fps", 60, "target frame rate")
	flag.Parse()

	res, err := (&terrain.Pipeline{Config: cfg, FS: fsys}).Run()
	if err != nil {
		log.Fatal(err)
	}
	opts := viewer.Options{
		Width:  int32(*width),
		Height: int32(*height),
		Title:  fmt.Sprintf("torus-rally: %s %s seed %d", cfg.Mesh.Variant, cfg.Noise.Algorithm, cfg.Noise.Seed),
		FPS:    int32(*fps),
	}
	if err := viewer.Run(res.Mesh, opts); err != nil {
		if errors.Is(err, viewer.ErrNoWindow) {
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags raylib ./cmd/viewer` or build with `-tags raylib`.")
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
