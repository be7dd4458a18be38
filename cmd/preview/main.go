//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"torus-rally/internal/app"
	"torus-rally/internal/config"
	"torus-rally/internal/fsutil"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Load(fsutil.OSFileSystem{}, "torus.json")
	if err != nil {
		log.Fatal(err)
	}
	cfg.Grid.Rows, cfg.Grid.Cols = 128, 256
	cfg.Bind(flag.CommandLine)
	flag.IntVar(&cfg.Grid.Rows, "rows", cfg.Grid.Rows, "heightfield rows")
	flag.IntVar(&cfg.Grid.Cols, "cols", cfg.Grid.Cols, "heightfield columns")
	scale := flag.Int("scale", 3, "pixels per heightfield cell")
	hudWidth := flag.Int("hud", 260, "parameter panel width (0 hides it)")
	tps := flag.Int("tps", 30, "updates per second")
	flag.Parse()

	session, err := app.NewSession(cfg)
	if err != nil {
		log.Fatal(err)
	}
	game := app.New(session, *scale, *hudWidth)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("torus-rally: " + session.String())
	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
