//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws seam guides and a height probe over the tiled heightfield.
// G toggles the seams, P toggles the probe.
type Overlay struct {
	probe     func(row, col int) float32
	cols      int
	rows      int
	scale     int
	showSeams bool
	showProbe bool
	pixel     *ebiten.Image
}

// NewOverlay constructs an overlay for a cols x rows field drawn at scale.
// probe returns the height at a cell and may be nil.
func NewOverlay(cols, rows, scale int, probe func(row, col int) float32) *Overlay {
	o := &Overlay{cols: cols, rows: rows, scale: max(scale, 1), probe: probe, showSeams: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showSeams = !o.showSeams
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		o.showProbe = !o.showProbe
	}
}

// Draw renders the enabled guides for a view repeated tiles x tiles times.
func (o *Overlay) Draw(screen *ebiten.Image, tiles int) {
	if o.cols <= 0 || o.rows <= 0 {
		return
	}
	tiles = max(tiles, 1)
	tileW := float64(o.cols * o.scale)
	tileH := float64(o.rows * o.scale)
	seam := color.RGBA{R: 255, G: 64, B: 160, A: 200}
	if o.showSeams && tiles > 1 {
		for i := 1; i < tiles; i++ {
			x := float64(i) * tileW
			y := float64(i) * tileH
			o.drawLine(screen, x, 0, x, tileH*float64(tiles), 1, seam)
			o.drawLine(screen, 0, y, tileW*float64(tiles), y, 1, seam)
		}
	}
	if o.showProbe && o.probe != nil {
		mx, my := ebiten.CursorPosition()
		row, col, ok := probeCell(mx, my, o.scale, o.cols, o.rows, tiles)
		if !ok {
			return
		}
		label := fmt.Sprintf("r%d c%d h=%.3f", row, col, o.probe(row, col))
		text.Draw(screen, label, basicfont.Face7x13, mx+12, my+4, color.White)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	length := math.Hypot(x2-x1, y2-y1)
	if o.pixel == nil || thickness <= 0 || length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(y2-y1, x2-x1))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
