//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HeightPainter uploads a heightfield into an RGBA image, optionally tiled.
type HeightPainter struct {
	w, h  int
	tiles int
	img   *ebiten.Image
	buf   []byte
}

// NewHeightPainter allocates a painter for a w x h field.
func NewHeightPainter(w, h int) *HeightPainter {
	hp := &HeightPainter{w: w, h: h}
	hp.resize(1)
	return hp
}

func (hp *HeightPainter) resize(tiles int) {
	hp.tiles = tiles
	hp.buf = make([]byte, 4*hp.w*hp.h*tiles*tiles)
	hp.img = ebiten.NewImage(hp.w*tiles, hp.h*tiles)
}

// Blit colors heights with ramp, repeats them tiles x tiles times and draws
// the result scaled onto dst.
func (hp *HeightPainter) Blit(dst *ebiten.Image, heights []float32, ramp Ramp, scale, tiles int) {
	if len(heights) != hp.w*hp.h {
		return
	}
	if tiles < 1 {
		tiles = 1
	}
	if tiles != hp.tiles {
		hp.resize(tiles)
	}
	fillHeightRGBA(hp.buf, heights, hp.w, ramp, tiles)
	hp.img.WritePixels(hp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(hp.img, op)
}

// Size returns the dimensions of one tile.
func (hp *HeightPainter) Size() (int, int) { return hp.w, hp.h }
