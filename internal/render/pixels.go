package render

import "image/color"

// Stop anchors a color at a height in [0, 1].
type Stop struct {
	At    float32
	Color color.RGBA
}

// Ramp maps heights to colors by interpolating between sorted stops.
type Ramp []Stop

// GrayRamp maps 0 to black and 1 to white.
func GrayRamp() Ramp {
	return Ramp{
		{At: 0, Color: color.RGBA{A: 255}},
		{At: 1, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
}

// TerrainRamp shades low ground as water and high ground as rock and snow.
func TerrainRamp() Ramp {
	return Ramp{
		{At: 0.00, Color: color.RGBA{R: 18, G: 40, B: 92, A: 255}},
		{At: 0.18, Color: color.RGBA{R: 40, G: 96, B: 160, A: 255}},
		{At: 0.22, Color: color.RGBA{R: 210, G: 196, B: 140, A: 255}},
		{At: 0.40, Color: color.RGBA{R: 76, G: 140, B: 60, A: 255}},
		{At: 0.65, Color: color.RGBA{R: 110, G: 96, B: 80, A: 255}},
		{At: 0.85, Color: color.RGBA{R: 150, G: 146, B: 140, A: 255}},
		{At: 1.00, Color: color.RGBA{R: 250, G: 250, B: 255, A: 255}},
	}
}

// At returns the color for h. Heights outside the ramp take the end colors.
func (r Ramp) At(h float32) color.RGBA {
	if len(r) == 0 {
		return color.RGBA{}
	}
	if h <= r[0].At || h != h {
		return r[0].Color
	}
	for i := 1; i < len(r); i++ {
		if h <= r[i].At {
			lo, hi := r[i-1], r[i]
			t := (h - lo.At) / (hi.At - lo.At)
			return color.RGBA{
				R: mix8(lo.Color.R, hi.Color.R, t),
				G: mix8(lo.Color.G, hi.Color.G, t),
				B: mix8(lo.Color.B, hi.Color.B, t),
				A: mix8(lo.Color.A, hi.Color.A, t),
			}
		}
	}
	return r[len(r)-1].Color
}

func mix8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}

// fillHeightRGBA converts row-major heights of a w-wide grid into RGBA pixels,
// repeating the grid tiles x tiles times. buf must hold
// 4 * len(heights) * tiles * tiles bytes.
func fillHeightRGBA(buf []byte, heights []float32, w int, ramp Ramp, tiles int) {
	if w <= 0 || tiles <= 0 {
		return
	}
	h := len(heights) / w
	stride := w * tiles
	for y := 0; y < h*tiles; y++ {
		for x := 0; x < stride; x++ {
			c := ramp.At(heights[(y%h)*w+x%w])
			base := (y*stride + x) * 4
			buf[base+0] = c.R
			buf[base+1] = c.G
			buf[base+2] = c.B
			buf[base+3] = c.A
		}
	}
}
