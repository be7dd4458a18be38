package noise

import "math"

// ValueNoise interpolates pseudo-random scalars hashed at the integer lattice.
// It needs no seed and its output lies in [0, 1].
type ValueNoise struct{}

// Bounds reports the [0, 1] output range.
func (ValueNoise) Bounds() (lo, hi float32) { return 0, 1 }

func valueHash(x, y, z, w float64) float64 {
	s := math.Sin(x*127.1+y*311.7+z*74.7+w*269.5) * 43758.5453
	return s - math.Floor(s)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Sample3 returns value noise at (x, y, z).
func (ValueNoise) Sample3(x, y, z float32) float32 {
	fx, fy, fz := float64(x), float64(y), float64(z)
	ix, iy, iz := math.Floor(fx), math.Floor(fy), math.Floor(fz)
	u, v, w := smoothstep(fx-ix), smoothstep(fy-iy), smoothstep(fz-iz)

	var plane [2]float64
	for dz := 0; dz < 2; dz++ {
		cz := iz + float64(dz)
		x0 := mix(valueHash(ix, iy, cz, 0), valueHash(ix+1, iy, cz, 0), u)
		x1 := mix(valueHash(ix, iy+1, cz, 0), valueHash(ix+1, iy+1, cz, 0), u)
		plane[dz] = mix(x0, x1, v)
	}
	return float32(mix(plane[0], plane[1], w))
}

// Sample4 returns value noise at (x, y, z, w).
func (ValueNoise) Sample4(x, y, z, w float32) float32 {
	fx, fy, fz, fw := float64(x), float64(y), float64(z), float64(w)
	ix, iy, iz, iw := math.Floor(fx), math.Floor(fy), math.Floor(fz), math.Floor(fw)
	u, v, s, t := smoothstep(fx-ix), smoothstep(fy-iy), smoothstep(fz-iz), smoothstep(fw-iw)

	var cube [2]float64
	for dw := 0; dw < 2; dw++ {
		cw := iw + float64(dw)
		var plane [2]float64
		for dz := 0; dz < 2; dz++ {
			cz := iz + float64(dz)
			x0 := mix(valueHash(ix, iy, cz, cw), valueHash(ix+1, iy, cz, cw), u)
			x1 := mix(valueHash(ix, iy+1, cz, cw), valueHash(ix+1, iy+1, cz, cw), u)
			plane[dz] = mix(x0, x1, v)
		}
		cube[dw] = mix(plane[0], plane[1], s)
	}
	return float32(mix(cube[0], cube[1], t))
}
