package noise

// PerlinNoise is improved gradient noise over a seeded permutation. Its
// nominal output range is [-1, 1]. The zero value has no table and must not
// be sampled; construct it with NewPerlin.
type PerlinNoise struct {
	perm *Permutation
}

// NewPerlin builds a Perlin kernel whose lattice hash is shuffled by seed.
func NewPerlin(seed int64) *PerlinNoise {
	return &PerlinNoise{perm: NewPermutation(seed)}
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func grad2(hash int, x, y float32) float32 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}

func grad3(hash int, x, y, z float32) float32 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	v := z
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func grad4(hash int, x, y, z, w float32) float32 {
	h := hash & 31
	a, b, c := y, z, w
	if h < 24 {
		a = x
	}
	if h < 16 {
		b = y
	}
	if h < 8 {
		c = z
	}
	if h&1 != 0 {
		a = -a
	}
	if h&2 != 0 {
		b = -b
	}
	if h&4 != 0 {
		c = -c
	}
	return a + b + c
}

// Sample2 returns 2D gradient noise at (x, y).
func (n *PerlinNoise) Sample2(x, y float32) float32 {
	p := &n.perm.p
	fx, fy := floor32(x), floor32(y)
	xi, yi := int(fx)&255, int(fy)&255
	xf, yf := x-fx, y-fy
	u, v := fade(xf), fade(yf)

	aa := p[xi] + yi
	ab := p[xi] + yi + 1
	ba := p[xi+1] + yi
	bb := p[xi+1] + yi + 1

	x1 := lerp(u, grad2(p[aa], xf, yf), grad2(p[ba], xf-1, yf))
	x2 := lerp(u, grad2(p[ab], xf, yf-1), grad2(p[bb], xf-1, yf-1))
	return lerp(v, x1, x2)
}

// Sample3 returns 3D gradient noise at (x, y, z).
func (n *PerlinNoise) Sample3(x, y, z float32) float32 {
	p := &n.perm.p
	fx, fy, fz := floor32(x), floor32(y), floor32(z)
	xi, yi, zi := int(fx)&255, int(fy)&255, int(fz)&255
	xf, yf, zf := x-fx, y-fy, z-fz
	u, v, w := fade(xf), fade(yf), fade(zf)

	corner := func(dx, dy, dz int) int {
		return p[p[p[xi+dx]+yi+dy]+zi+dz]
	}

	x1 := lerp(u, grad3(corner(0, 0, 0), xf, yf, zf), grad3(corner(1, 0, 0), xf-1, yf, zf))
	x2 := lerp(u, grad3(corner(0, 1, 0), xf, yf-1, zf), grad3(corner(1, 1, 0), xf-1, yf-1, zf))
	y1 := lerp(v, x1, x2)

	x3 := lerp(u, grad3(corner(0, 0, 1), xf, yf, zf-1), grad3(corner(1, 0, 1), xf-1, yf, zf-1))
	x4 := lerp(u, grad3(corner(0, 1, 1), xf, yf-1, zf-1), grad3(corner(1, 1, 1), xf-1, yf-1, zf-1))
	y2 := lerp(v, x3, x4)

	return lerp(w, y1, y2)
}

// Sample4 returns 4D gradient noise at (x, y, z, w).
func (n *PerlinNoise) Sample4(x, y, z, w float32) float32 {
	p := &n.perm.p
	fx, fy, fz, fw := floor32(x), floor32(y), floor32(z), floor32(w)
	xi, yi, zi, wi := int(fx)&255, int(fy)&255, int(fz)&255, int(fw)&255
	xf, yf, zf, wf := x-fx, y-fy, z-fz, w-fw
	u, v, t, s := fade(xf), fade(yf), fade(zf), fade(wf)

	// Collapse x, then y, then z, then w across the 16 hypercube corners.
	var zs [2]float32
	for dw := 0; dw < 2; dw++ {
		var ys [2]float32
		for dz := 0; dz < 2; dz++ {
			var xs [2]float32
			for dy := 0; dy < 2; dy++ {
				g0 := grad4(p[p[p[p[xi]+yi+dy]+zi+dz]+wi+dw],
					xf, yf-float32(dy), zf-float32(dz), wf-float32(dw))
				g1 := grad4(p[p[p[p[xi+1]+yi+dy]+zi+dz]+wi+dw],
					xf-1, yf-float32(dy), zf-float32(dz), wf-float32(dw))
				xs[dy] = lerp(u, g0, g1)
			}
			ys[dz] = lerp(v, xs[0], xs[1])
		}
		zs[dw] = lerp(t, ys[0], ys[1])
	}
	return lerp(s, zs[0], zs[1])
}
