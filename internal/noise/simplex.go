package noise

import "math"

var (
	f3 = float32(1.0 / 3.0)
	g3 = float32(1.0 / 6.0)
	f4 = float32((math.Sqrt(5) - 1) / 4)
	g4 = float32((5 - math.Sqrt(5)) / 20)
)

var simplexGrad3 = [12][3]float32{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

var simplexGrad4 = [32][4]float32{
	{0, 1, 1, 1}, {0, 1, 1, -1}, {0, 1, -1, 1}, {0, 1, -1, -1},
	{0, -1, 1, 1}, {0, -1, 1, -1}, {0, -1, -1, 1}, {0, -1, -1, -1},
	{1, 0, 1, 1}, {1, 0, 1, -1}, {1, 0, -1, 1}, {1, 0, -1, -1},
	{-1, 0, 1, 1}, {-1, 0, 1, -1}, {-1, 0, -1, 1}, {-1, 0, -1, -1},
	{1, 1, 0, 1}, {1, 1, 0, -1}, {1, -1, 0, 1}, {1, -1, 0, -1},
	{-1, 1, 0, 1}, {-1, 1, 0, -1}, {-1, -1, 0, 1}, {-1, -1, 0, -1},
	{1, 1, 1, 0}, {1, 1, -1, 0}, {1, -1, 1, 0}, {1, -1, -1, 0},
	{-1, 1, 1, 0}, {-1, 1, -1, 0}, {-1, -1, 1, 0}, {-1, -1, -1, 0},
}

// SimplexNoise is Gustavson-style simplex noise with gradients selected
// through a seeded permutation. Output is scaled to approximately [-1, 1].
// The zero value must not be sampled; construct it with NewSimplex.
type SimplexNoise struct {
	perm *Permutation
}

// NewSimplex builds a simplex kernel whose gradient hash is shuffled by seed.
func NewSimplex(seed int64) *SimplexNoise {
	return &SimplexNoise{perm: NewPermutation(seed)}
}

func corner3(gi int, x, y, z float32) float32 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	g := simplexGrad3[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

func corner4(gi int, x, y, z, w float32) float32 {
	t := 0.6 - x*x - y*y - z*z - w*w
	if t < 0 {
		return 0
	}
	t *= t
	g := simplexGrad4[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z + g[3]*w)
}

// Sample3 returns 3D simplex noise at (x, y, z).
func (n *SimplexNoise) Sample3(x, y, z float32) float32 {
	s := (x + y + z) * f3
	i := int(floor32(x + s))
	j := int(floor32(y + s))
	k := int(floor32(z + s))

	t := float32(i+j+k) * g3
	x0 := x - (float32(i) - t)
	y0 := y - (float32(j) - t)
	z0 := z - (float32(k) - t)

	// Visit order of the middle corners follows the ordering of the offsets.
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1, y1, z1 := x0-float32(i1)+g3, y0-float32(j1)+g3, z0-float32(k1)+g3
	x2, y2, z2 := x0-float32(i2)+2*g3, y0-float32(j2)+2*g3, z0-float32(k2)+2*g3
	x3, y3, z3 := x0-1+3*g3, y0-1+3*g3, z0-1+3*g3

	p := n.perm
	sum := corner3(p.hash3(i, j, k)%12, x0, y0, z0) +
		corner3(p.hash3(i+i1, j+j1, k+k1)%12, x1, y1, z1) +
		corner3(p.hash3(i+i2, j+j2, k+k2)%12, x2, y2, z2) +
		corner3(p.hash3(i+1, j+1, k+1)%12, x3, y3, z3)
	return 32 * sum
}

// Sample4 returns 4D simplex noise at (x, y, z, w).
func (n *SimplexNoise) Sample4(x, y, z, w float32) float32 {
	s := (x + y + z + w) * f4
	i := int(floor32(x + s))
	j := int(floor32(y + s))
	k := int(floor32(z + s))
	l := int(floor32(w + s))

	t := float32(i+j+k+l) * g4
	x0 := x - (float32(i) - t)
	y0 := y - (float32(j) - t)
	z0 := z - (float32(k) - t)
	w0 := w - (float32(l) - t)

	// Each of the six pairwise comparisons awards exactly one rank point, so
	// the ranks always form a permutation of 0..3 even when offsets tie.
	var rx, ry, rz, rw int
	rank := func(a, b float32, ra, rb *int) {
		if a > b {
			*ra++
		} else {
			*rb++
		}
	}
	rank(x0, y0, &rx, &ry)
	rank(x0, z0, &rx, &rz)
	rank(x0, w0, &rx, &rw)
	rank(y0, z0, &ry, &rz)
	rank(y0, w0, &ry, &rw)
	rank(z0, w0, &rz, &rw)

	step := func(r, threshold int) int {
		if r >= threshold {
			return 1
		}
		return 0
	}
	i1, j1, k1, l1 := step(rx, 3), step(ry, 3), step(rz, 3), step(rw, 3)
	i2, j2, k2, l2 := step(rx, 2), step(ry, 2), step(rz, 2), step(rw, 2)
	i3, j3, k3, l3 := step(rx, 1), step(ry, 1), step(rz, 1), step(rw, 1)

	x1, y1, z1, w1 := x0-float32(i1)+g4, y0-float32(j1)+g4, z0-float32(k1)+g4, w0-float32(l1)+g4
	x2, y2, z2, w2 := x0-float32(i2)+2*g4, y0-float32(j2)+2*g4, z0-float32(k2)+2*g4, w0-float32(l2)+2*g4
	x3, y3, z3, w3 := x0-float32(i3)+3*g4, y0-float32(j3)+3*g4, z0-float32(k3)+3*g4, w0-float32(l3)+3*g4
	x4, y4, z4, w4 := x0-1+4*g4, y0-1+4*g4, z0-1+4*g4, w0-1+4*g4

	p := n.perm
	sum := corner4(p.hash4(i, j, k, l)&31, x0, y0, z0, w0) +
		corner4(p.hash4(i+i1, j+j1, k+k1, l+l1)&31, x1, y1, z1, w1) +
		corner4(p.hash4(i+i2, j+j2, k+k2, l+l2)&31, x2, y2, z2, w2) +
		corner4(p.hash4(i+i3, j+j3, k+k3, l+l3)&31, x3, y3, z3, w3) +
		corner4(p.hash4(i+1, j+1, k+1, l+1)&31, x4, y4, z4, w4)
	return 27 * sum
}
