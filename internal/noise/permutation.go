package noise

import "torus-rally/internal/core"

// Permutation is the seeded lattice hash shared by the gradient kernels. The
// 256 shuffled entries are repeated so lookups of the form p[p[i]+j] never
// need to wrap.
type Permutation struct {
	p [512]int
}

// NewPermutation shuffles 0..255 with a Fisher-Yates pass driven by seed.
func NewPermutation(seed int64) *Permutation {
	var base [256]int
	for i := range base {
		base[i] = i
	}
	core.NewRNG(seed).Shuffle(len(base), func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})

	perm := &Permutation{}
	for i := range perm.p {
		perm.p[i] = base[i&255]
	}
	return perm
}

// At returns the table entry at i, which must lie in [0, 512).
func (p *Permutation) At(i int) int {
	return p.p[i]
}

// hash3 folds a 3D lattice point through the table, innermost axis first.
// Each step is masked, so negative lattice indices are valid.
func (p *Permutation) hash3(i, j, k int) int {
	return p.p[(i+p.p[(j+p.p[k&255])&255])&255]
}

func (p *Permutation) hash4(i, j, k, l int) int {
	return p.p[(i+p.p[(j+p.p[(k+p.p[l&255])&255])&255])&255]
}
