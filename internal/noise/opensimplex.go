package noise

import "github.com/ojrac/opensimplex-go"

// OpenSimplexNoise adapts the opensimplex-go float32 generator to Kernel.
type OpenSimplexNoise struct {
	src opensimplex.Noise32
}

// NewOpenSimplex seeds an OpenSimplex kernel.
func NewOpenSimplex(seed int64) *OpenSimplexNoise {
	return &OpenSimplexNoise{src: opensimplex.New32(seed)}
}

// Sample3 returns OpenSimplex noise at (x, y, z).
func (n *OpenSimplexNoise) Sample3(x, y, z float32) float32 {
	return n.src.Eval3(x, y, z)
}

// Sample4 returns OpenSimplex noise at (x, y, z, w).
func (n *OpenSimplexNoise) Sample4(x, y, z, w float32) float32 {
	return n.src.Eval4(x, y, z, w)
}
