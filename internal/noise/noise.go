// Package noise implements the coherent-noise kernels used to synthesize
// terrain: lattice value noise, gradient (Perlin) noise, simplex noise and an
// OpenSimplex backend. Every kernel is deterministic for a fixed seed and safe
// for concurrent sampling once constructed.
package noise

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kernel samples a scalar noise field in three or four dimensions.
type Kernel interface {
	Sample3(x, y, z float32) float32
	Sample4(x, y, z, w float32) float32
}

// Bounded is implemented by kernels that declare their nominal output range.
// Kernels that do not implement it are assumed to span [-1, 1].
type Bounded interface {
	Bounds() (lo, hi float32)
}

// Range reports the nominal output range of k.
func Range(k Kernel) (lo, hi float32) {
	if b, ok := k.(Bounded); ok {
		return b.Bounds()
	}
	return -1, 1
}

// Algorithm names a registered kernel family.
type Algorithm string

const (
	Value       Algorithm = "value"
	Perlin      Algorithm = "perlin"
	Simplex     Algorithm = "simplex"
	OpenSimplex Algorithm = "opensimplex"
)

// ErrUnknownAlgorithm is returned when an algorithm name has no registered
// factory.
var ErrUnknownAlgorithm = errors.New("noise: unknown algorithm")

// Factory constructs a kernel for the given seed.
type Factory func(seed int64) Kernel

var kernels = map[Algorithm]Factory{}

// Register adds a kernel factory under the provided name.
func Register(alg Algorithm, f Factory) {
	if alg == "" || f == nil {
		return
	}
	kernels[alg] = f
}

// Algorithms lists the registered algorithm names in sorted order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(kernels))
	for alg := range kernels {
		out = append(out, alg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseAlgorithm resolves a case-insensitive algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := kernels[alg]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// New constructs the kernel registered under alg.
func New(alg Algorithm, seed int64) (Kernel, error) {
	f, ok := kernels[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
	return f(seed), nil
}

func init() {
	Register(Value, func(int64) Kernel { return ValueNoise{} })
	Register(Perlin, func(seed int64) Kernel { return NewPerlin(seed) })
	Register(Simplex, func(seed int64) Kernel { return NewSimplex(seed) })
	Register(OpenSimplex, func(seed int64) Kernel { return NewOpenSimplex(seed) })
}

func floor32(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}
