package core

// Size describes the dimensions of a row-major grid in cells.
type Size struct {
	W int
	H int
}

// Cells returns W*H.
func (s Size) Cells() int { return s.W * s.H }
