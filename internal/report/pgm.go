package report

import (
	"bytes"
	"fmt"

	"torus-rally/internal/fsutil"
	"torus-rally/internal/heightfield"
)

// EncodePGM renders f as a binary (P5) grayscale image, one byte per sample,
// cols wide and rows high. Samples are expected in [0, 1] and are clamped.
func EncodePGM(f *heightfield.Heightfield) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P5\n%d %d\n255\n", f.Cols(), f.Rows())
	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			buf.WriteByte(gray(f.At(row, col)))
		}
	}
	return buf.Bytes()
}

func gray(h float32) byte {
	switch {
	case h <= 0 || h != h:
		return 0
	case h >= 1:
		return 255
	}
	return byte(h * 255)
}

// WritePGM writes the PGM preview of f to path.
func WritePGM(fsys fsutil.FileSystem, path string, f *heightfield.Heightfield) error {
	if err := fsys.WriteFile(path, EncodePGM(f), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
