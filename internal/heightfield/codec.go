package heightfield

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const headerSize = 8

var (
	// ErrNotFound is returned when no cached field exists under a name.
	ErrNotFound = errors.New("heightfield: file not found")
	// ErrTruncated is returned when the payload is shorter than the header declares.
	ErrTruncated = errors.New("heightfield: truncated data")
	// ErrPermission is returned when the cache file or directory cannot be accessed.
	ErrPermission = errors.New("heightfield: permission denied")
	// ErrMalformedHeader is returned for non-positive dimensions or a payload
	// longer than the header declares.
	ErrMalformedHeader = errors.New("heightfield: malformed header")
)

// MarshalBinary encodes the field as little-endian int32 rows and cols
// followed by rows*cols float32 samples in row-major order.
func (f *Heightfield) MarshalBinary() ([]byte, error) {
	if f.rows > math.MaxInt32 || f.cols > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d exceeds int32", ErrDimensions, f.rows, f.cols)
	}
	buf := make([]byte, headerSize+4*len(f.data))
	binary.LittleEndian.PutUint32(buf[0:], uint32(int32(f.rows)))
	binary.LittleEndian.PutUint32(buf[4:], uint32(int32(f.cols)))
	off := headerSize
	for _, v := range f.data {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return buf, nil
}

// Decode parses the binary layout written by MarshalBinary.
func Decode(data []byte) (*Heightfield, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d header bytes", ErrTruncated, len(data))
	}
	rows := int32(binary.LittleEndian.Uint32(data[0:]))
	cols := int32(binary.LittleEndian.Uint32(data[4:]))
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedHeader, rows, cols)
	}

	cells := int64(rows) * int64(cols)
	got := int64(len(data) - headerSize)
	switch {
	case got/4 < cells:
		return nil, fmt.Errorf("%w: %d payload bytes for %dx%d samples", ErrTruncated, got, rows, cols)
	case got != cells*4:
		return nil, fmt.Errorf("%w: %d trailing bytes after %dx%d payload", ErrMalformedHeader, got-cells*4, rows, cols)
	}

	f, err := newField(int(rows), int(cols))
	if err != nil {
		return nil, err
	}
	off := headerSize
	for i := range f.data {
		f.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		off += 4
	}
	return f, nil
}

// UnmarshalBinary replaces f with the decoded contents of data.
func (f *Heightfield) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}
