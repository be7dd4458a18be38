package heightfield

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValuesValidatesShape(t *testing.T) {
	_, err := FromValues(0, 3, nil)
	assert.ErrorIs(t, err, ErrDimensions)

	_, err = FromValues(2, 2, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensions)

	src := []float32{1, 2, 3, 4, 5, 6}
	f, err := FromValues(2, 3, src)
	require.NoError(t, err)
	src[0] = 99
	assert.Equal(t, float32(1), f.At(0, 0), "field must not alias its input")
	assert.Equal(t, float32(6), f.At(1, 2))
	assert.Equal(t, 6, f.Len())
}

func TestAccessors(t *testing.T) {
	f, err := FromValues(2, 3, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})
	require.NoError(t, err)

	assert.Equal(t, float32(0.4), f.At(1, 0))
	assert.Equal(t, float32(0.1), f.WrapAt(2, 3))
	assert.Equal(t, float32(0.6), f.WrapAt(-1, -1))
	assert.Panics(t, func() { f.At(2, 0) })
	assert.Panics(t, func() { f.At(0, -1) })

	lo, hi := f.MinMax()
	assert.Equal(t, float32(0.1), lo)
	assert.Equal(t, float32(0.6), hi)

	vals := f.Values()
	vals[0] = 42
	assert.Equal(t, float32(0.1), f.At(0, 0))
}

func TestWrap(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 5, 0}, {5, 5, 0}, {7, 5, 2}, {-1, 5, 4}, {-5, 5, 0}, {-6, 5, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Wrap(tc.i, tc.n), "Wrap(%d,%d)", tc.i, tc.n)
	}
}

func TestBinaryLayout(t *testing.T) {
	f, err := FromValues(1, 2, []float32{0.5, 1})
	require.NoError(t, err)
	data, err := f.MarshalBinary()
	require.NoError(t, err)

	require.Len(t, data, 16)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[0:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:]))
	assert.Equal(t, math.Float32bits(0.5), binary.LittleEndian.Uint32(data[8:]))
	assert.Equal(t, math.Float32bits(1), binary.LittleEndian.Uint32(data[12:]))
}

func TestDecodeRoundTripIsBitExact(t *testing.T) {
	vals := []float32{0, 1, float32(math.SmallestNonzeroFloat32), 0.333333, -0.0, 0.999999}
	f, err := FromValues(2, 3, vals)
	require.NoError(t, err)
	data, err := f.MarshalBinary()
	require.NoError(t, err)

	var got Heightfield
	require.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, f.Equal(&got))
}

func header(rows, cols int32) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(rows))
	binary.LittleEndian.PutUint32(buf[4:], uint32(cols))
	return buf
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short header", []byte{1, 0, 0}, ErrTruncated},
		{"zero rows", header(0, 4), ErrMalformedHeader},
		{"negative cols", header(2, -3), ErrMalformedHeader},
		{"short payload", append(header(2, 2), make([]byte, 12)...), ErrTruncated},
		{"trailing bytes", append(header(1, 1), make([]byte, 5)...), ErrMalformedHeader},
		{"huge header", header(math.MaxInt32, math.MaxInt32), ErrTruncated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
