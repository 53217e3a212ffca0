package netcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTripLittleEndian(t *testing.T) {
	w := NewWriter(LittleEndian)
	w.WriteUint(0b101, 3)
	w.WriteBit(true)
	w.WriteUint(0x1F, 5)

	r := NewReader(w.Bytes(), LittleEndian)
	v, err := r.ReadUint(3)
	require.NoError(t, err)
	require.Equal(t, uint64(0b101), v)

	b, err := r.ReadBit()
	require.NoError(t, err)
	require.True(t, b)

	v, err = r.ReadUint(5)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1F), v)
}

func TestWriterReaderRoundTripBigEndian(t *testing.T) {
	w := NewWriter(BigEndian)
	w.WriteUint(0b1100, 4)
	w.WriteUint(0b0011, 4)

	r := NewReader(w.Bytes(), BigEndian)
	v, err := r.ReadUint(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0b11000011), v)
}

func TestWriteBitPackingOrderDiffers(t *testing.T) {
	le := NewWriter(LittleEndian)
	le.WriteBit(true)
	le.WriteBit(false)
	le.WriteBit(false)

	be := NewWriter(BigEndian)
	be.WriteBit(true)
	be.WriteBit(false)
	be.WriteBit(false)

	require.Equal(t, byte(0b00000001), le.Bytes()[0])
	require.Equal(t, byte(0b10000000), be.Bytes()[0])
}

func TestReadUintZeroWidth(t *testing.T) {
	r := NewReader([]byte{0xFF}, LittleEndian)
	v, err := r.ReadUint(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)
	require.Equal(t, 8, r.BitsRemaining())
}

func TestReadPastEndReturnsErrTruncated(t *testing.T) {
	r := NewReader([]byte{0x01}, LittleEndian)
	_, err := r.ReadUint(16)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReadUintBadWidth(t *testing.T) {
	r := NewReader([]byte{0x01}, LittleEndian)
	_, err := r.ReadUint(65)
	require.ErrorIs(t, err, ErrBadWidth)
}

func TestWriteUintPanicsOnBadWidth(t *testing.T) {
	w := NewWriter(LittleEndian)
	require.Panics(t, func() { w.WriteUint(0, 65) })
}

func TestBitsRemainingCountsDown(t *testing.T) {
	r := NewReader([]byte{0xAB, 0xCD}, LittleEndian)
	require.Equal(t, 16, r.BitsRemaining())
	_, err := r.ReadUint(5)
	require.NoError(t, err)
	require.Equal(t, 11, r.BitsRemaining())
}
