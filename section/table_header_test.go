package section

import (
	"testing"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
	"github.com/stretchr/testify/require"
)

func TestNewTableFlag(t *testing.T) {
	f := NewTableFlag()

	require.Equal(t, uint16(MagicTableV1Opt), f.MagicNumber())
	require.True(t, f.IsLittleEndian())
	require.False(t, f.HasCollision())
	require.Equal(t, format.CompressionZstd, f.CompressionType)
	require.NoError(t, f.Validate())
}

func TestTableFlagBits(t *testing.T) {
	f := NewTableFlag()

	f.WithBigEndian()
	require.True(t, f.IsBigEndian())
	require.False(t, f.IsLittleEndian())
	require.Equal(t, uint16(MagicTableV1Opt), f.MagicNumber(), "flag bits must not touch the magic number")

	f.SetHasCollision(true)
	require.True(t, f.HasCollision())
	f.SetHasCollision(false)
	require.False(t, f.HasCollision())

	f.WithLittleEndian()
	require.True(t, f.IsLittleEndian())
	require.NoError(t, f.Validate())
}

func TestTableFlagValidate(t *testing.T) {
	tests := []struct {
		name string
		flag TableFlag
	}{
		{"wrong magic", TableFlag{Options: 0xEA10, CompressionType: format.CompressionNone}},
		{"reserved bit 1", TableFlag{Options: MagicTableV1Opt | ReservedBitMask, CompressionType: format.CompressionNone}},
		{"reserved bit 3", TableFlag{Options: MagicTableV1Opt | ReservedBit3Mask, CompressionType: format.CompressionNone}},
		{"zero compression", TableFlag{Options: MagicTableV1Opt}},
		{"unknown compression", TableFlag{Options: MagicTableV1Opt, CompressionType: 0x9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.flag.Validate(), errs.ErrInvalidHeaderFlags)
		})
	}
}

func TestTableHeaderRoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		h := NewTableHeader(1234, 3)
		h.Flag.CompressionType = format.CompressionLZ4
		h.Flag.SetHasCollision(true)
		if big {
			h.Flag.WithBigEndian()
		}
		h.PayloadLength = 4096
		h.Checksum = 0x0123456789ABCDEF

		b := h.Bytes()
		require.Len(t, b, HeaderSize)

		parsed, err := ParseTableHeader(append(b, 0xFF))
		require.NoError(t, err)
		require.Equal(t, *h, parsed)
	}
}

func TestTableHeaderOptionsAlwaysLittleEndian(t *testing.T) {
	h := NewTableHeader(1, 1)
	h.Flag.WithBigEndian()
	b := h.Bytes()

	require.Equal(t, byte((MagicTableV1Opt|EndiannessMask)&0xFF), b[0])
	require.Equal(t, byte(MagicTableV1Opt>>8), b[1])
	require.Equal(t, []byte{0, 0, 0, 1}, b[4:8], "row count follows the big-endian flag")
}

func TestTableHeaderParseErrors(t *testing.T) {
	_, err := ParseTableHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	var h TableHeader
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)

	_, err = ParseTableHeader(make([]byte, HeaderSize))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	b := NewTableHeader(2, 2).Bytes()
	b[3] = 1
	_, err = ParseTableHeader(b)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	b = NewTableHeader(2, 2).Bytes()
	b[11] = 7
	_, err = ParseTableHeader(b)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}
