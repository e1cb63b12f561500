package format

import (
	"testing"

	"github.com/arloliu/gpfield/errs"
	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{" s2 ", CompressionS2},
		{"lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.True(t, got.Valid())
		})
	}

	_, err := ParseCompression("brotli")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0x9).String())
	require.False(t, CompressionType(0).Valid())
}
