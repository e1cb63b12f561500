package encoding

import (
	"math"
	"strings"
	"testing"

	"github.com/arloliu/gpfield/endian"
	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/hash"
	"github.com/stretchr/testify/require"
)

var engines = map[string]endian.EndianEngine{
	"little": endian.GetLittleEndianEngine(),
	"big":    endian.GetBigEndianEngine(),
}

func TestColumnNamesRoundTrip(t *testing.T) {
	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			names := []string{"l", "sigma", "alpha", "log_likelihood", "σ²"}

			buf, err := EncodeColumnNames(names, engine)
			require.NoError(t, err)

			got, n, err := DecodeColumnNames(buf, engine)
			require.NoError(t, err)
			require.Equal(t, names, got)
			require.Equal(t, len(buf), n)
		})
	}
}

func TestColumnNamesLayout(t *testing.T) {
	buf, err := EncodeColumnNames([]string{"ab"}, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 2, 0, 'a', 'b'}, buf)
}

func TestColumnNamesTrailingBytes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	buf, err := EncodeColumnNames([]string{"l"}, engine)
	require.NoError(t, err)

	got, n, err := DecodeColumnNames(append(buf, 0xAA, 0xBB), engine)
	require.NoError(t, err)
	require.Equal(t, []string{"l"}, got)
	require.Equal(t, len(buf), n)
}

func TestDecodeColumnNamesTruncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	buf, err := EncodeColumnNames([]string{"sigma", "l"}, engine)
	require.NoError(t, err)

	for cut := range len(buf) {
		_, _, err := DecodeColumnNames(buf[:cut], engine)
		require.ErrorIs(t, err, errs.ErrInvalidPayload, "cut at %d", cut)
	}
}

func TestEncodeColumnNamesTooLong(t *testing.T) {
	_, err := EncodeColumnNames([]string{strings.Repeat("x", math.MaxUint16+1)}, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidColumn)
}

func TestVerifyColumnHashes(t *testing.T) {
	names := []string{"l", "sigma"}
	ids := []uint64{hash.ID("l"), hash.ID("sigma")}

	require.NoError(t, VerifyColumnHashes(names, ids, hash.ID))
	require.ErrorIs(t, VerifyColumnHashes(names, []uint64{ids[1], ids[0]}, hash.ID), errs.ErrHashMismatch)
	require.ErrorIs(t, VerifyColumnHashes(names, ids[:1], hash.ID), errs.ErrHashMismatch)
}

func TestColumnsRoundTrip(t *testing.T) {
	columns := [][]float64{
		{0.5, 0.5, 1},
		{1, 2, 1},
		{-12.25, math.Inf(-1), math.NaN()},
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			buf, err := AppendColumns(nil, columns, engine)
			require.NoError(t, err)
			require.Len(t, buf, 3*3*8)

			got, err := DecodeColumns(buf, 3, 3, engine)
			require.NoError(t, err)
			require.Equal(t, columns[0], got[0])
			require.Equal(t, columns[1], got[1])
			require.Equal(t, -12.25, got[2][0])
			require.True(t, math.IsInf(got[2][1], -1))
			require.True(t, math.IsNaN(got[2][2]))
		})
	}
}

func TestColumnsErrors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := AppendColumns(nil, [][]float64{{1, 2}, {3}}, engine)
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)

	_, err = DecodeColumns(make([]byte, 15), 1, 2, engine)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	buf, err := AppendColumns([]byte{9}, nil, engine)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, buf)
}
