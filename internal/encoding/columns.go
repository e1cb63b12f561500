package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/endian"
	"github.com/arloliu/gpfield/errs"
)

// AppendColumns appends the columns to dst in column-major order, each value
// stored as its IEEE-754 bits. Every column must have the same length.
func AppendColumns(dst []byte, columns [][]float64, engine endian.EndianEngine) ([]byte, error) {
	if len(columns) == 0 {
		return dst, nil
	}

	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("%w: column %d has %d rows, expected %d", errs.ErrDimensionMismatch, i, len(col), rows)
		}
	}

	for _, col := range columns {
		for _, v := range col {
			dst = engine.AppendUint64(dst, math.Float64bits(v))
		}
	}

	return dst, nil
}

// DecodeColumns splits a column-major payload into cols columns of rows
// values. The payload length must be exactly rows*cols*8 bytes.
func DecodeColumns(data []byte, rows, cols int, engine endian.EndianEngine) ([][]float64, error) {
	if want := rows * cols * 8; len(data) != want {
		return nil, fmt.Errorf("%w: value payload has %d bytes, expected %d for %d rows x %d columns",
			errs.ErrInvalidPayload, len(data), want, rows, cols)
	}

	columns := make([][]float64, cols)
	offset := 0
	for c := range cols {
		col := make([]float64, rows)
		for r := range rows {
			col[r] = math.Float64frombits(engine.Uint64(data[offset:]))
			offset += 8
		}
		columns[c] = col
	}

	return columns, nil
}
