package table

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/compress"
	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
	"github.com/arloliu/gpfield/internal/collision"
	"github.com/arloliu/gpfield/internal/encoding"
	"github.com/arloliu/gpfield/internal/hash"
	"github.com/arloliu/gpfield/internal/options"
	"github.com/arloliu/gpfield/internal/pool"
	"github.com/arloliu/gpfield/section"
)

// EncodeConfig holds the settings of Encode.
type EncodeConfig struct {
	Compression format.CompressionType
	BigEndian   bool
}

func defaultEncodeConfig() EncodeConfig {
	return EncodeConfig{Compression: format.CompressionZstd}
}

// EncodeOption is a functional option for EncodeConfig.
type EncodeOption = options.Option[*EncodeConfig]

// WithCompression selects the value payload codec. Zstd is the default.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *EncodeConfig) error {
		if !c.Valid() {
			return fmt.Errorf("%w: invalid compression type %d", errs.ErrInvalidConfig, c)
		}
		cfg.Compression = c

		return nil
	})
}

// WithLittleEndian writes a little-endian table. This is the default.
func WithLittleEndian() EncodeOption {
	return options.NoError(func(cfg *EncodeConfig) {
		cfg.BigEndian = false
	})
}

// WithBigEndian writes a big-endian table.
func WithBigEndian() EncodeOption {
	return options.NoError(func(cfg *EncodeConfig) {
		cfg.BigEndian = true
	})
}

// Encode serialises the table into the binary result table format described
// in package section.
//
// Parameters:
//   - opts: WithCompression, WithLittleEndian, WithBigEndian
//
// Returns:
//   - []byte: the encoded table, owned by the caller
//   - error: errs.ErrInvalidConfig for bad options, errs.ErrInvalidColumn when
//     the table has too many columns or too many rows for the format
func (t *Table) Encode(opts ...EncodeOption) ([]byte, error) {
	cfg := defaultEncodeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	columns := t.Columns()
	if len(columns) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d columns exceed the format limit", errs.ErrInvalidColumn, len(columns))
	}
	if uint64(t.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d rows exceed the format limit", errs.ErrInvalidConfig, t.Len())
	}

	header := section.NewTableHeader(uint32(t.Len()), uint16(len(columns))) //nolint: gosec
	header.Flag.CompressionType = cfg.Compression
	if cfg.BigEndian {
		header.Flag.WithBigEndian()
	}
	engine := header.Flag.EndianEngine()

	tracker := collision.NewTracker()
	ids := make([]uint64, len(columns))
	for i, name := range columns {
		ids[i] = hash.ID(name)
		if err := tracker.Track(name, ids[i]); err != nil {
			return nil, err
		}
	}
	header.Flag.SetHasCollision(tracker.HasCollision())

	names, err := encoding.EncodeColumnNames(tracker.Names(), engine)
	if err != nil {
		return nil, err
	}

	raw := pool.GetTableBuffer()
	defer pool.PutTableBuffer(raw)
	raw.Grow(t.Len() * len(columns) * section.ValueSize)
	raw.B, err = encoding.AppendColumns(raw.B, append(slicesOf(t.params), t.scores), engine)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compressing table payload: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds the format limit", errs.ErrInvalidConfig, len(payload))
	}

	header.Checksum = hash.Sum(raw.Bytes())
	header.PayloadLength = uint32(len(payload)) //nolint: gosec

	out := make([]byte, 0, section.HeaderSize+len(ids)*section.ColumnIDSize+len(names)+len(payload))
	out = append(out, header.Bytes()...)
	for _, id := range ids {
		out = engine.AppendUint64(out, id)
	}
	out = append(out, names...)
	out = append(out, payload...)

	return out, nil
}

// slicesOf returns a new outer slice so appending to it never writes into cols.
func slicesOf(cols [][]float64) [][]float64 {
	out := make([][]float64, len(cols), len(cols)+1)
	copy(out, cols)

	return out
}

// Decode parses a table produced by Encode.
//
// Decode validates the header flags, the column ID section against the
// column names, the payload length and the payload checksum.
//
// Returns:
//   - *Table: the decoded table
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidHeaderFlags,
//     errs.ErrInvalidPayload, errs.ErrHashMismatch, errs.ErrChecksumMismatch
//     or errs.ErrInvalidColumn
func Decode(data []byte) (*Table, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil, err
	}
	engine := header.Flag.EndianEngine()
	cols := int(header.ColumnCount)
	rows := int(header.RowCount)

	if cols == 0 {
		return nil, fmt.Errorf("%w: table has no columns", errs.ErrInvalidPayload)
	}

	offset := section.ColumnIDOffset
	idEnd := offset + cols*section.ColumnIDSize
	if len(data) < idEnd {
		return nil, fmt.Errorf("%w: truncated column ID section", errs.ErrInvalidPayload)
	}
	ids := make([]uint64, cols)
	for i := range ids {
		ids[i] = engine.Uint64(data[offset:])
		offset += section.ColumnIDSize
	}

	names, n, err := encoding.DecodeColumnNames(data[offset:], engine)
	if err != nil {
		return nil, err
	}
	offset += n
	if len(names) != cols {
		return nil, fmt.Errorf("%w: header declares %d columns, names payload has %d", errs.ErrInvalidPayload, cols, len(names))
	}
	if err := encoding.VerifyColumnHashes(names, ids, hash.ID); err != nil {
		return nil, err
	}
	if names[cols-1] != ScoreColumn {
		return nil, fmt.Errorf("%w: last column is %q, want %q", errs.ErrInvalidColumn, names[cols-1], ScoreColumn)
	}

	if len(data)-offset != int(header.PayloadLength) {
		return nil, fmt.Errorf("%w: value payload has %d bytes, header declares %d",
			errs.ErrInvalidPayload, len(data)-offset, header.PayloadLength)
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if hash.Sum(raw) != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	values, err := encoding.DecodeColumns(raw, rows, cols, engine)
	if err != nil {
		return nil, err
	}

	t, err := New(names[:cols-1])
	if err != nil {
		return nil, err
	}
	t.params = values[:cols-1]
	t.scores = values[cols-1]

	return t, nil
}

// Info summarises the header of an encoded table.
type Info struct {
	Rows         int
	Columns      int
	Compression  format.CompressionType
	BigEndian    bool
	Collision    bool
	PayloadBytes int
	Checksum     uint64
}

// ReadInfo parses only the header of an encoded table.
func ReadInfo(data []byte) (Info, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Rows:         int(header.RowCount),
		Columns:      int(header.ColumnCount),
		Compression:  header.Flag.CompressionType,
		BigEndian:    header.Flag.IsBigEndian(),
		Collision:    header.Flag.HasCollision(),
		PayloadBytes: int(header.PayloadLength),
		Checksum:     header.Checksum,
	}, nil
}
