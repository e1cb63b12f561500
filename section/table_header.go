package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
)

// TableHeader is the fixed-size header at the start of an encoded table.
type TableHeader struct {
	// Flag holds the option bits and compression type.
	Flag TableFlag // byte offset 0-2
	// RowCount is the number of rows (hyperparameter combinations).
	RowCount uint32 // byte offset 4-7
	// ColumnCount is the number of columns including the score column.
	ColumnCount uint16 // byte offset 8-9
	// PayloadLength is the byte length of the compressed value payload.
	PayloadLength uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the uncompressed value payload.
	Checksum uint64 // byte offset 16-23
}

// NewTableHeader creates a header with default flags for the given shape.
func NewTableHeader(rows uint32, cols uint16) *TableHeader {
	return &TableHeader{
		Flag:        NewTableFlag(),
		RowCount:    rows,
		ColumnCount: cols,
	}
}

// Parse parses the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is not HeaderSize bytes,
//     errs.ErrInvalidHeaderFlags for a bad magic number, reserved bits or
//     compression type
func (h *TableHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	// The options word is always little-endian so the byte order can be read first.
	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.CompressionType = format.CompressionType(data[2])
	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if data[3] != 0 || data[10] != 0 || data[11] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	engine := h.Flag.EndianEngine()
	h.RowCount = engine.Uint32(data[4:8])
	h.ColumnCount = engine.Uint16(data[8:10])
	h.PayloadLength = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return nil
}

// Bytes serializes the header into HeaderSize bytes.
func (h *TableHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.EndianEngine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = byte(h.Flag.CompressionType)
	engine.PutUint32(b[4:8], h.RowCount)
	engine.PutUint16(b[8:10], h.ColumnCount)
	engine.PutUint32(b[12:16], h.PayloadLength)
	engine.PutUint64(b[16:24], h.Checksum)

	return b
}

// ParseTableHeader parses a TableHeader from the start of data.
func ParseTableHeader(data []byte) (TableHeader, error) {
	if len(data) < HeaderSize {
		return TableHeader{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h := TableHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return TableHeader{}, err
	}

	return h, nil
}
