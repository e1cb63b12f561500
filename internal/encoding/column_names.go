package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/endian"
	"github.com/arloliu/gpfield/errs"
)

// EncodeColumnNames encodes column names into a length-prefixed payload.
// Format: [Count: uint16] [Len1: uint16][Name1: UTF-8] [Len2: uint16][Name2: UTF-8] ...
//
// Parameters:
//   - names: ordered column names
//   - engine: byte order for the length fields
//
// Returns:
//   - []byte: the encoded payload
//   - error: errs.ErrInvalidColumn if there are more than 65535 names or a
//     name is longer than 65535 bytes
func EncodeColumnNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	if len(names) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: column count %d exceeds maximum %d", errs.ErrInvalidColumn, len(names), math.MaxUint16)
	}

	size := 2
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: column name %q exceeds maximum length %d bytes", errs.ErrInvalidColumn, name, math.MaxUint16)
		}
		size += 2 + len(name)
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint16(buf, uint16(len(names))) //nolint: gosec
	for _, name := range names {
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint: gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// DecodeColumnNames decodes a payload written by EncodeColumnNames.
//
// Returns the names in order and the number of bytes consumed, or
// errs.ErrInvalidPayload when data is truncated.
func DecodeColumnNames(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: cannot read column names count (need 2 bytes, have %d)", errs.ErrInvalidPayload, len(data))
	}

	count := int(engine.Uint16(data))
	offset := 2
	names := make([]string, count)

	for i := range count {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length of column name %d at offset %d", errs.ErrInvalidPayload, i, offset)
		}
		n := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+n {
			return nil, 0, fmt.Errorf("%w: column name %d needs %d bytes at offset %d, have %d total",
				errs.ErrInvalidPayload, i, n, offset, len(data))
		}
		names[i] = string(data[offset : offset+n])
		offset += n
	}

	return names, offset, nil
}

// VerifyColumnHashes checks that hashFunc(names[i]) == ids[i] for every column.
func VerifyColumnHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d column names for %d column IDs", errs.ErrHashMismatch, len(names), len(ids))
	}

	for i, name := range names {
		if want := hashFunc(name); want != ids[i] {
			return fmt.Errorf("%w: column %q at index %d: expected hash 0x%016x, got 0x%016x",
				errs.ErrHashMismatch, name, i, want, ids[i])
		}
	}

	return nil
}
