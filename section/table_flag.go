package section

import (
	"github.com/arloliu/gpfield/endian"
	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
)

// TableFlag holds the packed option bits and the compression type of a table header.
type TableFlag struct {
	// Options is a packed field.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1 and 3 are reserved and must be 0.
	// Bit 2 is set when column IDs collide.
	// Bits 4-15 are the magic number 0x6A70.
	Options uint16

	// CompressionType is the codec applied to the value payload.
	CompressionType format.CompressionType
}

// NewTableFlag creates a little-endian, zstd compressed flag.
func NewTableFlag() TableFlag {
	return TableFlag{
		Options:         MagicTableV1Opt,
		CompressionType: format.CompressionZstd,
	}
}

// HasCollision reports whether two column names share an ID.
func (f TableFlag) HasCollision() bool {
	return (f.Options & CollisionMask) != 0
}

// SetHasCollision sets or clears the collision bit.
func (f *TableFlag) SetHasCollision(enabled bool) {
	if enabled {
		f.Options |= CollisionMask
	} else {
		f.Options &^= CollisionMask
	}
}

// IsLittleEndian reports whether the header fields and payload are little-endian.
func (f TableFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian reports whether the header fields and payload are big-endian.
func (f TableFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian selects little-endian byte order.
func (f *TableFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *TableFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// MagicNumber returns bits 4-15 of Options.
func (f TableFlag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Validate checks the magic number, the reserved bits and the compression type.
func (f TableFlag) Validate() error {
	if f.MagicNumber() != MagicTableV1Opt {
		return errs.ErrInvalidHeaderFlags
	}
	if f.Options&(ReservedBitMask|ReservedBit3Mask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if !f.CompressionType.Valid() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// EndianEngine returns the engine matching the endianness bit.
func (f TableFlag) EndianEngine() endian.EndianEngine {
	return endian.FromFlag(f.IsBigEndian())
}
