package section

const (
	// Bit masks of TableFlag.Options
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitMask  = 0x0002 // Mask for reserved bit (bit 1)
	CollisionMask    = 0x0004 // Mask for column ID collision bit (bit 2)
	ReservedBit3Mask = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicTableV1Opt is the version 1 magic number of the result table format.
	MagicTableV1Opt = 0x6A70
)

// offsets and sizes in an encoded table
const (
	HeaderSize     = 24 // fixed header size in bytes
	ColumnIDSize   = 8  // one xxHash64 column ID
	ValueSize      = 8  // one float64 value
	ColumnIDOffset = HeaderSize
)
