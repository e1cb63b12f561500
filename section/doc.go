// Package section defines the fixed-size header of a binary result table.
//
// # Layout
//
//	Header (24 bytes)
//	  0-1   Options: bit 0 endianness (0 little, 1 big), bit 2 column ID
//	        collision, bits 4-15 magic number 0x6A70. Always little-endian.
//	  2     Compression type of the value payload (format.CompressionType)
//	  3     Reserved, must be 0
//	  4-7   Row count (uint32)
//	  8-9   Column count (uint16)
//	  10-11 Reserved, must be 0
//	  12-15 Value payload length after compression (uint32)
//	  16-23 xxHash64 of the uncompressed value payload
//	Column IDs: column count × uint64, xxHash64 of each column name
//	Column names payload: see internal/encoding.EncodeColumnNames
//	Value payload: compressed column-major float64 values
//
// Fields after the options word use the byte order recorded in bit 0.
//
// The column names payload is always written so a table can be read without
// knowing its columns up front. Bit 2 additionally records that two column
// names share an ID, in which case decoders must not look columns up by ID.
package section
