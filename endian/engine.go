// Package endian selects the byte order used by the binary result table.
//
// Tables are written little-endian unless the caller asks otherwise; the
// chosen order is recorded in bit 0 of the table header so Decode can pick
// the matching engine.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, rows)
//
// All engines are stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so one
// value can both read fixed-size fields and append them to a growing buffer.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// FromFlag returns the engine recorded by a header endianness bit.
func FromFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}
