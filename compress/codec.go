package compress

import (
	"fmt"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/format"
)

// Compressor compresses a complete table payload in one call.
//
// The returned slice is owned by the caller. The input slice is not modified,
// though NoOpCompressor returns it unchanged.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor. Implementations must be safe for
// concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new codec for compressionType.
//
// Parameters:
//   - compressionType: the codec recorded in, or requested for, a table header
//   - target: a short label used in the error message, e.g. "table payload"
//
// Returns:
//   - Codec: the codec instance
//   - error: errs.ErrInvalidConfig when the type is unknown
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrInvalidConfig, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared codec instance for compressionType. All
// built-in codecs are stateless and safe to share.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %s", errs.ErrInvalidConfig, compressionType)
}
