package compress

// ZstdCompressor provides Zstandard compression. It gives the smallest
// tables and is the CLI default for archived search results.
//
// The implementation is selected at build time: pure Go
// (github.com/klauspost/compress/zstd) unless the binary is built with cgo
// and the gozstd tag, in which case github.com/valyala/gozstd is used. Both
// produce standard zstd frames, so tables written by one decode with the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	codec := NewZstdCompressor()
//	packed, err := codec.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
