// Package compress provides the payload codecs used by binary result tables.
//
// A grid-search table is a column-major block of float64 values. Hyperparameter
// columns repeat the same few values many times, so general purpose codecs
// shrink them well while the score column stays close to incompressible.
//
// # Codecs
//
//   - NoOpCompressor: stores the payload as is
//   - ZstdCompressor: best ratio, pure Go by default; build with
//     `-tags gozstd` (cgo enabled) to use the libzstd binding instead
//   - S2Compressor: fast, moderate ratio
//   - LZ4Compressor: fastest decode
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(payload)
//
// The codec used for a table is recorded in its header, so a decoder never
// needs to be told which one to use.
package compress
